package activity

import (
	"testing"

	"bloom-quest-service/internal/domain"
)

func TestVideoCompleteRequiresEnded(t *testing.T) {
	var completions []string
	s := NewVideoSession("quest1", "https://cdn.example/v.mp4", "Intro", func(id string) {
		completions = append(completions, id)
	})

	if err := s.Complete(); err != domain.ErrVideoNotEnded {
		t.Fatalf("Complete before ended: err = %v, want ErrVideoNotEnded", err)
	}
	s.OnEnded()
	if err := s.Complete(); err != nil {
		t.Fatalf("Complete after ended: %v", err)
	}
	if err := s.Complete(); err != nil {
		t.Fatalf("repeat Complete: %v", err)
	}
	if len(completions) != 1 || completions[0] != "quest1" {
		t.Fatalf("completions = %v, want [quest1]", completions)
	}
}

func TestVideoReplayClearsEnded(t *testing.T) {
	s := NewVideoSession("quest1", "https://cdn.example/v.mp4", "Intro", func(string) {})

	s.OnEnded()
	s.Replay()
	if s.Ended() {
		t.Fatal("ended flag survived replay")
	}
	if err := s.Complete(); err != domain.ErrVideoNotEnded {
		t.Fatalf("Complete after replay: err = %v, want ErrVideoNotEnded", err)
	}
	s.OnEnded()
	if err := s.Complete(); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	// Replay after completion stays allowed and does not undo it.
	s.Replay()
	if !s.IsComplete() {
		t.Fatal("replay undid completion")
	}
}
