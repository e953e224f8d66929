package catalog

import (
	"context"
	"errors"
	"testing"

	"bloom-quest-service/internal/domain"
)

type stubSource struct {
	quests []domain.Quest
	err    error
}

func (s *stubSource) FetchQuests(_ context.Context, _, _ string) ([]domain.Quest, error) {
	return s.quests, s.err
}

func TestLoadSortsByOrder(t *testing.T) {
	src := &stubSource{quests: []domain.Quest{
		{ID: "c", Order: 3, Type: "quiz"},
		{ID: "a", Order: 1, Type: "video"},
		{ID: "b", Order: 2, Type: "card"},
	}}
	c := Load(context.Background(), src, "mars", "Kids")

	quests := c.Quests()
	if len(quests) != 3 {
		t.Fatalf("expected 3 quests, got %d", len(quests))
	}
	for i, want := range []string{"a", "b", "c"} {
		if quests[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, quests[i].ID)
		}
	}
}

func TestLoadStableOnOrderTies(t *testing.T) {
	src := &stubSource{quests: []domain.Quest{
		{ID: "first", Order: 1},
		{ID: "second", Order: 1},
		{ID: "third", Order: 1},
	}}
	c := Load(context.Background(), src, "mars", "Kids")

	quests := c.Quests()
	for i, want := range []string{"first", "second", "third"} {
		if quests[i].ID != want {
			t.Fatalf("tie order not stable at %d: expected %s, got %s", i, want, quests[i].ID)
		}
	}
}

func TestLoadEmptyUsesFallback(t *testing.T) {
	c := Load(context.Background(), &stubSource{}, "mars", "Kids")
	if c.Len() != 4 {
		t.Fatalf("expected 4 fallback quests, got %d", c.Len())
	}
	seen := map[domain.QuestType]bool{}
	for _, q := range c.Quests() {
		seen[q.Kind()] = true
	}
	for _, kind := range []domain.QuestType{domain.TypeVideo, domain.TypeGame, domain.TypeCard, domain.TypeQuiz} {
		if !seen[kind] {
			t.Fatalf("fallback missing quest of type %s", kind)
		}
	}
}

func TestLoadErrorUsesFallback(t *testing.T) {
	src := &stubSource{err: errors.New("store down")}
	c := Load(context.Background(), src, "mars", "Kids")
	if c.Len() != 4 {
		t.Fatalf("expected fallback on error, got %d quests", c.Len())
	}
}

func TestMarkCompleteIdempotent(t *testing.T) {
	src := &stubSource{quests: []domain.Quest{
		{ID: "a", Order: 1},
		{ID: "b", Order: 2},
	}}
	c := Load(context.Background(), src, "mars", "Kids")

	c.MarkComplete("b")
	c.MarkComplete("b")

	quests := c.Quests()
	if !quests[1].IsCompleted {
		t.Fatalf("expected b completed")
	}
	if quests[0].IsCompleted {
		t.Fatalf("expected a untouched")
	}
}

func TestMarkCompleteUnknownIDIsNoOp(t *testing.T) {
	src := &stubSource{quests: []domain.Quest{{ID: "a", Order: 1}}}
	c := Load(context.Background(), src, "mars", "Kids")

	before := c.Quests()
	c.MarkComplete("missing")
	after := c.Quests()

	if len(before) != len(after) {
		t.Fatalf("quest count changed")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("quest %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}
