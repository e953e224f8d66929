package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"bloom-quest-service/internal/domain"
	"bloom-quest-service/internal/infra/memory"
)

func TestContentCacheCachesQuests(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	source := &countingStore{Store: seededStore()}
	cache := NewContentCache(client, source, time.Minute)

	quests, err := cache.FetchQuests(context.Background(), "mars", "Kids")
	if err != nil {
		t.Fatalf("fetch quests: %v", err)
	}
	if len(quests) != 2 {
		t.Fatalf("expected 2 quests, got %d", len(quests))
	}
	if source.questCalls != 1 {
		t.Fatalf("expected one store read, got %d", source.questCalls)
	}

	// Second read hits Redis, not the store.
	if _, err := cache.FetchQuests(context.Background(), "mars", "Kids"); err != nil {
		t.Fatalf("fetch quests again: %v", err)
	}
	if source.questCalls != 1 {
		t.Fatalf("expected cache hit, store reads=%d", source.questCalls)
	}
}

func TestContentCacheCachesCardsAndQuestions(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cache := NewContentCache(client, seededStore(), time.Minute)

	cards, err := cache.FetchCards(context.Background(), "mars", "Kids", "quest3")
	if err != nil {
		t.Fatalf("fetch cards: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != "card1" {
		t.Fatalf("unexpected cards: %+v", cards)
	}

	questions, err := cache.FetchQuestions(context.Background(), "mars", "Kids", "quest4")
	if err != nil {
		t.Fatalf("fetch questions: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != "q1" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestMarkQuestCompleteInvalidatesQuestList(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cache := NewContentCache(client, seededStore(), time.Minute)
	ctx := context.Background()

	if _, err := cache.FetchQuests(ctx, "mars", "Kids"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if err := cache.MarkQuestComplete(ctx, "mars", "Kids", "quest3"); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	quests, err := cache.FetchQuests(ctx, "mars", "Kids")
	if err != nil {
		t.Fatalf("fetch after write: %v", err)
	}
	for _, q := range quests {
		if q.ID == "quest3" && !q.IsCompleted {
			t.Fatalf("expected quest3 completed after write, got %+v", q)
		}
	}
}

type countingStore struct {
	*memory.Store
	questCalls int
}

func (s *countingStore) FetchQuests(ctx context.Context, subject, age string) ([]domain.Quest, error) {
	s.questCalls++
	return s.Store.FetchQuests(ctx, subject, age)
}

func seededStore() *memory.Store {
	store := memory.NewStore()
	store.SeedQuests("mars", "Kids", []domain.Quest{
		{ID: "quest3", Title: "Advanced Skills", Order: 3, Type: "card"},
		{ID: "quest4", Title: "Final Mission", Order: 4, Type: "quiz"},
	})
	store.SeedCards("mars", "Kids", "quest3", []domain.Card{
		{ID: "card1", Title: "Helmet", Q1: "What is it?", A1: "A protective covering."},
	})
	store.SeedQuestions("mars", "Kids", "quest4", []domain.Question{
		{ID: "q1", Question: "Closest planet to the Sun?", Options: []string{"Venus", "Mercury"}, CorrectAnswer: 1},
	})
	return store
}
