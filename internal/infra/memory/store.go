// Package memory provides in-memory implementations of the content store
// and profile store, used as test fakes and as the backing store when no
// Postgres is configured.
package memory

import (
	"context"
	"sync"

	"bloom-quest-service/internal/domain"
)

// Store is an in-memory document store keyed the same way as the backing
// document database: {subject}/{ageCategory} for quest lists and
// {subject}/{ageCategory}/{questId} for cards and questions.
type Store struct {
	mu        sync.RWMutex
	quests    map[string][]domain.Quest
	cards     map[string][]domain.Card
	questions map[string][]domain.Question
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		quests:    make(map[string][]domain.Quest),
		cards:     make(map[string][]domain.Card),
		questions: make(map[string][]domain.Question),
	}
}

func subjectKey(subject, age string) string { return subject + "/" + age }

func questKey(subject, age, questID string) string { return subject + "/" + age + "/" + questID }

// SeedQuests installs a quest list for a subject.
func (s *Store) SeedQuests(subject, age string, quests []domain.Quest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quests[subjectKey(subject, age)] = append([]domain.Quest(nil), quests...)
}

// SeedCards installs the card deck for a quest.
func (s *Store) SeedCards(subject, age, questID string, cards []domain.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[questKey(subject, age, questID)] = append([]domain.Card(nil), cards...)
}

// SeedQuestions installs the question list for a quest.
func (s *Store) SeedQuestions(subject, age, questID string, questions []domain.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[questKey(subject, age, questID)] = append([]domain.Question(nil), questions...)
}

// FetchQuests returns a copy of the quest list for the subject.
func (s *Store) FetchQuests(_ context.Context, subject, age string) ([]domain.Quest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Quest(nil), s.quests[subjectKey(subject, age)]...), nil
}

// FetchCards returns a copy of the card deck for the quest.
func (s *Store) FetchCards(_ context.Context, subject, age, questID string) ([]domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Card(nil), s.cards[questKey(subject, age, questID)]...), nil
}

// FetchQuestions returns a copy of the question list for the quest.
func (s *Store) FetchQuestions(_ context.Context, subject, age, questID string) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Question(nil), s.questions[questKey(subject, age, questID)]...), nil
}

// MarkQuestComplete flips isCompleted on the stored quest document.
func (s *Store) MarkQuestComplete(_ context.Context, subject, age, questID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	quests := s.quests[subjectKey(subject, age)]
	for i := range quests {
		if quests[i].ID == questID {
			quests[i].IsCompleted = true
			return nil
		}
	}
	return domain.ErrQuestNotFound
}
