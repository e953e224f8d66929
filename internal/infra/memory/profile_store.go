package memory

import (
	"context"
	"sync"
)

// ProfileStore keeps user career recommendations in memory.
type ProfileStore struct {
	mu              sync.RWMutex
	recommendations map[string]string
}

// NewProfileStore returns an empty profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{recommendations: make(map[string]string)}
}

// SetRecommendation stores the recommended interest for a user.
func (s *ProfileStore) SetRecommendation(_ context.Context, userID, recommendation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommendations[userID] = recommendation
	return nil
}

// Recommendation returns the stored recommendation for a user.
func (s *ProfileStore) Recommendation(userID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recommendations[userID]
	return rec, ok
}
