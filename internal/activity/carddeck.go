package activity

import "bloom-quest-service/internal/domain"

// CardDeckSession tracks position in an ordered flashcard deck, which
// answers of the active card have been revealed, and which cards have been
// fully viewed. Completion is gated on every card having been viewed.
type CardDeckSession struct {
	questID    string
	cards      []domain.Card
	index      int
	reveal1    bool
	reveal2    bool
	viewed     map[int]struct{}
	completed  bool
	onComplete func(questID string)
}

// NewCardDeckSession builds a deck session over an immutable card slice.
func NewCardDeckSession(questID string, cards []domain.Card, onComplete func(string)) *CardDeckSession {
	return &CardDeckSession{
		questID:    questID,
		cards:      cards,
		viewed:     make(map[int]struct{}),
		onComplete: onComplete,
	}
}

func (s *CardDeckSession) Kind() domain.QuestType { return domain.TypeCard }
func (s *CardDeckSession) QuestID() string        { return s.questID }

// Index returns the active card position.
func (s *CardDeckSession) Index() int { return s.index }

// Cards returns the deck contents.
func (s *CardDeckSession) Cards() []domain.Card { return s.cards }

// Current returns the active card.
func (s *CardDeckSession) Current() (domain.Card, bool) {
	if s.index < 0 || s.index >= len(s.cards) {
		return domain.Card{}, false
	}
	return s.cards[s.index], true
}

// Revealed reports the reveal flags for the active card.
func (s *CardDeckSession) Revealed() (first, second bool) {
	return s.reveal1, s.reveal2
}

// Advance moves to the next card, clamped to the deck bounds. Any index
// change resets both reveal flags.
func (s *CardDeckSession) Advance() {
	if s.index < len(s.cards)-1 {
		s.index++
		s.reveal1, s.reveal2 = false, false
	}
}

// Retreat moves to the previous card, clamped at zero.
func (s *CardDeckSession) Retreat() {
	if s.index > 0 {
		s.index--
		s.reveal1, s.reveal2 = false, false
	}
}

// RevealFirst shows the first answer of the active card.
func (s *CardDeckSession) RevealFirst() {
	s.reveal1 = true
	s.markViewed()
}

// RevealSecond shows the second answer of the active card.
func (s *CardDeckSession) RevealSecond() {
	s.reveal2 = true
	s.markViewed()
}

func (s *CardDeckSession) markViewed() {
	if s.reveal1 && s.reveal2 {
		s.viewed[s.index] = struct{}{}
	}
}

// CardFullyViewed reports whether both answers were revealed at some point
// while the given index was active. The viewed set only ever grows.
func (s *CardDeckSession) CardFullyViewed(index int) bool {
	_, ok := s.viewed[index]
	return ok
}

// AllViewed is true once every card in a non-empty deck was fully viewed.
func (s *CardDeckSession) AllViewed() bool {
	return len(s.cards) > 0 && len(s.viewed) == len(s.cards)
}

// IsComplete reports whether Complete already succeeded.
func (s *CardDeckSession) IsComplete() bool { return s.completed }

// Complete finishes the quest. It requires AllViewed and is idempotent:
// the callback fires at most once.
func (s *CardDeckSession) Complete() error {
	if s.completed {
		return nil
	}
	if !s.AllViewed() {
		return domain.ErrDeckIncomplete
	}
	s.completed = true
	s.onComplete(s.questID)
	return nil
}
