package activity

import "bloom-quest-service/internal/domain"

// PlaceholderSession covers quest kinds with no interactive renderer yet
// (game and generic). It shows the quest description and offers no
// completion capability.
type PlaceholderSession struct {
	questID     string
	kind        domain.QuestType
	title       string
	description string
}

// NewPlaceholderSession builds a non-completable session.
func NewPlaceholderSession(questID string, kind domain.QuestType, title, description string) *PlaceholderSession {
	return &PlaceholderSession{questID: questID, kind: kind, title: title, description: description}
}

func (s *PlaceholderSession) Kind() domain.QuestType { return s.kind }
func (s *PlaceholderSession) QuestID() string        { return s.questID }

// Title returns the quest title.
func (s *PlaceholderSession) Title() string { return s.title }

// Description returns the quest description.
func (s *PlaceholderSession) Description() string { return s.description }

// IsComplete always reports false; placeholders cannot complete.
func (s *PlaceholderSession) IsComplete() bool { return false }

// Complete is unavailable for placeholder quests.
func (s *PlaceholderSession) Complete() error { return domain.ErrNotCompletable }
