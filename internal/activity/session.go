// Package activity implements the quest progression state machine: a Router
// that owns at most one live session at a time and the per-kind session
// types (card deck, quiz, video, placeholder) behind a uniform completable
// capability.
package activity

import "bloom-quest-service/internal/domain"

// Session is the capability shared by every activity kind. Exactly one
// session is live per Router; it drives its own internal state until
// Complete fires the router callback.
type Session interface {
	Kind() domain.QuestType
	QuestID() string
	IsComplete() bool
	Complete() error
}
