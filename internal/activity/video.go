package activity

import "bloom-quest-service/internal/domain"

// VideoSession tracks playback of a single asset. The only completion
// trigger is the ended event; replay clears it any number of times.
type VideoSession struct {
	questID    string
	videoURL   string
	title      string
	ended      bool
	completed  bool
	onComplete func(questID string)
}

// NewVideoSession builds a video session for one playback asset.
func NewVideoSession(questID, videoURL, title string, onComplete func(string)) *VideoSession {
	return &VideoSession{
		questID:    questID,
		videoURL:   videoURL,
		title:      title,
		onComplete: onComplete,
	}
}

func (s *VideoSession) Kind() domain.QuestType { return domain.TypeVideo }
func (s *VideoSession) QuestID() string        { return s.questID }

// VideoURL returns the playback asset URL.
func (s *VideoSession) VideoURL() string { return s.videoURL }

// Title returns the quest title shown above the player.
func (s *VideoSession) Title() string { return s.title }

// Ended reports whether playback reached the end.
func (s *VideoSession) Ended() bool { return s.ended }

// OnEnded marks playback as finished, unlocking completion.
func (s *VideoSession) OnEnded() {
	s.ended = true
}

// Replay resets playback and clears the ended flag. Allowed any number of
// times, including after completion.
func (s *VideoSession) Replay() {
	s.ended = false
}

// IsComplete reports whether Complete already succeeded.
func (s *VideoSession) IsComplete() bool { return s.completed }

// Complete finishes the quest; unavailable until OnEnded fired. Idempotent.
func (s *VideoSession) Complete() error {
	if s.completed {
		return nil
	}
	if !s.ended {
		return domain.ErrVideoNotEnded
	}
	s.completed = true
	s.onComplete(s.questID)
	return nil
}
