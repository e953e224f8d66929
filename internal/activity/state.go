package activity

import "bloom-quest-service/internal/domain"

// State is a render-ready snapshot of the router, safe to serialize after
// the lock is released.
type State struct {
	Phase    Phase          `json:"phase"`
	Subject  string         `json:"subject,omitempty"`
	Quests   []domain.Quest `json:"quests,omitempty"`
	Activity *ActivityState `json:"activity,omitempty"`
}

// ActivityState describes the running session, if any.
type ActivityState struct {
	Kind    domain.QuestType  `json:"kind"`
	QuestID string            `json:"questId"`
	Loading bool              `json:"loading"`
	Deck    *DeckState        `json:"deck,omitempty"`
	Quiz    *QuizState        `json:"quiz,omitempty"`
	Video   *VideoState       `json:"video,omitempty"`
	Generic *PlaceholderState `json:"generic,omitempty"`
}

// DeckState is the card-deck view.
type DeckState struct {
	Index          int         `json:"index"`
	Total          int         `json:"total"`
	Card           domain.Card `json:"card"`
	RevealedFirst  bool        `json:"revealedFirst"`
	RevealedSecond bool        `json:"revealedSecond"`
	AllViewed      bool        `json:"allViewed"`
	Completed      bool        `json:"completed"`
}

// QuizState is the quiz view. The correct answer index travels with the
// question only after submission.
type QuizState struct {
	Index       int                `json:"index"`
	Total       int                `json:"total"`
	Question    string             `json:"question"`
	Options     []string           `json:"options"`
	Selected    int                `json:"selected"`
	Submitted   bool               `json:"submitted"`
	Correct     *int               `json:"correctAnswer,omitempty"`
	Explanation string             `json:"explanation,omitempty"`
	Result      *domain.QuizResult `json:"result,omitempty"`
}

// VideoState is the video player view.
type VideoState struct {
	Title     string `json:"title"`
	VideoURL  string `json:"videoUrl"`
	Ended     bool   `json:"ended"`
	Completed bool   `json:"completed"`
}

// PlaceholderState is the coming-soon view for game and unknown quests.
type PlaceholderState struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Snapshot captures the current router state for rendering.
func (r *Router) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := State{Phase: r.phase}
	if r.catalog != nil {
		st.Subject = r.catalog.Subject()
		st.Quests = r.catalog.Quests()
	}
	if r.phase != PhaseActivityRunning {
		return st
	}

	act := &ActivityState{QuestID: r.runningID, Loading: r.loading}
	st.Activity = act
	if r.loading || r.session == nil {
		return st
	}
	act.Kind = r.session.Kind()

	switch s := r.session.(type) {
	case *CardDeckSession:
		card, _ := s.Current()
		first, second := s.Revealed()
		act.Deck = &DeckState{
			Index:          s.Index(),
			Total:          len(s.Cards()),
			Card:           card,
			RevealedFirst:  first,
			RevealedSecond: second,
			AllViewed:      s.AllViewed(),
			Completed:      s.IsComplete(),
		}
	case *QuizSession:
		q, _ := s.Current()
		qs := &QuizState{
			Index:     s.Index(),
			Total:     len(s.Questions()),
			Question:  q.Question,
			Options:   q.Options,
			Selected:  s.Selected(),
			Submitted: s.Submitted(),
		}
		if s.Submitted() {
			correct := q.CorrectAnswer
			qs.Correct = &correct
			qs.Explanation = q.Explanation
		}
		if result, ok := s.Result(); ok {
			qs.Result = &result
		}
		act.Quiz = qs
	case *VideoSession:
		act.Video = &VideoState{
			Title:     s.Title(),
			VideoURL:  s.VideoURL(),
			Ended:     s.Ended(),
			Completed: s.IsComplete(),
		}
	case *PlaceholderSession:
		act.Generic = &PlaceholderState{Title: s.Title(), Description: s.Description()}
	}
	return st
}
