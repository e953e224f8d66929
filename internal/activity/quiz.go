package activity

import (
	"time"

	"bloom-quest-service/internal/domain"
)

// QuizSession walks an immutable question list one question at a time:
// select, submit, advance, and score once at the end against the pass
// threshold. A failed attempt may be retried over the same questions.
type QuizSession struct {
	questID   string
	planetID  string
	userID    string
	questions []domain.Question
	threshold int

	index     int
	selected  int // -1 when nothing selected
	submitted bool
	answers   map[string]int

	result     *domain.QuizResult
	completed  bool
	onComplete func(questID string)
	onScored   func(domain.QuizResult)
	now        func() time.Time
}

// NewQuizSession builds a quiz session. onScored fires once when the final
// question is answered and the result has been computed.
func NewQuizSession(questID, planetID, userID string, questions []domain.Question, threshold int, onComplete func(string), onScored func(domain.QuizResult)) *QuizSession {
	return &QuizSession{
		questID:    questID,
		planetID:   planetID,
		userID:     userID,
		questions:  questions,
		threshold:  threshold,
		selected:   -1,
		answers:    make(map[string]int),
		onComplete: onComplete,
		onScored:   onScored,
		now:        time.Now,
	}
}

func (s *QuizSession) Kind() domain.QuestType { return domain.TypeQuiz }
func (s *QuizSession) QuestID() string        { return s.questID }

// Index returns the current question position.
func (s *QuizSession) Index() int { return s.index }

// Questions returns the immutable question list.
func (s *QuizSession) Questions() []domain.Question { return s.questions }

// Current returns the question at the current index.
func (s *QuizSession) Current() (domain.Question, bool) {
	if s.index < 0 || s.index >= len(s.questions) {
		return domain.Question{}, false
	}
	return s.questions[s.index], true
}

// Selected returns the pending answer choice, -1 if none.
func (s *QuizSession) Selected() int { return s.selected }

// Submitted reports whether the current question was already submitted.
func (s *QuizSession) Submitted() bool { return s.submitted }

// SelectAnswer stores the pending choice. Only allowed before submission.
func (s *QuizSession) SelectAnswer(option int) error {
	if s.result != nil {
		return domain.ErrQuizFinished
	}
	if s.submitted {
		return domain.ErrAlreadySubmitted
	}
	q, ok := s.Current()
	if !ok || option < 0 || option >= len(q.Options) {
		return domain.ErrNoSelection
	}
	s.selected = option
	return nil
}

// SubmitAnswer records the pending choice for the current question, locks
// further selection, and reveals correctness to the caller.
func (s *QuizSession) SubmitAnswer() (correct bool, err error) {
	if s.result != nil {
		return false, domain.ErrQuizFinished
	}
	if s.submitted {
		return false, domain.ErrAlreadySubmitted
	}
	if s.selected < 0 {
		return false, domain.ErrNoSelection
	}
	q, ok := s.Current()
	if !ok {
		return false, domain.ErrQuizFinished
	}
	s.answers[q.ID] = s.selected
	s.submitted = true
	return s.selected == q.CorrectAnswer, nil
}

// NextQuestion advances past a submitted question. At the last question it
// scores the attempt instead and reports finished=true.
func (s *QuizSession) NextQuestion() (finished bool, err error) {
	if s.result != nil {
		return true, domain.ErrQuizFinished
	}
	if !s.submitted {
		return false, domain.ErrNotSubmitted
	}
	s.selected = -1
	s.submitted = false
	if s.index < len(s.questions)-1 {
		s.index++
		return false, nil
	}
	s.score()
	return true, nil
}

// score computes the result once from the accumulated answer map. The
// answered list follows question order.
func (s *QuizSession) score() {
	answered := make([]domain.AnsweredQuestion, 0, len(s.questions))
	correct := 0
	for _, q := range s.questions {
		userAnswer, ok := s.answers[q.ID]
		isCorrect := ok && userAnswer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		if ok {
			answered = append(answered, domain.AnsweredQuestion{
				QuestionID: q.ID,
				UserAnswer: userAnswer,
				Correct:    isCorrect,
			})
		}
	}

	result := domain.QuizResult{
		UserID:            s.userID,
		QuestID:           s.questID,
		PlanetID:          s.planetID,
		TotalQuestions:    len(s.questions),
		CorrectAnswers:    correct,
		Passed:            correct >= s.threshold,
		AnsweredQuestions: answered,
		Timestamp:         s.now().UnixMilli(),
	}
	s.result = &result
	if s.onScored != nil {
		s.onScored(result)
	}
}

// Result returns the computed result once the attempt finished.
func (s *QuizSession) Result() (domain.QuizResult, bool) {
	if s.result == nil {
		return domain.QuizResult{}, false
	}
	return *s.result, true
}

// Retry resets the attempt over the same question set. Only a failed
// attempt may be retried.
func (s *QuizSession) Retry() error {
	if s.result == nil {
		return domain.ErrNotSubmitted
	}
	if s.result.Passed {
		return domain.ErrRetryAfterPass
	}
	s.index = 0
	s.selected = -1
	s.submitted = false
	s.answers = make(map[string]int)
	s.result = nil
	return nil
}

// IsComplete reports whether the quest was completed via a passing attempt.
func (s *QuizSession) IsComplete() bool { return s.completed }

// Complete finishes the quest after a passing attempt. Idempotent.
func (s *QuizSession) Complete() error {
	if s.completed {
		return nil
	}
	if s.result == nil || !s.result.Passed {
		return domain.ErrNotCompletable
	}
	s.completed = true
	s.onComplete(s.questID)
	return nil
}
