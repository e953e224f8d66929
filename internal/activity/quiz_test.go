package activity

import (
	"fmt"
	"testing"

	"bloom-quest-service/internal/domain"
)

func makeQuestions(n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, domain.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			Question:      fmt.Sprintf("question %d", i+1),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
		})
	}
	return questions
}

// answerQuestion selects and submits one answer and advances.
func answerQuestion(t *testing.T, s *QuizSession, option int) (finished bool) {
	t.Helper()
	if err := s.SelectAnswer(option); err != nil {
		t.Fatalf("SelectAnswer(%d) at index %d: %v", option, s.Index(), err)
	}
	if _, err := s.SubmitAnswer(); err != nil {
		t.Fatalf("SubmitAnswer at index %d: %v", s.Index(), err)
	}
	finished, err := s.NextQuestion()
	if err != nil {
		t.Fatalf("NextQuestion at index %d: %v", s.Index(), err)
	}
	return finished
}

// runAttempt answers all questions, the first correct ones correctly and the
// rest wrong.
func runAttempt(t *testing.T, s *QuizSession, correct int) {
	t.Helper()
	for i, q := range s.Questions() {
		option := q.CorrectAnswer
		if i >= correct {
			option = (q.CorrectAnswer + 1) % len(q.Options)
		}
		finished := answerQuestion(t, s, option)
		if want := i == len(s.Questions())-1; finished != want {
			t.Fatalf("question %d: finished = %v, want %v", i, finished, want)
		}
	}
}

func TestQuizPassAtThreshold(t *testing.T) {
	var scored []domain.QuizResult
	s := NewQuizSession("quest4", "mars", "user-1", makeQuestions(10), 7,
		func(string) {}, func(r domain.QuizResult) { scored = append(scored, r) })

	runAttempt(t, s, 7)

	result, ok := s.Result()
	if !ok {
		t.Fatal("no result after final question")
	}
	if !result.Passed {
		t.Fatalf("7 of 10 with threshold 7 should pass, got %+v", result)
	}
	if result.CorrectAnswers != 7 || result.TotalQuestions != 10 {
		t.Fatalf("score = %d/%d, want 7/10", result.CorrectAnswers, result.TotalQuestions)
	}
	if len(result.AnsweredQuestions) != 10 {
		t.Fatalf("answered = %d, want 10", len(result.AnsweredQuestions))
	}
	if result.UserID != "user-1" || result.QuestID != "quest4" || result.PlanetID != "mars" {
		t.Fatalf("result identity wrong: %+v", result)
	}
	if len(scored) != 1 {
		t.Fatalf("onScored fired %d times, want 1", len(scored))
	}
}

func TestQuizFailBelowThreshold(t *testing.T) {
	s := NewQuizSession("quest4", "mars", "user-1", makeQuestions(10), 7,
		func(string) {}, nil)

	runAttempt(t, s, 6)

	result, ok := s.Result()
	if !ok {
		t.Fatal("no result after final question")
	}
	if result.Passed {
		t.Fatalf("6 of 10 with threshold 7 should fail, got %+v", result)
	}
	if err := s.Complete(); err != domain.ErrNotCompletable {
		t.Fatalf("Complete after fail: err = %v, want ErrNotCompletable", err)
	}
}

func TestQuizRetryResetsAttempt(t *testing.T) {
	questions := makeQuestions(10)
	s := NewQuizSession("quest4", "mars", "user-1", questions, 7,
		func(string) {}, nil)

	runAttempt(t, s, 3)
	if err := s.Retry(); err != nil {
		t.Fatalf("Retry after fail: %v", err)
	}
	if s.Index() != 0 || s.Selected() != -1 || s.Submitted() {
		t.Fatalf("retry did not reset position: index=%d selected=%d submitted=%v",
			s.Index(), s.Selected(), s.Submitted())
	}
	if _, ok := s.Result(); ok {
		t.Fatal("result survived retry")
	}
	if got := s.Questions(); len(got) != len(questions) || got[0].ID != questions[0].ID {
		t.Fatal("retry changed the question set")
	}

	runAttempt(t, s, 10)
	result, _ := s.Result()
	if !result.Passed || result.CorrectAnswers != 10 {
		t.Fatalf("second attempt result = %+v, want full pass", result)
	}
	if err := s.Retry(); err != domain.ErrRetryAfterPass {
		t.Fatalf("Retry after pass: err = %v, want ErrRetryAfterPass", err)
	}
}

func TestQuizStepOrdering(t *testing.T) {
	s := NewQuizSession("quest4", "mars", "user-1", makeQuestions(2), 1,
		func(string) {}, nil)

	if _, err := s.NextQuestion(); err != domain.ErrNotSubmitted {
		t.Fatalf("NextQuestion before submit: err = %v, want ErrNotSubmitted", err)
	}
	if _, err := s.SubmitAnswer(); err != domain.ErrNoSelection {
		t.Fatalf("SubmitAnswer without selection: err = %v, want ErrNoSelection", err)
	}
	if err := s.SelectAnswer(7); err != domain.ErrNoSelection {
		t.Fatalf("SelectAnswer out of range: err = %v, want ErrNoSelection", err)
	}

	if err := s.SelectAnswer(0); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	correct, err := s.SubmitAnswer()
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !correct {
		t.Fatal("option 0 on question q1 should be correct")
	}
	if err := s.SelectAnswer(1); err != domain.ErrAlreadySubmitted {
		t.Fatalf("SelectAnswer after submit: err = %v, want ErrAlreadySubmitted", err)
	}
	if _, err := s.SubmitAnswer(); err != domain.ErrAlreadySubmitted {
		t.Fatalf("double submit: err = %v, want ErrAlreadySubmitted", err)
	}
}

func TestQuizCompleteFiresOnce(t *testing.T) {
	var completions []string
	s := NewQuizSession("quest4", "mars", "user-1", makeQuestions(2), 1,
		func(id string) { completions = append(completions, id) }, nil)

	runAttempt(t, s, 2)
	if err := s.Complete(); err != nil {
		t.Fatalf("Complete after pass: %v", err)
	}
	if err := s.Complete(); err != nil {
		t.Fatalf("repeat Complete: %v", err)
	}
	if len(completions) != 1 || completions[0] != "quest4" {
		t.Fatalf("completions = %v, want [quest4]", completions)
	}
	if err := s.SelectAnswer(0); err != domain.ErrQuizFinished {
		t.Fatalf("SelectAnswer after finish: err = %v, want ErrQuizFinished", err)
	}
}
