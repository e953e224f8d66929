package domain

import "errors"

var (
	// ErrQuestNotFound indicates a quest ID that is not in the catalog.
	ErrQuestNotFound = errors.New("quest not found")
	// ErrNoSubject is returned when an operation needs a selected subject.
	ErrNoSubject = errors.New("no subject selected")
	// ErrNoActivity is returned when no session is running.
	ErrNoActivity = errors.New("no activity running")
	// ErrActivityRunning is returned when a session is already live.
	ErrActivityRunning = errors.New("activity already running")
	// ErrWrongActivity indicates the running session is of another kind.
	ErrWrongActivity = errors.New("operation does not match the running activity")
	// ErrNoSelection is returned when submitting a quiz answer without one.
	ErrNoSelection = errors.New("no answer selected")
	// ErrAlreadySubmitted blocks re-selecting after a question was submitted.
	ErrAlreadySubmitted = errors.New("answer already submitted")
	// ErrNotSubmitted blocks advancing before the current question was submitted.
	ErrNotSubmitted = errors.New("answer not submitted yet")
	// ErrQuizFinished indicates the attempt already reached a terminal state.
	ErrQuizFinished = errors.New("quiz already finished")
	// ErrRetryAfterPass forbids retrying a passed attempt.
	ErrRetryAfterPass = errors.New("cannot retry a passed quiz")
	// ErrDeckIncomplete blocks completing a deck before every card was viewed.
	ErrDeckIncomplete = errors.New("not all cards viewed")
	// ErrVideoNotEnded blocks completing a video before playback ended.
	ErrVideoNotEnded = errors.New("video has not ended")
	// ErrNotCompletable is returned for generic quests, which cannot complete.
	ErrNotCompletable = errors.New("activity cannot be completed")
	// ErrContentLoading gates session operations while content is in flight.
	ErrContentLoading = errors.New("content still loading")
)
