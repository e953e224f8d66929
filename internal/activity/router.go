package activity

import (
	"context"
	"log"
	"sync"
	"time"

	"bloom-quest-service/internal/catalog"
	"bloom-quest-service/internal/content"
	"bloom-quest-service/internal/domain"
)

// Phase is the top-level router state.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseSubjectActive   Phase = "subjectActive"
	PhaseActivityRunning Phase = "activityRunning"
)

// ContentStore is the narrow repository boundary the router talks to. The
// router never touches the backing store directly, so tests substitute an
// in-memory fake.
type ContentStore interface {
	FetchQuests(ctx context.Context, subject, ageCategory string) ([]domain.Quest, error)
	FetchCards(ctx context.Context, subject, ageCategory, questID string) ([]domain.Card, error)
	FetchQuestions(ctx context.Context, subject, ageCategory, questID string) ([]domain.Question, error)
	MarkQuestComplete(ctx context.Context, subject, ageCategory, questID string) error
}

// ResultSink receives completed quiz results.
type ResultSink interface {
	Submit(ctx context.Context, result domain.QuizResult) error
}

// Options configures a Router for one user.
type Options struct {
	UserID        string
	AgeCategory   string
	PassThreshold int
}

// DefaultPassThreshold is the number of correct answers required to pass a
// quiz when no threshold is configured.
const DefaultPassThreshold = 7

// Event reports a background failure (completion write, result submission).
// The in-memory state is authoritative; events exist so the surrounding
// application can decide to surface or ignore them.
type Event struct {
	Kind    string
	QuestID string
	Err     error
}

const (
	EventCompletionWriteFailed = "completionWriteFailed"
	EventResultSubmitFailed    = "resultSubmitFailed"
)

// Router owns the quest progression state machine for a single user:
// Idle -> SubjectActive -> ActivityRunning -> SubjectActive. At most one
// session is live at a time; content loads for a session run in the
// background and are discarded if the user navigated away before they
// arrive.
type Router struct {
	mu      sync.Mutex
	store   ContentStore
	results ResultSink
	opts    Options

	phase      Phase
	catalog    *catalog.Catalog
	session    Session
	loading    bool
	runningID  string
	generation uint64

	events  chan Event
	changed chan struct{}
	wg      sync.WaitGroup
}

// NewRouter builds an idle router for one user.
func NewRouter(store ContentStore, results ResultSink, opts Options) *Router {
	if opts.PassThreshold <= 0 {
		opts.PassThreshold = DefaultPassThreshold
	}
	if opts.AgeCategory == "" {
		opts.AgeCategory = "Adults"
	}
	return &Router{
		store:   store,
		results: results,
		opts:    opts,
		phase:   PhaseIdle,
		events:  make(chan Event, 16),
		changed: make(chan struct{}, 1),
	}
}

// Events exposes background failures. Receives are optional; the channel
// never blocks the router.
func (r *Router) Events() <-chan Event { return r.events }

func (r *Router) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}

// Changed signals that a background content load mutated the state, so a
// transport can push a fresh snapshot.
func (r *Router) Changed() <-chan struct{} { return r.changed }

func (r *Router) notifyChanged() {
	select {
	case r.changed <- struct{}{}:
	default:
	}
}

// Phase returns the current top-level state.
func (r *Router) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// SelectSubject loads the quest catalog for a subject and enters
// SubjectActive. Re-selecting while a list is already shown rebuilds the
// catalog; it is rejected while an activity is running.
func (r *Router) SelectSubject(ctx context.Context, subject string) error {
	r.mu.Lock()
	if r.phase == PhaseActivityRunning {
		r.mu.Unlock()
		return domain.ErrActivityRunning
	}
	r.mu.Unlock()

	cat := catalog.Load(ctx, r.store, subject, r.opts.AgeCategory)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == PhaseActivityRunning {
		return domain.ErrActivityRunning
	}
	r.catalog = cat
	r.phase = PhaseSubjectActive
	return nil
}

// Quests returns the current catalog snapshot. It is nil when no subject
// is selected; a loaded catalog is never empty (fallback content fills it).
func (r *Router) Quests() []domain.Quest {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.catalog == nil {
		return nil
	}
	return r.catalog.Quests()
}

// SelectQuest classifies the quest type and starts the matching session.
// Card and quiz content loads run in the background; the activity reports
// loading until they land.
func (r *Router) SelectQuest(ctx context.Context, questID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseSubjectActive || r.catalog == nil {
		if r.phase == PhaseActivityRunning {
			return domain.ErrActivityRunning
		}
		return domain.ErrNoSubject
	}
	quest, ok := r.catalog.Get(questID)
	if !ok {
		return domain.ErrQuestNotFound
	}

	r.phase = PhaseActivityRunning
	r.runningID = quest.ID
	r.generation++
	gen := r.generation

	switch quest.Kind() {
	case domain.TypeCard:
		r.session = nil
		r.loading = true
		subject, age := r.catalog.Subject(), r.catalog.AgeCategory()
		r.spawn(func() { r.loadCards(ctx, gen, subject, age, quest.ID) })
	case domain.TypeQuiz:
		r.session = nil
		r.loading = true
		subject, age := r.catalog.Subject(), r.catalog.AgeCategory()
		r.spawn(func() { r.loadQuestions(ctx, gen, subject, age, quest.ID) })
	case domain.TypeVideo:
		r.loading = false
		r.session = NewVideoSession(quest.ID, quest.VideoURL, quest.Title, r.completeLocked)
	default:
		// game and unrecognized types get the placeholder screen.
		r.loading = false
		r.session = NewPlaceholderSession(quest.ID, quest.Kind(), quest.Title, quest.Description)
	}
	return nil
}

func (r *Router) spawn(fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fn()
	}()
}

// Wait blocks until background work finishes. Test helper.
func (r *Router) Wait() { r.wg.Wait() }

func (r *Router) loadCards(ctx context.Context, gen uint64, subject, age, questID string) {
	cards, err := r.store.FetchCards(ctx, subject, age, questID)
	if err != nil {
		log.Printf("fetch cards for quest %s failed, using fallback: %v", questID, err)
		cards = nil
	}
	if len(cards) == 0 {
		cards = content.FallbackCards()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.liveLocked(gen) {
		return
	}
	r.loading = false
	r.session = NewCardDeckSession(questID, cards, r.completeLocked)
	r.notifyChanged()
}

func (r *Router) loadQuestions(ctx context.Context, gen uint64, subject, age, questID string) {
	questions, err := r.store.FetchQuestions(ctx, subject, age, questID)
	if err != nil {
		log.Printf("fetch questions for quest %s failed, using fallback: %v", questID, err)
		questions = nil
	}
	if len(questions) == 0 {
		questions = content.FallbackQuestions()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.liveLocked(gen) {
		return
	}
	r.loading = false
	r.session = NewQuizSession(questID, subject, r.opts.UserID, questions, r.opts.PassThreshold, r.completeLocked, r.scoredLocked)
	r.notifyChanged()
}

// liveLocked reports whether a content load started at gen still belongs to
// the running activity. Stale responses are discarded, never applied.
func (r *Router) liveLocked(gen uint64) bool {
	return r.phase == PhaseActivityRunning && gen == r.generation
}

// Back discards the running session with no partial-completion side
// effects, or leaves the subject entirely when no activity is running.
func (r *Router) Back() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.phase {
	case PhaseActivityRunning:
		r.generation++
		r.session = nil
		r.loading = false
		r.runningID = ""
		r.phase = PhaseSubjectActive
	case PhaseSubjectActive:
		r.catalog = nil
		r.phase = PhaseIdle
	}
	return r.phase
}

// completeLocked is the session completion callback. Callers already hold
// the router lock: all session methods are invoked through router methods.
// The in-memory mark is authoritative; the store write is best effort.
func (r *Router) completeLocked(questID string) {
	if r.catalog == nil {
		return
	}
	r.catalog.MarkComplete(questID)
	subject, age := r.catalog.Subject(), r.catalog.AgeCategory()
	r.spawn(func() { r.writeCompletion(subject, age, questID) })

	r.session = nil
	r.loading = false
	r.runningID = ""
	r.phase = PhaseSubjectActive
}

func (r *Router) writeCompletion(subject, age, questID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.store.MarkQuestComplete(ctx, subject, age, questID); err != nil {
		log.Printf("completion write for quest %s failed: %v", questID, err)
		r.emit(Event{Kind: EventCompletionWriteFailed, QuestID: questID, Err: err})
	}
}

// scoredLocked fires once when a quiz attempt is scored. The result goes to
// the external sink without blocking the results screen; a passing attempt
// additionally writes quest completion to the store.
func (r *Router) scoredLocked(result domain.QuizResult) {
	var subject, age string
	if r.catalog != nil {
		subject, age = r.catalog.Subject(), r.catalog.AgeCategory()
	}
	r.spawn(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := r.results.Submit(ctx, result); err != nil {
			log.Printf("quiz result submission for quest %s failed: %v", result.QuestID, err)
			r.emit(Event{Kind: EventResultSubmitFailed, QuestID: result.QuestID, Err: err})
		}
	})
	if result.Passed && subject != "" {
		r.spawn(func() { r.writeCompletion(subject, age, result.QuestID) })
	}
}

func (r *Router) deckLocked() (*CardDeckSession, error) {
	if r.phase != PhaseActivityRunning {
		return nil, domain.ErrNoActivity
	}
	if r.loading {
		return nil, domain.ErrContentLoading
	}
	s, ok := r.session.(*CardDeckSession)
	if !ok {
		return nil, domain.ErrWrongActivity
	}
	return s, nil
}

func (r *Router) quizLocked() (*QuizSession, error) {
	if r.phase != PhaseActivityRunning {
		return nil, domain.ErrNoActivity
	}
	if r.loading {
		return nil, domain.ErrContentLoading
	}
	s, ok := r.session.(*QuizSession)
	if !ok {
		return nil, domain.ErrWrongActivity
	}
	return s, nil
}

func (r *Router) videoLocked() (*VideoSession, error) {
	if r.phase != PhaseActivityRunning {
		return nil, domain.ErrNoActivity
	}
	s, ok := r.session.(*VideoSession)
	if !ok {
		return nil, domain.ErrWrongActivity
	}
	return s, nil
}

// Advance moves the card deck forward.
func (r *Router) Advance() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.deckLocked()
	if err != nil {
		return err
	}
	s.Advance()
	return nil
}

// Retreat moves the card deck backward.
func (r *Router) Retreat() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.deckLocked()
	if err != nil {
		return err
	}
	s.Retreat()
	return nil
}

// RevealFirst shows the first answer of the active card.
func (r *Router) RevealFirst() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.deckLocked()
	if err != nil {
		return err
	}
	s.RevealFirst()
	return nil
}

// RevealSecond shows the second answer of the active card.
func (r *Router) RevealSecond() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.deckLocked()
	if err != nil {
		return err
	}
	s.RevealSecond()
	return nil
}

// CompleteDeck finishes a fully viewed card deck.
func (r *Router) CompleteDeck() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.deckLocked()
	if err != nil {
		return err
	}
	return s.Complete()
}

// SelectAnswer stores the pending quiz choice.
func (r *Router) SelectAnswer(option int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.quizLocked()
	if err != nil {
		return err
	}
	return s.SelectAnswer(option)
}

// SubmitAnswer locks in the pending quiz choice.
func (r *Router) SubmitAnswer() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.quizLocked()
	if err != nil {
		return false, err
	}
	return s.SubmitAnswer()
}

// NextQuestion advances the quiz, scoring at the last question.
func (r *Router) NextQuestion() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.quizLocked()
	if err != nil {
		return false, err
	}
	return s.NextQuestion()
}

// RetryQuiz restarts a failed attempt over the same questions.
func (r *Router) RetryQuiz() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.quizLocked()
	if err != nil {
		return err
	}
	return s.Retry()
}

// CompleteQuiz finishes a passed quiz quest.
func (r *Router) CompleteQuiz() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.quizLocked()
	if err != nil {
		return err
	}
	return s.Complete()
}

// VideoEnded records the playback-ended event.
func (r *Router) VideoEnded() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.videoLocked()
	if err != nil {
		return err
	}
	s.OnEnded()
	return nil
}

// Replay restarts video playback.
func (r *Router) Replay() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.videoLocked()
	if err != nil {
		return err
	}
	s.Replay()
	return nil
}

// CompleteVideo finishes a fully watched video quest.
func (r *Router) CompleteVideo() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.videoLocked()
	if err != nil {
		return err
	}
	return s.Complete()
}
