package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"bloom-quest-service/internal/activity"
	"bloom-quest-service/internal/domain"
	"bloom-quest-service/internal/emotion"
	"bloom-quest-service/internal/infra/memory"
)

type recordingSink struct {
	mu      sync.Mutex
	results []domain.QuizResult
}

func (r *recordingSink) Submit(_ context.Context, result domain.QuizResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return nil
}

func (r *recordingSink) submitted() []domain.QuizResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.QuizResult(nil), r.results...)
}

func seededWSStore() *memory.Store {
	store := memory.NewStore()
	store.SeedQuests("mars", "Kids", []domain.Quest{
		{ID: "quest1", Title: "Intro", Order: 1, Type: "video", VideoURL: "https://cdn.example/intro.mp4"},
		{ID: "quest4", Title: "Quiz", Order: 2, Type: "quiz"},
	})
	store.SeedQuestions("mars", "Kids", "quest4", []domain.Question{
		{ID: "q1", Question: "?", Options: []string{"a", "b"}, CorrectAnswer: 0},
		{ID: "q2", Question: "?", Options: []string{"a", "b"}, CorrectAnswer: 1},
	})
	return store
}

func dialWSHandler(t *testing.T, handler *WSHandler) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(handler.ServeWS))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/?userId=user-1&ageCategory=Kids"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type rawMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func sendMsg(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := conn.WriteJSON(inboundMessage{Type: msgType, Payload: raw}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

// nextState reads messages until a state arrives, skipping events.
func nextState(t *testing.T, conn *websocket.Conn) activity.State {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg rawMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		switch msg.Type {
		case "state":
			var st activity.State
			if err := json.Unmarshal(msg.Payload, &st); err != nil {
				t.Fatalf("unmarshal state: %v", err)
			}
			return st
		case "error":
			t.Fatalf("unexpected error message: %s", msg.Payload)
		}
	}
}

// waitForState keeps reading states until the predicate holds.
func waitForState(t *testing.T, conn *websocket.Conn, want func(activity.State) bool) activity.State {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st := nextState(t, conn)
		if want(st) {
			return st
		}
	}
	t.Fatal("state predicate never satisfied")
	return activity.State{}
}

func TestWSVideoQuestFlow(t *testing.T) {
	handler := NewWSHandler(seededWSStore(), &recordingSink{}, 0, nil)
	conn := dialWSHandler(t, handler)

	st := nextState(t, conn)
	if st.Phase != activity.PhaseIdle {
		t.Fatalf("initial phase = %s, want idle", st.Phase)
	}

	sendMsg(t, conn, "selectSubject", map[string]string{"subject": "mars"})
	st = nextState(t, conn)
	if st.Phase != activity.PhaseSubjectActive || len(st.Quests) != 2 {
		t.Fatalf("state after selectSubject = %+v", st)
	}

	sendMsg(t, conn, "selectQuest", map[string]string{"questId": "quest1"})
	st = nextState(t, conn)
	if st.Activity == nil || st.Activity.Video == nil {
		t.Fatalf("state after selectQuest = %+v", st)
	}
	if st.Activity.Video.VideoURL != "https://cdn.example/intro.mp4" {
		t.Fatalf("video url = %s", st.Activity.Video.VideoURL)
	}

	sendMsg(t, conn, "videoEnded", nil)
	st = nextState(t, conn)
	if st.Activity == nil || st.Activity.Video == nil || !st.Activity.Video.Ended {
		t.Fatalf("state after videoEnded = %+v", st)
	}

	sendMsg(t, conn, "completeVideo", nil)
	st = nextState(t, conn)
	if st.Phase != activity.PhaseSubjectActive {
		t.Fatalf("phase after completeVideo = %s", st.Phase)
	}
	for _, q := range st.Quests {
		if q.ID == "quest1" && !q.IsCompleted {
			t.Fatal("quest1 not completed in pushed state")
		}
	}
}

func TestWSQuizQuestFlow(t *testing.T) {
	sink := &recordingSink{}
	handler := NewWSHandler(seededWSStore(), sink, 2, nil)
	conn := dialWSHandler(t, handler)

	nextState(t, conn) // initial
	sendMsg(t, conn, "selectSubject", map[string]string{"subject": "mars"})
	nextState(t, conn)

	sendMsg(t, conn, "selectQuest", map[string]string{"questId": "quest4"})
	// Questions load in the background; wait for the quiz to materialize.
	st := waitForState(t, conn, func(st activity.State) bool {
		return st.Activity != nil && st.Activity.Quiz != nil
	})
	if st.Activity.Quiz.Total != 2 {
		t.Fatalf("quiz total = %d, want 2", st.Activity.Quiz.Total)
	}

	for _, correct := range []int{0, 1} {
		sendMsg(t, conn, "selectAnswer", map[string]int{"option": correct})
		st = waitForState(t, conn, func(st activity.State) bool {
			return st.Activity != nil && st.Activity.Quiz != nil && st.Activity.Quiz.Selected == correct
		})
		sendMsg(t, conn, "submitAnswer", nil)
		st = waitForState(t, conn, func(st activity.State) bool {
			return st.Activity != nil && st.Activity.Quiz != nil && st.Activity.Quiz.Correct != nil
		})
		if *st.Activity.Quiz.Correct != correct {
			t.Fatalf("revealed correct answer = %d, want %d", *st.Activity.Quiz.Correct, correct)
		}
		sendMsg(t, conn, "nextQuestion", nil)
		nextState(t, conn)
	}

	sendMsg(t, conn, "completeQuiz", nil)
	st = waitForState(t, conn, func(st activity.State) bool {
		return st.Phase == activity.PhaseSubjectActive
	})

	deadline := time.Now().Add(2 * time.Second)
	for len(sink.submitted()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	results := sink.submitted()
	if len(results) != 1 || !results[0].Passed || results[0].CorrectAnswers != 2 {
		t.Fatalf("submitted results = %+v, want one full pass", results)
	}
	if results[0].UserID != "user-1" || results[0].PlanetID != "mars" {
		t.Fatalf("result identity = %+v", results[0])
	}
}

func emotionTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"emotion":"happy","confidence":0.9,"total_detections":3}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestWSEmotionReadingsDuringVideo(t *testing.T) {
	poller := emotion.NewPoller(emotionTestServer(t).URL, 5*time.Millisecond)
	handler := NewWSHandler(seededWSStore(), &recordingSink{}, 0, poller)
	conn := dialWSHandler(t, handler)

	nextState(t, conn)
	sendMsg(t, conn, "selectSubject", map[string]string{"subject": "mars"})
	nextState(t, conn)
	sendMsg(t, conn, "selectQuest", map[string]string{"questId": "quest1"})

	// Readings flow only while the video activity is on screen.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	sawEmotion := false
	for !sawEmotion {
		var msg rawMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if msg.Type != "emotion" {
			continue
		}
		var reading domain.EmotionReading
		if err := json.Unmarshal(msg.Payload, &reading); err != nil {
			t.Fatalf("unmarshal reading: %v", err)
		}
		if reading.Emotion != "happy" || reading.TotalDetections != 3 {
			t.Fatalf("reading = %+v", reading)
		}
		sawEmotion = true
	}

	// Leaving the video stops the poller before the back state is pushed,
	// so nothing after that state may be an emotion message.
	sendMsg(t, conn, "back", nil)
	waitForState(t, conn, func(st activity.State) bool {
		return st.Phase == activity.PhaseSubjectActive && st.Activity == nil
	})
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	for {
		var msg rawMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break // timeout: stream went quiet
		}
		if msg.Type == "emotion" {
			t.Fatal("emotion reading after leaving the video")
		}
	}
}

func TestWSDisconnectDuringVideoIsClean(t *testing.T) {
	poller := emotion.NewPoller(emotionTestServer(t).URL, time.Microsecond)
	handler := NewWSHandler(seededWSStore(), &recordingSink{}, 0, poller)
	server := httptest.NewServer(http.HandlerFunc(handler.ServeWS))
	defer server.Close()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/?userId=user-1&ageCategory=Kids"

	for i := 0; i < 50; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial %d: %v", i, err)
		}
		nextState(t, conn)
		sendMsg(t, conn, "selectSubject", map[string]string{"subject": "mars"})
		nextState(t, conn)
		sendMsg(t, conn, "selectQuest", map[string]string{"questId": "quest1"})
		nextState(t, conn)
		// Drop the connection while readings are being forwarded.
		conn.Close()
	}
}

func TestWSUnsupportedMessage(t *testing.T) {
	handler := NewWSHandler(seededWSStore(), &recordingSink{}, 0, nil)
	conn := dialWSHandler(t, handler)

	nextState(t, conn)
	sendMsg(t, conn, "launchRocket", nil)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg rawMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "error" {
		t.Fatalf("message type = %s, want error", msg.Type)
	}
}
