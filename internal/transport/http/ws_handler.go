// Package http wires the activity router to clients over WebSocket and
// exposes the assessment endpoint.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"bloom-quest-service/internal/activity"
	"bloom-quest-service/internal/domain"
	"bloom-quest-service/internal/emotion"
)

// WSHandler upgrades connections and drives one Router per client.
type WSHandler struct {
	store         activity.ContentStore
	results       activity.ResultSink
	passThreshold int
	emotion       *emotion.Poller // nil when the feature is disabled
	upgrader      websocket.Upgrader
}

// NewWSHandler builds the WebSocket handler. poller may be nil.
func NewWSHandler(store activity.ContentStore, results activity.ResultSink, passThreshold int, poller *emotion.Poller) *WSHandler {
	return &WSHandler{
		store:         store,
		results:       results,
		passThreshold: passThreshold,
		emotion:       poller,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type eventPayload struct {
	Kind    string `json:"kind"`
	QuestID string `json:"questId"`
	Message string `json:"message"`
}

type subjectPayload struct {
	Subject string `json:"subject"`
}

type questPayload struct {
	QuestID string `json:"questId"`
}

type answerPayload struct {
	Option int `json:"option"`
}

// ServeWS upgrades the request and runs the quest progression loop for one
// user until the connection drops.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	ageCategory := r.URL.Query().Get("ageCategory")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	router := activity.NewRouter(h.store, h.results, activity.Options{
		UserID:        userID,
		AgeCategory:   ageCategory,
		PassThreshold: h.passThreshold,
	})

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	pumpDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	push := func(msg outboundMessage[any]) bool {
		select {
		case send <- msg:
			return true
		case <-closeSignals:
			return false
		}
	}

	// Background pump: pushes snapshots when async content loads land and
	// forwards background failures.
	go func() {
		defer close(pumpDone)
		for {
			select {
			case <-router.Changed():
				if !push(outboundMessage[any]{Type: "state", Payload: router.Snapshot()}) {
					return
				}
			case ev := <-router.Events():
				payload := eventPayload{Kind: ev.Kind, QuestID: ev.QuestID}
				if ev.Err != nil {
					payload.Message = ev.Err.Error()
				}
				if !push(outboundMessage[any]{Type: "event", Payload: payload}) {
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	var emotionCancel context.CancelFunc
	var emotionDone chan struct{}
	// stopEmotion cancels the poller and waits for the forwarder to exit,
	// so no emotion push can race a later close of send.
	stopEmotion := func() {
		if emotionCancel != nil {
			emotionCancel()
			<-emotionDone
			emotionCancel = nil
		}
	}

	syncEmotion := func(st activity.State) {
		if h.emotion == nil {
			return
		}
		videoActive := st.Activity != nil && st.Activity.Video != nil
		switch {
		case videoActive && emotionCancel == nil:
			ctx, cancel := context.WithCancel(r.Context())
			emotionCancel = cancel
			done := make(chan struct{})
			emotionDone = done
			readings := h.emotion.Run(ctx)
			go func() {
				defer close(done)
				for reading := range readings {
					if !push(outboundMessage[any]{Type: "emotion", Payload: reading}) {
						return
					}
				}
			}()
		case !videoActive:
			stopEmotion()
		}
	}

	send <- outboundMessage[any]{Type: "state", Payload: router.Snapshot()}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}

		if err := h.dispatch(r.Context(), router, inbound); err != nil {
			push(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
			continue
		}
		st := router.Snapshot()
		syncEmotion(st)
		if !push(outboundMessage[any]{Type: "state", Payload: st}) {
			break
		}
	}

	close(closeSignals)
	<-pumpDone
	stopEmotion()
	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(ctx context.Context, router *activity.Router, inbound inboundMessage) error {
	switch inbound.Type {
	case "selectSubject":
		var payload subjectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Subject == "" {
			return domain.ErrNoSubject
		}
		return router.SelectSubject(ctx, payload.Subject)
	case "selectQuest":
		var payload questPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.QuestID == "" {
			return domain.ErrQuestNotFound
		}
		return router.SelectQuest(ctx, payload.QuestID)
	case "back":
		router.Back()
		return nil
	case "advance":
		return router.Advance()
	case "retreat":
		return router.Retreat()
	case "revealFirst":
		return router.RevealFirst()
	case "revealSecond":
		return router.RevealSecond()
	case "completeDeck":
		return router.CompleteDeck()
	case "selectAnswer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return domain.ErrNoSelection
		}
		return router.SelectAnswer(payload.Option)
	case "submitAnswer":
		_, err := router.SubmitAnswer()
		return err
	case "nextQuestion":
		_, err := router.NextQuestion()
		return err
	case "retry":
		return router.RetryQuiz()
	case "completeQuiz":
		return router.CompleteQuiz()
	case "videoEnded":
		return router.VideoEnded()
	case "replay":
		return router.Replay()
	case "completeVideo":
		return router.CompleteVideo()
	default:
		return errUnsupported
	}
}

var errUnsupported = errors.New("unsupported message type")
