package domain

import "strings"

// QuestType classifies how a quest is played. Unrecognized or absent types
// fall back to TypeGeneric, which renders a placeholder with no completion.
type QuestType string

const (
	TypeGame    QuestType = "game"
	TypeCard    QuestType = "card"
	TypeVideo   QuestType = "video"
	TypeQuiz    QuestType = "quiz"
	TypeGeneric QuestType = "generic"
)

// ClassifyQuestType resolves a raw type string case-insensitively.
func ClassifyQuestType(raw string) QuestType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "game":
		return TypeGame
	case "card":
		return TypeCard
	case "video":
		return TypeVideo
	case "quiz":
		return TypeQuiz
	default:
		return TypeGeneric
	}
}

// Quest is one unit of learning content belonging to a subject. Everything
// except IsCompleted is read-only after load; IsCompleted moves false->true
// exactly once and is never reset.
type Quest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Type        string `json:"type,omitempty"`
	IsCompleted bool   `json:"isCompleted"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// Kind returns the classified type of the quest.
func (q Quest) Kind() QuestType {
	return ClassifyQuestType(q.Type)
}

// Card is a two-question flashcard belonging to a card quest. Immutable
// once loaded; reveal state lives in the session, not here.
type Card struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Q1    string `json:"q1"`
	A1    string `json:"a1"`
	Q2    string `json:"q2"`
	A2    string `json:"a2"`
	Img   string `json:"img"`
}

// Question is a multiple-choice quiz question. CorrectAnswer indexes into
// Options. Immutable once loaded.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// AnsweredQuestion records one submitted answer inside a QuizResult.
type AnsweredQuestion struct {
	QuestionID string `json:"questionId"`
	UserAnswer int    `json:"userAnswer"`
	Correct    bool   `json:"correct"`
}

// QuizResult is the outcome of one completed quiz attempt. Created once
// after every question has been answered, never mutated afterwards.
type QuizResult struct {
	UserID            string             `json:"userId,omitempty"`
	QuestID           string             `json:"questId"`
	PlanetID          string             `json:"planetId"`
	TotalQuestions    int                `json:"totalQuestions"`
	CorrectAnswers    int                `json:"correctAnswers"`
	Passed            bool               `json:"passed"`
	AnsweredQuestions []AnsweredQuestion `json:"answeredQuestions"`
	Timestamp         int64              `json:"timestamp"`
}

// EmotionReading is one sample from the emotion-detection service.
type EmotionReading struct {
	Emotion         string  `json:"emotion"`
	Confidence      float64 `json:"confidence"`
	TotalDetections int     `json:"total_detections"`
}

// Assessment is the payload for the career-recommendation endpoint.
type Assessment struct {
	Responses      map[string]float64 `json:"responses"`
	AdditionalInfo AdditionalInfo     `json:"additional_info"`
}

// AdditionalInfo carries the free-form parts of an assessment.
type AdditionalInfo struct {
	FavoriteSubjects []string `json:"favorite_subjects"`
	Hobbies          []string `json:"hobbies"`
}
