// Package content holds the fixed built-in learning content the service
// falls back to when the document store has nothing for a path. It mirrors
// the seed data used by the astronaut portal.
package content

import "bloom-quest-service/internal/domain"

// FallbackQuests returns the four default quests, one per playable type,
// already ordered. The UI is never shown an empty quest list.
func FallbackQuests() []domain.Quest {
	return []domain.Quest{
		{
			ID:          "quest1",
			Title:       "Introduction",
			Description: "Learn the basics",
			IsCompleted: true,
			Order:       1,
			Type:        "video",
			VideoURL:    "https://storage.googleapis.com/bloom-assets/astronaut/intro.mp4",
		},
		{
			ID:          "quest2",
			Title:       "Basic Training",
			Description: "Master the fundamentals",
			IsCompleted: true,
			Order:       2,
			Type:        "game",
		},
		{
			ID:          "quest3",
			Title:       "Advanced Skills",
			Description: "Develop expert skills",
			Order:       3,
			Type:        "card",
		},
		{
			ID:          "quest4",
			Title:       "Final Mission",
			Description: "Complete your training",
			Order:       4,
			Type:        "quiz",
		},
	}
}

// FallbackCards returns the default flashcard deck for card quests.
func FallbackCards() []domain.Card {
	return []domain.Card{
		{
			ID:    "card1",
			Title: "Gloves",
			Q1:    "What are they?",
			A1:    "Special gloves that cover astronauts' hands.",
			Q2:    "Why are they important?",
			A2:    "They keep astronauts' hands warm and safe from sharp rocks and let them grab tools and objects in space.",
			Img:   "https://storage.googleapis.com/bloom-assets/astronaut/gloves.jpg",
		},
		{
			ID:    "card2",
			Title: "Helmet",
			Q1:    "What is it?",
			A1:    "A protective covering for an astronaut's head.",
			Q2:    "Why is it important?",
			A2:    "It provides oxygen to breathe and protects from space radiation and debris.",
			Img:   "https://storage.googleapis.com/bloom-assets/astronaut/helmet.jpg",
		},
		{
			ID:    "card3",
			Title: "Space Boots",
			Q1:    "What are they?",
			A1:    "Special footwear designed for walking in space or on other planets.",
			Q2:    "Why are they important?",
			A2:    "They protect astronauts' feet from extreme temperatures and provide grip on different surfaces.",
			Img:   "https://storage.googleapis.com/bloom-assets/astronaut/boots.jpg",
		},
	}
}

// FallbackQuestions returns the default ten-question solar system quiz.
func FallbackQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            "q1",
			Question:      "What is the closest planet to the Sun?",
			Options:       []string{"Venus", "Mercury", "Earth", "Mars"},
			CorrectAnswer: 1,
			Explanation:   "Mercury is the closest planet to the Sun in our solar system.",
		},
		{
			ID:            "q2",
			Question:      "How many moons does Mars have?",
			Options:       []string{"None", "One", "Two", "Four"},
			CorrectAnswer: 2,
			Explanation:   "Mars has two small moons named Phobos and Deimos.",
		},
		{
			ID:            "q3",
			Question:      "What is the Great Red Spot on Jupiter?",
			Options:       []string{"A crater", "A volcano", "A storm", "A lake"},
			CorrectAnswer: 2,
			Explanation:   "The Great Red Spot is a giant storm that has been raging for hundreds of years.",
		},
		{
			ID:            "q4",
			Question:      "Which planet is known as the 'Ringed Planet'?",
			Options:       []string{"Jupiter", "Saturn", "Uranus", "Neptune"},
			CorrectAnswer: 1,
			Explanation:   "Saturn is known for its prominent rings made mostly of ice particles.",
		},
		{
			ID:            "q5",
			Question:      "What is the largest planet in our solar system?",
			Options:       []string{"Earth", "Saturn", "Jupiter", "Neptune"},
			CorrectAnswer: 2,
			Explanation:   "Jupiter is more than twice as massive as all other planets combined.",
		},
		{
			ID:            "q6",
			Question:      "Which planet rotates on its side?",
			Options:       []string{"Mars", "Venus", "Uranus", "Mercury"},
			CorrectAnswer: 2,
			Explanation:   "Uranus rotates on its side with an axial tilt of about 98 degrees.",
		},
		{
			ID:            "q7",
			Question:      "What is the hottest planet in our solar system?",
			Options:       []string{"Mercury", "Venus", "Mars", "Jupiter"},
			CorrectAnswer: 1,
			Explanation:   "Venus is the hottest planet with an average surface temperature of about 462C.",
		},
		{
			ID:            "q8",
			Question:      "Which planet is known as the 'Red Planet'?",
			Options:       []string{"Venus", "Jupiter", "Mercury", "Mars"},
			CorrectAnswer: 3,
			Explanation:   "Iron minerals in the Martian soil oxidize, making it look red.",
		},
		{
			ID:            "q9",
			Question:      "Which planet has the longest day?",
			Options:       []string{"Earth", "Jupiter", "Venus", "Saturn"},
			CorrectAnswer: 2,
			Explanation:   "Venus takes about 243 Earth days to rotate once.",
		},
		{
			ID:            "q10",
			Question:      "Which is the only planet that rotates clockwise?",
			Options:       []string{"Uranus", "Venus", "Neptune", "Jupiter"},
			CorrectAnswer: 1,
			Explanation:   "Venus rotates clockwise; all other planets rotate counterclockwise.",
		},
	}
}
