// Package postgres implements the content store over JSONB documents,
// mirroring the document-database paths of the original backend:
// {domain}/{ageCategory}/{subjectId}/quests[/{questId}/cards|questions].
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"bloom-quest-service/internal/domain"
)

const (
	itemKindCard     = "card"
	itemKindQuestion = "question"
)

// Store reads and writes learning-content documents in Postgres. The
// content domain (e.g. "astronaut") is fixed per instance.
type Store struct {
	pool          *pgxpool.Pool
	contentDomain string
}

// NewStore builds a store over a pgx pool for one content domain.
func NewStore(pool *pgxpool.Pool, contentDomain string) *Store {
	return &Store{pool: pool, contentDomain: contentDomain}
}

// FetchQuests reads all quest documents under a subject path. Ordering by
// the order field is the caller's concern.
func (s *Store) FetchQuests(ctx context.Context, subject, age string) ([]domain.Quest, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data FROM quests WHERE domain=$1 AND age_category=$2 AND subject_id=$3`,
		s.contentDomain, age, subject)
	if err != nil {
		return nil, fmt.Errorf("fetch quests: %w", err)
	}
	defer rows.Close()

	var quests []domain.Quest
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan quest: %w", err)
		}
		var quest domain.Quest
		if err := json.Unmarshal(raw, &quest); err != nil {
			return nil, fmt.Errorf("unmarshal quest %s: %w", id, err)
		}
		quest.ID = id
		quests = append(quests, quest)
	}
	return quests, rows.Err()
}

// FetchCards reads the card documents of a quest, lexicographically by id.
func (s *Store) FetchCards(ctx context.Context, subject, age, questID string) ([]domain.Card, error) {
	rows, err := s.queryItems(ctx, subject, age, questID, itemKindCard)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		var card domain.Card
		if err := json.Unmarshal(raw, &card); err != nil {
			return nil, fmt.Errorf("unmarshal card %s: %w", id, err)
		}
		card.ID = id
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// FetchQuestions reads the question documents of a quest, lexicographically
// by id.
func (s *Store) FetchQuestions(ctx context.Context, subject, age, questID string) ([]domain.Question, error) {
	rows, err := s.queryItems(ctx, subject, age, questID, itemKindQuestion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var question domain.Question
		if err := json.Unmarshal(raw, &question); err != nil {
			return nil, fmt.Errorf("unmarshal question %s: %w", id, err)
		}
		question.ID = id
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

func (s *Store) queryItems(ctx context.Context, subject, age, questID, kind string) (pgx.Rows, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, data FROM quest_items
		 WHERE domain=$1 AND age_category=$2 AND subject_id=$3 AND quest_id=$4 AND kind=$5
		 ORDER BY id`,
		s.contentDomain, age, subject, questID, kind)
	if err != nil {
		return nil, fmt.Errorf("fetch %ss: %w", kind, err)
	}
	return rows, nil
}

// MarkQuestComplete performs the single-field completion update on one
// quest document.
func (s *Store) MarkQuestComplete(ctx context.Context, subject, age, questID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE quests SET data = jsonb_set(data, '{isCompleted}', 'true'::jsonb)
		 WHERE domain=$1 AND age_category=$2 AND subject_id=$3 AND id=$4`,
		s.contentDomain, age, subject, questID)
	if err != nil {
		return fmt.Errorf("mark quest complete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestNotFound
	}
	return nil
}

// SetRecommendation writes a career recommendation back to a user profile.
func (s *Store) SetRecommendation(ctx context.Context, userID, recommendation string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, recommendation) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET recommendation = EXCLUDED.recommendation`,
		userID, recommendation)
	if err != nil {
		return fmt.Errorf("set recommendation: %w", err)
	}
	return nil
}

// UpsertQuest writes one quest document. Used by seeding and tests.
func (s *Store) UpsertQuest(ctx context.Context, subject, age string, quest domain.Quest) error {
	data, err := json.Marshal(quest)
	if err != nil {
		return fmt.Errorf("marshal quest: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO quests (domain, age_category, subject_id, id, data)
		 VALUES ($1, $2, $3, $4, $5::jsonb)
		 ON CONFLICT (domain, age_category, subject_id, id) DO UPDATE SET data = EXCLUDED.data`,
		s.contentDomain, age, subject, quest.ID, string(data))
	if err != nil {
		return fmt.Errorf("upsert quest: %w", err)
	}
	return nil
}

// UpsertCard writes one card document under a quest.
func (s *Store) UpsertCard(ctx context.Context, subject, age, questID string, card domain.Card) error {
	data, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("marshal card: %w", err)
	}
	return s.upsertItem(ctx, subject, age, questID, itemKindCard, card.ID, data)
}

// UpsertQuestion writes one question document under a quest.
func (s *Store) UpsertQuestion(ctx context.Context, subject, age, questID string, question domain.Question) error {
	data, err := json.Marshal(question)
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}
	return s.upsertItem(ctx, subject, age, questID, itemKindQuestion, question.ID, data)
}

func (s *Store) upsertItem(ctx context.Context, subject, age, questID, kind, id string, data []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO quest_items (domain, age_category, subject_id, quest_id, kind, id, data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)
		 ON CONFLICT (domain, age_category, subject_id, quest_id, kind, id) DO UPDATE SET data = EXCLUDED.data`,
		s.contentDomain, age, subject, questID, kind, id, string(data))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", kind, err)
	}
	return nil
}
