// Package redis caches learning content in Redis in front of the backing
// document store. Entries are JSON blobs per path with a jittered TTL;
// concurrent misses for the same key collapse into one store read.
package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"bloom-quest-service/internal/domain"
	"bloom-quest-service/internal/infra/memory"
)

// ContentCache is a Redis-backed read-through cache over a content source.
type ContentCache struct {
	client *redis.Client
	source memory.ContentSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex
}

// NewContentCache wraps a source with a Redis cache.
func NewContentCache(client *redis.Client, source memory.ContentSource, ttl time.Duration) *ContentCache {
	return &ContentCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func questsCacheKey(subject, age string) string {
	return "bloom:quests:" + subject + ":" + age
}

func cardsCacheKey(subject, age, questID string) string {
	return "bloom:cards:" + subject + ":" + age + ":" + questID
}

func questionsCacheKey(subject, age, questID string) string {
	return "bloom:questions:" + subject + ":" + age + ":" + questID
}

// fetchThrough reads a JSON blob from Redis, falling back to the source on
// a miss and filling the cache best-effort.
func (c *ContentCache) fetchThrough(ctx context.Context, key string, out any, load func(context.Context) (any, error)) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(raw, out)
	}

	value, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			return raw, nil
		}
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		return data, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(value.([]byte), out)
}

// FetchQuests serves the quest list through the cache.
func (c *ContentCache) FetchQuests(ctx context.Context, subject, age string) ([]domain.Quest, error) {
	var quests []domain.Quest
	err := c.fetchThrough(ctx, questsCacheKey(subject, age), &quests, func(ctx context.Context) (any, error) {
		return c.source.FetchQuests(ctx, subject, age)
	})
	return quests, err
}

// FetchCards serves the card deck through the cache.
func (c *ContentCache) FetchCards(ctx context.Context, subject, age, questID string) ([]domain.Card, error) {
	var cards []domain.Card
	err := c.fetchThrough(ctx, cardsCacheKey(subject, age, questID), &cards, func(ctx context.Context) (any, error) {
		return c.source.FetchCards(ctx, subject, age, questID)
	})
	return cards, err
}

// FetchQuestions serves the question list through the cache.
func (c *ContentCache) FetchQuestions(ctx context.Context, subject, age, questID string) ([]domain.Question, error) {
	var questions []domain.Question
	err := c.fetchThrough(ctx, questionsCacheKey(subject, age, questID), &questions, func(ctx context.Context) (any, error) {
		return c.source.FetchQuestions(ctx, subject, age, questID)
	})
	return questions, err
}

// MarkQuestComplete writes through to the store and drops the cached quest
// list so the completed flag is visible on the next read.
func (c *ContentCache) MarkQuestComplete(ctx context.Context, subject, age, questID string) error {
	if err := c.source.MarkQuestComplete(ctx, subject, age, questID); err != nil {
		return err
	}
	_ = c.client.Del(ctx, questsCacheKey(subject, age)).Err()
	return nil
}

func (c *ContentCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
