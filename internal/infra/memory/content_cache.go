package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"bloom-quest-service/internal/domain"
)

// ContentSource is the backing store a cache reads through to.
type ContentSource interface {
	FetchQuests(ctx context.Context, subject, ageCategory string) ([]domain.Quest, error)
	FetchCards(ctx context.Context, subject, ageCategory, questID string) ([]domain.Card, error)
	FetchQuestions(ctx context.Context, subject, ageCategory, questID string) ([]domain.Question, error)
	MarkQuestComplete(ctx context.Context, subject, ageCategory, questID string) error
}

// ContentCache caches content reads with TTL to avoid repeated store hits.
// Concurrent misses for the same key collapse into one load.
type ContentCache struct {
	source ContentSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// NewContentCache wraps a source with an in-process TTL cache.
func NewContentCache(source ContentSource, ttl time.Duration) *ContentCache {
	return &ContentCache{
		source:  source,
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		entries: make(map[string]cacheEntry),
	}
}

func (c *ContentCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || !entry.expiresAt.After(c.clock()) {
		return nil, false
	}
	return entry.value, true
}

func (c *ContentCache) put(key string, value any) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expiresAt: c.clock().Add(c.ttlWithJitter())}
	c.mu.Unlock()
}

func (c *ContentCache) invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *ContentCache) load(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if value, ok := c.get(key); ok {
		return value, nil
	}
	value, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled it.
		if value, ok := c.get(key); ok {
			return value, nil
		}
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// FetchQuests serves the quest list from cache, loading on miss.
func (c *ContentCache) FetchQuests(ctx context.Context, subject, age string) ([]domain.Quest, error) {
	value, err := c.load(ctx, "quests:"+subjectKey(subject, age), func(ctx context.Context) (any, error) {
		return c.source.FetchQuests(ctx, subject, age)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Quest), nil
}

// FetchCards serves the card deck from cache, loading on miss.
func (c *ContentCache) FetchCards(ctx context.Context, subject, age, questID string) ([]domain.Card, error) {
	value, err := c.load(ctx, "cards:"+questKey(subject, age, questID), func(ctx context.Context) (any, error) {
		return c.source.FetchCards(ctx, subject, age, questID)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Card), nil
}

// FetchQuestions serves the question list from cache, loading on miss.
func (c *ContentCache) FetchQuestions(ctx context.Context, subject, age, questID string) ([]domain.Question, error) {
	value, err := c.load(ctx, "questions:"+questKey(subject, age, questID), func(ctx context.Context) (any, error) {
		return c.source.FetchQuestions(ctx, subject, age, questID)
	})
	if err != nil {
		return nil, err
	}
	return value.([]domain.Question), nil
}

// MarkQuestComplete writes through to the source and drops the cached
// quest list so the next read sees the completed flag.
func (c *ContentCache) MarkQuestComplete(ctx context.Context, subject, age, questID string) error {
	if err := c.source.MarkQuestComplete(ctx, subject, age, questID); err != nil {
		return err
	}
	c.invalidate("quests:" + subjectKey(subject, age))
	return nil
}

func (c *ContentCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
