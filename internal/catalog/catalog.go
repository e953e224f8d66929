// Package catalog holds the in-memory ordered quest list for the currently
// selected subject. It is rebuilt whenever the subject changes and owns the
// isCompleted flags; no quest is removed or reordered after load.
package catalog

import (
	"context"
	"log"
	"sort"

	"bloom-quest-service/internal/content"
	"bloom-quest-service/internal/domain"
)

// QuestSource fetches quest records for a subject from the backing store.
type QuestSource interface {
	FetchQuests(ctx context.Context, subject, ageCategory string) ([]domain.Quest, error)
}

// Catalog is the ordered quest collection for one subject.
type Catalog struct {
	subject     string
	ageCategory string
	quests      []domain.Quest
}

// Load fetches quests for the subject, sorted ascending by order (stable on
// ties). A fetch error or an empty result substitutes the fixed fallback
// list so the caller never sees an empty catalog.
func Load(ctx context.Context, src QuestSource, subject, ageCategory string) *Catalog {
	quests, err := src.FetchQuests(ctx, subject, ageCategory)
	if err != nil {
		log.Printf("fetch quests for %s/%s failed, using fallback: %v", subject, ageCategory, err)
		quests = nil
	}
	if len(quests) == 0 {
		quests = content.FallbackQuests()
	}
	sort.SliceStable(quests, func(i, j int) bool {
		return quests[i].Order < quests[j].Order
	})
	return &Catalog{subject: subject, ageCategory: ageCategory, quests: quests}
}

// Subject returns the subject this catalog was loaded for.
func (c *Catalog) Subject() string { return c.subject }

// AgeCategory returns the age category this catalog was loaded for.
func (c *Catalog) AgeCategory() string { return c.ageCategory }

// Quests returns a snapshot copy of the quest list in display order.
func (c *Catalog) Quests() []domain.Quest {
	out := make([]domain.Quest, len(c.quests))
	copy(out, c.quests)
	return out
}

// Get returns the quest with the given ID.
func (c *Catalog) Get(questID string) (domain.Quest, bool) {
	for _, q := range c.quests {
		if q.ID == questID {
			return q, true
		}
	}
	return domain.Quest{}, false
}

// MarkComplete sets isCompleted on the matching quest. It is idempotent and
// a silent no-op for unknown IDs; the list is never resorted.
func (c *Catalog) MarkComplete(questID string) {
	for i := range c.quests {
		if c.quests[i].ID == questID {
			c.quests[i].IsCompleted = true
			return
		}
	}
}

// Len returns the number of quests in the catalog.
func (c *Catalog) Len() int { return len(c.quests) }
