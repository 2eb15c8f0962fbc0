package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mythwell/field-api/internal/domain"
	"github.com/mythwell/field-api/internal/store"
)

// cachedSummary pairs an aggregation result with the revision and
// reference time it was computed for.
type cachedSummary struct {
	revision store.EntryRevision
	now      time.Time
	summary  *domain.JournalAnalyticsSummary
}

// summaryCache holds per-user aggregation results keyed by entry-set
// revision. Cached summaries are shared between callers and treated as
// immutable; nothing downstream mutates a summary after it is built.
type summaryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]cachedSummary
}

func newSummaryCache() *summaryCache {
	return &summaryCache{entries: make(map[uuid.UUID]cachedSummary)}
}

// get returns the cached summary for the user when its revision matches
// and it was computed within ttl of the requested reference time. A stale
// "now" would silently shift every recency window, so freshness is part
// of the hit condition.
func (c *summaryCache) get(
	userID uuid.UUID,
	revision store.EntryRevision,
	now time.Time,
	ttl time.Duration,
) (*domain.JournalAnalyticsSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if cached.revision.Count != revision.Count || !cached.revision.Latest.Equal(revision.Latest) {
		return nil, false
	}

	age := now.Sub(cached.now)
	if age < 0 || age > ttl {
		return nil, false
	}

	return cached.summary, true
}

// put stores a freshly computed summary.
func (c *summaryCache) put(
	userID uuid.UUID,
	revision store.EntryRevision,
	now time.Time,
	summary *domain.JournalAnalyticsSummary,
) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = cachedSummary{revision: revision, now: now, summary: summary}
}
