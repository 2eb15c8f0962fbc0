package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/mythwell/field-api/internal/domain"
	"github.com/mythwell/field-api/internal/store"
)

func TestSummaryCacheFreshness(t *testing.T) {
	t.Parallel()

	cache := newSummaryCache()
	userID := uuid.New()
	revision := store.EntryRevision{Count: 3, Latest: serviceNow.Add(-time.Hour)}
	summary := &domain.JournalAnalyticsSummary{UserID: userID, EntryCount: 3}
	ttl := 30 * time.Second

	cache.put(userID, revision, serviceNow, summary)

	tests := []struct {
		name    string
		now     time.Time
		wantHit bool
	}{
		{"same instant", serviceNow, true},
		{"within ttl", serviceNow.Add(10 * time.Second), true},
		{"at ttl boundary", serviceNow.Add(ttl), true},
		{"past ttl", serviceNow.Add(ttl + time.Second), false},
		{"before cached now", serviceNow.Add(-time.Second), false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := cache.get(userID, revision, tc.now, ttl)
			assert.Equal(t, tc.wantHit, ok)
			if tc.wantHit {
				assert.Same(t, summary, got)
			}
		})
	}
}

func TestSummaryCacheRevisionMismatch(t *testing.T) {
	t.Parallel()

	cache := newSummaryCache()
	userID := uuid.New()
	latest := serviceNow.Add(-time.Hour)
	summary := &domain.JournalAnalyticsSummary{UserID: userID}

	cache.put(userID, store.EntryRevision{Count: 3, Latest: latest}, serviceNow, summary)

	_, ok := cache.get(userID, store.EntryRevision{Count: 4, Latest: latest}, serviceNow, time.Minute)
	assert.False(t, ok)

	_, ok = cache.get(userID, store.EntryRevision{Count: 3, Latest: latest.Add(time.Minute)}, serviceNow, time.Minute)
	assert.False(t, ok)

	_, ok = cache.get(uuid.New(), store.EntryRevision{Count: 3, Latest: latest}, serviceNow, time.Minute)
	assert.False(t, ok)
}
