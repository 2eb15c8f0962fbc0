package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/mythwell/field-api/internal/domain"
	"github.com/mythwell/field-api/internal/store"
)

// mockEntryStore implements store.EntryStore with function fields so each
// test can script exactly the behavior it needs.
type mockEntryStore struct {
	findByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error)
	revisionFn   func(ctx context.Context, userID uuid.UUID) (store.EntryRevision, error)

	findCalls     int
	revisionCalls int
}

func (m *mockEntryStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	m.findCalls++
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockEntryStore) Revision(ctx context.Context, userID uuid.UUID) (store.EntryRevision, error) {
	m.revisionCalls++
	if m.revisionFn != nil {
		return m.revisionFn(ctx, userID)
	}
	return store.EntryRevision{}, nil
}

var serviceNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func analyzedEntry(userID uuid.UUID, ts time.Time, symbols []string, score float64) *domain.Entry {
	return &domain.Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Mode:      domain.ModeFree,
		Timestamp: ts,
		WordCount: 120,
		Analysis: &domain.Analysis{
			Symbols:             symbols,
			EmotionalTone:       "calm",
			TransformationScore: score,
		},
	}
}

func TestNewAnalyticsServiceNilStore(t *testing.T) {
	t.Parallel()

	svc, err := NewAnalyticsService(nil, nil, 0, nil)
	assert.Nil(t, svc)
	assert.EqualError(t, err, "entryStore cannot be nil")
}

func TestUserAnalyticsEmptyUser(t *testing.T) {
	t.Parallel()

	mock := &mockEntryStore{}
	svc, err := NewAnalyticsService(mock, nil, 0, nil)
	require.NoError(t, err)

	summary, err := svc.UserAnalytics(context.Background(), uuid.New(), WithNow(serviceNow))
	require.NoError(t, err)
	assert.Zero(t, summary.EntryCount)
	assert.Equal(t, []string{"Start journaling to see your patterns emerge."}, summary.Insights)
}

func TestUserAnalyticsStoreErrorIsNotEmpty(t *testing.T) {
	t.Parallel()

	readErr := errors.New("connection reset")
	mock := &mockEntryStore{
		findByUserFn: func(context.Context, uuid.UUID) ([]*domain.Entry, error) {
			return nil, readErr
		},
	}
	svc, err := NewAnalyticsService(mock, nil, 0, nil)
	require.NoError(t, err)

	summary, err := svc.UserAnalytics(context.Background(), uuid.New(), WithNow(serviceNow))
	assert.Nil(t, summary)
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
}

func TestUserAnalyticsAggregates(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	mock := &mockEntryStore{
		findByUserFn: func(context.Context, uuid.UUID) ([]*domain.Entry, error) {
			return []*domain.Entry{
				analyzedEntry(userID, serviceNow.Add(-48*time.Hour), []string{"River"}, 0.4),
				analyzedEntry(userID, serviceNow.Add(-24*time.Hour), []string{"River", "Door"}, 0.8),
			}, nil
		},
	}
	svc, err := NewAnalyticsService(mock, nil, 0, nil)
	require.NoError(t, err)

	summary, err := svc.UserAnalytics(context.Background(), userID, WithNow(serviceNow))
	require.NoError(t, err)
	assert.Equal(t, userID, summary.UserID)
	assert.Equal(t, 2, summary.EntryCount)
	require.NotEmpty(t, summary.Symbols)
	assert.Equal(t, "River", summary.Symbols[0].Symbol)
	assert.Equal(t, 2, summary.Symbols[0].Count)
}

func TestUserAnalyticsCacheHit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	latest := time.Now().UTC().Add(-time.Hour)
	mock := &mockEntryStore{
		revisionFn: func(context.Context, uuid.UUID) (store.EntryRevision, error) {
			return store.EntryRevision{Count: 1, Latest: latest}, nil
		},
		findByUserFn: func(context.Context, uuid.UUID) ([]*domain.Entry, error) {
			return []*domain.Entry{analyzedEntry(userID, latest, []string{"River"}, 0.5)}, nil
		},
	}
	svc, err := NewAnalyticsService(mock, nil, time.Minute, nil)
	require.NoError(t, err)

	first, err := svc.UserAnalytics(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.UserAnalytics(context.Background(), userID)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, mock.findCalls)
	assert.Equal(t, 2, mock.revisionCalls)
}

func TestUserAnalyticsCacheInvalidatedByRevisionChange(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	latest := time.Now().UTC().Add(-time.Hour)
	count := 1
	mock := &mockEntryStore{
		findByUserFn: func(context.Context, uuid.UUID) ([]*domain.Entry, error) {
			return []*domain.Entry{analyzedEntry(userID, latest, []string{"River"}, 0.5)}, nil
		},
	}
	mock.revisionFn = func(context.Context, uuid.UUID) (store.EntryRevision, error) {
		return store.EntryRevision{Count: count, Latest: latest}, nil
	}
	svc, err := NewAnalyticsService(mock, nil, time.Minute, nil)
	require.NoError(t, err)

	_, err = svc.UserAnalytics(context.Background(), userID)
	require.NoError(t, err)

	// A new entry bumps the revision; the cached summary must not be served.
	count = 2
	_, err = svc.UserAnalytics(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 2, mock.findCalls)
}

func TestUserAnalyticsExplicitNowBypassesCache(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	mock := &mockEntryStore{
		findByUserFn: func(context.Context, uuid.UUID) ([]*domain.Entry, error) {
			return nil, nil
		},
	}
	svc, err := NewAnalyticsService(mock, nil, time.Minute, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.UserAnalytics(context.Background(), userID, WithNow(serviceNow))
		require.NoError(t, err)
	}

	assert.Zero(t, mock.revisionCalls)
	assert.Equal(t, 3, mock.findCalls)
}

func TestUserAnalyticsRevisionErrorFallsBackToFullRead(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	mock := &mockEntryStore{
		revisionFn: func(context.Context, uuid.UUID) (store.EntryRevision, error) {
			return store.EntryRevision{}, errors.New("timeout")
		},
		findByUserFn: func(context.Context, uuid.UUID) ([]*domain.Entry, error) {
			return nil, nil
		},
	}
	svc, err := NewAnalyticsService(mock, nil, time.Minute, nil)
	require.NoError(t, err)

	summary, err := svc.UserAnalytics(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, summary.EntryCount)
	assert.Equal(t, 1, mock.findCalls)
}

func TestFieldAnalyticsEmptyCohort(t *testing.T) {
	t.Parallel()

	mock := &mockEntryStore{}
	svc, err := NewAnalyticsService(mock, nil, 0, nil)
	require.NoError(t, err)

	field, err := svc.FieldAnalytics(context.Background(), nil, WithNow(serviceNow))
	require.NoError(t, err)
	assert.Zero(t, field.Metrics.TotalUsers)
	assert.Zero(t, mock.findCalls)
}

func TestFieldAnalyticsDedupesCohort(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	mock := &mockEntryStore{
		findByUserFn: func(context.Context, uuid.UUID) ([]*domain.Entry, error) {
			return []*domain.Entry{analyzedEntry(userID, serviceNow.Add(-time.Hour), []string{"River"}, 0.5)}, nil
		},
	}
	svc, err := NewAnalyticsService(mock, nil, 0, nil)
	require.NoError(t, err)

	field, err := svc.FieldAnalytics(
		context.Background(),
		[]uuid.UUID{userID, userID, userID},
		WithNow(serviceNow),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, field.Metrics.TotalUsers)
	assert.Equal(t, 1, mock.findCalls)
}

func TestFieldAnalyticsMergesUsers(t *testing.T) {
	t.Parallel()

	userA := uuid.New()
	userB := uuid.New()
	entries := map[uuid.UUID][]*domain.Entry{
		userA: {analyzedEntry(userA, serviceNow.Add(-time.Hour), []string{"River"}, 0.4)},
		userB: {analyzedEntry(userB, serviceNow.Add(-2*time.Hour), []string{"River", "Door"}, 0.8)},
	}
	mock := &mockEntryStore{
		findByUserFn: func(_ context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
			return entries[userID], nil
		},
	}
	svc, err := NewAnalyticsService(mock, nil, 0, nil)
	require.NoError(t, err)

	field, err := svc.FieldAnalytics(context.Background(), []uuid.UUID{userA, userB}, WithNow(serviceNow))
	require.NoError(t, err)
	assert.Equal(t, 2, field.Metrics.TotalUsers)
	assert.Equal(t, 2, field.Metrics.TotalEntries)
	require.NotEmpty(t, field.Waves)
	assert.Equal(t, "River", field.Waves[0].Symbol)
	assert.Equal(t, 2, field.Waves[0].Users)
}

func TestFieldAnalyticsPropagatesStoreError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("relation missing")
	mock := &mockEntryStore{
		findByUserFn: func(context.Context, uuid.UUID) ([]*domain.Entry, error) {
			return nil, readErr
		},
	}
	svc, err := NewAnalyticsService(mock, nil, 0, nil)
	require.NoError(t, err)

	field, err := svc.FieldAnalytics(context.Background(), []uuid.UUID{uuid.New()}, WithNow(serviceNow))
	assert.Nil(t, field)
	assert.ErrorIs(t, err, readErr)
}
