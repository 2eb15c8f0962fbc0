package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mythwell/field-api/internal/domain"
	"github.com/mythwell/field-api/internal/domain/symbolic"
	"github.com/mythwell/field-api/internal/store"
)

// Option customizes a single analytics call.
type Option func(*callOptions)

type callOptions struct {
	now         time.Time
	explicitNow bool
}

// WithNow overrides the reference time used for recency windows (trend
// classification, trailing-window cutoffs). An explicit now also bypasses
// the revision cache, keeping replayed calls fully deterministic.
func WithNow(now time.Time) Option {
	return func(o *callOptions) {
		o.now = now
		o.explicitNow = true
	}
}

func resolveOptions(opts []Option) callOptions {
	resolved := callOptions{now: time.Now().UTC()}
	for _, opt := range opts {
		opt(&resolved)
	}
	return resolved
}

// AnalyticsService computes per-user and field-level analytics summaries.
// Both calls are pure functions of the current entry snapshot and the
// reference time; callers may invoke them concurrently.
type AnalyticsService interface {
	// UserAnalytics reads all entries for the user and returns the full
	// per-user summary. A user with zero entries receives the well-defined
	// empty summary, never an error; a store read failure is surfaced as
	// an error so the two remain distinguishable.
	UserAnalytics(ctx context.Context, userID uuid.UUID, opts ...Option) (*domain.JournalAnalyticsSummary, error)

	// FieldAnalytics aggregates each user in the cohort and merges the
	// results into the collective view. An empty cohort returns the empty
	// field summary.
	FieldAnalytics(ctx context.Context, userIDs []uuid.UUID, opts ...Option) (*domain.FieldAnalyticsSummary, error)
}

// analyticsService is the standard implementation of AnalyticsService.
type analyticsService struct {
	entryStore store.EntryStore
	params     *symbolic.Params
	cache      *summaryCache
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// NewAnalyticsService creates an AnalyticsService backed by the given
// entry store. A nil params uses engine defaults; a cacheTTL of zero
// disables the revision cache. If logger is nil, a default logger is used.
func NewAnalyticsService(
	entryStore store.EntryStore,
	params *symbolic.Params,
	cacheTTL time.Duration,
	logger *slog.Logger,
) (AnalyticsService, error) {
	if entryStore == nil {
		return nil, errors.New("entryStore cannot be nil")
	}
	if params == nil {
		params = symbolic.NewDefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &analyticsService{
		entryStore: entryStore,
		params:     params,
		cache:      newSummaryCache(),
		cacheTTL:   cacheTTL,
		logger:     logger.With(slog.String("component", "analytics_service")),
	}, nil
}

// UserAnalytics implements AnalyticsService.UserAnalytics.
func (s *analyticsService) UserAnalytics(
	ctx context.Context,
	userID uuid.UUID,
	opts ...Option,
) (*domain.JournalAnalyticsSummary, error) {
	resolved := resolveOptions(opts)
	return s.userSummary(ctx, userID, resolved)
}

// FieldAnalytics implements AnalyticsService.FieldAnalytics.
// The cohort is a set: duplicate IDs are folded and ordering normalized so
// identical cohorts always merge identically.
func (s *analyticsService) FieldAnalytics(
	ctx context.Context,
	userIDs []uuid.UUID,
	opts ...Option,
) (*domain.FieldAnalyticsSummary, error) {
	resolved := resolveOptions(opts)

	cohort := dedupeIDs(userIDs)
	if len(cohort) == 0 {
		return symbolic.EmptyFieldSummary(resolved.now), nil
	}

	summaries := make([]*domain.JournalAnalyticsSummary, 0, len(cohort))
	for _, userID := range cohort {
		summary, err := s.userSummary(ctx, userID, resolved)
		if err != nil {
			return nil, fmt.Errorf("aggregating user %s: %w", userID, err)
		}
		summaries = append(summaries, summary)
	}

	return symbolic.AggregateField(summaries, resolved.now, s.params), nil
}

// userSummary computes one user's summary, consulting the revision cache
// unless the caller pinned the reference time.
func (s *analyticsService) userSummary(
	ctx context.Context,
	userID uuid.UUID,
	resolved callOptions,
) (*domain.JournalAnalyticsSummary, error) {
	useCache := !resolved.explicitNow && s.cacheTTL > 0

	var revision store.EntryRevision
	if useCache {
		rev, err := s.entryStore.Revision(ctx, userID)
		if err != nil {
			// The full read below will surface a persistent store failure.
			s.logger.Warn("revision check failed, bypassing cache",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			useCache = false
		} else {
			revision = rev
			if cached, ok := s.cache.get(userID, revision, resolved.now, s.cacheTTL); ok {
				s.logger.Debug("serving cached summary",
					slog.String("user_id", userID.String()),
					slog.Int("entry_count", cached.EntryCount))
				return cached, nil
			}
		}
	}

	entries, err := s.entryStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading entries for user %s: %w", userID, err)
	}

	summary := symbolic.AggregateUser(userID, entries, resolved.now, s.params)

	if useCache {
		s.cache.put(userID, revision, resolved.now, summary)
	}

	return summary, nil
}

// dedupeIDs folds duplicates and orders the cohort deterministically.
func dedupeIDs(userIDs []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(userIDs))
	out := make([]uuid.UUID, 0, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
