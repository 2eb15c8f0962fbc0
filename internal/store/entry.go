package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mythwell/field-api/internal/domain"
)

// EntryRevision is a cheap, monotonically increasing fingerprint of a
// user's entry set. Two reads with equal revisions saw the same entries,
// which lets callers reuse cached aggregation results instead of
// recomputing on every dashboard poll.
type EntryRevision struct {
	// Count is the number of entries the user has.
	Count int

	// Latest is the timestamp of the most recent entry; zero when the
	// user has no entries.
	Latest time.Time
}

// EntryStore defines the read interface over a user's journal entries.
// Version: 1.0
type EntryStore interface {
	// FindByUser retrieves all entries for the given user in any order;
	// the engine sorts internally. Returns an empty slice, not an error,
	// when the user has no entries, so that "no entries" and "could not
	// read entries" stay distinguishable.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error)

	// Revision returns the current revision of the user's entry set
	// without materializing the entries themselves.
	Revision(ctx context.Context, userID uuid.UUID) (EntryRevision, error)
}
