package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mythwell/field-api/internal/domain"
	"github.com/mythwell/field-api/internal/platform/logger"
	"github.com/mythwell/field-api/internal/store"
)

// PostgresEntryStore implements the store.EntryStore interface using a
// PostgreSQL database as the storage backend. The product's capture
// pipeline owns writes to the entries table; this store only reads.
type PostgresEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEntryStore creates a new PostgreSQL implementation of the
// EntryStore interface. It accepts a database connection or transaction
// managed by the caller. If logger is nil, a default logger will be used.
func NewPostgresEntryStore(db store.DBTX, log *slog.Logger) *PostgresEntryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresEntryStore{
		db:     db,
		logger: log.With(slog.String("component", "entry_store")),
	}
}

// Ensure PostgresEntryStore implements store.EntryStore
var _ store.EntryStore = (*PostgresEntryStore)(nil)

// FindByUser implements store.EntryStore.FindByUser.
// Rows that cannot be normalized into a valid domain.Entry are logged and
// skipped rather than failing the whole read; the engine must only ever
// see well-formed records.
func (s *PostgresEntryStore) FindByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, mode, element, is_voice, word_count,
		       duration_seconds, analysis, created_at
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query entries",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("%w: %v", store.ErrReadFailed, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close entry rows", slog.String("error", cerr.Error()))
		}
	}()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", store.ErrReadFailed, err)
		}

		if verr := entry.Validate(); verr != nil {
			log.Warn("skipping malformed entry row",
				slog.String("error", verr.Error()),
				slog.String("entry_id", entry.ID.String()))
			continue
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrReadFailed, err)
	}

	log.Debug("entries loaded",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(entries)))
	return entries, nil
}

// Revision implements store.EntryStore.Revision with a single aggregate
// query; it never materializes entry rows.
func (s *PostgresEntryStore) Revision(
	ctx context.Context,
	userID uuid.UUID,
) (store.EntryRevision, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COUNT(*), MAX(created_at) FROM entries WHERE user_id = $1`

	var count int
	var latest sql.NullTime
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count, &latest); err != nil {
		log.Error("failed to read entry revision",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return store.EntryRevision{}, fmt.Errorf("%w: %v", store.ErrReadFailed, err)
	}

	rev := store.EntryRevision{Count: count}
	if latest.Valid {
		rev.Latest = latest.Time
	}
	return rev, nil
}

// scanEntry maps one row onto a domain.Entry, normalizing nullable
// columns and the JSONB analysis payload. An unparseable payload drops
// the analysis, not the entry.
func scanEntry(rows *sql.Rows) (*domain.Entry, error) {
	var (
		entry    domain.Entry
		element  sql.NullString
		duration sql.NullInt64
		analysis []byte
	)

	err := rows.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Mode,
		&element,
		&entry.IsVoice,
		&entry.WordCount,
		&duration,
		&analysis,
		&entry.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	if element.Valid {
		entry.Element = domain.Element(element.String)
	}
	if duration.Valid {
		entry.DurationSeconds = int(duration.Int64)
	}

	if len(analysis) > 0 {
		var parsed domain.Analysis
		if uerr := json.Unmarshal(analysis, &parsed); uerr == nil {
			entry.Analysis = &parsed
		} else {
			slog.Warn("dropping unparseable analysis payload",
				slog.String("entry_id", entry.ID.String()),
				slog.String("error", uerr.Error()))
		}
	}

	return &entry, nil
}
