package symbolic

import (
	"time"

	"github.com/google/uuid"
	"github.com/mythwell/field-api/internal/domain"
)

// entryBuilder assembles test entries with sensible defaults.
type entryBuilder struct {
	entry *domain.Entry
}

func newEntry(userID uuid.UUID, ts time.Time) *entryBuilder {
	return &entryBuilder{entry: &domain.Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Mode:      domain.ModeFree,
		Timestamp: ts,
		WordCount: 100,
	}}
}

func (b *entryBuilder) mode(mode domain.JournalMode) *entryBuilder {
	b.entry.Mode = mode
	return b
}

func (b *entryBuilder) element(element domain.Element) *entryBuilder {
	b.entry.Element = element
	return b
}

func (b *entryBuilder) words(n int) *entryBuilder {
	b.entry.WordCount = n
	return b
}

func (b *entryBuilder) analyzed(symbols []string, archetypes []string, tone string, score float64) *entryBuilder {
	b.entry.Analysis = &domain.Analysis{
		Symbols:             symbols,
		Archetypes:          archetypes,
		EmotionalTone:       tone,
		TransformationScore: score,
	}
	return b
}

func (b *entryBuilder) build() *domain.Entry {
	return b.entry
}
