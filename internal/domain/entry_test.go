package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validEntry() *Entry {
	return &Entry{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Mode:      ModeFree,
		Timestamp: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
		WordCount: 150,
	}
}

func TestEntryValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Entry)
		wantErr error
	}{
		{
			name:   "valid minimal entry",
			mutate: func(*Entry) {},
		},
		{
			name: "valid voice entry with element and analysis",
			mutate: func(e *Entry) {
				e.Mode = ModeDream
				e.IsVoice = true
				e.DurationSeconds = 95
				e.Element = ElementWater
				e.Analysis = &Analysis{
					Symbols:             []string{"River"},
					Archetypes:          []string{"Seeker"},
					EmotionalTone:       "wonder",
					TransformationScore: 0.6,
				}
			},
		},
		{
			name:    "missing ID",
			mutate:  func(e *Entry) { e.ID = uuid.Nil },
			wantErr: ErrEmptyEntryID,
		},
		{
			name:    "missing user ID",
			mutate:  func(e *Entry) { e.UserID = uuid.Nil },
			wantErr: ErrEmptyEntryUserID,
		},
		{
			name:    "zero timestamp",
			mutate:  func(e *Entry) { e.Timestamp = time.Time{} },
			wantErr: ErrEmptyEntryTimestamp,
		},
		{
			name:    "unknown mode",
			mutate:  func(e *Entry) { e.Mode = "lucid" },
			wantErr: ErrInvalidJournalMode,
		},
		{
			name:    "empty mode",
			mutate:  func(e *Entry) { e.Mode = "" },
			wantErr: ErrInvalidJournalMode,
		},
		{
			name:    "unknown element",
			mutate:  func(e *Entry) { e.Element = "void" },
			wantErr: ErrInvalidElement,
		},
		{
			name:   "empty element is allowed",
			mutate: func(e *Entry) { e.Element = "" },
		},
		{
			name:    "negative word count",
			mutate:  func(e *Entry) { e.WordCount = -1 },
			wantErr: ErrNegativeWordCount,
		},
		{
			name:    "negative duration",
			mutate:  func(e *Entry) { e.DurationSeconds = -10 },
			wantErr: ErrNegativeDuration,
		},
		{
			name: "analysis score above one",
			mutate: func(e *Entry) {
				e.Analysis = &Analysis{TransformationScore: 1.2}
			},
			wantErr: ErrScoreOutOfRange,
		},
		{
			name: "analysis score below zero",
			mutate: func(e *Entry) {
				e.Analysis = &Analysis{TransformationScore: -0.1}
			},
			wantErr: ErrScoreOutOfRange,
		},
		{
			name: "analysis with empty symbol",
			mutate: func(e *Entry) {
				e.Analysis = &Analysis{Symbols: []string{"River", ""}, TransformationScore: 0.5}
			},
			wantErr: ErrEmptyAnalysisSymbols,
		},
		{
			name: "analysis with empty archetype",
			mutate: func(e *Entry) {
				e.Analysis = &Analysis{Archetypes: []string{""}, TransformationScore: 0.5}
			},
			wantErr: ErrEmptyAnalysisArchetype,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			entry := validEntry()
			tc.mutate(entry)

			err := entry.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryAnalyzed(t *testing.T) {
	t.Parallel()

	entry := validEntry()
	assert.False(t, entry.Analyzed())

	entry.Analysis = &Analysis{TransformationScore: 0.3}
	assert.True(t, entry.Analyzed())
}
