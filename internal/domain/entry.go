package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// JournalMode identifies which journaling flow produced an entry.
type JournalMode string

// Possible journaling modes
const (
	ModeFree      JournalMode = "free"
	ModeDream     JournalMode = "dream"
	ModeEmotional JournalMode = "emotional"
	ModeShadow    JournalMode = "shadow"
	ModeDirection JournalMode = "direction"
)

// Element is the elemental tag a user may assign to an entry.
type Element string

// Possible elements
const (
	ElementFire   Element = "fire"
	ElementWater  Element = "water"
	ElementEarth  Element = "earth"
	ElementAir    Element = "air"
	ElementAether Element = "aether"
)

// Common validation errors for Entry and Analysis
var (
	ErrEmptyEntryID           = errors.New("entry ID cannot be empty")
	ErrEmptyEntryUserID       = errors.New("entry user ID cannot be empty")
	ErrEmptyEntryTimestamp    = errors.New("entry timestamp cannot be zero")
	ErrInvalidJournalMode     = errors.New("invalid journal mode")
	ErrInvalidElement         = errors.New("invalid element")
	ErrNegativeWordCount      = errors.New("entry word count cannot be negative")
	ErrNegativeDuration       = errors.New("entry duration cannot be negative")
	ErrScoreOutOfRange        = errors.New("transformation score must be between 0 and 1")
	ErrEmptyAnalysisSymbols   = errors.New("analysis symbols cannot contain empty strings")
	ErrEmptyAnalysisArchetype = errors.New("analysis archetypes cannot contain empty strings")
)

// Analysis holds the analyzer-produced annotations for a single entry.
// It is produced by an external analyzer and consumed as read-only input;
// the engine never writes these fields.
type Analysis struct {
	// Symbols are recurring motifs extracted from the entry content.
	// A symbol listed more than once still counts as one occurrence
	// for frequency purposes.
	Symbols []string `json:"symbols"`

	// Archetypes are psychological/narrative pattern labels.
	Archetypes []string `json:"archetypes"`

	// EmotionalTone is the single dominant tone of the entry.
	EmotionalTone string `json:"emotional_tone"`

	// TransformationScore is the analyzer's [0,1] assessment of
	// change/growth intensity in the entry.
	TransformationScore float64 `json:"transformation_score"`
}

// Validate checks if the Analysis has well-formed data.
func (a *Analysis) Validate() error {
	if a.TransformationScore < 0 || a.TransformationScore > 1 {
		return ErrScoreOutOfRange
	}

	for _, s := range a.Symbols {
		if s == "" {
			return ErrEmptyAnalysisSymbols
		}
	}

	for _, arch := range a.Archetypes {
		if arch == "" {
			return ErrEmptyAnalysisArchetype
		}
	}

	return nil
}

// Entry represents one journaling or voice session. Entries are owned by
// the entry store and are read-only inside the engine.
type Entry struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	Mode            JournalMode `json:"mode"`
	Timestamp       time.Time   `json:"timestamp"`
	WordCount       int         `json:"word_count"`
	DurationSeconds int         `json:"duration_seconds,omitempty"` // voice entries only
	IsVoice         bool        `json:"is_voice"`
	Element         Element     `json:"element,omitempty"` // empty when untagged

	// Analysis is nil until the external analyzer has processed the entry.
	// Unanalyzed entries still contribute to totals and mode distributions.
	Analysis *Analysis `json:"analysis,omitempty"`
}

// Validate checks if the Entry has valid data.
// Returns an error if any field fails validation.
func (e *Entry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEntryID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyEntryUserID
	}

	if e.Timestamp.IsZero() {
		return ErrEmptyEntryTimestamp
	}

	if !isValidJournalMode(e.Mode) {
		return ErrInvalidJournalMode
	}

	if e.Element != "" && !isValidElement(e.Element) {
		return ErrInvalidElement
	}

	if e.WordCount < 0 {
		return ErrNegativeWordCount
	}

	if e.DurationSeconds < 0 {
		return ErrNegativeDuration
	}

	if e.Analysis != nil {
		if err := e.Analysis.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Analyzed reports whether the entry carries analyzer annotations.
func (e *Entry) Analyzed() bool {
	return e.Analysis != nil
}

// isValidJournalMode checks if the given mode is a valid JournalMode.
func isValidJournalMode(mode JournalMode) bool {
	switch mode {
	case ModeFree, ModeDream, ModeEmotional, ModeShadow, ModeDirection:
		return true
	default:
		return false
	}
}

// isValidElement checks if the given element is a valid Element.
func isValidElement(element Element) bool {
	switch element {
	case ElementFire, ElementWater, ElementEarth, ElementAir, ElementAether:
		return true
	default:
		return false
	}
}
