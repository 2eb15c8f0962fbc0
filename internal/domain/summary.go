package domain

import (
	"time"

	"github.com/google/uuid"
)

// SymbolFrequency counts how many of a user's entries mention a symbol.
// Duplicate mentions inside one entry count once.
type SymbolFrequency struct {
	Symbol        string        `json:"symbol"`
	Count         int           `json:"count"`
	FirstAppeared time.Time     `json:"first_appeared"`
	LastAppeared  time.Time     `json:"last_appeared"`
	Modes         []JournalMode `json:"modes"` // distinct modes the symbol appeared in
}

// ArchetypeDistribution describes one archetype's share of a user's
// archetypal activity.
type ArchetypeDistribution struct {
	Archetype     string    `json:"archetype"`
	Count         int       `json:"count"`
	Percentage    float64   `json:"percentage"` // of all archetype mentions for the user
	FirstAppeared time.Time `json:"first_appeared"`

	// AssociatedSymbols are the symbols most often co-occurring in entries
	// where the archetype appeared, capped at five.
	AssociatedSymbols []string `json:"associated_symbols"`
}

// EmotionalPattern describes one emotional tone's share of a user's
// analyzed entries.
type EmotionalPattern struct {
	Tone       string  `json:"tone"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TemporalPattern summarizes one calendar day (UTC) of journaling.
type TemporalPattern struct {
	Date              string  `json:"date"` // "2006-01-02", UTC
	EntryCount        int     `json:"entry_count"`
	AnalyzedCount     int     `json:"analyzed_count"`
	DominantSymbol    string  `json:"dominant_symbol,omitempty"`
	DominantArchetype string  `json:"dominant_archetype,omitempty"`
	AvgTransformation float64 `json:"avg_transformation"`
}

// ElementalResonance describes one element's share of a user's
// element-tagged entries.
type ElementalResonance struct {
	Element    Element `json:"element"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ModeDistribution describes one journaling mode's share of a user's entries.
type ModeDistribution struct {
	Mode       JournalMode `json:"mode"`
	Count      int         `json:"count"`
	Percentage float64     `json:"percentage"`
}

// JournalAnalyticsSummary is the complete per-user aggregation result.
// It is a pure function of the user's entry set and the reference time:
// identical input produces a structurally identical summary, including
// list ordering.
type JournalAnalyticsSummary struct {
	UserID     uuid.UUID `json:"user_id"`
	EntryCount int       `json:"entry_count"`
	TotalWords int       `json:"total_words"`
	FirstEntry time.Time `json:"first_entry"`
	LastEntry  time.Time `json:"last_entry"`

	Symbols            []SymbolFrequency       `json:"symbols"`
	Archetypes         []ArchetypeDistribution `json:"archetypes"`
	EmotionalPatterns  []EmotionalPattern      `json:"emotional_patterns"`
	TemporalPatterns   []TemporalPattern       `json:"temporal_patterns"`
	ElementalResonance []ElementalResonance    `json:"elemental_resonance"`
	ModeDistribution   []ModeDistribution      `json:"mode_distribution"`

	// TransformationVelocity is the mean absolute score change between
	// consecutive analyzed entries; 0 with fewer than two analyzed entries.
	TransformationVelocity float64 `json:"transformation_velocity"`

	// CoherenceScore combines journaling consistency, transformation
	// intensity and symbolic diversity into a single [0,1] measure.
	CoherenceScore float64 `json:"coherence_score"`

	Insights []string `json:"insights"`
}
