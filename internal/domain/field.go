package domain

import "time"

// Trend classifies a count series by how concentrated it is in the
// recent window.
type Trend string

// Possible trend values
const (
	TrendRising Trend = "rising"
	TrendStable Trend = "stable"
	TrendFading Trend = "fading"
)

// FieldMetrics holds the headline numbers for a cohort.
type FieldMetrics struct {
	TotalUsers   int       `json:"total_users"`
	TotalEntries int       `json:"total_entries"`
	TotalSymbols int       `json:"total_symbols"` // distinct symbols across the cohort
	AvgCoherence float64   `json:"avg_coherence"` // mean of per-user coherence scores
	LastUpdated  time.Time `json:"last_updated"`
}

// SymbolicWave is the cross-user momentum of a single symbol.
// Contributing users are retained only as a cardinality; a wave never
// exposes which individuals carried it.
type SymbolicWave struct {
	Symbol string `json:"symbol"`

	// Velocity is mentions per day since the symbol was first seen in
	// the cohort, with a minimum one-day denominator.
	Velocity float64 `json:"velocity"`

	// Momentum is the total mention count across the cohort.
	Momentum int `json:"momentum"`

	// Peak is the latest timestamp at which any user touched the symbol.
	Peak time.Time `json:"peak"`

	// Users is the number of distinct contributing users.
	Users int `json:"users"`

	Trend Trend `json:"trend"`
}

// ArchetypeActivation is one archetype's share of all archetype mentions
// across the cohort.
type ArchetypeActivation struct {
	Archetype  string  `json:"archetype"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Users      int     `json:"users"`
}

// TransformationCurrent merges one calendar day's transformation activity
// across the cohort.
type TransformationCurrent struct {
	Date       string  `json:"date"` // "2006-01-02", UTC
	AvgScore   float64 `json:"avg_score"`
	EntryCount int     `json:"entry_count"`
}

// CollectivePattern is a rule-detected field-level phenomenon.
type CollectivePattern struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Intensity   float64 `json:"intensity"`
	Users       int     `json:"users"`

	// ExampleSymbols illustrate the pattern, capped at four.
	ExampleSymbols []string `json:"example_symbols"`
}

// FieldAnalyticsSummary is the complete collective aggregation result for
// a cohort of users.
type FieldAnalyticsSummary struct {
	Metrics    FieldMetrics            `json:"metrics"`
	Waves      []SymbolicWave          `json:"waves"`      // top waves by momentum
	Archetypes []ArchetypeActivation   `json:"archetypes"` // sorted by percentage descending
	Currents   []TransformationCurrent `json:"currents"`   // trailing window, ascending by date
	Patterns   []CollectivePattern     `json:"patterns"`
	Insights   []string                `json:"insights"`
}
