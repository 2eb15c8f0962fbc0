package symbolic

import "time"

// Params defines all configurable parameters for the symbolic analytics
// engine.
type Params struct {
	// RecentWindow is the trailing window used for trend classification
	// and recency-based insights.
	RecentWindow time.Duration

	// CurrentWindowDays bounds the transformation current series.
	CurrentWindowDays int

	// WaveLimit caps the number of symbolic waves returned for a cohort.
	WaveLimit int

	// AssociatedSymbolLimit caps the co-occurring symbols attached to an
	// archetype distribution.
	AssociatedSymbolLimit int

	// ExampleSymbolLimit caps the example symbols attached to a detected
	// collective pattern.
	ExampleSymbolLimit int

	// Trend thresholds: a series is rising when more than RisingShare of
	// its activity falls inside RecentWindow, stable above StableShare,
	// fading otherwise.
	RisingShare float64
	StableShare float64

	// Coherence score weights and targets. The three weighted components
	// sum to at most 1.0 by construction.
	ConsistencyTarget    int // entry count at which consistency saturates
	ConsistencyWeight    float64
	TransformationWeight float64
	DiversityTarget      int // distinct symbols + archetypes at which diversity saturates
	DiversityWeight      float64

	// Insight thresholds.
	RecentEntryCount       int     // entries sampled for the transformation-energy insight
	HighTransformation     float64 // mean recent score above which energy is "high"
	LowTransformation      float64 // mean recent score below which the period is "quiet"
	DiversityInsightFloor  int     // distinct recent symbols needed for the diversity insight
	RisingWaveInsightFloor int     // rising waves needed for the field insight

	// MinContributors is the minimum number of distinct users a collective
	// wave, activation or pattern must have before it is surfaced. The
	// default of 1 matches the product's original behavior; raising it to
	// 2 or more prevents single-user re-identification in small cohorts.
	MinContributors int

	// DreamSymbols is the curated allow-list used by dream synchronicity
	// detection.
	DreamSymbols []string
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		RecentWindow:      7 * 24 * time.Hour,
		CurrentWindowDays: 30,

		WaveLimit:             20,
		AssociatedSymbolLimit: 5,
		ExampleSymbolLimit:    4,

		RisingShare: 0.5,
		StableShare: 0.2,

		ConsistencyTarget:    5,
		ConsistencyWeight:    0.2,
		TransformationWeight: 0.4,
		DiversityTarget:      20,
		DiversityWeight:      0.4,

		RecentEntryCount:       5,
		HighTransformation:     0.7,
		LowTransformation:      0.4,
		DiversityInsightFloor:  5,
		RisingWaveInsightFloor: 3,

		MinContributors: 1,

		DreamSymbols: []string{
			"River", "Bridge", "Path", "Door",
			"Light", "Tower", "Mirror", "Ocean",
		},
	}
}
