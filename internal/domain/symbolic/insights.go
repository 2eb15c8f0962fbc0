package symbolic

import (
	"fmt"
	"time"

	"github.com/mythwell/field-api/internal/domain"
)

// EmptyStateInsight is the single insight shown to a user with no entries.
// Deliberately positive copy rather than an error message.
const EmptyStateInsight = "Start journaling to see your patterns emerge."

// userInsights evaluates the fixed, ordered per-user rule list. Rules are
// not mutually exclusive; each may contribute one line, and the emitted
// order always matches rule order. At most four lines are produced.
func userInsights(
	summary *domain.JournalAnalyticsSummary,
	sorted []*domain.Entry,
	now time.Time,
	params *Params,
) []string {
	insights := make([]string, 0, 4)

	// Rule 1: name the top symbol once a rhythm exists.
	if summary.EntryCount >= 3 && len(summary.Symbols) > 0 {
		top := summary.Symbols[0]
		insights = append(insights, fmt.Sprintf(
			"The symbol %q has appeared in %d of your entries. A thread worth following.",
			top.Symbol, top.Count))
	}

	// Rule 2: a single archetype dominating the user's archetypal activity.
	if len(summary.Archetypes) > 0 && summary.Archetypes[0].Percentage > 50 {
		insights = append(insights, fmt.Sprintf(
			"The %s archetype is dominant in your journey right now.",
			summary.Archetypes[0].Archetype))
	}

	// Rule 3: transformation energy over the most recent entries.
	if summary.EntryCount >= params.RecentEntryCount {
		if mean, ok := recentScoreMean(sorted, params.RecentEntryCount); ok {
			switch {
			case mean > params.HighTransformation:
				insights = append(insights,
					"You're in a period of high transformation energy.")
			case mean < params.LowTransformation:
				insights = append(insights,
					"You're in a quieter, reflective period, a natural part of the spiral.")
			}
		}
	}

	// Rule 4: symbolic diversity inside the recent window.
	if n := recentDistinctSymbols(sorted, now, params); n >= params.DiversityInsightFloor {
		insights = append(insights, fmt.Sprintf(
			"Rich symbolic diversity this week: %d distinct symbols are moving through your entries.",
			n))
	}

	return insights
}

// recentScoreMean averages the transformation scores of the last n analyzed
// entries. Returns false when no analyzed entries exist.
func recentScoreMean(sorted []*domain.Entry, n int) (float64, bool) {
	var scores []float64
	for i := len(sorted) - 1; i >= 0 && len(scores) < n; i-- {
		if sorted[i].Analyzed() {
			scores = append(scores, sorted[i].Analysis.TransformationScore)
		}
	}

	if len(scores) == 0 {
		return 0, false
	}

	total := 0.0
	for _, score := range scores {
		total += score
	}
	return total / float64(len(scores)), true
}

// recentDistinctSymbols counts distinct symbols across entries inside the
// trailing recent window.
func recentDistinctSymbols(sorted []*domain.Entry, now time.Time, params *Params) int {
	cutoff := now.Add(-params.RecentWindow)
	seen := make(map[string]struct{})
	for _, entry := range sorted {
		if !entry.Timestamp.After(cutoff) || !entry.Analyzed() {
			continue
		}
		for _, symbol := range entry.Analysis.Symbols {
			seen[symbol] = struct{}{}
		}
	}
	return len(seen)
}

// fieldInsights evaluates the fixed, ordered collective rule list,
// producing up to four lines for the whole cohort.
func fieldInsights(
	waves []domain.SymbolicWave,
	archetypes []domain.ArchetypeActivation,
	params *Params,
) []string {
	insights := make([]string, 0, 4)

	// Rule 1: the strongest wave in the field.
	if len(waves) > 0 {
		top := waves[0]
		insights = append(insights, fmt.Sprintf(
			"%q is the strongest current in the field, carried by %d %s.",
			top.Symbol, top.Users, plural(top.Users, "journaler", "journalers")))
	}

	// Rule 2: the most active archetype across the cohort.
	if len(archetypes) > 0 {
		top := archetypes[0]
		insights = append(insights, fmt.Sprintf(
			"The %s archetype is most active across the field (%.0f%% of archetypal energy).",
			top.Archetype, top.Percentage))
	}

	// Rule 3: simultaneous rising waves.
	rising := 0
	for _, wave := range waves {
		if wave.Trend == domain.TrendRising {
			rising++
		}
	}
	if rising >= params.RisingWaveInsightFloor {
		insights = append(insights, fmt.Sprintf(
			"%d symbolic waves are rising at the same time. The field is quickening.",
			rising))
	}

	// Rule 4: symbols shared across users.
	shared := 0
	for _, wave := range waves {
		if wave.Users > 1 {
			shared++
		}
	}
	if shared > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d %s resonating across multiple journalers.",
			shared, plural(shared, "symbol is", "symbols are")))
	}

	return insights
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
