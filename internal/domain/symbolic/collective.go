package symbolic

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mythwell/field-api/internal/domain"
)

// EmptyFieldSummary returns the well-defined result for an empty cohort:
// all-zero metrics and empty collections, never NaN.
func EmptyFieldSummary(now time.Time) *domain.FieldAnalyticsSummary {
	return &domain.FieldAnalyticsSummary{
		Metrics:    domain.FieldMetrics{LastUpdated: now},
		Waves:      []domain.SymbolicWave{},
		Archetypes: []domain.ArchetypeActivation{},
		Currents:   []domain.TransformationCurrent{},
		Patterns:   []domain.CollectivePattern{},
		Insights:   []string{},
	}
}

// waveAccumulator merges one symbol's activity across the cohort.
type waveAccumulator struct {
	momentum    int
	users       int
	first       time.Time
	peak        time.Time
	lastSeen    []time.Time // one lastAppeared per contributing user
	shadowCount int         // mentions carried by shadow-mode entries
	dreamCount  int         // mentions carried by dream-mode entries
}

// archetypeFieldAccumulator merges one archetype's activity across the cohort.
type archetypeFieldAccumulator struct {
	count int
	users int
}

// AggregateField merges per-user summaries into the collective view. No
// user content crosses between users here; only already-aggregated
// summaries are combined, and contributing users survive solely as
// cardinalities.
func AggregateField(
	summaries []*domain.JournalAnalyticsSummary,
	now time.Time,
	params *Params,
) *domain.FieldAnalyticsSummary {
	if len(summaries) == 0 {
		return EmptyFieldSummary(now)
	}

	waves := make(map[string]*waveAccumulator)
	archetypes := make(map[string]*archetypeFieldAccumulator)

	totalEntries := 0
	coherenceSum := 0.0
	shadowEntries := 0
	shadowUsers := 0

	for _, summary := range summaries {
		totalEntries += summary.EntryCount
		coherenceSum += summary.CoherenceScore

		for _, freq := range summary.Symbols {
			acc := waves[freq.Symbol]
			if acc == nil {
				acc = &waveAccumulator{first: freq.FirstAppeared, peak: freq.LastAppeared}
				waves[freq.Symbol] = acc
			}
			acc.momentum += freq.Count
			acc.users++
			acc.lastSeen = append(acc.lastSeen, freq.LastAppeared)
			if freq.FirstAppeared.Before(acc.first) {
				acc.first = freq.FirstAppeared
			}
			if freq.LastAppeared.After(acc.peak) {
				acc.peak = freq.LastAppeared
			}
			for _, mode := range freq.Modes {
				switch mode {
				case domain.ModeShadow:
					acc.shadowCount += freq.Count
				case domain.ModeDream:
					acc.dreamCount += freq.Count
				}
			}
		}

		for _, dist := range summary.Archetypes {
			acc := archetypes[dist.Archetype]
			if acc == nil {
				acc = &archetypeFieldAccumulator{}
				archetypes[dist.Archetype] = acc
			}
			acc.count += dist.Count
			acc.users++
		}

		userShadow := 0
		for _, mode := range summary.ModeDistribution {
			if mode.Mode == domain.ModeShadow {
				userShadow = mode.Count
			}
		}
		if userShadow > 0 {
			shadowEntries += userShadow
			shadowUsers++
		}
	}

	metrics := domain.FieldMetrics{
		TotalUsers:   len(summaries),
		TotalEntries: totalEntries,
		TotalSymbols: len(waves),
		AvgCoherence: coherenceSum / float64(len(summaries)),
		LastUpdated:  now,
	}

	waveList := buildWaves(waves, now, params)
	activations := buildActivations(archetypes, params)

	return &domain.FieldAnalyticsSummary{
		Metrics:    metrics,
		Waves:      waveList,
		Archetypes: activations,
		Currents:   buildCurrents(summaries, now, params),
		Patterns: detectPatterns(
			waves, waveList, metrics, shadowEntries, shadowUsers, params),
		Insights: fieldInsights(waveList, activations, params),
	}
}

// buildWaves finalizes the merged symbol accumulators into ranked waves.
// Waves below the contributor floor are withheld entirely.
func buildWaves(waves map[string]*waveAccumulator, now time.Time, params *Params) []domain.SymbolicWave {
	out := make([]domain.SymbolicWave, 0, len(waves))
	for symbol, acc := range waves {
		if acc.users < params.MinContributors {
			continue
		}
		out = append(out, domain.SymbolicWave{
			Symbol:   symbol,
			Velocity: waveVelocity(acc.momentum, acc.first, now),
			Momentum: acc.momentum,
			Peak:     acc.peak,
			Users:    acc.users,
			Trend:    ClassifyTrend(acc.momentum, acc.lastSeen, now, params),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Momentum != out[j].Momentum {
			return out[i].Momentum > out[j].Momentum
		}
		return out[i].Symbol < out[j].Symbol
	})
	if len(out) > params.WaveLimit {
		out = out[:params.WaveLimit]
	}
	return out
}

// waveVelocity is mentions per day since the symbol was first seen, with a
// minimum one-day denominator.
func waveVelocity(momentum int, first, now time.Time) float64 {
	days := now.Sub(first).Hours() / 24
	return float64(momentum) / math.Max(1, days)
}

func buildActivations(
	archetypes map[string]*archetypeFieldAccumulator,
	params *Params,
) []domain.ArchetypeActivation {
	total := 0
	for _, acc := range archetypes {
		total += acc.count
	}

	out := make([]domain.ArchetypeActivation, 0, len(archetypes))
	for archetype, acc := range archetypes {
		if acc.users < params.MinContributors {
			continue
		}
		out = append(out, domain.ArchetypeActivation{
			Archetype:  archetype,
			Count:      acc.count,
			Percentage: percentage(acc.count, total),
			Users:      acc.users,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Archetype < out[j].Archetype
	})
	return out
}

// buildCurrents merges per-user daily patterns into the cohort's
// transformation current for the trailing window, ascending by date.
// Day averages are weighted by each user's analyzed entries for that day.
func buildCurrents(
	summaries []*domain.JournalAnalyticsSummary,
	now time.Time,
	params *Params,
) []domain.TransformationCurrent {
	cutoff := now.UTC().AddDate(0, 0, -params.CurrentWindowDays).Format(dateLayout)

	type dayMerge struct {
		entryCount int
		analyzed   int
		scoreSum   float64
	}
	days := make(map[string]*dayMerge)

	for _, summary := range summaries {
		for _, pattern := range summary.TemporalPatterns {
			if pattern.Date < cutoff {
				continue
			}
			day := days[pattern.Date]
			if day == nil {
				day = &dayMerge{}
				days[pattern.Date] = day
			}
			day.entryCount += pattern.EntryCount
			day.analyzed += pattern.AnalyzedCount
			day.scoreSum += pattern.AvgTransformation * float64(pattern.AnalyzedCount)
		}
	}

	out := make([]domain.TransformationCurrent, 0, len(days))
	for date, day := range days {
		avg := 0.0
		if day.analyzed > 0 {
			avg = day.scoreSum / float64(day.analyzed)
		}
		out = append(out, domain.TransformationCurrent{
			Date:       date,
			AvgScore:   avg,
			EntryCount: day.entryCount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// detectPatterns evaluates each collective pattern rule independently.
func detectPatterns(
	waves map[string]*waveAccumulator,
	ranked []domain.SymbolicWave,
	metrics domain.FieldMetrics,
	shadowEntries, shadowUsers int,
	params *Params,
) []domain.CollectivePattern {
	patterns := make([]domain.CollectivePattern, 0, 3)

	// Shadow Integration Wave: shadow-mode journaling outpacing the cohort.
	if shadowEntries > 2*metrics.TotalUsers && shadowUsers >= params.MinContributors {
		patterns = append(patterns, domain.CollectivePattern{
			Name: "Shadow Integration Wave",
			Description: fmt.Sprintf(
				"The field is actively integrating shadow material: %d shadow entries across %d journalers.",
				shadowEntries, shadowUsers),
			Intensity:      float64(shadowEntries),
			Users:          shadowUsers,
			ExampleSymbols: symbolsByMode(waves, true, params.ExampleSymbolLimit),
		})
	}

	// Dream Synchronicity: curated dream symbols surfacing together.
	dreamMatches := make(map[string]int)
	dreamUsers := 0
	for _, symbol := range params.DreamSymbols {
		acc := waves[symbol]
		if acc == nil || acc.dreamCount == 0 {
			continue
		}
		dreamMatches[symbol] = acc.dreamCount
		if acc.users > dreamUsers {
			dreamUsers = acc.users
		}
	}
	if len(dreamMatches) >= 3 && dreamUsers >= params.MinContributors {
		totalDream := 0
		for _, count := range dreamMatches {
			totalDream += count
		}
		patterns = append(patterns, domain.CollectivePattern{
			Name: "Dream Synchronicity",
			Description: fmt.Sprintf(
				"%d archetypal dream symbols are surfacing across the field at once.",
				len(dreamMatches)),
			Intensity:      float64(totalDream),
			Users:          dreamUsers,
			ExampleSymbols: topCounted(dreamMatches, params.ExampleSymbolLimit),
		})
	}

	// Collective Transformation Surge: sustained field-wide coherence.
	if metrics.AvgCoherence > 0.7 && metrics.TotalUsers >= params.MinContributors {
		examples := make([]string, 0, params.ExampleSymbolLimit)
		for _, wave := range ranked {
			if len(examples) == params.ExampleSymbolLimit {
				break
			}
			examples = append(examples, wave.Symbol)
		}
		patterns = append(patterns, domain.CollectivePattern{
			Name: "Collective Transformation Surge",
			Description: fmt.Sprintf(
				"Field coherence is unusually high (%.2f): the cohort is moving through change together.",
				metrics.AvgCoherence),
			Intensity:      metrics.AvgCoherence,
			Users:          metrics.TotalUsers,
			ExampleSymbols: examples,
		})
	}

	return patterns
}

// symbolsByMode picks the strongest symbols carried by shadow-mode (or,
// when shadow is false, dream-mode) entries.
func symbolsByMode(waves map[string]*waveAccumulator, shadow bool, limit int) []string {
	counts := make(map[string]int)
	for symbol, acc := range waves {
		n := acc.dreamCount
		if shadow {
			n = acc.shadowCount
		}
		if n > 0 {
			counts[symbol] = n
		}
	}
	return topCounted(counts, limit)
}
