package symbolic

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mythwell/field-api/internal/domain"
)

// dateLayout is the UTC calendar-day key used by temporal grouping.
const dateLayout = "2006-01-02"

// EmptyUserSummary returns the well-defined summary for a user with no
// entries. Zero entries is not an error path; dashboards render the single
// empty-state insight as approachable copy.
func EmptyUserSummary(userID uuid.UUID) *domain.JournalAnalyticsSummary {
	return &domain.JournalAnalyticsSummary{
		UserID:             userID,
		Symbols:            []domain.SymbolFrequency{},
		Archetypes:         []domain.ArchetypeDistribution{},
		EmotionalPatterns:  []domain.EmotionalPattern{},
		TemporalPatterns:   []domain.TemporalPattern{},
		ElementalResonance: []domain.ElementalResonance{},
		ModeDistribution:   []domain.ModeDistribution{},
		Insights:           []string{EmptyStateInsight},
	}
}

// symbolAccumulator collects per-symbol state during the single grouping pass.
type symbolAccumulator struct {
	count int
	first time.Time
	last  time.Time
	modes map[domain.JournalMode]struct{}
}

// archetypeAccumulator collects per-archetype state during the grouping pass.
type archetypeAccumulator struct {
	count      int
	first      time.Time
	associated map[string]int // co-occurring symbol -> co-occurrence count
}

// dayAccumulator collects per-calendar-day state during the grouping pass.
type dayAccumulator struct {
	entryCount int
	analyzed   int
	scoreSum   float64
	symbols    map[string]int
	archetypes map[string]int
}

// AggregateUser computes the full analytics summary for one user's entries.
//
// Entries are accepted in any order; the aggregator sorts them
// chronologically itself. Entries without analysis contribute to totals,
// temporal entry counts and the mode distribution but are excluded from
// symbol, archetype and emotional distributions. The result is a pure
// function of (entries, now).
func AggregateUser(
	userID uuid.UUID,
	entries []*domain.Entry,
	now time.Time,
	params *Params,
) *domain.JournalAnalyticsSummary {
	if len(entries) == 0 {
		return EmptyUserSummary(userID)
	}

	sorted := sortChronologically(entries)

	summary := &domain.JournalAnalyticsSummary{
		UserID:     userID,
		EntryCount: len(sorted),
		FirstEntry: sorted[0].Timestamp,
		LastEntry:  sorted[len(sorted)-1].Timestamp,
	}

	symbols := make(map[string]*symbolAccumulator)
	archetypes := make(map[string]*archetypeAccumulator)
	tones := make(map[string]int)
	days := make(map[string]*dayAccumulator)
	elements := make(map[domain.Element]int)
	modes := make(map[domain.JournalMode]int)

	analyzedCount := 0
	scoreSum := 0.0

	for _, entry := range sorted {
		summary.TotalWords += entry.WordCount
		modes[entry.Mode]++
		if entry.Element != "" {
			elements[entry.Element]++
		}

		day := dayFor(days, entry.Timestamp)
		day.entryCount++

		if !entry.Analyzed() {
			continue
		}

		analyzedCount++
		scoreSum += entry.Analysis.TransformationScore
		day.analyzed++
		day.scoreSum += entry.Analysis.TransformationScore

		entrySymbols := distinctStrings(entry.Analysis.Symbols)
		for _, symbol := range entrySymbols {
			acc := symbols[symbol]
			if acc == nil {
				acc = &symbolAccumulator{
					first: entry.Timestamp,
					modes: make(map[domain.JournalMode]struct{}),
				}
				symbols[symbol] = acc
			}
			acc.count++
			acc.last = entry.Timestamp
			acc.modes[entry.Mode] = struct{}{}
			day.symbols[symbol]++
		}

		for _, archetype := range distinctStrings(entry.Analysis.Archetypes) {
			acc := archetypes[archetype]
			if acc == nil {
				acc = &archetypeAccumulator{
					first:      entry.Timestamp,
					associated: make(map[string]int),
				}
				archetypes[archetype] = acc
			}
			acc.count++
			for _, symbol := range entrySymbols {
				acc.associated[symbol]++
			}
			day.archetypes[archetype]++
		}

		if tone := entry.Analysis.EmotionalTone; tone != "" {
			tones[tone]++
		}
	}

	summary.Symbols = buildSymbolFrequencies(symbols)
	summary.Archetypes = buildArchetypeDistributions(archetypes, params)
	summary.EmotionalPatterns = buildEmotionalPatterns(tones)
	summary.TemporalPatterns = buildTemporalPatterns(days)
	summary.ElementalResonance = buildElementalResonance(elements)
	summary.ModeDistribution = buildModeDistribution(modes)

	summary.TransformationVelocity = transformationVelocity(sorted)

	avgScore := 0.0
	if analyzedCount > 0 {
		avgScore = scoreSum / float64(analyzedCount)
	}
	summary.CoherenceScore = coherenceScore(
		len(sorted), avgScore, len(symbols)+len(archetypes), params)

	summary.Insights = userInsights(summary, sorted, now, params)

	return summary
}

// sortChronologically returns a sorted copy of the input; the caller's
// slice is never mutated. Timestamp ties fall back to entry ID so the
// ordering stays reproducible.
func sortChronologically(entries []*domain.Entry) []*domain.Entry {
	sorted := make([]*domain.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})
	return sorted
}

// distinctStrings deduplicates while preserving first-seen order.
func distinctStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func dayFor(days map[string]*dayAccumulator, ts time.Time) *dayAccumulator {
	key := ts.UTC().Format(dateLayout)
	day := days[key]
	if day == nil {
		day = &dayAccumulator{
			symbols:    make(map[string]int),
			archetypes: make(map[string]int),
		}
		days[key] = day
	}
	return day
}

func buildSymbolFrequencies(symbols map[string]*symbolAccumulator) []domain.SymbolFrequency {
	out := make([]domain.SymbolFrequency, 0, len(symbols))
	for symbol, acc := range symbols {
		out = append(out, domain.SymbolFrequency{
			Symbol:        symbol,
			Count:         acc.count,
			FirstAppeared: acc.first,
			LastAppeared:  acc.last,
			Modes:         sortedModes(acc.modes),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

func sortedModes(modes map[domain.JournalMode]struct{}) []domain.JournalMode {
	out := make([]domain.JournalMode, 0, len(modes))
	for mode := range modes {
		out = append(out, mode)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func buildArchetypeDistributions(
	archetypes map[string]*archetypeAccumulator,
	params *Params,
) []domain.ArchetypeDistribution {
	total := 0
	for _, acc := range archetypes {
		total += acc.count
	}

	out := make([]domain.ArchetypeDistribution, 0, len(archetypes))
	for archetype, acc := range archetypes {
		out = append(out, domain.ArchetypeDistribution{
			Archetype:         archetype,
			Count:             acc.count,
			Percentage:        percentage(acc.count, total),
			FirstAppeared:     acc.first,
			AssociatedSymbols: topCounted(acc.associated, params.AssociatedSymbolLimit),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Archetype < out[j].Archetype
	})
	return out
}

func buildEmotionalPatterns(tones map[string]int) []domain.EmotionalPattern {
	total := 0
	for _, count := range tones {
		total += count
	}

	out := make([]domain.EmotionalPattern, 0, len(tones))
	for tone, count := range tones {
		out = append(out, domain.EmotionalPattern{
			Tone:       tone,
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tone < out[j].Tone
	})
	return out
}

func buildTemporalPatterns(days map[string]*dayAccumulator) []domain.TemporalPattern {
	out := make([]domain.TemporalPattern, 0, len(days))
	for date, day := range days {
		avg := 0.0
		if day.analyzed > 0 {
			avg = day.scoreSum / float64(day.analyzed)
		}
		out = append(out, domain.TemporalPattern{
			Date:              date,
			EntryCount:        day.entryCount,
			AnalyzedCount:     day.analyzed,
			DominantSymbol:    dominant(day.symbols),
			DominantArchetype: dominant(day.archetypes),
			AvgTransformation: avg,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func buildElementalResonance(elements map[domain.Element]int) []domain.ElementalResonance {
	total := 0
	for _, count := range elements {
		total += count
	}

	out := make([]domain.ElementalResonance, 0, len(elements))
	for element, count := range elements {
		out = append(out, domain.ElementalResonance{
			Element:    element,
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Element < out[j].Element
	})
	return out
}

func buildModeDistribution(modes map[domain.JournalMode]int) []domain.ModeDistribution {
	total := 0
	for _, count := range modes {
		total += count
	}

	out := make([]domain.ModeDistribution, 0, len(modes))
	for mode, count := range modes {
		out = append(out, domain.ModeDistribution{
			Mode:       mode,
			Count:      count,
			Percentage: percentage(count, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Mode < out[j].Mode
	})
	return out
}

// transformationVelocity is the mean absolute score change between
// consecutive analyzed entries in chronological order. Fewer than two
// analyzed entries yield 0, not an error.
func transformationVelocity(sorted []*domain.Entry) float64 {
	var scores []float64
	for _, entry := range sorted {
		if entry.Analyzed() {
			scores = append(scores, entry.Analysis.TransformationScore)
		}
	}

	if len(scores) < 2 {
		return 0
	}

	total := 0.0
	for i := 1; i < len(scores); i++ {
		delta := scores[i] - scores[i-1]
		if delta < 0 {
			delta = -delta
		}
		total += delta
	}
	return total / float64(len(scores)-1)
}

// coherenceScore combines journaling consistency, transformation intensity
// and symbolic/archetypal diversity. The weighted components sum to at
// most 1.0 by construction; the clamp guards against parameter overrides.
func coherenceScore(entryCount int, avgScore float64, diversity int, params *Params) float64 {
	consistency := ratioCapped(entryCount, params.ConsistencyTarget) * params.ConsistencyWeight
	transformation := avgScore * params.TransformationWeight
	diversityWeight := ratioCapped(diversity, params.DiversityTarget) * params.DiversityWeight

	score := consistency + transformation + diversityWeight
	if score > 1 {
		score = 1
	}
	return score
}

// ratioCapped returns value/target capped at 1, guarding a zero target.
func ratioCapped(value, target int) float64 {
	if target <= 0 {
		return 1
	}
	ratio := float64(value) / float64(target)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// percentage guards its denominator so empty categories report 0, never NaN.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// dominant picks the highest-count key; ties resolve lexically ascending so
// output never depends on map iteration order.
func dominant(counts map[string]int) string {
	best := ""
	bestCount := 0
	for key, count := range counts {
		if count > bestCount || (count == bestCount && (best == "" || key < best)) {
			best = key
			bestCount = count
		}
	}
	return best
}

// topCounted returns up to limit keys ordered by count descending, ties
// lexically ascending.
func topCounted(counts map[string]int, limit int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}
