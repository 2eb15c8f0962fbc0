package symbolic

import (
	"time"

	"github.com/mythwell/field-api/internal/domain"
)

// ClassifyTrend assigns a rising/stable/fading label to a count series.
//
// total is the full count of the series and timestamps are the moments
// contributing to it. The classification looks only at how much of the
// series falls inside the trailing RecentWindow from now:
//
//   - more than RisingShare of total -> rising
//   - more than StableShare of total -> stable
//   - otherwise                      -> fading
//
// Callers guard against empty series; a total of 0 is never passed here.
func ClassifyTrend(total int, timestamps []time.Time, now time.Time, params *Params) domain.Trend {
	cutoff := now.Add(-params.RecentWindow)

	recent := 0
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			recent++
		}
	}

	switch {
	case float64(recent) > params.RisingShare*float64(total):
		return domain.TrendRising
	case float64(recent) > params.StableShare*float64(total):
		return domain.TrendStable
	default:
		return domain.TrendFading
	}
}
