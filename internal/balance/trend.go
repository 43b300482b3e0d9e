package balance

import (
	"sort"
	"time"

	"github.com/tandemledger/tandem/internal/models"
)

// Trend reconstructs the time-ordered balance trend for an owner filter: one
// point per distinct calendar date present in the input, ascending, carrying
// the realized cash balance and the projected balance (realized plus capital
// locked in active flips and their latent profit as of that date).
//
// Every invocation recomputes from scratch over the full snapshot; there is
// no incremental update path. Forecast transactions never move the realized
// balance but still emit a point for their date. An empty input yields an
// empty series, which callers should treat as "insufficient data" rather
// than an error.
func Trend(txs []models.Transaction, filter models.Owner) []models.TrendPoint {
	if len(txs) == 0 {
		return nil
	}

	// Stable sort on the calendar date keeps arrival order for same-day
	// transactions.
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dayOf(sorted[i].Date).Before(dayOf(sorted[j].Date))
	})

	var realized, activeInvestment, activeProfit float64
	points := make(map[time.Time]models.TrendPoint)

	for i := range sorted {
		tx := &sorted[i]
		eff := EffectOn(tx, filter)

		realized += eff.Cash

		// Running accumulation over the sorted walk is equivalent to
		// recomputing "unsold flips dated on or before this point" at
		// every step.
		activeInvestment += eff.LockedCapital
		activeProfit += eff.LatentProfit

		// Later writes overwrite earlier ones for the same date; the
		// running totals make the last same-day write the correct one.
		day := dayOf(tx.Date)
		points[day] = models.TrendPoint{
			Date:      day,
			Realized:  realized,
			Projected: realized + activeInvestment + activeProfit,
		}
	}

	series := make([]models.TrendPoint, 0, len(points))
	for _, p := range points {
		series = append(series, p)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series
}

// dayOf truncates a timestamp to its calendar date in UTC. The date is the
// sole ordering key; any time component on stored records is ignored.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
