package blitz

import (
	"math"
	"sort"

	"github.com/quickplay-games/sessiond/internal/domain"
)

// PayoutRow is one score-to-prize pairing shown on the payout sheet.
type PayoutRow struct {
	Score    float64
	Prize    int64
	IsResult bool
}

// InterpolateScore maps a target multiplier to the score that earns it, using
// piecewise-linear interpolation over the calibration table, and pairs it with
// the prize `point * buyIn`. In line mode callers pass the prize-over-buy-in
// ratio as point; the math is identical.
//
// Fallbacks: with no usable bounds the score extrapolates to 0; with only a
// lower bound the last known score is reused; a flat segment returns the lower
// bound's score to avoid dividing by zero.
func InterpolateScore(points []domain.BlitzDataPoint, point float64, buyIn int64, precision int) (float64, int64) {
	prize := int64(math.Round(point * float64(buyIn)))

	sorted := make([]domain.BlitzDataPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Multiplier < sorted[j].Multiplier
	})

	var below, above *domain.BlitzDataPoint
	for i := range sorted {
		p := sorted[i]
		if p.Multiplier <= point {
			below = &sorted[i]
		}
		if p.Multiplier >= point && above == nil {
			above = &sorted[i]
		}
	}

	switch {
	case below == nil && above == nil:
		return 0, prize
	case above == nil:
		return roundTo(below.Score, precision), prize
	case below == nil:
		return 0, prize
	case above.Multiplier == below.Multiplier:
		return roundTo(below.Score, precision), prize
	}

	slope := (above.Score - below.Score) / (above.Multiplier - below.Multiplier)
	score := slope*(point-below.Multiplier) + below.Score

	return roundTo(score, precision), prize
}

// BuildPayoutTable interpolates every target multiplier, deduplicates rows
// that land on the same score, sorts them by prize descending for display and
// flags the row matching the achieved multiplier as the result row.
func BuildPayoutTable(points []domain.BlitzDataPoint, targets []float64, achieved float64, buyIn int64, precision int) []PayoutRow {
	type rowKey struct {
		score float64
		prize int64
	}

	seen := make(map[rowKey]int)
	rows := make([]PayoutRow, 0, len(targets))

	for _, target := range targets {
		score, prize := InterpolateScore(points, target, buyIn, precision)
		key := rowKey{score: score, prize: prize}
		isResult := target == achieved

		if idx, dup := seen[key]; dup {
			if isResult {
				rows[idx].IsResult = true
			}
			continue
		}

		seen[key] = len(rows)
		rows = append(rows, PayoutRow{Score: score, Prize: prize, IsResult: isResult})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Prize > rows[j].Prize
	})

	return rows
}

// FilterActive drops archived blitz definitions.
func FilterActive(defs []domain.BlitzDefinition) []domain.BlitzDefinition {
	active := make([]domain.BlitzDefinition, 0, len(defs))
	for _, def := range defs {
		if def.Archived {
			continue
		}

		active = append(active, def)
	}

	return active
}

func roundTo(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}

	factor := math.Pow(10, float64(precision))
	return math.Round(v*factor) / factor
}
