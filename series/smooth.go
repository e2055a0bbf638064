package series

import (
	"sort"

	"github.com/ewald/folio/date"
)

// SmoothHistory pre-cleans a raw price or FX series before it feeds the
// portfolio replay. Dividend adjustments and bad ticks show up as isolated
// outliers; cleaned here, they cannot compound across assets in the
// aggregate. Two stages:
//
//  1. Values outside [Q1-1.5*IQR, Q3+1.5*IQR] are replaced by the median of
//     their 5-point neighborhood.
//  2. Three V-shape spike passes at a 15% relative threshold.
//
// The input history is not modified; a new one is returned.
func SmoothHistory(h *date.History[float64]) *date.History[float64] {
	days := make([]date.Date, 0, h.Len())
	values := make([]float64, 0, h.Len())
	for day, v := range h.Values() {
		days = append(days, day)
		values = append(values, v)
	}

	if len(values) >= 5 {
		low, high := iqrBounds(values)
		for i, v := range values {
			if v < low || v > high {
				values[i] = neighborhoodMedian(values, i, 2)
			}
		}
	}

	for pass := 0; pass < 3; pass++ {
		for i := 1; i < len(values)-1; i++ {
			if isSpike(values[i-1], values[i], values[i+1], 0.15) {
				values[i] = (values[i-1] + values[i+1]) / 2
			}
		}
	}

	out := &date.History[float64]{}
	for i, day := range days {
		out.Append(day, values[i])
	}
	return out
}

// iqrBounds returns the Tukey fences of the values.
func iqrBounds(values []float64) (low, high float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	return q1 - 1.5*iqr, q3 + 1.5*iqr
}

// quantile linearly interpolates the q-quantile of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	i := int(pos)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(i)
	return sorted[i]*(1-frac) + sorted[i+1]*frac
}

// neighborhoodMedian returns the median of the values within radius of index
// i, window clamped at the series boundaries.
func neighborhoodMedian(values []float64, i, radius int) float64 {
	lo := max(0, i-radius)
	hi := min(len(values), i+radius+1)
	window := make([]float64, hi-lo)
	copy(window, values[lo:hi])
	sort.Float64s(window)
	n := len(window)
	if n%2 == 1 {
		return window[n/2]
	}
	return (window[n/2-1] + window[n/2]) / 2
}
