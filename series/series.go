package series

import (
	"sort"
	"time"
)

// Point is one sample of a value series.
type Point struct {
	When  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Clean runs the full display pipeline on a raw series for one timeframe:
// cutoff, bucket resampling, moving-average smoothing (intraday only), and
// spike removal. The input slice is not modified.
func Clean(points []Point, tf Timeframe, now time.Time) []Point {
	out := CutBefore(points, tf.Cutoff(now))
	if bucket := tf.bucket(); bucket > 0 {
		out = Resample(out, bucket)
	}
	if tf == Day {
		out = SmoothMA(out)
	}
	passes, threshold := tf.spikePasses()
	return RemoveSpikes(out, passes, threshold)
}

// CutBefore returns the points at or after the cutoff instant.
func CutBefore(points []Point, cutoff time.Time) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.When.Before(cutoff) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Resample buckets the points into fixed-width time buckets, keeping the last
// value observed in each bucket, and returns them sorted by time.
func Resample(points []Point, bucket time.Duration) []Point {
	if bucket <= 0 || len(points) == 0 {
		return points
	}
	last := make(map[int64]Point)
	for _, p := range points {
		last[p.When.UnixNano()/int64(bucket)] = p
	}
	out := make([]Point, 0, len(last))
	for _, p := range last {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].When.Before(out[j].When) })
	return out
}

// SmoothMA replaces each interior point with the mean of itself and its two
// neighbors. Series shorter than 6 points pass through unchanged: averaging
// a handful of points erases the shape instead of the noise.
func SmoothMA(points []Point) []Point {
	if len(points) < 6 {
		return points
	}
	out := make([]Point, len(points))
	copy(out, points)
	for i := 1; i < len(points)-1; i++ {
		out[i].Value = (points[i-1].Value + points[i].Value + points[i+1].Value) / 3
	}
	return out
}

// RemoveSpikes runs the V-shape filter over the series for a number of
// passes. An interior point deviating from both neighbors by more than the
// relative threshold, or sitting at exactly zero between two positive
// neighbors, is replaced by its neighbors' average. Cascading spikes need
// several passes: flattening one point can expose the next.
func RemoveSpikes(points []Point, passes int, threshold float64) []Point {
	if len(points) < 3 {
		return points
	}
	out := make([]Point, len(points))
	copy(out, points)
	for pass := 0; pass < passes; pass++ {
		for i := 1; i < len(out)-1; i++ {
			prev, cur, next := out[i-1].Value, out[i].Value, out[i+1].Value
			if isSpike(prev, cur, next, threshold) {
				out[i].Value = (prev + next) / 2
			}
		}
	}
	return out
}

func isSpike(prev, cur, next, threshold float64) bool {
	if cur == 0 && prev > 0 && next > 0 {
		return true
	}
	return deviation(cur, prev) > threshold && deviation(cur, next) > threshold
}

// deviation is the relative distance between a point and a neighbor. An
// exactly zero neighbor gives no scale to measure against, so it never
// flags a spike by itself.
func deviation(value, neighbor float64) float64 {
	if neighbor == 0 {
		return 0
	}
	d := (value - neighbor) / neighbor
	if d < 0 {
		return -d
	}
	return d
}

// AppendLive appends one point at now carrying the live portfolio value, so
// the displayed series ends at the true current value even when historical
// data lags. Nothing is appended for an empty portfolio.
func AppendLive(points []Point, value float64, now time.Time) []Point {
	if value <= 0 {
		return points
	}
	return append(points, Point{When: now, Value: value})
}
