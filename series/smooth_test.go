package series

import (
	"math"
	"testing"

	"github.com/ewald/folio/date"
)

func priceHistory(start string, values ...float64) *date.History[float64] {
	h := &date.History[float64]{}
	day := date.MustParse(start)
	for i, v := range values {
		h.Append(day.Add(i), v)
	}
	return h
}

func TestSmoothHistoryReplacesOutlier(t *testing.T) {
	// one bad tick an order of magnitude off in an otherwise stable series
	h := priceHistory("2024-01-01", 100, 101, 99, 1000, 100, 102, 101)

	out := SmoothHistory(h)

	day := date.MustParse("2024-01-04")
	v, ok := out.Get(day)
	if !ok {
		t.Fatal("smoothed history lost the day")
	}
	if v < 90 || v > 110 {
		t.Errorf("outlier survived smoothing: %v", v)
	}
	if orig, _ := h.Get(day); orig != 1000 {
		t.Error("input history was modified")
	}
}

func TestSmoothHistoryKeepsCleanSeries(t *testing.T) {
	h := priceHistory("2024-01-01", 100, 102, 104, 103, 105, 106, 104)

	out := SmoothHistory(h)

	if out.Len() != h.Len() {
		t.Fatalf("smoothing changed the length: %d, want %d", out.Len(), h.Len())
	}
	for day, want := range h.Values() {
		got, _ := out.Get(day)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s: %v, want unchanged %v", day, got, want)
		}
	}
}

func TestSmoothHistoryShortSeriesSkipsOutlierStage(t *testing.T) {
	// four points: too few for quartiles, spike passes still apply
	h := priceHistory("2024-01-01", 100, 160, 100, 100)

	out := SmoothHistory(h)

	if v, _ := out.Get(date.MustParse("2024-01-02")); v != 100 {
		t.Errorf("spike = %v, want flattened to 100", v)
	}
}

func TestIQRBounds(t *testing.T) {
	low, high := iqrBounds([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100})
	if low > 1 {
		t.Errorf("low fence %v excludes ordinary values", low)
	}
	if high > 100 {
		t.Errorf("high fence %v does not exclude the outlier", high)
	}
}

func TestNeighborhoodMedian(t *testing.T) {
	values := []float64{10, 20, 1000, 30, 40}
	if got := neighborhoodMedian(values, 2, 2); got != 30 {
		t.Errorf("median = %v, want 30", got)
	}
	// window clamped at the boundary
	if got := neighborhoodMedian(values, 0, 2); got != 20 {
		t.Errorf("boundary median = %v, want 20", got)
	}
}
