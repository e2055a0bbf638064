// Package series post-processes raw portfolio value series for display:
// timeframe cutoff, bucket resampling, moving-average smoothing, and
// spike suppression.
package series

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe is a display window ending now.
type Timeframe string

const (
	Day   Timeframe = "1D"
	Week  Timeframe = "1W"
	Month Timeframe = "1M"
	Year  Timeframe = "1Y"
	YTD   Timeframe = "YTD"
	All   Timeframe = "ALL"
)

// Timeframes lists every timeframe, shortest first.
var Timeframes = []Timeframe{Day, Week, Month, Year, YTD, All}

// ParseTimeframe parses a timeframe string, case-insensitively.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Timeframes {
		if tf == known {
			return tf, nil
		}
	}
	return "", fmt.Errorf("unknown timeframe %q (want one of 1D, 1W, 1M, 1Y, YTD, ALL)", s)
}

// Cutoff returns the instant before which points fall outside the timeframe.
// All returns the zero time: nothing is cut.
func (tf Timeframe) Cutoff(now time.Time) time.Time {
	switch tf {
	case Day:
		return now.AddDate(0, 0, -1)
	case Week:
		return now.AddDate(0, 0, -7)
	case Month:
		return now.AddDate(0, -1, 0)
	case Year:
		return now.AddDate(-1, 0, 0)
	case YTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}

// bucket returns the resampling bucket width, or zero when the timeframe is
// not resampled.
func (tf Timeframe) bucket() time.Duration {
	switch tf {
	case Day:
		return 30 * time.Minute
	case Week:
		return 2 * time.Hour
	default:
		return 0
	}
}

// spikePasses returns the number of spike-removal passes and the relative
// deviation threshold for the timeframe. The intraday view gets more passes
// at a tighter threshold because its points are denser and noisier.
func (tf Timeframe) spikePasses() (passes int, threshold float64) {
	if tf == Day {
		return 4, 0.10
	}
	return 3, 0.15
}
