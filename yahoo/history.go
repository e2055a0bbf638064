package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/ewald/folio/date"
	"github.com/ewald/folio/series"
)

// Point is one historical price sample.
type Point struct {
	When  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// History collapses the points to one value per calendar day, the last
// sample of each day winning.
func History(points []Point) *date.History[float64] {
	h := &date.History[float64]{}
	for _, p := range points {
		h.Append(date.FromTime(p.When), p.Price)
	}
	return h
}

// historyTTL is how long a fetched history stays fresh. Short ranges move
// with the market and refresh faster.
func historyTTL(rng series.Timeframe) time.Duration {
	switch rng {
	case series.Day:
		return 5 * time.Minute
	case series.Week:
		return 15 * time.Minute
	case series.Month:
		return 30 * time.Minute
	default:
		return time.Hour
	}
}

// span maps a range onto the chart endpoint's query window and sampling
// interval. Intraday ranges sample hourly; ALL reaches back ten years, which
// covers any realistic ledger horizon.
func span(rng series.Timeframe, now time.Time) (period1 time.Time, interval string) {
	switch rng {
	case series.Day:
		return now.AddDate(0, 0, -1), "1h"
	case series.Week:
		return now.AddDate(0, 0, -7), "1h"
	case series.Month:
		return now.AddDate(0, -1, 0), "1d"
	case series.Year:
		return now.AddDate(-1, 0, 0), "1d"
	case series.YTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), "1d"
	default:
		return now.AddDate(-10, 0, 0), "1d"
	}
}

// GetHistory fetches the price history of one symbol over the range,
// chronologically sorted, null samples dropped.
func (c *Client) GetHistory(ctx context.Context, symbol string, rng series.Timeframe) ([]Point, error) {
	key := fmt.Sprintf("history:%s:%s", symbol, rng)
	if v, ok := c.cache.get(key); ok {
		return v.([]Point), nil
	}

	now := time.Now()
	period1, interval := span(rng, now)
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=%s",
		c.BaseURL, url.PathEscape(symbol), period1.Unix(), now.Unix(), interval)

	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return nil, fmt.Errorf("history request for %q failed: %w", symbol, err)
	}

	jstamps, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, fmt.Errorf("no history for %q: %w", symbol, err)
	}
	jcloses, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("no close prices for %q: %w", symbol, err)
	}
	stamps, _ := first(jstamps).([]any)
	closes, _ := first(jcloses).([]any)

	var points []Point
	for i, jstamp := range stamps {
		if i >= len(closes) {
			break
		}
		stamp, ok := jstamp.(float64)
		if !ok {
			continue
		}
		// null closes mark halted or unsampled slots
		price, ok := closes[i].(float64)
		if !ok {
			continue
		}
		points = append(points, Point{When: time.Unix(int64(stamp), 0).UTC(), Price: price})
	}

	c.cache.put(key, points, historyTTL(rng))
	return points, nil
}

// fxTTL is how long a live exchange rate stays fresh.
const fxTTL = time.Hour

// GetFxRate fetches the current rate converting one unit of 'from' into
// 'to'. When the direct pair is unknown, the inverse pair is inverted.
func (c *Client) GetFxRate(ctx context.Context, from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return 1, nil
	}
	key := fmt.Sprintf("fx:%s:%s", from, to)
	if v, ok := c.cache.get(key); ok {
		return v.(float64), nil
	}

	q, err := c.chartQuote(ctx, from+to+"=X")
	if err != nil || q.Price == 0 {
		inv, invErr := c.chartQuote(ctx, to+from+"=X")
		if invErr != nil || inv.Price == 0 {
			if err == nil {
				err = invErr
			}
			return 0, fmt.Errorf("no rate for %s/%s: %w", from, to, err)
		}
		q.Price = 1 / inv.Price
	}

	c.cache.put(key, q.Price, fxTTL)
	return q.Price, nil
}

// GetFxHistory fetches the historical rate series converting 'from' into
// 'to' over the range. Pairs not quoted directly are pivoted through USD:
// from/USD multiplied by USD/to, aligned by carrying each leg's last
// observation forward.
func (c *Client) GetFxHistory(ctx context.Context, from, to string, rng series.Timeframe) (*date.History[float64], error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return &date.History[float64]{}, nil
	}
	key := fmt.Sprintf("fxhistory:%s:%s:%s", from, to, rng)
	if v, ok := c.cache.get(key); ok {
		return v.(*date.History[float64]), nil
	}

	var h *date.History[float64]
	var err error
	if from == "USD" || to == "USD" {
		h, err = c.pairHistory(ctx, from, to, rng)
	} else {
		h, err = c.pivotHistory(ctx, from, to, rng)
	}
	if err != nil {
		return nil, err
	}

	c.cache.put(key, h, historyTTL(rng))
	return h, nil
}

// pairHistory fetches one pair's series, inverting the reversed pair when
// the direct spelling has no data.
func (c *Client) pairHistory(ctx context.Context, from, to string, rng series.Timeframe) (*date.History[float64], error) {
	points, err := c.GetHistory(ctx, from+to+"=X", rng)
	if err == nil && len(points) > 0 {
		return History(points), nil
	}

	points, invErr := c.GetHistory(ctx, to+from+"=X", rng)
	if invErr != nil || len(points) == 0 {
		if err == nil {
			err = invErr
		}
		if err == nil {
			err = fmt.Errorf("empty series")
		}
		return nil, fmt.Errorf("no rate history for %s/%s: %w", from, to, err)
	}
	h := &date.History[float64]{}
	for _, p := range points {
		if p.Price != 0 {
			h.Append(date.FromTime(p.When), 1/p.Price)
		}
	}
	return h, nil
}

// pivotHistory composes from/to out of the two USD legs.
func (c *Client) pivotHistory(ctx context.Context, from, to string, rng series.Timeframe) (*date.History[float64], error) {
	fromUSD, err := c.pairHistory(ctx, from, "USD", rng)
	if err != nil {
		return nil, err
	}
	usdTo, err := c.pairHistory(ctx, "USD", to, rng)
	if err != nil {
		return nil, err
	}
	h := &date.History[float64]{}
	for day, v := range fromUSD.Values() {
		if rate, ok := usdTo.ValueAsOf(day); ok {
			h.Append(day, v*rate)
		}
	}
	return h, nil
}
