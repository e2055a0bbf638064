// Package yahoo fetches live quotes, price history, and exchange rates from
// the Yahoo Finance public endpoints.
//
// Symbol conventions: FX pairs are {CCY}{CCY}=X or bare {CCY}=X, crypto pairs
// are {TICKER}-{QUOTE}, equities and funds use bare exchange tickers with an
// optional .{EXCHANGE} suffix.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/ewald/folio"
)

// DefaultBaseURL is the production endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client talks to the quote and chart endpoints. The zero value is not
// usable; construct with NewClient.
type Client struct {
	// BaseURL can point at a test server.
	BaseURL string

	http  *http.Client
	cache *Cache

	// chartOnly skips the batch quote endpoint once it has failed and
	// serves quotes from the chart endpoint instead. The flag lives on the
	// client, so each session decides for itself.
	chartOnly bool
}

// NewClient creates a client using the given cache. A nil cache disables
// caching.
func NewClient(cache *Cache) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		http:    &http.Client{Transport: newRetryTransport(nil), Timeout: 30 * time.Second},
		cache:   cache,
	}
}

// quoteTTL is how long a live quote batch stays fresh.
const quoteTTL = time.Minute

// GetQuotes fetches live quotes for the symbols. Symbols the endpoint does
// not know are simply absent from the result; only a total failure returns
// an error.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) (folio.QuoteMap, error) {
	quotes := make(folio.QuoteMap)
	if len(symbols) == 0 {
		return quotes, nil
	}

	key := "quotes:" + strings.Join(symbols, ",")
	if v, ok := c.cache.get(key); ok {
		return v.(folio.QuoteMap), nil
	}

	if !c.chartOnly {
		if err := c.batchQuotes(ctx, symbols, quotes); err == nil {
			c.cache.put(key, quotes, quoteTTL)
			return quotes, nil
		}
		c.chartOnly = true
	}

	var lastErr error
	for _, symbol := range symbols {
		q, err := c.chartQuote(ctx, symbol)
		if err != nil {
			lastErr = err
			continue
		}
		quotes[symbol] = q
	}
	if len(quotes) == 0 && lastErr != nil {
		return nil, fmt.Errorf("no quote could be fetched: %w", lastErr)
	}
	c.cache.put(key, quotes, quoteTTL)
	return quotes, nil
}

// batchQuotes fills the map from the batch quote endpoint.
func (c *Client) batchQuotes(ctx context.Context, symbols []string, quotes folio.QuoteMap) error {
	addr := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.BaseURL, url.QueryEscape(strings.Join(symbols, ",")))
	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return fmt.Errorf("quote request failed: %w", err)
	}
	jval, err := jsonpath.Get("$.quoteResponse.result", jobj)
	if err != nil {
		return fmt.Errorf("unexpected quote response shape: %w", err)
	}
	results, ok := jval.([]any)
	if !ok {
		return fmt.Errorf("unexpected quote response shape: result is %T", jval)
	}
	for _, r := range results {
		fields, ok := r.(map[string]any)
		if !ok {
			continue
		}
		symbol := jstr(fields, "symbol")
		if symbol == "" {
			continue
		}
		quotes[symbol] = folio.Quote{
			Symbol:          symbol,
			Price:           jnum(fields, "regularMarketPrice"),
			ChangePercent:   jnum(fields, "regularMarketChangePercent"),
			Currency:        jstr(fields, "currency"),
			Name:            jstr(fields, "shortName"),
			QuoteType:       jstr(fields, "quoteType"),
			TypeDisp:        jstr(fields, "typeDisp"),
			MarketState:     jstr(fields, "marketState"),
			PreMarketPrice:  jnum(fields, "preMarketPrice"),
			PostMarketPrice: jnum(fields, "postMarketPrice"),
		}
	}
	return nil
}

// chartQuote builds a quote from the chart endpoint's metadata, which stays
// reachable when the batch endpoint rejects unauthenticated callers.
func (c *Client) chartQuote(ctx context.Context, symbol string) (folio.Quote, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", c.BaseURL, url.PathEscape(symbol))
	var jobj any
	if err := jwget(ctx, c.http, addr, &jobj); err != nil {
		return folio.Quote{}, fmt.Errorf("chart request for %q failed: %w", symbol, err)
	}
	jval, err := jsonpath.Get("$.chart.result[0].meta", jobj)
	if err != nil {
		return folio.Quote{}, fmt.Errorf("no chart metadata for %q: %w", symbol, err)
	}
	meta, ok := first(jval).(map[string]any)
	if !ok {
		return folio.Quote{}, fmt.Errorf("unexpected chart metadata shape for %q", symbol)
	}

	price := jnum(meta, "regularMarketPrice")
	previous := jnum(meta, "chartPreviousClose")
	if p := jnum(meta, "previousClose"); p != 0 {
		previous = p
	}
	var change float64
	if previous != 0 {
		change = (price - previous) / previous * 100
	}
	return folio.Quote{
		Symbol:        symbol,
		Price:         price,
		ChangePercent: change,
		Currency:      jstr(meta, "currency"),
		Name:          jstr(meta, "shortName"),
		QuoteType:     jstr(meta, "instrumentType"),
	}, nil
}

// first unwraps the single-element list form some jsonpath queries return.
func first(jval any) any {
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		return jlist[0]
	}
	return jval
}

func jstr(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func jnum(fields map[string]any, key string) float64 {
	f, _ := fields[key].(float64)
	return f
}
