package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"time"
)

// userAgents is the pool rotated across retry attempts. The endpoint rate
// limits per agent string, so a retry under a fresh identity often succeeds
// where a plain repeat would hit the same limit again.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:126.0) Gecko/20100101 Firefox/126.0",
}

// retryTransport retries transient failures with exponential backoff and a
// rotated User-Agent. It wraps the base round tripper, keeping the resilience
// out of the valuation code entirely.
type retryTransport struct {
	base     http.RoundTripper
	attempts int
	backoff  time.Duration
	rand     *rand.Rand
}

func newRetryTransport(base http.RoundTripper) *retryTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &retryTransport{
		base:     base,
		attempts: 3,
		backoff:  500 * time.Millisecond,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < t.attempts; attempt++ {
		if attempt > 0 {
			// full jitter on an exponential curve
			max := t.backoff << (attempt - 1)
			delay := time.Duration(t.rand.Int63n(int64(max))) + max/2
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(delay):
			}
		}

		attemptReq := req.Clone(req.Context())
		attemptReq.Header.Set("User-Agent", userAgents[t.rand.Intn(len(userAgents))])

		resp, err := t.base.RoundTrip(attemptReq)
		if err != nil {
			if !transientErr(err) {
				return nil, err
			}
			lastErr = err
			continue
		}
		if transientStatus(resp.StatusCode) {
			lastErr = fmt.Errorf("transient http status: %s", resp.Status)
			resp.Body.Close()
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("gave up after %d attempts: %w", t.attempts, lastErr)
}

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func transientErr(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// Connection resets and refused connections arrive as plain *url.Error
	// wrapped syscall errors; treat any remaining transport error as worth
	// one more try.
	return true
}

// jwget performs a GET request to the given address and unmarshals the JSON
// response body into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
