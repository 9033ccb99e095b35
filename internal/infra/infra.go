// Package infra provides shared infrastructure used by the data sources:
// HTTP helpers and request pacing.
package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultUserAgent is the user agent string used for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %s from %s: %s", e.Status, e.URL, e.Body)
}

// NewHTTPClient returns a client with the given timeout. A nil jar is allowed.
func NewHTTPClient(timeout time.Duration, jar http.CookieJar) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Jar:     jar,
	}
}

// DoGet performs a GET request and returns the response body.
// The caller is responsible for closing the returned ReadCloser.
func DoGet(ctx context.Context, client *http.Client, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ErrHTTP{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	return resp.Body, nil
}

// GetBytes performs DoGet and reads the whole body.
func GetBytes(ctx context.Context, client *http.Client, url string, headers map[string]string) ([]byte, error) {
	body, err := DoGet(ctx, client, url, headers)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// --- Rate limiter ---

// RateLimiter is a token bucket that refills one token per interval.
type RateLimiter struct {
	mu        sync.Mutex
	tokens    int
	maxTokens int
	interval  time.Duration
	last      time.Time
}

// NewRateLimiter allows up to perSecond requests per second.
// A non-positive rate disables limiting.
func NewRateLimiter(perSecond int) *RateLimiter {
	if perSecond <= 0 {
		return &RateLimiter{}
	}
	return &RateLimiter{
		tokens:    perSecond,
		maxTokens: perSecond,
		interval:  time.Second / time.Duration(perSecond),
		last:      time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		delay, ok := rl.take()
		if ok {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// take consumes a token, or reports how long to wait for the next one.
func (rl *RateLimiter) take() (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.maxTokens == 0 {
		return 0, true
	}

	now := time.Now()
	if elapsed := now.Sub(rl.last); elapsed >= rl.interval {
		n := int(elapsed / rl.interval)
		rl.tokens = min(rl.tokens+n, rl.maxTokens)
		rl.last = rl.last.Add(time.Duration(n) * rl.interval)
	}
	if rl.tokens > 0 {
		rl.tokens--
		return 0, true
	}
	return rl.interval - now.Sub(rl.last), false
}
