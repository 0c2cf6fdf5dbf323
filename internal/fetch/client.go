package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("covidtally.fetch")

const (
	defaultMaxAttempts = 4
	defaultMinBackoff  = 500 * time.Millisecond
	defaultMaxBackoff  = 10 * time.Second
)

// Client downloads payloads over HTTP, retrying transient failures with
// exponential backoff and consulting an optional cache first.
type Client struct {
	// HTTPClient performs the requests. http.DefaultClient when nil.
	HTTPClient *http.Client
	// Cache, when set, is checked before the network and updated after a
	// successful download.
	Cache *Cache
	// MaxAge bounds how stale a cache entry may be to count as a hit.
	MaxAge time.Duration
	// MaxAttempts caps retries per URL. Defaults to 4.
	MaxAttempts int
	// Backoff paces the retries. Defaults to 500ms..10s.
	Backoff Backoff
}

// Fetch returns the payload at url, from cache when fresh enough, otherwise
// over the network. Server-side (5xx) and transport errors are retried;
// client errors (4xx) fail immediately.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if c.Cache != nil {
		body, ok, err := c.Cache.Get(url, c.MaxAge)
		if err != nil {
			return nil, fmt.Errorf("cache lookup for %s: %w", url, err)
		}
		if ok {
			log.Debugf("cache hit for %s (%d bytes)", url, len(body))
			return body, nil
		}
	}

	backoff := c.Backoff
	if backoff.Minimum == 0 {
		backoff.Minimum = defaultMinBackoff
	}
	if backoff.Maximum == 0 {
		backoff.Maximum = defaultMaxBackoff
	}
	maxAttempts := c.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := backoff.Next()
			log.Infof("retrying %s in %s (attempt %d/%d)", url, delay, attempt, maxAttempts)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, retryable, err := c.download(ctx, url)
		if err == nil {
			if c.Cache != nil {
				if cacheErr := c.Cache.Put(url, body); cacheErr != nil {
					log.Warningf("could not cache %s: %s", url, cacheErr.Error())
				}
			}
			return body, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
		log.Warningf("download failed: %s", err.Error())
	}

	return nil, fmt.Errorf("giving up on %s after %d attempts: %w", url, maxAttempts, lastErr)
}

// download performs one GET. The second return value reports whether the
// failure is worth retrying.
func (c *Client) download(ctx context.Context, url string) ([]byte, bool, error) {
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("get %s: server error %s", url, resp.Status)
	default:
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("get %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read body of %s: %w", url, err)
	}

	log.Infof("downloaded %s (%d bytes)", url, len(body))
	return body, false, nil
}
