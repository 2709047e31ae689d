// Package httpds implements an HTTP data source with built-in retry and
// backoff. It hands the response body to the caller as a stream, so large
// remote files are never buffered whole.
//
// Design goals:
//
//   - Keep a tiny, explicit API: a Remote is a datasource.Source.
//   - Handle transient failures (network errors, 5xx) with exponential
//     backoff; 4xx responses fail immediately.
//   - Respect context cancellation during requests and backoff waits.
//   - Be easy to test by injecting a custom RoundTripper and sleep function.
package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config configures the HTTP data source.
//
// Zero values are given sensible defaults:
//   - Timeout:        30s
//   - MaxRetries:     3
//   - InitialBackoff: 200ms
//   - MaxBackoff:     5s
type Config struct {
	// Timeout is the per-request timeout applied at the http.Client level.
	// It covers the whole response body read, so it should be generous for
	// large files.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the initial request.
	// MaxRetries=0 means only the initial attempt.
	MaxRetries int

	// InitialBackoff is the base backoff for the first retry; each
	// subsequent retry doubles it up to MaxBackoff.
	InitialBackoff time.Duration

	// MaxBackoff caps the exponential backoff duration.
	MaxBackoff time.Duration

	// Transport is an optional custom RoundTripper, mainly for tests.
	Transport http.RoundTripper
}

// Remote is an HTTP data source for a single URL.
type Remote struct {
	url            string
	httpClient     *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration

	// sleep is injectable to make tests fast and deterministic.
	sleep func(time.Duration)
}

// NewRemote returns a Remote bound to url with the given config.
func NewRemote(url string, cfg Config) *Remote {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}

	return &Remote{
		url: url,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		sleep:          time.Sleep,
	}
}

// Open performs a GET against the configured URL and returns the response
// body as a stream. Transient failures are retried with exponential backoff;
// the caller owns closing the returned body.
func (r *Remote) Open(ctx context.Context) (io.ReadCloser, error) {
	backoff := r.initialBackoff
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-sleepCh(r.sleep, backoff):
			}
			backoff *= 2
			if backoff > r.maxBackoff {
				backoff = r.maxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request for %s: %w", r.url, err)
		}

		resp, err := r.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("get %s: %w", r.url, err)
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp.Body, nil
		case resp.StatusCode >= 500:
			// Transient server-side failure; retry.
			resp.Body.Close()
			lastErr = fmt.Errorf("get %s: %s", r.url, resp.Status)
		default:
			// Client-side failure will not improve with retries.
			resp.Body.Close()
			return nil, fmt.Errorf("get %s: %s", r.url, resp.Status)
		}
	}

	return nil, fmt.Errorf("get %s failed after %d attempts: %w", r.url, r.maxRetries+1, lastErr)
}

// sleepCh runs sleep in a goroutine and signals completion on a channel so
// backoff waits can race against context cancellation.
func sleepCh(sleep func(time.Duration), d time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		sleep(d)
		close(ch)
	}()
	return ch
}
