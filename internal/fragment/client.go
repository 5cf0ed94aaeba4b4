package fragment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotFound is returned when no endpoint has a fragment at the
// requested path.
var ErrNotFound = errors.New("fragment not found")

// ErrNoEndpoints is returned by NewClient callers that configured an
// empty candidate list.
var ErrNoEndpoints = errors.New("no content API endpoints configured")

// transientError marks a failure worth retrying (network error or a
// 5xx from the content API).
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// IsTransient checks if an error is worth retrying.
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Client queries the content-query API for fragments. A single client
// replaces the per-environment endpoint variants: candidates are tried
// in configuration order until one answers.
type Client struct {
	endpoints  []string
	apiKey     string
	httpClient *http.Client
	backoff    func(attempt int) time.Duration
}

func NewClient(endpoints []string, apiKey string) *Client {
	return &Client{
		endpoints: endpoints,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		backoff: defaultBackoff,
	}
}

const maxAttempts = 3

// Get retrieves a fragment by path. Each endpoint candidate is tried
// in order; transient failures are retried with backoff before moving
// to the next candidate. A 404 is authoritative and stops the scan.
func (c *Client) Get(ctx context.Context, path string) (*Fragment, error) {
	if len(c.endpoints) == 0 {
		return nil, ErrNoEndpoints
	}

	var lastErr error
	for _, base := range c.endpoints {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			frag, err := c.getOne(ctx, base, path)
			if err == nil {
				return frag, nil
			}
			if errors.Is(err, ErrNotFound) {
				return nil, err
			}
			lastErr = err
			if !IsTransient(err) {
				break
			}
			select {
			case <-time.After(c.backoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("all content API endpoints failed: %w", lastErr)
}

func (c *Client) getOne(ctx context.Context, base, path string) (*Fragment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/content/fragments/"+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &transientError{err: fmt.Errorf("get fragment: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 500:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &transientError{err: fmt.Errorf("get fragment %s: status %d: %s", path, resp.StatusCode, string(respBody))}
	case resp.StatusCode != http.StatusOK:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get fragment %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}

	var frag Fragment
	if err := json.NewDecoder(resp.Body).Decode(&frag); err != nil {
		return nil, fmt.Errorf("decode fragment: %w", err)
	}
	if frag.Path == "" {
		frag.Path = path
	}
	return &frag, nil
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
