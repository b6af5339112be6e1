// Package remote issues single-attempt HTTP calls against the portfolio
// API. Every failure mode a caller could hit — transport error, elapsed
// deadline, non-2xx status — collapses into ErrUnreachable so the data
// access layer can treat "remote is unusable" as one condition and fall
// back locally. No retries are ever performed.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnreachable reports that the single remote attempt did not produce a
// successful response.
var ErrUnreachable = errors.New("remote api unreachable")

// Deadline profiles used by the data access layer. Polling reads give up
// fast so the fallback path keeps the UI responsive; first-load reads get
// a little longer; mutating calls rely on the transport alone.
const (
	PollTimeout      = 500 * time.Millisecond
	FirstLoadTimeout = time.Second
)

type ctxKey int

const bearerTokenKey ctxKey = iota

// WithBearerToken returns a context whose requests carry the given token
// in the Authorization header.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey, token)
}

// Client talks to one API base URL, e.g. "http://localhost:5000/api".
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{},
	}
}

// Do issues exactly one request. A timeout of zero leaves the deadline to
// the underlying transport. The response body, if out is non-nil, is
// decoded from JSON into out.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := ctx.Value(bearerTokenKey).(string); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return unreachable(method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return unreachable(method, path, fmt.Errorf("status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return unreachable(method, path, fmt.Errorf("decoding response: %v", err))
	}
	return nil
}

func unreachable(method, path string, cause error) error {
	return fmt.Errorf("%s %s: %w: %v", method, path, ErrUnreachable, cause)
}
