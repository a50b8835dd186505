// Package generation talks to the external AI sidecar that proposes work
// items, sub-tasks, area images and design ideas. Its results are plain
// payloads; folding them into a workspace is the caller's job.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// ErrUpstream marks failures of the generator itself (transport, non-2xx,
// undecodable or empty replies).
var ErrUpstream = errors.New("generator unavailable")

type Options struct {
	BaseURL string
	APIKey  string
	// RPS caps outgoing calls per second; zero or less disables the cap.
	RPS     float64
	Timeout time.Duration
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	limiter *rate.Limiter
}

func NewClient(opts Options) *Client {
	httpClient := &http.Client{}
	if opts.APIKey != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.APIKey, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = opts.Timeout
	if httpClient.Timeout == 0 {
		httpClient.Timeout = 60 * time.Second
	}

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	return &Client{
		BaseURL: strings.TrimRight(opts.BaseURL, "/"),
		HTTP:    httpClient,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Enabled reports whether a generator endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.BaseURL != ""
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	if !c.Enabled() {
		return fmt.Errorf("%w: no generator configured", ErrUpstream)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("generator %s: %w", path, err)
	}

	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("generator %s encode: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("generator %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s status %d: %s", ErrUpstream, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s decode: %v", ErrUpstream, path, err)
	}
	return nil
}
