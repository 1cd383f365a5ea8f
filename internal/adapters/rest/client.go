// Package rest is the retrying JSON over HTTP client shared by the outbound adapters
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "trainerbot/internal/platform/errors"
	"trainerbot/internal/platform/logger"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUA        = "trainerbot"
	defaultMaxRetry  = 3
	defaultRetryBase = 300 * time.Millisecond
	maxBackoff       = 30 * time.Second
	errBodyLimit     = 2048
)

// Options configures the Client
type Options struct {
	// Name tags log lines, e.g. "telegram" or "openai"
	Name      string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Header is sent with every request, auth goes here
	Header http.Header

	// Retry config for transport errors, 429 and 5xx responses
	// MaxRetries below zero disables retries
	MaxRetries int
	RetryBase  time.Duration

	// HTTPClient overrides the default client, Timeout is ignored when set
	HTTPClient *http.Client
}

// Client issues requests with retries and rate limit handling
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// New creates a Client with defaults applied
func New(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	switch {
	case o.MaxRetries == 0:
		o.MaxRetries = defaultMaxRetry
	case o.MaxRetries < 0:
		o.MaxRetries = 0
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.Name == "" {
		o.Name = "rest"
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{
		http:  hc,
		opts:  o,
		log:   *logger.Named(o.Name),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// Do sends body to path and returns the first 2xx response
// Retries transport errors, 429 and 502/503/504, honoring Retry-After
// Any other status becomes a *StatusError wrapped in a perr code for that status
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	url := c.opts.BaseURL + path
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeTimeout, c.opts.Name+": cancelled")
		}

		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "%s: new request", c.opts.Name)
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, vv := range c.opts.Header {
			for _, v := range vv {
				req.Header.Add(k, v)
			}
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil || !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s: request failed", c.opts.Name)
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempts).Msg("transport error, retrying")
			if err := c.sleep(ctx, back); err != nil {
				return nil, perr.Wrap(err, perr.ErrorCodeTimeout, c.opts.Name+": cancelled")
			}
			attempts++
			continue
		}

		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("http response")

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		if retryable(resp.StatusCode) && c.shouldRetry(attempts) {
			wait := retryAfter(resp.Header, c.now())
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", wait).Int("attempt", attempts).Msg("retryable status")
			_ = drainAndClose(resp.Body)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, perr.Wrap(err, perr.ErrorCodeTimeout, c.opts.Name+": cancelled")
			}
			attempts++
			continue
		}

		b, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		_ = resp.Body.Close()
		return nil, newStatusError(c.opts.Name, resp.StatusCode, b)
	}
}

// JSON marshals in, sends it and decodes the response into out
// in may be nil for body-less calls, out may be nil to discard the body
func (c *Client) JSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeJSON, "%s: encode request", c.opts.Name)
		}
		body = b
	}
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer drainAndClose(resp.Body)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "%s: decode response", c.opts.Name)
	}
	return nil
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
