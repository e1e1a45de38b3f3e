// Package randomorg draws contest randomness from random.org decimal fractions
package randomorg

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mealmax/internal/core/battle"
	perr "mealmax/internal/platform/errors"
	"mealmax/internal/platform/logger"
)

const (
	urlDefault       = "https://www.random.org/decimal-fractions/?num=1&dec=2&col=1&format=plain&rnd=new"
	defaultTimeout   = 5 * time.Second
	defaultUA        = "mealmax-api"
	defaultMaxRetry  = 2
	defaultRetryBase = 250 * time.Millisecond
)

// Options configures the Client
type Options struct {
	URL       string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transport errors and 5xx responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client fetches one decimal fraction per call
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

var _ battle.RandomSource = (*Client)(nil)

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.URL == "" {
		o.URL = urlDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("randomorg"),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// Float64 returns the fraction served by random.org
// The value is not range checked here; the battle engine rejects anything outside [0, 1)
func (c *Client) Float64(ctx context.Context) (float64, error) {
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		body, status, err := c.get(ctx)
		switch {
		case err != nil:
			if !c.shouldRetry(attempts) {
				return 0, perr.Wrapf(err, perr.ErrorCodeUnavailable, "random.org request failed")
			}
		case status == http.StatusOK:
			return parse(body)
		case status >= 500:
			if !c.shouldRetry(attempts) {
				return 0, perr.Newf(perr.ErrorCodeUnavailable, "random.org transient status %d", status)
			}
		default:
			// 4xx will not heal with retries
			return 0, perr.Newf(perr.ErrorCodeUnavailable, "random.org unexpected status %d body %s", status, body)
		}

		back := c.backoff(attempts)
		c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("random.org retrying")
		if err := c.sleep(ctx, back); err != nil {
			return 0, perr.Wrapf(err, perr.ErrorCodeUnavailable, "random.org retry canceled")
		}
		attempts++
	}
}

func (c *Client) get(ctx context.Context) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.URL, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/plain")

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Msg("random.org http response")
	if err != nil {
		return "", 0, err
	}
	return strings.TrimSpace(string(b)), resp.StatusCode, nil
}

func parse(body string) (float64, error) {
	v, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeUnavailable, "random.org returned %q", body)
	}
	return v, nil
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

// sleepCtx waits for d or until ctx is done
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

func (c *Client) shouldRetry(attempts int) bool { return attempts < c.opts.MaxRetries }
