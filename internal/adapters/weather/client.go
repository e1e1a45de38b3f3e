// Package weather fetches current conditions and forecasts from OpenWeatherMap
// Payloads are handed back as raw JSON; nothing here interprets them
package weather

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "mealmax/internal/platform/errors"
	"mealmax/internal/platform/logger"
)

const (
	baseURLDefault = "https://api.openweathermap.org/data/2.5"
	defaultTimeout = 10 * time.Second
	defaultUnits   = "metric"
	maxBody        = 1 << 20
)

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string
	Units   string // metric, imperial or standard
	Timeout time.Duration
}

// Client is a thin OpenWeatherMap client
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Units == "" {
		o.Units = defaultUnits
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("weather"),
		now:  time.Now,
	}
}

// Current returns the /weather payload for a city name
func (c *Client) Current(ctx context.Context, city string) (json.RawMessage, error) {
	return c.get(ctx, "/weather", city)
}

// Forecast returns the /forecast payload for a city name
func (c *Client) Forecast(ctx context.Context, city string) (json.RawMessage, error) {
	return c.get(ctx, "/forecast", city)
}

func (c *Client) get(ctx context.Context, path, city string) (json.RawMessage, error) {
	if c.opts.APIKey == "" {
		return nil, perr.Unavailablef("weather api key not configured")
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, perr.InvalidArgf("city is required")
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.opts.APIKey)
	q.Set("units", c.opts.Units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "weather new request failed")
	}
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "weather do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	c.log.Debug().
		Str("path", path).
		Str("city", city).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Msg("weather http response")
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "weather read failed")
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, perr.NotFoundf("weather for %q not found", city)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, perr.Unavailablef("weather api rejected the key")
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "weather rate limited")
	default:
		return nil, perr.Unavailablef("weather unexpected status %d", resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, perr.Unavailablef("weather returned invalid json")
	}
	return json.RawMessage(body), nil
}
