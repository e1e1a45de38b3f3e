package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "mealmax/internal/platform/errors"
)

func TestCurrent_PassesThroughPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Boston" || q.Get("appid") != "k1" || q.Get("units") != "imperial" {
			t.Errorf("query = %v", q)
		}
		_, _ = w.Write([]byte(`{"name":"Boston","main":{"temp":51.2}}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL + "/", APIKey: "k1", Units: "imperial"})
	raw, err := c.Current(context.Background(), " Boston ")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if string(raw) != `{"name":"Boston","main":{"temp":51.2}}` {
		t.Fatalf("payload = %s", raw)
	}
}

func TestForecast_UsesForecastPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("units") != defaultUnits {
			t.Errorf("units = %q", r.URL.Query().Get("units"))
		}
		_, _ = w.Write([]byte(`{"list":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, APIKey: "k"})
	if _, err := c.Forecast(context.Background(), "Paris"); err != nil {
		t.Fatalf("Forecast: %v", err)
	}
}

func TestGet_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   perr.ErrorCode
	}{
		{http.StatusNotFound, perr.ErrorCodeNotFound},
		{http.StatusUnauthorized, perr.ErrorCodeUnavailable},
		{http.StatusTooManyRequests, perr.ErrorCodeTooManyRequests},
		{http.StatusInternalServerError, perr.ErrorCodeUnavailable},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"cod":"x"}`))
		}))
		c := NewClient(Options{BaseURL: srv.URL, APIKey: "k"})
		_, err := c.Current(context.Background(), "Nowhere")
		srv.Close()
		if !perr.IsCode(err, tc.want) {
			t.Fatalf("status %d: code = %v, want %v", tc.status, perr.CodeOf(err), tc.want)
		}
	}
}

func TestGet_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL, APIKey: "k"}).Current(context.Background(), "x")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want Unavailable", err)
	}
}

func TestGet_RequiresKeyAndCity(t *testing.T) {
	c := NewClient(Options{})
	if _, err := c.Current(context.Background(), "Boston"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("missing key: %v", err)
	}
	c = NewClient(Options{APIKey: "k"})
	if _, err := c.Current(context.Background(), "  "); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("blank city: %v", err)
	}
}
