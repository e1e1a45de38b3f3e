package net_test

import (
	"context"
	"testing"

	pnet "mealmax/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	cases := []struct {
		name, req, sid string
	}{
		{"sets both ids", "req-123", "4b5c2f0e-6a8e-4e55-9d3c-0a1f5e6c7d88"},
		{"request only", "r-only", ""},
		{"session only", "", "s-only"},
		{"neither", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := pnet.WithRequest(base, tc.req, tc.sid)
			if got := pnet.RequestID(ctx); got != tc.req {
				t.Fatalf("RequestID got %q want %q", got, tc.req)
			}
			if got := pnet.SessionID(ctx); got != tc.sid {
				t.Fatalf("SessionID got %q want %q", got, tc.sid)
			}
		})
	}
}
