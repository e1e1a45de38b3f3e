package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"INFO":     zerolog.InfoLevel,
		"warning":  zerolog.WarnLevel,
		" error ":  zerolog.ErrorLevel,
		"":         zerolog.DebugLevel,
		"nonsense": zerolog.DebugLevel,
		"panic":    zerolog.PanicLevel,
		"disabled": zerolog.Disabled,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}

// Init only runs once per process so everything touching the root logger lives here
func TestInit_RootAndChildren(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Service: "mealmax-api", Writer: &buf})

	Named("battle").Info().Msg("named")
	C(WithRequest(context.Background(), "req-1", "sess-1")).Info().Msg("scoped")
	C(context.Background()).Debug().Msg("below level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var named, scoped map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &named))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &scoped))

	assert.Equal(t, "battle", named["component"])
	assert.Equal(t, "mealmax-api", named["service"])
	assert.Equal(t, "req-1", scoped["request_id"])
	assert.Equal(t, "sess-1", scoped["session_id"])
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "svc")
	t.Setenv("LOG_CALLER", "yes")

	opt := FromEnv()
	assert.Equal(t, Options{Level: "warn", Format: "json", Service: "svc", WithCaller: true}, opt)
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "r", RequestID(WithRequest(context.Background(), "r", "")))
}
