package pg

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mealmax/internal/platform/logger"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements through root regardless of its level
// slow ones at warn, failed ones at error, the rest at info
func Tracer(root logger.Logger) QueryTracer {
	return &logTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type logTracer struct{ log logger.Logger }

func (l *logTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := l.log.Info()
	switch {
	case ev.Err != nil:
		evt = l.log.Error().Err(ev.Err)
	case ev.Slow:
		evt = l.log.Warn()
	}
	if rid := logger.RequestID(ctx); rid != "" {
		evt = evt.Str("request_id", rid)
	}
	evt.Float64("elapsed_ms", float64(ev.Elapsed.Microseconds())/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Msg("pg query")
}

// compact folds every whitespace run into one space
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
