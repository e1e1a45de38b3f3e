package pg

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesConfig(t *testing.T) {
	var got *pgxpool.Config
	orig := newPool
	newPool = func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		got = c
		return nil, errors.New("stop")
	}
	t.Cleanup(func() { newPool = orig })

	_, err := Open(context.Background(), Config{
		URL:      "postgres://u:p@localhost:5432/mealmax",
		AppName:  "mealmax-api",
		MaxConns: 7,
	}, nil)
	require.Error(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 7, got.MaxConns)
	assert.Equal(t, "mealmax-api", got.ConnConfig.RuntimeParams["application_name"])
}

func TestOpen_BadURL(t *testing.T) {
	_, err := Open(context.Background(), Config{URL: "://nope"}, nil)
	assert.ErrorContains(t, err, "parse url")
}

func TestTracer_Levels(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT\n\t1", Elapsed: time.Millisecond})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 2", Slow: true})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 3", Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, `"sql":"SELECT 1"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"component":"pg"`)
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "SELECT id FROM meals WHERE id = $1", compact("  SELECT id\n  FROM meals\r\n\tWHERE id = $1 "))
}
