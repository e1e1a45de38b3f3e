package battle

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// RandomSource draws a uniform value in [0, 1)
type RandomSource interface {
	Float64(ctx context.Context) (float64, error)
}

// SourceFunc adapts a function to RandomSource
type SourceFunc func(ctx context.Context) (float64, error)

// Float64 calls f
func (f SourceFunc) Float64(ctx context.Context) (float64, error) { return f(ctx) }

// Fixed returns a source that always draws v, handy for tests and replays
func Fixed(v float64) RandomSource {
	return SourceFunc(func(context.Context) (float64, error) { return v, nil })
}

// CryptoSource draws from crypto/rand using the top 53 bits of a uint64
type CryptoSource struct{}

// Float64 returns a uniform value in [0, 1)
func (CryptoSource) Float64(_ context.Context) (float64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("crypto/rand: %w", err)
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53), nil
}

// StatsSink durably records a result for a combatant
type StatsSink interface {
	RecordOutcome(ctx context.Context, id int64, r Result) error
}

// SinkFunc adapts a function to StatsSink
type SinkFunc func(ctx context.Context, id int64, r Result) error

// RecordOutcome calls f
func (f SinkFunc) RecordOutcome(ctx context.Context, id int64, r Result) error { return f(ctx, id, r) }
