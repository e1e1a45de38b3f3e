package battle

import (
	"context"
	"errors"
	"math"
)

// upsetScale turns a score delta into the probability of an upset
const upsetScale = 100.0

// Engine resolves a staged contest
type Engine struct {
	source RandomSource
	sink   StatsSink
}

// NewEngine wires the randomness source and the stats sink
func NewEngine(src RandomSource, sink StatsSink) *Engine {
	if src == nil {
		panic("battle.Engine requires a non nil RandomSource")
	}
	if sink == nil {
		panic("battle.Engine requires a non nil StatsSink")
	}
	return &Engine{source: src, sink: sink}
}

// UpsetChance is the normalized score separation clamped to [0, 1]
func UpsetChance(a, b float64) float64 {
	n := math.Abs(a-b) / upsetScale
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

// Resolve runs one round over reg
//
// The loser is recorded before the winner and a sink failure stops the sequence, so a
// *PersistenceError may leave the loss recorded without the win. The registry is only
// mutated after both records succeed; on success it holds exactly the winner
func (e *Engine) Resolve(ctx context.Context, reg *Registry) (Outcome, error) {
	if reg == nil || reg.Count() != Capacity {
		return Outcome{}, ErrPrecondition
	}
	staged := reg.List()
	a, b := staged[0], staged[1]
	sa, sb := Score(a), Score(b)

	r, err := e.source.Float64(ctx)
	if err != nil {
		return Outcome{}, &RandomnessError{Err: err}
	}
	if math.IsNaN(r) || r < 0 || r >= 1 {
		return Outcome{}, &RandomnessError{Value: r}
	}

	// index 0 is the higher entry on equal scores
	hi, lo, hiScore, loScore := a, b, sa, sb
	if sb > sa {
		hi, lo, hiScore, loScore = b, a, sb, sa
	}

	out := Outcome{Draw: r}
	if r < UpsetChance(sa, sb) {
		out.Winner, out.Loser, out.WinnerScore, out.LoserScore, out.Upset = lo, hi, loScore, hiScore, true
	} else {
		out.Winner, out.Loser, out.WinnerScore, out.LoserScore = hi, lo, hiScore, loScore
	}

	if err := e.record(ctx, out.Loser.ID, ResultLoss); err != nil {
		return out, err
	}
	if err := e.record(ctx, out.Winner.ID, ResultWin); err != nil {
		return out, err
	}

	reg.remove(out.Loser.ID)
	return out, nil
}

func (e *Engine) record(ctx context.Context, id int64, res Result) error {
	if err := e.sink.RecordOutcome(ctx, id, res); err != nil {
		var pe *PersistenceError
		if errors.As(err, &pe) {
			return err
		}
		return &PersistenceError{ID: id, Outcome: res, Err: err}
	}
	return nil
}
