package dfa

import (
	"context"
	"time"

	"github.com/aretw0/automata/pkg/domain"
)

// Language answers membership queries for a Definition. Every query runs on
// a fresh instance, so queries never move a caller-held Automaton.
type Language[T comparable] struct {
	def *Definition[T]
}

// Accepts reports whether w leads from the initial state to a final state.
// Symbols without a move are skipped and the run continues from the same state.
func (l *Language[T]) Accepts(w domain.Word[T]) bool {
	ok, _ := l.AcceptsContext(context.Background(), w)
	return ok
}

// AcceptsContext is Accepts with cancellation checked before every symbol.
func (l *Language[T]) AcceptsContext(ctx context.Context, w domain.Word[T]) (bool, error) {
	started := time.Now()
	run := l.def.New()

	for i := 0; i < w.Len(); i++ {
		if err := ctx.Err(); err != nil {
			l.def.emitQuery(ctx, w.Len(), false, err, started)
			return false, err
		}
		run.step(ctx, w.At(i))
	}

	accepted := run.Accepting()
	l.def.emitQuery(ctx, w.Len(), accepted, nil, started)
	return accepted, nil
}

// Trace runs w on a fresh instance and records what every symbol did.
func (l *Language[T]) Trace(ctx context.Context, w domain.Word[T]) ([]domain.TraceStep, error) {
	run := l.def.New()
	trace := make([]domain.TraceStep, 0, w.Len())

	for i := 0; i < w.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return trace, err
		}
		from := run.current
		to, moved := run.step(ctx, w.At(i))
		if !moved {
			to = from
		}
		trace = append(trace, domain.TraceStep{
			Position: i,
			Input:    w.At(i).String(),
			From:     from,
			To:       to,
			Moved:    moved,
		})
	}
	return trace, nil
}
