package nfa

import (
	"context"
	"time"

	"github.com/aretw0/automata/internal/explore"
	"github.com/aretw0/automata/pkg/domain"
)

// Language answers membership queries for a Definition on fresh instances.
type Language[T comparable] struct {
	def *Definition[T]
}

// Accepts reports whether some sequence of candidate choices consumes w and
// ends in a final state. A run with no candidate for the next symbol stops
// there and accepts iff it stands on a final state.
func (l *Language[T]) Accepts(w domain.Word[T]) bool {
	ok, _ := l.AcceptsContext(context.Background(), w)
	return ok
}

// AcceptsContext is Accepts with cancellation checked before every symbol of
// every branch. Branch points fork one clone per candidate; the first
// accepting branch cancels the others.
func (l *Language[T]) AcceptsContext(ctx context.Context, w domain.Word[T]) (bool, error) {
	started := time.Now()

	var accepted bool
	var err error
	if l.def.opts.stateSet {
		accepted, err = l.simulate(ctx, w)
	} else {
		root := &branch[T]{ctx: ctx, run: l.def.New(), word: w}
		accepted, err = explore.Run(ctx, root, w.Len(), explore.Options{
			Parallelism: l.def.opts.parallelism,
			OnFork:      l.def.emitFork,
			Logger:      l.def.opts.logger,
		})
	}

	l.def.emitQuery(ctx, w.Len(), accepted, err, started)
	return accepted, err
}

// simulate advances the set of live states one symbol at a time. A state
// with no candidate ends its path, which accepts iff that state is final.
func (l *Language[T]) simulate(ctx context.Context, w domain.Word[T]) (bool, error) {
	live := []domain.State{l.def.initial}

	for i := 0; i < w.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		var next domain.StateSet
		for _, s := range live {
			candidates := l.def.candidates(s, w.At(i))
			if len(candidates) == 0 {
				if l.def.final.Contains(s) {
					return true, nil
				}
				continue
			}
			for _, c := range candidates {
				next.Add(c)
			}
		}
		if next.Len() == 0 {
			return false, nil
		}
		live = next.States()
	}

	for _, s := range live {
		if l.def.final.Contains(s) {
			return true, nil
		}
	}
	return false, nil
}

// branch adapts an instance to the explorer.
type branch[T comparable] struct {
	ctx        context.Context
	run        *Automaton[T]
	word       domain.Word[T]
	sym        domain.Symbol[T]
	candidates []domain.State
}

func (b *branch[T]) Expand(i int) int {
	b.sym = b.word.At(i)
	b.candidates = b.run.def.candidates(b.run.current, b.sym)
	return len(b.candidates)
}

func (b *branch[T]) Take(k int) {
	b.run.step(b.ctx, b.sym, b.candidates[k])
}

func (b *branch[T]) Fork() *branch[T] {
	clone := *b
	clone.run = b.run.Clone()
	return &clone
}

func (b *branch[T]) Accepting() bool {
	return b.run.Accepting()
}
