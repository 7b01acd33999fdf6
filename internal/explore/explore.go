// Package explore runs nondeterministic acceptance searches under structured concurrency.
//
// A search walks a word one position at a time. Positions with a single move
// advance in place; positions with several moves fork one branch per move and
// OR-combine the outcomes. The first accepting branch cancels its siblings.
package explore

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Branch is one path of a nondeterministic run.
// Implementations own their mutable cursor; Fork must return a copy that can
// be advanced from another goroutine without touching the original.
type Branch[B any] interface {
	// Expand computes the moves available for the symbol at position i and
	// returns how many there are.
	Expand(i int) int
	// Take applies the k-th move computed by the last Expand.
	Take(k int)
	// Fork returns an independent copy of the branch.
	Fork() B
	// Accepting reports whether the branch accepts where it stands.
	Accepting() bool
}

// Options tunes a search.
type Options struct {
	// Parallelism bounds the goroutines running branches, the calling one included.
	// Zero means runtime.GOMAXPROCS(0); one means a sequential search.
	Parallelism int

	// OnFork is called at every branch point. It may be called concurrently.
	OnFork func(ctx context.Context, position, branches int)

	Logger *slog.Logger
}

type explorer[B Branch[B]] struct {
	length int
	sem    *semaphore.Weighted
	opts   Options
}

// Run reports whether any path of root over a word of the given length accepts.
// The context is checked before every position; cancellation is returned as
// ctx.Err() unless some branch has already accepted.
func Run[B Branch[B]](ctx context.Context, root B, length int, opts Options) (bool, error) {
	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	e := &explorer[B]{
		length: length,
		sem:    semaphore.NewWeighted(int64(parallelism - 1)),
		opts:   opts,
	}
	return e.walk(ctx, root, 0)
}

func (e *explorer[B]) walk(ctx context.Context, b B, i int) (bool, error) {
	for ; i < e.length; i++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		switch n := b.Expand(i); n {
		case 0:
			// Stuck: a dead end is judged where it stands.
			return b.Accepting(), nil
		case 1:
			b.Take(0)
		default:
			return e.fork(ctx, b, i, n)
		}
	}
	return b.Accepting(), nil
}

func (e *explorer[B]) fork(ctx context.Context, b B, i, n int) (bool, error) {
	if e.opts.OnFork != nil {
		e.opts.OnFork(ctx, i, n)
	}
	if e.opts.Logger != nil {
		e.opts.Logger.Debug("fork", "position", i, "branches", n)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	var accepted atomic.Bool
	var inlineErr error

	for k := 0; k < n && !accepted.Load(); k++ {
		child := b.Fork()
		child.Take(k)

		run := func() error {
			ok, err := e.walk(gctx, child, i+1)
			if err != nil {
				return err
			}
			if ok {
				accepted.Store(true)
				cancel()
			}
			return nil
		}

		if e.sem.TryAcquire(1) {
			g.Go(func() error {
				defer e.sem.Release(1)
				return run()
			})
			continue
		}

		// No free slot: evaluate on this goroutine.
		if err := run(); err != nil {
			inlineErr = err
			break
		}
	}

	groupErr := g.Wait()
	if accepted.Load() {
		return true, nil
	}
	if inlineErr != nil {
		return false, inlineErr
	}
	return false, groupErr
}
