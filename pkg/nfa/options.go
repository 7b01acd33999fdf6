package nfa

import (
	"io"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// Option defines a functional option for compiling a Definition.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	parallelism int
	stateSet    bool
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks for steps, forks and queries.
// Hooks may be called from several goroutines during a query.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithParallelism bounds the goroutines evaluating branches of one query.
// Zero selects runtime.GOMAXPROCS(0); one explores branches sequentially.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithStateSetSimulation answers queries by advancing the set of reachable
// states instead of forking one branch per candidate. Verdicts are identical;
// the cost is linear in the word length.
func WithStateSetSimulation() Option {
	return func(o *options) {
		o.stateSet = true
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	o.logger = o.logger.With("kind", domain.KindNFA)
	return o
}
