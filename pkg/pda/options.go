package pda

import (
	"io"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// Acceptance selects when a pushdown language accepts a word.
type Acceptance int

const (
	// AcceptFinalState accepts when the run ends on a final state, whatever
	// is left on the stack.
	AcceptFinalState Acceptance = iota
	// AcceptFinalStateAndEmptyStack also requires the stack to be empty.
	AcceptFinalStateAndEmptyStack
)

func (a Acceptance) String() string {
	switch a {
	case AcceptFinalState:
		return "final-state"
	case AcceptFinalStateAndEmptyStack:
		return "final-state-and-empty-stack"
	default:
		return "unknown"
	}
}

// Option defines a functional option for compiling a pushdown definition.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	acceptance  Acceptance
	parallelism int
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithAcceptance selects the acceptance condition. The default is AcceptFinalState.
func WithAcceptance(mode Acceptance) Option {
	return func(o *options) {
		o.acceptance = mode
	}
}

// WithParallelism bounds the goroutines exploring branches of a
// nondeterministic query. Deterministic definitions ignore it.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

func newOptions(kind domain.Kind, opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	o.logger = o.logger.With("kind", kind)
	return o
}
