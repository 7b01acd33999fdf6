package catalog

import (
	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/aretw0/automata/pkg/pda"
)

func (o Options) dfa() []dfa.Option {
	opts := []dfa.Option{dfa.WithLifecycleHooks(o.Hooks)}
	if o.Logger != nil {
		opts = append(opts, dfa.WithLogger(o.Logger))
	}
	return opts
}

func (o Options) nfa() []nfa.Option {
	opts := []nfa.Option{nfa.WithLifecycleHooks(o.Hooks), nfa.WithParallelism(o.Parallelism)}
	if o.Logger != nil {
		opts = append(opts, nfa.WithLogger(o.Logger))
	}
	if o.StateSet {
		opts = append(opts, nfa.WithStateSetSimulation())
	}
	return opts
}

func (o Options) pda(extra ...pda.Option) []pda.Option {
	opts := []pda.Option{pda.WithLifecycleHooks(o.Hooks), pda.WithParallelism(o.Parallelism)}
	if o.Logger != nil {
		opts = append(opts, pda.WithLogger(o.Logger))
	}
	return append(opts, extra...)
}
