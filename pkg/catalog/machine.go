package catalog

import (
	"context"

	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/aretw0/automata/pkg/pda"
)

// FromDFA exposes a DFA over runes as a Machine.
func FromDFA(name string, def *dfa.Definition[rune]) Machine {
	return &dfaMachine{name: name, def: def}
}

type dfaMachine struct {
	name string
	def  *dfa.Definition[rune]
}

func (m *dfaMachine) Name() string                 { return m.name }
func (m *dfaMachine) Kind() domain.Kind            { return domain.KindDFA }
func (m *dfaMachine) Describe() domain.Description { return m.def.Inspect() }

func (m *dfaMachine) Accepts(ctx context.Context, input string) (bool, error) {
	return m.def.Language().AcceptsContext(ctx, domain.Chars(input))
}

func (m *dfaMachine) Trace(ctx context.Context, input string) ([]domain.TraceStep, error) {
	return m.def.Language().Trace(ctx, domain.Chars(input))
}

// FromNFA exposes an NFA over runes as a Machine.
func FromNFA(name string, def *nfa.Definition[rune]) Machine {
	return &nfaMachine{name: name, def: def}
}

type nfaMachine struct {
	name string
	def  *nfa.Definition[rune]
}

func (m *nfaMachine) Name() string                 { return m.name }
func (m *nfaMachine) Kind() domain.Kind            { return domain.KindNFA }
func (m *nfaMachine) Describe() domain.Description { return m.def.Inspect() }

func (m *nfaMachine) Accepts(ctx context.Context, input string) (bool, error) {
	return m.def.Language().AcceptsContext(ctx, domain.Chars(input))
}

func (m *nfaMachine) Trace(context.Context, string) ([]domain.TraceStep, error) {
	return nil, domain.ErrTraceUnsupported
}

// FromDPDA exposes a DPDA over runes as a Machine.
func FromDPDA[S comparable](name string, def *pda.DeterministicDefinition[rune, S]) Machine {
	return &dpdaMachine[S]{name: name, def: def}
}

type dpdaMachine[S comparable] struct {
	name string
	def  *pda.DeterministicDefinition[rune, S]
}

func (m *dpdaMachine[S]) Name() string                 { return m.name }
func (m *dpdaMachine[S]) Kind() domain.Kind            { return domain.KindDPDA }
func (m *dpdaMachine[S]) Describe() domain.Description { return m.def.Inspect() }

func (m *dpdaMachine[S]) Accepts(ctx context.Context, input string) (bool, error) {
	return m.def.Language().AcceptsContext(ctx, domain.Chars(input))
}

func (m *dpdaMachine[S]) Trace(ctx context.Context, input string) ([]domain.TraceStep, error) {
	return m.def.Language().Trace(ctx, domain.Chars(input))
}

// FromNPDA exposes an NPDA over runes as a Machine.
func FromNPDA[S comparable](name string, def *pda.NondeterministicDefinition[rune, S]) Machine {
	return &npdaMachine[S]{name: name, def: def}
}

type npdaMachine[S comparable] struct {
	name string
	def  *pda.NondeterministicDefinition[rune, S]
}

func (m *npdaMachine[S]) Name() string                 { return m.name }
func (m *npdaMachine[S]) Kind() domain.Kind            { return domain.KindNPDA }
func (m *npdaMachine[S]) Describe() domain.Description { return m.def.Inspect() }

func (m *npdaMachine[S]) Accepts(ctx context.Context, input string) (bool, error) {
	return m.def.Language().AcceptsContext(ctx, domain.Chars(input))
}

func (m *npdaMachine[S]) Trace(context.Context, string) ([]domain.TraceStep, error) {
	return nil, domain.ErrTraceUnsupported
}
