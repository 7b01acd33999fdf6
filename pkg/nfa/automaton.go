package nfa

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

var (
	_ ports.Regular[rune]            = (*Automaton[rune])(nil)
	_ ports.Nondeterministic[rune]   = (*Automaton[rune])(nil)
	_ ports.Cloner[*Automaton[rune]] = (*Automaton[rune])(nil)
	_ ports.Language[rune]           = (*Language[rune])(nil)
	_ ports.Inspector                = (*Definition[rune])(nil)
)

// Automaton is a running NFA instance. The caller resolves nondeterminism by
// choosing one of the candidates returned by PeekCandidates.
type Automaton[T comparable] struct {
	def     *Definition[T]
	current domain.State
}

// New compiles cfg and returns an instance positioned at the initial state.
func New[T comparable](cfg Config[T], opts ...Option) (*Automaton[T], error) {
	def, err := Compile(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return def.New(), nil
}

// Step moves to chosen if it is a candidate for sym from the current state.
// Otherwise it returns (State{}, false) and the current state is unchanged.
func (a *Automaton[T]) Step(sym domain.Symbol[T], chosen domain.State) (domain.State, bool) {
	return a.step(context.Background(), sym, chosen)
}

func (a *Automaton[T]) step(ctx context.Context, sym domain.Symbol[T], chosen domain.State) (domain.State, bool) {
	for _, candidate := range a.def.candidates(a.current, sym) {
		if candidate.Equal(chosen) {
			a.def.emitStep(ctx, a.current, candidate, sym)
			a.current = candidate
			return candidate, true
		}
	}
	return domain.State{}, false
}

// PeekCandidates returns the states sym may lead to from the current state,
// sorted by identifier. The slice is a fresh copy and may be empty.
func (a *Automaton[T]) PeekCandidates(sym domain.Symbol[T]) []domain.State {
	candidates := a.def.candidates(a.current, sym)
	out := make([]domain.State, len(candidates))
	copy(out, candidates)
	return out
}

// Clone returns an independent instance at the same state, sharing the definition.
func (a *Automaton[T]) Clone() *Automaton[T] {
	return &Automaton[T]{def: a.def, current: a.current}
}

func (a *Automaton[T]) Reset()                       { a.current = a.def.initial }
func (a *Automaton[T]) Current() domain.State        { return a.current }
func (a *Automaton[T]) Definition() *Definition[T]   { return a.def }
func (a *Automaton[T]) Alphabet() domain.Alphabet[T] { return a.def.alphabet }
func (a *Automaton[T]) States() domain.StateSet      { return a.def.States() }
func (a *Automaton[T]) Final() domain.StateSet       { return a.def.Final() }
func (a *Automaton[T]) Initial() domain.State        { return a.def.initial }
func (a *Automaton[T]) Language() ports.Language[T]  { return a.def.Language() }

// Accepting reports whether the current state is final.
func (a *Automaton[T]) Accepting() bool {
	return a.def.final.Contains(a.current)
}
