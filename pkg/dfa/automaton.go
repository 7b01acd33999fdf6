package dfa

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

var (
	_ ports.Regular[rune]            = (*Automaton[rune])(nil)
	_ ports.Deterministic[rune]      = (*Automaton[rune])(nil)
	_ ports.Cloner[*Automaton[rune]] = (*Automaton[rune])(nil)
	_ ports.Language[rune]           = (*Language[rune])(nil)
	_ ports.Inspector                = (*Definition[rune])(nil)
)

// Automaton is a running DFA instance. It holds only the current state; the
// definition is shared. An instance must be stepped by one caller at a time.
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

// Step moves on sym. When no move exists it returns (State{}, false) and the
// current state is unchanged.
func (a *Automaton[T]) Step(sym domain.Symbol[T]) (domain.State, bool) {
	return a.step(context.Background(), sym)
}

func (a *Automaton[T]) step(ctx context.Context, sym domain.Symbol[T]) (domain.State, bool) {
	to, ok := a.def.lookup(a.current, sym)
	if !ok {
		return domain.State{}, false
	}
	a.def.emitStep(ctx, a.current, to, sym)
	a.current = to
	return to, true
}

// Peek reports what Step would do without moving.
func (a *Automaton[T]) Peek(sym domain.Symbol[T]) (domain.State, bool) {
	return a.def.lookup(a.current, sym)
}

// Feed steps every symbol of w in order and returns the number of moves applied.
func (a *Automaton[T]) Feed(w domain.Word[T]) int {
	moved := 0
	for i := 0; i < w.Len(); i++ {
		if _, ok := a.Step(w.At(i)); ok {
			moved++
		}
	}
	return moved
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
