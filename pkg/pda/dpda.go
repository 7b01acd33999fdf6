package pda

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

var (
	_ ports.ContextFree[rune, string]            = (*Deterministic[rune, string])(nil)
	_ ports.Deterministic[rune]                  = (*Deterministic[rune, string])(nil)
	_ ports.Cloner[*Deterministic[rune, string]] = (*Deterministic[rune, string])(nil)
	_ ports.Language[rune]                       = (*DeterministicLanguage[rune, string])(nil)
	_ ports.Inspector                            = (*DeterministicDefinition[rune, string])(nil)
)

// DeterministicConfig describes a deterministic pushdown automaton.
// A result with a zero target declares that the key has no move.
type DeterministicConfig[T, S comparable] struct {
	Alphabet    []domain.Symbol[T]
	Initial     domain.State
	Transitions map[Key[T, S]]Result[S]
	Final       []domain.State
}

// DeterministicDefinition is an immutable, validated DPDA shared by its instances.
type DeterministicDefinition[T, S comparable] struct {
	core[T, S]
	delta map[key[T, S]]Result[S]
}

// CompileDeterministic validates cfg and builds a definition. The implied
// states are the sources of every key and the targets of every result. Keys
// that differ only in state labels must agree on their result, otherwise
// domain.ErrConflictingTransition is returned.
func CompileDeterministic[T, S comparable](cfg DeterministicConfig[T, S], opts ...Option) (*DeterministicDefinition[T, S], error) {
	delta := make(map[key[T, S]]Result[S], len(cfg.Transitions))
	keys := make([]Key[T, S], 0, len(cfg.Transitions))
	results := make([]Result[S], 0, len(cfg.Transitions))
	for k, r := range cfg.Transitions {
		keys = append(keys, k)
		if r.To.IsZero() {
			continue
		}
		if prev, ok := delta[keyOf(k)]; ok && !prev.Equal(r) {
			return nil, fmt.Errorf("%w: %s on %s with top %s goes to both %s and %s",
				domain.ErrConflictingTransition, k.From, k.Input, k.Top, prev.To, r.To)
		}
		results = append(results, r)
		delta[keyOf(k)] = r
	}

	c, err := newCore(domain.KindDPDA, cfg.Alphabet, cfg.Initial, cfg.Final, keys, results, opts)
	if err != nil {
		return nil, err
	}
	return &DeterministicDefinition[T, S]{core: c, delta: delta}, nil
}

// New creates an instance at the initial state with an empty stack.
func (d *DeterministicDefinition[T, S]) New() *Deterministic[T, S] {
	return &Deterministic[T, S]{def: d, current: d.initial}
}

// Language returns the language recognized by the definition.
func (d *DeterministicDefinition[T, S]) Language() *DeterministicLanguage[T, S] {
	return &DeterministicLanguage[T, S]{def: d}
}

// Inspect describes the definition for tables and diagrams.
func (d *DeterministicDefinition[T, S]) Inspect() domain.Description {
	edges := make([]domain.Edge, 0, len(d.delta))
	for k, r := range d.delta {
		edges = append(edges, edge(k, r))
	}
	return d.describe(edges)
}

// Deterministic is a running DPDA instance: a current state and a private stack.
type Deterministic[T, S comparable] struct {
	def     *DeterministicDefinition[T, S]
	current domain.State
	stack   Stack[S]
}

// NewDeterministic compiles cfg and returns an instance at the initial state.
func NewDeterministic[T, S comparable](cfg DeterministicConfig[T, S], opts ...Option) (*Deterministic[T, S], error) {
	def, err := CompileDeterministic(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return def.New(), nil
}

func (a *Deterministic[T, S]) lookup(sym domain.Symbol[T]) (Result[S], bool) {
	r, ok := a.def.delta[key[T, S]{from: a.current.ID(), input: sym, top: a.stack.Top()}]
	return r, ok
}

// Step looks up (current state, sym, stack top). Without a match it returns
// (State{}, false) and nothing changes. With a match it pushes the result's
// symbol, or pops the top when the result pushes nothing, then moves.
func (a *Deterministic[T, S]) Step(sym domain.Symbol[T]) (domain.State, bool) {
	return a.step(context.Background(), sym)
}

func (a *Deterministic[T, S]) step(ctx context.Context, sym domain.Symbol[T]) (domain.State, bool) {
	r, ok := a.lookup(sym)
	if !ok {
		return domain.State{}, false
	}
	a.stack.apply(r.Push)
	a.def.emitStep(ctx, a.current, r.To, sym)
	a.current = r.To
	return r.To, true
}

// Peek reports the state Step would move to, leaving state and stack untouched.
func (a *Deterministic[T, S]) Peek(sym domain.Symbol[T]) (domain.State, bool) {
	r, ok := a.lookup(sym)
	if !ok {
		return domain.State{}, false
	}
	return r.To, true
}

// Feed steps every symbol of w in order and returns the number of moves applied.
func (a *Deterministic[T, S]) Feed(w domain.Word[T]) int {
	moved := 0
	for i := 0; i < w.Len(); i++ {
		if _, ok := a.Step(w.At(i)); ok {
			moved++
		}
	}
	return moved
}

// Clone returns an independent instance with a copy of the stack.
func (a *Deterministic[T, S]) Clone() *Deterministic[T, S] {
	return &Deterministic[T, S]{def: a.def, current: a.current, stack: a.stack.Clone()}
}

// Reset returns to the initial state with an empty stack.
func (a *Deterministic[T, S]) Reset() {
	a.current = a.def.initial
	a.stack = Stack[S]{}
}

func (a *Deterministic[T, S]) Current() domain.State                      { return a.current }
func (a *Deterministic[T, S]) Stack() []S                                 { return a.stack.Symbols() }
func (a *Deterministic[T, S]) Depth() int                                 { return a.stack.Len() }
func (a *Deterministic[T, S]) Definition() *DeterministicDefinition[T, S] { return a.def }
func (a *Deterministic[T, S]) Alphabet() domain.Alphabet[T]               { return a.def.alphabet }
func (a *Deterministic[T, S]) States() domain.StateSet                    { return a.def.States() }
func (a *Deterministic[T, S]) Final() domain.StateSet                     { return a.def.Final() }
func (a *Deterministic[T, S]) Initial() domain.State                      { return a.def.initial }
func (a *Deterministic[T, S]) Language() ports.Language[T]                { return a.def.Language() }

// Accepting reports whether the instance satisfies the acceptance condition now.
func (a *Deterministic[T, S]) Accepting() bool {
	return a.def.accepting(a.current, a.stack)
}

// DeterministicLanguage answers membership queries on fresh DPDA instances.
type DeterministicLanguage[T, S comparable] struct {
	def *DeterministicDefinition[T, S]
}

// Accepts feeds w to a fresh instance and checks the acceptance condition.
// Symbols without a move are skipped.
func (l *DeterministicLanguage[T, S]) Accepts(w domain.Word[T]) bool {
	ok, _ := l.AcceptsContext(context.Background(), w)
	return ok
}

// AcceptsContext is Accepts with cancellation checked before every symbol.
func (l *DeterministicLanguage[T, S]) AcceptsContext(ctx context.Context, w domain.Word[T]) (bool, error) {
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

// Trace runs w on a fresh instance and records every symbol with the stack after it.
func (l *DeterministicLanguage[T, S]) Trace(ctx context.Context, w domain.Word[T]) ([]domain.TraceStep, error) {
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
			Stack:    run.stack.Strings(),
		})
	}
	return trace, nil
}
