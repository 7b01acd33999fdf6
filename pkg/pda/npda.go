package pda

import (
	"context"
	"time"

	"github.com/aretw0/automata/internal/explore"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

var (
	_ ports.ContextFree[rune, string]               = (*Nondeterministic[rune, string])(nil)
	_ ports.Cloner[*Nondeterministic[rune, string]] = (*Nondeterministic[rune, string])(nil)
	_ ports.Language[rune]                          = (*NondeterministicLanguage[rune, string])(nil)
	_ ports.Inspector                               = (*NondeterministicDefinition[rune, string])(nil)
)

// NondeterministicConfig describes a nondeterministic pushdown automaton.
// Each key maps to the set of results it may apply.
type NondeterministicConfig[T, S comparable] struct {
	Alphabet    []domain.Symbol[T]
	Initial     domain.State
	Transitions map[Key[T, S]][]Result[S]
	Final       []domain.State
}

// NondeterministicDefinition is an immutable, validated NPDA shared by its instances.
type NondeterministicDefinition[T, S comparable] struct {
	core[T, S]
	delta map[key[T, S]][]Result[S]
}

// CompileNondeterministic validates cfg and builds a definition. Duplicate
// and zero-target results are dropped.
func CompileNondeterministic[T, S comparable](cfg NondeterministicConfig[T, S], opts ...Option) (*NondeterministicDefinition[T, S], error) {
	delta := make(map[key[T, S]][]Result[S], len(cfg.Transitions))
	keys := make([]Key[T, S], 0, len(cfg.Transitions))
	var results []Result[S]
	for k, candidates := range cfg.Transitions {
		keys = append(keys, k)
		lookup := keyOf(k)
		for _, r := range candidates {
			if r.To.IsZero() || containsResult(delta[lookup], r) {
				continue
			}
			results = append(results, r)
			delta[lookup] = append(delta[lookup], r)
		}
	}
	for _, candidates := range delta {
		sortResults(candidates)
	}

	c, err := newCore(domain.KindNPDA, cfg.Alphabet, cfg.Initial, cfg.Final, keys, results, opts)
	if err != nil {
		return nil, err
	}
	return &NondeterministicDefinition[T, S]{core: c, delta: delta}, nil
}

func containsResult[S comparable](results []Result[S], r Result[S]) bool {
	for _, existing := range results {
		if existing.Equal(r) {
			return true
		}
	}
	return false
}

// New creates an instance at the initial state with an empty stack.
func (d *NondeterministicDefinition[T, S]) New() *Nondeterministic[T, S] {
	return &Nondeterministic[T, S]{def: d, current: d.initial}
}

// Language returns the language recognized by the definition.
func (d *NondeterministicDefinition[T, S]) Language() *NondeterministicLanguage[T, S] {
	return &NondeterministicLanguage[T, S]{def: d}
}

// Inspect describes the definition for tables and diagrams.
func (d *NondeterministicDefinition[T, S]) Inspect() domain.Description {
	var edges []domain.Edge
	for k, candidates := range d.delta {
		for _, r := range candidates {
			edges = append(edges, edge(k, r))
		}
	}
	return d.describe(edges)
}

// Nondeterministic is a running NPDA instance. The caller resolves
// nondeterminism by choosing one of the results returned by PeekCandidates.
type Nondeterministic[T, S comparable] struct {
	def     *NondeterministicDefinition[T, S]
	current domain.State
	stack   Stack[S]
}

// NewNondeterministic compiles cfg and returns an instance at the initial state.
func NewNondeterministic[T, S comparable](cfg NondeterministicConfig[T, S], opts ...Option) (*Nondeterministic[T, S], error) {
	def, err := CompileNondeterministic(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return def.New(), nil
}

func (a *Nondeterministic[T, S]) candidates(sym domain.Symbol[T]) []Result[S] {
	return a.def.delta[key[T, S]{from: a.current.ID(), input: sym, top: a.stack.Top()}]
}

// PeekCandidates returns the results available for sym from the current state
// and stack top, ordered by target identifier. The slice is a fresh copy.
func (a *Nondeterministic[T, S]) PeekCandidates(sym domain.Symbol[T]) []Result[S] {
	candidates := a.candidates(sym)
	out := make([]Result[S], len(candidates))
	copy(out, candidates)
	return out
}

// Step applies chosen if it is a candidate for sym. The stack follows the
// same discipline as the deterministic automaton.
func (a *Nondeterministic[T, S]) Step(sym domain.Symbol[T], chosen Result[S]) (domain.State, bool) {
	return a.step(context.Background(), sym, chosen)
}

func (a *Nondeterministic[T, S]) step(ctx context.Context, sym domain.Symbol[T], chosen Result[S]) (domain.State, bool) {
	for _, r := range a.candidates(sym) {
		if r.Equal(chosen) {
			a.apply(ctx, sym, r)
			return r.To, true
		}
	}
	return domain.State{}, false
}

func (a *Nondeterministic[T, S]) apply(ctx context.Context, sym domain.Symbol[T], r Result[S]) {
	a.stack.apply(r.Push)
	a.def.emitStep(ctx, a.current, r.To, sym)
	a.current = r.To
}

// Clone returns an independent instance with a copy of the stack.
func (a *Nondeterministic[T, S]) Clone() *Nondeterministic[T, S] {
	return &Nondeterministic[T, S]{def: a.def, current: a.current, stack: a.stack.Clone()}
}

// Reset returns to the initial state with an empty stack.
func (a *Nondeterministic[T, S]) Reset() {
	a.current = a.def.initial
	a.stack = Stack[S]{}
}

func (a *Nondeterministic[T, S]) Current() domain.State                         { return a.current }
func (a *Nondeterministic[T, S]) Stack() []S                                    { return a.stack.Symbols() }
func (a *Nondeterministic[T, S]) Depth() int                                    { return a.stack.Len() }
func (a *Nondeterministic[T, S]) Definition() *NondeterministicDefinition[T, S] { return a.def }
func (a *Nondeterministic[T, S]) Alphabet() domain.Alphabet[T]                  { return a.def.alphabet }
func (a *Nondeterministic[T, S]) States() domain.StateSet                       { return a.def.States() }
func (a *Nondeterministic[T, S]) Final() domain.StateSet                        { return a.def.Final() }
func (a *Nondeterministic[T, S]) Initial() domain.State                         { return a.def.initial }
func (a *Nondeterministic[T, S]) Language() ports.Language[T]                   { return a.def.Language() }

// Accepting reports whether the instance satisfies the acceptance condition now.
func (a *Nondeterministic[T, S]) Accepting() bool {
	return a.def.accepting(a.current, a.stack)
}

// NondeterministicLanguage answers membership queries by exploring every
// candidate result. Each branch owns its own stack.
type NondeterministicLanguage[T, S comparable] struct {
	def *NondeterministicDefinition[T, S]
}

// Accepts reports whether some sequence of choices consumes w and satisfies
// the acceptance condition. A branch with no candidate for the next symbol
// stops there and is judged where it stands.
func (l *NondeterministicLanguage[T, S]) Accepts(w domain.Word[T]) bool {
	ok, _ := l.AcceptsContext(context.Background(), w)
	return ok
}

// AcceptsContext is Accepts with cancellation checked before every symbol of
// every branch.
func (l *NondeterministicLanguage[T, S]) AcceptsContext(ctx context.Context, w domain.Word[T]) (bool, error) {
	started := time.Now()
	root := &pushdownBranch[T, S]{ctx: ctx, run: l.def.New(), word: w}

	accepted, err := explore.Run(ctx, root, w.Len(), explore.Options{
		Parallelism: l.def.opts.parallelism,
		OnFork:      l.def.emitFork,
		Logger:      l.def.opts.logger,
	})
	l.def.emitQuery(ctx, w.Len(), accepted, err, started)
	return accepted, err
}

// pushdownBranch adapts an instance to the explorer.
type pushdownBranch[T, S comparable] struct {
	ctx        context.Context
	run        *Nondeterministic[T, S]
	word       domain.Word[T]
	sym        domain.Symbol[T]
	candidates []Result[S]
}

func (b *pushdownBranch[T, S]) Expand(i int) int {
	b.sym = b.word.At(i)
	b.candidates = b.run.candidates(b.sym)
	return len(b.candidates)
}

func (b *pushdownBranch[T, S]) Take(k int) {
	b.run.apply(b.ctx, b.sym, b.candidates[k])
}

func (b *pushdownBranch[T, S]) Fork() *pushdownBranch[T, S] {
	clone := *b
	clone.run = b.run.Clone()
	return &clone
}

func (b *pushdownBranch[T, S]) Accepting() bool {
	return b.run.Accepting()
}
