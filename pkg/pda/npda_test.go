package pda_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/pda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// palindromes builds an NPDA for even-length palindromes over {a, b}.
// In "push" every symbol is pushed; a symbol matching the top may instead
// start "pop", which pops matching symbols. Running out of stack in "pop"
// with input left leads to "dead".
func palindromes(t *testing.T, opts ...pda.Option) (*pda.NondeterministicDefinition[rune, string], domain.State, domain.State) {
	t.Helper()
	push := domain.NewState(1, "push")
	pop := domain.NewState(2, "pop")
	dead := domain.NewState(3, "dead")

	transitions := map[pda.Key[rune, string]][]pda.Result[string]{}
	for _, sym := range []domain.Symbol[rune]{symA, symB} {
		s := sym.String()
		transitions[pda.Key[rune, string]{From: push, Input: sym, Top: pda.EmptyStack[string]()}] = []pda.Result[string]{
			{To: push, Push: pda.PushSymbol(s)},
		}
		for _, top := range []string{"a", "b"} {
			k := pda.Key[rune, string]{From: push, Input: sym, Top: pda.Top(top)}
			transitions[k] = []pda.Result[string]{{To: push, Push: pda.PushSymbol(s)}}
			if top == s {
				transitions[k] = append(transitions[k], pda.Result[string]{To: pop, Push: pda.NoPush[string]()})
				transitions[pda.Key[rune, string]{From: pop, Input: sym, Top: pda.Top(top)}] = []pda.Result[string]{
					{To: pop, Push: pda.NoPush[string]()},
				}
			}
		}
		transitions[pda.Key[rune, string]{From: pop, Input: sym, Top: pda.EmptyStack[string]()}] = []pda.Result[string]{
			{To: dead},
		}
	}

	def, err := pda.CompileNondeterministic(pda.NondeterministicConfig[rune, string]{
		Alphabet:    []domain.Symbol[rune]{symA, symB},
		Initial:     push,
		Transitions: transitions,
		Final:       []domain.State{push, pop},
	}, append([]pda.Option{pda.WithAcceptance(pda.AcceptFinalStateAndEmptyStack)}, opts...)...)
	require.NoError(t, err)
	return def, push, pop
}

func TestNondeterministic_Palindromes(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"", true},
		{"aa", true},
		{"abba", true},
		{"babbab", true},
		{"ab", false},
		{"aba", false},
		{"abbaab", false},
		{"aabb", false},
	}

	for _, parallelism := range []int{1, 4} {
		def, _, _ := palindromes(t, pda.WithParallelism(parallelism))
		for _, tt := range tests {
			t.Run(tt.word, func(t *testing.T) {
				got, err := def.Language().AcceptsContext(context.Background(), domain.Chars(tt.word))
				require.NoError(t, err)
				assert.Equal(t, tt.want, got, "parallelism %d", parallelism)
			})
		}
	}
}

func TestNondeterministic_Step(t *testing.T) {
	def, push, pop := palindromes(t)
	m := def.New()

	candidates := m.PeekCandidates(symA)
	require.Len(t, candidates, 1)
	_, ok := m.Step(symA, pda.Result[string]{To: pop})
	assert.False(t, ok, "pop is not a candidate on an empty stack")

	to, ok := m.Step(symA, candidates[0])
	require.True(t, ok)
	assert.Equal(t, push, to)
	assert.Equal(t, []string{"a"}, m.Stack())

	candidates = m.PeekCandidates(symA)
	require.Len(t, candidates, 2)
	assert.Equal(t, push, candidates[0].To)
	assert.Equal(t, pop, candidates[1].To)

	// Branches own their stacks.
	other := m.Clone()
	other.Step(symA, candidates[0])
	m.Step(symA, candidates[1])
	assert.Equal(t, []string{"a", "a"}, other.Stack())
	assert.Empty(t, m.Stack())
	assert.True(t, m.Accepting())
}

func TestNondeterministic_Forks(t *testing.T) {
	var forks atomic.Int64
	hooks := domain.LifecycleHooks{
		OnFork: func(context.Context, *domain.ForkEvent) { forks.Add(1) },
	}
	def, _, _ := palindromes(t, pda.WithLifecycleHooks(hooks), pda.WithParallelism(1))

	assert.True(t, def.Language().Accepts(domain.Chars("abba")))
	assert.Positive(t, forks.Load())
}

func TestNondeterministic_Cancelled(t *testing.T) {
	def, _, _ := palindromes(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := def.Language().AcceptsContext(ctx, domain.Chars("abba"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestCompileNondeterministic(t *testing.T) {
	start := domain.NewState(1, "s")
	end := domain.NewState(2, "e")
	k := pda.Key[rune, string]{From: start, Input: symA, Top: pda.EmptyStack[string]()}

	def, err := pda.CompileNondeterministic(pda.NondeterministicConfig[rune, string]{
		Alphabet: []domain.Symbol[rune]{symA},
		Initial:  start,
		Transitions: map[pda.Key[rune, string]][]pda.Result[string]{
			k: {{To: end}, {To: end}, {}, {To: end, Push: pda.PushSymbol("x")}},
		},
		Final: []domain.State{end},
	})
	require.NoError(t, err)

	assert.Len(t, def.New().PeekCandidates(symA), 2, "duplicates and zero targets are dropped")
	assert.Equal(t, []string{"x"}, def.StackAlphabet())
	assert.Len(t, def.Inspect().Edges, 2)
	assert.Equal(t, domain.KindNPDA, def.Inspect().Kind)

	_, err = pda.CompileNondeterministic(pda.NondeterministicConfig[rune, string]{
		Initial: domain.NewState(9, "ghost"),
		Transitions: map[pda.Key[rune, string]][]pda.Result[string]{
			k: {{To: end}},
		},
	})
	assert.ErrorIs(t, err, domain.ErrIllegalInitialState)
}
