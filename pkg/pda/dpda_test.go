package pda_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/pda"
	"github.com/aretw0/automata/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	symA = domain.NewSymbol('a')
	symB = domain.NewSymbol('b')
	symC = domain.NewSymbol('c')
)

type fixture struct {
	start, a, b, end domain.State
	cfg              pda.DeterministicConfig[rune, string]
}

// newFixture builds Start -a/ε-> (A, push a), A -b/a-> (B, push b),
// B -c/b-> (End, push b) with End final.
func newFixture() fixture {
	alloc := domain.NewAllocator()
	f := fixture{
		start: alloc.New("Start"),
		a:     alloc.New("A"),
		b:     alloc.New("B"),
		end:   alloc.New("End"),
	}
	f.cfg = pda.DeterministicConfig[rune, string]{
		Alphabet: []domain.Symbol[rune]{symA, symB, symC},
		Initial:  f.start,
		Transitions: map[pda.Key[rune, string]]pda.Result[string]{
			{From: f.start, Input: symA, Top: pda.EmptyStack[string]()}: {To: f.a, Push: pda.PushSymbol("a")},
			{From: f.a, Input: symB, Top: pda.Top("a")}:                 {To: f.b, Push: pda.PushSymbol("b")},
			{From: f.b, Input: symC, Top: pda.Top("b")}:                 {To: f.end, Push: pda.PushSymbol("b")},
		},
		Final: []domain.State{f.end},
	}
	return f
}

// anbn accepts a^n b^n (n >= 0) by final state and empty stack: a pushes, b pops.
func anbn(t *testing.T, opts ...pda.Option) *pda.DeterministicDefinition[rune, string] {
	t.Helper()
	q0 := domain.NewState(1, "push")
	q1 := domain.NewState(2, "pop")
	dead := domain.NewState(3, "dead")
	empty := pda.EmptyStack[string]()

	def, err := pda.CompileDeterministic(pda.DeterministicConfig[rune, string]{
		Alphabet: []domain.Symbol[rune]{symA, symB},
		Initial:  q0,
		Transitions: map[pda.Key[rune, string]]pda.Result[string]{
			{From: q0, Input: symA, Top: empty}:         {To: q0, Push: pda.PushSymbol("A")},
			{From: q0, Input: symA, Top: pda.Top("A")}: {To: q0, Push: pda.PushSymbol("A")},
			{From: q0, Input: symB, Top: pda.Top("A")}: {To: q1, Push: pda.NoPush[string]()},
			{From: q0, Input: symB, Top: empty}:         {To: dead},
			{From: q1, Input: symB, Top: pda.Top("A")}: {To: q1, Push: pda.NoPush[string]()},
			{From: q1, Input: symB, Top: empty}:         {To: dead},
			{From: q1, Input: symA, Top: pda.Top("A")}: {To: dead},
			{From: q1, Input: symA, Top: empty}:         {To: dead},
		},
		Final: []domain.State{q0, q1},
	}, append([]pda.Option{pda.WithAcceptance(pda.AcceptFinalStateAndEmptyStack)}, opts...)...)
	require.NoError(t, err)
	return def
}

func TestDeterministic_Scenario(t *testing.T) {
	f := newFixture()
	def, err := pda.CompileDeterministic(f.cfg)
	require.NoError(t, err)

	lang := def.Language()
	assert.True(t, lang.Accepts(domain.Chars("abc")))
	assert.False(t, lang.Accepts(domain.Chars("ab")))
	assert.False(t, lang.Accepts(domain.Chars("ac")))

	m := def.New()
	m.Feed(domain.Chars("abc"))
	assert.Equal(t, f.end, m.Current())
	assert.Equal(t, []string{"a", "b", "b"}, m.Stack())
}

func TestDeterministic_StepNoMove(t *testing.T) {
	f := newFixture()
	m, err := pda.NewDeterministic(f.cfg)
	require.NoError(t, err)

	_, ok := m.Step(symB)
	assert.False(t, ok)
	assert.Equal(t, f.start, m.Current())
	assert.Zero(t, m.Depth())

	// A matches only on an empty stack.
	m.Step(symA)
	_, ok = m.Peek(symA)
	assert.False(t, ok)
}

func TestDeterministic_PushPopDiscipline(t *testing.T) {
	def := anbn(t)
	cfgResult := func(m *pda.Deterministic[rune, string], sym domain.Symbol[rune]) (pushes, found bool) {
		before := m.Clone()
		if _, ok := before.Peek(sym); !ok {
			return false, false
		}
		// Pushing results grow the stack; the clone tells which one applies.
		depth := before.Depth()
		before.Step(sym)
		return before.Depth() == depth+1, true
	}

	for _, word := range []string{"aaabbb", "aabbb", "abab", "ba", "bbaa", ""} {
		t.Run(word, func(t *testing.T) {
			m := def.New()
			for _, sym := range domain.Chars(word).Symbols() {
				depth := m.Depth()
				pushes, found := cfgResult(m, sym)
				_, ok := m.Step(sym)
				require.Equal(t, found, ok)

				switch {
				case !ok:
					assert.Equal(t, depth, m.Depth(), "no move leaves the stack alone")
				case pushes:
					assert.Equal(t, depth+1, m.Depth())
				case depth > 0:
					assert.Equal(t, depth-1, m.Depth())
				default:
					assert.Equal(t, 0, m.Depth())
				}
			}
		})
	}
}

func TestDeterministic_AcceptanceModes(t *testing.T) {
	tests := []struct {
		word      string
		emptyMode bool
		finalMode bool
	}{
		{"", true, true},
		{"ab", true, true},
		{"aaabbb", true, true},
		{"aab", false, true}, // Ends on a final state with A left on the stack.
		{"abb", false, false},
		{"aba", false, false},
		{"ba", false, false},
		{"a", false, true},
	}

	emptyStack := anbn(t).Language()
	finalOnly := anbn(t, pda.WithAcceptance(pda.AcceptFinalState)).Language()

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.emptyMode, emptyStack.Accepts(domain.Chars(tt.word)), "empty stack")
			assert.Equal(t, tt.finalMode, finalOnly.Accepts(domain.Chars(tt.word)), "final state")
		})
	}
}

func TestCompileDeterministic_Validation(t *testing.T) {
	f := newFixture()
	f.cfg.Initial = domain.NewState(42, "Ghost")
	_, err := pda.CompileDeterministic(f.cfg)
	assert.ErrorIs(t, err, domain.ErrIllegalInitialState)

	f = newFixture()
	f.cfg.Final = []domain.State{f.end, domain.NewState(42, "Ghost")}
	_, err = pda.CompileDeterministic(f.cfg)
	assert.ErrorIs(t, err, domain.ErrIllegalFinalStates)

	f = newFixture()
	relabeled := domain.NewState(f.start.ID(), "Start again")
	f.cfg.Transitions[pda.Key[rune, string]{From: relabeled, Input: symA, Top: pda.EmptyStack[string]()}] = pda.Result[string]{To: f.b}
	_, err = pda.CompileDeterministic(f.cfg)
	assert.ErrorIs(t, err, domain.ErrConflictingTransition)

	// End is only a result target, and is still a state.
	f = newFixture()
	def, err := pda.CompileDeterministic(f.cfg)
	require.NoError(t, err)
	assert.True(t, def.States().Contains(f.end))
	assert.Equal(t, []string{"a", "b"}, def.StackAlphabet())
}

func TestDeterministicContract(t *testing.T) {
	words := []domain.Word[rune]{domain.Chars("abc"), domain.Chars("ab"), domain.Chars("")}
	tests.DeterministicContractTest[rune](t, func(t *testing.T) *pda.Deterministic[rune, string] {
		m, err := pda.NewDeterministic(newFixture().cfg)
		require.NoError(t, err)
		return m
	}, words)
}

func TestDeterministic_CloneOwnsStack(t *testing.T) {
	f := newFixture()
	m, err := pda.NewDeterministic(f.cfg)
	require.NoError(t, err)
	m.Step(symA)

	clone := m.Clone()
	clone.Step(symB)

	assert.Equal(t, []string{"a"}, m.Stack())
	assert.Equal(t, []string{"a", "b"}, clone.Stack())

	clone.Reset()
	assert.Zero(t, clone.Depth())
	assert.Equal(t, f.start, clone.Current())
}

func TestDeterministicLanguage_Trace(t *testing.T) {
	f := newFixture()
	def, err := pda.CompileDeterministic(f.cfg)
	require.NoError(t, err)

	trace, err := def.Language().Trace(context.Background(), domain.Chars("abc"))
	require.NoError(t, err)
	require.Len(t, trace, 3)
	assert.Equal(t, []string{"a"}, trace[0].Stack)
	assert.Equal(t, []string{"a", "b", "b"}, trace[2].Stack)
	assert.Equal(t, f.end, trace[2].To)
}

func TestDeterministic_Inspect(t *testing.T) {
	f := newFixture()
	def, err := pda.CompileDeterministic(f.cfg)
	require.NoError(t, err)

	desc := def.Inspect()
	assert.Equal(t, domain.KindDPDA, desc.Kind)
	assert.Equal(t, []string{"a", "b"}, desc.StackAlphabet)
	require.Len(t, desc.Edges, 3)
	assert.Equal(t, domain.Edge{From: f.start.ID(), To: f.a.ID(), Input: "a", Push: "a"}, desc.Edges[0])
	assert.Equal(t, "a", desc.Edges[1].Top)
}

func TestDeterministicDefinition_SetsAreCopies(t *testing.T) {
	f := newFixture()
	def, err := pda.CompileDeterministic(f.cfg)
	require.NoError(t, err)

	final := def.Final()
	final.Add(f.start)

	assert.False(t, def.Language().Accepts(domain.Chars("")))
	assert.False(t, def.Final().Contains(f.start))
	assert.True(t, def.Language().Accepts(domain.Chars("abc")))
}
