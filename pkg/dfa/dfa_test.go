package dfa_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
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
	cfg              dfa.Config[rune]
}

// newFixture builds Start -a-> A -b-> B -c-> End with End final.
func newFixture() fixture {
	alloc := domain.NewAllocator()
	f := fixture{
		start: alloc.New("Start"),
		a:     alloc.New("A"),
		b:     alloc.New("B"),
		end:   alloc.New("End"),
	}
	f.cfg = dfa.Config[rune]{
		Alphabet: []domain.Symbol[rune]{symA, symB, symC},
		Initial:  f.start,
		Transitions: map[domain.State]map[domain.Symbol[rune]]domain.State{
			f.start: {symA: f.a},
			f.a:     {symB: f.b},
			f.b:     {symC: f.end},
		},
		Final: []domain.State{f.end},
	}
	return f
}

func TestAutomaton_Feed(t *testing.T) {
	f := newFixture()
	m, err := dfa.New(f.cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Feed(domain.Chars("a")))
	assert.Equal(t, f.a, m.Current())

	m.Reset()
	m.Feed(domain.Chars("ab"))
	assert.Equal(t, f.b, m.Current())
}

func TestLanguage_Accepts(t *testing.T) {
	f := newFixture()
	def, err := dfa.Compile(f.cfg)
	require.NoError(t, err)
	lang := def.Language()

	tests := []struct {
		word string
		want bool
	}{
		{"abc", true},
		{"ab", false},
		{"ac", false},
		{"", false},
		{"abcc", true}, // No move from End on c: the run stays final.
		{"aabc", true}, // The second a has no move from A.
		{"abca", true},
		{"xyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, lang.Accepts(domain.Chars(tt.word)))
		})
	}
}

func TestLanguage_EmptyWord(t *testing.T) {
	f := newFixture()
	f.cfg.Final = []domain.State{f.start}
	def, err := dfa.Compile(f.cfg)
	require.NoError(t, err)

	assert.True(t, def.Language().Accepts(domain.Chars("")))
	assert.False(t, def.Language().Accepts(domain.Chars("a")))
}

func TestAutomaton_StepNoMove(t *testing.T) {
	f := newFixture()
	m, err := dfa.New(f.cfg)
	require.NoError(t, err)

	to, ok := m.Step(symC)
	assert.False(t, ok)
	assert.True(t, to.IsZero())
	assert.Equal(t, f.start, m.Current())

	to, ok = m.Step(symA)
	assert.True(t, ok)
	assert.Equal(t, f.a, to)
}

func TestCompile_Validation(t *testing.T) {
	t.Run("Illegal initial", func(t *testing.T) {
		f := newFixture()
		ghost := domain.NewState(99, "Ghost")
		f.cfg.Initial = ghost

		_, err := dfa.Compile(f.cfg)
		require.ErrorIs(t, err, domain.ErrIllegalInitialState)

		var initialErr *domain.IllegalInitialStateError
		require.True(t, errors.As(err, &initialErr))
		assert.Equal(t, ghost, initialErr.State)
	})

	t.Run("Illegal finals", func(t *testing.T) {
		f := newFixture()
		ghost := domain.NewState(99, "Ghost")
		f.cfg.Final = []domain.State{f.end, ghost}

		_, err := dfa.Compile(f.cfg)
		require.ErrorIs(t, err, domain.ErrIllegalFinalStates)

		var finalsErr *domain.IllegalFinalStatesError
		require.True(t, errors.As(err, &finalsErr))
		assert.Equal(t, []domain.State{ghost}, finalsErr.States)
	})

	t.Run("Target-only state is implied", func(t *testing.T) {
		f := newFixture()
		def, err := dfa.Compile(f.cfg)
		require.NoError(t, err)
		assert.True(t, def.States().Contains(f.end))
		assert.Equal(t, 4, def.States().Len())
	})

	t.Run("Empty row declares a state", func(t *testing.T) {
		f := newFixture()
		sink := domain.NewState(50, "Sink")
		f.cfg.Transitions[sink] = map[domain.Symbol[rune]]domain.State{}
		f.cfg.Final = []domain.State{f.end, sink}

		_, err := dfa.Compile(f.cfg)
		require.NoError(t, err)
	})

	t.Run("Same ID with conflicting targets", func(t *testing.T) {
		f := newFixture()
		relabeled := domain.NewState(f.start.ID(), "Start again")
		f.cfg.Transitions[relabeled] = map[domain.Symbol[rune]]domain.State{symA: f.b}

		_, err := dfa.Compile(f.cfg)
		assert.ErrorIs(t, err, domain.ErrConflictingTransition)
	})

	t.Run("Same ID with agreeing targets", func(t *testing.T) {
		f := newFixture()
		relabeled := domain.NewState(f.start.ID(), "Start again")
		f.cfg.Transitions[relabeled] = map[domain.Symbol[rune]]domain.State{symA: f.a, symB: f.end}

		def, err := dfa.Compile(f.cfg)
		require.NoError(t, err)
		assert.True(t, def.Language().Accepts(domain.Chars("b")))
	})

	t.Run("Zero target declares nothing", func(t *testing.T) {
		f := newFixture()
		f.cfg.Transitions[f.end] = map[domain.Symbol[rune]]domain.State{symA: {}}
		def, err := dfa.Compile(f.cfg)
		require.NoError(t, err)

		m := def.New()
		m.Feed(domain.Chars("abc"))
		_, ok := m.Peek(symA)
		assert.False(t, ok)
	})
}

func TestDeterministicContract(t *testing.T) {
	words := []domain.Word[rune]{
		domain.Chars(""), domain.Chars("abc"), domain.Chars("ab"), domain.Chars("cab"),
	}
	tests.DeterministicContractTest[rune](t, func(t *testing.T) *dfa.Automaton[rune] {
		m, err := dfa.New(newFixture().cfg)
		require.NoError(t, err)
		return m
	}, words)
}

func TestLanguage_DoesNotMoveHeldInstance(t *testing.T) {
	f := newFixture()
	m, err := dfa.New(f.cfg)
	require.NoError(t, err)
	m.Feed(domain.Chars("ab"))

	assert.True(t, m.Definition().Language().Accepts(domain.Chars("abc")))
	assert.True(t, m.Definition().Language().Accepts(domain.Chars("abc")))
	assert.Equal(t, f.b, m.Current())
}

func TestLanguage_Cancelled(t *testing.T) {
	def, err := dfa.Compile(newFixture().cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := def.Language().AcceptsContext(ctx, domain.Chars("abc"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestLanguage_Trace(t *testing.T) {
	f := newFixture()
	def, err := dfa.Compile(f.cfg)
	require.NoError(t, err)

	trace, err := def.Language().Trace(context.Background(), domain.Chars("acb"))
	require.NoError(t, err)
	require.Len(t, trace, 3)

	assert.True(t, trace[0].Moved)
	assert.Equal(t, f.a, trace[0].To)
	assert.False(t, trace[1].Moved)
	assert.Equal(t, f.a, trace[1].To)
	assert.Equal(t, "c", trace[1].Input)
	assert.Equal(t, f.b, trace[2].To)

	assert.Equal(t, []domain.State{f.start, f.a, f.b}, domain.Visited(f.start, trace))
}

func TestLifecycleHooks(t *testing.T) {
	f := newFixture()
	var steps []string
	var queries []*domain.QueryEvent
	hooks := domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			steps = append(steps, e.From.String()+"->"+e.To.String())
		},
		OnAccept: func(_ context.Context, e *domain.QueryEvent) {
			queries = append(queries, e)
		},
	}

	def, err := dfa.Compile(f.cfg, dfa.WithLifecycleHooks(hooks))
	require.NoError(t, err)

	assert.True(t, def.Language().Accepts(domain.Chars("abc")))
	assert.Equal(t, []string{"Start->A", "A->B", "B->End"}, steps)
	require.Len(t, queries, 1)
	assert.True(t, queries[0].Accepted)
	assert.Equal(t, 3, queries[0].Length)
	assert.Equal(t, domain.KindDFA, queries[0].Kind)
}

func TestDefinition_Inspect(t *testing.T) {
	f := newFixture()
	def, err := dfa.Compile(f.cfg)
	require.NoError(t, err)

	desc := def.Inspect()
	assert.Equal(t, domain.KindDFA, desc.Kind)
	assert.Equal(t, []string{"a", "b", "c"}, desc.Alphabet)
	require.Len(t, desc.Edges, 3)
	assert.Equal(t, domain.Edge{From: f.start.ID(), To: f.a.ID(), Input: "a"}, desc.Edges[0])

	start, ok := desc.State(f.start.ID())
	require.True(t, ok)
	assert.True(t, start.Initial)
	end, _ := desc.State(f.end.ID())
	assert.True(t, end.Final)
}

func TestDefinition_Equal(t *testing.T) {
	f := newFixture()
	first, err := dfa.Compile(f.cfg)
	require.NoError(t, err)
	second, err := dfa.Compile(f.cfg)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))

	f.cfg.Final = []domain.State{f.b}
	third, err := dfa.Compile(f.cfg)
	require.NoError(t, err)
	assert.False(t, first.Equal(third))
	assert.False(t, first.Equal(nil))
}

func TestDefinition_SetsAreCopies(t *testing.T) {
	alloc := domain.NewAllocator()
	s, e := alloc.New("S"), alloc.New("E")
	def, err := dfa.Compile(dfa.Config[rune]{
		Alphabet:    []domain.Symbol[rune]{symA},
		Initial:     s,
		Transitions: map[domain.State]map[domain.Symbol[rune]]domain.State{s: {symA: e}},
		Final:       []domain.State{e},
	})
	require.NoError(t, err)
	require.False(t, def.Language().Accepts(domain.Chars("")))

	final := def.Final()
	final.Add(s)
	states := def.States()
	states.Add(domain.NewState(99, "Ghost"))

	m := def.New()
	instanceFinal := m.Final()
	instanceFinal.Add(s)

	assert.False(t, def.Language().Accepts(domain.Chars("")))
	assert.False(t, m.Accepting())
	assert.Equal(t, 1, def.Final().Len())
	assert.Equal(t, 2, def.States().Len())
	assert.True(t, def.Language().Accepts(domain.Chars("a")))
}
