package tests

import (
	"context"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DeterministicMachine is the capability set exercised by DeterministicContractTest.
type DeterministicMachine[T comparable, A any] interface {
	ports.Automaton[T]
	ports.Deterministic[T]
	ports.Cloner[A]
	Language() ports.Language[T]
}

// DeterministicContractTest is a reusable suite that verifies an engine honours
// the deterministic contract: stable peeks, pure language queries and
// independent clones. words are queried against the language; their expected
// verdicts are checked by the caller's own tests.
func DeterministicContractTest[T comparable, A DeterministicMachine[T, A]](t *testing.T, newMachine func(t *testing.T) A, words []domain.Word[T]) {
	t.Helper()

	t.Run("Peek_Stable", func(t *testing.T) {
		m := newMachine(t)
		for _, sym := range m.Alphabet().Symbols() {
			before := m.Current()
			first, okFirst := m.Peek(sym)
			second, okSecond := m.Peek(sym)

			assert.Equal(t, okFirst, okSecond, "peek %v", sym)
			assert.True(t, first.Equal(second), "peek %v", sym)
			assert.True(t, before.Equal(m.Current()), "peek %v moved the instance", sym)
		}
	})

	t.Run("Peek_MatchesStep", func(t *testing.T) {
		m := newMachine(t)
		for _, sym := range m.Alphabet().Symbols() {
			twin := m.Clone()
			peeked, okPeek := twin.Peek(sym)
			stepped, okStep := twin.Step(sym)

			assert.Equal(t, okPeek, okStep, "symbol %v", sym)
			assert.True(t, peeked.Equal(stepped), "symbol %v", sym)
		}
	})

	t.Run("Language_Pure", func(t *testing.T) {
		m := newMachine(t)
		if syms := m.Alphabet().Symbols(); len(syms) > 0 {
			m.Step(syms[0])
		}
		held := m.Current()
		lang := m.Language()

		for _, w := range words {
			first := lang.Accepts(w)
			second, err := lang.AcceptsContext(context.Background(), w)
			require.NoError(t, err)

			assert.Equal(t, first, second, "word %q", w.String())
			assert.True(t, held.Equal(m.Current()), "query %q moved the instance", w.String())
		}
	})

	t.Run("Language_Cancelled", func(t *testing.T) {
		m := newMachine(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		for _, w := range words {
			if w.IsEmpty() {
				continue
			}
			_, err := m.Language().AcceptsContext(ctx, w)
			assert.ErrorIs(t, err, context.Canceled, "word %q", w.String())
		}
	})

	t.Run("Clone_Independent", func(t *testing.T) {
		m := newMachine(t)
		start := m.Current()
		clone := m.Clone()
		for _, sym := range m.Alphabet().Symbols() {
			clone.Step(sym)
		}

		assert.True(t, start.Equal(m.Current()))

		clone.Reset()
		assert.True(t, clone.Initial().Equal(clone.Current()))
	})
}
