package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// Automaton is the capability every engine instance shares: it knows its
// alphabet, its states and where it currently is.
type Automaton[T comparable] interface {
	Alphabet() domain.Alphabet[T]
	States() domain.StateSet
	Final() domain.StateSet
	Initial() domain.State
	Current() domain.State

	// Reset moves the instance back to its initial configuration.
	Reset()
}

// Deterministic is implemented by engines that have at most one move per input.
// A missing move is reported as (State{}, false) and leaves the instance untouched.
type Deterministic[T comparable] interface {
	Step(sym domain.Symbol[T]) (domain.State, bool)
	Peek(sym domain.Symbol[T]) (domain.State, bool)
}

// Nondeterministic is implemented by finite engines that offer a set of
// candidate states per input. Step only succeeds for a member of that set.
type Nondeterministic[T comparable] interface {
	Step(sym domain.Symbol[T], chosen domain.State) (domain.State, bool)
	PeekCandidates(sym domain.Symbol[T]) []domain.State
}

// Language answers membership queries without touching any caller-held instance.
type Language[T comparable] interface {
	Accepts(word domain.Word[T]) bool

	// AcceptsContext checks ctx between symbols. A cancelled query returns
	// ctx.Err(), never a plain false.
	AcceptsContext(ctx context.Context, word domain.Word[T]) (bool, error)
}

// Regular is a finite automaton bound to the language it recognizes.
type Regular[T comparable] interface {
	Automaton[T]
	Language() Language[T]
}

// ContextFree is a pushdown automaton bound to the language it recognizes.
// Stack returns a bottom-to-top snapshot of the auxiliary memory.
type ContextFree[T, S comparable] interface {
	Automaton[T]
	Language() Language[T]
	Stack() []S
	Depth() int
}

// Cloner duplicates the mutable cursor of an instance. The clone shares the
// definition and evolves independently afterwards.
type Cloner[A any] interface {
	Clone() A
}

// Inspector exposes a read-only description of a definition for rendering.
type Inspector interface {
	Inspect() domain.Description
}
