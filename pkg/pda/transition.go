package pda

import (
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// StackTop is the stack part of a transition key: a symbol that must be on
// top, or the empty-stack marker.
type StackTop[S comparable] struct {
	symbol S
	set    bool
}

// Top matches when sym is on top of the stack.
func Top[S comparable](sym S) StackTop[S] {
	return StackTop[S]{symbol: sym, set: true}
}

// EmptyStack matches when the stack has no elements.
func EmptyStack[S comparable]() StackTop[S] {
	return StackTop[S]{}
}

// Symbol returns the required top symbol, or false for the empty-stack marker.
func (t StackTop[S]) Symbol() (S, bool) { return t.symbol, t.set }
func (t StackTop[S]) IsEmpty() bool     { return !t.set }

// String renders the symbol, or "" for the empty-stack marker.
func (t StackTop[S]) String() string {
	if !t.set {
		return ""
	}
	return render(t.symbol)
}

// Push is the optional stack symbol a transition pushes.
type Push[S comparable] struct {
	symbol S
	set    bool
}

// PushSymbol pushes sym without popping first.
func PushSymbol[S comparable](sym S) Push[S] {
	return Push[S]{symbol: sym, set: true}
}

// NoPush pops the top symbol, or leaves an empty stack untouched.
func NoPush[S comparable]() Push[S] {
	return Push[S]{}
}

// Symbol returns the pushed symbol, or false when the transition pops.
func (p Push[S]) Symbol() (S, bool) { return p.symbol, p.set }

// String renders the pushed symbol, or "" when nothing is pushed.
func (p Push[S]) String() string {
	if !p.set {
		return ""
	}
	return render(p.symbol)
}

// Key selects a transition: the current state, the input symbol and the stack top.
type Key[T, S comparable] struct {
	From  domain.State
	Input domain.Symbol[T]
	Top   StackTop[S]
}

// Result is the effect of a transition: the next state and the optional push.
type Result[S comparable] struct {
	To   domain.State
	Push Push[S]
}

// Equal compares results by target identifier and push.
func (r Result[S]) Equal(other Result[S]) bool {
	return r.To.Equal(other.To) && r.Push == other.Push
}

// key is Key with the state reduced to its identifier, so labels never
// affect lookups.
type key[T, S comparable] struct {
	from  domain.StateID
	input domain.Symbol[T]
	top   StackTop[S]
}

func keyOf[T, S comparable](k Key[T, S]) key[T, S] {
	return key[T, S]{from: k.From.ID(), input: k.Input, top: k.Top}
}

func sortResults[S comparable](results []Result[S]) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].To.ID() != results[j].To.ID() {
			return results[i].To.ID() < results[j].To.ID()
		}
		return results[i].Push.String() < results[j].Push.String()
	})
}

// edge describes one transition for Inspect.
func edge[T, S comparable](k key[T, S], r Result[S]) domain.Edge {
	return domain.Edge{
		From:  k.from,
		To:    r.To.ID(),
		Input: k.input.String(),
		Top:   k.top.String(),
		Push:  r.Push.String(),
	}
}
