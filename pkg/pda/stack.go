package pda

import (
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Stack is an unbounded LIFO of stack symbols. The zero value is an empty stack.
// Every instance owns its stack; Clone copies it.
type Stack[S comparable] struct {
	items []S
}

// NewStack returns a stack holding items, the last one on top.
func NewStack[S comparable](items ...S) Stack[S] {
	s := Stack[S]{items: make([]S, len(items))}
	copy(s.items, items)
	return s
}

// Push puts sym on top.
func (s *Stack[S]) Push(sym S) {
	s.items = append(s.items, sym)
}

// Pop removes and returns the top symbol. It reports false on an empty stack.
func (s *Stack[S]) Pop() (S, bool) {
	var zero S
	if len(s.items) == 0 {
		return zero, false
	}
	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Peek returns the top symbol without removing it.
func (s Stack[S]) Peek() (S, bool) {
	if len(s.items) == 0 {
		var zero S
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Top returns the top symbol as a transition lookup value.
func (s Stack[S]) Top() StackTop[S] {
	if sym, ok := s.Peek(); ok {
		return Top(sym)
	}
	return EmptyStack[S]()
}

func (s Stack[S]) Len() int { return len(s.items) }

// Clone returns an independent copy.
func (s Stack[S]) Clone() Stack[S] {
	return NewStack(s.items...)
}

// Symbols returns a bottom-to-top copy of the contents.
func (s Stack[S]) Symbols() []S {
	out := make([]S, len(s.items))
	copy(out, s.items)
	return out
}

// Strings renders the contents bottom to top.
func (s Stack[S]) Strings() []string {
	out := make([]string, len(s.items))
	for i, sym := range s.items {
		out[i] = render(sym)
	}
	return out
}

func (s Stack[S]) String() string {
	return "[" + strings.Join(s.Strings(), " ") + "]"
}

// apply performs the stack half of a move: push when the result pushes,
// otherwise pop the top if there is one.
func (s *Stack[S]) apply(push Push[S]) {
	if sym, ok := push.Symbol(); ok {
		s.Push(sym)
		return
	}
	s.Pop()
}

func render[S comparable](sym S) string {
	return domain.NewSymbol(sym).String()
}
