package domain

import (
	"fmt"
	"sort"
)

// Symbol is an atomic element of an alphabet.
// Two symbols are equal when their wrapped values are equal, so a Symbol can be
// used directly as a map key.
type Symbol[T comparable] struct {
	value T
}

// NewSymbol wraps a value into a Symbol.
func NewSymbol[T comparable](value T) Symbol[T] {
	return Symbol[T]{value: value}
}

// Value returns the wrapped value.
func (s Symbol[T]) Value() T {
	return s.value
}

// Equal reports whether both symbols wrap the same value.
func (s Symbol[T]) Equal(other Symbol[T]) bool {
	return s.value == other.value
}

// Is reports whether the symbol wraps the given raw value.
func (s Symbol[T]) Is(value T) bool {
	return s.value == value
}

// Clone returns an equal copy of the symbol.
func (s Symbol[T]) Clone() Symbol[T] {
	return Symbol[T]{value: s.value}
}

func (s Symbol[T]) String() string {
	switch v := any(s.value).(type) {
	case rune:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Alphabet is the unordered set of symbols an automaton may consume.
type Alphabet[T comparable] struct {
	symbols map[T]struct{}
}

// NewAlphabet builds an alphabet from the given symbols. Duplicates collapse.
func NewAlphabet[T comparable](symbols ...Symbol[T]) Alphabet[T] {
	a := Alphabet[T]{symbols: make(map[T]struct{}, len(symbols))}
	for _, s := range symbols {
		a.symbols[s.value] = struct{}{}
	}
	return a
}

// Contains reports whether the symbol belongs to the alphabet.
func (a Alphabet[T]) Contains(s Symbol[T]) bool {
	_, ok := a.symbols[s.value]
	return ok
}

// Len returns the number of distinct symbols.
func (a Alphabet[T]) Len() int {
	return len(a.symbols)
}

// Symbols returns the members of the alphabet sorted by their textual form.
func (a Alphabet[T]) Symbols() []Symbol[T] {
	out := make([]Symbol[T], 0, len(a.symbols))
	for v := range a.symbols {
		out = append(out, Symbol[T]{value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Strings returns the textual form of every member, in the order of Symbols.
func (a Alphabet[T]) Strings() []string {
	symbols := a.Symbols()
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = s.String()
	}
	return out
}
