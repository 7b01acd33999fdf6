package domain

import "strings"

// Word is an ordered, finite, immutable sequence of symbols.
type Word[T comparable] struct {
	symbols []Symbol[T]
}

// NewWord builds a word from the given symbols. The input slice is copied.
func NewWord[T comparable](symbols ...Symbol[T]) Word[T] {
	cp := make([]Symbol[T], len(symbols))
	copy(cp, symbols)
	return Word[T]{symbols: cp}
}

// WordOf builds a word directly from raw values.
func WordOf[T comparable](values ...T) Word[T] {
	symbols := make([]Symbol[T], len(values))
	for i, v := range values {
		symbols[i] = NewSymbol(v)
	}
	return Word[T]{symbols: symbols}
}

// Chars builds a word with one symbol per rune of s.
func Chars(s string) Word[rune] {
	return WordOf([]rune(s)...)
}

// Len returns the number of symbols in the word.
func (w Word[T]) Len() int {
	return len(w.symbols)
}

// IsEmpty reports whether the word has no symbols.
func (w Word[T]) IsEmpty() bool {
	return len(w.symbols) == 0
}

// At returns the i-th symbol. It panics if i is out of range, like a slice index.
func (w Word[T]) At(i int) Symbol[T] {
	return w.symbols[i]
}

// Symbols returns a copy of the symbol sequence.
func (w Word[T]) Symbols() []Symbol[T] {
	cp := make([]Symbol[T], len(w.symbols))
	copy(cp, w.symbols)
	return cp
}

// Suffix returns the word starting at position i.
// The result shares storage with w, which is safe because words are immutable.
func (w Word[T]) Suffix(i int) Word[T] {
	if i >= len(w.symbols) {
		return Word[T]{}
	}
	return Word[T]{symbols: w.symbols[i:]}
}

// Equal reports whether both words hold the same symbols in the same order.
func (w Word[T]) Equal(other Word[T]) bool {
	if len(w.symbols) != len(other.symbols) {
		return false
	}
	for i := range w.symbols {
		if !w.symbols[i].Equal(other.symbols[i]) {
			return false
		}
	}
	return true
}

func (w Word[T]) String() string {
	var sb strings.Builder
	for _, s := range w.symbols {
		sb.WriteString(s.String())
	}
	return sb.String()
}
