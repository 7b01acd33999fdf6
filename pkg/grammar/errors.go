package grammar

import (
	"errors"
	"fmt"
)

// ErrInvalidGrammar is returned when a grammar violates the rules of its class.
var ErrInvalidGrammar = errors.New("invalid grammar")

// ErrSyntax is returned when grammar text cannot be parsed.
var ErrSyntax = errors.New("grammar syntax error")

// ErrNoProductions is returned when a variable has no production rule.
var ErrNoProductions = errors.New("variable has no productions")

// ValidationError describes why a grammar was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidGrammar, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidGrammar
}

// ParseError locates a syntax error. Line and Column are 1-based; Column
// counts runes.
type ParseError struct {
	Line   int
	Column int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at line %d, column %d: %s", ErrSyntax, e.Line, e.Column, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}
