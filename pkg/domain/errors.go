package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIllegalInitialState is returned when the initial state is not among the states
// implied by the transition table.
var ErrIllegalInitialState = errors.New("illegal initial state")

// ErrIllegalFinalStates is returned when a final state is not among the states
// implied by the transition table.
var ErrIllegalFinalStates = errors.New("illegal final states")

// ErrMachineNotFound is returned when a machine name cannot be found in a catalog.
var ErrMachineNotFound = errors.New("machine not found")

// ErrTraceUnsupported is returned when a trace is requested from a nondeterministic machine.
var ErrTraceUnsupported = errors.New("trace requires a deterministic machine")

// ErrSymbolNotInAlphabet is returned when an input holds a symbol outside the machine's alphabet.
var ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")

// ErrConflictingTransition is returned when a deterministic transition table maps
// the same state identifier and input to different targets.
var ErrConflictingTransition = errors.New("conflicting transition")

// IllegalInitialStateError carries the offending initial state.
type IllegalInitialStateError struct {
	State State
}

func (e *IllegalInitialStateError) Error() string {
	return fmt.Sprintf("%v: %s is not a state of the automaton", ErrIllegalInitialState, e.State)
}

func (e *IllegalInitialStateError) Unwrap() error {
	return ErrIllegalInitialState
}

// IllegalFinalStatesError carries the final states that are not states of the automaton.
type IllegalFinalStatesError struct {
	States []State
}

func (e *IllegalFinalStatesError) Error() string {
	names := make([]string, len(e.States))
	for i, s := range e.States {
		names[i] = s.String()
	}
	return fmt.Sprintf("%v: %s", ErrIllegalFinalStates, strings.Join(names, ", "))
}

func (e *IllegalFinalStatesError) Unwrap() error {
	return ErrIllegalFinalStates
}
