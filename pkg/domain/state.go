package domain

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// StateID identifies a state. The zero value is reserved for "no state".
type StateID uint64

// State is an opaque automaton state.
// Equality is by identifier only; the label exists for diagnostics.
type State struct {
	id    StateID
	label string
}

// NewState creates a state with a caller-supplied identifier.
func NewState(id StateID, label string) State {
	return State{id: id, label: label}
}

// ID returns the state identifier.
func (s State) ID() StateID {
	return s.id
}

// Label returns the diagnostic label, possibly empty.
func (s State) Label() string {
	return s.label
}

// IsZero reports whether s is the "no state" value.
func (s State) IsZero() bool {
	return s.id == 0
}

// Equal compares states by identifier.
func (s State) Equal(other State) bool {
	return s.id == other.id
}

func (s State) String() string {
	if s.label != "" {
		return s.label
	}
	return fmt.Sprintf("#%d", s.id)
}

// Allocator hands out monotonically increasing state identifiers, starting at 1.
// Scope one allocator to whoever builds a definition so fixtures stay reproducible.
type Allocator struct {
	next atomic.Uint64
}

// NewAllocator returns an allocator whose first state gets ID 1.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// New creates a state with the next free identifier.
func (a *Allocator) New(label string) State {
	return State{id: StateID(a.next.Add(1)), label: label}
}

// StateSet is a set of states keyed by identifier. Copies of a StateSet share
// storage; use Clone before mutating a set owned by someone else.
type StateSet struct {
	states map[StateID]State
}

// NewStateSet builds a set from the given states.
func NewStateSet(states ...State) StateSet {
	s := StateSet{states: make(map[StateID]State, len(states))}
	for _, st := range states {
		s.states[st.id] = st
	}
	return s
}

// Add inserts a state. Zero states are ignored.
func (s *StateSet) Add(st State) {
	if st.IsZero() {
		return
	}
	if s.states == nil {
		s.states = make(map[StateID]State)
	}
	s.states[st.id] = st
}

// Clone returns a set with the same members that shares no storage with s.
func (s StateSet) Clone() StateSet {
	out := StateSet{states: make(map[StateID]State, len(s.states))}
	for id, st := range s.states {
		out.states[id] = st
	}
	return out
}

// Contains reports whether a state with the same identifier is in the set.
func (s StateSet) Contains(st State) bool {
	_, ok := s.states[st.id]
	return ok
}

// Len returns the number of states.
func (s StateSet) Len() int {
	return len(s.states)
}

// States returns the members sorted by identifier.
func (s StateSet) States() []State {
	out := make([]State, 0, len(s.states))
	for _, st := range s.states {
		out = append(out, st)
	}
	SortStates(out)
	return out
}

// SortStates orders states by identifier in place.
func SortStates(states []State) {
	sort.Slice(states, func(i, j int) bool { return states[i].id < states[j].id })
}
