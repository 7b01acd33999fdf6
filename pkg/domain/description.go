package domain

import "sort"

// Kind names an automaton family.
type Kind string

const (
	KindDFA  Kind = "dfa"
	KindNFA  Kind = "nfa"
	KindDPDA Kind = "dpda"
	KindNPDA Kind = "npda"
)

// Deterministic reports whether machines of this kind have at most one move per input.
func (k Kind) Deterministic() bool {
	return k == KindDFA || k == KindDPDA
}

// Description is a read-only snapshot of an automaton definition, used for
// rendering tables and diagrams.
type Description struct {
	Kind     Kind        `json:"kind"`
	Alphabet []string    `json:"alphabet"`
	States   []StateInfo `json:"states"`
	Edges    []Edge      `json:"edges"`

	// StackAlphabet is only set for pushdown automata.
	StackAlphabet []string `json:"stack_alphabet,omitempty"`
}

// StateInfo describes one state of a Description.
type StateInfo struct {
	ID      StateID `json:"id"`
	Label   string  `json:"label"`
	Initial bool    `json:"initial,omitempty"`
	Final   bool    `json:"final,omitempty"`
}

// Edge describes one transition of a Description.
// For pushdown automata Top is the required stack top ("" for the empty stack)
// and Push the pushed symbol ("" for a pop or no-op).
type Edge struct {
	From  StateID `json:"from"`
	To    StateID `json:"to"`
	Input string  `json:"input"`
	Top   string  `json:"top,omitempty"`
	Push  string  `json:"push,omitempty"`
}

// State returns the StateInfo with the given id.
func (d Description) State(id StateID) (StateInfo, bool) {
	for _, s := range d.States {
		if s.ID == id {
			return s, true
		}
	}
	return StateInfo{}, false
}

// SortEdges orders edges by source, input, stack top and target so that
// descriptions render the same way on every run.
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Input != b.Input {
			return a.Input < b.Input
		}
		if a.Top != b.Top {
			return a.Top < b.Top
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Push < b.Push
	})
}

// StateInfos builds the state list of a description, sorted by identifier.
func StateInfos(states StateSet, initial State, final StateSet) []StateInfo {
	out := make([]StateInfo, 0, states.Len())
	for _, s := range states.States() {
		out = append(out, StateInfo{
			ID:      s.ID(),
			Label:   s.String(),
			Initial: s.Equal(initial),
			Final:   final.Contains(s),
		})
	}
	return out
}
