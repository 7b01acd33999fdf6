package validator

import (
	"github.com/aretw0/automata/pkg/domain"
)

// ValidateStates asserts that the initial state and every final state belong
// to the states implied by a transition table.
// The initial state is checked first; final states are reported together.
func ValidateStates(states domain.StateSet, initial domain.State, finals []domain.State) error {
	if !states.Contains(initial) {
		return &domain.IllegalInitialStateError{State: initial}
	}

	var illegal []domain.State
	seen := make(map[domain.StateID]bool, len(finals))
	for _, f := range finals {
		if states.Contains(f) || seen[f.ID()] {
			continue
		}
		seen[f.ID()] = true
		illegal = append(illegal, f)
	}
	if len(illegal) > 0 {
		domain.SortStates(illegal)
		return &domain.IllegalFinalStatesError{States: illegal}
	}

	return nil
}

// Unreachable crawls a description breadth-first from its initial state and
// returns the states no input can reach, sorted by identifier.
// Unreachable states are legal; callers surface them as warnings.
func Unreachable(desc domain.Description) []domain.StateInfo {
	adjacency := make(map[domain.StateID][]domain.StateID)
	for _, e := range desc.Edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}

	visited := make(map[domain.StateID]bool)
	var queue []domain.StateID
	for _, s := range desc.States {
		if s.Initial {
			queue = append(queue, s.ID)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, target := range adjacency[current] {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	var out []domain.StateInfo
	for _, s := range desc.States {
		if !visited[s.ID] {
			out = append(out, s)
		}
	}
	return out
}
