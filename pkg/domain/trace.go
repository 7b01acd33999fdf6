package domain

// TraceStep records what one input symbol did to a deterministic run.
// A symbol without a move leaves From and To equal and Moved false.
type TraceStep struct {
	Position int    `json:"position"`
	Input    string `json:"input"`
	From     State  `json:"-"`
	To       State  `json:"-"`
	Moved    bool   `json:"moved"`

	// Stack is the bottom-to-top stack after the step, for pushdown automata.
	Stack []string `json:"stack,omitempty"`
}

// Visited returns the states of a trace in order, starting with the state
// the run started from. Repeated states are kept.
func Visited(start State, trace []TraceStep) []State {
	out := make([]State, 0, len(trace)+1)
	out = append(out, start)
	for _, step := range trace {
		if step.Moved {
			out = append(out, step.To)
		}
	}
	return out
}
