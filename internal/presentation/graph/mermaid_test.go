package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
)

func finite() domain.Description {
	return domain.Description{
		Kind:     domain.KindNFA,
		Alphabet: []string{"a", "b"},
		States: []domain.StateInfo{
			{ID: 1, Label: "Start", Initial: true},
			{ID: 2, Label: "Mid"},
			{ID: 3, Label: "End", Final: true},
		},
		Edges: []domain.Edge{
			{From: 1, To: 2, Input: "a"},
			{From: 1, To: 2, Input: "b"},
			{From: 2, To: 3, Input: "b"},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		desc     domain.Description
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "State Shapes",
			desc: finite(),
			contains: []string{
				"s1((\"Start\"))",
				"s2[\"Mid\"]",
				"s3(((\"End\")))",
				"class s1 initial;",
			},
			excludes: []string{"Overlay Styles"},
		},
		{
			name: "Grouped Edges",
			desc: finite(),
			contains: []string{
				"s1 -- \"a, b\" --> s2",
				"s2 -- \"b\" --> s3",
			},
		},
		{
			name: "Pushdown Labels",
			desc: domain.Description{
				Kind:   domain.KindDPDA,
				States: []domain.StateInfo{{ID: 1, Label: "q", Initial: true, Final: true}},
				Edges: []domain.Edge{
					{From: 1, To: 1, Input: "a", Push: "A"},
					{From: 1, To: 1, Input: "b", Top: "A"},
				},
			},
			contains: []string{
				"s1(((\"q\")))",
				"s1 -- \"a, ε/A, b, A/ε\" --> s1",
			},
		},
		{
			name: "Label Escaping",
			desc: domain.Description{
				Kind:   domain.KindDFA,
				States: []domain.StateInfo{{ID: 4, Label: `say "hi"`}},
			},
			contains: []string{`s4["say 'hi'"]`},
		},
		{
			name:    "Overlay",
			desc:    finite(),
			overlay: &graph.Overlay{Visited: []domain.StateID{1, 2, 2, 9}, Current: 3},
			contains: []string{
				"class s1 visited;",
				"class s2 visited;",
				"class s3 current;",
			},
			excludes: []string{"class s9 visited;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.desc, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnwanted substring: %v", got, unwanted)
				}
			}
			if strings.Count(got, "class s2 visited;") > 1 {
				t.Errorf("visited states must be styled once:\n%v", got)
			}
		})
	}
}
