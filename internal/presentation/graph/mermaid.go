package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Overlay contains run data to visualize on the graph.
type Overlay struct {
	Visited []domain.StateID
	Current domain.StateID
}

// GenerateMermaid produces a Mermaid flowchart for an automaton description.
// It applies semantic styling:
// - Initial: ((Circle))
// - Final: (((Double circle)))
// - Default: [Rectangle]
// Edges between the same pair of states share one arrow whose label lists
// every input. It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(desc domain.Description, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range desc.States {
		opener, closer := "[", "]"
		switch {
		case s.Final:
			opener, closer = "(((", ")))"
		case s.Initial:
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(s.ID), opener, escape(s.Label), closer)
	}

	for _, e := range groupEdges(desc.Kind, desc.Edges) {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", nodeID(e.from), escape(strings.Join(e.labels, ", ")), nodeID(e.to))
	}

	for _, s := range desc.States {
		if s.Initial {
			fmt.Fprintf(&sb, "    class %s initial;\n", nodeID(s.ID))
		}
	}
	sb.WriteString("    classDef initial stroke-width:3px;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.StateID]bool)
		for _, id := range overlay.Visited {
			if id == 0 || seen[id] {
				continue
			}
			if _, ok := desc.State(id); !ok {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(id))
		}

		if overlay.Current != 0 {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(overlay.Current))
		}
	}

	return sb.String()
}

type edgeGroup struct {
	from, to domain.StateID
	labels   []string
}

// groupEdges merges edges by endpoints, keeping the order of first appearance.
func groupEdges(kind domain.Kind, edges []domain.Edge) []*edgeGroup {
	type pair struct{ from, to domain.StateID }
	index := make(map[pair]*edgeGroup)
	var out []*edgeGroup
	for _, e := range edges {
		p := pair{e.From, e.To}
		g, ok := index[p]
		if !ok {
			g = &edgeGroup{from: e.From, to: e.To}
			index[p] = g
			out = append(out, g)
		}
		g.labels = append(g.labels, EdgeLabel(kind, e))
	}
	return out
}

// EdgeLabel renders one transition. Pushdown edges read "input, top/push"
// with ε standing for the empty stack or a pop.
func EdgeLabel(kind domain.Kind, e domain.Edge) string {
	if kind != domain.KindDPDA && kind != domain.KindNPDA {
		return e.Input
	}
	return fmt.Sprintf("%s, %s/%s", e.Input, orEpsilon(e.Top), orEpsilon(e.Push))
}

func orEpsilon(s string) string {
	if s == "" {
		return "ε"
	}
	return s
}

func nodeID(id domain.StateID) string {
	return fmt.Sprintf("s%d", id)
}

// escape replaces double quotes, which would end a Mermaid label.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
