package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Markdown describes a machine as a markdown document.
func Markdown(desc automata.Description) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", desc.Name)
	fmt.Fprintf(&sb, "%s\n\n", desc.Summary)
	fmt.Fprintf(&sb, "- **Kind:** %s\n", strings.ToUpper(string(desc.Kind)))
	fmt.Fprintf(&sb, "- **Alphabet:** %s\n", set(desc.Alphabet))
	if len(desc.StackAlphabet) > 0 {
		fmt.Fprintf(&sb, "- **Stack alphabet:** %s\n", set(desc.StackAlphabet))
	}

	var initial, final []string
	for _, s := range desc.States {
		if s.Initial {
			initial = append(initial, s.Label)
		}
		if s.Final {
			final = append(final, s.Label)
		}
	}
	fmt.Fprintf(&sb, "- **Initial state:** %s\n", strings.Join(initial, ", "))
	fmt.Fprintf(&sb, "- **Final states:** %s\n\n", set(final))

	sb.WriteString("## Transitions\n\n")
	pushdown := len(desc.StackAlphabet) > 0
	if pushdown {
		sb.WriteString("| From | Input | Top | Push | To |\n|---|---|---|---|---|\n")
	} else {
		sb.WriteString("| From | Input | To |\n|---|---|---|\n")
	}
	for _, row := range Rows(desc.Description) {
		fmt.Fprintf(&sb, "| %s |\n", strings.Join(row, " | "))
	}

	if len(desc.Unreachable) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, s := range desc.Unreachable {
			fmt.Fprintf(&sb, "- state `%s` is unreachable\n", s.Label)
		}
	}

	sb.WriteString("\n## Diagram\n\n```mermaid\n")
	sb.WriteString(graph.GenerateMermaid(desc.Description, nil))
	sb.WriteString("```\n")
	return sb.String()
}

func set(items []string) string {
	return "{" + strings.Join(items, ", ") + "}"
}
