package tui

import (
	"io"
	"strconv"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/olekukonko/tablewriter"
)

// Rows flattens the edges of desc into table rows, using state labels.
// Pushdown rows carry the stack top and push columns, with ε for none.
func Rows(desc domain.Description) [][]string {
	pushdown := desc.Kind == domain.KindDPDA || desc.Kind == domain.KindNPDA
	rows := make([][]string, 0, len(desc.Edges))
	for _, e := range desc.Edges {
		row := []string{label(desc, e.From), e.Input}
		if pushdown {
			row = append(row, epsilon(e.Top), epsilon(e.Push))
		}
		rows = append(rows, append(row, label(desc, e.To)))
	}
	return rows
}

// TransitionTable writes the transitions of desc as a plain text table.
func TransitionTable(w io.Writer, desc domain.Description) error {
	table := tablewriter.NewWriter(w)
	if desc.Kind == domain.KindDPDA || desc.Kind == domain.KindNPDA {
		table.Header([]string{"From", "Input", "Top", "Push", "To"})
	} else {
		table.Header([]string{"From", "Input", "To"})
	}
	for _, row := range Rows(desc) {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func label(desc domain.Description, id domain.StateID) string {
	s, ok := desc.State(id)
	if !ok {
		return "#" + strconv.FormatUint(uint64(id), 10)
	}
	out := s.Label
	if s.Initial {
		out = "→" + out
	}
	if s.Final {
		out += "*"
	}
	return out
}

func epsilon(s string) string {
	if s == "" {
		return "ε"
	}
	return s
}

// MachineTable writes one row per machine.
func MachineTable(w io.Writer, machines []automata.MachineInfo) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Kind", "Summary"})
	for _, m := range machines {
		if err := table.Append([]string{m.Name, string(m.Kind), m.Summary}); err != nil {
			return err
		}
	}
	return table.Render()
}
