package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// ProductionArrow separates a variable from its productions.
const ProductionArrow = "→"

// Config describes a regular grammar.
type Config struct {
	Variables []Variable
	Terminals []Terminal
	Rules     map[Variable][]Production
	Start     Variable

	// Empty is the terminal standing for the empty word. Zero means none.
	Empty Terminal
}

// RegularGrammar is a validated, immutable regular grammar.
type RegularGrammar struct {
	variables map[Variable]struct{}
	terminals map[Terminal]struct{}
	rules     map[Variable][]Production
	start     Variable
	empty     Terminal
	linearity Linearity
}

// NewRegular validates cfg. Every production must be a single variable, a
// single terminal (or the empty terminal), a terminal string, or follow one
// linearity throughout the grammar: terminals then one variable (right-linear)
// or one variable then terminals (left-linear).
func NewRegular(cfg Config) (*RegularGrammar, error) {
	g := &RegularGrammar{
		variables: make(map[Variable]struct{}, len(cfg.Variables)),
		terminals: make(map[Terminal]struct{}, len(cfg.Terminals)),
		rules:     make(map[Variable][]Production, len(cfg.Rules)),
		start:     cfg.Start,
		empty:     cfg.Empty,
	}
	for _, v := range cfg.Variables {
		g.variables[v] = struct{}{}
	}
	for _, t := range cfg.Terminals {
		g.terminals[t] = struct{}{}
	}

	if !g.hasVariable(cfg.Start) {
		return nil, invalid("variables do not contain the start variable %s", cfg.Start)
	}
	if cfg.Empty != 0 && !g.hasTerminal(cfg.Empty) {
		return nil, invalid("terminals do not contain the empty terminal %s", cfg.Empty)
	}

	for _, v := range sortedVariables(cfg.Rules) {
		if !g.hasVariable(v) {
			return nil, invalid("rule for unknown variable %s", v)
		}
		for _, p := range cfg.Rules[v] {
			if err := g.check(v, p); err != nil {
				return nil, err
			}
			g.rules[v] = append(g.rules[v], append(Production(nil), p...))
		}
	}
	return g, nil
}

func (g *RegularGrammar) hasVariable(v Variable) bool {
	_, ok := g.variables[v]
	return ok
}

func (g *RegularGrammar) hasTerminal(t Terminal) bool {
	_, ok := g.terminals[t]
	return ok
}

func (g *RegularGrammar) check(lhs Variable, p Production) error {
	if len(p) == 0 {
		return invalid("%s has an empty production", lhs)
	}

	for _, e := range p {
		switch e := e.(type) {
		case Variable:
			if !g.hasVariable(e) {
				return invalid("%s %s %s: variable %s is not a member", lhs, ProductionArrow, p, e)
			}
		case Terminal:
			if !g.hasTerminal(e) {
				return invalid("%s %s %s: terminal %s is not a member", lhs, ProductionArrow, p, e)
			}
			if len(p) > 1 && g.empty != 0 && e == g.empty {
				return invalid("%s %s %s: the empty terminal must stand alone", lhs, ProductionArrow, p)
			}
		default:
			return invalid("%s %s %s: element %v is not valid", lhs, ProductionArrow, p, e)
		}
	}
	if len(p) == 1 {
		return nil
	}

	var variables []int
	for i, e := range p {
		if _, ok := e.(Variable); ok {
			variables = append(variables, i)
		}
	}

	var side Linearity
	switch {
	case len(variables) == 0:
		return nil
	case len(variables) > 1:
		return invalid("%s %s %s is not regular: more than one variable", lhs, ProductionArrow, p)
	case variables[0] == 0:
		side = LeftLinear
	case variables[0] == len(p)-1:
		side = RightLinear
	default:
		return invalid("%s %s %s is not regular: variable between terminals", lhs, ProductionArrow, p)
	}

	if g.linearity != Undetermined && g.linearity != side {
		return invalid("%s %s %s is not regular: mixes %s and %s productions", lhs, ProductionArrow, p, g.linearity, side)
	}
	g.linearity = side
	return nil
}

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Start returns the start variable.
func (g *RegularGrammar) Start() Variable { return g.start }

// Empty returns the empty terminal, if the grammar has one.
func (g *RegularGrammar) Empty() (Terminal, bool) { return g.empty, g.empty != 0 }

// Linearity reports whether the grammar is left- or right-linear. Grammars
// without mixed productions stay Undetermined.
func (g *RegularGrammar) Linearity() Linearity { return g.linearity }

// Variables returns the variables in rune order.
func (g *RegularGrammar) Variables() []Variable {
	out := make([]Variable, 0, len(g.variables))
	for v := range g.variables {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Terminals returns the terminals in rune order.
func (g *RegularGrammar) Terminals() []Terminal {
	out := make([]Terminal, 0, len(g.terminals))
	for t := range g.terminals {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Productions returns the productions of v in declaration order.
func (g *RegularGrammar) Productions(v Variable) ([]Production, error) {
	productions, ok := g.rules[v]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoProductions, v)
	}
	out := make([]Production, len(productions))
	for i, p := range productions {
		out[i] = append(Production(nil), p...)
	}
	return out, nil
}

// String renders one rule per line, start variable first, alternatives
// separated by " | ".
func (g *RegularGrammar) String() string {
	order := sortedVariables(g.rules)
	sort.SliceStable(order, func(i, j int) bool { return order[i] == g.start && order[j] != g.start })

	lines := make([]string, 0, len(order))
	for _, v := range order {
		alternatives := make([]string, len(g.rules[v]))
		for i, p := range g.rules[v] {
			alternatives[i] = p.String()
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", v, ProductionArrow, strings.Join(alternatives, " | ")))
	}
	return strings.Join(lines, "\n")
}

func sortedVariables(rules map[Variable][]Production) []Variable {
	out := make([]Variable, 0, len(rules))
	for v := range rules {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
