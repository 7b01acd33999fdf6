package grammar

import "strings"

// Element is one symbol on the right-hand side of a production.
type Element interface {
	String() string
	element()
}

// Variable is a nonterminal.
type Variable rune

func (v Variable) String() string { return string(v) }
func (Variable) element()         {}

// Terminal is a symbol of the generated language.
type Terminal rune

func (t Terminal) String() string { return string(t) }
func (Terminal) element()         {}

// Production is the right-hand side of a rule.
type Production []Element

func (p Production) String() string {
	var b strings.Builder
	for _, e := range p {
		b.WriteString(e.String())
	}
	return b.String()
}

// Linearity is the side on which variables appear in the productions of a
// regular grammar.
type Linearity int

const (
	// Undetermined means no production has fixed the side yet.
	Undetermined Linearity = iota
	// LeftLinear productions look like A → Bw.
	LeftLinear
	// RightLinear productions look like A → wB.
	RightLinear
)

func (l Linearity) String() string {
	switch l {
	case LeftLinear:
		return "left-linear"
	case RightLinear:
		return "right-linear"
	default:
		return "undetermined"
	}
}
