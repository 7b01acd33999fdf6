package grammar

import (
	"bufio"
	"context"
	"io"
	"strings"
	"unicode"
)

// ParseRegular reads a regular grammar, one rule per line:
//
//	S → aA | b
//	A -> bS
//
// Upper-case letters are variables and lower-case letters are terminals.
// Either "→" or "->" separates a variable from its productions, and "|"
// separates alternatives. Blank lines and lines starting with '#' are
// skipped. The context is checked before every line.
func ParseRegular(ctx context.Context, r io.Reader, start Variable, empty Terminal) (*RegularGrammar, error) {
	p := &parser{
		rules:     make(map[Variable][]Production),
		variables: map[Variable]struct{}{start: {}},
		terminals: make(map[Terminal]struct{}),
	}
	if empty != 0 {
		p.terminals[empty] = struct{}{}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	cfg := Config{
		Rules: p.rules,
		Start: start,
		Empty: empty,
	}
	for v := range p.variables {
		cfg.Variables = append(cfg.Variables, v)
	}
	for t := range p.terminals {
		cfg.Terminals = append(cfg.Terminals, t)
	}
	return NewRegular(cfg)
}

type parser struct {
	line      int
	rules     map[Variable][]Production
	variables map[Variable]struct{}
	terminals map[Terminal]struct{}
}

func (p *parser) fail(column int, reason string) error {
	return &ParseError{Line: p.line, Column: column, Reason: reason}
}

func (p *parser) parseLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	runes := []rune(line)
	var lhs Variable
	var current Production
	var productions []Production
	arrow := false

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		column := i + 1

		switch {
		case unicode.IsSpace(c):
			continue
		case lhs == 0:
			if !unicode.IsUpper(c) {
				return p.fail(column, "input variable expected")
			}
			lhs = Variable(c)
			p.variables[lhs] = struct{}{}
		case !arrow:
			switch {
			case c == '→':
				arrow = true
			case c == '-' && i+1 < len(runes) && runes[i+1] == '>':
				arrow = true
				i++
			default:
				return p.fail(column, "production arrow expected")
			}
		case c == '|':
			if len(current) == 0 {
				return p.fail(column, "empty production")
			}
			productions = append(productions, current)
			current = nil
		case c == '→' || c == '-':
			return p.fail(column, "unexpected production arrow")
		case unicode.IsUpper(c):
			v := Variable(c)
			p.variables[v] = struct{}{}
			current = append(current, v)
		case unicode.IsLower(c):
			t := Terminal(c)
			p.terminals[t] = struct{}{}
			current = append(current, t)
		default:
			return p.fail(column, "unexpected symbol "+string(c))
		}
	}

	if !arrow {
		return p.fail(len(runes)+1, "production rule is incomplete")
	}
	if len(current) == 0 {
		return p.fail(len(runes)+1, "empty production")
	}
	p.rules[lhs] = append(p.rules[lhs], append(productions, current)...)
	return nil
}
