/*
Package automata recognizes formal languages with finite and pushdown automata.

Definitions are immutable and built once; instances are cheap, single-owner
cursors over a definition; languages answer membership queries. The engines
live in subpackages:

  - dfa: deterministic finite automata.
  - nfa: nondeterministic finite automata, exploring branches concurrently.
  - pda: deterministic and nondeterministic pushdown automata.
  - grammar: regular grammars and their text format.

This package is a facade over a catalog of named machines over runes, used by
the command line and the HTTP adapter.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/automata"
	)

	func main() {
		eng, err := automata.New()
		if err != nil {
			log.Fatal(err)
		}

		verdict, err := eng.Accepts(context.Background(), "anbn", "aabb")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(verdict.Accepted) // true
	}

Building a machine directly:

	start, end := domain.NewState(1, "start"), domain.NewState(2, "end")
	def, err := dfa.Compile(dfa.Config[rune]{
		Alphabet:    []domain.Symbol[rune]{domain.NewSymbol('x')},
		Initial:     start,
		Transitions: map[domain.State]map[domain.Symbol[rune]]domain.State{start: {domain.NewSymbol('x'): end}},
		Final:       []domain.State{end},
	})
	if err != nil {
		log.Fatal(err)
	}
	def.Language().Accepts(domain.Chars("x")) // true
*/
package automata
