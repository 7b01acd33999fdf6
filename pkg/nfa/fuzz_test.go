package nfa_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/nfa"
)

// randomConfig decodes table into an NFA over {a, b} with four states.
// Each byte adds one transition: bits 0-1 source, bit 2 symbol, bits 3-4 target.
func randomConfig(table []byte, finalMask uint8) nfa.Config[rune] {
	states := make([]domain.State, 4)
	transitions := make(map[domain.State]map[domain.Symbol[rune]][]domain.State, 4)
	for i := range states {
		states[i] = domain.NewState(domain.StateID(i+1), string(rune('p'+i)))
		transitions[states[i]] = map[domain.Symbol[rune]][]domain.State{}
	}

	if len(table) > 32 {
		table = table[:32]
	}
	for _, b := range table {
		from := states[b&3]
		sym := domain.NewSymbol('a' + rune((b>>2)&1))
		to := states[(b>>3)&3]
		transitions[from][sym] = append(transitions[from][sym], to)
	}

	var final []domain.State
	for i, s := range states {
		if finalMask&(1<<i) != 0 {
			final = append(final, s)
		}
	}

	return nfa.Config[rune]{
		Alphabet:    []domain.Symbol[rune]{domain.NewSymbol('a'), domain.NewSymbol('b')},
		Initial:     states[0],
		Transitions: transitions,
		Final:       final,
	}
}

func FuzzForkMatchesStateSet(f *testing.F) {
	f.Add([]byte{0x00, 0x08, 0x09, 0x14, 0x1d}, uint8(0b0100), "abab")
	f.Add([]byte{0x08, 0x10, 0x18, 0x0c}, uint8(0b1000), "aaab")
	f.Add([]byte{}, uint8(0b0001), "")
	f.Add([]byte{0xff, 0x7f, 0x3f}, uint8(0b0010), "bbbbba")

	f.Fuzz(func(t *testing.T, table []byte, finalMask uint8, input string) {
		input = strings.Map(func(r rune) rune {
			if r == 'a' || r == 'b' {
				return r
			}
			return -1
		}, input)
		if len(input) > 12 {
			input = input[:12]
		}
		cfg := randomConfig(table, finalMask)

		forked, err := nfa.Compile(cfg, nfa.WithParallelism(3))
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		sets, err := nfa.Compile(cfg, nfa.WithStateSetSimulation())
		if err != nil {
			t.Fatalf("compile: %v", err)
		}

		word := domain.Chars(input)
		got, err := forked.Language().AcceptsContext(context.Background(), word)
		if err != nil {
			t.Fatalf("fork: %v", err)
		}
		want, err := sets.Language().AcceptsContext(context.Background(), word)
		if err != nil {
			t.Fatalf("state set: %v", err)
		}
		if got != want {
			t.Errorf("fork=%v state set=%v for %q", got, want, input)
		}
	})
}
