package catalog

import (
	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/nfa"
	"github.com/aretw0/automata/pkg/pda"
)

// Builtin returns a catalog holding the bundled machines.
func Builtin() *Catalog {
	c := New()
	for _, e := range builtins() {
		c.Register(e)
	}
	return c
}

func builtins() []Entry {
	return []Entry{
		{Name: "abc-dfa", Kind: domain.KindDFA, Summary: "accepts exactly abc", Build: abcDFA},
		{Name: "abc-nfa", Kind: domain.KindNFA, Summary: "accepts ab and abc", Build: abcNFA},
		{Name: "abc-dpda", Kind: domain.KindDPDA, Summary: "accepts abc while stacking a and b", Build: abcDPDA},
		{Name: "div3", Kind: domain.KindDFA, Summary: "binary numbers divisible by three", Build: div3},
		{Name: "even-zeros", Kind: domain.KindDFA, Summary: "binary words with an even number of zeros", Build: evenZeros},
		{Name: "ends-ab", Kind: domain.KindNFA, Summary: "words over {a, b} ending in ab", Build: endsAB},
		{Name: "anbn", Kind: domain.KindDPDA, Summary: "a^n b^n accepted by final state and empty stack", Build: anbn},
		{Name: "even-palindrome", Kind: domain.KindNPDA, Summary: "even-length palindromes over {a, b}", Build: evenPalindrome},
	}
}

func symbols(chars string) []domain.Symbol[rune] {
	return domain.Chars(chars).Symbols()
}

func abcDFA(opts Options) (Machine, error) {
	alloc := domain.NewAllocator()
	start, a, b, end := alloc.New("Start"), alloc.New("A"), alloc.New("B"), alloc.New("End")
	sa, sb, sc := domain.NewSymbol('a'), domain.NewSymbol('b'), domain.NewSymbol('c')

	def, err := dfa.Compile(dfa.Config[rune]{
		Alphabet: symbols("abc"),
		Initial:  start,
		Transitions: map[domain.State]map[domain.Symbol[rune]]domain.State{
			start: {sa: a},
			a:     {sb: b},
			b:     {sc: end},
		},
		Final: []domain.State{end},
	}, opts.dfa()...)
	if err != nil {
		return nil, err
	}
	return FromDFA("abc-dfa", def), nil
}

func abcNFA(opts Options) (Machine, error) {
	alloc := domain.NewAllocator()
	start, a, b, end := alloc.New("Start"), alloc.New("A"), alloc.New("B"), alloc.New("End")
	sa, sb, sc := domain.NewSymbol('a'), domain.NewSymbol('b'), domain.NewSymbol('c')

	def, err := nfa.Compile(nfa.Config[rune]{
		Alphabet: symbols("abc"),
		Initial:  start,
		Transitions: map[domain.State]map[domain.Symbol[rune]][]domain.State{
			start: {sa: {a}},
			a:     {sb: {b, end}},
			b:     {sc: {end}},
		},
		Final: []domain.State{end},
	}, opts.nfa()...)
	if err != nil {
		return nil, err
	}
	return FromNFA("abc-nfa", def), nil
}

func abcDPDA(opts Options) (Machine, error) {
	alloc := domain.NewAllocator()
	start, a, b, end := alloc.New("Start"), alloc.New("A"), alloc.New("B"), alloc.New("End")
	sa, sb, sc := domain.NewSymbol('a'), domain.NewSymbol('b'), domain.NewSymbol('c')

	def, err := pda.CompileDeterministic(pda.DeterministicConfig[rune, string]{
		Alphabet: symbols("abc"),
		Initial:  start,
		Transitions: map[pda.Key[rune, string]]pda.Result[string]{
			{From: start, Input: sa, Top: pda.EmptyStack[string]()}: {To: a, Push: pda.PushSymbol("a")},
			{From: a, Input: sb, Top: pda.Top("a")}:                 {To: b, Push: pda.PushSymbol("b")},
			{From: b, Input: sc, Top: pda.Top("b")}:                 {To: end, Push: pda.PushSymbol("b")},
		},
		Final: []domain.State{end},
	}, opts.pda()...)
	if err != nil {
		return nil, err
	}
	return FromDPDA("abc-dpda", def), nil
}

// div3 tracks the remainder of the binary number read so far.
func div3(opts Options) (Machine, error) {
	alloc := domain.NewAllocator()
	r0, r1, r2 := alloc.New("r0"), alloc.New("r1"), alloc.New("r2")
	zero, one := domain.NewSymbol('0'), domain.NewSymbol('1')

	def, err := dfa.Compile(dfa.Config[rune]{
		Alphabet: symbols("01"),
		Initial:  r0,
		Transitions: map[domain.State]map[domain.Symbol[rune]]domain.State{
			r0: {zero: r0, one: r1},
			r1: {zero: r2, one: r0},
			r2: {zero: r1, one: r2},
		},
		Final: []domain.State{r0},
	}, opts.dfa()...)
	if err != nil {
		return nil, err
	}
	return FromDFA("div3", def), nil
}

func evenZeros(opts Options) (Machine, error) {
	alloc := domain.NewAllocator()
	even, odd := alloc.New("even"), alloc.New("odd")
	zero, one := domain.NewSymbol('0'), domain.NewSymbol('1')

	def, err := dfa.Compile(dfa.Config[rune]{
		Alphabet: symbols("01"),
		Initial:  even,
		Transitions: map[domain.State]map[domain.Symbol[rune]]domain.State{
			even: {zero: odd, one: even},
			odd:  {zero: even, one: odd},
		},
		Final: []domain.State{even},
	}, opts.dfa()...)
	if err != nil {
		return nil, err
	}
	return FromDFA("even-zeros", def), nil
}

// endsAB guesses where the final ab starts. Reading past it leads to a
// non-final dead state so that q2 cannot accept with input left.
func endsAB(opts Options) (Machine, error) {
	alloc := domain.NewAllocator()
	q0, q1, q2, dead := alloc.New("q0"), alloc.New("q1"), alloc.New("q2"), alloc.New("dead")
	sa, sb := domain.NewSymbol('a'), domain.NewSymbol('b')

	def, err := nfa.Compile(nfa.Config[rune]{
		Alphabet: symbols("ab"),
		Initial:  q0,
		Transitions: map[domain.State]map[domain.Symbol[rune]][]domain.State{
			q0: {sa: {q0, q1}, sb: {q0}},
			q1: {sb: {q2}},
			q2: {sa: {dead}, sb: {dead}},
		},
		Final: []domain.State{q2},
	}, opts.nfa()...)
	if err != nil {
		return nil, err
	}
	return FromNFA("ends-ab", def), nil
}

// anbn pushes A for every a and pops one for every b. Symbols that break
// the pattern lead to a dead state, since a deterministic run skips
// symbols it has no move for.
func anbn(opts Options) (Machine, error) {
	alloc := domain.NewAllocator()
	push, pop, dead := alloc.New("push"), alloc.New("pop"), alloc.New("dead")
	sa, sb := domain.NewSymbol('a'), domain.NewSymbol('b')
	empty := pda.EmptyStack[string]()

	def, err := pda.CompileDeterministic(pda.DeterministicConfig[rune, string]{
		Alphabet: symbols("ab"),
		Initial:  push,
		Transitions: map[pda.Key[rune, string]]pda.Result[string]{
			{From: push, Input: sa, Top: empty}:        {To: push, Push: pda.PushSymbol("A")},
			{From: push, Input: sa, Top: pda.Top("A")}: {To: push, Push: pda.PushSymbol("A")},
			{From: push, Input: sb, Top: pda.Top("A")}: {To: pop, Push: pda.NoPush[string]()},
			{From: push, Input: sb, Top: empty}:        {To: dead},
			{From: pop, Input: sb, Top: pda.Top("A")}:  {To: pop, Push: pda.NoPush[string]()},
			{From: pop, Input: sb, Top: empty}:         {To: dead},
			{From: pop, Input: sa, Top: pda.Top("A")}:  {To: dead},
			{From: pop, Input: sa, Top: empty}:         {To: dead},
		},
		Final: []domain.State{push, pop},
	}, opts.pda(pda.WithAcceptance(pda.AcceptFinalStateAndEmptyStack))...)
	if err != nil {
		return nil, err
	}
	return FromDPDA("anbn", def), nil
}

// evenPalindrome pushes the first half and guesses the middle whenever the
// input matches the stack top.
func evenPalindrome(opts Options) (Machine, error) {
	alloc := domain.NewAllocator()
	push, pop, dead := alloc.New("push"), alloc.New("pop"), alloc.New("dead")

	transitions := map[pda.Key[rune, string]][]pda.Result[string]{}
	for _, sym := range symbols("ab") {
		s := sym.String()
		transitions[pda.Key[rune, string]{From: push, Input: sym, Top: pda.EmptyStack[string]()}] = []pda.Result[string]{
			{To: push, Push: pda.PushSymbol(s)},
		}
		for _, top := range []string{"a", "b"} {
			k := pda.Key[rune, string]{From: push, Input: sym, Top: pda.Top(top)}
			transitions[k] = []pda.Result[string]{{To: push, Push: pda.PushSymbol(s)}}
			if top == s {
				transitions[k] = append(transitions[k], pda.Result[string]{To: pop, Push: pda.NoPush[string]()})
				transitions[pda.Key[rune, string]{From: pop, Input: sym, Top: pda.Top(top)}] = []pda.Result[string]{
					{To: pop, Push: pda.NoPush[string]()},
				}
			} else {
				transitions[pda.Key[rune, string]{From: pop, Input: sym, Top: pda.Top(top)}] = []pda.Result[string]{
					{To: dead},
				}
			}
		}
		transitions[pda.Key[rune, string]{From: pop, Input: sym, Top: pda.EmptyStack[string]()}] = []pda.Result[string]{
			{To: dead},
		}
	}

	def, err := pda.CompileNondeterministic(pda.NondeterministicConfig[rune, string]{
		Alphabet:    symbols("ab"),
		Initial:     push,
		Transitions: transitions,
		Final:       []domain.State{push, pop},
	}, opts.pda(pda.WithAcceptance(pda.AcceptFinalStateAndEmptyStack))...)
	if err != nil {
		return nil, err
	}
	return FromNPDA("even-palindrome", def), nil
}
