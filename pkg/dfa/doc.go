/*
Package dfa implements deterministic finite automata.

A Config is compiled once into an immutable Definition. Definitions hand out
cheap Automaton instances that carry only their current state, and a Language
that answers membership queries on fresh instances.

	def, err := dfa.Compile(cfg)
	if err != nil {
		return err // domain.ErrIllegalInitialState or domain.ErrIllegalFinalStates
	}
	ok := def.Language().Accepts(domain.Chars("abc"))

A symbol with no move from the current state is not an error: Step returns
false and the instance stays where it is.
*/
package dfa
