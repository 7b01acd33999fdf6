/*
Package pda implements deterministic and nondeterministic pushdown automata.

A transition is selected by the current state, the input symbol and the top
of the stack (or the empty-stack marker). Its result names the next state and
an optional symbol to push:

  - a result that pushes puts its symbol on top without popping first;
  - a result that pushes nothing pops one symbol, or leaves an empty stack alone.

Replacing the top symbol therefore takes two steps, a pop and then a push.

By default a language accepts when the run ends on a final state, whatever is
left on the stack. WithAcceptance(AcceptFinalStateAndEmptyStack) additionally
requires an empty stack.

The nondeterministic automaton maps each key to a set of results. Its
language forks one branch per candidate, each with its own copy of the stack,
and OR-combines the verdicts like the NFA does.
*/
package pda
