/*
Package ports defines the capability interfaces implemented by the automaton engines.

Engines are not arranged in a type hierarchy. Each one implements only the
capabilities it has, and callers depend on the smallest interface they need.

# Key Interfaces

  - Automaton: Alphabet, states, final states and the current state of an instance.
  - Deterministic: Step and Peek with at most one move per input.
  - Nondeterministic: Step with a chosen candidate and PeekCandidates.
  - Language: Membership queries, synchronous or cancellable.
  - Regular / ContextFree: An instance bound to its language (plus the stack for pushdown engines).
  - Cloner: Explicit cursor copies sharing the definition.
  - Inspector: Read-only descriptions for tables and diagrams.
*/
package ports
