/*
Package domain contains the core value types shared by every automaton engine.

It defines the alphabet elements, the words automata consume, the states they move
between, and the errors and lifecycle events engines report. This package is kept
pure and free of I/O.

# Key Entities

  - Symbol: An atomic alphabet element with value equality.
  - Word: An ordered, immutable sequence of symbols.
  - State: An opaque state identified by a StateID, with an optional label.
  - Allocator: Deterministic, monotonic StateID allocation for definition builders.
  - LifecycleHooks: Callbacks for steps, forks and language queries.
  - Description: A read-only snapshot of a definition for tables and diagrams.
*/
package domain
