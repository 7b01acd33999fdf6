/*
Package nfa implements nondeterministic finite automata.

Each (state, symbol) pair maps to a set of candidate states. Instances are
stepped by choosing a candidate explicitly; the Language decides membership
by exploring every candidate.

# Exploration

Queries walk the word from the initial state. A symbol with one candidate
advances in place. A symbol with several candidates forks one clone per
candidate and the verdicts are OR-combined: the first accepting branch
cancels its siblings, and a branch that has not finished never turns an
accepted word into a rejected one. Forked branches run on a bounded set of
goroutines (see WithParallelism) and fall back to the calling goroutine when
the bound is reached.

WithStateSetSimulation answers the same queries by advancing a set of live
states, which avoids the exponential worst case of forking.
*/
package nfa
