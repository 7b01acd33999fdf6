/*
Package grammar models regular grammars and reads them from text.

A RegularGrammar checks on construction that its start variable and empty
terminal are members, that every production only uses member symbols, and
that productions keep one linearity: all right-linear (A → aB) or all
left-linear (A → Ba). ParseRegular builds a grammar from the line format
used by the command line tool.

Converting a grammar into an automaton is not part of this package.
*/
package grammar
