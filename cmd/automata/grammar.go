package main

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/grammar"
	"github.com/spf13/cobra"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Work with regular grammars",
}

var grammarCheckCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a regular grammar file",
	Long: `Parses FILE, one rule per line ("S → aA | b"), and reports whether the
grammar is left-linear or right-linear. Errors point at the offending line
and column.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := singleRune(cmd, "start")
		if err != nil {
			return err
		}
		empty, err := singleRune(cmd, "empty")
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		g, err := grammar.ParseRegular(cmd.Context(), f, grammar.Variable(start), grammar.Terminal(empty))
		if err != nil {
			var perr *grammar.ParseError
			if errors.As(err, &perr) {
				return fmt.Errorf("%s:%d:%d: %s", args[0], perr.Line, perr.Column, perr.Reason)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, g.String())
		fmt.Fprintf(out, "Grammar is valid (%s) ✅\n", g.Linearity())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(grammarCmd)
	grammarCmd.AddCommand(grammarCheckCmd)
	grammarCheckCmd.Flags().String("start", "S", "Start variable")
	grammarCheckCmd.Flags().String("empty", "ε", "Terminal standing for the empty word")
}

func singleRune(cmd *cobra.Command, flag string) (rune, error) {
	s, _ := cmd.Flags().GetString(flag)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("--%s must be a single character, got %q", flag, s)
	}
	return r, nil
}
