package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var tryCmd = &cobra.Command{
	Use:   "try NAME",
	Short: "Interactively test words against a machine",
	Long: `Prompts for words until "exit" or Ctrl+D. Deterministic machines also
print the states visited by the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		desc, err := eng.Describe(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		tui.PrintBanner(out, automata.Version)
		fmt.Fprintf(out, "%s: %s\nAlphabet: {%s}\n\n", desc.Name, desc.Summary, strings.Join(desc.Alphabet, ", "))

		for {
			prompt := promptui.Prompt{
				Label: "Word (or 'exit')",
			}
			input, err := prompt.Run()
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("prompt failed: %w", err)
			}
			if input == "exit" {
				return nil
			}

			verdict, err := eng.Accepts(cmd.Context(), desc.Name, input)
			if errors.Is(err, domain.ErrSymbolNotInAlphabet) {
				fmt.Fprintln(out, promptui.Styler(promptui.FGYellow)("⚠ "+err.Error()))
				continue
			}
			if err != nil {
				return err
			}

			if desc.Kind.Deterministic() {
				trace, err := eng.Trace(cmd.Context(), desc.Name, input)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, promptui.Styler(promptui.FGCyan)("ℹ "+path(desc.Description, trace)))
			}
			fmt.Fprintln(out, tui.Verdict(verdict.Accepted))
			fmt.Fprintln(out, promptui.Styler(promptui.FGMagenta)(strings.Repeat("-", 30)))
		}
	},
}

func init() {
	rootCmd.AddCommand(tryCmd)
}

// path renders the states of a trace as "A → B → C".
func path(desc domain.Description, trace []domain.TraceStep) string {
	var start domain.State
	for _, s := range desc.States {
		if s.Initial {
			start = domain.NewState(s.ID, s.Label)
		}
	}
	visited := domain.Visited(start, trace)
	labels := make([]string, len(visited))
	for i, s := range visited {
		labels[i] = s.String()
	}
	out := strings.Join(labels, " → ")
	if len(trace) > 0 && len(trace[len(trace)-1].Stack) > 0 {
		out += fmt.Sprintf("  stack [%s]", strings.Join(trace[len(trace)-1].Stack, " "))
	}
	return out
}
