package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe NAME",
	Short: "Show the states and transitions of a machine",
	Long: `Prints the alphabet, states and transition table of a machine. On a
terminal the description is rendered as styled markdown; --plain prints a
text table and --json the raw description.`,
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
		asJSON, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")

		switch {
		case asJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(desc)
		case plain || !isTerminal():
			fmt.Fprintf(out, "%s (%s): %s\n", desc.Name, desc.Kind, desc.Summary)
			if err := tui.TransitionTable(out, desc.Description); err != nil {
				return err
			}
			for _, s := range desc.Unreachable {
				fmt.Fprintf(out, "warning: state %s is unreachable\n", s.Label)
			}
			return nil
		}

		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		text, err := render(tui.Markdown(desc))
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("plain", false, "Print a plain transition table")
	describeCmd.Flags().Bool("json", false, "Print the description as JSON")
}
