package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var acceptsCmd = &cobra.Command{
	Use:   "accepts NAME WORD...",
	Short: "Ask whether a machine accepts words",
	Long: `Runs every WORD through the machine, one symbol per character.
Use "" for the empty word. The command fails if a word holds a symbol
outside the machine's alphabet.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		timeout, _ := cmd.Flags().GetDuration("timeout")
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()
		enc := json.NewEncoder(out)

		for _, word := range args[1:] {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			verdict, err := eng.Accepts(ctx, args[0], word)
			cancel()
			if err != nil {
				return err
			}

			if asJSON {
				if err := enc.Encode(verdict); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(out, "%-20q %s\n", word, tui.Verdict(verdict.Accepted))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(acceptsCmd)
	acceptsCmd.Flags().Duration("timeout", 10*time.Second, "Deadline for each query")
	acceptsCmd.Flags().Bool("json", false, "Print one JSON verdict per line")
}
