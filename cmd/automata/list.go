package main

import (
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the machines of the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		return tui.MachineTable(cmd.OutOrStdout(), eng.Machines())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
