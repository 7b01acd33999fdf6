package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata recognizes formal languages with finite and pushdown automata",
	Long: `Automata ships a catalog of DFA, NFA, DPDA and NPDA machines.
List them, inspect their transitions, draw them as Mermaid diagrams, and ask
whether they accept a word, from the command line or over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Interrupts cancel the running command through its context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")
}

// setup loads the configuration and builds a logger from it.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(level), nil
}

// newEngine builds an engine from the configuration, adding hooks.
func newEngine(cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*automata.Engine, error) {
	opts := []automata.Option{
		automata.WithLogger(logger),
		automata.WithParallelism(cfg.Explore.Parallelism),
		automata.WithLifecycleHooks(hooks),
	}
	if cfg.Explore.StateSet {
		opts = append(opts, automata.WithStateSetSimulation())
	}
	eng, err := automata.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return eng, nil
}

// loadEngine is setup followed by newEngine without extra hooks.
func loadEngine(cmd *cobra.Command) (*automata.Engine, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	return newEngine(cfg, logger, domain.LifecycleHooks{})
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
