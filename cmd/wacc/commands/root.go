package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/forensic-wacc/internal/wacc"
	"github.com/wonny/forensic-wacc/pkg/config"
	"github.com/wonny/forensic-wacc/pkg/logger"
)

// globalOptions holds persistent flags shared by every subcommand
type globalOptions struct {
	verbose    bool
	jsonOutput bool
}

// Execute builds the command tree and runs it.
// This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "wacc",
		Short: "Forensic WACC solver",
		Long: `Forensic WACC Solver

WACC = wE*Ke + wD*Kd*(1-T),  wE = E/(E+D),  wD = 1-wE

Computes WACC from five inputs, or back-solves exactly one missing
input from a known WACC and the other four.

Examples:
  go run ./cmd/wacc calc --equity 12000 --debt 2000 --ke 0.10 --kd 0.067 --tax 0.25
  go run ./cmd/wacc solve --wacc 0.0923 --debt 2000 --ke 0.10 --kd 0.067 --tax 0.25
  go run ./cmd/wacc batch examples/acme.yaml
  go run ./cmd/wacc serve --port 8080`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(
		newCalcCmd(opts),
		newSolveCmd(opts),
		newBatchCmd(opts),
		newServeCmd(opts),
	)

	return rootCmd
}

// runtime bundles what every command needs
type runtime struct {
	cfg    *config.Config
	log    *logger.Logger
	solver *wacc.Solver
}

// setup loads config, logger and solver
func setup(opts *globalOptions) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	return &runtime{
		cfg:    cfg,
		log:    logger.New(cfg),
		solver: wacc.NewSolver(wacc.Options{StrictTaxRate: cfg.Solver.StrictTaxRate}),
	}, nil
}
