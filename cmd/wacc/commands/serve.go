package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/forensic-wacc/internal/api"
	"github.com/wonny/forensic-wacc/internal/api/handlers"
	"github.com/wonny/forensic-wacc/internal/casefile"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the WACC HTTP API",
		Long: `Starts the REST API server.

Endpoints:
  GET  /health              - Health check
  POST /api/wacc/calculate  - Forward WACC from five inputs
  POST /api/wacc/solve      - Back-solve the one missing input
  POST /api/wacc/batch      - Run a JSON case file

Example:
  go run ./cmd/wacc serve
  go run ./cmd/wacc serve --port 9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts)
			if err != nil {
				return err
			}

			// Override port if flag is set
			if port != "" {
				rt.cfg.Port = port
			}

			rt.log.WithFields(map[string]interface{}{
				"port":       rt.cfg.Port,
				"strict_tax": rt.cfg.Solver.StrictTaxRate,
				"rate_limit": rt.cfg.RateLimit.Enabled,
			}).Info("Initializing API server")

			runner := casefile.NewRunner(rt.solver, rt.log)
			waccHandler := handlers.NewWACCHandler(rt.solver, runner, rt.cfg.Solver.PercentDecimals, rt.log)
			router := api.NewRouter(waccHandler, rt.cfg, rt.log)
			server := api.New(rt.cfg, rt.log, router)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			out := cmd.OutOrStdout()
			PrintSuccess(out, fmt.Sprintf("Server running on http://localhost:%s", rt.cfg.Port))
			fmt.Fprintln(out, "\nPress Ctrl+C to stop")

			// Wait for interrupt signal or a startup failure
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			ctx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				return err
			}

			rt.log.Info("Server stopped")
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "API server port (default from PORT)")

	return cmd
}
