package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/forensic-wacc/internal/casefile"
	"github.com/wonny/forensic-wacc/internal/wacc"
)

func newBatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Run every case in a YAML case file",
		Long: `Runs a case file of forward and reverse WACC cases.

Each case is solved independently; a failing case is reported and the
run continues. The command exits non-zero when any case failed.

Example:
  go run ./cmd/wacc batch examples/acme.yaml
  go run ./cmd/wacc batch examples/acme.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts)
			if err != nil {
				return err
			}

			f, _, err := casefile.Load(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := casefile.NewRunner(rt.solver, rt.log).Run(ctx, f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if err := PrintJSON(out, report); err != nil {
					return err
				}
			} else {
				printReport(cmd, report, rt.cfg.Solver.PercentDecimals)
			}

			if report.Failed > 0 {
				return fmt.Errorf("%d of %d cases failed", report.Failed, len(report.Outcomes))
			}
			return nil
		},
	}
}

func printReport(cmd *cobra.Command, report *casefile.Report, decimals int) {
	out := cmd.OutOrStdout()

	title := "Case File"
	if report.Name != "" {
		title += ": " + report.Name
	}
	PrintHeader(out, title)
	PrintKeyValue(out, "Run ID", report.RunID, 8)
	PrintKeyValue(out, "SHA-256", report.Hash, 8)
	fmt.Fprintln(out)

	widths := []int{20, 8, 28, 8}
	PrintTableHeader(out, []string{"CASE", "MODE", "RESULT", "STATUS"}, widths)

	var warnings []string
	for _, o := range report.Outcomes {
		result, status := "", "OK"
		switch {
		case o.Failed():
			result, status = string(o.Kind), "FAIL"
		case o.Forward != nil:
			result = "WACC = " + wacc.FormatPercentPrecision(o.Forward.WACC, decimals)
		case o.Reverse != nil:
			result = o.Reverse.Missing.Symbol() + " = " + formatValue(o.Reverse.Missing, o.Reverse.Value, decimals)
			if o.Reverse.HasWarnings() {
				status = "WARN"
				for _, w := range o.Reverse.Warnings {
					warnings = append(warnings, o.ID+": "+w)
				}
			}
		}
		PrintTableRow(out, []string{o.ID, string(o.Mode), result, status}, widths)
	}
	PrintSeparator(out)

	for _, o := range report.Outcomes {
		if o.Failed() {
			PrintError(out, o.ID+": "+o.Error)
		}
	}
	for _, w := range warnings {
		PrintWarning(out, w)
	}
	if report.Failed == 0 {
		PrintSuccess(out, fmt.Sprintf("%d cases solved in %s", len(report.Outcomes), report.Duration))
	}
}
