package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/forensic-wacc/internal/contracts"
	"github.com/wonny/forensic-wacc/internal/wacc"
)

func newSolveCmd(opts *globalOptions) *cobra.Command {
	values := make(map[string]*float64, len(inputFlags))
	var target float64

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Back-solve the one missing input from a known WACC",
		Long: `Solves for whichever input is not given on the command line.

Exactly four of --equity, --debt, --ke, --kd and --tax must be set
together with --wacc. Solving for E needs D, and solving for D needs E.

Example:
  go run ./cmd/wacc solve --wacc 0.09289 --debt 2000 --ke 0.10 --kd 0.067 --tax 0.25
  go run ./cmd/wacc solve --wacc 0.09 --equity 12000 --debt 2000 --ke 0.10 --kd 0.067`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts)
			if err != nil {
				return err
			}

			q := contracts.ReverseQuery{WACC: target}
			for _, f := range inputFlags {
				if cmd.Flags().Changed(f.name) {
					q.Set(f.variable, contracts.Present(*values[f.name]))
				} else {
					q.Set(f.variable, contracts.Absent())
				}
			}

			res, err := rt.solver.SolveMissing(q)
			if err != nil {
				rt.log.WithError(err).Debug("Solve rejected")
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return PrintJSON(out, res)
			}

			PrintHeader(out, "WACC Back-Solve")
			PrintKeyValue(out, "Target WACC", wacc.FormatPercentPrecision(q.WACC, rt.cfg.Solver.PercentDecimals), 16)
			PrintKeyValue(out, "Solved "+res.Missing.Symbol(), formatValue(res.Missing, res.Value, rt.cfg.Solver.PercentDecimals), 16)
			PrintSeparator(out)
			PrintKeyValue(out, "Equity weight", wacc.FormatWeight(res.EquityWeight), 16)
			PrintKeyValue(out, "Debt weight", wacc.FormatWeight(res.DebtWeight), 16)
			if len(res.Warnings) > 0 {
				fmt.Fprintln(out)
				for _, w := range res.Warnings {
					PrintWarning(out, w)
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&target, "wacc", 0, "known WACC as a decimal")
	_ = cmd.MarkFlagRequired("wacc")
	for _, f := range inputFlags {
		values[f.name] = new(float64)
		cmd.Flags().Float64Var(values[f.name], f.name, 0, f.usage)
	}

	return cmd
}

// formatValue renders capital values as plain numbers and rates as percentages
func formatValue(v contracts.Variable, x float64, decimals int) string {
	switch v {
	case contracts.VarEquityValue, contracts.VarDebtValue:
		return strconv.FormatFloat(x, 'f', 2, 64)
	default:
		return wacc.FormatPercentPrecision(x, decimals)
	}
}
