package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/forensic-wacc/internal/contracts"
	"github.com/wonny/forensic-wacc/internal/wacc"
)

// inputFlags maps each variable to its CLI flag name
var inputFlags = []struct {
	name     string
	variable contracts.Variable
	usage    string
	example  float64
}{
	{"equity", contracts.VarEquityValue, "market value of equity (E)", 12000},
	{"debt", contracts.VarDebtValue, "market value of debt (D)", 2000},
	{"ke", contracts.VarCostOfEquity, "cost of equity as a decimal (Ke)", 0.10},
	{"kd", contracts.VarCostOfDebt, "pre-tax cost of debt as a decimal (Kd)", 0.067},
	{"tax", contracts.VarTaxRate, "marginal tax rate as a decimal (T)", 0.25},
}

func newCalcCmd(opts *globalOptions) *cobra.Command {
	values := make(map[string]*float64, len(inputFlags))
	var useExample bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute WACC from all five inputs",
		Long: `Computes capital structure weights and WACC.

All five inputs are required unless --example is set, in which case
any input not given on the command line takes the sample value
(E=12000, D=2000, Ke=10%, Kd=6.7%, T=25%).

Example:
  go run ./cmd/wacc calc --equity 12000 --debt 2000 --ke 0.10 --kd 0.067 --tax 0.25
  go run ./cmd/wacc calc --example --tax 0.21`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts)
			if err != nil {
				return err
			}

			in := make(map[contracts.Variable]float64, len(inputFlags))
			for _, f := range inputFlags {
				if !cmd.Flags().Changed(f.name) && !useExample {
					return fmt.Errorf("--%s is required", f.name)
				}
				in[f.variable] = *values[f.name]
			}

			res, err := rt.solver.Calculate(contracts.CapitalInputs{
				EquityValue:  in[contracts.VarEquityValue],
				DebtValue:    in[contracts.VarDebtValue],
				CostOfEquity: in[contracts.VarCostOfEquity],
				CostOfDebt:   in[contracts.VarCostOfDebt],
				TaxRate:      in[contracts.VarTaxRate],
			})
			if err != nil {
				rt.log.WithError(err).Debug("Calculation rejected")
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return PrintJSON(out, res)
			}

			decimals := rt.cfg.Solver.PercentDecimals
			PrintHeader(out, "WACC Calculation")
			PrintKeyValue(out, "Equity (E)", strconv.FormatFloat(res.EquityValue, 'f', 2, 64), 16)
			PrintKeyValue(out, "Debt (D)", strconv.FormatFloat(res.DebtValue, 'f', 2, 64), 16)
			PrintKeyValue(out, "Cost of equity", wacc.FormatPercentPrecision(res.CostOfEquity, decimals), 16)
			PrintKeyValue(out, "Cost of debt", wacc.FormatPercentPrecision(res.CostOfDebt, decimals), 16)
			PrintKeyValue(out, "Tax rate", wacc.FormatPercentPrecision(res.TaxRate, decimals), 16)
			PrintSeparator(out)
			PrintKeyValue(out, "Equity weight", wacc.FormatWeight(res.EquityWeight), 16)
			PrintKeyValue(out, "Debt weight", wacc.FormatWeight(res.DebtWeight), 16)
			PrintKeyValue(out, "WACC", wacc.FormatPercentPrecision(res.WACC, decimals), 16)
			return nil
		},
	}

	for _, f := range inputFlags {
		v := f.example
		values[f.name] = &v
		cmd.Flags().Float64Var(values[f.name], f.name, f.example, f.usage)
	}
	cmd.Flags().BoolVar(&useExample, "example", false, "fill unset inputs with sample values")

	return cmd
}
