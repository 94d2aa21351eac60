package wacc

import (
	"fmt"

	"github.com/wonny/forensic-wacc/internal/contracts"
)

// advisories lists non-fatal warnings for a solved result.
// 호출자는 경고를 표시하되 결과는 그대로 사용
func advisories(r contracts.ReverseResult) []string {
	var warnings []string

	if !r.WeightInRange() {
		warnings = append(warnings,
			fmt.Sprintf("implied equity weight %.4f is outside [0,1]; inputs may be inconsistent", r.EquityWeight))
	}

	switch r.Missing {
	case contracts.VarTaxRate:
		if !taxInRange(r.Value) {
			warnings = append(warnings,
				fmt.Sprintf("solved tax rate %.4f is outside [0,1]; inputs may be inconsistent", r.Value))
		}
	case contracts.VarCostOfEquity, contracts.VarCostOfDebt:
		if r.Value < 0 {
			warnings = append(warnings,
				fmt.Sprintf("solved %s is negative (%.6f)", r.Missing, r.Value))
		}
	}

	return warnings
}
