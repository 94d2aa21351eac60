package wacc

import (
	"math"

	"github.com/wonny/forensic-wacc/internal/contracts"
)

// WeightCalculator derives capital structure weights from equity and debt values
// ⭐ SSOT: wE/wD 계산은 이 타입에서만 (저장하지 않고 매 호출 재계산)
type WeightCalculator struct{}

// Weights returns wE = E/(E+D) and wD = 1 - wE
func (WeightCalculator) Weights(equity, debt contracts.Value) (contracts.Weights, error) {
	e, okE := equity.Get()
	d, okD := debt.Get()
	if !okE || !okD {
		return contracts.Weights{}, invalidInput("", "equity (E) and debt (D) must be provided")
	}
	if !finite(e) {
		return contracts.Weights{}, invalidInput(contracts.VarEquityValue, "must be a finite number")
	}
	if !finite(d) {
		return contracts.Weights{}, invalidInput(contracts.VarDebtValue, "must be a finite number")
	}
	if e < 0 || d < 0 {
		return contracts.Weights{}, invalidInput("", "equity and debt must be non-negative")
	}

	total := e + d
	if total == 0 {
		return contracts.Weights{}, invalidInput("", "E + D cannot be zero")
	}

	return contracts.NewWeights(e / total), nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
