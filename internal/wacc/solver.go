package wacc

import (
	"fmt"

	"github.com/wonny/forensic-wacc/internal/contracts"
)

// Options tunes solver behavior
type Options struct {
	// StrictTaxRate rejects a solved tax rate outside [0,1] with KindInconsistentInputs.
	// Default (false) returns the value with an advisory warning.
	StrictTaxRate bool
}

// Solver computes WACC forward and back-solves one missing input.
// The zero value is ready to use and safe for concurrent callers.
type Solver struct {
	weights WeightCalculator
	opts    Options
}

// NewSolver creates a solver with the given options
func NewSolver(opts Options) *Solver {
	return &Solver{opts: opts}
}

// Calculate computes WACC = wE*Ke + wD*Kd*(1-T)
func (s *Solver) Calculate(in contracts.CapitalInputs) (contracts.ForwardResult, error) {
	w, err := s.weights.Weights(contracts.Present(in.EquityValue), contracts.Present(in.DebtValue))
	if err != nil {
		return contracts.ForwardResult{}, err
	}
	if !finite(in.CostOfEquity) {
		return contracts.ForwardResult{}, invalidInput(contracts.VarCostOfEquity, "must be a finite number")
	}
	if !finite(in.CostOfDebt) {
		return contracts.ForwardResult{}, invalidInput(contracts.VarCostOfDebt, "must be a finite number")
	}
	if !taxInRange(in.TaxRate) {
		return contracts.ForwardResult{}, invalidInput(contracts.VarTaxRate, "tax rate must be within [0, 1]")
	}

	return contracts.ForwardResult{
		EquityValue:  in.EquityValue,
		DebtValue:    in.DebtValue,
		CostOfEquity: in.CostOfEquity,
		CostOfDebt:   in.CostOfDebt,
		TaxRate:      in.TaxRate,
		EquityWeight: w.Equity,
		DebtWeight:   w.Debt,
		WACC:         w.Equity*in.CostOfEquity + w.Debt*in.CostOfDebt*(1-in.TaxRate),
	}, nil
}

// SolveMissing back-solves the single absent input of q
func (s *Solver) SolveMissing(q contracts.ReverseQuery) (contracts.ReverseResult, error) {
	missing := q.Absent()
	if len(missing) != 1 {
		return contracts.ReverseResult{}, invalidInput("",
			fmt.Sprintf("provide exactly four inputs (one missing), got %d missing", len(missing)))
	}
	if err := validateQuery(q); err != nil {
		return contracts.ReverseResult{}, err
	}

	switch miss := missing[0]; miss {
	case contracts.VarCostOfEquity:
		return s.solveCostOfEquity(q)
	case contracts.VarCostOfDebt:
		return s.solveCostOfDebt(q)
	case contracts.VarTaxRate:
		return s.solveTaxRate(q)
	case contracts.VarEquityValue:
		return s.solveEquityValue(q)
	case contracts.VarDebtValue:
		return s.solveDebtValue(q)
	default:
		return contracts.ReverseResult{}, invalidInput(miss, "unknown variable")
	}
}

// validateQuery checks the present fields before dispatch
func validateQuery(q contracts.ReverseQuery) error {
	if !finite(q.WACC) {
		return invalidInput("", "WACC must be a finite number")
	}
	for _, v := range contracts.Variables {
		x, ok := q.Get(v).Get()
		if !ok {
			continue
		}
		if !finite(x) {
			return invalidInput(v, "must be a finite number")
		}
	}
	for _, v := range []contracts.Variable{contracts.VarEquityValue, contracts.VarDebtValue} {
		if x, ok := q.Get(v).Get(); ok && x < 0 {
			return invalidInput(v, "must be non-negative")
		}
	}
	if t, ok := q.TaxRate.Get(); ok && !taxInRange(t) {
		return invalidInput(contracts.VarTaxRate, "tax rate must be within [0, 1]")
	}
	return nil
}

// Ke = (WACC - wD*Kd*(1-T)) / wE
func (s *Solver) solveCostOfEquity(q contracts.ReverseQuery) (contracts.ReverseResult, error) {
	w, err := s.weights.Weights(q.EquityValue, q.DebtValue)
	if err != nil {
		return contracts.ReverseResult{}, err
	}
	if w.Equity == 0 {
		return contracts.ReverseResult{}, notIdentifiable(contracts.VarCostOfEquity, "equity weight is zero")
	}

	kd, t := q.CostOfDebt.Float(), q.TaxRate.Float()
	ke := (q.WACC - w.Debt*kd*(1-t)) / w.Equity

	return s.result(contracts.VarCostOfEquity, ke, w), nil
}

// Kd = (WACC - wE*Ke) / (wD*(1-T))
func (s *Solver) solveCostOfDebt(q contracts.ReverseQuery) (contracts.ReverseResult, error) {
	w, err := s.weights.Weights(q.EquityValue, q.DebtValue)
	if err != nil {
		return contracts.ReverseResult{}, err
	}

	ke, t := q.CostOfEquity.Float(), q.TaxRate.Float()
	denom := w.Debt * (1 - t)
	if denom == 0 {
		return contracts.ReverseResult{}, notIdentifiable(contracts.VarCostOfDebt,
			"wD*(1-T) is zero (check D and T)")
	}
	kd := (q.WACC - w.Equity*ke) / denom

	return s.result(contracts.VarCostOfDebt, kd, w), nil
}

// T = 1 - (WACC - wE*Ke) / (wD*Kd)
func (s *Solver) solveTaxRate(q contracts.ReverseQuery) (contracts.ReverseResult, error) {
	w, err := s.weights.Weights(q.EquityValue, q.DebtValue)
	if err != nil {
		return contracts.ReverseResult{}, err
	}

	ke, kd := q.CostOfEquity.Float(), q.CostOfDebt.Float()
	denom := w.Debt * kd
	if denom == 0 {
		return contracts.ReverseResult{}, notIdentifiable(contracts.VarTaxRate,
			"wD*Kd is zero (check D and Kd)")
	}
	t := 1 - (q.WACC-w.Equity*ke)/denom

	if !taxInRange(t) && s.opts.StrictTaxRate {
		return contracts.ReverseResult{}, inconsistent(contracts.VarTaxRate, "solved tax rate not in [0,1]", t)
	}

	return s.result(contracts.VarTaxRate, t, w), nil
}

// E = (wE/wD) * D, with wE inferred from the rates
func (s *Solver) solveEquityValue(q contracts.ReverseQuery) (contracts.ReverseResult, error) {
	d, ok := q.DebtValue.Get()
	if !ok {
		return contracts.ReverseResult{}, invalidInput(contracts.VarDebtValue, "to solve E, provide D")
	}

	w, err := impliedWeights(q, contracts.VarEquityValue)
	if err != nil {
		return contracts.ReverseResult{}, err
	}
	if w.Debt == 0 {
		return contracts.ReverseResult{}, notIdentifiable(contracts.VarEquityValue, "implied debt weight is zero")
	}

	return s.result(contracts.VarEquityValue, (w.Equity/w.Debt)*d, w), nil
}

// D = (wD/wE) * E, with wE inferred from the rates
func (s *Solver) solveDebtValue(q contracts.ReverseQuery) (contracts.ReverseResult, error) {
	e, ok := q.EquityValue.Get()
	if !ok {
		return contracts.ReverseResult{}, invalidInput(contracts.VarEquityValue, "to solve D, provide E")
	}

	w, err := impliedWeights(q, contracts.VarDebtValue)
	if err != nil {
		return contracts.ReverseResult{}, err
	}
	if w.Equity == 0 {
		return contracts.ReverseResult{}, notIdentifiable(contracts.VarDebtValue, "implied equity weight is zero")
	}

	return s.result(contracts.VarDebtValue, (w.Debt/w.Equity)*e, w), nil
}

// impliedWeights infers wE from WACC = wE*Ke + (1-wE)*Kd*(1-T).
// Capital values are partly unknown here, so WeightCalculator cannot be used.
func impliedWeights(q contracts.ReverseQuery, target contracts.Variable) (contracts.Weights, error) {
	a := q.CostOfEquity.Float()
	b := q.CostOfDebt.Float() * (1 - q.TaxRate.Float())
	denom := a - b
	if denom == 0 {
		return contracts.Weights{}, notIdentifiable(target, "Ke equals Kd(1-T), weights cannot be inferred")
	}

	we := (q.WACC - b) / denom
	if !(we >= 0 && we <= 1) {
		return contracts.Weights{}, inconsistent(target, "implied equity weight not in [0,1]", we)
	}

	return contracts.NewWeights(we), nil
}

func (s *Solver) result(v contracts.Variable, value float64, w contracts.Weights) contracts.ReverseResult {
	r := contracts.ReverseResult{
		Missing:      v,
		Value:        value,
		EquityWeight: w.Equity,
		DebtWeight:   w.Debt,
	}
	r.Warnings = advisories(r)
	return r
}

func taxInRange(t float64) bool {
	return t >= 0 && t <= 1
}
