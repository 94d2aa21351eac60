package handlers

import (
	"net/http"
	"strconv"

	"github.com/wonny/forensic-wacc/internal/casefile"
	"github.com/wonny/forensic-wacc/internal/contracts"
	"github.com/wonny/forensic-wacc/internal/wacc"
	"github.com/wonny/forensic-wacc/pkg/logger"
)

// WACCHandler handles WACC API endpoints
// ⭐ SSOT: WACC API 핸들러는 이 구조체에서만
type WACCHandler struct {
	solver   *wacc.Solver
	runner   *casefile.Runner
	decimals int
	logger   *logger.Logger
}

// NewWACCHandler creates a new WACC handler
func NewWACCHandler(solver *wacc.Solver, runner *casefile.Runner, percentDecimals int, log *logger.Logger) *WACCHandler {
	return &WACCHandler{
		solver:   solver,
		runner:   runner,
		decimals: percentDecimals,
		logger:   log,
	}
}

// CalculateRequest is the body for POST /api/wacc/calculate
type CalculateRequest struct {
	EquityValue  *float64 `json:"equity_value"`
	DebtValue    *float64 `json:"debt_value"`
	CostOfEquity *float64 `json:"cost_of_equity"`
	CostOfDebt   *float64 `json:"cost_of_debt"`
	TaxRate      *float64 `json:"tax_rate"`
}

// CalculateResponse wraps the forward result with display strings
type CalculateResponse struct {
	Result       contracts.ForwardResult `json:"result"`
	WACCPercent  string                  `json:"wacc_percent"`
	EquityWeight string                  `json:"equity_weight"`
	DebtWeight   string                  `json:"debt_weight"`
}

// SolveRequest is the body for POST /api/wacc/solve.
// Omitted or null inputs are treated as absent.
type SolveRequest struct {
	WACC         *float64        `json:"wacc"`
	EquityValue  contracts.Value `json:"equity_value"`
	DebtValue    contracts.Value `json:"debt_value"`
	CostOfEquity contracts.Value `json:"cost_of_equity"`
	CostOfDebt   contracts.Value `json:"cost_of_debt"`
	TaxRate      contracts.Value `json:"tax_rate"`
}

// SolveResponse wraps the reverse result with display strings
type SolveResponse struct {
	Result         contracts.ReverseResult `json:"result"`
	FormattedValue string                  `json:"formatted_value"`
	WeightInRange  bool                    `json:"weight_in_range"`
}

// Calculate computes WACC from five inputs
// POST /api/wacc/calculate
func (h *WACCHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := contracts.ReverseQuery{
		EquityValue:  contracts.FromPtr(req.EquityValue),
		DebtValue:    contracts.FromPtr(req.DebtValue),
		CostOfEquity: contracts.FromPtr(req.CostOfEquity),
		CostOfDebt:   contracts.FromPtr(req.CostOfDebt),
		TaxRate:      contracts.FromPtr(req.TaxRate),
	}
	if missing := q.Absent(); len(missing) > 0 {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    string(missing[0]) + " is required",
			Kind:     wacc.KindInvalidInput,
			Variable: string(missing[0]),
		})
		return
	}

	res, err := h.solver.Calculate(contracts.CapitalInputs{
		EquityValue:  *req.EquityValue,
		DebtValue:    *req.DebtValue,
		CostOfEquity: *req.CostOfEquity,
		CostOfDebt:   *req.CostOfDebt,
		TaxRate:      *req.TaxRate,
	})
	if err != nil {
		h.logger.WithError(err).WithField("kind", wacc.KindOf(err)).Debug("Calculate rejected")
		respondSolverError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CalculateResponse{
		Result:       res,
		WACCPercent:  wacc.FormatPercentPrecision(res.WACC, h.decimals),
		EquityWeight: wacc.FormatWeight(res.EquityWeight),
		DebtWeight:   wacc.FormatWeight(res.DebtWeight),
	})
}

// Solve back-solves the single missing input
// POST /api/wacc/solve
func (h *WACCHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.WACC == nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "wacc is required",
			Kind:  wacc.KindInvalidInput,
		})
		return
	}

	res, err := h.solver.SolveMissing(contracts.ReverseQuery{
		WACC:         *req.WACC,
		EquityValue:  req.EquityValue,
		DebtValue:    req.DebtValue,
		CostOfEquity: req.CostOfEquity,
		CostOfDebt:   req.CostOfDebt,
		TaxRate:      req.TaxRate,
	})
	if err != nil {
		h.logger.WithError(err).WithField("kind", wacc.KindOf(err)).Debug("Solve rejected")
		respondSolverError(w, err)
		return
	}

	if res.HasWarnings() {
		h.logger.WithFields(map[string]interface{}{
			"missing":  res.Missing,
			"warnings": res.Warnings,
		}).Warn("Solve returned advisories")
	}

	respondJSON(w, http.StatusOK, SolveResponse{
		Result:         res,
		FormattedValue: formatSolved(res, h.decimals),
		WeightInRange:  res.WeightInRange(),
	})
}

// Batch runs a list of cases
// POST /api/wacc/batch
func (h *WACCHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var f casefile.File
	if err := decodeJSON(w, r, &f); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := casefile.Validate(&f); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Kind:  wacc.KindInvalidInput,
		})
		return
	}

	report, err := h.runner.Run(r.Context(), &f)
	if err != nil {
		h.logger.WithError(err).Error("Batch run failed")
		respondError(w, http.StatusInternalServerError, "batch run failed")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// formatSolved renders rates as percentages and capital values as plain numbers
func formatSolved(res contracts.ReverseResult, decimals int) string {
	switch res.Missing {
	case contracts.VarEquityValue, contracts.VarDebtValue:
		return strconv.FormatFloat(res.Value, 'f', 2, 64)
	default:
		return wacc.FormatPercentPrecision(res.Value, decimals)
	}
}
