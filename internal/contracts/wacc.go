package contracts

import (
	"encoding/json"
	"math"
	"strconv"
)

// Variable names one of the five WACC inputs
// ⭐ SSOT: 입력 변수 이름은 여기서만 정의
type Variable string

const (
	VarEquityValue  Variable = "equity_value"
	VarDebtValue    Variable = "debt_value"
	VarCostOfEquity Variable = "cost_of_equity"
	VarCostOfDebt   Variable = "cost_of_debt"
	VarTaxRate      Variable = "tax_rate"
)

// Variables lists the five inputs in canonical order
var Variables = []Variable{
	VarEquityValue,
	VarDebtValue,
	VarCostOfEquity,
	VarCostOfDebt,
	VarTaxRate,
}

// Symbol returns the short formula symbol (E, D, Ke, Kd, T)
func (v Variable) Symbol() string {
	switch v {
	case VarEquityValue:
		return "E"
	case VarDebtValue:
		return "D"
	case VarCostOfEquity:
		return "Ke"
	case VarCostOfDebt:
		return "Kd"
	case VarTaxRate:
		return "T"
	default:
		return string(v)
	}
}

// Valid reports whether v is one of the five known variables
func (v Variable) Valid() bool {
	for _, known := range Variables {
		if v == known {
			return true
		}
	}
	return false
}

// ParseVariable accepts either the long name or the formula symbol
func ParseVariable(s string) (Variable, bool) {
	for _, v := range Variables {
		if s == string(v) || s == v.Symbol() {
			return v, true
		}
	}
	return "", false
}

// Value is an optional number: either present with a value or absent
// 결측값은 sentinel(0, -1 등) 대신 Absent()로 표현
type Value struct {
	v  float64
	ok bool
}

// Present wraps a known number
func Present(x float64) Value {
	return Value{v: x, ok: true}
}

// Absent returns the missing value
func Absent() Value {
	return Value{}
}

// FromPtr converts a nullable number (JSON/YAML decoding) into a Value
func FromPtr(p *float64) Value {
	if p == nil {
		return Absent()
	}
	return Present(*p)
}

// IsPresent reports whether the value is known
func (v Value) IsPresent() bool {
	return v.ok
}

// Get returns the number and whether it is present
func (v Value) Get() (float64, bool) {
	return v.v, v.ok
}

// Float returns the number, or 0 when absent
func (v Value) Float() float64 {
	return v.v
}

// Ptr returns nil when absent
func (v Value) Ptr() *float64 {
	if !v.ok {
		return nil
	}
	x := v.v
	return &x
}

func (v Value) String() string {
	if !v.ok {
		return "(missing)"
	}
	return strconv.FormatFloat(v.v, 'f', -1, 64)
}

// MarshalJSON encodes an absent value as null
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON decodes null as absent
func (v *Value) UnmarshalJSON(data []byte) error {
	var p *float64
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = FromPtr(p)
	return nil
}

// CapitalInputs holds the five forward-mode inputs
type CapitalInputs struct {
	EquityValue  float64 `json:"equity_value"`
	DebtValue    float64 `json:"debt_value"`
	CostOfEquity float64 `json:"cost_of_equity"`
	CostOfDebt   float64 `json:"cost_of_debt"`
	TaxRate      float64 `json:"tax_rate"` // 0.0 ~ 1.0
}

// Weights is the capital structure split. Debt is always 1 - Equity.
type Weights struct {
	Equity float64 `json:"equity_weight"`
	Debt   float64 `json:"debt_weight"`
}

// NewWeights builds weights from the equity share alone
func NewWeights(equity float64) Weights {
	return Weights{Equity: equity, Debt: 1 - equity}
}

// ForwardResult is the output of a WACC calculation
type ForwardResult struct {
	EquityValue  float64 `json:"equity_value"`
	DebtValue    float64 `json:"debt_value"`
	CostOfEquity float64 `json:"cost_of_equity"`
	CostOfDebt   float64 `json:"cost_of_debt"`
	TaxRate      float64 `json:"tax_rate"`
	EquityWeight float64 `json:"equity_weight"`
	DebtWeight   float64 `json:"debt_weight"`
	WACC         float64 `json:"wacc"`
}

// Inputs returns the echoed inputs
func (r ForwardResult) Inputs() CapitalInputs {
	return CapitalInputs{
		EquityValue:  r.EquityValue,
		DebtValue:    r.DebtValue,
		CostOfEquity: r.CostOfEquity,
		CostOfDebt:   r.CostOfDebt,
		TaxRate:      r.TaxRate,
	}
}

// ReverseQuery is a known WACC plus four of the five inputs
// 정확히 하나의 필드만 Absent 여야 함 (Solver가 검증)
type ReverseQuery struct {
	WACC         float64 `json:"wacc"`
	EquityValue  Value   `json:"equity_value"`
	DebtValue    Value   `json:"debt_value"`
	CostOfEquity Value   `json:"cost_of_equity"`
	CostOfDebt   Value   `json:"cost_of_debt"`
	TaxRate      Value   `json:"tax_rate"`
}

// NewReverseQuery builds a query from complete inputs with one variable dropped
func NewReverseQuery(wacc float64, in CapitalInputs, missing Variable) ReverseQuery {
	q := ReverseQuery{
		WACC:         wacc,
		EquityValue:  Present(in.EquityValue),
		DebtValue:    Present(in.DebtValue),
		CostOfEquity: Present(in.CostOfEquity),
		CostOfDebt:   Present(in.CostOfDebt),
		TaxRate:      Present(in.TaxRate),
	}
	q.Set(missing, Absent())
	return q
}

// Get returns the value for a variable
func (q ReverseQuery) Get(v Variable) Value {
	switch v {
	case VarEquityValue:
		return q.EquityValue
	case VarDebtValue:
		return q.DebtValue
	case VarCostOfEquity:
		return q.CostOfEquity
	case VarCostOfDebt:
		return q.CostOfDebt
	case VarTaxRate:
		return q.TaxRate
	default:
		return Absent()
	}
}

// Set replaces the value for a variable. Unknown variables are ignored.
func (q *ReverseQuery) Set(v Variable, val Value) {
	switch v {
	case VarEquityValue:
		q.EquityValue = val
	case VarDebtValue:
		q.DebtValue = val
	case VarCostOfEquity:
		q.CostOfEquity = val
	case VarCostOfDebt:
		q.CostOfDebt = val
	case VarTaxRate:
		q.TaxRate = val
	}
}

// Absent returns the variables that are missing, in canonical order
func (q ReverseQuery) Absent() []Variable {
	var missing []Variable
	for _, v := range Variables {
		if !q.Get(v).IsPresent() {
			missing = append(missing, v)
		}
	}
	return missing
}

// ReverseResult is the output of a back-solve
type ReverseResult struct {
	Missing      Variable `json:"missing"`
	Value        float64  `json:"value"`
	EquityWeight float64  `json:"equity_weight"`
	DebtWeight   float64  `json:"debt_weight"`
	Warnings     []string `json:"warnings,omitempty"`
}

// WeightInRange reports whether the implied equity weight lies in [0, 1]
func (r ReverseResult) WeightInRange() bool {
	return r.EquityWeight >= 0 && r.EquityWeight <= 1 && !math.IsNaN(r.EquityWeight)
}

// HasWarnings reports whether the solver attached advisories
func (r ReverseResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}
