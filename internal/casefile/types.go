package casefile

import (
	"github.com/wonny/forensic-wacc/internal/contracts"
)

// Mode selects forward calculation or reverse solving for a case
type Mode string

const (
	ModeForward Mode = "forward"
	ModeReverse Mode = "reverse"
)

// File is a named collection of WACC cases
// ⭐ SSOT: case file 구조는 여기서만 정의 (YAML/JSON 공용)
type File struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Cases       []Case `yaml:"cases" json:"cases"`
}

// Case is one forward or reverse computation.
// Omitted inputs are absent; in reverse mode exactly one should be omitted.
type Case struct {
	ID   string `yaml:"id" json:"id"`
	Mode Mode   `yaml:"mode" json:"mode"`
	Note string `yaml:"note,omitempty" json:"note,omitempty"`

	WACC         *float64 `yaml:"wacc,omitempty" json:"wacc,omitempty"`
	EquityValue  *float64 `yaml:"equity_value,omitempty" json:"equity_value,omitempty"`
	DebtValue    *float64 `yaml:"debt_value,omitempty" json:"debt_value,omitempty"`
	CostOfEquity *float64 `yaml:"cost_of_equity,omitempty" json:"cost_of_equity,omitempty"`
	CostOfDebt   *float64 `yaml:"cost_of_debt,omitempty" json:"cost_of_debt,omitempty"`
	TaxRate      *float64 `yaml:"tax_rate,omitempty" json:"tax_rate,omitempty"`
}

// Inputs returns forward inputs. Only meaningful after Validate.
func (c Case) Inputs() contracts.CapitalInputs {
	return contracts.CapitalInputs{
		EquityValue:  deref(c.EquityValue),
		DebtValue:    deref(c.DebtValue),
		CostOfEquity: deref(c.CostOfEquity),
		CostOfDebt:   deref(c.CostOfDebt),
		TaxRate:      deref(c.TaxRate),
	}
}

// Query returns the reverse query for this case
func (c Case) Query() contracts.ReverseQuery {
	return contracts.ReverseQuery{
		WACC:         deref(c.WACC),
		EquityValue:  contracts.FromPtr(c.EquityValue),
		DebtValue:    contracts.FromPtr(c.DebtValue),
		CostOfEquity: contracts.FromPtr(c.CostOfEquity),
		CostOfDebt:   contracts.FromPtr(c.CostOfDebt),
		TaxRate:      contracts.FromPtr(c.TaxRate),
	}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
