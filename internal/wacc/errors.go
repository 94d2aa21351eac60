package wacc

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/wonny/forensic-wacc/internal/contracts"
)

// Kind classifies solver failures. All kinds are terminal for the call.
type Kind string

const (
	// KindInvalidInput: missing/negative/non-finite value, zero total capital,
	// tax rate outside [0,1], or wrong number of absent fields
	KindInvalidInput Kind = "invalid_input"

	// KindNotIdentifiable: a required denominator is exactly zero
	KindNotIdentifiable Kind = "not_identifiable"

	// KindInconsistentInputs: an implied weight (or strict-mode tax rate) falls outside [0,1]
	KindInconsistentInputs Kind = "inconsistent_inputs"
)

// Sentinels for errors.Is
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotIdentifiable    = errors.New("not identifiable")
	ErrInconsistentInputs = errors.New("inconsistent inputs")
)

// Error is the structured failure returned by the solver
type Error struct {
	Kind      Kind
	Variable  contracts.Variable // empty when the failure is not about one variable
	Condition string
	Value     float64 // offending value, meaningful when HasValue
	HasValue  bool
}

func (e *Error) Error() string {
	msg := e.Condition
	if e.Variable != "" {
		switch e.Kind {
		case KindNotIdentifiable:
			msg = fmt.Sprintf("cannot solve %s: %s", e.Variable.Symbol(), e.Condition)
		default:
			msg = fmt.Sprintf("%s: %s", e.Variable, e.Condition)
		}
	}
	if e.HasValue {
		msg += " (value=" + strconv.FormatFloat(e.Value, 'f', 4, 64) + ")"
	}
	return msg
}

// Unwrap maps the kind onto its sentinel
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindNotIdentifiable:
		return ErrNotIdentifiable
	case KindInconsistentInputs:
		return ErrInconsistentInputs
	default:
		return nil
	}
}

// KindOf extracts the kind from an error chain, or "" if it is not a solver error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func invalidInput(v contracts.Variable, condition string) *Error {
	return &Error{Kind: KindInvalidInput, Variable: v, Condition: condition}
}

func notIdentifiable(v contracts.Variable, condition string) *Error {
	return &Error{Kind: KindNotIdentifiable, Variable: v, Condition: condition}
}

func inconsistent(v contracts.Variable, condition string, value float64) *Error {
	return &Error{Kind: KindInconsistentInputs, Variable: v, Condition: condition, Value: value, HasValue: true}
}
