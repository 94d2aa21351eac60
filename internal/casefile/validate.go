package casefile

import (
	"fmt"
)

// ValidationError 검증 실패 (case file 전체 거부)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the structure of a case file.
// Numeric consistency (absent count, ranges) is left to the solver so each
// case reports its own error kind.
func Validate(f *File) error {
	if len(f.Cases) == 0 {
		return ValidationError{"cases", "at least one case is required"}
	}

	seen := make(map[string]int, len(f.Cases))
	for i, c := range f.Cases {
		field := fmt.Sprintf("cases[%d]", i)

		if c.ID == "" {
			return ValidationError{field + ".id", "required"}
		}
		if prev, dup := seen[c.ID]; dup {
			return ValidationError{field + ".id", fmt.Sprintf("duplicate id %q (also cases[%d])", c.ID, prev)}
		}
		seen[c.ID] = i

		switch c.Mode {
		case ModeForward:
			if c.WACC != nil {
				return ValidationError{field + ".wacc", "must not be set in forward mode"}
			}
			if missing := c.Query().Absent(); len(missing) > 0 {
				return ValidationError{field + "." + string(missing[0]), "required in forward mode"}
			}
		case ModeReverse:
			if c.WACC == nil {
				return ValidationError{field + ".wacc", "required in reverse mode"}
			}
		default:
			return ValidationError{field + ".mode", fmt.Sprintf("must be %q or %q, got %q", ModeForward, ModeReverse, c.Mode)}
		}
	}

	return nil
}
