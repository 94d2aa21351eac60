package casefile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/forensic-wacc/internal/contracts"
)

func TestLoad(t *testing.T) {
	f, data, err := Load("testdata/acme.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	assert.Equal(t, "acme-2025", f.Name)
	require.Len(t, f.Cases, 4)

	fwd := f.Cases[0]
	assert.Equal(t, ModeForward, fwd.Mode)
	assert.Equal(t, contracts.CapitalInputs{
		EquityValue: 12000, DebtValue: 2000, CostOfEquity: 0.10, CostOfDebt: 0.067, TaxRate: 0.25,
	}, fwd.Inputs())

	rev := f.Cases[1]
	assert.Equal(t, ModeReverse, rev.Mode)
	assert.Equal(t, []contracts.Variable{contracts.VarEquityValue}, rev.Query().Absent())
	assert.Equal(t, 0.09289, rev.Query().WACC)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(`
name: typo
cases:
  - id: a
    mode: forward
    equity_valu: 100
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "equity_valu")
}

func TestValidate(t *testing.T) {
	one := 1.0

	tests := []struct {
		name      string
		file      File
		wantField string
	}{
		{
			name:      "no cases",
			file:      File{Name: "empty"},
			wantField: "cases",
		},
		{
			name:      "missing id",
			file:      File{Cases: []Case{{Mode: ModeReverse, WACC: &one}}},
			wantField: "cases[0].id",
		},
		{
			name: "duplicate id",
			file: File{Cases: []Case{
				{ID: "a", Mode: ModeReverse, WACC: &one},
				{ID: "a", Mode: ModeReverse, WACC: &one},
			}},
			wantField: "cases[1].id",
		},
		{
			name:      "unknown mode",
			file:      File{Cases: []Case{{ID: "a", Mode: "sideways"}}},
			wantField: "cases[0].mode",
		},
		{
			name:      "reverse without wacc",
			file:      File{Cases: []Case{{ID: "a", Mode: ModeReverse}}},
			wantField: "cases[0].wacc",
		},
		{
			name: "forward with wacc",
			file: File{Cases: []Case{{
				ID: "a", Mode: ModeForward, WACC: &one,
			}}},
			wantField: "cases[0].wacc",
		},
		{
			name: "forward missing input",
			file: File{Cases: []Case{{
				ID: "a", Mode: ModeForward,
				EquityValue: &one, DebtValue: &one, CostOfEquity: &one, CostOfDebt: &one,
			}}},
			wantField: "cases[0].tax_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.file)
			require.Error(t, err)

			var ve ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestHash(t *testing.T) {
	f, _, err := Load("testdata/acme.yaml")
	require.NoError(t, err)

	hash, err := Hash(f)
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	// 동일 입력 → 동일 해시
	again, err := Hash(f)
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	f.Cases[0].ID = "renamed"
	changed, err := Hash(f)
	require.NoError(t, err)
	assert.NotEqual(t, hash, changed)
}
