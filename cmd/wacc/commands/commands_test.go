package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/forensic-wacc/internal/casefile"
	"github.com/wonny/forensic-wacc/internal/contracts"
)

const caseFile = "../../../examples/acme.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "off")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCalcJSON(t *testing.T) {
	out, err := run(t, "calc", "--equity", "12000", "--debt", "2000",
		"--ke", "0.10", "--kd", "0.067", "--tax", "0.25", "--json")
	require.NoError(t, err)

	var res contracts.ForwardResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 0.0928928571, res.WACC, 1e-9)
	assert.InDelta(t, 1.0, res.EquityWeight+res.DebtWeight, 1e-12)
}

func TestCalcRequiresAllInputs(t *testing.T) {
	_, err := run(t, "calc", "--equity", "12000", "--debt", "2000", "--ke", "0.10", "--kd", "0.067")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--tax is required")
}

func TestCalcExample(t *testing.T) {
	out, err := run(t, "calc", "--example")
	require.NoError(t, err)
	assert.Contains(t, out, "9.289286%")
	assert.Contains(t, out, "0.8571")
}

func TestCalcInvalidInput(t *testing.T) {
	_, err := run(t, "calc", "--example", "--equity", "0", "--debt", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E + D cannot be zero")
}

func TestSolveEquity(t *testing.T) {
	target := 12000.0/14000*0.10 + 2000.0/14000*0.067*(1-0.25)
	out, err := run(t, "solve", "--wacc", formatFlag(target), "--debt", "2000",
		"--ke", "0.10", "--kd", "0.067", "--tax", "0.25", "--json")
	require.NoError(t, err)

	var res contracts.ReverseResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, contracts.VarEquityValue, res.Missing)
	assert.InEpsilon(t, 12000, res.Value, 1e-6)
}

func TestSolvePrintsWarnings(t *testing.T) {
	out, err := run(t, "solve", "--wacc", "0.2", "--equity", "12000", "--debt", "2000",
		"--ke", "0.10", "--kd", "0.067")
	require.NoError(t, err)
	assert.Contains(t, out, "Solved T")
	assert.Contains(t, out, "outside [0,1]")
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "two missing",
			args: []string{"solve", "--wacc", "0.09", "--equity", "12000", "--ke", "0.10", "--kd", "0.067"},
			want: "exactly four inputs",
		},
		{
			name: "wacc flag required",
			args: []string{"solve", "--equity", "12000", "--debt", "2000", "--ke", "0.10", "--kd", "0.067"},
			want: "wacc",
		},
		{
			name: "rates indistinguishable",
			args: []string{"solve", "--wacc", "0.08", "--debt", "2000", "--ke", "0.08", "--kd", "0.08", "--tax", "0"},
			want: "cannot solve E",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBatchTable(t *testing.T) {
	out, err := run(t, "batch", caseFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 4 cases failed")

	assert.Contains(t, out, "forward-base")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "not_identifiable")
}

func TestBatchJSON(t *testing.T) {
	out, err := run(t, "batch", caseFile, "--json")
	require.Error(t, err)

	var report casefile.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Outcomes, 4)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Warnings)
	assert.NotEmpty(t, report.RunID)
}

func TestBatchMissingFile(t *testing.T) {
	_, err := run(t, "batch", "does-not-exist.yaml")
	require.Error(t, err)
}

func formatFlag(x float64) string {
	b, _ := json.Marshal(x)
	return string(b)
}
