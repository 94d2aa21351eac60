package casefile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/forensic-wacc/internal/contracts"
	"github.com/wonny/forensic-wacc/internal/wacc"
	"github.com/wonny/forensic-wacc/pkg/logger"
)

func TestRunner_Run(t *testing.T) {
	f, _, err := Load("testdata/acme.yaml")
	require.NoError(t, err)

	runner := NewRunner(wacc.NewSolver(wacc.Options{}), logger.Nop())
	report, err := runner.Run(context.Background(), f)
	require.NoError(t, err)

	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "acme-2025", report.Name)
	assert.Len(t, report.Hash, 64)
	require.Len(t, report.Outcomes, 4)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Warnings)

	fwd := report.Outcomes[0]
	require.NotNil(t, fwd.Forward)
	assert.InDelta(t, 0.09289, fwd.Forward.WACC, 1e-5)

	equity := report.Outcomes[1]
	require.NotNil(t, equity.Reverse)
	assert.Equal(t, contracts.VarEquityValue, equity.Reverse.Missing)
	assert.InEpsilon(t, 12000.0, equity.Reverse.Value, 1e-3)

	tax := report.Outcomes[2]
	require.NotNil(t, tax.Reverse)
	assert.True(t, tax.Reverse.HasWarnings())

	degenerate := report.Outcomes[3]
	assert.True(t, degenerate.Failed())
	assert.Nil(t, degenerate.Reverse)
	assert.Equal(t, wacc.KindNotIdentifiable, degenerate.Kind)
	assert.Contains(t, degenerate.Error, "Ke equals Kd(1-T)")
}

func TestRunner_StrictTaxRate(t *testing.T) {
	f, _, err := Load("testdata/acme.yaml")
	require.NoError(t, err)

	runner := NewRunner(wacc.NewSolver(wacc.Options{StrictTaxRate: true}), logger.Nop())
	report, err := runner.Run(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, wacc.KindInconsistentInputs, report.Outcomes[2].Kind)
}

func TestRunner_Cancelled(t *testing.T) {
	f, _, err := Load("testdata/acme.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(wacc.NewSolver(wacc.Options{}), logger.Nop())
	_, err = runner.Run(ctx, f)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_SolverErrorsPerCase(t *testing.T) {
	wacc1 := 0.09
	two := 2000.0
	f := &File{
		Name: "bad",
		Cases: []Case{
			// two inputs omitted
			{ID: "underspecified", Mode: ModeReverse, WACC: &wacc1, DebtValue: &two},
		},
	}
	require.NoError(t, Validate(f))

	report, err := NewRunner(wacc.NewSolver(wacc.Options{}), logger.Nop()).Run(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, wacc.KindInvalidInput, report.Outcomes[0].Kind)
}
