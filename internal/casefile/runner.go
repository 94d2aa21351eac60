package casefile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/forensic-wacc/internal/contracts"
	"github.com/wonny/forensic-wacc/internal/wacc"
	"github.com/wonny/forensic-wacc/pkg/logger"
)

// Outcome is the result of one case. Exactly one of Forward, Reverse or Error is set.
type Outcome struct {
	ID      string                   `json:"id"`
	Mode    Mode                     `json:"mode"`
	Forward *contracts.ForwardResult `json:"forward,omitempty"`
	Reverse *contracts.ReverseResult `json:"reverse,omitempty"`
	Error   string                   `json:"error,omitempty"`
	Kind    wacc.Kind                `json:"kind,omitempty"`
}

// Failed reports whether the case ended in an error
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// Report summarizes a case file run
type Report struct {
	RunID     string    `json:"run_id"`
	Name      string    `json:"name"`
	Hash      string    `json:"hash"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
	Outcomes  []Outcome `json:"outcomes"`
	Failed    int       `json:"failed"`
	Warnings  int       `json:"warnings"`
}

// Runner executes case files against a solver
type Runner struct {
	solver *wacc.Solver
	logger *logger.Logger
}

// NewRunner creates a new runner
func NewRunner(solver *wacc.Solver, log *logger.Logger) *Runner {
	return &Runner{
		solver: solver,
		logger: log,
	}
}

// Run executes every case in order. Case failures are recorded in the
// report; only cancellation or hashing problems abort the run.
func (r *Runner) Run(ctx context.Context, f *File) (*Report, error) {
	hash, err := Hash(f)
	if err != nil {
		return nil, fmt.Errorf("hash case file: %w", err)
	}

	start := time.Now()
	report := &Report{
		RunID:     uuid.NewString(),
		Name:      f.Name,
		Hash:      hash,
		StartedAt: start,
		Outcomes:  make([]Outcome, 0, len(f.Cases)),
	}

	log := r.logger.WithFields(map[string]interface{}{
		"run_id": report.RunID,
		"name":   f.Name,
	})
	log.Infof("Running %d cases", len(f.Cases))

	for _, c := range f.Cases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled at case %q: %w", c.ID, err)
		}

		out := r.runCase(c)
		if out.Failed() {
			report.Failed++
			log.WithFields(map[string]interface{}{
				"case": c.ID,
				"kind": out.Kind,
			}).Warn(out.Error)
		}
		if out.Reverse != nil && out.Reverse.HasWarnings() {
			report.Warnings++
		}
		report.Outcomes = append(report.Outcomes, out)
	}

	report.Duration = time.Since(start).String()
	log.WithFields(map[string]interface{}{
		"failed":   report.Failed,
		"warnings": report.Warnings,
	}).Info("Case file completed")

	return report, nil
}

func (r *Runner) runCase(c Case) Outcome {
	out := Outcome{ID: c.ID, Mode: c.Mode}

	switch c.Mode {
	case ModeForward:
		res, err := r.solver.Calculate(c.Inputs())
		if err != nil {
			return withError(out, err)
		}
		out.Forward = &res
	case ModeReverse:
		res, err := r.solver.SolveMissing(c.Query())
		if err != nil {
			return withError(out, err)
		}
		out.Reverse = &res
	default:
		out.Error = fmt.Sprintf("unknown mode %q", c.Mode)
		out.Kind = wacc.KindInvalidInput
	}

	return out
}

func withError(out Outcome, err error) Outcome {
	out.Error = err.Error()
	out.Kind = wacc.KindOf(err)
	return out
}
