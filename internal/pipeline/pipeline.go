// Package pipeline runs an ordered sequence of named build steps,
// halting at the first failure and reporting per-step outcomes.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/release-forge/internal/logger"
)

// Step is one unit of pipeline work.
type Step struct {
	// Name identifies the step in logs, reports and errors.
	Name string
	// Run performs the step. A non-nil error aborts the remaining steps.
	Run func(ctx context.Context) error
}

// StepResult records the outcome of one executed step.
type StepResult struct {
	// Name is the step's name.
	Name string
	// Duration is how long the step ran.
	Duration time.Duration
	// Err is the step's error, nil on success.
	Err error
}

// Report holds the results of every step that was started, in execution order.
type Report struct {
	// Results contains one entry per executed step.
	Results []StepResult
}

// Failed returns the failing step's result, or nil when every executed step succeeded.
func (r *Report) Failed() *StepResult {
	for i := range r.Results {
		if r.Results[i].Err != nil {
			return &r.Results[i]
		}
	}

	return nil
}

// Run executes steps in order. It stops at the first failing step and returns
// an error naming it; steps after the failure are never started. Context
// cancellation between steps aborts the run the same way.
func Run(ctx context.Context, steps []Step) (*Report, error) {
	report := &Report{Results: make([]StepResult, 0, len(steps))}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("pipeline canceled before step %q: %w", step.Name, err)
		}

		logger.InfoKV(ctx, "Step started", "step", step.Name)

		started := time.Now()
		err := step.Run(ctx)
		result := StepResult{
			Name:     step.Name,
			Duration: time.Since(started),
			Err:      err,
		}

		report.Results = append(report.Results, result)

		if err != nil {
			logger.ErrorKV(ctx, "Step failed",
				"step", step.Name,
				"duration", result.Duration,
				"error", err)

			return report, fmt.Errorf("step %q: %w", step.Name, err)
		}

		logger.InfoKV(ctx, "Step finished",
			"step", step.Name,
			"duration", result.Duration)
	}

	return report, nil
}
