package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/reloadgrid/reloadgo/internal/ctxlog"
	"github.com/reloadgrid/reloadgo/internal/engine"
	"github.com/reloadgrid/reloadgo/internal/layout"
)

// Descriptor addresses one stage of the reload: its layer, the resolved
// script path, and whether the stage is mandatory.
type Descriptor struct {
	Layer    layout.Layer
	Script   string
	Required bool
}

// Result records the terminal state of one stage after a run.
type Result struct {
	Descriptor Descriptor
	State      State
	Err        error
}

// Stage is the capability interface for an externally supplied stage. The
// concrete implementations live outside this package.
type Stage interface {
	Run(ctx context.Context) error
}

// Factory builds the Stage for a descriptor.
type Factory func(Descriptor) Stage

// Runner executes descriptors in order through stages built by its factory.
type Runner struct {
	factory Factory
}

// New creates a Runner.
func New(factory Factory) *Runner {
	return &Runner{factory: factory}
}

// Run executes every stage in order. It returns one Result per descriptor,
// index-aligned, and a non-nil error if the run terminated early. A missing
// script fails the run only when the stage is required; any other stage
// error is fatal regardless of policy.
func (r *Runner) Run(ctx context.Context, stages []Descriptor) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)

	results := make([]Result, len(stages))
	for i, d := range stages {
		results[i] = Result{Descriptor: d, State: Pending}
	}

	for i, d := range stages {
		if err := ctx.Err(); err != nil {
			results[i].State = Skipped
			results[i].Err = err
			r.skipRemaining(ctx, results, i+1, d.Layer)
			return results, fmt.Errorf("run canceled before stage %q: %w", d.Layer, err)
		}

		stageLogger := logger.With("layer", string(d.Layer), "script", d.Script, "required", d.Required)
		stageLogger.Info("Stage starting.")
		results[i].State = Running

		err := r.factory(d).Run(ctx)
		if err == nil {
			results[i].State = Done
			stageLogger.Info("Stage done.")
			continue
		}

		if errors.Is(err, engine.ErrScriptNotFound) && !d.Required {
			results[i].State = Skipped
			results[i].Err = err
			stageLogger.Warn("Optional stage script not found, skipping.", "error", err)
			continue
		}

		results[i].State = Failed
		results[i].Err = err
		stageLogger.Error("Stage failed, terminating run.", "error", err)
		r.skipRemaining(ctx, results, i+1, d.Layer)
		return results, fmt.Errorf("stage %q failed: %w", d.Layer, err)
	}

	return results, nil
}

// skipRemaining marks every stage after index start as skipped due to the
// failure of cause.
func (r *Runner) skipRemaining(ctx context.Context, results []Result, start int, cause layout.Layer) {
	logger := ctxlog.FromContext(ctx)
	for i := start; i < len(results); i++ {
		logger.Warn("Skipping stage due to upstream failure.", "layer", string(results[i].Descriptor.Layer), "failed_stage", string(cause))
		results[i].State = Skipped
		results[i].Err = fmt.Errorf("skipped due to failure of stage %q", cause)
	}
}
