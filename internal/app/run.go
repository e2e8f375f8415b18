package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/reloadgrid/reloadgo/internal/ctxlog"
	"github.com/reloadgrid/reloadgo/internal/engine"
	"github.com/reloadgrid/reloadgo/internal/generator"
	"github.com/reloadgrid/reloadgo/internal/layout"
	"github.com/reloadgrid/reloadgo/internal/runner"
	"github.com/reloadgrid/reloadgo/internal/trace"
)

// Run executes one reload: optionally regenerate the system-layer script,
// emit the trace header, and drive the ordered stages through the assembler.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID, "branch", a.layout.Branch)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	// The timestamp is captured once and reused everywhere in this run.
	utcStamp := trace.UTCStamp(time.Now())

	if a.config.SchemaPath != "" {
		if err := a.generateSystemScript(ctx); err != nil {
			return err
		}
	}

	fmt.Fprint(a.outW, trace.Header(a.layout.Branch))

	out, closeOut, err := a.openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	asm := engine.NewAssembler(out)
	if err := asm.WriteEntryHeader(ctx, a.layout, utcStamp); err != nil {
		return fmt.Errorf("failed to write entry header: %w", err)
	}

	descriptors := make([]runner.Descriptor, 0, len(a.model.Stages))
	for _, s := range a.model.Stages {
		descriptors = append(descriptors, runner.Descriptor{
			Layer:    layout.Layer(s.Layer),
			Script:   a.layout.ScriptPath(s.Script),
			Required: s.Required,
		})
	}

	logger.Info("🚀 Starting layered reload...", "stages", len(descriptors))
	run := runner.New(func(d runner.Descriptor) runner.Stage {
		return engine.ScriptStage{Path: d.Script, Includer: asm}
	})
	results, runErr := run.Run(ctx, descriptors)

	var done, skipped int
	for _, r := range results {
		switch r.State {
		case runner.Done:
			done++
		case runner.Skipped:
			skipped++
		}
	}
	if runErr != nil {
		logger.Error("Reload failed.", "done", done, "skipped", skipped, "error", runErr)
		return runErr
	}
	logger.Info("🏁 Reload finished.", "done", done, "skipped", skipped)

	return nil
}

// generateSystemScript regenerates the system-layer stage script from the
// configured schema into the branch-scoped script base.
func (a *App) generateSystemScript(ctx context.Context) error {
	schema, err := generator.LoadPath(a.config.SchemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	gen := generator.Generator{DataRoot: a.layout.DataRoot()}
	if _, err := gen.GenerateFile(ctx, a.layout.ScriptBase(), schema); err != nil {
		return fmt.Errorf("failed to generate system-layer script: %w", err)
	}
	return nil
}

// openOutput returns the assembled-script destination. Stdout (the app's
// writer) is used when no output path is configured.
func (a *App) openOutput() (io.Writer, func(), error) {
	if a.config.OutputPath == "" {
		return a.outW, func() {}, nil
	}
	f, err := os.Create(a.config.OutputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output %s: %w", a.config.OutputPath, err)
	}
	return f, func() { f.Close() }, nil
}
