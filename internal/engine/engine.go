// Package engine is the script-inclusion collaborator of the reload entry
// point. It models the host platform's include directive: locate a stage
// script on disk and inline it into the single assembled reload script the
// platform consumes. Whether a missing script is fatal is the runner's
// decision, not the engine's; the engine only reports the condition.
package engine

import (
	"context"
	"errors"
)

// ErrScriptNotFound reports that a stage script could not be located. The
// runner maps it to a fatal error or a skip depending on the stage policy.
var ErrScriptNotFound = errors.New("stage script not found")

// Includer locates and inlines a script addressed by path.
type Includer interface {
	Include(ctx context.Context, path string) error
}

// ScriptStage adapts a single script path to the runner's Stage capability.
type ScriptStage struct {
	Path     string
	Includer Includer
}

// Run includes the stage's script.
func (s ScriptStage) Run(ctx context.Context) error {
	return s.Includer.Include(ctx, s.Path)
}
