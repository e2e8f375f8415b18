package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/reloadgrid/reloadgo/internal/ctxlog"
	"github.com/reloadgrid/reloadgo/internal/layout"
	"github.com/reloadgrid/reloadgo/internal/manifest"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle for a single reload run.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	model  *manifest.Model
	layout layout.Layout
}

// NewApp is the constructor for the main application. It loads the manifest,
// resolves the branch-scoped layout once, and returns a fully initialized
// App with its own isolated logger. A failure to load or validate
// configuration is a fatal startup error and panics; the entrypoint recovers
// it into a clean exit.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model := manifest.Default()
	if cfg.ManifestPath != "" {
		loaded, err := manifest.Load(ctx, cfg.ManifestPath, cfg.Branch)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		model = loaded
	}
	logger.Debug("Reload model ready.", "stages", len(model.Stages), "manifest", cfg.ManifestPath)

	storageRoot := cfg.StorageRoot
	scriptsRoot := cfg.ScriptsRoot
	if model.Reload != nil {
		if storageRoot == "" {
			storageRoot = model.Reload.StorageRoot
		}
		if scriptsRoot == "" {
			scriptsRoot = model.Reload.ScriptsRoot
		}
	}

	lo := layout.New(cfg.Branch, storageRoot, scriptsRoot)
	logger.Debug("Layout resolved.", "branch", lo.Branch, "script_base", lo.ScriptBase())

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		model:  model,
		layout: lo,
	}
}

// Layout returns the resolved path layout. This is primarily for testing.
func (a *App) Layout() layout.Layout {
	return a.layout
}

// Model returns the reload model. This is primarily for testing.
func (a *App) Model() *manifest.Model {
	return a.model
}
