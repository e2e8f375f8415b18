package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/reloadgrid/reloadgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("reloadgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ReloadGo - a layered data-warehouse reload entry point.

Resolves branch-scoped storage and script paths, emits the run trace header,
and assembles the three layer stages (system, business, requirements) into a
single reload script for the host platform.

Usage:
  reloadgo [options] [MANIFEST_PATH]

Arguments:
  MANIFEST_PATH
    Path to an .hcl reload manifest. When omitted, the built-in three-stage
    model is used.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to the reload manifest file.")
	mFlag := flagSet.String("m", "", "Path to the reload manifest file (shorthand).")
	branchFlag := flagSet.String("branch", os.Getenv("RELOAD_BRANCH"), "Branch identifier scoping all derived paths. Defaults to $RELOAD_BRANCH.")
	storageRootFlag := flagSet.String("storage-root", "", "Storage root the QVD layer paths are derived from.")
	scriptsRootFlag := flagSet.String("scripts-root", "", "Root the branch-scoped stage scripts are located under.")
	outFlag := flagSet.String("out", "", "Destination file for the assembled reload script. Stdout when empty.")
	schemaFlag := flagSet.String("schema", "", "YAML schema file or directory; regenerates the system-layer script before the run.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	manifestPath := ""
	if *manifestFlag != "" {
		manifestPath = *manifestFlag
	} else if *mFlag != "" {
		manifestPath = *mFlag
	} else if flagSet.NArg() > 0 {
		manifestPath = flagSet.Arg(0)
	}
	slog.Debug("Manifest path determined.", "path", manifestPath)

	if manifestPath == "" && *scriptsRootFlag == "" {
		slog.Debug("Neither manifest nor scripts root provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Branch:          *branchFlag,
		ManifestPath:    manifestPath,
		StorageRoot:     *storageRootFlag,
		ScriptsRoot:     *scriptsRootFlag,
		SchemaPath:      *schemaFlag,
		OutputPath:      *outFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
