package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/reloadgrid/reloadgo/internal/ctxlog"
	"github.com/reloadgrid/reloadgo/internal/layout"
	"github.com/reloadgrid/reloadgo/internal/trace"
)

// Assembler writes the assembled entry script: the trace header, the path
// variable bindings the stage scripts read, and then each included stage
// script in order.
type Assembler struct {
	w io.Writer
}

// NewAssembler creates an Assembler writing to w.
func NewAssembler(w io.Writer) *Assembler {
	return &Assembler{w: w}
}

// WriteEntryHeader emits the trace statement and the Set bindings that form
// the data contract with the stage scripts. It must be called exactly once,
// before the first Include.
func (a *Assembler) WriteEntryHeader(ctx context.Context, lo layout.Layout, utcStamp string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Writing entry script header.", "branch", lo.Branch)

	var b strings.Builder
	b.WriteString(trace.Statement(lo.Branch))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Set val__utc = '%s';\n", utcStamp)
	fmt.Fprintf(&b, "Set val__branch = '%s';\n", lo.Branch)
	fmt.Fprintf(&b, "Set val__qvd_path__das = '%s';\n", lo.StoragePath(layout.LayerSystem))
	fmt.Fprintf(&b, "Set val__qvd_path__dab = '%s';\n", lo.StoragePath(layout.LayerBusiness))
	fmt.Fprintf(&b, "Set val__qvd_path__dar = '%s';\n", lo.StoragePath(layout.LayerRequirements))
	fmt.Fprintf(&b, "Set val__script_path = '%s';\n", lo.ScriptBase())

	_, err := io.WriteString(a.w, b.String())
	return err
}

// Include inlines the script at path into the assembled output. A script that
// does not exist surfaces as ErrScriptNotFound; any other read failure is
// returned as-is.
func (a *Assembler) Include(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrScriptNotFound)
		}
		return fmt.Errorf("failed to read stage script %s: %w", path, err)
	}

	logger.Debug("Including stage script.", "path", path, "bytes", len(content))

	if _, err := io.WriteString(a.w, "\n"); err != nil {
		return err
	}
	if _, err := a.w.Write(content); err != nil {
		return err
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		if _, err := io.WriteString(a.w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
