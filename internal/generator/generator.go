package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/reloadgrid/reloadgo/internal/ctxlog"
	"github.com/reloadgrid/reloadgo/internal/trace"
)

// ScriptName is the file the generator produces.
const ScriptName = "data_according_to_system.qvs"

var headerRule = strings.Repeat("=", 63)

// Generator renders the system-layer stage script.
type Generator struct {
	// DataRoot is the location the source parquet extracts are read from.
	DataRoot string
}

// GenerateFile renders the script for s into dir/ScriptName, creating dir as
// needed, and returns the written path.
func (g Generator) GenerateFile(ctx context.Context, dir string, s *Schema) (string, error) {
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create script directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ScriptName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := g.Write(f, s); err != nil {
		return "", err
	}
	logger.Info("System-layer script generated.", "path", path, "tables", len(s.Tables))
	return path, nil
}

// Write renders the script for s to w. Tables are emitted in name order.
func (g Generator) Write(w io.Writer, s *Schema) error {
	var b strings.Builder

	b.WriteString("Trace\n")
	b.WriteString(headerRule)
	b.WriteString("\n    DATA ACCORDING TO SYSTEM\n")
	b.WriteString("    Generated script, regenerate instead of editing\n")
	b.WriteString(headerRule)
	b.WriteString("\n;\n")

	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		g.writeTable(&b, name, s.Tables[name])
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (g Generator) writeTable(b *strings.Builder, name string, table Table) {
	fields := categorize(name, table.Columns)

	b.WriteString(trace.Banner("Extracting " + name))

	b.WriteString("Trace Setting variables...;\n")
	fmt.Fprintf(b, "Let val__qvd_target = '$(val__qvd_path__das)/%s.qvd';\n", name)
	b.WriteString("Let val__target_qvd_exists = Not IsNull(QvdCreateTime('$(val__qvd_target)'));\n")
	b.WriteString("Let val__incremental_value = '1970-01-01';\n\n")

	b.WriteString("Trace Define hash table...;\n")
	b.WriteString("[processed_record_hashes]:\nLoad\n    Null() As [old_record_hash]\nAutoGenerate 0\n;\n\n")

	b.WriteString("Trace Checking if target QVD exists...;\n")
	b.WriteString("If $(val__target_qvd_exists) Then\n")
	b.WriteString("    Trace Target found, loading hashes and max incremental value...;\n\n")
	b.WriteString("    Concatenate([processed_record_hashes])\n")
	b.WriteString("    Load\n        [record_hash] As [old_record_hash]\n\n")
	b.WriteString("    From\n        [$(val__qvd_target)] (qvd)\n    ;\n\n")
	b.WriteString("    [max_incremental_value]:\n")
	b.WriteString("    Load\n        Date(Max(Num#([modified_date])), 'YYYY-MM-DD') As [max_incremental_value]\n")
	b.WriteString("    From\n        [$(val__qvd_target)] (qvd)\n    ;\n\n")
	b.WriteString("    Let val__incremental_value = Coalesce(Peek('max_incremental_value', -1, 'max_incremental_value'), '$(val__incremental_value)');\n")
	b.WriteString("    Drop Table [max_incremental_value];\n\n")
	b.WriteString("Else\n    Trace Target not found, starting full load...;\n\nEnd If\n\n")

	b.WriteString("Trace Loading new data with incremental value $(val__incremental_value)...;\n")
	b.WriteString("Set var__record_hash = Hash256(\n")
	for i, f := range fields {
		if i < len(fields)-1 {
			fmt.Fprintf(b, "    [%s],\n", f.name)
		} else {
			fmt.Fprintf(b, "    [%s]\n", f.name)
		}
	}
	b.WriteString(")\n;\n\n")

	fmt.Fprintf(b, "[%s]:\n", name)
	b.WriteString("Load\n    *,\n    $(var__record_hash) As [record_hash],\n")
	b.WriteString("    Timestamp#('$(val__utc)', 'YYYY-MM-DD hh:mm:ss.ffffff') As [record_loaded_at]\n\n")
	b.WriteString("Where\n    Not Exists ([old_record_hash], $(var__record_hash))\n;\n\n")

	b.WriteString("Load\n")
	for i, f := range fields {
		if i < len(fields)-1 {
			fmt.Fprintf(b, "    Text([%s]) As [%s],\n", f.name, f.name)
		} else {
			fmt.Fprintf(b, "    Text([%s]) As [%s]\n", f.name, f.name)
		}
	}
	b.WriteString("\nFrom\n")
	fmt.Fprintf(b, "    [%s/das.%s.parquet] (parquet)\n\n", g.DataRoot, name)
	b.WriteString("Where\n    Date([modified_date], 'YYYY-MM-DD') >= Date#('$(val__incremental_value)', 'YYYY-MM-DD')\n;\n\n")

	b.WriteString("Trace Dropping hash table...;\nDrop Table [processed_record_hashes];\n\n")
	b.WriteString("Trace Counting new records...;\n")
	fmt.Fprintf(b, "Set val__no_of_new_records = Alt(NoOfRows('%s'), 0);\n\n", name)

	b.WriteString("Trace Checking if there are new records...;\n")
	b.WriteString("If $(val__no_of_new_records) > 0 Then\n\n")
	b.WriteString("    Trace Checking if target QVD exists...;\n")
	b.WriteString("    If $(val__target_qvd_exists) Then\n")
	b.WriteString("        Trace Appending previously ingested data...;\n\n")
	fmt.Fprintf(b, "        Concatenate([%s])\n", name)
	b.WriteString("        Load * From [$(val__qvd_target)] (qvd) Where Not Exists ([record_hash]);\n\n")
	b.WriteString("    Else\n        Trace Target not found, skipping append...;\n\n    End If\n\n")

	if table.Description != "" {
		b.WriteString("    Trace Commenting table...;\n")
		fmt.Fprintf(b, "    Comment Table [%s] With '%s';\n\n", name, escapeQuote(table.Description))
	}

	var comments []string
	for _, f := range fields {
		if f.description != "" {
			comments = append(comments, fmt.Sprintf("Comment Field [%s] With '%s';", f.name, escapeQuote(f.description)))
		}
	}
	if len(comments) > 0 {
		b.WriteString("    Trace Commenting fields...;\n")
		for _, c := range comments {
			b.WriteString("    " + c + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("    Trace Storing data...;\n")
	fmt.Fprintf(b, "    Store [%s] Into [$(val__qvd_path__das)/%s.qvd] (qvd);\n\n", name, name)
	b.WriteString("Else\n    Trace No new records loaded...;\n\nEnd If\n\n")

	b.WriteString("Trace Dropping table...;\n")
	fmt.Fprintf(b, "Drop Table [%s];\n\n", name)

	b.WriteString("Trace Resetting variables...;\n")
	b.WriteString("Let val__qvd_target = Null();\n")
	b.WriteString("Let val__target_qvd_exists = Null();\n")
	b.WriteString("Let val__incremental_value = Null();\n")
	b.WriteString("Let var__record_hash = Null();\n")
	b.WriteString("Let val__no_of_new_records = Null();\n\n")
}
