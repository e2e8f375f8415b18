package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/reloadgrid/reloadgo/internal/ctxlog"
)

// Load parses and validates a manifest file. The branch identifier is exposed
// to the manifest as the `branch` variable so roots may interpolate it, e.g.
// `storage_root = "lib://DataFiles/${branch}"`.
func Load(ctx context.Context, path, branch string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"branch": cty.StringVal(branch),
		},
	}

	var model Model
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &model); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	logger.Debug("Manifest loaded.", "stages", len(model.Stages))
	return &model, nil
}
