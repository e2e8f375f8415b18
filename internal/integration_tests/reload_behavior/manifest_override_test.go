package integration_tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reloadgrid/reloadgo/internal/app"
	"github.com/reloadgrid/reloadgo/internal/testutil"
)

// Test for: a user manifest replaces the built-in stage model and its roots
// can interpolate the branch.
func TestReload_ManifestDrivenStages(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	manifestHCL := `
		reload {
			storage_root = "lib://Warehouse/${branch}"
		}

		stage "system" {
			script   = "data_according_to_system.qvs"
			required = true
		}

		stage "requirements" {
			script = "data_according_to_requirements.qvs"
		}
	`
	manifestDir := t.TempDir()
	manifestPath := filepath.Join(manifestDir, "reload.hcl")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestHCL), 0600))

	scripts := map[string]string{
		"data_according_to_system.qvs":       "Trace system layer marker...;",
		"data_according_to_business.qvs":     "Trace business layer marker...;",
		"data_according_to_requirements.qvs": "Trace requirements layer marker...;",
	}

	// --- Act ---
	result := testutil.RunReloadTest(t, scripts, func(cfg *app.Config) {
		cfg.ManifestPath = manifestPath
		cfg.StorageRoot = "" // let the manifest supply it
	})

	// --- Assert ---
	require.NoError(t, result.Err)

	// The business stage is not part of this manifest at all.
	testutil.AssertIncludedInOrder(t, result, "system layer marker", "requirements layer marker")
	testutil.AssertNotIncluded(t, result, "business layer marker")

	// Branch interpolation reached the derived paths.
	require.Contains(t, result.Script, "Set val__qvd_path__das = 'lib://Warehouse/main/Analytical Data Storage System/QVD/main/data_according_to_system';")
}

// Test for: an unparseable manifest is a fatal startup error.
func TestReload_BrokenManifestFailsStartup(t *testing.T) {
	t.Parallel()

	manifestPath := filepath.Join(t.TempDir(), "reload.hcl")
	require.NoError(t, os.WriteFile(manifestPath, []byte(`stage "system" {`), 0600))

	result := testutil.RunReloadTest(t, nil, func(cfg *app.Config) {
		cfg.ManifestPath = manifestPath
	})

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "application startup panicked")
}
