package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reloadgrid/reloadgo/internal/testutil"
)

// Test for: a missing business-layer script is skipped while system and
// requirements still execute, in that order.
func TestReload_MissingBusinessScriptIsSkipped(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	scripts := map[string]string{
		"data_according_to_system.qvs":       "Trace system layer marker...;",
		"data_according_to_requirements.qvs": "Trace requirements layer marker...;",
	}

	// --- Act ---
	result := testutil.RunReloadTest(t, scripts)

	// --- Assert ---
	require.NoError(t, result.Err)
	testutil.AssertIncludedInOrder(t, result, "system layer marker", "requirements layer marker")
	require.Contains(t, result.LogOutput, "Optional stage script not found, skipping.")
}

// Test for: both optional stages missing still yields a successful run with
// only the system layer assembled.
func TestReload_SystemOnlyRunSucceeds(t *testing.T) {
	t.Parallel()

	result := testutil.RunReloadTest(t, map[string]string{
		"data_according_to_system.qvs": "Trace system layer marker...;",
	})

	require.NoError(t, result.Err)
	testutil.AssertIncludedInOrder(t, result, "system layer marker")
	testutil.AssertNotIncluded(t, result, "business layer marker")
}
