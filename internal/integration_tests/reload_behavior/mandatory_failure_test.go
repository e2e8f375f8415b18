package integration_tests

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reloadgrid/reloadgo/internal/engine"
	"github.com/reloadgrid/reloadgo/internal/testutil"
)

// Test for: a missing system-layer script terminates the run before any
// later stage is attempted.
func TestReload_MissingSystemScriptIsFatal(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The optional stages are present on disk; only the mandatory system
	// script is missing.
	scripts := map[string]string{
		"data_according_to_business.qvs":     "Trace business layer marker...;",
		"data_according_to_requirements.qvs": "Trace requirements layer marker...;",
	}

	// --- Act ---
	result := testutil.RunReloadTest(t, scripts)

	// --- Assert ---
	require.Error(t, result.Err)
	require.True(t, errors.Is(result.Err, engine.ErrScriptNotFound))

	// Neither optional script may have been included even though both exist.
	testutil.AssertNotIncluded(t, result, "business layer marker")
	testutil.AssertNotIncluded(t, result, "requirements layer marker")
}

// Test for: repeated runs against the same missing script fail identically.
func TestReload_MandatoryFailureIsRepeatable(t *testing.T) {
	t.Parallel()

	first := testutil.RunReloadTest(t, nil)
	second := testutil.RunReloadTest(t, nil)

	require.Error(t, first.Err)
	require.Error(t, second.Err)
	require.True(t, errors.Is(first.Err, engine.ErrScriptNotFound))
	require.True(t, errors.Is(second.Err, engine.ErrScriptNotFound))
}
