package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertIncludedInOrder checks that each marker appears in the assembled
// script, and that the markers appear in the given order.
func AssertIncludedInOrder(t *testing.T, result *HarnessResult, markers ...string) {
	t.Helper()

	last := -1
	for _, marker := range markers {
		idx := strings.Index(result.Script, marker)
		require.GreaterOrEqual(t, idx, 0, "expected marker %q in assembled script", marker)
		require.Greater(t, idx, last, "marker %q appeared out of order", marker)
		last = idx
	}
}

// AssertNotIncluded checks that the marker never made it into the assembled script.
func AssertNotIncluded(t *testing.T, result *HarnessResult, marker string) {
	t.Helper()
	require.NotContains(t, result.Script, marker)
}
