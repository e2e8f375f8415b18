package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayout_MainBranchFixture(t *testing.T) {
	t.Parallel()

	lo := New("main", "lib://DataFiles", "lib://Scripts")

	require.Equal(t,
		"lib://DataFiles/Analytical Data Storage System/QVD/main/data_according_to_system",
		lo.StoragePath(LayerSystem),
	)
	require.Equal(t,
		"lib://DataFiles/Analytical Data Storage System/QVD/main/data_according_to_business",
		lo.StoragePath(LayerBusiness),
	)
	require.Equal(t,
		"lib://DataFiles/Analytical Data Storage System/QVD/main/data_according_to_requirements",
		lo.StoragePath(LayerRequirements),
	)
	require.Equal(t,
		"lib://Scripts/Analytical Data Storage System/main/scripts",
		lo.ScriptBase(),
	)
}

func TestLayout_BranchSubstitutedVerbatimOnce(t *testing.T) {
	t.Parallel()

	branches := []string{"main", "feature/new-marts", "release-2024.06", "weird branch"}
	for _, branch := range branches {
		lo := New(branch, "lib://DataFiles", "lib://Scripts")

		paths := []string{
			lo.StoragePath(LayerSystem),
			lo.StoragePath(LayerBusiness),
			lo.StoragePath(LayerRequirements),
			lo.ScriptBase(),
		}
		for _, p := range paths {
			require.Equal(t, 1, strings.Count(p, "/"+branch+"/"),
				"branch %q must appear verbatim exactly once in %q", branch, p)
		}
	}
}

func TestLayout_AllPathsShareOneBranch(t *testing.T) {
	t.Parallel()

	// The layout is built once; no per-stage override can make the four
	// derived paths diverge on branch.
	lo := New("dev", "s", "x")
	for _, layer := range Ordered() {
		require.Contains(t, lo.StoragePath(layer), "/dev/")
	}
	require.Contains(t, lo.ScriptBase(), "/dev/")
}

func TestLayout_EmptyBranchPropagatesSilently(t *testing.T) {
	t.Parallel()

	// No validation at this level: an empty branch yields a malformed but
	// well-defined path.
	lo := New("", "lib://DataFiles", "lib://Scripts")
	require.Equal(t,
		"lib://DataFiles/Analytical Data Storage System/QVD//data_according_to_system",
		lo.StoragePath(LayerSystem),
	)
}

func TestLayout_ScriptPath(t *testing.T) {
	t.Parallel()

	lo := New("main", "lib://DataFiles", "lib://Scripts")
	require.Equal(t,
		"lib://Scripts/Analytical Data Storage System/main/scripts/data_according_to_system.qvs",
		lo.ScriptPath("data_according_to_system.qvs"),
	)
}

func TestOrdered_FixedLayerOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t, []Layer{LayerSystem, LayerBusiness, LayerRequirements}, Ordered())
}
