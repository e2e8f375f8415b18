// Package layout derives the branch-scoped storage and script paths used by
// a layered reload. A Layout is built once at startup and never mutated; all
// derived paths share the same single branch substitution.
package layout

import "fmt"

// Layer is one of the three conceptual warehouse tiers.
type Layer string

const (
	// LayerSystem is the raw, source-of-record tier.
	LayerSystem Layer = "system"
	// LayerBusiness is the business-rule transformed tier.
	LayerBusiness Layer = "business"
	// LayerRequirements is the consumption-ready mart tier.
	LayerRequirements Layer = "requirements"
)

// Ordered returns the canonical reload order of the layers.
func Ordered() []Layer {
	return []Layer{LayerSystem, LayerBusiness, LayerRequirements}
}

// DataDir is the storage directory segment for the layer.
func (l Layer) DataDir() string {
	return "data_according_to_" + string(l)
}

// Layout holds the branch identifier and the two roots every derived path is
// built from. Paths use forward slashes regardless of host OS because they
// address platform library locations, not local files exclusively.
type Layout struct {
	Branch      string
	StorageRoot string
	ScriptsRoot string
}

// New builds a Layout. The branch is not validated; an empty or malformed
// identifier propagates into the derived paths unchanged.
func New(branch, storageRoot, scriptsRoot string) Layout {
	return Layout{
		Branch:      branch,
		StorageRoot: storageRoot,
		ScriptsRoot: scriptsRoot,
	}
}

// StoragePath returns the QVD storage location for one layer:
//
//	{storage_root}/Analytical Data Storage System/QVD/{branch}/data_according_to_{layer}
func (lo Layout) StoragePath(l Layer) string {
	return fmt.Sprintf("%s/Analytical Data Storage System/QVD/%s/%s", lo.StorageRoot, lo.Branch, l.DataDir())
}

// ScriptBase returns the script repository root for the branch:
//
//	{scripts_root}/Analytical Data Storage System/{branch}/scripts
func (lo Layout) ScriptBase() string {
	return fmt.Sprintf("%s/Analytical Data Storage System/%s/scripts", lo.ScriptsRoot, lo.Branch)
}

// ScriptPath returns the location of a named stage script under ScriptBase.
func (lo Layout) ScriptPath(script string) string {
	return lo.ScriptBase() + "/" + script
}

// DataRoot returns the default landing location for source extracts, used by
// the script generator as the parquet read root.
func (lo Layout) DataRoot() string {
	return lo.StorageRoot + "/Analytical Data Storage System/data"
}
