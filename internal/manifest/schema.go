package manifest

import (
	"fmt"

	"github.com/reloadgrid/reloadgo/internal/layout"
)

// Roots represents the `reload` block. Either value may be omitted and
// supplied by CLI flags instead.
type Roots struct {
	StorageRoot string `hcl:"storage_root,optional"`
	ScriptsRoot string `hcl:"scripts_root,optional"`
}

// Stage represents a `stage` block: one layer of the reload, addressed by a
// script name resolved under the branch-scoped script base.
type Stage struct {
	Layer    string `hcl:"layer,label"`
	Script   string `hcl:"script"`
	Required bool   `hcl:"required,optional"`
}

// Model is the decoded manifest. Stages keep file order.
type Model struct {
	Reload *Roots   `hcl:"reload,block"`
	Stages []*Stage `hcl:"stage,block"`
}

// Default returns the built-in model: the three canonical layers in fixed
// order, with only the system layer marked required. The runner never
// hard-codes which layer is fatal; that policy lives here as data.
func Default() *Model {
	return &Model{
		Stages: []*Stage{
			{Layer: string(layout.LayerSystem), Script: "data_according_to_system.qvs", Required: true},
			{Layer: string(layout.LayerBusiness), Script: "data_according_to_business.qvs"},
			{Layer: string(layout.LayerRequirements), Script: "data_according_to_requirements.qvs"},
		},
	}
}

// Validate checks structural integrity of a decoded model.
func (m *Model) Validate() error {
	if len(m.Stages) == 0 {
		return fmt.Errorf("manifest defines no stages")
	}
	seen := make(map[string]bool, len(m.Stages))
	for _, s := range m.Stages {
		if s.Layer == "" {
			return fmt.Errorf("stage with empty layer label")
		}
		if seen[s.Layer] {
			return fmt.Errorf("duplicate stage layer %q", s.Layer)
		}
		seen[s.Layer] = true
		if s.Script == "" {
			return fmt.Errorf("stage %q has an empty script name", s.Layer)
		}
	}
	return nil
}
