package terraspiel

import "terraspiel/internal/core"

// init registers the terraspiel factory with the core.Sim registry
// (spec §6), the same pattern the teacher's internal/sims/ecology used
// for its own World type, so cmd/ca's -sim= flag can select it.
func init() {
	core.Register("terraspiel", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
