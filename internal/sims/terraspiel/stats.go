package terraspiel

// Stats is a per-kind census of the world, recomputed from scratch each
// tick (spec §4.1: "recomputed from scratch each tick (no incremental
// accounting)").
type Stats struct {
	CellCounts     map[string]int
	ParticleCounts map[string]int
}

// Stats returns the most recently computed census snapshot.
func (w *World) Stats() Stats { return w.stats }

func (w *World) recomputeStats() {
	cellCounts := make(map[string]int, w.reg.Len())
	for _, c := range w.buffers.Front.Cells {
		cellCounts[w.reg.Name(c.Type)]++
	}

	particleCounts := make(map[string]int, 4)
	for _, p := range w.particles {
		particleCounts[p.TypeName(w.reg)]++
	}

	w.stats = Stats{CellCounts: cellCounts, ParticleCounts: particleCounts}
}
