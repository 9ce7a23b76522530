// Package particles implements Passes 4-6 of the tick scheduler (spec
// §4.5): ether drift/deepening, thunder ballistics/explosions, and fire
// spread/ignition. Ether's spatial hash is grounded on
// olivierh59500-particle-life-go's integer-cell Bin binning, generalized
// from that example's single global particle-life pass to a rebuild
// performed once per tick scoped to ETHER particles only.
package particles

import "terraspiel/internal/world"

// SpatialHash buckets particle indices by integer cell coordinate,
// rebuilt fresh each tick (spec §4.5.2: "rebuilt per tick").
type SpatialHash struct {
	buckets map[[2]int][]int
}

// BuildSpatialHash indexes every particle in ps matching kind by its
// floored (px, py).
func BuildSpatialHash(ps []world.Particle, kind world.Kind) *SpatialHash {
	h := &SpatialHash{buckets: make(map[[2]int][]int)}
	for i, p := range ps {
		if p.Kind != kind {
			continue
		}
		key := cellKey(p.PX, p.PY)
		h.buckets[key] = append(h.buckets[key], i)
	}
	return h
}

// Moore returns the indices of every particle in the 9-cell Moore block
// centred on (px, py).
func (h *SpatialHash) Moore(px, py float64) []int {
	cx, cy := int(px), int(py)
	var out []int
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if bucket, ok := h.buckets[[2]int{cx + dx, cy + dy}]; ok {
				out = append(out, bucket...)
			}
		}
	}
	return out
}

func cellKey(px, py float64) [2]int {
	return [2]int{int(px), int(py)}
}
