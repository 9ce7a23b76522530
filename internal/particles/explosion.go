package particles

import (
	"image/color"
	"math"

	"terraspiel/internal/assets"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

// scatterAllowed is the fixed set of element names an explosion may
// convert to free particles (spec §4.5.3: "soil, sand, water, mud,
// peat, fertile soil, clay, fire, plant, seed, oil").
var scatterAllowed = map[string]bool{
	"SOIL": true, "SAND": true, "WATER": true, "MUD": true,
	"PEAT": true, "FERTILE_SOIL": true, "CLAY": true, "FIRE": true,
	"PLANT": true, "SEED": true, "OIL": true,
}

// Explode converts scatter-eligible cells within radius of (cx, cy) to
// free material particles with probability 1 - d/radius, falling off
// linearly with the distance d from the centre (spec §4.5.3's
// "Explosion" paragraph).
func Explode(plane *world.Plane, cx, cy, radius int, reg *assets.Registry, rng *core.RNG) []world.Particle {
	if radius <= 0 {
		radius = 1
	}
	var spawned []world.Particle

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			if d > float64(radius) {
				continue
			}
			x, y := cx+dx, cy+dy
			if !plane.InBounds(x, y) {
				continue
			}
			cell, _, _ := plane.At(x, y)
			if cell.Type == assets.EmptyID {
				continue
			}
			name := reg.Name(cell.Type)
			if !scatterAllowed[name] {
				continue
			}

			factor := 1 - d/float64(radius)
			if !rng.Chance(factor) {
				continue
			}

			plane.Set(x, y, world.Empty(), color.RGBA{}, world.DirNone)

			vx, vy := float64(dx), float64(dy)
			if d > 0 {
				vx, vy = vx/d, vy/d
			}
			spawned = append(spawned, world.Particle{
				PX: float64(x) + 0.5, PY: float64(y) + 0.5,
				VX: vx * factor, VY: vy * factor,
				Kind:     world.KindMaterial,
				Material: cell.Type,
				Life:     100,
			})
		}
	}

	return spawned
}
