package particles

import (
	"terraspiel/internal/assets"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

// ThunderResult carries what Pass 5 (Thunder) produced for the
// scheduler to merge into the pending-particle list.
type ThunderResult struct {
	Spawned []world.Particle
}

// WaterExplosionRadiusMin/Max bound the scatter radius rolled when a
// THUNDER particle detonates over WATER; IgniteExplosionRadiusMin/Max
// bound it when detonating over a flammable cell instead (spec §4.5.3).
// Exported as package vars rather than inline literals so
// World.SetIntParameter can tune them from the HUD (spec §6's parameter
// control surface).
var (
	WaterExplosionRadiusMin = 1
	WaterExplosionRadiusMax = 2

	IgniteExplosionRadiusMin = 1
	IgniteExplosionRadiusMax = 3
)

// RunThunder advances every THUNDER particle one tick (spec §4.5.3):
// ballistic motion, death on any wall, explosion over WATER, and
// ignition-with-explosion over a flammable cell.
func RunThunder(plane *world.Plane, particles []world.Particle, reg *assets.Registry, rng *core.RNG) *ThunderResult {
	res := &ThunderResult{}
	waterID, hasWater := reg.ID("WATER")

	for i := range particles {
		p := &particles[i]
		if p.Kind != world.KindThunder || !p.Alive() {
			continue
		}

		p.VX = clamp(p.VX+rng.FloatRange(-0.75, 0.75), -2, 2)
		p.VY = clamp(p.VY+0.1, -1, 4)
		p.PX += p.VX
		p.PY += p.VY

		if p.PX < 0 || p.PX >= float64(plane.W) || p.PY < 0 || p.PY >= float64(plane.H) {
			p.Life = 0
			continue
		}

		cx, cy := int(p.PX), int(p.PY)
		cell, _, _ := plane.At(cx, cy)

		if hasWater && cell.Type == waterID {
			res.Spawned = append(res.Spawned, Explode(plane, cx, cy, rng.IntRange(WaterExplosionRadiusMin, WaterExplosionRadiusMax), reg, rng)...)
			p.Life = 0
			continue
		}

		if reg.Element(cell.Type).IsFlammable && rng.Chance(0.5) {
			fireID, ok := reg.ID("FIRE")
			if ok {
				newCell := world.Empty()
				newCell.ResetOnTypeChange(fireID)
				plane.Set(cx, cy, newCell, pickColor(reg, fireID, rng), world.DirNone)
			}
			res.Spawned = append(res.Spawned, Explode(plane, cx, cy, rng.IntRange(IgniteExplosionRadiusMin, IgniteExplosionRadiusMax), reg, rng)...)
			p.Life = 0
			continue
		}
	}

	return res
}
