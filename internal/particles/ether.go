package particles

import (
	"terraspiel/internal/assets"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

const (
	etherDriftSpread = 0.075
	etherMaxSpeed    = 0.5
)

// RunEther advances every ETHER particle one tick (spec §4.5.2): drift,
// wall bounce, and rule-driven deepening, which may write CRYSTAL and
// consume nearby ether particles. Dead particles are left in place;
// the caller filters life<=0 before and after each sub-pass (spec
// §4.5.1).
func RunEther(plane *world.Plane, particles []world.Particle, reg *assets.Registry, rng *core.RNG) {
	hash := BuildSpatialHash(particles, world.KindEther)

	for i := range particles {
		p := &particles[i]
		if p.Kind != world.KindEther || !p.Alive() {
			continue
		}

		p.VX = clamp(p.VX+rng.FloatRange(-etherDriftSpread, etherDriftSpread), -etherMaxSpeed, etherMaxSpeed)
		p.VY = clamp(p.VY+rng.FloatRange(-etherDriftSpread, etherDriftSpread), -etherMaxSpeed, etherMaxSpeed)
		p.PX += p.VX
		p.PY += p.VY

		bounceOffWalls(p, plane)

		cx, cy := int(p.PX), int(p.PY)
		if !plane.InBounds(cx, cy) {
			continue
		}
		cell, _, move := plane.At(cx, cy)

		for _, rule := range reg.ParticleByFrom[cell.Type] {
			if rule.Particle != "ETHER" {
				continue
			}
			if !rng.Chance(rule.Probability) {
				continue
			}

			if rule.ToIsCrystal {
				consumed := consumeMooreEther(particles, hash, cx, cy, float64(cx)+0.5, float64(cy)+0.5, p)
				crystalID, ok := reg.CrystalID()
				if !ok {
					break
				}
				newCell := world.Empty()
				newCell.Type = crystalID
				newCell.EtherStorage = consumed + 1
				plane.Set(cx, cy, newCell, pickColor(reg, crystalID, rng), move)
			} else {
				newCell := world.Empty()
				newCell.ResetOnTypeChange(rule.To)
				plane.Set(cx, cy, newCell, pickColor(reg, rule.To, rng), move)
			}

			p.Life = 0
			break
		}
	}
}

// bounceOffWalls inverts and halves the relevant velocity component and
// clamps position back inside bounds on wall contact (spec §4.5.2:
// "soft bounce").
func bounceOffWalls(p *world.Particle, plane *world.Plane) {
	if p.PX < 0 {
		p.PX = 0
		p.VX = -p.VX * 0.5
	} else if p.PX >= float64(plane.W) {
		p.PX = float64(plane.W) - 0.001
		p.VX = -p.VX * 0.5
	}
	if p.PY < 0 {
		p.PY = 0
		p.VY = -p.VY * 0.5
	} else if p.PY >= float64(plane.H) {
		p.PY = float64(plane.H) - 0.001
		p.VY = -p.VY * 0.5
	}
}

// consumeMooreEther kills every other ETHER particle in the 9-cell
// Moore block around (cx, cy) and returns how many were consumed (spec
// §4.5.2: "consume every other ETHER particle in the 9-cell Moore
// block... write CRYSTAL at the cell with ether_storage equal to the
// count consumed +1").
func consumeMooreEther(particles []world.Particle, hash *SpatialHash, cx, cy int, centerX, centerY float64, trigger *world.Particle) int {
	count := 0
	for _, idx := range hash.Moore(centerX, centerY) {
		other := &particles[idx]
		if other == trigger || !other.Alive() {
			continue
		}
		other.Life = 0
		count++
	}
	return count
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
