package transform

import (
	"image/color"

	"terraspiel/internal/assets"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

// IndependentEtherChance is the fixed per-cell chance of an ETHER
// emission independent of any matched rule (spec §4.4: "Independently
// of the rule, with fixed probability ≈0.001 emit one ETHER particle").
// Exported as a package var rather than a const so World.SetFloatParameter
// can tune it from the HUD (spec §6's parameter control surface).
var IndependentEtherChance = 0.001

// Spawns collects particles the Transformation pass emits; the
// scheduler appends these to the world's pending-particle list.
type Spawns struct {
	Particles []world.Particle
}

func (s *Spawns) add(p world.Particle) {
	p.ID = world.PendingID
	s.Particles = append(s.Particles, p)
}

// Run executes the Pass 2 Transformation Pass over plane, operating
// entirely on the write buffer. It scans rows top to bottom and each
// row left to right on every tick; it does not follow Pass 1's
// bottom-up, alternating-direction order. It matches each cell's first
// satisfied rule, rolls probability/threshold, commits transformations,
// and rolls the independent ETHER emission.
func Run(plane *world.Plane, reg *assets.Registry, rng *core.RNG) *Spawns {
	spawns := &Spawns{}

	for y := 0; y < plane.H; y++ {
		for x := 0; x < plane.W; x++ {
			cell, col, move := plane.At(x, y)
			if cell.Type == assets.EmptyID {
				continue
			}

			rules := reg.ByFrom[cell.Type]
			matched := false
			for _, rule := range rules {
				if !evaluate(plane, x, y, reg, rule) {
					continue
				}
				matched = true
				cell, col, move = applyRule(plane, x, y, cell, col, move, reg, rng, rule, spawns)
				break
			}

			if !matched && cell.Counter != 0 {
				cell.Counter = 0
			}

			if rng.Chance(IndependentEtherChance) {
				spawns.add(world.Particle{
					PX: float64(x) + 0.5, PY: float64(y) + 0.5,
					VX: rng.FloatRange(-0.1, 0.1), VY: rng.FloatRange(-0.1, 0.1),
					Kind: world.KindEther,
					Life: 150,
				})
			}

			plane.Set(x, y, cell, col, move)
		}
	}

	return spawns
}

// applyRule rolls a matched rule's probability and, on threshold,
// commits the transformation (spec §4.4).
func applyRule(plane *world.Plane, x, y int, cell world.Cell, col color.RGBA, move world.Direction,
	reg *assets.Registry, rng *core.RNG, rule assets.Rule, spawns *Spawns) (world.Cell, color.RGBA, world.Direction) {

	if !rng.Chance(rule.Probability) {
		return cell, col, move
	}

	cell.Counter++
	if cell.Counter < rule.Threshold {
		return cell, col, move
	}

	if rule.HasConsumes {
		consumeNeighbor(plane, x, y, rule.Consumes, rng)
	}

	cell.ResetOnTypeChange(rule.To)
	col = pickEngineColor(reg, rule.To, rng)

	if rule.To == elementNamed(reg, "PLANT") {
		if above, ok := plane2At(plane, x, y-1); ok && above.Type == assets.EmptyID {
			cell.PlantMode = world.PlantModeGroundCover
		} else {
			cell.PlantMode = world.PlantModeStem
		}
		cell.Counter = 0
		cell.DecayCounter = 0
	}

	if rule.SpawnParticle != "" {
		spawns.add(spawnFromName(rule.SpawnParticle, reg, x, y, rng))
	}

	return cell, col, world.DirNone
}

// consumeNeighbor searches the Moore neighbourhood in shuffled order for
// a cell of the given type and rewrites the first match to EMPTY (spec
// §4.4).
func consumeNeighbor(plane *world.Plane, x, y int, consumes assets.ElementID, rng *core.RNG) {
	offsets := [8][2]int{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	for i := len(offsets) - 1; i > 0; i-- {
		j := rng.IntRange(0, i)
		offsets[i], offsets[j] = offsets[j], offsets[i]
	}
	for _, off := range offsets {
		nx, ny := x+off[0], y+off[1]
		if !plane.InBounds(nx, ny) {
			continue
		}
		cell, _, _ := plane.At(nx, ny)
		if cell.Type == consumes {
			plane.Set(nx, ny, world.Empty(), color.RGBA{}, world.DirNone)
			return
		}
	}
}

func plane2At(plane *world.Plane, x, y int) (world.Cell, bool) {
	if !plane.InBounds(x, y) {
		return world.Cell{}, false
	}
	cell, _, _ := plane.At(x, y)
	return cell, true
}

func elementNamed(reg *assets.Registry, name string) assets.ElementID {
	id, _ := reg.ID(name)
	return id
}

func pickEngineColor(reg *assets.Registry, id assets.ElementID, rng *core.RNG) color.RGBA {
	palette := reg.Palette(id)
	if len(palette) == 0 {
		return reg.Element(id).Color
	}
	if len(palette) == 1 {
		return palette[0]
	}
	return palette[rng.IntRange(0, len(palette)-1)]
}

// spawnFromName builds a particle of the named kind at (x, y)'s centre
// with small random velocity and life=150 (spec §4.4: "emit it from the
// cell centre with small random velocity and life=150").
func spawnFromName(name string, reg *assets.Registry, x, y int, rng *core.RNG) world.Particle {
	p := world.Particle{
		PX: float64(x) + 0.5, PY: float64(y) + 0.5,
		VX: rng.FloatRange(-0.3, 0.3), VY: rng.FloatRange(-0.3, 0.3),
		Life: 150,
	}
	switch name {
	case "ETHER":
		p.Kind = world.KindEther
	case "THUNDER":
		p.Kind = world.KindThunder
	case "FIRE":
		p.Kind = world.KindFire
	default:
		p.Kind = world.KindMaterial
		p.Material = elementNamed(reg, name)
	}
	return p
}
