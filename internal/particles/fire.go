package particles

import (
	"image/color"

	"terraspiel/internal/assets"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

// FireIgniteChance is the per-tick chance a live FIRE particle ignites
// a flammable Moore neighbour (spec §4.5.4). Exported as a package var
// rather than a const so World.SetFloatParameter can tune it from the
// HUD (spec §6's parameter control surface).
var FireIgniteChance = 0.15

// scorchTint darkens a cell's own palette colour when fire retypes it
// into something other than FIRE (SOIL->SAND, CLAY->STONE, etc.), so the
// result reads as scorched material rather than a fresh grain of the
// target element (spec §3's part_colors, §4.5.4's transformation table).
var scorchTint = color.RGBA{R: 30, G: 26, B: 22, A: 255}

const scorchTintWeight = 0.35

// fireTransform is the hardcoded fire-transformation table
// (spec §4.5.4): "SOIL->SAND, CLAY->STONE, STONE->MAGMA, SAND->MAGMA,
// PLANT/OIL/PEAT/FERTILE_SOIL->FIRE". It is intentionally hardcoded
// logic rather than data-driven — spec §9 resolves the fire model in
// favour of the particle-based design and keeps this table fixed.
var fireTransform = map[string]string{
	"SOIL":         "SAND",
	"CLAY":         "STONE",
	"STONE":        "MAGMA",
	"SAND":         "MAGMA",
	"PLANT":        "FIRE",
	"OIL":          "FIRE",
	"PEAT":         "FIRE",
	"FERTILE_SOIL": "FIRE",
}

// FireResult carries particles the Fire pass spawns (ignition spread
// and death-spread) for the scheduler to merge.
type FireResult struct {
	Spawned []world.Particle
}

// RunFire advances every FIRE particle one tick (spec §4.5.4):
// life decrement, CRYSTAL->RUBY adjacency, water-adjacency extinguish,
// ignition of a random flammable Moore neighbour, and on death, applying
// the transformation table to the cell it sits on plus a chance to
// spread.
func RunFire(plane *world.Plane, particles []world.Particle, reg *assets.Registry, rng *core.RNG) *FireResult {
	res := &FireResult{}
	crystalID, hasCrystal := reg.ID("CRYSTAL")
	rubyID, hasRuby := reg.ID("RUBY")
	waterID, hasWater := reg.ID("WATER")

	for i := range particles {
		p := &particles[i]
		if p.Kind != world.KindFire || !p.Alive() {
			continue
		}

		p.Life--

		cx, cy := int(p.PX), int(p.PY)
		if !plane.InBounds(cx, cy) {
			p.Life = 0
			continue
		}

		if hasCrystal && hasRuby && mooreHasType(plane, cx, cy, crystalID) {
			convertAdjacent(plane, cx, cy, crystalID, rubyID, reg, rng)
			p.Life = 0
			continue
		}

		if hasWater && mooreHasType(plane, cx, cy, waterID) {
			p.Life = 0
			continue
		}

		if !p.Alive() {
			igniteTarget(plane, cx, cy, reg, rng, res)
			continue
		}

		cell, _, _ := plane.At(cx, cy)
		if reg.Element(cell.Type).IsFlammable && rng.Chance(FireIgniteChance) {
			igniteRandomFlammableNeighbor(plane, cx, cy, reg, rng, res)
		}
	}

	return res
}

func mooreHasType(plane *world.Plane, x, y int, id assets.ElementID) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !plane.InBounds(nx, ny) {
				continue
			}
			cell, _, _ := plane.At(nx, ny)
			if cell.Type == id {
				return true
			}
		}
	}
	return false
}

func convertAdjacent(plane *world.Plane, x, y int, from, to assets.ElementID, reg *assets.Registry, rng *core.RNG) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !plane.InBounds(nx, ny) {
				continue
			}
			cell, _, move := plane.At(nx, ny)
			if cell.Type != from {
				continue
			}
			cell.ResetOnTypeChange(to)
			plane.Set(nx, ny, cell, pickColor(reg, to, rng), move)
			return
		}
	}
}

// igniteRandomFlammableNeighbor ignites a random flammable Moore
// neighbour using the fire-transformation table (spec §4.5.4).
func igniteRandomFlammableNeighbor(plane *world.Plane, x, y int, reg *assets.Registry, rng *core.RNG, res *FireResult) {
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
		el := reg.Element(cell.Type)
		if !el.IsFlammable {
			continue
		}
		applyFireTransform(plane, nx, ny, cell, el, reg, rng, res)
		return
	}
}

// igniteTarget applies the fire-transformation table to the cell a
// dying particle sits on, then with probability 0.65 spreads to a
// flammable neighbour (spec §4.5.4: "On life reaching zero...").
func igniteTarget(plane *world.Plane, x, y int, reg *assets.Registry, rng *core.RNG, res *FireResult) {
	cell, _, _ := plane.At(x, y)
	el := reg.Element(cell.Type)
	applyFireTransform(plane, x, y, cell, el, reg, rng, res)

	if rng.Chance(0.65) {
		igniteRandomFlammableNeighbor(plane, x, y, reg, rng, res)
	}
}

// applyFireTransform converts cell at (x, y) per the fire-transformation
// table. A "->FIRE" entry replaces the target with EMPTY and spawns a
// fresh FIRE particle there with life in [80,120]; other entries simply
// retype the cell.
func applyFireTransform(plane *world.Plane, x, y int, cell world.Cell, el assets.Element, reg *assets.Registry, rng *core.RNG, res *FireResult) {
	to, ok := fireTransform[el.Name]
	if !ok {
		return
	}

	if to == "FIRE" {
		plane.Set(x, y, world.Empty(), color.RGBA{}, world.DirNone)
		res.Spawned = append(res.Spawned, world.Particle{
			PX: float64(x) + 0.5, PY: float64(y) + 0.5,
			VX: rng.FloatRange(-0.2, 0.2), VY: rng.FloatRange(-0.2, 0.2),
			Kind: world.KindFire,
			Life: rng.IntRange(80, 120),
		})
		return
	}

	toID, ok := reg.ID(to)
	if !ok {
		return
	}
	cell.ResetOnTypeChange(toID)
	scorched := assets.BlendTint(pickColor(reg, toID, rng), scorchTint, scorchTintWeight)
	plane.Set(x, y, cell, scorched, world.DirNone)
}
