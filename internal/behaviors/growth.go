package behaviors

import (
	"image/color"

	"terraspiel/internal/assets"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

// Growth decay/ageing bases (spec §4.3.5): "~500*(0.8+0.4*xi)" and
// "~2000*(0.8+0.4*xi)" where xi is uniform noise.
const (
	witherThresholdBase = 500
	oilThresholdBase    = 2000

	stemGrowthThreshold     = 100
	stemGrowChance          = 0.1
	leafChance              = 0.2
	flowerChance            = 0.05
	groundCoverSpreadChance = 0.3
)

// witheredTint is blended into a dying plant's own colour rather than
// replaced with a flat brown, so withered stems/ground-cover keep a hint
// of whatever palette variation they grew with (spec §3's part_colors,
// §4.3.5's withered transition).
var witheredTint = color.RGBA{R: 92, G: 64, B: 32, A: 255}

const witheredTintWeight = 0.55

// randomizedThreshold returns base*(0.8+0.4*xi) with xi ~ U[0,1).
func randomizedThreshold(base float64, rng *core.RNG) int {
	xi := rng.FloatRange(0, 1)
	return int(base * (0.8 + 0.4*xi))
}

// growthNames bundles the element ids the Growth pass needs, resolved
// once per tick rather than per cell.
type growthNames struct {
	plant, oil, leaf, flower assets.ElementID
	hasLeaf, hasFlower, hasOil bool
}

func resolveGrowthNames(reg *assets.Registry) growthNames {
	var n growthNames
	n.plant, _ = reg.ID("PLANT")
	n.oil, n.hasOil = reg.ID("OIL")
	n.leaf, n.hasLeaf = reg.ID("LEAF")
	n.flower, n.hasFlower = reg.ID("FLOWER")
	return n
}

// Growth runs the Plant-Growth pass (spec §4.3.5): a single nested scan
// in natural order, operating purely on the write buffer, applied after
// the Movement and Transformation passes have already settled it for
// this tick.
func Growth(plane *world.Plane, reg *assets.Registry, rng *core.RNG) {
	names := resolveGrowthNames(reg)
	if names.plant == assets.EmptyID {
		return
	}

	for y := 0; y < plane.H; y++ {
		for x := 0; x < plane.W; x++ {
			cell, _, _ := plane.At(x, y)
			if cell.Type != names.plant {
				continue
			}
			switch cell.PlantMode {
			case world.PlantModeStem, world.PlantModeGroundCover:
				growLiving(plane, x, y, names, reg, rng)
			case world.PlantModeWithered:
				growWithered(plane, x, y, names, reg, rng)
			}
		}
	}
}

func growLiving(plane *world.Plane, x, y int, names growthNames, reg *assets.Registry, rng *core.RNG) {
	cell, col, move := plane.At(x, y)

	cell.DecayCounter++
	if cell.DecayCounter >= randomizedThreshold(witherThresholdBase, rng) {
		cell.PlantMode = world.PlantModeWithered
		cell.DecayCounter = 0
		plane.Set(x, y, cell, assets.BlendTint(col, witheredTint, witheredTintWeight), move)
		return
	}

	if cell.PlantMode == world.PlantModeGroundCover {
		if rng.Chance(groundCoverSpreadChance) {
			spreadGroundCover(plane, x, y, cell, col, rng)
		}
		plane.Set(x, y, cell, col, move)
		return
	}

	cell.Counter++
	if cell.Counter >= stemGrowthThreshold {
		cell.Counter = 0
		if rng.Chance(stemGrowChance) {
			growInto(plane, x, y-1, names.plant, world.PlantModeStem, reg, rng)
		}
		if names.hasLeaf {
			if rng.Chance(leafChance) {
				growInto(plane, x-1, y, names.leaf, world.PlantModeLeaf, reg, rng)
			}
			if rng.Chance(leafChance) {
				growInto(plane, x+1, y, names.leaf, world.PlantModeLeaf, reg, rng)
			}
		}
		if names.hasFlower {
			if rng.Chance(flowerChance) {
				growInto(plane, x-1, y, names.flower, world.PlantModeFlower, reg, rng)
			}
			if rng.Chance(flowerChance) {
				growInto(plane, x+1, y, names.flower, world.PlantModeFlower, reg, rng)
			}
		}
	}
	plane.Set(x, y, cell, col, move)
}

func growWithered(plane *world.Plane, x, y int, names growthNames, reg *assets.Registry, rng *core.RNG) {
	cell, col, move := plane.At(x, y)
	cell.OilCounter++
	if names.hasOil && cell.OilCounter >= randomizedThreshold(oilThresholdBase, rng) {
		cell.ResetOnTypeChange(names.oil)
		plane.Set(x, y, cell, pickColor(reg, names.oil, rng), world.DirNone)
		return
	}
	plane.Set(x, y, cell, col, move)
}

func growInto(plane *world.Plane, x, y int, id assets.ElementID, mode world.PlantMode, reg *assets.Registry, rng *core.RNG) {
	if !plane.InBounds(x, y) {
		return
	}
	existing, _, _ := plane.At(x, y)
	if existing.Type != assets.EmptyID {
		return
	}
	cell := freshCell(id)
	cell.PlantMode = mode
	plane.Set(x, y, cell, pickColor(reg, id, rng), world.DirNone)
}

// spreadGroundCover extends ground-cover laterally onto an EMPTY cell
// whose neighbour below is non-empty (spec §4.3.5).
func spreadGroundCover(plane *world.Plane, x, y int, cell world.Cell, col color.RGBA, rng *core.RNG) {
	for _, dx := range []int{-1, 1} {
		nx := x + dx
		if !plane.InBounds(nx, y) {
			continue
		}
		target, _, _ := plane.At(nx, y)
		if target.Type != assets.EmptyID {
			continue
		}
		if !plane.InBounds(nx, y+1) {
			continue
		}
		belowCell, _, _ := plane.At(nx, y+1)
		if belowCell.Type == assets.EmptyID {
			continue
		}
		newCell := freshCell(cell.Type)
		newCell.PlantMode = world.PlantModeGroundCover
		plane.Set(nx, y, newCell, col, world.DirNone)
		return
	}
}
