package behaviors

import (
	"image/color"

	"terraspiel/internal/assets"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

// freshCell returns a zeroed cell of the given type, as if it had just
// been placed (spec §3: scalars default to zero/unset for a fresh
// cell).
func freshCell(id assets.ElementID) world.Cell {
	c := world.Empty()
	c.Type = id
	return c
}

// pickColor draws a random entry from id's colour-variation palette, or
// its single base colour when it has no variation (spec §4.1).
func pickColor(reg *assets.Registry, id assets.ElementID, rng *core.RNG) color.RGBA {
	palette := reg.Palette(id)
	if len(palette) == 0 {
		return reg.Element(id).Color
	}
	if len(palette) == 1 {
		return palette[0]
	}
	return palette[rng.IntRange(0, len(palette)-1)]
}

// mooreOffsetsShuffled returns the 8 Moore neighbour offsets in a
// random order, for picking a single eligible neighbour without
// directional bias. Nothing in this package calls it; the
// transformation engine's consumeNeighbor carries its own copy of the
// shuffle.
func mooreOffsetsShuffled(rng *core.RNG) [8][2]int {
	offs := [8][2]int{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	for i := len(offs) - 1; i > 0; i-- {
		j := rng.IntRange(0, i)
		offs[i], offs[j] = offs[j], offs[i]
	}
	return offs
}
