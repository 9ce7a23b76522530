package particles

import (
	"image/color"

	"terraspiel/internal/assets"
	"terraspiel/pkg/core"
)

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
