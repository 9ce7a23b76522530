package terraspiel

import (
	"fmt"
	"image/color"

	"terraspiel/internal/assets"
	"terraspiel/internal/terrain"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

// Place writes an element into an EMPTY cell at (x, y) in both buffers
// so the placement survives an in-flight tick (spec §4.1: "writes to
// BOTH buffers"). Placement on a non-empty cell is a silent no-op (spec
// §4.1 "Failure semantics").
func (w *World) Place(x, y int, elementName string) error {
	id, ok := w.reg.ID(elementName)
	if !ok {
		return &assets.UnknownElementError{Name: elementName, Context: "Place"}
	}
	if !w.buffers.Front.InBounds(x, y) {
		return fmt.Errorf("terraspiel: (%d,%d) out of bounds for %dx%d grid", x, y, w.w, w.h)
	}

	existing, _, _ := w.buffers.Front.At(x, y)
	if existing.Type != assets.EmptyID {
		return nil // silent no-op per spec §4.1
	}

	cell := world.Empty()
	cell.Type = id
	col := w.pickColor(id)

	w.buffers.Front.Set(x, y, cell, col, world.DirNone)
	w.buffers.Back.Set(x, y, cell, col, world.DirNone)
	return nil
}

// Clear resets both buffers to all-EMPTY (spec §4.1).
func (w *World) Clear() {
	w.buffers.Clear()
	w.particles = nil
	w.recomputeStats()
}

// Randomize reseeds the RNG, regenerates terrain, and recomputes
// colours and stats (spec §4.1: "randomise invokes the terrain
// generator, then recomputes colours and stats").
func (w *World) Randomize(seed int64) {
	w.rng = core.NewRNG(seed)
	w.particles = nil

	grid := terrain.Generate(w.w, w.h, w.terrainCfg, w.reg, w.rng)
	for i, id := range grid {
		x, y := i%w.w, i/w.w
		cell := world.Empty()
		cell.Type = id
		col := w.pickColor(id)
		w.buffers.Front.Set(x, y, cell, col, world.DirNone)
		w.buffers.Back.Set(x, y, cell, col, world.DirNone)
	}

	w.recomputeStats()
}

func (w *World) pickColor(id assets.ElementID) color.RGBA {
	palette := w.reg.Palette(id)
	if len(palette) == 0 {
		return w.reg.Element(id).Color
	}
	if len(palette) == 1 {
		return palette[0]
	}
	return palette[w.rng.IntRange(0, len(palette)-1)]
}
