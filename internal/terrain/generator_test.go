package terrain

import (
	"testing"

	"terraspiel/internal/assets"
	"terraspiel/pkg/core"
)

// testRegistry builds a minimal element registry covering just the names
// DefaultConfig references, without pulling in terraspiel's full embedded
// asset set (which would import this package and create a cycle).
func testRegistry(t *testing.T) *assets.Registry {
	t.Helper()
	elements, err := assets.LoadElements([]byte(`[
		{"name": "EMPTY", "color": "#000000", "density": 0, "state": "gas"},
		{"name": "STONE", "color": "#808080", "density": 2.5, "state": "solid"},
		{"name": "SAND", "color": "#c2b280", "density": 1.6, "state": "solid"},
		{"name": "SOIL", "color": "#5a3d22", "density": 1.3, "state": "solid"},
		{"name": "FERTILE_SOIL", "color": "#3d2b1a", "density": 1.3, "state": "solid"},
		{"name": "CLAY", "color": "#b5a18a", "density": 1.8, "state": "solid"},
		{"name": "MUD", "color": "#4a3626", "density": 1.6, "state": "liquid",
		 "fluidity": {"resistance": 0.3, "spread": 0.2}},
		{"name": "WATER", "color": "#1e90ff", "density": 1.0, "state": "liquid",
		 "fluidity": {"resistance": 0.02, "spread": 0.9}},
		{"name": "CRYSTAL", "color": "#7fffd4", "density": 2.2, "state": "solid"},
		{"name": "RUBY", "color": "#e0115f", "density": 2.3, "state": "solid"},
		{"name": "PLANT", "color": "#2e8b2e", "density": 1.2, "state": "solid"}
	]`))
	if err != nil {
		t.Fatalf("LoadElements: %v", err)
	}
	return assets.Build(elements, assets.RuleSet{})
}

// TestGenerateFillsGridWithBedrock covers the bottom rows of any column
// settling into the rock band well below the deepest possible surface
// height, the one layering invariant that holds regardless of which
// biome/noise path a given seed takes.
func TestGenerateFillsGridWithBedrock(t *testing.T) {
	reg := testRegistry(t)
	rng := core.NewRNG(42)
	cfg := DefaultConfig()

	w, h := 24, 40
	grid := Generate(w, h, cfg, reg, rng)
	if len(grid) != w*h {
		t.Fatalf("expected a %d-cell grid, got %d", w*h, len(grid))
	}

	rockID, _ := reg.ID(cfg.RockName)
	oreID, _ := reg.ID(cfg.OreName)
	gemID, _ := reg.ID(cfg.GemName)
	bottomRow := h - 1
	sawRock := false
	for x := 0; x < w; x++ {
		id := grid[bottomRow*w+x]
		if id == rockID || id == oreID || id == gemID {
			sawRock = true
		}
	}
	if !sawRock {
		t.Fatal("expected the bottom row to be rock or a rock-band deposit in at least one column")
	}
}

// TestGenerateSkyIsEmpty covers the top row staying EMPTY: SurfaceMin
// clamps every column's surface to row 2 or lower, so nothing above the
// shallowest possible surface should ever be filled.
func TestGenerateSkyIsEmpty(t *testing.T) {
	reg := testRegistry(t)
	rng := core.NewRNG(7)
	cfg := DefaultConfig()

	w, h := 16, 40
	grid := Generate(w, h, cfg, reg, rng)
	baseID, _ := reg.ID(cfg.Base)
	for x := 0; x < w; x++ {
		if grid[x] != baseID {
			t.Fatalf("expected row 0 col %d to be Base, got element id %d", x, grid[x])
		}
	}
}

// TestGenerateZeroSizeIsEmptySlice covers the degenerate w/h<=0 guard.
func TestGenerateZeroSizeIsEmptySlice(t *testing.T) {
	reg := testRegistry(t)
	rng := core.NewRNG(1)
	cfg := DefaultConfig()

	if grid := Generate(0, 0, cfg, reg, rng); len(grid) != 0 {
		t.Fatalf("expected an empty grid for 0x0, got %d cells", len(grid))
	}
}

// TestClassifyBiomeThresholds covers the three-way split: hot+dry is
// desert, cold is snowland, everything else is forest.
func TestClassifyBiomeThresholds(t *testing.T) {
	cfg := DefaultConfig()

	if b := classifyBiome(0.9, -0.9, cfg); b != biomeDesert {
		t.Fatalf("expected hot+dry to classify as desert, got %v", b)
	}
	if b := classifyBiome(-0.9, 0, cfg); b != biomeSnowland {
		t.Fatalf("expected cold to classify as snowland, got %v", b)
	}
	if b := classifyBiome(0, 0, cfg); b != biomeForest {
		t.Fatalf("expected temperate/average to classify as forest, got %v", b)
	}
}
