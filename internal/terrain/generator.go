// Package terrain is the boundary collaborator spec §3 describes as a
// "seeded world-initialiser": the core consumes the grid it produces but
// treats its internals as opaque. Its noise/biome structure is grounded
// on original_source/src/core/generation.rs: per-column surface height,
// temperature/precipitation-driven biome classification, depth-banded
// rock/ore layering, and region-gated cave carving, all rolled from
// hand-rolled sine noise (see noise.go) since nothing in the example pack
// pulls in a simplex/Perlin library. The original's Dirt/Sand/Gold/Iron/
// Copper/HardIce material set has no counterpart in this registry, so
// each biome instead picks among the actual loaded elements.
package terrain

import (
	"terraspiel/internal/assets"
	"terraspiel/pkg/core"
)

// Config controls how Generate seeds a fresh grid (spec §4.1
// "randomize(seed) — ... invokes the terrain generator").
type Config struct {
	// Base is the element every above-surface (sky) cell gets. EMPTY by
	// default.
	Base string

	// Per-biome surface and subsoil element names.
	ForestSurface, ForestSubsoil string
	DesertSurface, DesertSubsoil string
	SnowSurface, SnowSubsoil     string

	// RockName is the bedrock element filling everything below the
	// subsoil band.
	RockName string

	// OreName/GemName are rare deposits sprinkled into the subsoil and
	// rock bands respectively; GemName only appears below GemMinDepth
	// cells into the rock band. WaterName seeds rare underground
	// pockets, both inside carved caves and as isolated veins.
	OreName, GemName, WaterName string
	OreChance, GemChance        float64
	GemMinDepth                 int
	WaterVeinChance             float64

	// PlantName is seeded one cell above the surface at a per-biome
	// chance (PlantChanceForest/Desert/Snow).
	PlantName                                        string
	PlantChanceForest, PlantChanceDesert, PlantChanceSnow float64

	// Surface height noise.
	SurfaceScale, SurfaceAmplitude float64
	SurfaceBaseFrac                float64 // fraction of h used as the base surface row
	SurfaceMin                     int     // minimum row the surface may reach
	SurfaceMaxMargin                int     // rows kept clear at the bottom of the grid

	// RockLayerDepthMin/Max bound how many cells of subsoil separate the
	// surface from the rock band, rolled per column.
	RockLayerDepthMin, RockLayerDepthMax int

	// Cave carving: a region noise field gates where a finer primary
	// noise field, thresholded into [CaveThresholdLow, CaveThresholdHigh],
	// actually hollows out rock/subsoil into Base (or, rarely, WaterName).
	MinCaveDepth                          int
	CaveRegionScale, CaveRegionThreshold  float64
	CaveScale, CaveThresholdLow, CaveThresholdHigh float64
	CaveWaterChance                       float64

	// Biome classification noise.
	TemperatureScale, PrecipitationScale                         float64
	DesertTempThreshold, DesertPrecipThreshold, SnowTempThreshold float64
}

// DefaultConfig returns Terraspiel's default terrain recipe: noise-driven
// forest/desert/snowland biomes over a STONE bedrock, with rare CRYSTAL/
// RUBY deposits, occasional buried WATER, carved caves, and PLANT seeds
// on forest/snowland surfaces.
func DefaultConfig() Config {
	return Config{
		Base: "EMPTY",

		ForestSurface: "FERTILE_SOIL", ForestSubsoil: "SOIL",
		DesertSurface: "SAND", DesertSubsoil: "SAND",
		SnowSurface: "CLAY", SnowSubsoil: "MUD",

		RockName: "STONE",

		OreName: "CRYSTAL", GemName: "RUBY", WaterName: "WATER",
		OreChance: 0.01, GemChance: 0.004, GemMinDepth: 20,
		WaterVeinChance: 0.0015,

		PlantName:         "PLANT",
		PlantChanceForest: 0.35, PlantChanceDesert: 0.02, PlantChanceSnow: 0.05,

		SurfaceScale: 0.06, SurfaceAmplitude: 6,
		SurfaceBaseFrac: 0.35, SurfaceMin: 2, SurfaceMaxMargin: 20,

		RockLayerDepthMin: 8, RockLayerDepthMax: 16,

		MinCaveDepth:       6,
		CaveRegionScale:    0.05, CaveRegionThreshold: 0.05,
		CaveScale:          0.14, CaveThresholdLow: -0.15, CaveThresholdHigh: 0.15,
		CaveWaterChance:    0.05,

		TemperatureScale: 0.04, PrecipitationScale: 0.05,
		DesertTempThreshold: 0.25, DesertPrecipThreshold: -0.3, SnowTempThreshold: -0.35,
	}
}

// Generate fills a w*h row-major ElementID buffer according to cfg, using
// rng for every stochastic decision (spec §5: one PRNG per world) and
// fieldNoise for the spatial structure (surface height, biome, caves).
func Generate(w, h int, cfg Config, reg *assets.Registry, rng *core.RNG) []assets.ElementID {
	grid := make([]assets.ElementID, w*h)
	if w <= 0 || h <= 0 {
		return grid
	}

	baseID, _ := reg.ID(cfg.Base)
	rockID, hasRock := reg.ID(cfg.RockName)
	if !hasRock {
		rockID = baseID
	}
	oreID, hasOre := reg.ID(cfg.OreName)
	gemID, hasGem := reg.ID(cfg.GemName)
	waterID, hasWater := reg.ID(cfg.WaterName)
	plantID, hasPlant := reg.ID(cfg.PlantName)

	surfaceByBiome := map[biome]assets.ElementID{}
	subsoilByBiome := map[biome]assets.ElementID{}
	for b, name := range map[biome]string{biomeForest: cfg.ForestSurface, biomeDesert: cfg.DesertSurface, biomeSnowland: cfg.SnowSurface} {
		if id, ok := reg.ID(name); ok {
			surfaceByBiome[b] = id
		} else {
			surfaceByBiome[b] = rockID
		}
	}
	for b, name := range map[biome]string{biomeForest: cfg.ForestSubsoil, biomeDesert: cfg.DesertSubsoil, biomeSnowland: cfg.SnowSubsoil} {
		if id, ok := reg.ID(name); ok {
			subsoilByBiome[b] = id
		} else {
			subsoilByBiome[b] = rockID
		}
	}

	// Independent noise fields, decorrelated by offsetting each one into
	// a different part of the noise domain (generation.rs seeds a fresh
	// OpenSimplex per concern; fieldNoise stands in for all of them).
	surfOffX, surfOffY := rng.FloatRange(0, 1e4), rng.FloatRange(0, 1e4)
	tempOffX, tempOffY := rng.FloatRange(0, 1e4), rng.FloatRange(0, 1e4)
	precipOffX, precipOffY := rng.FloatRange(0, 1e4), rng.FloatRange(0, 1e4)
	caveRegionOffX, caveRegionOffY := rng.FloatRange(0, 1e4), rng.FloatRange(0, 1e4)
	cavePrimaryOffX, cavePrimaryOffY := rng.FloatRange(0, 1e4), rng.FloatRange(0, 1e4)

	baseSurfaceY := int(float64(h) * cfg.SurfaceBaseFrac)
	maxSurfaceY := h - cfg.SurfaceMaxMargin
	if maxSurfaceY < cfg.SurfaceMin {
		maxSurfaceY = cfg.SurfaceMin
	}

	surfaceYs := make([]int, w)
	biomes := make([]biome, w)

	for x := 0; x < w; x++ {
		surfaceNoise := fieldNoise(float64(x)*cfg.SurfaceScale, 0, surfOffX, surfOffY)
		surfaceY := baseSurfaceY + int(surfaceNoise*cfg.SurfaceAmplitude)
		if surfaceY < cfg.SurfaceMin {
			surfaceY = cfg.SurfaceMin
		}
		if surfaceY > maxSurfaceY {
			surfaceY = maxSurfaceY
		}
		surfaceYs[x] = surfaceY

		temp := fieldNoise(float64(x)*cfg.TemperatureScale, 0, tempOffX, tempOffY)
		precip := fieldNoise(float64(x)*cfg.PrecipitationScale, 0, precipOffX, precipOffY)
		b := classifyBiome(temp, precip, cfg)
		biomes[x] = b

		surfaceID := surfaceByBiome[b]
		subsoilID := subsoilByBiome[b]
		rockStart := surfaceY + rng.IntRange(cfg.RockLayerDepthMin, cfg.RockLayerDepthMax)
		caveStart := surfaceY + cfg.MinCaveDepth

		for y := 0; y < h; y++ {
			idx := y*w + x
			switch {
			case y < surfaceY:
				grid[idx] = baseID
				continue
			case y == surfaceY:
				grid[idx] = surfaceID
			case y < rockStart:
				grid[idx] = subsoilID
				if hasOre && rng.Chance(cfg.OreChance) {
					grid[idx] = oreID
				}
			default:
				grid[idx] = rockID
				depth := y - rockStart
				if hasGem && depth >= cfg.GemMinDepth && rng.Chance(cfg.GemChance) {
					grid[idx] = gemID
				} else if hasOre && rng.Chance(cfg.OreChance) {
					grid[idx] = oreID
				}
			}

			// The bottom row is never carved, so it keeps its rock band.
			if y >= caveStart && y < h-1 {
				region := fieldNoise(float64(x)*cfg.CaveRegionScale, float64(y)*cfg.CaveRegionScale, caveRegionOffX, caveRegionOffY)
				if region > cfg.CaveRegionThreshold {
					primary := fieldNoise(float64(x)*cfg.CaveScale, float64(y)*cfg.CaveScale, cavePrimaryOffX, cavePrimaryOffY)
					if primary > cfg.CaveThresholdLow && primary < cfg.CaveThresholdHigh {
						if hasWater && rng.Chance(cfg.CaveWaterChance) {
							grid[idx] = waterID
						} else {
							grid[idx] = baseID
						}
						continue
					}
				}
			}

			if hasWater && grid[idx] != baseID && y > surfaceY+3 && rng.Chance(cfg.WaterVeinChance) {
				grid[idx] = waterID
			}
		}
	}

	if hasPlant {
		seedSurfacePlants(grid, w, surfaceYs, biomes, plantID, baseID, cfg, rng)
	}

	return grid
}

// seedSurfacePlants decorates the row just above each column's surface
// with a biome-weighted chance of PLANT (generation.rs's grass/cactus/
// conifer decoration pass, collapsed to the single PLANT element this
// registry has).
func seedSurfacePlants(grid []assets.ElementID, w int, surfaceYs []int, biomes []biome, plantID, baseID assets.ElementID, cfg Config, rng *core.RNG) {
	for x := 0; x < w; x++ {
		y := surfaceYs[x] - 1
		if y < 0 {
			continue
		}
		idx := y*w + x
		if grid[idx] != baseID {
			continue
		}
		var chance float64
		switch biomes[x] {
		case biomeForest:
			chance = cfg.PlantChanceForest
		case biomeDesert:
			chance = cfg.PlantChanceDesert
		case biomeSnowland:
			chance = cfg.PlantChanceSnow
		}
		if rng.Chance(chance) {
			grid[idx] = plantID
		}
	}
}
