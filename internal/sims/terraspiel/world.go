package terraspiel

import (
	"strconv"

	"terraspiel/internal/assets"
	"terraspiel/internal/behaviors"
	enginecore "terraspiel/internal/core"
	"terraspiel/internal/particles"
	"terraspiel/internal/terrain"
	"terraspiel/internal/transform"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

// World holds all state for one Terraspiel simulation (spec §4.1):
// "front/back grid buffers, the particle list, frame_count,
// next_particle_id, and read-only registries."
type World struct {
	cfg Config

	w, h int

	buffers   *world.Buffers
	particles []world.Particle

	frameCount     int64
	nextParticleID int64

	reg *assets.Registry
	rng *core.RNG

	terrainCfg terrain.Config
	stats      Stats
}

// New constructs a World with the given dimensions using default asset
// and terrain configuration.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = w, h
	return NewWithConfig(cfg)
}

// NewWithConfig constructs a World from an explicit configuration,
// loading the element/rule registry immediately (a fatal InvalidAssetError
// here is a caller bug, not a runtime condition — spec §7).
func NewWithConfig(cfg Config) *World {
	reg := mustLoadRegistry(cfg)
	wd := &World{
		cfg:        cfg,
		w:          cfg.Width,
		h:          cfg.Height,
		buffers:    world.NewBuffers(cfg.Width, cfg.Height),
		reg:        reg,
		rng:        core.NewRNG(cfg.Seed),
		terrainCfg: terrain.DefaultConfig(),
	}
	return wd
}

// Name returns the simulation identifier used by the core.Sim registry.
func (w *World) Name() string { return "terraspiel" }

// Size reports the grid dimensions.
func (w *World) Size() enginecore.Size { return enginecore.Size{W: w.w, H: w.h} }

// Registry exposes the read-only element/rule registry (spec §6).
func (w *World) Registry() *assets.Registry { return w.reg }

// Cells returns the front buffer's element-type byte for every cell, in
// the shape core.Sim expects.
func (w *World) Cells() []uint8 {
	out := make([]uint8, len(w.buffers.Front.Cells))
	for i, c := range w.buffers.Front.Cells {
		out[i] = uint8(c.Type)
	}
	return out
}

// Colors exposes the front buffer's colour field for the renderer (spec
// §6).
func (w *World) Colors() []uint8 {
	out := make([]uint8, len(w.buffers.Front.Color)*4)
	for i, c := range w.buffers.Front.Color {
		out[i*4+0] = c.R
		out[i*4+1] = c.G
		out[i*4+2] = c.B
		out[i*4+3] = c.A
	}
	return out
}

// Particles exposes a snapshot of the live particle list for the
// renderer (spec §6: "Particles expose position, velocity, type, life").
func (w *World) Particles() []world.Particle {
	out := make([]world.Particle, len(w.particles))
	copy(out, w.particles)
	return out
}

// FrameCount reports how many ticks have run.
func (w *World) FrameCount() int64 { return w.frameCount }

// Reset reseeds and regenerates the world in place, satisfying
// core.Sim so cmd/ca's -sim=terraspiel picker and its R/S keybindings
// (reset-to-seed / reset-to-random) work the same way they do for every
// other registered simulation.
func (w *World) Reset(seed int64) {
	w.cfg.Seed = seed
	w.frameCount = 0
	w.nextParticleID = 0
	w.Randomize(seed)
}

// Parameters implements the HUD's read-only parameterProvider interface
// (spec §6 "Output: stats snapshot"): the per-kind cell/particle census
// plus the frame counter, surfaced as a display-only group. The
// adjustable probabilities/bounds live in their own group, driven by
// ParameterControls/SetIntParameter/SetFloatParameter below.
func (w *World) Parameters() enginecore.ParameterSnapshot {
	group := enginecore.ParameterGroup{Name: "World", Summary: "frame " + itoa(w.frameCount)}
	group.Params = append(group.Params, enginecore.Parameter{
		Key: "frame", Label: "Frame", Type: enginecore.ParamTypeInt, Value: itoa(w.frameCount),
	})
	group.Params = append(group.Params, enginecore.Parameter{
		Key: "particles", Label: "Particles", Type: enginecore.ParamTypeInt, Value: itoa(int64(len(w.particles))),
	})
	for _, name := range w.reg.Names() {
		if count := w.stats.CellCounts[name]; count > 0 {
			group.Params = append(group.Params, enginecore.Parameter{
				Key: "cell." + name, Label: name, Type: enginecore.ParamTypeInt, Value: itoa(int64(count)),
			})
		}
	}

	tunables := enginecore.ParameterGroup{Name: "Tunables", Summary: "globally tunable probabilities"}
	tunables.Params = append(tunables.Params,
		floatParam("fire_ignite_chance", "Fire ignite chance", particles.FireIgniteChance),
		floatParam("ether_emit_chance", "Ether emit chance", transform.IndependentEtherChance),
		floatParam("crystal_ether_emit_chance", "Crystal ether emit chance", behaviors.CrystalEtherEmitChance),
		intParam("explosion_radius_min", "Water explosion radius min", particles.WaterExplosionRadiusMin),
		intParam("explosion_radius_max", "Water explosion radius max", particles.WaterExplosionRadiusMax),
	)

	return enginecore.ParameterSnapshot{Groups: []enginecore.ParameterGroup{group, tunables}}
}

// ParameterControls exposes the handful of globally tunable
// probabilities/bounds named in spec §4.5's fixed constants as
// HUD-adjustable controls (spec §6's parameter control surface, mirrored
// on the teacher's core.ParameterControlsProvider contract).
func (w *World) ParameterControls() []enginecore.ParameterControl {
	return []enginecore.ParameterControl{
		{Key: "fire_ignite_chance", Label: "Fire ignite chance", Type: enginecore.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "ether_emit_chance", Label: "Ether emit chance", Type: enginecore.ParamTypeFloat, Step: 0.0005, Min: 0, Max: 0.05, HasMin: true, HasMax: true},
		{Key: "crystal_ether_emit_chance", Label: "Crystal ether emit chance", Type: enginecore.ParamTypeFloat, Step: 0.0005, Min: 0, Max: 0.05, HasMin: true, HasMax: true},
		{Key: "explosion_radius_min", Label: "Explosion radius min", Type: enginecore.ParamTypeInt, Step: 1, Min: 1, Max: 5, HasMin: true, HasMax: true},
		{Key: "explosion_radius_max", Label: "Explosion radius max", Type: enginecore.ParamTypeInt, Step: 1, Min: 1, Max: 6, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter implements core.FloatParameterSetter, clamping into
// [0, 1] before committing (spec §6).
func (w *World) SetFloatParameter(key string, value float64) bool {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	switch key {
	case "fire_ignite_chance":
		particles.FireIgniteChance = value
	case "ether_emit_chance":
		transform.IndependentEtherChance = value
	case "crystal_ether_emit_chance":
		behaviors.CrystalEtherEmitChance = value
	default:
		return false
	}
	return true
}

// SetIntParameter implements core.IntParameterSetter. The water
// explosion radius bounds keep min<=max by nudging the other edge along
// with whichever one moved.
func (w *World) SetIntParameter(key string, value int) bool {
	if value < 1 {
		value = 1
	}
	switch key {
	case "explosion_radius_min":
		particles.WaterExplosionRadiusMin = value
		if particles.WaterExplosionRadiusMax < value {
			particles.WaterExplosionRadiusMax = value
		}
	case "explosion_radius_max":
		particles.WaterExplosionRadiusMax = value
		if particles.WaterExplosionRadiusMin > value {
			particles.WaterExplosionRadiusMin = value
		}
	default:
		return false
	}
	return true
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func intParam(key, label string, value int) enginecore.Parameter {
	return enginecore.Parameter{Key: key, Label: label, Type: enginecore.ParamTypeInt, Value: strconv.Itoa(value)}
}

func floatParam(key, label string, value float64) enginecore.Parameter {
	return enginecore.Parameter{Key: key, Label: label, Type: enginecore.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}
