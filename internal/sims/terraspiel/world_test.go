package terraspiel

import (
	"testing"

	"terraspiel/internal/assets"
	"terraspiel/internal/particles"
	"terraspiel/internal/world"
)

// newTestWorld builds a World with the real embedded assets but an
// all-EMPTY grid (New never calls Randomize), so tests can place exactly
// the cells a scenario needs without terrain noise.
func newTestWorld(w, h int, seed int64) *World {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = w, h
	cfg.Seed = seed
	return NewWithConfig(cfg)
}

func mustPlace(t *testing.T, w *World, x, y int, name string) {
	t.Helper()
	if err := w.Place(x, y, name); err != nil {
		t.Fatalf("Place(%d,%d,%s): %v", x, y, name, err)
	}
}

func countType(w *World, name string) int {
	id, ok := w.Registry().ID(name)
	if !ok {
		return 0
	}
	n := 0
	for _, c := range w.buffers.Front.Cells {
		if c.Type == id {
			n++
		}
	}
	return n
}

// TestSandSettles covers scenario 1 (spec §8): a single SAND grain above
// an otherwise empty 3x3 grid comes to rest on the floor within a few
// ticks and stays there.
func TestSandSettles(t *testing.T) {
	w := newTestWorld(3, 3, 1)
	mustPlace(t, w, 1, 0, "SAND")

	for i := 0; i < 5; i++ {
		w.Tick()
	}

	id, _ := w.Registry().ID("SAND")
	onFloor := false
	for x := 0; x < 3; x++ {
		cell, _, _ := w.buffers.Front.At(x, 2)
		if cell.Type == id {
			onFloor = true
		}
	}
	if !onFloor {
		t.Fatal("expected SAND to have reached the floor row after 5 ticks")
	}
	if countType(w, "SAND") != 1 {
		t.Fatalf("expected exactly one SAND grain to survive, got %d", countType(w, "SAND"))
	}
}

// TestDenserSinksThroughLiquid covers scenario 3: SAND (density 2.2)
// placed directly above WATER (density 1.0, liquid) sinks through it via
// the swap path in Granular, rather than resting on top.
func TestDenserSinksThroughLiquid(t *testing.T) {
	w := newTestWorld(1, 3, 2)
	mustPlace(t, w, 0, 0, "SAND")
	mustPlace(t, w, 0, 1, "WATER")
	mustPlace(t, w, 0, 2, "WATER")

	sandID, _ := w.Registry().ID("SAND")

	for i := 0; i < 10; i++ {
		w.Tick()
	}

	bottom, _, _ := w.buffers.Front.At(0, 2)
	if bottom.Type != sandID {
		t.Fatalf("expected SAND to sink to the bottom of the water column, got %s", w.Registry().Name(bottom.Type))
	}
	if countType(w, "WATER") != 2 {
		t.Fatalf("expected both WATER cells to persist, got %d", countType(w, "WATER"))
	}
}

// TestWaterSpreadsAcrossFloor covers scenario 2: a block of WATER
// dropped in the middle of a wide, otherwise empty floor settles and
// spreads laterally rather than staying in a single column, while the
// total volume is conserved.
func TestWaterSpreadsAcrossFloor(t *testing.T) {
	w := newTestWorld(9, 4, 3)
	for _, x := range []int{3, 4, 5} {
		mustPlace(t, w, x, 0, "WATER")
		mustPlace(t, w, x, 1, "WATER")
	}
	const totalWater = 6

	waterID, _ := w.Registry().ID("WATER")

	for i := 0; i < 60; i++ {
		w.Tick()
	}

	beyondInitialFootprint := false
	for x := 0; x < 9; x++ {
		if x >= 3 && x <= 5 {
			continue // the block's starting columns
		}
		for y := 0; y < 4; y++ {
			cell, _, _ := w.buffers.Front.At(x, y)
			if cell.Type == waterID {
				beyondInitialFootprint = true
			}
		}
	}
	if !beyondInitialFootprint {
		t.Fatal("expected WATER to spread beyond its starting columns after 60 ticks")
	}
	if countType(w, "WATER") != totalWater {
		t.Fatalf("expected all %d WATER cells to be conserved, got %d", totalWater, countType(w, "WATER"))
	}
}

// TestCellTotalityInvariant covers spec §8's universal invariant: every
// front-buffer cell is always some valid, in-range ElementID, even after
// many ticks over a mixed grid.
func TestCellTotalityInvariant(t *testing.T) {
	w := newTestWorld(12, 12, 7)
	w.Randomize(7)

	for i := 0; i < 25; i++ {
		w.Tick()
		for _, c := range w.buffers.Front.Cells {
			if int(c.Type) >= w.Registry().Len() {
				t.Fatalf("tick %d: cell type %d out of range for registry of len %d", i, c.Type, w.Registry().Len())
			}
		}
	}
}

// TestParticleIDsMonotonic covers spec §3's "Particle IDs are strictly
// monotonic" invariant. Particles are injected directly into the
// unexported particle list carrying the pending sentinel, the same state
// a behaviour's ctx.Spawn leaves them in, so assignParticleIDs is
// exercised deterministically across several ticks instead of depending
// on a cloud happening to cross its randomised charge threshold in time.
func TestParticleIDsMonotonic(t *testing.T) {
	w := newTestWorld(8, 8, 11)

	seen := map[int64]bool{}
	var maxID int64 = -1
	for i := 0; i < 10; i++ {
		w.particles = append(w.particles,
			world.Particle{ID: world.PendingID, PX: 1, PY: 1, Kind: world.KindEther, Life: 5},
			world.Particle{ID: world.PendingID, PX: 2, PY: 2, Kind: world.KindEther, Life: 5},
		)
		w.Tick()
		for _, p := range w.particles {
			if p.ID == world.PendingID {
				t.Fatalf("tick %d: particle still carries the pending sentinel after scheduling", i)
			}
			if seen[p.ID] {
				continue // already validated this particle on an earlier tick
			}
			seen[p.ID] = true
			if p.ID <= maxID {
				t.Fatalf("tick %d: particle id %d is not strictly greater than the previous max %d", i, p.ID, maxID)
			}
			maxID = p.ID
		}
	}
	if maxID < 0 {
		t.Fatal("expected at least one particle to receive a real id")
	}
}

// TestResetReseedsDeterministically exercises the core.Sim contract: two
// worlds built from the same seed and reset to the same seed produce
// identical cell grids after the same number of ticks.
func TestResetReseedsDeterministically(t *testing.T) {
	a := newTestWorld(16, 16, 42)
	b := newTestWorld(16, 16, 1)

	a.Reset(42)
	b.Reset(42)

	for i := 0; i < 15; i++ {
		a.Tick()
		b.Tick()
	}

	ac, bc := a.Cells(), b.Cells()
	if len(ac) != len(bc) {
		t.Fatalf("cell buffer length mismatch: %d vs %d", len(ac), len(bc))
	}
	for i := range ac {
		if ac[i] != bc[i] {
			t.Fatalf("cell %d diverged between two worlds reset to the same seed: %d vs %d", i, ac[i], bc[i])
		}
	}
}

// TestPlaceNoOpOnOccupiedCell covers spec §4.1's "Place on a non-EMPTY
// cell is a silent no-op" failure semantics.
func TestPlaceNoOpOnOccupiedCell(t *testing.T) {
	w := newTestWorld(2, 2, 5)
	mustPlace(t, w, 0, 0, "STONE")
	if err := w.Place(0, 0, "WATER"); err != nil {
		t.Fatalf("Place on occupied cell returned an error instead of a silent no-op: %v", err)
	}
	stoneID, _ := w.Registry().ID("STONE")
	cell, _, _ := w.buffers.Front.At(0, 0)
	if cell.Type != stoneID {
		t.Fatalf("Place overwrote an occupied cell; expected STONE to remain, got %s", w.Registry().Name(cell.Type))
	}
}

// TestPlaceUnknownElement covers the UnknownElementError path for a
// caller-supplied name that isn't in the registry.
func TestPlaceUnknownElement(t *testing.T) {
	w := newTestWorld(2, 2, 6)
	err := w.Place(0, 0, "NOT_A_REAL_ELEMENT")
	if err == nil {
		t.Fatal("expected an error placing an unknown element")
	}
	if _, ok := err.(*assets.UnknownElementError); !ok {
		t.Fatalf("expected *assets.UnknownElementError, got %T: %v", err, err)
	}
}

// TestParametersSnapshotReflectsCensus exercises the HUD-facing read
// path: frame count and per-kind cell counts must match Stats().
func TestParametersSnapshotReflectsCensus(t *testing.T) {
	w := newTestWorld(4, 4, 8)
	mustPlace(t, w, 0, 0, "STONE")
	mustPlace(t, w, 1, 0, "STONE")
	w.Tick()

	snap := w.Parameters()
	if len(snap.Groups) != 2 {
		t.Fatalf("expected a census group and a tunables group, got %d", len(snap.Groups))
	}
	found := false
	for _, p := range snap.Groups[0].Params {
		if p.Key == "cell.STONE" {
			found = true
			if p.Value != "2" {
				t.Fatalf("expected cell.STONE=2, got %s", p.Value)
			}
		}
	}
	if !found {
		t.Fatal("expected a cell.STONE parameter in the snapshot")
	}
}

// TestSetFloatParameter covers the HUD-setter path onto a live package
// var: a known key mutates the backing var and reports success, an
// unknown key is rejected, and out-of-range input is clamped rather
// than stored verbatim.
func TestSetFloatParameter(t *testing.T) {
	w := newTestWorld(2, 2, 9)
	prev := particles.FireIgniteChance
	defer func() { particles.FireIgniteChance = prev }()

	if !w.SetFloatParameter("fire_ignite_chance", 0.9) {
		t.Fatal("expected SetFloatParameter to accept fire_ignite_chance")
	}
	if particles.FireIgniteChance != 0.9 {
		t.Fatalf("expected FireIgniteChance=0.9, got %v", particles.FireIgniteChance)
	}

	if w.SetFloatParameter("not_a_real_key", 0.5) {
		t.Fatal("expected SetFloatParameter to reject an unknown key")
	}

	if !w.SetFloatParameter("fire_ignite_chance", 5) {
		t.Fatal("expected SetFloatParameter to still accept an out-of-range value")
	}
	if particles.FireIgniteChance != 1 {
		t.Fatalf("expected FireIgniteChance clamped to 1, got %v", particles.FireIgniteChance)
	}
}

// TestSetIntParameter covers the explosion-radius bounds, which must
// keep min<=max by nudging whichever edge didn't move.
func TestSetIntParameter(t *testing.T) {
	w := newTestWorld(2, 2, 10)
	prevMin, prevMax := particles.WaterExplosionRadiusMin, particles.WaterExplosionRadiusMax
	defer func() {
		particles.WaterExplosionRadiusMin = prevMin
		particles.WaterExplosionRadiusMax = prevMax
	}()

	if !w.SetIntParameter("explosion_radius_max", 1) {
		t.Fatal("expected SetIntParameter to accept explosion_radius_max")
	}
	if particles.WaterExplosionRadiusMax != 1 || particles.WaterExplosionRadiusMin != 1 {
		t.Fatalf("expected min to follow max down to 1, got min=%d max=%d",
			particles.WaterExplosionRadiusMin, particles.WaterExplosionRadiusMax)
	}

	if !w.SetIntParameter("explosion_radius_min", 4) {
		t.Fatal("expected SetIntParameter to accept explosion_radius_min")
	}
	if particles.WaterExplosionRadiusMax != 4 {
		t.Fatalf("expected max to follow min up to 4, got max=%d", particles.WaterExplosionRadiusMax)
	}

	if w.SetIntParameter("not_a_real_key", 1) {
		t.Fatal("expected SetIntParameter to reject an unknown key")
	}
}
