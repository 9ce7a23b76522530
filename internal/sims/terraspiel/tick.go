package terraspiel

import (
	"terraspiel/internal/behaviors"
	"terraspiel/internal/core"
	"terraspiel/internal/particles"
	"terraspiel/internal/transform"
	"terraspiel/internal/world"
)

// Tick advances the simulation by one frame, executing the six passes
// in order (spec §4.2).
func (w *World) Tick() {
	if w.w == 0 || w.h == 0 {
		return
	}

	front, back := w.buffers.Front, w.buffers.Back
	scanRight := w.frameCount%2 == 0

	// Pass 1: Movement.
	movedGrid := core.NewGrid[bool](w.w, w.h)
	moved := movedGrid.Data()
	var spawned []world.Particle

	for y := w.h - 1; y >= 0; y-- {
		xs := scanOrder(w.w, scanRight)
		for _, x := range xs {
			idx := front.Index(x, y)
			if moved[idx] {
				continue
			}
			ctx := world.NewContext(front, back, moved, x, y, scanRight, w.reg, w.rng)
			behaviors.Dispatch(ctx)
			spawned = append(spawned, ctx.Spawns...)
		}
	}

	// Buffer-copy completeness (spec §8): Pass 1 must have committed
	// (marked in the moved bitmap) every index of the write buffer
	// before Pass 2 runs against it.
	for idx, m := range moved {
		core.Assert(m, "tick.Pass1", "cell %d was never written to the back buffer", idx)
	}

	// Pass 2: Transformation (operates entirely on the write buffer).
	txSpawns := transform.Run(back, w.reg, w.rng)
	spawned = append(spawned, txSpawns.Particles...)

	// Pass 3: Plant-Growth (single nested scan, write buffer only).
	behaviors.Growth(back, w.reg, w.rng)

	// Merge this tick's newly spawned particles into the live list before
	// Passes 4-6 act on "the full particle list" (spec §4.2 points 4-6).
	w.particles = append(w.particles, spawned...)
	w.particles = filterAlive(w.particles)

	// Pass 4: Ether.
	particles.RunEther(back, w.particles, w.reg, w.rng)
	w.particles = filterAlive(w.particles)

	// Pass 5: Thunder.
	thunderRes := particles.RunThunder(back, w.particles, w.reg, w.rng)
	w.particles = append(w.particles, thunderRes.Spawned...)
	w.particles = filterAlive(w.particles)

	// Pass 6: Fire.
	fireRes := particles.RunFire(back, w.particles, w.reg, w.rng)
	w.particles = append(w.particles, fireRes.Spawned...)
	w.particles = filterAlive(w.particles)

	w.buffers.Swap()
	w.assignParticleIDs()
	w.frameCount++
	w.recomputeStats()
}

// scanOrder returns the x-coordinates of one row in scan order: left to
// right on even frames, right to left on odd frames (spec §4.2, §3
// "Scan direction").
func scanOrder(width int, scanRight bool) []int {
	xs := make([]int, width)
	if scanRight {
		for i := 0; i < width; i++ {
			xs[i] = i
		}
	} else {
		for i := 0; i < width; i++ {
			xs[i] = width - 1 - i
		}
	}
	return xs
}

// filterAlive drops dead particles (spec §4.5.1: "Dead particles (life
// <= 0) are filtered before and after each sub-pass").
func filterAlive(ps []world.Particle) []world.Particle {
	out := ps[:0]
	for _, p := range ps {
		if p.Alive() {
			out = append(out, p)
		}
	}
	return out
}

// assignParticleIDs assigns strictly monotonic real IDs to every
// particle still carrying the sentinel (spec §4.2: "assigns real IDs to
// any spawned particles that still carry the sentinel id=-1").
func (w *World) assignParticleIDs() {
	for i := range w.particles {
		if w.particles[i].ID == world.PendingID {
			w.particles[i].ID = w.nextParticleID
			w.nextParticleID++
		}
	}
}

// Step implements core.Sim (spec §4.2: "one call to tick() executes...").
func (w *World) Step() { w.Tick() }
