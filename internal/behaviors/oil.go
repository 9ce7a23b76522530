package behaviors

import (
	"image/color"

	"terraspiel/internal/world"
)

// oilIgniteChance is the per-tick chance oil spontaneously ignites
// (spec §4.3.6: "~0.001").
const oilIgniteChance = 0.001

// Oil spontaneously ignites into a FIRE particle with small probability
// each tick, otherwise behaves as granular fluid (spec §4.3.6).
func Oil(ctx *world.Context) {
	self, col, lastMove := ctx.Self()
	rng := ctx.RNG

	if rng.Chance(oilIgniteChance) {
		ctx.Spawn(world.Particle{
			PX: float64(ctx.X) + 0.5, PY: float64(ctx.Y) + 0.5,
			VX:   rng.FloatRange(-0.2, 0.2),
			VY:   rng.FloatRange(-0.2, 0.2),
			Kind: world.KindFire,
			Life: rng.IntRange(40, 60),
		})
		ctx.Write.Set(ctx.X, ctx.Y, world.Empty(), color.RGBA{}, world.DirNone)
		ctx.MarkMoved(ctx.Index())
		return
	}

	GranularCell(ctx, self, col, lastMove)
}
