package behaviors

import (
	"image/color"
	"math"

	"terraspiel/internal/world"
)

// CrystalEtherEmitChance is the per-tick chance a crystal emits an
// ETHER particle (spec §4.3.3: "~0.001"). Exported as a package var
// rather than a const so World.SetFloatParameter can tune it from the
// HUD (spec §6's parameter control surface).
var CrystalEtherEmitChance = 0.001

// crystalStorageDecrementChance is the chance ether_storage decrements
// on emission (spec §4.3.3: "~95%").
const crystalStorageDecrementChance = 0.95

// Crystal emits ETHER particles by spending a shared storage counter,
// dissolving when it runs out, then chains into Granular so crystals
// still fall (spec §4.3.3).
func Crystal(ctx *world.Context) {
	self, col, lastMove := ctx.Self()
	rng := ctx.RNG

	if !self.HasEtherStorage() {
		self.EtherStorage = rng.IntRange(5, 14)
	}

	dissolved := false
	if rng.Chance(CrystalEtherEmitChance) {
		angle := rng.Angle()
		const speed = 0.3
		ctx.Spawn(world.Particle{
			PX: float64(ctx.X) + 0.5, PY: float64(ctx.Y) + 0.5,
			VX:   speed * math.Cos(angle),
			VY:   speed * math.Sin(angle),
			Kind: world.KindEther,
			Life: 150,
		})
		if rng.Chance(crystalStorageDecrementChance) {
			self.EtherStorage--
			if self.EtherStorage <= 0 {
				dissolved = true
			}
		}
	}

	if dissolved {
		ctx.Write.Set(ctx.X, ctx.Y, world.Empty(), color.RGBA{}, world.DirNone)
		ctx.MarkMoved(ctx.Index())
		return
	}

	GranularCell(ctx, self, col, lastMove)
}
