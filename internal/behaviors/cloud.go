package behaviors

import (
	"image/color"

	"terraspiel/internal/assets"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

// cloud threshold spreads (spec §4.3.2: "rain ≈100±20, charge ≈800±200").
const (
	rainThresholdBase     = 100
	rainThresholdSpread   = 20
	chargeThresholdBase   = 800
	chargeThresholdSpread = 200
)

// Cloud drifts upward and rains/discharges/decays (spec §4.3.2).
func Cloud(ctx *world.Context) {
	self, col, _ := ctx.Self()
	reg := ctx.Reg
	rng := ctx.RNG

	if self.RainThreshold == 0 {
		self.RainThreshold = rainThresholdBase + rng.IntRange(-rainThresholdSpread, rainThresholdSpread)
	}
	if self.ChargeThreshold == 0 {
		self.ChargeThreshold = chargeThresholdBase + rng.IntRange(-chargeThresholdSpread, chargeThresholdSpread)
	}

	if hasMooreNeighborType(ctx, "CLOUD") {
		self.RainCounter++
		self.ChargeCounter++
	}
	if rng.Chance(0.5) {
		self.RainCounter++
	}
	if rng.Chance(0.5) {
		self.ChargeCounter++
	}
	if rng.Chance(0.02) {
		self.DecayCounter++
	}

	if self.DecayCounter > 100 {
		ctx.Write.Set(ctx.X, ctx.Y, world.Empty(), color.RGBA{}, world.DirNone)
		ctx.MarkMoved(ctx.Index())
		return
	}

	if self.RainCounter >= self.RainThreshold {
		if waterID, ok := reg.ID("WATER"); ok {
			if below, ok := neighbor(ctx, 0, 1); ok && below.Type == assets.EmptyID {
				rainCell := freshCell(waterID)
				rainCol := pickColor(reg, waterID, rng)
				ctx.Write.Set(ctx.X, ctx.Y+1, rainCell, rainCol, world.DirNone)
				ctx.MarkMoved(ctx.Write.Index(ctx.X, ctx.Y+1))
				self.RainCounter = 0
				self.DecayCounter += 10
			}
		}
	}

	if self.ChargeCounter >= self.ChargeThreshold {
		ctx.Spawn(world.Particle{
			PX: float64(ctx.X) + 0.5, PY: float64(ctx.Y) + 0.5,
			VX:   rng.FloatRange(-0.5, 0.5),
			VY:   rng.FloatRange(2, 4),
			Kind: world.KindThunder,
			Life: 60,
		})
		self.ChargeCounter = 0
	}

	moveUp(ctx, self, col, reg, rng)
}

// moveUp drives the upward drift: up with probability 0.7, otherwise
// diagonally up-left or up-right into an EMPTY cell with probability
// 0.5, swapping upward through WATER along the way (spec §4.3.2).
func moveUp(ctx *world.Context, self world.Cell, col color.RGBA, reg *assets.Registry, rng *core.RNG) {
	if rng.Chance(0.7) {
		if above, ok := neighbor(ctx, 0, -1); ok {
			if above.Type == assets.EmptyID {
				ctx.Move(ctx.X, ctx.Y-1, self, col, world.DirUp)
				return
			}
			if waterID, ok := reg.ID("WATER"); ok && above.Type == waterID {
				swapCellsAbove(ctx, self, col)
				return
			}
		}
	}
	if rng.Chance(0.5) {
		dx := 1
		if rng.Chance(0.5) {
			dx = -1
		}
		if cell, ok := neighbor(ctx, dx, -1); ok && cell.Type == assets.EmptyID {
			dir := world.DirUpRight
			if dx < 0 {
				dir = world.DirUpLeft
			}
			ctx.Move(ctx.X+dx, ctx.Y-1, self, col, dir)
			return
		}
	}
	ctx.Stay(self, col, world.DirNone)
}

func swapCellsAbove(ctx *world.Context, self world.Cell, col color.RGBA) {
	occupant, occCol, occMove := ctx.Read.At(ctx.X, ctx.Y-1)
	ctx.Write.Set(ctx.X, ctx.Y-1, self, col, world.DirUp)
	ctx.Write.Set(ctx.X, ctx.Y, occupant, occCol, occMove)
	ctx.MarkMoved(ctx.Write.Index(ctx.X, ctx.Y-1))
	ctx.MarkMoved(ctx.Write.Index(ctx.X, ctx.Y))
}

// hasMooreNeighborType reports whether any of the 8 neighbours of the
// context's current cell has the named element type.
func hasMooreNeighborType(ctx *world.Context, name string) bool {
	id, ok := ctx.Reg.ID(name)
	if !ok {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if cell, ok := neighbor(ctx, dx, dy); ok && cell.Type == id {
				return true
			}
		}
	}
	return false
}
