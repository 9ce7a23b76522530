package behaviors

import (
	"image/color"

	"terraspiel/internal/assets"
	"terraspiel/internal/world"
)

// Plant drives plant-cell motion (spec §4.3.4): a withered plant falls
// like granular matter; a living plant stays put unless the cell below
// is EMPTY, in which case it also falls. Growth/decay transitions live
// in the separate Growth pass (spec §4.3.5).
//
// Plant elements carry no fluidity entry in the registry (growth, not
// flow, is their defining trait), so falling is a plain gravity step
// rather than a delegate into the full Granular spread algorithm.
func Plant(ctx *world.Context) {
	self, col, lastMove := ctx.Self()

	if self.PlantMode == world.PlantModeWithered {
		fallStep(ctx, self, col, lastMove)
		return
	}

	below, ok := neighbor(ctx, 0, 1)
	if ok && below.Type == assets.EmptyID {
		fallStep(ctx, self, col, lastMove)
		return
	}

	ctx.Stay(self, col, world.DirNone)
}

// fallStep moves straight down into an EMPTY cell, or diagonally if the
// cell directly below is occupied but a diagonal-down neighbour is
// free; otherwise it stays put.
func fallStep(ctx *world.Context, self world.Cell, col color.RGBA, lastMove world.Direction) {
	if below, ok := neighbor(ctx, 0, 1); ok && below.Type == assets.EmptyID {
		ctx.Move(ctx.X, ctx.Y+1, self, col, world.DirNone)
		return
	}

	order := [2]int{-1, 1}
	if ctx.ScanRight {
		order = [2]int{1, -1}
	}
	for _, dx := range order {
		if cell, ok := neighbor(ctx, dx, 1); ok && cell.Type == assets.EmptyID {
			dir := world.DirDownLeft
			if dx > 0 {
				dir = world.DirDownRight
			}
			ctx.Move(ctx.X+dx, ctx.Y+1, self, col, dir)
			return
		}
	}

	ctx.Stay(self, col, world.DirNone)
}
