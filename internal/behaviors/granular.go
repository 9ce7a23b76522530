// Package behaviors implements the Pass 1 "Movement Pass" cell
// behaviours spec §4.3 describes, dispatched by element name/fluidity
// from internal/sims/terraspiel. Grounded on the teacher's per-cell
// dispatch shape in internal/sims/ecology and on the settle/roll state
// machine in BurtsevAnton-go-ebiten-sand-simulation's handleFalling/
// handleRolling, generalized from that example's fixed six sand grades
// to the registry's data-driven fluidity.
package behaviors

import (
	"image/color"

	"terraspiel/internal/assets"
	"terraspiel/internal/world"
)

// Granular drives every element that declares fluidity (spec §4.3.1):
// sand, soil, water, mud, and similar free-flowing materials. Static
// (no-fluidity) elements never reach this behaviour; the dispatcher
// copies them unchanged.
func Granular(ctx *world.Context) {
	self, col, lastMove := ctx.Self()
	GranularCell(ctx, self, col, lastMove)
}

// GranularCell runs the granular algorithm against an already-fetched
// cell/colour/last-move triple, so a chaining behaviour (spec §4.3.3's
// crystal, and oil) can hand it mutated state instead of whatever is
// still sitting in the front buffer.
func GranularCell(ctx *world.Context, self world.Cell, col color.RGBA, lastMove world.Direction) {
	reg := ctx.Reg
	el := reg.Element(self.Type)
	if el.Fluidity == nil {
		ctx.Stay(self, col, world.DirNone)
		return
	}

	// free reports whether (x, y) is EMPTY in the front buffer and has
	// not already been filled in the back buffer earlier in this pass.
	free := func(x, y int) bool {
		cell, _, _ := ctx.Read.At(x, y)
		if cell.Type != assets.EmptyID {
			return false
		}
		if !ctx.HasMoved(ctx.Write.Index(x, y)) {
			return true
		}
		w, _, _ := ctx.Write.At(x, y)
		return w.Type == assets.EmptyID
	}

	below, belowOK := neighbor(ctx, 0, 1)
	belowNonEmpty := belowOK && below.Type != assets.EmptyID
	canSwapBelow := belowOK && canSwapInto(reg, below.Type, el.Density)

	// Settled fast-path (spec §4.3.1 step 1).
	if belowNonEmpty && !canSwapBelow {
		if ctx.RNG.Chance(0.9) {
			ctx.Stay(self, col, lastMove)
			return
		}
	}

	// Down (step 2).
	if belowOK {
		if free(ctx.X, ctx.Y+1) {
			ctx.Move(ctx.X, ctx.Y+1, self, col, world.DirNone)
			return
		}
		if canSwapBelow {
			swapCells(ctx, ctx.X, ctx.Y+1, self, col, lastMove)
			return
		}
	}

	// Diagonal down (step 3): preferred direction continues the last
	// move, falling back to the scan direction, then tries the
	// opposite side.
	var order [2]int // -1 = left, +1 = right
	switch {
	case lastMove == world.DirLeft:
		order = [2]int{-1, 1}
	case lastMove == world.DirRight:
		order = [2]int{1, -1}
	case ctx.ScanRight:
		order = [2]int{1, -1}
	default:
		order = [2]int{-1, 1}
	}

	for _, dx := range order {
		nx, ny := ctx.X+dx, ctx.Y+1
		cell, ok := neighbor(ctx, dx, 1)
		if !ok {
			continue
		}
		if !ctx.RNG.Chance(1 - el.Fluidity.Resistance) {
			continue
		}
		dir := world.DirDownLeft
		if dx > 0 {
			dir = world.DirDownRight
		}
		if free(nx, ny) {
			ctx.Move(nx, ny, self, col, dir)
			return
		}
		if canSwapInto(reg, cell.Type, el.Density) {
			swapCells(ctx, nx, ny, self, col, dir)
			return
		}
	}

	// Sideways (step 4).
	if ctx.RNG.Chance(el.Fluidity.Spread) {
		_, leftOK := neighbor(ctx, -1, 0)
		_, rightOK := neighbor(ctx, 1, 0)
		leftFree := leftOK && free(ctx.X-1, ctx.Y)
		rightFree := rightOK && free(ctx.X+1, ctx.Y)

		switch {
		case leftFree && rightFree:
			leftScore := emptyBelowDepth(ctx, -1, 3)
			rightScore := emptyBelowDepth(ctx, 1, 3)
			goRight := rightScore > leftScore || (rightScore == leftScore && ctx.ScanRight)
			if goRight {
				ctx.Move(ctx.X+1, ctx.Y, self, col, world.DirRight)
			} else {
				ctx.Move(ctx.X-1, ctx.Y, self, col, world.DirLeft)
			}
			return
		case leftFree:
			ctx.Move(ctx.X-1, ctx.Y, self, col, world.DirLeft)
			return
		case rightFree:
			ctx.Move(ctx.X+1, ctx.Y, self, col, world.DirRight)
			return
		}
	}

	if !ctx.Chained {
		ctx.Stay(self, col, world.DirNone)
	}
}

// neighbor reads the cell at (ctx.X+dx, ctx.Y+dy) from the front
// buffer, reporting false if out of bounds.
func neighbor(ctx *world.Context, dx, dy int) (world.Cell, bool) {
	x, y := ctx.X+dx, ctx.Y+dy
	if !ctx.Read.InBounds(x, y) {
		return world.Cell{}, false
	}
	cell, _, _ := ctx.Read.At(x, y)
	return cell, true
}

// canSwapInto reports whether a denser element may sink through the
// element at otherID (spec §4.3.1 step 2: "swap with a fluid liquid of
// strictly lower density").
func canSwapInto(reg *assets.Registry, otherID assets.ElementID, selfDensity float64) bool {
	if otherID == assets.EmptyID {
		return false
	}
	other := reg.Element(otherID)
	return other.State == assets.StateLiquid && other.Density < selfDensity
}

// swapCells exchanges the mover at (ctx.X, ctx.Y) with the occupant at
// (nx, ny); the occupant inherits the mover's displaced slot and the
// mover inherits the direction implied by dir (spec §4.3.1 step 2:
// "the swapped element inherits the displaced cell's last-move").
func swapCells(ctx *world.Context, nx, ny int, mover world.Cell, moverCol color.RGBA, dir world.Direction) {
	occupant, occCol, occMove := ctx.Read.At(nx, ny)
	ctx.Write.Set(nx, ny, mover, moverCol, dir)
	ctx.Write.Set(ctx.X, ctx.Y, occupant, occCol, occMove)
	ctx.MarkMoved(ctx.Write.Index(nx, ny))
	ctx.MarkMoved(ctx.Write.Index(ctx.X, ctx.Y))
}

// emptyBelowDepth counts how many of the next `depth` cells straight
// down from (ctx.X+dx, ctx.Y) are EMPTY, used to break sideways-spread
// ties toward the more open side (spec §4.3.1 step 4).
func emptyBelowDepth(ctx *world.Context, dx, depth int) int {
	count := 0
	x := ctx.X + dx
	for d := 1; d <= depth; d++ {
		y := ctx.Y + d
		if !ctx.Read.InBounds(x, y) {
			break
		}
		cell, _, _ := ctx.Read.At(x, y)
		if cell.Type != assets.EmptyID {
			break
		}
		count++
	}
	return count
}
