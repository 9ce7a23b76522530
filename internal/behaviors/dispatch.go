package behaviors

import (
	"terraspiel/internal/assets"
	"terraspiel/internal/world"
)

// Dispatch routes a cell to its Movement Pass behaviour by element name,
// falling back to Granular for anything that merely declares fluidity,
// and to a plain copy for everything else (spec §4.3: "Dispatch on the
// cell's type to a behaviour; if no behaviour exists the cell is copied
// unchanged from read to write").
func Dispatch(ctx *world.Context) {
	self, col, lastMove := ctx.Self()
	if self.Type == assets.EmptyID {
		ctx.Write.Set(ctx.X, ctx.Y, world.Empty(), col, world.DirNone)
		ctx.MarkMoved(ctx.Index())
		return
	}

	switch ctx.Reg.Name(self.Type) {
	case "CLOUD":
		Cloud(ctx)
		return
	case "CRYSTAL":
		Crystal(ctx)
		return
	case "PLANT":
		Plant(ctx)
		return
	case "OIL":
		Oil(ctx)
		return
	}

	el := ctx.Reg.Element(self.Type)
	if el.Fluidity != nil {
		Granular(ctx)
		return
	}

	ctx.Stay(self, col, lastMove)
}
