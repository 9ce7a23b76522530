package world

import (
	"image/color"

	"terraspiel/internal/assets"
	"terraspiel/pkg/core"
)

// Context is the shared per-cell handle spec §4.3 describes: "Behaviours
// share a context" bundling read/write access to both planes, the moved
// bitmap, the cell's coordinates, the pass's scan direction, and an
// optional is_chained flag so one behaviour can hand a cell straight to
// another within the same pass (spec §4.3.3: crystal cells that settle
// chain into the granular behaviour).
type Context struct {
	Read  *Plane
	Write *Plane

	// Moved marks cells the current pass has already committed, so a
	// later scan position doesn't act on a cell that already moved this
	// pass (spec §4.3: "a moved bitmap prevents a cell from being
	// processed twice in one pass").
	Moved []bool

	X, Y int

	// ScanRight is the sweep direction for this pass: left to right on
	// even frames, right to left on odd ones, the same for every row.
	ScanRight bool

	// Chained marks a cell handed on by a composite behaviour: when it
	// is set, GranularCell leaves a cell that did not move uncommitted
	// instead of copying it unchanged, and the caller commits it.
	Chained bool

	Reg *assets.Registry
	RNG *core.RNG

	// Spawns accumulates particles a behaviour wants to emit this pass
	// (spec §4.3: cloud emits THUNDER, crystal ETHER, and oil FIRE
	// particles). Every spawned particle starts with id == PendingID;
	// the scheduler assigns real ids once all passes finish (spec §4.2).
	Spawns []Particle
}

// NewContext builds a context for processing (x, y) during one pass.
func NewContext(read, write *Plane, moved []bool, x, y int, scanRight bool, reg *assets.Registry, rng *core.RNG) *Context {
	return &Context{
		Read:      read,
		Write:     write,
		Moved:     moved,
		X:         x,
		Y:         y,
		ScanRight: scanRight,
		Reg:       reg,
		RNG:       rng,
	}
}

// Index returns the linear index of the context's current cell.
func (c *Context) Index() int { return c.Read.Index(c.X, c.Y) }

// Self returns the cell, colour, and last-move currently being
// processed, read from the front buffer.
func (c *Context) Self() (Cell, color.RGBA, Direction) {
	return c.Read.At(c.X, c.Y)
}

// MarkMoved flags an index as already handled this pass.
func (c *Context) MarkMoved(idx int) { c.Moved[idx] = true }

// HasMoved reports whether an index was already handled this pass.
func (c *Context) HasMoved(idx int) bool { return c.Moved[idx] }

// Spawn queues a particle for the scheduler to assign a real id to at
// end of tick.
func (c *Context) Spawn(p Particle) {
	p.ID = PendingID
	c.Spawns = append(c.Spawns, p)
}

// Stay commits the cell unchanged at its current position: the default
// outcome spec §4.3 assumes unless a behaviour actively moves or
// mutates it.
func (c *Context) Stay(cell Cell, col color.RGBA, move Direction) {
	i := c.Index()
	c.Write.Set(c.X, c.Y, cell, col, move)
	c.MarkMoved(i)
}

// Move commits cell/col to (nx, ny) in the write plane and leaves the
// origin empty, recording the direction travelled.
func (c *Context) Move(nx, ny int, cell Cell, col color.RGBA, dir Direction) {
	src := c.Index()
	dst := c.Write.Index(nx, ny)
	c.Write.Set(nx, ny, cell, col, dir)
	c.Write.Set(c.X, c.Y, Empty(), color.RGBA{}, DirNone)
	c.MarkMoved(src)
	c.MarkMoved(dst)
}
