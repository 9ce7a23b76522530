package world

import "image/color"

// Plane is one full grid buffer: cells plus the parallel colour and
// last-move fields spec §3 keeps alongside it. Buffers doubles this to
// get the front/back discipline spec §4.2 requires.
type Plane struct {
	W, H     int
	Cells    []Cell
	Color    []color.RGBA
	LastMove []Direction
}

// NewPlane allocates a plane filled with EMPTY cells.
func NewPlane(w, h int) *Plane {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	p := &Plane{
		W:        w,
		H:        h,
		Cells:    make([]Cell, w*h),
		Color:    make([]color.RGBA, w*h),
		LastMove: make([]Direction, w*h),
	}
	for i := range p.Cells {
		p.Cells[i] = Empty()
	}
	return p
}

// Index returns the linear slice index for (x, y).
func (p *Plane) Index(x, y int) int { return y*p.W + x }

// InBounds reports whether (x, y) is within the plane.
func (p *Plane) InBounds(x, y int) bool {
	return x >= 0 && x < p.W && y >= 0 && y < p.H
}

// At returns the cell, colour, and last-move at (x, y).
func (p *Plane) At(x, y int) (Cell, color.RGBA, Direction) {
	i := p.Index(x, y)
	return p.Cells[i], p.Color[i], p.LastMove[i]
}

// Set writes the cell, colour, and last-move at (x, y).
func (p *Plane) Set(x, y int, c Cell, col color.RGBA, move Direction) {
	i := p.Index(x, y)
	p.Cells[i] = c
	p.Color[i] = col
	p.LastMove[i] = move
}

// Copy copies the full triple from src at linear index srcIdx to this
// plane at linear index dst.
func (p *Plane) Copy(dst int, src *Plane, srcIdx int) {
	p.Cells[dst] = src.Cells[srcIdx]
	p.Color[dst] = src.Color[srcIdx]
	p.LastMove[dst] = src.LastMove[srcIdx]
}

// Buffers is the double-buffered grid spec §3 describes: a front (read)
// and back (write) Plane, swapped once per tick after all passes commit
// (spec §4.2).
type Buffers struct {
	W, H  int
	Front *Plane
	Back  *Plane
}

// NewBuffers allocates both planes.
func NewBuffers(w, h int) *Buffers {
	return &Buffers{W: w, H: h, Front: NewPlane(w, h), Back: NewPlane(w, h)}
}

// Swap exchanges front and back (spec §4.2: "the scheduler swaps
// front/back buffers").
func (b *Buffers) Swap() { b.Front, b.Back = b.Back, b.Front }

// Clear resets both planes to EMPTY.
func (b *Buffers) Clear() {
	for _, p := range []*Plane{b.Front, b.Back} {
		for i := range p.Cells {
			p.Cells[i] = Empty()
			p.Color[i] = color.RGBA{}
			p.LastMove[i] = DirNone
		}
	}
}
