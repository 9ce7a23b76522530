//go:build ebiten

// Package render holds the ebiten-specific pixel painter cmd/ca's GUI
// shell uses to blit a simulation's grid onto the screen. Adapted from
// the teacher's GridPainter (renderer.go): the binary on/off blit is
// kept verbatim for any plain two-state core.Sim, and BlitRGBA is added
// for terraspiel, whose World already exposes a fully resolved colour
// buffer (spec §6 "the front colour buffer") rather than a single bit
// per cell.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads one simulation frame's pixel data into a reusable
// ebiten.Image and draws it scaled onto the destination each frame.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads binary cell data (0/1) into the painter image and draws
// it, scaled, onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, on, off color.Color, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillBinaryRGBA(gp.buf, cells, on, off)
	gp.draw(dst, scale)
}

// BlitRGBA uploads a pre-resolved RGBA byte buffer (4 bytes per cell,
// row-major) straight into the painter image, scaled, onto dst. Used
// for terraspiel's already-colour-resolved front buffer instead of the
// binary on/off palette Blit assumes.
func (gp *GridPainter) BlitRGBA(dst *ebiten.Image, rgba []byte, scale int) {
	if len(rgba) != 4*gp.w*gp.h {
		return
	}
	gp.img.ReplacePixels(rgba)
	gp.drawScaled(dst, scale)
}

func (gp *GridPainter) draw(dst *ebiten.Image, scale int) {
	gp.img.ReplacePixels(gp.buf)
	gp.drawScaled(dst, scale)
}

func (gp *GridPainter) drawScaled(dst *ebiten.Image, scale int) {
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
