//go:build ebiten

package ui

import (
	"image/color"

	"terraspiel/internal/core"
	"terraspiel/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// particleProvider is implemented by simulations that, like terraspiel,
// track free sub-cell particles alongside the grid (spec §6: "Particles
// expose position, velocity, type, life for renderer use only").
type particleProvider interface {
	Particles() []world.Particle
}

// Overlay draws the live particle list on top of the base grid, toggled
// with the 1 key. Adapted from the teacher's key-toggled debug-visual
// overlay (internal/ui/overlay.go's showRain/showVolcano toggles); the
// ecology-specific rain/volcano/wind/elevation masks have no terraspiel
// counterpart and are dropped rather than kept as permanently-false
// dead branches.
type Overlay struct {
	sim   core.Sim
	scale int
	show  bool
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance for sim, drawn at scale
// pixels per grid cell.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles particle-overlay visibility.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Draw renders every live particle as a small coloured square sized to
// the painter's scale, coloured by kind (ETHER teal, THUNDER yellow,
// FIRE orange, scattered MATERIAL white).
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || o.pixel == nil {
		return
	}
	provider, ok := o.sim.(particleProvider)
	if !ok {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	for _, p := range provider.Particles() {
		o.drawParticle(screen, p, scale)
	}
}

func (o *Overlay) drawParticle(screen *ebiten.Image, p world.Particle, scale int) {
	col := particleColor(p.Kind)
	size := float64(scale)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(p.PX*size-size/2, p.PY*size-size/2)
	op.ColorM.Scale(float64(col.R)/255, float64(col.G)/255, float64(col.B)/255, float64(col.A)/255)
	screen.DrawImage(o.pixel, op)
}

func particleColor(k world.Kind) color.RGBA {
	switch k {
	case world.KindEther:
		return color.RGBA{R: 154, G: 220, B: 216, A: 230}
	case world.KindThunder:
		return color.RGBA{R: 240, G: 224, B: 90, A: 255}
	case world.KindFire:
		return color.RGBA{R: 232, G: 114, B: 42, A: 255}
	default:
		return color.RGBA{R: 220, G: 220, B: 220, A: 200}
	}
}
