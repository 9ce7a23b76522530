// Package world holds the data shapes the tick pipeline passes between
// itself and the behaviour/transform/particle packages: Cell, Particle,
// the double-buffered grid, and the shared per-cell Context (spec §3,
// §4.3). It intentionally has no knowledge of *how* any element behaves —
// that lives in internal/behaviors, internal/transform, and
// internal/particles — so none of those packages need to import each
// other to share these shapes.
package world

import "terraspiel/internal/assets"

// Direction is the last-move field spec §3 tracks per cell.
type Direction uint8

const (
	DirNone Direction = iota
	DirDown
	DirDownLeft
	DirDownRight
	DirLeft
	DirRight
	DirUp
	DirUpLeft
	DirUpRight
)

// PlantMode enumerates the plant_mode scalar (spec §3).
type PlantMode uint8

const (
	PlantModeNone PlantMode = iota
	PlantModeStem
	PlantModeGroundCover
	PlantModeLeaf
	PlantModeFlower
	PlantModeWithered
)

// unsetEtherStorage marks a crystal cell that hasn't rolled its initial
// ether_storage yet (spec §4.3.3: "initialised ∈[5,15) on first
// observation if unset").
const unsetEtherStorage = -1

// Cell is the tagged record spec §3 describes: a type plus a bag of
// per-kind scalars. Every scalar defaults to zero, except EtherStorage,
// which Empty and ResetOnTypeChange set to the unset marker -1; each is
// meaningless unless the cell's current Type actively uses it.
type Cell struct {
	Type assets.ElementID

	Counter         int
	BurningProgress int
	Life            int

	RainCounter     int
	RainThreshold   int
	ChargeCounter   int
	ChargeThreshold int
	DecayCounter    int

	PlantMode PlantMode
	OilCounter int

	EtherStorage int
}

// Empty returns a fresh EMPTY cell: every scalar zero, EtherStorage unset.
func Empty() Cell { return Cell{Type: assets.EmptyID, EtherStorage: unsetEtherStorage} }

// ResetOnTypeChange zeroes the scalars the invariant in spec §3/§8
// requires to reset whenever a cell's type changes ("A cell's counter and
// burning_progress reset on type change"). Kind-specific scalars are
// cleared too since they are meaningless for the new type.
func (c *Cell) ResetOnTypeChange(newType assets.ElementID) {
	c.Type = newType
	c.Counter = 0
	c.BurningProgress = 0
	c.Life = 0
	c.RainCounter = 0
	c.RainThreshold = 0
	c.ChargeCounter = 0
	c.ChargeThreshold = 0
	c.DecayCounter = 0
	c.PlantMode = PlantModeNone
	c.OilCounter = 0
	c.EtherStorage = unsetEtherStorage
}

// HasEtherStorage reports whether EtherStorage has been rolled yet.
func (c *Cell) HasEtherStorage() bool { return c.EtherStorage != unsetEtherStorage }
