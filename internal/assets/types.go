// Package assets loads the element and rule registries that drive the
// Terraspiel simulation: the element/rule JSON asset loader and its
// on-disk format (spec §1, §6). The core simulation never hardcodes a
// material's physics; every element and every transformation is data.
package assets

import "image/color"

// State classifies the coarse physical behaviour of an element, used by
// surroundingAttribute conditions and by the renderer.
type State string

const (
	StateSolid    State = "solid"
	StateLiquid   State = "liquid"
	StateGas      State = "gas"
	StateParticle State = "particle"
)

// Fluidity describes how readily a granular element moves (spec §3).
// Resistance damps diagonal movement; spread controls lateral flow.
// Elements without a Fluidity are immovable solids.
type Fluidity struct {
	Resistance float64
	Spread     float64
}

// Element is the immutable definition of one material kind (spec §3).
// EMPTY is not represented here: it is the implicit zero element every
// registry understands without being authored in the JSON file.
type Element struct {
	Name              string
	Color             color.RGBA
	Density           float64
	State             State
	Fluidity          *Fluidity
	HasColorVariation bool
	IsFlammable       bool
	IsStatic          bool
	PartColors        map[string]color.RGBA
}

// ConditionKind enumerates the three transformation-rule condition shapes
// (spec §3 "Transformation rule").
type ConditionKind string

const (
	ConditionSurrounding         ConditionKind = "surrounding"
	ConditionEnvironment         ConditionKind = "environment"
	ConditionSurroundingAttr     ConditionKind = "surroundingAttribute"
)

// Condition is one clause a transformation rule must satisfy. Only the
// fields relevant to Kind are populated; the rest are zero.
type Condition struct {
	Kind ConditionKind

	// NeighborType: surrounding and environment. Attribute/Value:
	// surroundingAttribute. Min/Max: surrounding and surroundingAttribute.
	NeighborType string
	Attribute    string
	Value        string
	Min          int
	Max          int

	// environment only
	Radius  int
	Present bool
}

// TransformRule is the data-driven quintuple from spec §3/§4.4, extended
// with the optional consumed-neighbour and spawned-particle fields.
type TransformRule struct {
	From          string
	To            string
	Probability   float64
	Threshold     int
	Conditions    []Condition
	Consumes      string // element name, empty if unset
	SpawnParticle string // particle type name, empty if unset
}

// ParticleInteractionRule describes ether deepening (spec §3): a particle
// of Particle type drifting over a From cell may rewrite it to To.
type ParticleInteractionRule struct {
	Particle    string
	From        string
	To          string
	Probability float64
}

// RuleSet holds both rule shapes loaded from one JSON document.
type RuleSet struct {
	Transforms []TransformRule
	Particles  []ParticleInteractionRule
}
