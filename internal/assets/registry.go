package assets

import "image/color"

// ElementID is the compact numeric handle the simulation grid stores
// instead of element names. ID 0 is always EMPTY.
type ElementID uint8

// EmptyID is the implicit EMPTY element (spec §3: "EMPTY is represented
// explicitly").
const EmptyID ElementID = 0

// Rule is a TransformRule with element names resolved to IDs for fast
// dispatch in the Pass 2 hot loop.
type Rule struct {
	From, To      ElementID
	Probability   float64
	Threshold     int
	Conditions    []ResolvedCondition
	Consumes      ElementID
	HasConsumes   bool
	SpawnParticle string
}

// ResolvedCondition mirrors Condition with NeighborType resolved to an ID.
type ResolvedCondition struct {
	Kind       ConditionKind
	NeighborID ElementID
	Attribute  string
	Value      string
	Min, Max   int
	Radius     int
	Present    bool
}

// ParticleRule is a ParticleInteractionRule with names resolved to IDs.
type ParticleRule struct {
	Particle    string
	From, To    ElementID
	ToIsCrystal bool
	Probability float64
}

// Registry is the read-only, fully-resolved view of the loaded element and
// rule assets that the simulation core consumes (spec §6 "World→renderer
// interface", §4.1 "read-only registries").
type Registry struct {
	elements []Element
	ids      map[string]ElementID

	Transforms []Rule
	ByFrom     map[ElementID][]Rule

	Particles     []ParticleRule
	ParticleByFrom map[ElementID][]ParticleRule

	palette map[ElementID][]color.RGBA
}

// Build resolves a loaded element slice and RuleSet into a Registry ready
// for simulation use. Call sites are expected to have already dropped
// unknown-element rules via LoadRules's LoadReport.
func Build(elements []Element, rules RuleSet) *Registry {
	r := &Registry{
		ids:            make(map[string]ElementID, len(elements)+1),
		ByFrom:         make(map[ElementID][]Rule),
		ParticleByFrom: make(map[ElementID][]ParticleRule),
	}

	r.elements = append(r.elements, Element{Name: "EMPTY", Color: color.RGBA{A: 0}})
	r.ids["EMPTY"] = EmptyID

	for _, el := range elements {
		id := ElementID(len(r.elements))
		r.elements = append(r.elements, el)
		r.ids[el.Name] = id
	}

	for _, tr := range rules.Transforms {
		rule := Rule{
			From:          r.ids[tr.From],
			To:            r.ids[tr.To],
			Probability:   tr.Probability,
			Threshold:     tr.Threshold,
			SpawnParticle: tr.SpawnParticle,
		}
		if tr.Consumes != "" {
			if id, ok := r.ids[tr.Consumes]; ok {
				rule.Consumes = id
				rule.HasConsumes = true
			}
		}
		for _, c := range tr.Conditions {
			rc := ResolvedCondition{
				Kind:      c.Kind,
				Attribute: c.Attribute,
				Value:     c.Value,
				Min:       c.Min,
				Max:       c.Max,
				Radius:    c.Radius,
				Present:   c.Present,
			}
			if c.NeighborType != "" {
				rc.NeighborID = r.ids[c.NeighborType]
			}
			rule.Conditions = append(rule.Conditions, rc)
		}
		r.Transforms = append(r.Transforms, rule)
		r.ByFrom[rule.From] = append(r.ByFrom[rule.From], rule)
	}

	for _, pr := range rules.Particles {
		rule := ParticleRule{
			Particle:    pr.Particle,
			From:        r.ids[pr.From],
			Probability: pr.Probability,
		}
		if pr.To == "CRYSTAL" {
			rule.ToIsCrystal = true
		} else {
			rule.To = r.ids[pr.To]
		}
		r.Particles = append(r.Particles, rule)
		r.ParticleByFrom[rule.From] = append(r.ParticleByFrom[rule.From], rule)
	}

	r.palette = buildPalettes(r.elements)

	return r
}

// ID resolves an element name to its ID. ok is false for unknown names
// (spec §7 UnknownElement at the placement boundary).
func (r *Registry) ID(name string) (ElementID, bool) {
	id, ok := r.ids[name]
	return id, ok
}

// Element returns the definition for id. Out-of-range ids return the
// EMPTY definition.
func (r *Registry) Element(id ElementID) Element {
	if int(id) >= len(r.elements) {
		return r.elements[EmptyID]
	}
	return r.elements[id]
}

// Name returns the element name for id.
func (r *Registry) Name(id ElementID) string {
	return r.Element(id).Name
}

// Len reports the number of registered elements, including EMPTY.
func (r *Registry) Len() int { return len(r.elements) }

// Names returns every registered element name, including EMPTY, in
// registry order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.elements))
	for i, el := range r.elements {
		out[i] = el.Name
	}
	return out
}

// Palette returns the precomputed colour-variation palette for id. A
// single-entry slice is returned for elements without HasColorVariation.
func (r *Registry) Palette(id ElementID) []color.RGBA {
	if p, ok := r.palette[id]; ok && len(p) > 0 {
		return p
	}
	return []color.RGBA{r.Element(id).Color}
}

// CRYSTAL is referenced by name rather than ID in a few call sites (ether
// deepening's special case in spec §4.5.2); resolve it lazily so the
// registry doesn't assume it is always present.
func (r *Registry) CrystalID() (ElementID, bool) {
	return r.ID("CRYSTAL")
}
