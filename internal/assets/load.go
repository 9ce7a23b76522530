package assets

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
)

// wireElement mirrors the on-disk element JSON shape (spec §6).
type wireElement struct {
	Name              string            `json:"name"`
	Color             string            `json:"color"`
	Density           *float64          `json:"density"`
	State             string            `json:"state"`
	Fluidity          *wireFluidity     `json:"fluidity"`
	HasColorVariation bool              `json:"hasColorVariation"`
	IsFlammable       bool              `json:"isFlammable"`
	IsStatic          bool              `json:"isStatic"`
	PartColors        map[string]string `json:"partColors"`
}

type wireFluidity struct {
	Resistance float64 `json:"resistance"`
	Spread     float64 `json:"spread"`
}

// LoadElements parses an element registry from JSON (spec §6). Malformed
// entries are InvalidAssetError (fatal, returned immediately); there is no
// notion of "dropping" a bad element the way a bad rule is dropped.
func LoadElements(data []byte) ([]Element, error) {
	var wire []wireElement
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode element asset: %w", err)
	}

	elements := make([]Element, 0, len(wire))
	for i, we := range wire {
		el, err := we.toElement(i)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return elements, nil
}

func (we wireElement) toElement(index int) (Element, error) {
	if we.Name == "" {
		return Element{}, &InvalidAssetError{Source: "element", Index: index, Reason: "missing name"}
	}
	if we.Density == nil || *we.Density < 0 {
		return Element{}, &InvalidAssetError{Source: "element", Index: index, Reason: "density must be present and >= 0"}
	}
	col, err := parseHexColor(we.Color)
	if err != nil {
		return Element{}, &InvalidAssetError{Source: "element", Index: index, Reason: err.Error()}
	}

	el := Element{
		Name:              we.Name,
		Color:             col,
		Density:           *we.Density,
		HasColorVariation: we.HasColorVariation,
		IsFlammable:       we.IsFlammable,
		IsStatic:          we.IsStatic,
	}

	switch State(we.State) {
	case "", StateSolid, StateLiquid, StateGas, StateParticle:
		el.State = State(we.State)
	default:
		return Element{}, &InvalidAssetError{Source: "element", Index: index, Reason: "invalid state " + we.State}
	}

	if we.Fluidity != nil {
		if we.Fluidity.Resistance < 0 || we.Fluidity.Resistance > 1 || we.Fluidity.Spread < 0 || we.Fluidity.Spread > 1 {
			return Element{}, &InvalidAssetError{Source: "element", Index: index, Reason: "fluidity resistance/spread must be in [0,1]"}
		}
		el.Fluidity = &Fluidity{Resistance: we.Fluidity.Resistance, Spread: we.Fluidity.Spread}
	}

	if len(we.PartColors) > 0 {
		el.PartColors = make(map[string]color.RGBA, len(we.PartColors))
		for part, hex := range we.PartColors {
			c, err := parseHexColor(hex)
			if err != nil {
				return Element{}, &InvalidAssetError{Source: "element", Index: index, Reason: "partColors." + part + ": " + err.Error()}
			}
			el.PartColors[part] = c
		}
	}

	return el, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color must be #RRGGBB, got %q", s)
	}
	r, err := strconv.ParseUint(s[1:3], 16, 8)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	g, err := strconv.ParseUint(s[3:5], 16, 8)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	b, err := strconv.ParseUint(s[5:7], 16, 8)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, nil
}

// wireCondition mirrors one condition clause; the Type field selects which
// of the remaining fields apply (spec §3).
type wireCondition struct {
	Type         string `json:"type"`
	NeighborType string `json:"neighborType"`
	Attribute    string `json:"attribute"`
	Value        string `json:"value"`
	Min          int    `json:"min"`
	Max          int    `json:"max"`
	Radius       int    `json:"radius"`
	Present      *bool  `json:"present"`
}

// wireRule mirrors both mixed shapes in the rule JSON array (spec §6): a
// transformation rule, or a particle_interaction rule when Type equals
// "particle_interaction".
type wireRule struct {
	Type string `json:"type"`

	// transformation rule fields
	From          string          `json:"from"`
	To            string          `json:"to"`
	Probability   float64         `json:"probability"`
	Threshold     int             `json:"threshold"`
	Conditions    []wireCondition `json:"conditions"`
	Consumes      string          `json:"consumes"`
	SpawnParticle string          `json:"spawnParticle"`

	// particle_interaction fields
	Particle string `json:"particle"`
}

// LoadRules parses the mixed transformation/particle-interaction rule
// array (spec §6). Rules naming an element absent from elements are
// dropped with a diagnostic recorded in the returned LoadReport rather
// than failing the load (spec §7: UnknownElement in a rule is non-fatal).
// Structurally malformed rules (missing from/to, bad probability) are
// InvalidAssetError and do abort the load.
func LoadRules(data []byte, known map[string]Element) (RuleSet, *LoadReport, error) {
	var wire []wireRule
	if err := json.Unmarshal(data, &wire); err != nil {
		return RuleSet{}, nil, fmt.Errorf("decode rule asset: %w", err)
	}

	report := &LoadReport{}
	var set RuleSet

	for i, wr := range wire {
		if wr.Type == "particle_interaction" {
			rule, err := wr.toParticleRule(i)
			if err != nil {
				return RuleSet{}, nil, err
			}
			if _, ok := known[rule.From]; !ok {
				report.drop(&UnknownElementError{Name: rule.From, Context: fmt.Sprintf("particle_interaction rule[%d].from", i)})
				continue
			}
			if _, ok := known[rule.To]; !ok && rule.To != "CRYSTAL" {
				report.drop(&UnknownElementError{Name: rule.To, Context: fmt.Sprintf("particle_interaction rule[%d].to", i)})
				continue
			}
			set.Particles = append(set.Particles, rule)
			continue
		}

		rule, err := wr.toTransformRule(i)
		if err != nil {
			return RuleSet{}, nil, err
		}
		if _, ok := known[rule.From]; !ok {
			report.drop(&UnknownElementError{Name: rule.From, Context: fmt.Sprintf("rule[%d].from", i)})
			continue
		}
		if _, ok := known[rule.To]; !ok {
			report.drop(&UnknownElementError{Name: rule.To, Context: fmt.Sprintf("rule[%d].to", i)})
			continue
		}
		if rule.Consumes != "" {
			if _, ok := known[rule.Consumes]; !ok {
				report.drop(&UnknownElementError{Name: rule.Consumes, Context: fmt.Sprintf("rule[%d].consumes", i)})
				continue
			}
		}
		badCondition := false
		for _, cond := range rule.Conditions {
			if cond.NeighborType == "" {
				continue
			}
			if _, ok := known[cond.NeighborType]; !ok {
				report.drop(&UnknownElementError{Name: cond.NeighborType, Context: fmt.Sprintf("rule[%d].conditions", i)})
				badCondition = true
				break
			}
		}
		if badCondition {
			continue
		}
		set.Transforms = append(set.Transforms, rule)
	}

	return set, report, nil
}

func (wr wireRule) toTransformRule(index int) (TransformRule, error) {
	if wr.From == "" || wr.To == "" {
		return TransformRule{}, &InvalidAssetError{Source: "rule", Index: index, Reason: "from/to are required"}
	}
	if wr.Probability < 0 || wr.Probability > 1 {
		return TransformRule{}, &InvalidAssetError{Source: "rule", Index: index, Reason: "probability must be in [0,1]"}
	}
	if wr.Threshold <= 0 {
		return TransformRule{}, &InvalidAssetError{Source: "rule", Index: index, Reason: "threshold must be > 0"}
	}

	conds := make([]Condition, 0, len(wr.Conditions))
	for ci, wc := range wr.Conditions {
		cond, err := wc.toCondition(index, ci)
		if err != nil {
			return TransformRule{}, err
		}
		conds = append(conds, cond)
	}

	return TransformRule{
		From:          wr.From,
		To:            wr.To,
		Probability:   wr.Probability,
		Threshold:     wr.Threshold,
		Conditions:    conds,
		Consumes:      wr.Consumes,
		SpawnParticle: wr.SpawnParticle,
	}, nil
}

func (wc wireCondition) toCondition(ruleIndex, condIndex int) (Condition, error) {
	switch ConditionKind(wc.Type) {
	case ConditionSurrounding:
		if wc.NeighborType == "" {
			return Condition{}, &InvalidAssetError{Source: "rule", Index: ruleIndex, Reason: fmt.Sprintf("condition[%d]: surrounding requires neighborType", condIndex)}
		}
		return Condition{Kind: ConditionSurrounding, NeighborType: wc.NeighborType, Min: wc.Min, Max: wc.Max}, nil
	case ConditionEnvironment:
		if wc.NeighborType == "" {
			return Condition{}, &InvalidAssetError{Source: "rule", Index: ruleIndex, Reason: fmt.Sprintf("condition[%d]: environment requires neighborType", condIndex)}
		}
		present := true
		if wc.Present != nil {
			present = *wc.Present
		}
		radius := wc.Radius
		if radius <= 0 {
			radius = 1
		}
		return Condition{Kind: ConditionEnvironment, NeighborType: wc.NeighborType, Radius: radius, Present: present}, nil
	case ConditionSurroundingAttr:
		if wc.Attribute == "" {
			return Condition{}, &InvalidAssetError{Source: "rule", Index: ruleIndex, Reason: fmt.Sprintf("condition[%d]: surroundingAttribute requires attribute", condIndex)}
		}
		return Condition{Kind: ConditionSurroundingAttr, Attribute: wc.Attribute, Value: wc.Value, Min: wc.Min, Max: wc.Max}, nil
	default:
		return Condition{}, &InvalidAssetError{Source: "rule", Index: ruleIndex, Reason: fmt.Sprintf("condition[%d]: unknown type %q", condIndex, wc.Type)}
	}
}

func (wr wireRule) toParticleRule(index int) (ParticleInteractionRule, error) {
	if wr.Particle == "" || wr.From == "" || wr.To == "" {
		return ParticleInteractionRule{}, &InvalidAssetError{Source: "rule", Index: index, Reason: "particle_interaction requires particle/from/to"}
	}
	if wr.Probability < 0 || wr.Probability > 1 {
		return ParticleInteractionRule{}, &InvalidAssetError{Source: "rule", Index: index, Reason: "probability must be in [0,1]"}
	}
	return ParticleInteractionRule{Particle: wr.Particle, From: wr.From, To: wr.To, Probability: wr.Probability}, nil
}
