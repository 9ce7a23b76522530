// Package transform implements the Pass 2 transformation-rule engine
// (spec §4.4): per-cell rule matching, condition evaluation, and the
// counter/threshold commit logic that drives a cell from one material
// kind to another. Grounded on the teacher's mooreNeighborCounts scan
// shape in internal/sims/ecology, generalized from that sim's two
// hardcoded vegetation-succession rules to the registry's arbitrary,
// data-driven rule set.
package transform

import (
	"terraspiel/internal/assets"
	"terraspiel/internal/world"
)

// evaluate reports whether every condition attached to rule holds for
// the cell at (x, y) in plane (spec §4.4: "evaluate conditions on the
// current (post-movement) grid").
func evaluate(plane *world.Plane, x, y int, reg *assets.Registry, rule assets.Rule) bool {
	for _, cond := range rule.Conditions {
		if !evaluateCondition(plane, x, y, reg, cond) {
			return false
		}
	}
	return true
}

func evaluateCondition(plane *world.Plane, x, y int, reg *assets.Registry, cond assets.ResolvedCondition) bool {
	switch cond.Kind {
	case assets.ConditionSurrounding:
		count := mooreCount(plane, x, y, func(c world.Cell) bool { return c.Type == cond.NeighborID })
		return inRange(count, cond.Min, cond.Max)

	case assets.ConditionSurroundingAttr:
		count := mooreCount(plane, x, y, func(c world.Cell) bool {
			return attributeMatches(reg.Element(c.Type), cond.Attribute, cond.Value)
		})
		return inRange(count, cond.Min, cond.Max)

	case assets.ConditionEnvironment:
		found := withinRadius(plane, x, y, cond.Radius, func(c world.Cell) bool { return c.Type == cond.NeighborID })
		return found == cond.Present

	default:
		return false
	}
}

func inRange(count, min, max int) bool {
	if max <= 0 {
		max = 8
	}
	return count >= min && count <= max
}

func mooreCount(plane *world.Plane, x, y int, pred func(world.Cell) bool) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !plane.InBounds(nx, ny) {
				continue
			}
			cell, _, _ := plane.At(nx, ny)
			if pred(cell) {
				count++
			}
		}
	}
	return count
}

func withinRadius(plane *world.Plane, x, y, radius int, pred func(world.Cell) bool) bool {
	if radius <= 0 {
		radius = 1
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if dx*dx+dy*dy > r2 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !plane.InBounds(nx, ny) {
				continue
			}
			cell, _, _ := plane.At(nx, ny)
			if pred(cell) {
				return true
			}
		}
	}
	return false
}

// attributeMatches evaluates a surroundingAttribute clause against an
// element definition. Supported attributes mirror the fields a rule
// author would plausibly branch on: state, is_flammable, is_static,
// has_color_variation.
func attributeMatches(el assets.Element, attribute, value string) bool {
	switch attribute {
	case "state":
		return string(el.State) == value
	case "is_flammable":
		return boolString(el.IsFlammable) == value
	case "is_static":
		return boolString(el.IsStatic) == value
	case "has_color_variation":
		return boolString(el.HasColorVariation) == value
	default:
		return false
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
