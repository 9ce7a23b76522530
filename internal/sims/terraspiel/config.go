// Package terraspiel implements the falling-sand cellular-automaton
// core: the World state holder (spec §4.1), the 6-pass tick scheduler
// (spec §4.2), and the core.Sim adapter consumed by cmd/ca. Adapted from
// the teacher's internal/sims/ecology World/Step shape, generalized from
// a single hardcoded vegetation-succession rule set to data-driven
// elements and transformation rules loaded through internal/assets.
package terraspiel

import "strconv"

// Config controls a World's dimensions, seed, and asset sources (spec
// §4.1, §6).
type Config struct {
	Width  int
	Height int
	Seed   int64

	// ElementsPath/RulesPath name on-disk element/rule JSON files that
	// replace the embedded asset set (spec §6). Empty means "use the
	// default embedded set".
	ElementsPath string
	RulesPath    string
}

// DefaultConfig returns Terraspiel's standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 256,
		Seed:   1337,
	}
}

// FromMap populates a Config from a string map, mirroring the teacher's
// flag-style CLI configuration pattern.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["elements"]; ok {
		c.ElementsPath = v
	}
	if v, ok := cfg["rules"]; ok {
		c.RulesPath = v
	}
	return c
}
