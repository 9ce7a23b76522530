package app

import "flag"

// Config holds the command-line-configurable knobs cmd/ca needs to pick
// a simulation and start its window: which registered core.Sim to run,
// the pixel scale of each cell, the starting seed, and the target ticks
// per second.
type Config struct {
	Sim   string
	Scale int
	Seed  int64
	TPS   int
}

// NewConfig returns terraspiel's default window configuration.
func NewConfig() Config {
	return Config{
		Sim:   "terraspiel",
		Scale: 3,
		Seed:  1337,
		TPS:   30,
	}
}

// Bind registers cfg's fields on fs so cmd/ca can override them from the
// command line (spec §6 "CLI/env. Not part of the core" — this lives in
// the GUI shell, not the simulation package).
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "registered simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per grid cell")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "initial RNG seed")
	fs.IntVar(&c.TPS, "tps", c.TPS, "target ticks per second")
}
