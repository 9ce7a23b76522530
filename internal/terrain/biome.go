package terrain

// biome mirrors the Biome enum in original_source/src/core/generation.rs:
// which surface/subsurface element set and surface decoration a column
// falls into, chosen from independent temperature/precipitation noise
// fields rather than a fixed left-to-right split.
type biome int

const (
	biomeForest biome = iota
	biomeDesert
	biomeSnowland
)

func classifyBiome(temp, precip float64, cfg Config) biome {
	switch {
	case temp > cfg.DesertTempThreshold && precip < cfg.DesertPrecipThreshold:
		return biomeDesert
	case temp < cfg.SnowTempThreshold:
		return biomeSnowland
	default:
		return biomeForest
	}
}
