package terraspiel

import (
	_ "embed"
	"os"

	"terraspiel/internal/assets"
)

//go:embed assetdata/elements.json
var defaultElementsJSON []byte

//go:embed assetdata/rules.json
var defaultRulesJSON []byte

// mustLoadRegistry loads the configured (or default embedded) element and
// rule assets into a Registry. An InvalidAssetError here means the asset
// files themselves are malformed, which is a build-time defect, not a
// runtime condition a caller can recover from — so it panics rather than
// returning an error, matching the teacher's loadTectonicMap panic-on-bad-
// embedded-asset style.
func mustLoadRegistry(cfg Config) *assets.Registry {
	elementsData := defaultElementsJSON
	rulesData := defaultRulesJSON

	if cfg.ElementsPath != "" {
		data, err := os.ReadFile(cfg.ElementsPath)
		if err != nil {
			panic(err)
		}
		elementsData = data
	}
	if cfg.RulesPath != "" {
		data, err := os.ReadFile(cfg.RulesPath)
		if err != nil {
			panic(err)
		}
		rulesData = data
	}

	elements, err := assets.LoadElements(elementsData)
	if err != nil {
		panic(err)
	}

	known := make(map[string]assets.Element, len(elements))
	for _, el := range elements {
		known[el.Name] = el
	}

	ruleSet, report, err := assets.LoadRules(rulesData, known)
	if err != nil {
		panic(err)
	}
	_ = report // dropped/unknown-element rules are diagnostic only; cmd/rulecheck surfaces them to a human

	return assets.Build(elements, ruleSet)
}
