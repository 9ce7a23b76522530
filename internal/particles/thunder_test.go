package particles

import (
	"testing"

	"terraspiel/internal/assets"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

func thunderRegistry(t *testing.T) *assets.Registry {
	t.Helper()
	elements, err := assets.LoadElements([]byte(`[
		{"name": "WATER", "color": "#1e6fd9", "density": 1.0, "state": "liquid",
		 "fluidity": {"resistance": 0.0, "spread": 0.9}},
		{"name": "STONE", "color": "#777777", "density": 5.0, "state": "solid"}
	]`))
	if err != nil {
		t.Fatalf("LoadElements: %v", err)
	}
	return assets.Build(elements, assets.RuleSet{})
}

// TestThunderExplodesOverWater covers scenario 5 (spec §8): a THUNDER
// particle arriving directly over WATER detonates, clearing the impact
// cell and scattering at least one MATERIAL particle, and the thunder
// particle itself dies.
func TestThunderExplodesOverWater(t *testing.T) {
	reg := thunderRegistry(t)
	waterID, _ := reg.ID("WATER")

	plane := world.NewPlane(5, 5)
	waterCell := world.Empty()
	waterCell.Type = waterID
	// RunThunder jitters VX by up to +/-0.75 before integrating position,
	// so a whole row of WATER is laid down under the particle's possible
	// landing spots rather than a single cell.
	for x := 1; x <= 3; x++ {
		plane.Set(x, 3, waterCell, pickColor(reg, waterID, core.NewRNG(1)), world.DirNone)
	}

	thunder := world.Particle{
		ID:   1,
		PX:   2.5,
		PY:   2.9,
		VX:   0,
		VY:   0.1,
		Kind: world.KindThunder,
		Life: 10,
	}
	particles := []world.Particle{thunder}

	res := RunThunder(plane, particles, reg, core.NewRNG(5))

	if particles[0].Alive() {
		t.Fatalf("expected the thunder particle to die on detonation, life=%d", particles[0].Life)
	}
	cx, cy := int(particles[0].PX), int(particles[0].PY)
	impact, _, _ := plane.At(cx, cy)
	if impact.Type != assets.EmptyID {
		t.Fatalf("expected the impact cell (%d,%d) to be cleared, got type %d", cx, cy, impact.Type)
	}
	if len(res.Spawned) == 0 {
		t.Fatal("expected at least one scattered MATERIAL particle from the explosion")
	}
	for _, p := range res.Spawned {
		if p.Kind != world.KindMaterial {
			t.Fatalf("expected every spawned particle to be KindMaterial, got %v", p.Kind)
		}
	}
}
