package behaviors

import (
	"image/color"
	"testing"

	"terraspiel/internal/assets"
	"terraspiel/internal/world"
	"terraspiel/pkg/core"
)

func cloudRegistry(t *testing.T) *assets.Registry {
	t.Helper()
	elements, err := assets.LoadElements([]byte(`[
		{"name": "CLOUD", "color": "#dfe6e9", "density": 0.05, "state": "gas"},
		{"name": "WATER", "color": "#1e6fd9", "density": 1.0, "state": "liquid",
		 "fluidity": {"resistance": 0.0, "spread": 0.9}}
	]`))
	if err != nil {
		t.Fatalf("LoadElements: %v", err)
	}
	return assets.Build(elements, assets.RuleSet{})
}

// TestCloudRains covers scenario 4 (spec §8): a cloud whose rain_counter
// has already crossed its rolled rain_threshold writes WATER into the
// EMPTY cell below it and bumps its own decay_counter by 10.
func TestCloudRains(t *testing.T) {
	reg := cloudRegistry(t)
	cloudID, _ := reg.ID("CLOUD")
	waterID, _ := reg.ID("WATER")

	read := world.NewPlane(3, 3)
	write := world.NewPlane(3, 3)

	self := world.Empty()
	self.Type = cloudID
	self.RainThreshold = 50
	self.RainCounter = 50 // already at threshold; the in-function ++ only pushes it higher
	read.Set(1, 1, self, color.RGBA{}, world.DirNone)

	moved := make([]bool, 9)
	ctx := world.NewContext(read, write, moved, 1, 1, true, reg, core.NewRNG(17))

	Cloud(ctx)

	below, _, _ := write.At(1, 2)
	if below.Type != waterID {
		t.Fatalf("expected WATER below the raining cloud, got type %d", below.Type)
	}

	foundCloud := false
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			cell, _, _ := write.At(x, y)
			if cell.Type != cloudID {
				continue
			}
			foundCloud = true
			if cell.RainCounter != 0 {
				t.Fatalf("expected RainCounter reset to 0 after raining, got %d", cell.RainCounter)
			}
			// DecayCounter picks up +10 from raining plus, with 2%
			// probability, one more +1 from the independent ageing
			// roll earlier in Cloud; assert the lower bound rather
			// than an exact value to stay robust to that roll.
			if cell.DecayCounter < 10 {
				t.Fatalf("expected DecayCounter bumped by at least 10 after raining, got %d", cell.DecayCounter)
			}
		}
	}
	if !foundCloud {
		t.Fatal("expected the cloud cell to still exist somewhere in the write plane")
	}
}
