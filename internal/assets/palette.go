package assets

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// variationCount matches spec §4.1's "palette of ~10 variations per
// element."
const variationCount = 10

// buildPalettes precomputes a colour-variation palette per element at
// registry-build time (spec §4.1). Variations are generated by jittering
// hue/saturation/value in HSV space rather than lerping raw RGB
// channels, so grains of the same material read as natural variation
// instead of a visible linear gradient — the teacher's display.go blends
// RGB channels directly for its ground/vegetation overlay; this repo
// swaps that for go-colorful's perceptual blending once real material
// grain is in scope.
func buildPalettes(elements []Element) map[ElementID][]color.RGBA {
	out := make(map[ElementID][]color.RGBA, len(elements))
	for i, el := range elements {
		id := ElementID(i)
		if !el.HasColorVariation {
			out[id] = []color.RGBA{el.Color}
			continue
		}
		out[id] = variationsFor(el.Color, variationCount)
	}
	return out
}

func variationsFor(base color.RGBA, n int) []color.RGBA {
	if n <= 0 {
		n = 1
	}
	baseColor, _ := colorful.MakeColor(base)
	h, s, v := baseColor.Hsv()

	variations := make([]color.RGBA, n)
	for i := 0; i < n; i++ {
		// Deterministic spread across the variation slots: a linear
		// ramp from -1 at slot 0 to +1 at the last slot, so the slots
		// fan out symmetrically around the base in hue/saturation/value.
		t := float64(i) / float64(n-1+boolToInt(n == 1))
		spread := (t - 0.5) * 2 // [-1, 1]

		jh := wrapHue(h + spread*6)
		js := clamp01(s + spread*0.08)
		jv := clamp01(v - spread*0.10)

		c := colorful.Hsv(jh, js, jv)
		variations[i] = toRGBA(c)
	}
	return variations
}

// BlendTint mixes overlay into base in Lab space, weighted by t in
// [0, 1]. Used for plant part-colour blending and withered/burn tinting
// (supplements spec §3's part_colors and §4.3.5's withered transition),
// replacing the teacher's linear-RGB blendColors helper.
func BlendTint(base, overlay color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	bc, _ := colorful.MakeColor(base)
	oc, _ := colorful.MakeColor(overlay)
	return toRGBA(bc.BlendLab(oc, t))
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func wrapHue(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
