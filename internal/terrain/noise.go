package terrain

import "math"

// fieldNoise is a cheap multi-term sine-product scalar noise function:
// it sums a few dissimilar-frequency sine/cosine products so the result
// is smooth but aperiodic over the coordinate ranges a grid actually
// spans. No simplex/Perlin-noise library appears anywhere in the
// example pack's dependency closure (only a hand-rolled sine-based
// terrainNoise turns up, with nothing pulled in for it); offsetX/offsetY
// let one function stand in for several independent noise fields by
// shifting the input domain, mirroring how the original generator seeds
// a fresh noise instance per concern.
func fieldNoise(x, y, offsetX, offsetY float64) float64 {
	x += offsetX
	y += offsetY
	n1 := math.Sin(x*0.031+y*0.017) * math.Cos(y*0.013-x*0.009)
	n2 := math.Sin(x*0.071-y*0.059) * math.Sin(y*0.083+x*0.037)
	n3 := math.Cos(x*0.013+y*0.021) * math.Sin(y*0.0041-x*0.0067)
	return (n1 + n2*0.5 + n3*0.25) / 1.75 // roughly within [-1, 1]
}
