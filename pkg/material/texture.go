package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture is a fixed grid of colors sampled by normalized UV coordinates
type Texture struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x]
}

// NewTexture creates a white texture. Dimensions below 1 are raised to 1 so
// that sampling is always possible.
func NewTexture(width, height int) *Texture {
	width = max(1, width)
	height = max(1, height)

	pixels := make([]core.Color, width*height)
	for i := range pixels {
		pixels[i] = core.White
	}

	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewTextureFromPixels wraps an existing row-major pixel slice.
// It panics if the slice does not match the dimensions.
func NewTextureFromPixels(width, height int, pixels []core.Color) *Texture {
	if width < 1 || height < 1 || len(pixels) != width*height {
		panic("material: texture pixel count does not match dimensions")
	}
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Set writes a texel; out-of-range writes are ignored
func (t *Texture) Set(x, y int, c core.Color) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// At returns the texel at grid coordinates
func (t *Texture) At(x, y int) core.Color {
	return t.Pixels[y*t.Width+x]
}

// Sample returns the texel nearest to (u, v). U and V are clamped to [0,1];
// (0,0) is the first texel of the grid and (1,1) the last.
func (t *Texture) Sample(u, v float64) core.Color {
	u = clampUnit(u)
	v = clampUnit(v)

	x := min(int(u*float64(t.Width-1)), t.Width-1)
	y := min(int(v*float64(t.Height-1)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}

// clampUnit clamps to [0,1], mapping NaN to 0
func clampUnit(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return max(0.0, min(1.0, x))
}
