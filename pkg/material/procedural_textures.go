package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Color) *Texture {
	texture := NewTexture(width, height)
	checkSize = max(1, checkSize)

	for y := 0; y < texture.Height; y++ {
		for x := 0; x < texture.Width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				texture.Set(x, y, color1)
			} else {
				texture.Set(x, y, color2)
			}
		}
	}

	return texture
}

// NewBrickTexture creates offset rows of bricks separated by mortar
func NewBrickTexture(width, height int) *Texture {
	texture := NewTexture(width, height)

	brick := core.NewColorRGB8(139, 69, 19)
	mortar := core.NewColorRGB8(200, 200, 200)

	const brickWidth, brickHeight, mortarWidth = 16, 8, 2

	for y := 0; y < texture.Height; y++ {
		row := y / (brickHeight + mortarWidth)
		offset := 0
		if row%2 == 1 {
			offset = brickWidth / 2
		}

		for x := 0; x < texture.Width; x++ {
			localX := (x + offset) % (brickWidth + mortarWidth)
			localY := y % (brickHeight + mortarWidth)

			if localX < brickWidth && localY < brickHeight {
				// Deterministic per-texel variation in [-10, 9] levels
				variation := float64((x*7+y*11)%20-10) / 255.0
				texture.Set(x, y, brick.Add(core.NewColor(variation, variation, variation)).Clamp())
			} else {
				texture.Set(x, y, mortar)
			}
		}
	}

	return texture
}

// NewWoodTexture creates concentric growth rings around the texture center
func NewWoodTexture(width, height int) *Texture {
	texture := NewTexture(width, height)

	base := core.NewColorRGB8(139, 115, 85)
	ring := core.NewColorRGB8(101, 67, 33)

	centerX := float64(texture.Width) / 2.0
	centerY := float64(texture.Height) / 2.0

	for y := 0; y < texture.Height; y++ {
		for x := 0; x < texture.Width; x++ {
			dx := float64(x) - centerX
			dy := float64(y) - centerY
			distance := math.Sqrt(dx*dx + dy*dy)

			ringPattern := (math.Sin(distance/4.0)*0.5+0.5)*0.3 + 0.7
			noise := float64((x*7+y*11)%100) / 100.0 * 0.1
			factor := max(0.0, min(1.0, ringPattern+noise))

			texture.Set(x, y, ring.Lerp(base, factor))
		}
	}

	return texture
}

// NewMarbleTexture creates crossing sinusoidal veins over a pale base
func NewMarbleTexture(width, height int) *Texture {
	texture := NewTexture(width, height)

	base := core.NewColorRGB8(240, 240, 255)
	vein := core.NewColorRGB8(100, 100, 120)

	for y := 0; y < texture.Height; y++ {
		for x := 0; x < texture.Width; x++ {
			u := float64(x) / float64(texture.Width)
			v := float64(y) / float64(texture.Height)

			vein1 := math.Sin(u*10.0+v*3.0)*0.5 + 0.5
			vein2 := math.Sin(u*7.0-v*5.0)*0.5 + 0.5
			noise := float64((x*13+y*17)%100) / 100.0

			intensity := math.Abs((vein1*vein2+noise*0.3)*2.0 - 1.0)
			factor := max(0.0, min(1.0, 1.0-intensity*0.6))

			texture.Set(x, y, vein.Lerp(base, factor))
		}
	}

	return texture
}

// NewMetalTexture creates horizontal brush streaks
func NewMetalTexture(width, height int) *Texture {
	texture := NewTexture(width, height)

	base := core.NewColorRGB8(180, 180, 200)

	for y := 0; y < texture.Height; y++ {
		brush := math.Sin(float64(y)/2.0)*0.1 + 0.9
		for x := 0; x < texture.Width; x++ {
			noise := float64((x*19+y*23)%100)/100.0*0.2 + 0.8
			factor := max(0.0, min(1.0, brush*noise))

			texture.Set(x, y, base.Multiply(factor))
		}
	}

	return texture
}

// NewUVDebugTexture creates a texture showing UV coordinates as colors
// U maps to red channel, V maps to green channel
func NewUVDebugTexture(width, height int) *Texture {
	texture := NewTexture(width, height)

	for y := 0; y < texture.Height; y++ {
		for x := 0; x < texture.Width; x++ {
			u := float64(x) / float64(max(1, texture.Width-1))
			v := float64(y) / float64(max(1, texture.Height-1))
			texture.Set(x, y, core.NewColor(u, v, 0.0))
		}
	}

	return texture
}

// ProceduralTextures maps generator names, as used in scene files, to constructors
var ProceduralTextures = map[string]func(width, height int) *Texture{
	"checkerboard": func(width, height int) *Texture {
		return NewCheckerboardTexture(width, height, 8, core.White, core.Black)
	},
	"brick":    NewBrickTexture,
	"wood":     NewWoodTexture,
	"marble":   NewMarbleTexture,
	"metal":    NewMetalTexture,
	"uv-debug": NewUVDebugTexture,
}
