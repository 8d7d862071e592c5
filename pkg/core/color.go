package core

import "image/color"

// Color is a linear RGB color. Components are nominally in [0,1] but
// intermediate shading values may exceed that range; they are clamped
// only when converted for output.
type Color struct {
	R, G, B float64
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a color from float components
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// NewColorRGB8 creates a color from 0-255 byte components
func NewColorRGB8(r, g, b uint8) Color {
	return Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// ColorFromRGBA converts any image color to a Color, dropping alpha
func ColorFromRGBA(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	// RGBA returns uint32 in [0, 65535]
	return Color{
		R: float64(r) / 65535.0,
		G: float64(g) / 65535.0,
		B: float64(b) / 65535.0,
	}
}

// Add returns the per-channel sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the per-channel product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp returns a color with every channel clamped to [0, 1]
func (c Color) Clamp() Color {
	return Color{
		R: max(0.0, min(1.0, c.R)),
		G: max(0.0, min(1.0, c.G)),
		B: max(0.0, min(1.0, c.B)),
	}
}

// ToRGBA converts to an opaque 8-bit color, saturating out-of-range channels
func (c Color) ToRGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{
		R: uint8(255*c.R + 0.5),
		G: uint8(255*c.G + 0.5),
		B: uint8(255*c.B + 0.5),
		A: 255,
	}
}

// Luminance returns the perceptual luminance of the color
// Uses Rec. 709 weights: 0.2126*R + 0.7152*G + 0.0722*B
func (c Color) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Lerp linearly interpolates from c to other by t
func (c Color) Lerp(other Color, t float64) Color {
	return c.Multiply(1.0 - t).Add(other.Multiply(t))
}
