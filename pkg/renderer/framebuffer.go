package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Framebuffer is the pixel sink a render pass writes into
type Framebuffer interface {
	Width() int
	Height() int
	SetPixel(x, y int, c core.Color)
	Clear()
	Resize(width, height int)
}

// ImageFramebuffer is an in-memory framebuffer backed by an RGBA image.
// Writes outside the image are ignored.
type ImageFramebuffer struct {
	img        *image.RGBA
	background color.RGBA
}

// NewImageFramebuffer creates a framebuffer cleared to background
func NewImageFramebuffer(width, height int, background core.Color) *ImageFramebuffer {
	fb := &ImageFramebuffer{
		img:        image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		background: background.ToRGBA(),
	}
	fb.Clear()
	return fb
}

func (fb *ImageFramebuffer) Width() int  { return fb.img.Bounds().Dx() }
func (fb *ImageFramebuffer) Height() int { return fb.img.Bounds().Dy() }

// SetPixel stores a color, clamping each channel to [0,1]
func (fb *ImageFramebuffer) SetPixel(x, y int, c core.Color) {
	if !(image.Point{X: x, Y: y}.In(fb.img.Bounds())) {
		return
	}
	fb.img.SetRGBA(x, y, c.ToRGBA())
}

// Pixel returns the stored color at (x,y), or the background when out of range
func (fb *ImageFramebuffer) Pixel(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(fb.img.Bounds())) {
		return fb.background
	}
	return fb.img.RGBAAt(x, y)
}

// Clear fills the framebuffer with the background color
func (fb *ImageFramebuffer) Clear() {
	bounds := fb.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			fb.img.SetRGBA(x, y, fb.background)
		}
	}
}

// Resize reallocates the framebuffer and clears it
func (fb *ImageFramebuffer) Resize(width, height int) {
	fb.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	fb.Clear()
}

// Image returns the underlying image. It is shared, not copied.
func (fb *ImageFramebuffer) Image() *image.RGBA {
	return fb.img
}
