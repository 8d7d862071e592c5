package loaders

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// LoadTexture loads a PNG, JPEG, GIF, BMP or TIFF image as a texture.
// When width and height are positive the image is resampled to that texel
// grid, otherwise its native size is kept.
func LoadTexture(filename string, width, height int) (*material.Texture, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", filename, err)
	}

	if width > 0 && height > 0 {
		img = imaging.Resize(img, width, height, imaging.Lanczos)
	}

	return TextureFromImage(img), nil
}

// TextureFromImage converts an image to a texture in row-major order with
// the top row first
func TextureFromImage(img image.Image) *material.Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return material.NewTexture(1, 1)
	}

	pixels := make([]core.Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels[y*width+x] = core.ColorFromRGBA(img.At(x+bounds.Min.X, y+bounds.Min.Y))
		}
	}

	return material.NewTextureFromPixels(width, height, pixels)
}
