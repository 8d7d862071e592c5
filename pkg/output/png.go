package output

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Downscale shrinks an image rendered at factor× resolution back to its
// target size with a Lanczos filter. Factors below 2 return img unchanged.
func Downscale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}

	bounds := img.Bounds()
	width := uint(max(bounds.Dx()/factor, 1))
	height := uint(max(bounds.Dy()/factor, 1))
	return resize.Resize(width, height, img, resize.Lanczos3)
}

// EncodePNG writes img as PNG, first downscaling by supersample
func EncodePNG(w io.Writer, img image.Image, supersample int) error {
	if err := imaging.Encode(w, Downscale(img, supersample), imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// PNGBytes encodes img as PNG into memory
func PNGBytes(img image.Image, supersample int) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img, supersample); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
