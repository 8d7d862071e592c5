package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about a render pass
type RenderStats struct {
	Width       int           // Image width in pixels
	Height      int           // Image height in pixels
	TotalPixels int           // Total number of pixels rendered
	Tiles       int           // Number of tiles the image was split into
	Workers     int           // Number of workers used
	MaxDepth    int           // Recursion depth limit used for every primary ray
	Duration    time.Duration // Wall-clock time of the pass
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Duration.Seconds()
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image
// in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			total += core.ColorFromRGBA(img.At(x, y)).Luminance()
		}
	}

	return total / float64(pixels)
}
