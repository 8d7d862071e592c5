package renderer

import (
	"context"
	"image"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// OrbitOptions configures an orbit animation
type OrbitOptions struct {
	Width     int
	Height    int
	Frames    int     // Number of frames to render
	YawStep   float64 // Radians added to yaw between frames
	PitchStep float64 // Radians added to pitch between frames
	ZoomStep  float64 // Distance moved toward the center between frames
}

// DefaultOrbitOptions returns a one-turn orbit in 36 frames
func DefaultOrbitOptions() OrbitOptions {
	return OrbitOptions{
		Width:   400,
		Height:  300,
		Frames:  36,
		YawStep: 2 * math.Pi / 36,
	}
}

// FrameResult contains one rendered frame of an orbit animation
type FrameResult struct {
	FrameNumber int // 1-based
	Image       *image.RGBA
	Stats       RenderStats
	Eye         core.Vec3 // Camera position the frame was rendered from
	IsLast      bool
}

// RenderOrbit renders frames with channel-based communication, moving the
// scene camera by the configured steps between frames. The camera is only
// touched while no pass is in flight. The caller should drain the frame
// channel; cancellation is checked between frames.
func (rt *Raytracer) RenderOrbit(ctx context.Context, scene Scene, options OrbitOptions) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		camera := scene.GetCamera()
		rt.logger.Printf("Starting orbit render with %d frames...\n", options.Frames)

		for frame := 1; frame <= options.Frames; frame++ {
			select {
			case <-ctx.Done():
				rt.logger.Printf("Orbit cancelled before frame %d\n", frame)
				errChan <- ctx.Err()
				return
			default:
			}

			eye := camera.Eye
			img, stats := rt.RenderImage(scene, options.Width, options.Height)

			result := FrameResult{
				FrameNumber: frame,
				Image:       img,
				Stats:       stats,
				Eye:         eye,
				IsLast:      frame == options.Frames,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			camera.Orbit(options.YawStep, options.PitchStep)
			if options.ZoomStep != 0 {
				camera.Zoom(options.ZoomStep)
			}
		}
	}()

	return frameChan, errChan
}
