package renderer

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for a render pass
type RenderConfig struct {
	MaxDepth       int     // Maximum reflection/refraction recursion depth
	FOV            float64 // Vertical field of view in degrees
	NumWorkers     int     // Number of parallel workers (0 = use CPU count)
	TileSize       int     // Edge length of each square tile in pixels
	UseSceneBounds bool    // Skip the object scan for rays that miss the scene bound
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxDepth:       3,
		FOV:            60,
		NumWorkers:     0, // Auto-detect CPU count
		TileSize:       32,
		UseSceneBounds: true,
	}
}

// Scene is what the render driver needs from a scene
type Scene interface {
	GetWorld() *World
	GetCamera() *Camera
}

// Raytracer drives render passes over a framebuffer
type Raytracer struct {
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer. Non-positive MaxDepth, FOV and
// TileSize fall back to their defaults.
func NewRaytracer(config RenderConfig, logger core.Logger) *Raytracer {
	defaults := DefaultRenderConfig()
	if config.MaxDepth <= 0 {
		config.MaxDepth = defaults.MaxDepth
	}
	if config.FOV <= 0 || config.FOV >= 180 {
		config.FOV = defaults.FOV
	}
	if config.TileSize <= 0 {
		config.TileSize = defaults.TileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{config: config, logger: logger}
}

// Config returns the effective configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// PrimaryRay returns the world-space direction of the ray through pixel
// (x,y) of a width×height image, with y=0 at the top
func (rt *Raytracer) PrimaryRay(camera *Camera, x, y, width, height int) core.Vec3 {
	return primaryDirection(camera, x, y, width, height, math.Tan(mgl64.DegToRad(rt.config.FOV)/2))
}

func primaryDirection(camera *Camera, x, y, width, height int, fovScale float64) core.Vec3 {
	w := float64(width)
	h := float64(height)
	aspect := w / h

	screenX := (2*float64(x)/w - 1) * aspect * fovScale
	screenY := (-2*float64(y)/h + 1) * fovScale

	return camera.BasisChange(core.NewVec3(screenX, screenY, -1).Normalize())
}

// renderPass is the per-pass state shared by all workers. Everything but
// colors is read-only; each pixel owns one slot of colors.
type renderPass struct {
	world    *World
	camera   Camera
	width    int
	height   int
	maxDepth int
	fovScale float64
	colors   []core.Color
}

// renderTile shades every pixel in the tile into its slot
func (p *renderPass) renderTile(tile Tile) int {
	bounds := tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dir := primaryDirection(&p.camera, x, y, p.width, p.height, p.fovScale)
			p.colors[y*p.width+x] = CastRay(p.camera.Eye, dir, p.world, p.maxDepth)
		}
	}
	return bounds.Dx() * bounds.Dy()
}

// Render shades every pixel of fb from the scene's camera. Pixels are
// computed in parallel tiles and then written to fb in row order.
func (rt *Raytracer) Render(fb Framebuffer, scene Scene) RenderStats {
	start := time.Now()
	width, height := fb.Width(), fb.Height()
	if width <= 0 || height <= 0 {
		return RenderStats{Width: width, Height: height, MaxDepth: rt.config.MaxDepth}
	}

	world := scene.GetWorld()
	if !rt.config.UseSceneBounds && world.Bounds != nil {
		unbounded := *world
		unbounded.Bounds = nil
		world = &unbounded
	}

	pass := &renderPass{
		world:    world,
		camera:   *scene.GetCamera(),
		width:    width,
		height:   height,
		maxDepth: rt.config.MaxDepth,
		fovScale: math.Tan(mgl64.DegToRad(rt.config.FOV) / 2),
		colors:   make([]core.Color, width*height),
	}

	tiles := NewTileGrid(width, height, rt.config.TileSize)
	pool := NewWorkerPool(rt.config.NumWorkers, len(tiles))
	pool.Start()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Pass: pass})
	}

	pixels := 0
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		pixels += result.Pixels
	}
	pool.Stop()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fb.SetPixel(x, y, pass.colors[y*width+x])
		}
	}

	stats := RenderStats{
		Width:       width,
		Height:      height,
		TotalPixels: pixels,
		Tiles:       len(tiles),
		Workers:     pool.GetNumWorkers(),
		MaxDepth:    rt.config.MaxDepth,
		Duration:    time.Since(start),
	}

	rt.logger.Printf("Rendered %dx%d in %v (%d tiles, %d workers)\n",
		width, height, stats.Duration, stats.Tiles, stats.Workers)

	return stats
}

// RenderImage renders the scene into a new width×height image
func (rt *Raytracer) RenderImage(scene Scene, width, height int) (*image.RGBA, RenderStats) {
	fb := NewImageFramebuffer(width, height, core.Black)
	stats := rt.Render(fb, scene)
	return fb.Image(), stats
}
