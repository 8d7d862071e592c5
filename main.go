package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options are the parsed command line settings
type options struct {
	sceneName   string
	width       int
	height      int
	workers     int
	supersample int
	frames      int
	yawStep     float64 // Degrees per frame
	pitchStep   float64 // Degrees per frame
	zoomStep    float64
	maxDepth    int
	fov         float64
	outputDir   string
	upload      bool
	noBounds    bool
	help        bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load(getEnv("RT_ROOT_DIR", "."))
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := run(ctx, os.Args[1:], cfg, os.Stdout, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// parseFlags reads command line flags, using cfg for the defaults
func parseFlags(args []string, cfg config.Config, stdout io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)

	fs.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name, scene ID from the list, or path to a .json scene file")
	fs.IntVar(&opts.width, "width", cfg.Width, "Output width in pixels")
	fs.IntVar(&opts.height, "height", cfg.Height, "Output height in pixels")
	fs.IntVar(&opts.workers, "workers", cfg.Workers, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&opts.supersample, "supersample", cfg.Supersample, "Render at N× resolution and downscale")
	fs.IntVar(&opts.frames, "frames", 1, "Number of orbit frames to render")
	fs.Float64Var(&opts.yawStep, "yaw-step", 3.6, "Orbit yaw between frames in degrees")
	fs.Float64Var(&opts.pitchStep, "pitch-step", 0, "Orbit pitch between frames in degrees")
	fs.Float64Var(&opts.zoomStep, "zoom", 0, "Distance to move toward the center between frames")
	fs.IntVar(&opts.maxDepth, "max-depth", renderer.DefaultRenderConfig().MaxDepth, "Maximum reflection/refraction depth")
	fs.Float64Var(&opts.fov, "fov", renderer.DefaultRenderConfig().FOV, "Vertical field of view in degrees")
	fs.StringVar(&opts.outputDir, "output", cfg.OutputDir, "Directory for rendered frames")
	fs.BoolVar(&opts.upload, "upload", false, "Also upload frames to S3 (needs S3_* settings)")
	fs.BoolVar(&opts.noBounds, "no-bounds", false, "Disable the scene bound fast path")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.help {
		fmt.Fprintln(stdout, "Whitted Raytracer")
		fmt.Fprintln(stdout, "Usage: raytracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Fprintf(stdout, "  %-10s %s\n", info.ID, info.Description)
		}
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Frames are saved to <output>/<scene>/frame_NNNN.png")
		return opts, nil
	}

	switch {
	case opts.width <= 0 || opts.height <= 0:
		return opts, fmt.Errorf("invalid size %dx%d: width and height must be positive", opts.width, opts.height)
	case opts.supersample < 1 || opts.supersample > 8:
		return opts, fmt.Errorf("invalid supersample %d: must be between 1 and 8", opts.supersample)
	case opts.frames < 1:
		return opts, fmt.Errorf("invalid frames %d: must be at least 1", opts.frames)
	}

	return opts, nil
}

// createScene resolves a scene name: a .json path, a file scene ID, or a
// built-in scene
func createScene(name string) (*scene.Scene, error) {
	if strings.HasSuffix(name, ".json") {
		return loaders.LoadScene(name)
	}
	return loaders.OpenScene(name)
}

// run renders the requested frames and publishes each one
func run(ctx context.Context, args []string, cfg config.Config, stdout io.Writer, logger core.Logger) error {
	opts, err := parseFlags(args, cfg, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if opts.help {
		return nil
	}

	selectedScene, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}

	publishers := []output.Publisher{output.NewFilePublisher(opts.outputDir)}
	if opts.upload {
		s3Publisher, err := output.NewS3Publisher(cfg.S3, logger)
		if err != nil {
			return err
		}
		publishers = append(publishers, s3Publisher)
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = opts.workers
	renderConfig.MaxDepth = opts.maxDepth
	renderConfig.FOV = opts.fov
	renderConfig.UseSceneBounds = !opts.noBounds
	raytracer := renderer.NewRaytracer(renderConfig, logger)

	logger.Printf("Rendering scene %q (%d objects, %d lights) at %dx%d, %d frame(s)...\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), len(selectedScene.Lights),
		opts.width, opts.height, opts.frames)

	startTime := time.Now()
	frames, errs := raytracer.RenderOrbit(ctx, selectedScene, renderer.OrbitOptions{
		Width:     opts.width * opts.supersample,
		Height:    opts.height * opts.supersample,
		Frames:    opts.frames,
		YawStep:   mgl64.DegToRad(opts.yawStep),
		PitchStep: mgl64.DegToRad(opts.pitchStep),
		ZoomStep:  opts.zoomStep,
	})

	var publishErr error
	for frame := range frames {
		if publishErr != nil {
			continue // Drain remaining frames
		}

		data, err := output.PNGBytes(frame.Image, opts.supersample)
		if err != nil {
			publishErr = err
			continue
		}

		key := output.FrameKey(selectedScene.Name, frame.FrameNumber)
		for _, publisher := range publishers {
			location, err := publisher.Publish(ctx, key, data)
			if err != nil {
				publishErr = err
				break
			}
			fmt.Fprintf(stdout, "Frame %d saved as %s\n", frame.FrameNumber, location)
		}
	}

	if err := <-errs; err != nil {
		return err
	}
	if publishErr != nil {
		return publishErr
	}

	logger.Printf("Render completed in %v\n", time.Since(startTime))
	return nil
}
