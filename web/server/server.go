package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits
const (
	MaxImageSize   = 2000
	MaxSupersample = 4
	MaxFrames      = 360
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	workers   int
}

// NewServer creates a new web server
func NewServer(cfg config.Config) *Server {
	return &Server{
		port:      cfg.Port,
		scenesDir: cfg.ScenesDir,
		workers:   cfg.Workers,
	}
}

// RenderRequest represents the scene and view parameters shared by the
// render, orbit and inspect endpoints
type RenderRequest struct {
	Scene       string  `json:"scene"`       // Scene ID (e.g., "default" or "file:scenes/zen-garden.json")
	Width       int     `json:"width"`       // Image width
	Height      int     `json:"height"`      // Image height
	MaxDepth    int     `json:"maxDepth"`    // Reflection/refraction depth
	FOV         float64 `json:"fov"`         // Vertical field of view in degrees
	Supersample int     `json:"supersample"` // Render at N× and downscale
	Yaw         float64 `json:"yaw"`         // Initial orbit yaw in degrees
	Pitch       float64 `json:"pitch"`       // Initial orbit pitch in degrees
	Zoom        float64 `json:"zoom"`        // Initial zoom step
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/orbit", s.handleOrbit)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the scene and view parameters into req
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	defaults := renderer.DefaultRenderConfig()

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, MaxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 300, 1, MaxImageSize); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", defaults.MaxDepth, 1, 10); err != nil {
		return err
	}
	if req.FOV, err = parseFloatParam(query, "fov", defaults.FOV, 10, 170); err != nil {
		return err
	}
	if req.Supersample, err = parseIntParam(query, "supersample", 1, 1, MaxSupersample); err != nil {
		return err
	}
	if req.Yaw, err = parseFloatParam(query, "yaw", 0, -360, 360); err != nil {
		return err
	}
	if req.Pitch, err = parseFloatParam(query, "pitch", 0, -90, 90); err != nil {
		return err
	}
	if req.Zoom, err = parseFloatParam(query, "zoom", 0, -100, 100); err != nil {
		return err
	}

	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene and applies the view parameters
// to its camera. File scenes must live under the scenes directory.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	if path, ok := scene.FileScenePath(req.Scene); ok {
		rel, err := filepath.Rel(s.scenesDir, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("scene file %s is outside the scenes directory", path)
		}
	}

	sceneObj, err := loaders.OpenScene(req.Scene)
	if err != nil {
		return nil, err
	}

	if sceneObj.Camera != nil {
		sceneObj.Camera.Orbit(mgl64.DegToRad(req.Yaw), mgl64.DegToRad(req.Pitch))
		if req.Zoom != 0 {
			sceneObj.Camera.Zoom(req.Zoom)
		}
	}
	return sceneObj, nil
}

// newRaytracer creates a raytracer for the request
func (s *Server) newRaytracer(req *RenderRequest, logger core.Logger) *renderer.Raytracer {
	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.MaxDepth = req.MaxDepth
	renderConfig.FOV = req.FOV
	renderConfig.NumWorkers = s.workers
	return renderer.NewRaytracer(renderConfig, logger)
}

// imageToBase64PNG converts an image to base64-encoded PNG, downscaling
// supersampled renders
func (s *Server) imageToBase64PNG(img image.Image, supersample int) (string, error) {
	data, err := output.PNGBytes(img, supersample)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
