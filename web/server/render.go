package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// OrbitRequest adds the animation parameters to a render request
type OrbitRequest struct {
	RenderRequest
	Frames    int     `json:"frames"`
	YawStep   float64 `json:"yawStep"`   // Degrees per frame
	PitchStep float64 `json:"pitchStep"` // Degrees per frame
	ZoomStep  float64 `json:"zoomStep"`
}

// FrameUpdate represents a single orbit frame sent via SSE
type FrameUpdate struct {
	FrameNumber     int        `json:"frameNumber"`
	TotalFrames     int        `json:"totalFrames"`
	ImageData       string     `json:"imageData"` // Base64 encoded PNG
	Eye             [3]float64 `json:"eye"`
	RenderMs        int64      `json:"renderMs"`
	ElapsedMs       int64      `json:"elapsedMs"`
	PixelsPerSecond float64    `json:"pixelsPerSecond"`
	PrimitiveCount  int        `json:"primitiveCount"`
	IsLast          bool       `json:"isLast"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a single frame and returns it as a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	raytracer := s.newRaytracer(req, NewWebLogger(renderID, nil))

	img, stats := raytracer.RenderImage(sceneObj, req.Width*req.Supersample, req.Height*req.Supersample)
	data, err := output.PNGBytes(img, req.Supersample)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

// handleOrbit renders an orbit animation, streaming frames via SSE
func (s *Server) handleOrbit(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseOrbitRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(&req.RenderRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.setSSEHeaders(w)
	ctx := r.Context()

	// Single writer goroutine owns the response
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	consoleChan, webLogger := s.setupConsoleLogging()
	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	raytracer := s.newRaytracer(&req.RenderRequest, webLogger)
	startTime := time.Now()
	frameChan, errChan := raytracer.RenderOrbit(ctx, sceneObj, renderer.OrbitOptions{
		Width:     req.Width * req.Supersample,
		Height:    req.Height * req.Supersample,
		Frames:    req.Frames,
		YawStep:   mgl64.DegToRad(req.YawStep),
		PitchStep: mgl64.DegToRad(req.PitchStep),
		ZoomStep:  req.ZoomStep,
	})

	for frame := range frameChan {
		s.handleFrame(ctx, sseEventChan, frame, req, sceneObj.GetPrimitiveCount(), startTime)
	}

	// The render goroutine has finished logging once errChan is closed
	renderErr := <-errChan
	close(consoleChan)
	consoleWG.Wait()

	if renderErr != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", renderErr))
	} else {
		select {
		case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
		case <-ctx.Done():
		}
	}

	close(sseEventChan)
	<-writerDone
}

// parseOrbitRequest parses the scene parameters plus the animation settings
func (s *Server) parseOrbitRequest(r *http.Request) (*OrbitRequest, error) {
	req := &OrbitRequest{}
	if err := s.parseCommonSceneParams(r, &req.RenderRequest); err != nil {
		return nil, err
	}

	query := r.URL.Query()
	var err error
	if req.Frames, err = parseIntParam(query, "frames", 36, 1, MaxFrames); err != nil {
		return nil, err
	}
	if req.YawStep, err = parseFloatParam(query, "yawStep", 10, -180, 180); err != nil {
		return nil, err
	}
	if req.PitchStep, err = parseFloatParam(query, "pitchStep", 0, -45, 45); err != nil {
		return nil, err
	}
	if req.ZoomStep, err = parseFloatParam(query, "zoomStep", 0, -10, 10); err != nil {
		return nil, err
	}

	if req.Width*req.Height*req.Supersample*req.Supersample*req.Frames > 800*600*36 {
		log.Printf("Render warning: Large orbit may render slowly")
	}

	return req, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes every SSE event from a single goroutine until the
// channel is closed or the client disconnects
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleFrame encodes one orbit frame and sends it
func (s *Server) handleFrame(ctx context.Context, sseEventChan chan SSEEvent, frame renderer.FrameResult, req *OrbitRequest, primitiveCount int, startTime time.Time) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	imageData, err := s.imageToBase64PNG(frame.Image, req.Supersample)
	if err != nil {
		log.Printf("Error encoding frame %d: %v", frame.FrameNumber, err)
		return
	}

	update := FrameUpdate{
		FrameNumber:     frame.FrameNumber,
		TotalFrames:     req.Frames,
		ImageData:       imageData,
		Eye:             [3]float64{frame.Eye.X, frame.Eye.Y, frame.Eye.Z},
		RenderMs:        frame.Stats.Duration.Milliseconds(),
		ElapsedMs:       time.Since(startTime).Milliseconds(),
		PixelsPerSecond: frame.Stats.PixelsPerSecond(),
		PrimitiveCount:  primitiveCount,
		IsLast:          frame.IsLast,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling frame update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "frame", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
