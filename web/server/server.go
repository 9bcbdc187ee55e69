package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/display"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

// Options configures a viewer session
type Options struct {
	Port      int
	FPS       float64 // frame rate cap, 0 for none
	MaxFrames int     // stop rendering after this many frames, 0 for never
	StaticDir string  // viewer page directory, "static/" when empty
}

// Server streams frames of a single interactive render session over HTTP.
// One goroutine renders; handlers talk to it through channels.
type Server struct {
	options   Options
	sessionID string
	renderer  *renderer.Renderer
	presenter *display.ImagePresenter
	console   *Console
	logger    core.Logger

	edits chan geometry.CameraConfig
	tasks chan func(*renderer.Renderer)

	mu      sync.Mutex
	camera  geometry.CameraConfig // last camera handed to the render goroutine
	initial geometry.CameraConfig
	stats   renderer.FrameStats
	frames  int
	running bool
}

// NewServer creates a session rendering sc with config
func NewServer(sc *scene.Scene, config renderer.Config, options Options) (*Server, error) {
	sessionID := uuid.New().String()
	console := NewConsole(200)
	logger := NewWebLogger(sessionID, console)
	presenter := display.NewImagePresenter()

	r, err := renderer.NewRenderer(sc, config, renderer.WithLogger(logger), renderer.WithPresenter(presenter))
	if err != nil {
		return nil, err
	}

	return &Server{
		options:   options,
		sessionID: sessionID,
		renderer:  r,
		presenter: presenter,
		console:   console,
		logger:    logger,
		edits:     make(chan geometry.CameraConfig, 16),
		tasks:     make(chan func(*renderer.Renderer), 16),
		camera:    sc.CameraConfig,
		initial:   sc.CameraConfig,
	}, nil
}

// SessionID identifies this render session in logs and responses
func (s *Server) SessionID() string {
	return s.sessionID
}

// Handler returns the HTTP routes of the viewer
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stream", s.handleStream)
	mux.HandleFunc("/api/camera", s.handleCamera)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/console", s.handleConsole)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	staticDir := s.options.StaticDir
	if staticDir == "" {
		staticDir = "static/"
	}
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	return mux
}

// Start renders and serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.options.Port),
		Handler: s.Handler(),
	}

	renderErr := make(chan error, 1)
	go func() { renderErr <- s.RunRenderLoop(ctx) }()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Printf("Starting web server on http://localhost%s\n", httpServer.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-renderErr
}

// RunRenderLoop renders frames until ctx is cancelled or MaxFrames is reached
func (s *Server) RunRenderLoop(ctx context.Context) error {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	statsChan, errChan := renderer.Loop(ctx, s.renderer, renderer.LoopConfig{
		FPS:    s.options.FPS,
		Frames: s.options.MaxFrames,
		Edits:  s.edits,
		Tasks:  s.tasks,
	})
	for stats := range statsChan {
		s.mu.Lock()
		s.stats = stats
		s.frames++
		s.mu.Unlock()
	}

	err := <-errChan
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// CameraEdit is the body of POST /api/camera
type CameraEdit struct {
	Yaw   float64 `json:"yaw"`   // degrees about the look-at point
	Dolly float64 `json:"dolly"` // positive moves closer
	VFov  float64 `json:"vfov"`  // 0 keeps the current field of view
	Reset bool    `json:"reset"` // back to the scene's camera before applying the rest
}

// CameraResponse reports the camera after an edit
type CameraResponse struct {
	Center [3]float64 `json:"center"`
	LookAt [3]float64 `json:"lookAt"`
	VFov   float64    `json:"vfov"`
}

func (s *Server) handleCamera(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSONError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var edit CameraEdit
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&edit); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid camera edit: %v", err))
		return
	}
	if err := validateEdit(edit); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	camera := s.camera
	if edit.Reset {
		camera = s.initial
	}
	camera = camera.Orbit(edit.Yaw, edit.Dolly)
	if edit.VFov != 0 {
		camera.VFov = edit.VFov
	}

	select {
	case s.edits <- camera:
		s.camera = camera
		s.mu.Unlock()
	default:
		s.mu.Unlock()
		writeJSONError(w, http.StatusServiceUnavailable, "too many pending camera edits")
		return
	}

	writeJSON(w, http.StatusOK, CameraResponse{
		Center: vecToArray(camera.Center),
		LookAt: vecToArray(camera.LookAt),
		VFov:   camera.VFov,
	})
}

func validateEdit(edit CameraEdit) error {
	for name, v := range map[string]float64{"yaw": edit.Yaw, "dolly": edit.Dolly, "vfov": edit.VFov} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
	}
	if math.Abs(edit.Dolly) > 100 {
		return fmt.Errorf("dolly must be between -100 and 100, got: %g", edit.Dolly)
	}
	if edit.VFov < 0 || edit.VFov >= 180 {
		return fmt.Errorf("vfov must be between 0 and 180, got: %g", edit.VFov)
	}
	return nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	response := map[string]interface{}{
		"status":    "ok",
		"session":   s.sessionID,
		"frames":    s.frames,
		"rendering": s.running,
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, response)
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListScenes())
}

func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.console.Messages())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func vecToArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
