package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"embergrid/internal/core"
	"embergrid/internal/sims/wildfire"
)

// Server drives one wildfire world and exposes it over HTTP. All world
// access goes through mu — the simulation core is single-threaded by
// contract, so ticks and edits are strictly serialized.
type Server struct {
	mu     sync.Mutex
	world  *wildfire.World
	logger *Logger
	hub    *streamHub

	fixed *core.FixedStep
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewServer creates a server around an already populated world.
func NewServer(world *wildfire.World, tps int, logger *Logger) *Server {
	return &Server{
		world:  world,
		logger: logger,
		hub:    newStreamHub(logger),
		fixed:  core.NewFixedStep(tps),
		done:   make(chan struct{}),
	}
}

// Run steps the simulation on its fixed cadence until Close is called,
// broadcasting telemetry to websocket subscribers after every tick.
func (s *Server) Run() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				if !s.fixed.ShouldStep() {
					continue
				}
				s.mu.Lock()
				s.world.Update(s.fixed.Dt())
				metrics := s.world.Metrics()
				s.mu.Unlock()
				s.hub.Broadcast(metrics)
			}
		}
	}()
}

// Close stops the tick loop and disconnects streaming clients.
func (s *Server) Close() {
	close(s.done)
	s.wg.Wait()
	s.hub.Close()
}

// Routes registers every handler on the mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("GET /cells", s.handleCells)
	mux.HandleFunc("GET /params", s.handleParams)
	mux.HandleFunc("POST /params", s.handleSetParam)
	mux.HandleFunc("POST /ignite", s.handleIgnite)
	mux.HandleFunc("POST /splash", s.handleSplash)
	mux.Handle("GET /ws", s.hub)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type stateResponse struct {
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Scale   float64          `json:"scale"`
	Ambient float64          `json:"ambient_temperature"`
	Score   float64          `json:"score"`
	Metrics wildfire.Metrics `json:"metrics"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	size := s.world.Size()
	resp := stateResponse{
		Width:   size.W,
		Height:  size.H,
		Scale:   s.world.Scale(),
		Ambient: s.world.AmbientTemperature(),
		Score:   s.world.Score(),
		Metrics: s.world.Metrics(),
	}
	s.mu.Unlock()
	writeJSON(w, s.logger, resp)
}

type cellReading struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Water       float64 `json:"water"`
	Grass       float64 `json:"grass"`
	Tree        float64 `json:"tree"`
	Coal        float64 `json:"coal"`
	Ash         float64 `json:"ash"`
	Temperature float64 `json:"temperature"`
	MatterError float64 `json:"matter_error"`
	EnergyError float64 `json:"energy_error"`
}

// handleCells reads a rectangular window of cell state. ?ack=1 implements
// the pull-and-acknowledge dirty-tracking contract: the returned counters
// are reset once delivered.
func (s *Server) handleCells(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x0 := queryInt(q.Get("x"), 0)
	y0 := queryInt(q.Get("y"), 0)
	cw := queryInt(q.Get("w"), -1)
	ch := queryInt(q.Get("h"), -1)
	ack := q.Get("ack") == "1"
	writeJSON(w, s.logger, s.readCells(x0, y0, cw, ch, ack))
}

// readCells snapshots a window of cells under the world lock. The window is
// clamped to the grid dimensions, so a hostile query can neither size the
// allocation nor lap a toroidal grid; negative width or height selects the
// full extent.
func (s *Server) readCells(x0, y0, cw, ch int, ack bool) []cellReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	size := s.world.Size()
	if cw < 0 || cw > size.W {
		cw = size.W
	}
	if ch < 0 || ch > size.H {
		ch = size.H
	}

	readings := make([]cellReading, 0, cw*ch)
	for y := y0; y < y0+ch; y++ {
		for x := x0; x < x0+cw; x++ {
			c := s.world.Cell(x, y)
			if c == nil {
				continue
			}
			readings = append(readings, cellReading{
				X:           x,
				Y:           y,
				Water:       c.Mass(wildfire.Water),
				Grass:       c.Mass(wildfire.Grass),
				Tree:        c.Mass(wildfire.Tree),
				Coal:        c.Mass(wildfire.Coal),
				Ash:         c.Mass(wildfire.Ash),
				Temperature: c.Temperature(),
				MatterError: c.MatterError(),
				EnergyError: c.EnergyError(),
			})
			if ack {
				c.ResetErrors()
			}
		}
	}
	return readings
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snapshot := s.world.Parameters()
	s.mu.Unlock()
	writeJSON(w, s.logger, snapshot)
}

type setParamRequest struct {
	Key        string   `json:"key"`
	FloatValue *float64 `json:"float_value,omitempty"`
	IntValue   *int     `json:"int_value,omitempty"`
}

func (s *Server) handleSetParam(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req setParamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	ok := false
	switch {
	case req.FloatValue != nil:
		ok = s.world.SetFloatParameter(req.Key, *req.FloatValue)
	case req.IntValue != nil:
		ok = s.world.SetIntParameter(req.Key, *req.IntValue)
	}
	s.mu.Unlock()

	if !ok {
		http.Error(w, "unknown parameter "+req.Key, http.StatusBadRequest)
		return
	}
	s.logger.Infof("parameter %s updated", req.Key)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type splotchRequest struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Radius float64 `json:"radius"`
	// TemperatureDelta applies to ignite requests, in K.
	TemperatureDelta float64 `json:"temperature_delta,omitempty"`
	// WaterKg applies to splash requests.
	WaterKg float64 `json:"water_kg,omitempty"`
}

func (s *Server) handleIgnite(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req splotchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.world.IgniteSplotch(req.X, req.Y, req.Radius, req.TemperatureDelta)
	s.mu.Unlock()
	s.logger.Debugf("ignite at (%d,%d) r=%.1fm dT=%.0fK", req.X, req.Y, req.Radius, req.TemperatureDelta)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSplash(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req splotchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.world.SplashSplotch(req.X, req.Y, req.Radius, req.WaterKg)
	s.mu.Unlock()
	s.logger.Debugf("splash at (%d,%d) r=%.1fm water=%.1fkg", req.X, req.Y, req.Radius, req.WaterKg)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, logger *Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("encode response: %v", err)
	}
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
