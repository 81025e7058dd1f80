package wildfire

import (
	"math"

	"embergrid/internal/core"
)

// World owns a fixed-size grid of cells, the uniform ambient temperature,
// and the topology chosen at construction. Cells are never created or
// destroyed individually — only their state mutates.
//
// The world is single-threaded by contract: the driver steps it with Update
// between edits, and nothing runs concurrently.
type World struct {
	cfg  Config
	size core.Size

	cells   []Cell
	ambient float64

	topo Topology

	rng *core.RNG
}

// New returns a wildfire simulation with the provided dimensions using
// defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options. Cells
// start empty; populate them with Reset or Populate before stepping.
func NewWithConfig(cfg Config) *World {
	if cfg.Width < 0 {
		cfg.Width = 0
	}
	if cfg.Height < 0 {
		cfg.Height = 0
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	var topo Topology = Bounded{}
	if cfg.Wrap {
		topo = Toroidal{}
	}
	w := &World{
		cfg:     cfg,
		size:    core.Size{W: cfg.Width, H: cfg.Height},
		cells:   make([]Cell, cfg.Width*cfg.Height),
		ambient: cfg.Params.AmbientTemperature,
		topo:    topo,
		rng:     core.NewRNG(cfg.Seed),
	}
	for i := range w.cells {
		w.cells[i].reset()
	}
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "wildfire" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.size }

// Scale reports the physical edge length of one cell in meters.
func (w *World) Scale() float64 { return w.cfg.Scale }

// AmbientTemperature reports the uniform air temperature in K.
func (w *World) AmbientTemperature() float64 { return w.ambient }

// SetAmbientTemperature changes the air temperature without touching cells.
func (w *World) SetAmbientTemperature(t float64) {
	if t < 0 {
		t = 0
	}
	w.ambient = t
}

// Cell resolves the cell at (x, y) through the active topology: nil outside
// a bounded grid, wrapped on a torus.
func (w *World) Cell(x, y int) *Cell {
	if len(w.cells) == 0 {
		return nil
	}
	return w.topo.Cell(w, x, y)
}

// Update advances the simulation by dt seconds: cell-local reactions first,
// then convective coupling to ambient air, then closed-form radiative
// cooling, then one pairwise exchange pass owned by the topology. Callers
// should keep dt at or below core.MaxStepSeconds.
func (w *World) Update(dt float64) {
	area := w.cfg.Scale * w.cfg.Scale
	vht := w.cfg.Params.VerticalHeatTransfer
	for i := range w.cells {
		c := &w.cells[i]
		c.Update(area, dt)
		c.Exchange((w.ambient - c.Temperature()) * area * vht * dt)
		c.radiate(area, dt)
	}
	w.topo.ExchangeAll(w, dt)
}

// exchangePair moves heat between two adjacent cells proportionally to
// their temperature difference. The transfer is symmetric, so the pair's
// total energy is conserved unless the receiver's non-negative clamp fires.
func (w *World) exchangePair(dt float64, a, b *Cell) {
	ta, tb := a.Temperature(), b.Temperature()
	if math.Abs(ta-tb) <= exchangeDeadband {
		return
	}
	q := (ta - tb) * w.cfg.Params.HorizontalHeatTransfer * dt
	a.Exchange(-q)
	b.Exchange(q)
}

// SetTemperature uniformly rewrites every cell's temperature and the
// ambient temperature. Intended for initialization, not per-tick use.
func (w *World) SetTemperature(t float64) {
	if t < 0 {
		t = 0
	}
	for i := range w.cells {
		w.cells[i].SetTemperature(t)
	}
	w.ambient = t
}

// Score sums the living biomass (grass plus tree) over all cells.
func (w *World) Score() float64 {
	total := 0.0
	for i := range w.cells {
		total += w.cells[i].mass[Grass] + w.cells[i].mass[Tree]
	}
	return total
}

// Metrics summarizes the world state for telemetry consumers.
type Metrics struct {
	LivingBiomass   float64 `json:"living_biomass"`
	WaterMass       float64 `json:"water_mass"`
	AshMass         float64 `json:"ash_mass"`
	MeanTemperature float64 `json:"mean_temperature"`
	BurningCells    int     `json:"burning_cells"`
}

// Metrics computes the scalar telemetry for the current state.
func (w *World) Metrics() Metrics {
	var m Metrics
	for i := range w.cells {
		c := &w.cells[i]
		m.LivingBiomass += c.mass[Grass] + c.mass[Tree]
		m.WaterMass += c.mass[Water]
		m.AshMass += c.mass[Ash]
		t := c.Temperature()
		m.MeanTemperature += t
		if t > ignitionPoint {
			m.BurningCells++
		}
	}
	if n := len(w.cells); n > 0 {
		m.MeanTemperature /= float64(n)
	}
	return m
}

// PopulateFunc supplies the initial grass, tree and water masses for the
// cell at (x, y), in kg.
type PopulateFunc func(x, y int) (grass, tree, water float64)

// Populate overwrites the vegetation and water of every cell from the
// provided source, then sets the whole grid to ambient temperature. Coal and
// ash are cleared. Used by initial-condition loaders.
func (w *World) Populate(fn PopulateFunc) {
	for y := 0; y < w.size.H; y++ {
		for x := 0; x < w.size.W; x++ {
			c := &w.cells[y*w.size.W+x]
			grass, tree, water := fn(x, y)
			c.SetMass(Grass, grass)
			c.SetMass(Tree, tree)
			c.SetMass(Water, water)
			c.SetMass(Coal, 0)
			c.SetMass(Ash, 0)
			c.MarkDirty()
		}
	}
	w.SetTemperature(w.cfg.Params.AmbientTemperature)
}
