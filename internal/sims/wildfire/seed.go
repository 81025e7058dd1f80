package wildfire

import "embergrid/internal/core"

// Reset prepares a procedurally seeded initial world using deterministic
// randomness: grass patches, tree stands and water pools scattered over bare
// ground, everything at ambient temperature. A zero seed falls back to the
// configured one.
func (w *World) Reset(seed int64) {
	if w.size.Area() == 0 {
		return
	}
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)

	for i := range w.cells {
		w.cells[i].reset()
	}

	p := w.cfg.Params
	w.seedPatches(Grass, p.GrassPatchCount, p.GrassPatchRadiusMin, p.GrassPatchRadiusMax, p.GrassPatchDensity, p.GrassLoad)
	w.seedPatches(Tree, p.TreePatchCount, p.TreePatchRadiusMin, p.TreePatchRadiusMax, p.TreePatchDensity, p.TreeLoad)
	w.seedPatches(Water, p.WaterPoolCount, p.WaterPoolRadiusMin, p.WaterPoolRadiusMax, 1, p.WaterDepth)

	w.SetTemperature(p.AmbientTemperature)
}

// seedPatches drops count roughly-circular patches of one material. load is
// kg/m² at full density; density is the per-cell fill chance inside a patch.
func (w *World) seedPatches(m Material, count, minR, maxR int, density, load float64) {
	if count <= 0 || load <= 0 || density <= 0 {
		return
	}
	if minR < 0 {
		minR = 0
	}
	if maxR < minR {
		maxR = minR
	}
	kg := load * w.cfg.Scale * w.cfg.Scale
	for p := 0; p < count; p++ {
		x := w.rng.IntN(w.size.W)
		y := w.rng.IntN(w.size.H)
		radius := minR
		if maxR > minR {
			radius += w.rng.IntN(maxR - minR + 1)
		}
		r2 := radius * radius
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx*dx+dy*dy > r2 {
					continue
				}
				if w.rng.Float64() > density {
					continue
				}
				c := w.Cell(x+dx, y+dy)
				if c == nil {
					continue
				}
				c.AddMass(m, kg)
			}
		}
	}
}
