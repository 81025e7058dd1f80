package wildfire

import "math"

// SplotchOp is applied to every cell inside a splotch together with its
// falloff strength: 1 at the center, approaching 0 at the boundary.
type SplotchOp func(strength float64, c *Cell)

// Splotch applies op to the circular neighborhood of (x, y) with the given
// physical radius in meters. Offsets at or beyond the radius are excluded;
// each touched cell is marked fully dirty afterwards.
func (w *World) Splotch(x, y int, radius float64, op SplotchOp) {
	if radius <= 0 || op == nil {
		return
	}
	r := radius / w.cfg.Scale
	bound := int(r)
	for dy := -bound; dy <= bound; dy++ {
		for dx := -bound; dx <= bound; dx++ {
			dis := math.Hypot(float64(dx), float64(dy))
			if dis >= r {
				continue
			}
			c := w.Cell(x+dx, y+dy)
			if c == nil {
				continue
			}
			op(1-dis/r, c)
			c.MarkDirty()
		}
	}
}

// IgniteSplotch raises temperatures in a radius around (x, y), scaled by the
// falloff strength. Grid-cell coordinates; radius in meters.
func (w *World) IgniteSplotch(x, y int, radius, temperatureDelta float64) {
	w.Splotch(x, y, radius, func(strength float64, c *Cell) {
		c.SetTemperature(c.Temperature() + strength*temperatureDelta)
	})
}

// SplashSplotch distributes totalKg of ambient-temperature water over a
// radius around (x, y). Each cell gains mass and the matching thermal
// energy, so splashing cold water onto a hot cell pulls it down.
func (w *World) SplashSplotch(x, y int, radius, totalKg float64) {
	if totalKg <= 0 {
		return
	}
	perCell := totalKg / (math.Pi * w.cfg.Scale * w.cfg.Scale)
	w.Splotch(x, y, radius, func(strength float64, c *Cell) {
		added := strength * perCell
		c.AddMass(Water, added)
		c.Exchange(materials[Water].SpecificHeat * w.ambient * added)
	})
}
