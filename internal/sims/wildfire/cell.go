package wildfire

import "math"

// Cell holds the physical state of one grid location: five material masses,
// total thermal energy, and the dirty counters downstream consumers use to
// detect change. Physically invalid intermediate results are clamped rather
// than reported; a cell never errors.
type Cell struct {
	energy       float64
	heatCapacity float64

	mass [materialCount]float64

	matterError float64
	energyError float64
}

// Energy reports the cell's total thermal energy in J.
func (c *Cell) Energy() float64 { return c.energy }

// HeatCapacity reports the composition-weighted heat capacity in J/K. It is
// recomputed on every mass change and floored at minHeatCapacity.
func (c *Cell) HeatCapacity() float64 { return c.heatCapacity }

// Mass reports the current mass of one material in kg.
func (c *Cell) Mass(m Material) float64 { return c.mass[m] }

// TotalMass reports the summed mass of all materials in kg.
func (c *Cell) TotalMass() float64 {
	total := 0.0
	for _, kg := range c.mass {
		total += kg
	}
	return total
}

// Temperature derives the cell temperature from energy and heat capacity.
func (c *Cell) Temperature() float64 { return c.energy / c.heatCapacity }

// SetTemperature rewrites the backing energy so the cell reads the given
// temperature, marking the energy change.
func (c *Cell) SetTemperature(t float64) {
	next := t * c.heatCapacity
	if next < 0 {
		next = 0
	}
	c.energyError += math.Abs(next - c.energy)
	c.energy = next
}

// SetMass replaces one material mass, clamped at zero.
func (c *Cell) SetMass(m Material, kg float64) {
	if kg < 0 {
		kg = 0
	}
	c.matterError += math.Abs(kg - c.mass[m])
	c.mass[m] = kg
	c.recomputeHeatCapacity()
}

// AddMass adds a signed mass delta to one material, clamped at zero.
func (c *Cell) AddMass(m Material, kg float64) {
	c.SetMass(m, c.mass[m]+kg)
}

// Exchange adds signed energy, clamped so energy never goes negative, and
// marks the energy dirty with the absolute delta.
func (c *Cell) Exchange(deltaEnergy float64) {
	c.energy += deltaEnergy
	if c.energy < 0 {
		c.energy = 0
	}
	c.energyError += math.Abs(deltaEnergy)
}

// MatterError reports the absolute mass change accumulated since the last
// acknowledgement.
func (c *Cell) MatterError() float64 { return c.matterError }

// EnergyError reports the absolute energy change accumulated since the last
// acknowledgement.
func (c *Cell) EnergyError() float64 { return c.energyError }

// ResetErrors clears both dirty counters once a consumer has acted on them.
func (c *Cell) ResetErrors() {
	c.matterError = 0
	c.energyError = 0
}

// MarkDirty flags the cell as fully changed for both matter and energy.
func (c *Cell) MarkDirty() {
	c.matterError += c.TotalMass()
	c.energyError += c.energy
}

// Update applies the cell-local reactions for one step over a cell of the
// given area: evaporation, then pyrolysis, then combustion. The order is
// load-bearing — evaporation's energy drain feeds the temperatures the later
// reactions see within the same call.
func (c *Cell) Update(area, dt float64) {
	c.evaporate(dt)
	c.pyrolyze(dt)
	c.combust(area, dt)
}

// evaporate bleeds the energy excess above the boiling plateau into water
// vapor. The 0.5^dt factor models relaxation toward the plateau rather than
// instantaneous flash evaporation: a one-second step releases half of the
// surplus.
func (c *Cell) evaporate(dt float64) {
	if c.Temperature() <= boilingPoint || c.mass[Water] <= 0 {
		return
	}
	excess := c.energy - boilingPoint*c.heatCapacity
	if excess <= 0 {
		return
	}
	released := excess * math.Pow(0.5, dt)
	c.energy -= released
	c.energyError += released
	c.AddMass(Water, -released/materials[Water].Vaporization)
}

// pyrolyze converts tree mass to coal mass above the decomposition
// threshold, 1:1 and without releasing heat.
func (c *Cell) pyrolyze(dt float64) {
	t := c.Temperature()
	if t <= pyrolysisPoint || c.mass[Tree] <= 0 {
		return
	}
	moved := c.mass[Tree] * math.Pow((t-pyrolysisPoint)/reactionScale, reactionExponent) * dt
	if moved > c.mass[Tree] {
		moved = c.mass[Tree]
	}
	c.AddMass(Tree, -moved)
	c.AddMass(Coal, moved)
}

// combust burns the three fuels with a shared temperature response and an
// oxygen/surface-limited saturation efficiency. Consumed fuel mass moves to
// ash in full; the released heat is tracked separately.
func (c *Cell) combust(area, dt float64) {
	t := c.Temperature()
	if t <= ignitionPoint {
		return
	}
	f := math.Pow((t-ignitionPoint)/reactionScale, reactionExponent)

	var massRate [materialCount]float64
	energyRate := 0.0
	for _, m := range [...]Material{Grass, Tree, Coal} {
		r := c.mass[m] * f * materials[m].BurnRate
		massRate[m] = r
		energyRate += r * materials[m].EnergyContent
	}
	if energyRate <= 0 {
		return
	}

	capacity := burnCapacity * area
	efficiency := capacity / (energyRate + capacity)
	scale := dt * efficiency

	burned := 0.0
	for _, m := range [...]Material{Grass, Tree, Coal} {
		consumed := massRate[m] * scale
		if consumed > c.mass[m] {
			consumed = c.mass[m]
		}
		if consumed <= 0 {
			continue
		}
		c.AddMass(m, -consumed)
		burned += consumed
	}
	if burned > 0 {
		c.AddMass(Ash, burned)
	}

	released := energyRate * scale
	c.energy += released
	c.energyError += released
}

// radiate applies one closed-form Stefan–Boltzmann cooling step. Solving
// dT/dt = -k·T⁴ exactly keeps the temperature positive and bounded for any
// step size, where explicit Euler goes unstable at high temperature.
func (c *Cell) radiate(area, dt float64) {
	t := c.Temperature()
	if t <= 0 {
		return
	}
	k := stefanBoltzmann * area / c.heatCapacity
	c.SetTemperature(math.Pow(3*k*dt+math.Pow(t, -3), -1.0/3.0))
}

func (c *Cell) recomputeHeatCapacity() {
	total := 0.0
	for m, kg := range c.mass {
		total += kg * materials[m].SpecificHeat
	}
	if total < minHeatCapacity {
		total = minHeatCapacity
	}
	c.heatCapacity = total
}

// reset returns the cell to an empty state with no dirt recorded.
func (c *Cell) reset() {
	*c = Cell{}
	c.recomputeHeatCapacity()
}
