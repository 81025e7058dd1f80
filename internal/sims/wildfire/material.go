package wildfire

// Material identifies one of the substances a cell can hold.
type Material int

const (
	Water Material = iota
	Grass
	Tree
	Coal
	Ash

	materialCount
)

// Properties holds the fixed physical constants of one material.
type Properties struct {
	// SpecificHeat in J/(kg·K).
	SpecificHeat float64
	// EnergyContent in J/kg, released when the material combusts.
	EnergyContent float64
	// BurnRate is the exposed-surface coefficient of a combustible, in 1/s.
	BurnRate float64
	// Vaporization is the enthalpy of vaporization in J/kg (water only).
	Vaporization float64
}

var materials = [materialCount]Properties{
	Water: {SpecificHeat: 4186, Vaporization: 2.26e6},
	Grass: {SpecificHeat: 1800, EnergyContent: 1.65e7, BurnRate: 0.4},
	Tree:  {SpecificHeat: 2000, EnergyContent: 1.8e7, BurnRate: 0.02},
	Coal:  {SpecificHeat: 1300, EnergyContent: 3.0e7, BurnRate: 0.008},
	Ash:   {SpecificHeat: 350},
}

// Props returns the constant table entry for the material.
func (m Material) Props() Properties { return materials[m] }

func (m Material) String() string {
	switch m {
	case Water:
		return "water"
	case Grass:
		return "grass"
	case Tree:
		return "tree"
	case Coal:
		return "coal"
	case Ash:
		return "ash"
	default:
		return "unknown"
	}
}

const (
	// boilingPoint is the plateau evaporation relaxes toward, in K.
	boilingPoint = 373.0
	// ignitionPoint is the combustion threshold, in K.
	ignitionPoint = 600.0
	// pyrolysisPoint is the tree→coal decomposition threshold, in K.
	pyrolysisPoint = 700.0
	// reactionScale normalizes the excess temperature of a reaction, in K.
	reactionScale = 200.0
	// reactionExponent shapes the sub-linear reaction response.
	reactionExponent = 0.3

	// burnCapacity caps combustion heat release per unit area, in J/(m²·s).
	// The saturation efficiency approaches one while the fuel-energy rate
	// stays small relative to this capacity.
	burnCapacity = 5.0e5

	// stefanBoltzmann in W/(m²·K⁴).
	stefanBoltzmann = 5.670374419e-8

	// exchangeDeadband suppresses zero-magnitude neighbor transfers, in K.
	exchangeDeadband = 0.001

	// minHeatCapacity floors a cell's heat capacity so an all-empty cell
	// never divides by zero when its temperature is read.
	minHeatCapacity = 1e-6
)
