package wildfire

import (
	"strconv"

	"embergrid/internal/core"
)

var (
	_ core.FloatParameterSetter = (*World)(nil)
	_ core.IntParameterSetter   = (*World)(nil)
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				floatParam("scale", "Cell edge (m)", w.cfg.Scale),
				boolParam("wrap", "Toroidal wrap", w.cfg.Wrap),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Heat Transfer",
			Params: []core.Parameter{
				floatParam("ambient_temperature", "Ambient temperature (K)", params.AmbientTemperature),
				floatParam("vertical_heat_transfer", "Vertical heat transfer", params.VerticalHeatTransfer),
				floatParam("horizontal_heat_transfer", "Horizontal heat transfer", params.HorizontalHeatTransfer),
			},
		},
		{
			Name: "Terrain Seeding",
			Params: []core.Parameter{
				intParam("grass_patch_count", "Grass patch count", params.GrassPatchCount),
				intParam("grass_patch_radius_min", "Grass patch radius min", params.GrassPatchRadiusMin),
				intParam("grass_patch_radius_max", "Grass patch radius max", params.GrassPatchRadiusMax),
				floatParam("grass_patch_density", "Grass patch density", params.GrassPatchDensity),
				floatParam("grass_load", "Grass load (kg/m²)", params.GrassLoad),
				intParam("tree_patch_count", "Tree patch count", params.TreePatchCount),
				intParam("tree_patch_radius_min", "Tree patch radius min", params.TreePatchRadiusMin),
				intParam("tree_patch_radius_max", "Tree patch radius max", params.TreePatchRadiusMax),
				floatParam("tree_patch_density", "Tree patch density", params.TreePatchDensity),
				floatParam("tree_load", "Tree load (kg/m²)", params.TreeLoad),
				intParam("water_pool_count", "Water pool count", params.WaterPoolCount),
				intParam("water_pool_radius_min", "Water pool radius min", params.WaterPoolRadiusMin),
				intParam("water_pool_radius_max", "Water pool radius max", params.WaterPoolRadiusMax),
				floatParam("water_depth", "Water depth (kg/m²)", params.WaterDepth),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// SetFloatParameter updates one float tunable by key, clamping to its valid
// range. Returns false for unknown keys.
func (w *World) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "ambient_temperature":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.AmbientTemperature = value
		w.ambient = value
	case "vertical_heat_transfer":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.VerticalHeatTransfer = value
	case "horizontal_heat_transfer":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.HorizontalHeatTransfer = value
	case "grass_patch_density":
		w.cfg.Params.GrassPatchDensity = clamp01(value)
	case "tree_patch_density":
		w.cfg.Params.TreePatchDensity = clamp01(value)
	case "grass_load":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.GrassLoad = value
	case "tree_load":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.TreeLoad = value
	case "water_depth":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.WaterDepth = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates one integer tunable by key. Returns false for
// unknown keys.
func (w *World) SetIntParameter(key string, value int) bool {
	if value < 0 {
		value = 0
	}
	switch key {
	case "grass_patch_count":
		w.cfg.Params.GrassPatchCount = value
	case "grass_patch_radius_min":
		w.cfg.Params.GrassPatchRadiusMin = value
	case "grass_patch_radius_max":
		w.cfg.Params.GrassPatchRadiusMax = value
	case "tree_patch_count":
		w.cfg.Params.TreePatchCount = value
	case "tree_patch_radius_min":
		w.cfg.Params.TreePatchRadiusMin = value
	case "tree_patch_radius_max":
		w.cfg.Params.TreePatchRadiusMax = value
	case "water_pool_count":
		w.cfg.Params.WaterPoolCount = value
	case "water_pool_radius_min":
		w.cfg.Params.WaterPoolRadiusMin = value
	case "water_pool_radius_max":
		w.cfg.Params.WaterPoolRadiusMax = value
	default:
		return false
	}
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
