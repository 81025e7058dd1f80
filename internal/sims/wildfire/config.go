package wildfire

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Params holds the tunable coefficients of the simulation.
type Params struct {
	// AmbientTemperature of the air above the grid, in K.
	AmbientTemperature float64 `yaml:"ambient_temperature"`
	// VerticalHeatTransfer couples cells to ambient air, in J/(K·m²·s).
	VerticalHeatTransfer float64 `yaml:"vertical_heat_transfer"`
	// HorizontalHeatTransfer couples neighboring cells, in J/(K·s).
	HorizontalHeatTransfer float64 `yaml:"horizontal_heat_transfer"`

	// Procedural seeding: vegetation patches and water pools laid down by
	// Reset. Loads are kg per m² at full density.
	GrassPatchCount     int     `yaml:"grass_patch_count"`
	GrassPatchRadiusMin int     `yaml:"grass_patch_radius_min"`
	GrassPatchRadiusMax int     `yaml:"grass_patch_radius_max"`
	GrassPatchDensity   float64 `yaml:"grass_patch_density"`
	GrassLoad           float64 `yaml:"grass_load"`

	TreePatchCount     int     `yaml:"tree_patch_count"`
	TreePatchRadiusMin int     `yaml:"tree_patch_radius_min"`
	TreePatchRadiusMax int     `yaml:"tree_patch_radius_max"`
	TreePatchDensity   float64 `yaml:"tree_patch_density"`
	TreeLoad           float64 `yaml:"tree_load"`

	WaterPoolCount     int     `yaml:"water_pool_count"`
	WaterPoolRadiusMin int     `yaml:"water_pool_radius_min"`
	WaterPoolRadiusMax int     `yaml:"water_pool_radius_max"`
	WaterDepth         float64 `yaml:"water_depth"`
}

// Config controls the simulation dimensions, geometry and topology.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Scale is the physical edge length of one cell, in meters.
	Scale float64 `yaml:"scale"`
	// Wrap selects the toroidal topology instead of the bounded one.
	Wrap bool `yaml:"wrap"`

	Seed int64 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 256,
		Scale:  1,
		Seed:   1337,
		Params: Params{
			AmbientTemperature:     288,
			VerticalHeatTransfer:   10,
			HorizontalHeatTransfer: 50,

			GrassPatchCount:     24,
			GrassPatchRadiusMin: 4,
			GrassPatchRadiusMax: 12,
			GrassPatchDensity:   0.8,
			GrassLoad:           1.5,

			TreePatchCount:     8,
			TreePatchRadiusMin: 2,
			TreePatchRadiusMax: 6,
			TreePatchDensity:   0.5,
			TreeLoad:           40,

			WaterPoolCount:     3,
			WaterPoolRadiusMin: 3,
			WaterPoolRadiusMax: 8,
			WaterDepth:         200,
		},
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Params.GrassPatchRadiusMax < cfg.Params.GrassPatchRadiusMin {
		cfg.Params.GrassPatchRadiusMax = cfg.Params.GrassPatchRadiusMin
	}
	if cfg.Params.TreePatchRadiusMax < cfg.Params.TreePatchRadiusMin {
		cfg.Params.TreePatchRadiusMax = cfg.Params.TreePatchRadiusMin
	}
	if cfg.Params.WaterPoolRadiusMax < cfg.Params.WaterPoolRadiusMin {
		cfg.Params.WaterPoolRadiusMax = cfg.Params.WaterPoolRadiusMin
	}
	return cfg, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().WithOverrides(cfg)
}

// WithOverrides returns a copy of the config with the recognized key/value
// pairs applied on top. Unparseable or out-of-range values are ignored.
func (c Config) WithOverrides(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Scale = parsed
		}
	}
	if v, ok := cfg["wrap"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Wrap = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["ambient_temperature"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.AmbientTemperature = parsed
		}
	}
	if v, ok := cfg["vertical_heat_transfer"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.VerticalHeatTransfer = parsed
		}
	}
	if v, ok := cfg["horizontal_heat_transfer"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.HorizontalHeatTransfer = parsed
		}
	}
	if v, ok := cfg["grass_patch_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.GrassPatchCount = parsed
		}
	}
	if v, ok := cfg["grass_patch_radius_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.GrassPatchRadiusMin = parsed
		}
	}
	if v, ok := cfg["grass_patch_radius_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.GrassPatchRadiusMax = parsed
		}
	}
	if c.Params.GrassPatchRadiusMax < c.Params.GrassPatchRadiusMin {
		c.Params.GrassPatchRadiusMax = c.Params.GrassPatchRadiusMin
	}
	if v, ok := cfg["grass_patch_density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.GrassPatchDensity = parsed
		}
	}
	if v, ok := cfg["grass_load"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.GrassLoad = parsed
		}
	}
	if v, ok := cfg["tree_patch_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.TreePatchCount = parsed
		}
	}
	if v, ok := cfg["tree_patch_radius_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.TreePatchRadiusMin = parsed
		}
	}
	if v, ok := cfg["tree_patch_radius_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.TreePatchRadiusMax = parsed
		}
	}
	if c.Params.TreePatchRadiusMax < c.Params.TreePatchRadiusMin {
		c.Params.TreePatchRadiusMax = c.Params.TreePatchRadiusMin
	}
	if v, ok := cfg["tree_patch_density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.TreePatchDensity = parsed
		}
	}
	if v, ok := cfg["tree_load"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.TreeLoad = parsed
		}
	}
	if v, ok := cfg["water_pool_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.WaterPoolCount = parsed
		}
	}
	if v, ok := cfg["water_pool_radius_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.WaterPoolRadiusMin = parsed
		}
	}
	if v, ok := cfg["water_pool_radius_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.WaterPoolRadiusMax = parsed
		}
	}
	if c.Params.WaterPoolRadiusMax < c.Params.WaterPoolRadiusMin {
		c.Params.WaterPoolRadiusMax = c.Params.WaterPoolRadiusMin
	}
	if v, ok := cfg["water_depth"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.WaterDepth = parsed
		}
	}
	return c
}
