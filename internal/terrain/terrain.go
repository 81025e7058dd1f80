// Package terrain loads initial grass, tree and water distributions into a
// wildfire world from an image: the green channel carries grass, red carries
// tree stands and blue carries standing water.
package terrain

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"embergrid/internal/sims/wildfire"
)

// Mapping converts full-intensity channels to masses, in kg/m².
type Mapping struct {
	GrassLoad  float64
	TreeLoad   float64
	WaterDepth float64
}

// DefaultMapping returns channel loads in line with the simulation defaults.
func DefaultMapping() Mapping {
	return Mapping{GrassLoad: 1.5, TreeLoad: 40, WaterDepth: 200}
}

// LoadFile decodes an image file and populates the world from it.
func LoadFile(path string, m Mapping, w *wildfire.World) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open terrain: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode terrain %s: %w", path, err)
	}
	Apply(img, m, w)
	return nil
}

// Apply rescales the image to the grid dimensions and populates every cell.
// Channel intensities scale linearly from zero mass to the mapping loads;
// mass per cell additionally scales with the cell area.
func Apply(img image.Image, m Mapping, w *wildfire.World) {
	size := w.Size()
	if size.Area() == 0 {
		return
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, size.W, size.H))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	area := w.Scale() * w.Scale()
	w.Populate(func(x, y int) (grass, tree, water float64) {
		px := scaled.NRGBAAt(x, y)
		grass = float64(px.G) / 255 * m.GrassLoad * area
		tree = float64(px.R) / 255 * m.TreeLoad * area
		water = float64(px.B) / 255 * m.WaterDepth * area
		return grass, tree, water
	})
}
