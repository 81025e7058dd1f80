package terrain

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"embergrid/internal/sims/wildfire"
)

func quietWorld(w, h int) *wildfire.World {
	cfg := wildfire.DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Scale = 1
	cfg.Params.GrassPatchCount = 0
	cfg.Params.TreePatchCount = 0
	cfg.Params.WaterPoolCount = 0
	return wildfire.NewWithConfig(cfg)
}

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestApplyMapsChannelsToMasses(t *testing.T) {
	world := quietWorld(4, 4)
	img := uniformImage(8, 8, color.NRGBA{R: 51, G: 102, B: 204, A: 255})
	m := Mapping{GrassLoad: 2, TreeLoad: 10, WaterDepth: 100}

	Apply(img, m, world)

	c := world.Cell(2, 2)
	if got, want := c.Mass(wildfire.Grass), 102.0/255*2; math.Abs(got-want) > 0.05 {
		t.Fatalf("grass from green channel: want %f got %f", want, got)
	}
	if got, want := c.Mass(wildfire.Tree), 51.0/255*10; math.Abs(got-want) > 0.25 {
		t.Fatalf("tree from red channel: want %f got %f", want, got)
	}
	if got, want := c.Mass(wildfire.Water), 204.0/255*100; math.Abs(got-want) > 2.5 {
		t.Fatalf("water from blue channel: want %f got %f", want, got)
	}
	if c.Mass(wildfire.Coal) != 0 || c.Mass(wildfire.Ash) != 0 {
		t.Fatal("loader must leave coal and ash empty")
	}
	if got := world.AmbientTemperature(); math.Abs(c.Temperature()-got) > 1e-6 {
		t.Fatalf("loaded cells must sit at ambient, got %f", c.Temperature())
	}
}

func TestApplyScalesMassWithCellArea(t *testing.T) {
	cfg := wildfire.DefaultConfig()
	cfg.Width = 2
	cfg.Height = 2
	cfg.Scale = 3
	cfg.Params.GrassPatchCount = 0
	cfg.Params.TreePatchCount = 0
	cfg.Params.WaterPoolCount = 0
	world := wildfire.NewWithConfig(cfg)

	img := uniformImage(2, 2, color.NRGBA{G: 255, A: 255})
	Apply(img, Mapping{GrassLoad: 1}, world)

	// 1 kg/m² over a 3m cell is 9 kg.
	if got := world.Cell(0, 0).Mass(wildfire.Grass); math.Abs(got-9) > 0.1 {
		t.Fatalf("mass must scale with cell area, want 9 got %f", got)
	}
}

func TestLoadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.png")
	img := uniformImage(4, 4, color.NRGBA{B: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	world := quietWorld(4, 4)
	if err := LoadFile(path, Mapping{WaterDepth: 50}, world); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := world.Cell(1, 1).Mass(wildfire.Water); math.Abs(got-50) > 0.5 {
		t.Fatalf("expected full-depth water, want 50 got %f", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	world := quietWorld(2, 2)
	if err := LoadFile(filepath.Join(t.TempDir(), "nope.png"), DefaultMapping(), world); err == nil {
		t.Fatal("expected an error for a missing terrain file")
	}
}
