package wildfire

import (
	"math"
	"testing"
)

func TestSplotchStrengthFalloff(t *testing.T) {
	cfg := quietConfig(7, 7)
	world := NewWithConfig(cfg)

	// Record the applied strength per cell by writing it into grass mass.
	world.Splotch(3, 3, 2, func(strength float64, c *Cell) {
		c.SetMass(Grass, strength)
	})

	if got := world.Cell(3, 3).Mass(Grass); math.Abs(got-1) > 1e-9 {
		t.Fatalf("strength at the center must be 1, got %f", got)
	}
	if got := world.Cell(4, 3).Mass(Grass); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("strength at distance 1 of radius 2 must be 0.5, got %f", got)
	}
	if got := world.Cell(5, 3).Mass(Grass); got != 0 {
		t.Fatalf("offsets at the radius or beyond must be excluded, got %f", got)
	}
	wantDiag := 1 - math.Sqrt2/2
	if got := world.Cell(4, 4).Mass(Grass); math.Abs(got-wantDiag) > 1e-9 {
		t.Fatalf("diagonal strength must follow euclidean distance, want %f got %f", wantDiag, got)
	}
}

func TestSplotchScalesRadiusByCellSize(t *testing.T) {
	cfg := quietConfig(7, 7)
	cfg.Scale = 2
	world := NewWithConfig(cfg)

	touched := 0
	world.Splotch(3, 3, 4, func(strength float64, c *Cell) {
		touched++
	})

	// 4m over 2m cells is a 2-cell radius: the center, four at distance 1
	// and four diagonals inside the circle.
	if touched != 9 {
		t.Fatalf("expected 9 cells inside the splotch, got %d", touched)
	}
}

func TestSplotchClipsAtBoundedEdge(t *testing.T) {
	cfg := quietConfig(4, 4)
	world := NewWithConfig(cfg)

	world.Splotch(0, 0, 2, func(strength float64, c *Cell) {
		c.SetMass(Grass, strength)
	})

	if got := world.Cell(0, 0).Mass(Grass); math.Abs(got-1) > 1e-9 {
		t.Fatalf("corner center must still receive full strength, got %f", got)
	}
}

func TestIgniteSplotchRaisesCenterTemperature(t *testing.T) {
	cfg := quietConfig(7, 7)
	world := NewWithConfig(cfg)

	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			world.Cell(x, y).SetMass(Ash, 1)
		}
	}
	world.SetTemperature(300)

	world.IgniteSplotch(3, 3, 1.5, 200)

	if got := world.Cell(3, 3).Temperature(); math.Abs(got-500) > 1e-9 {
		t.Fatalf("center should gain the full delta, want 500 got %f", got)
	}
	wantSide := 300 + 200*(1-1/1.5)
	if got := world.Cell(4, 3).Temperature(); math.Abs(got-wantSide) > 1e-9 {
		t.Fatalf("side cell should gain a falloff share, want %f got %f", wantSide, got)
	}
	if got := world.Cell(3, 3).EnergyError(); got <= 0 {
		t.Fatal("ignited cells must be marked energy dirty")
	}
}

func TestSplashAddsWaterAtAmbientTemperature(t *testing.T) {
	cfg := quietConfig(7, 7)
	world := NewWithConfig(cfg)
	ambient := world.AmbientTemperature()

	world.SplashSplotch(3, 3, 1.5, 10)

	c := world.Cell(3, 3)
	wantWater := 10 / math.Pi
	if got := c.Mass(Water); math.Abs(got-wantWater) > 1e-9 {
		t.Fatalf("center water should be total/(π·scale²), want %f got %f", wantWater, got)
	}
	if got := c.Temperature(); math.Abs(got-ambient) > 1e-3 {
		t.Fatalf("splashed water must arrive at ambient temperature, want %f got %f", ambient, got)
	}
	if got := c.MatterError(); got <= 0 {
		t.Fatal("splashed cells must be marked matter dirty")
	}
}

func TestSplashCoolsAHotCell(t *testing.T) {
	cfg := quietConfig(5, 5)
	world := NewWithConfig(cfg)

	c := world.Cell(2, 2)
	c.SetMass(Ash, 1)
	c.SetTemperature(900)

	world.SplashSplotch(2, 2, 1.5, 50)

	if got := c.Temperature(); got >= 900 {
		t.Fatalf("ambient-temperature water must pull a hot cell down, got %f", got)
	}
	if got := c.Temperature(); got <= world.AmbientTemperature() {
		t.Fatalf("a single splash should not undershoot ambient, got %f", got)
	}
}
