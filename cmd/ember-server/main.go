// Command ember-server exposes a wildfire simulation over HTTP: state and
// parameter inspection, ignite/splash edits, and a websocket telemetry
// stream while the world ticks in the background.
package main

import (
	"flag"
	"net/http"

	"embergrid/internal/sims/wildfire"
	"embergrid/internal/terrain"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	configPath := flag.String("config", "", "optional YAML config file")
	terrainPath := flag.String("terrain", "", "optional terrain image (green=grass, red=tree, blue=water)")
	seed := flag.Int64("seed", 0, "seed override for procedural terrain (0 keeps config seed)")
	tps := flag.Int("tps", 20, "simulation ticks per second")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := NewLogger(*logLevel)

	cfg := wildfire.DefaultConfig()
	if *configPath != "" {
		loaded, err := wildfire.LoadConfig(*configPath)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		cfg = loaded
	}

	world := wildfire.NewWithConfig(cfg)
	if *terrainPath != "" {
		if err := terrain.LoadFile(*terrainPath, terrain.DefaultMapping(), world); err != nil {
			logger.Fatalf("%v", err)
		}
		logger.Infof("terrain loaded from %s", *terrainPath)
	} else {
		world.Reset(*seed)
		logger.Infof("procedural terrain seeded")
	}

	server := NewServer(world, *tps, logger)
	server.Run()
	defer server.Close()

	mux := http.NewServeMux()
	server.Routes(mux)

	size := world.Size()
	logger.Infof("ember-server on %s (%dx%d grid, %d tps)", *addr, size.W, size.H, *tps)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Fatalf("listen: %v", err)
	}
}
