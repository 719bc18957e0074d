// Package main provides a particle effect viewer for the emitters defined in
// an effects YAML file.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--config <path>    Effects YAML (default: built-in effects)
//	--emitter <name>   Start with a specific emitter (e.g., --emitter=fountain)
//	--assets <dir>     Directory for image references
//	--workers <n>      Update particles on n goroutines
//	--seed <n>         Random seed (0 = time based)
//	--verbose          Enable verbose logging (default off)
//
// Controls:
//
//	Left/Right Arrow  - Switch to previous/next emitter
//	Mouse Click       - Burst of particles at cursor position
//	Right Drag        - Move the emitter
//	Space             - Burst at screen center
//	P                 - Toggle pause
//	R                 - Clear all particles
//	H                 - Toggle status text
//	F11               - Toggle fullscreen
//	Q/Escape          - Quit
package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/pyrate/pkg/app"
)

var (
	configFlag  = flag.String("config", "", "Effects YAML file (default: built-in effects)")
	emitterFlag = flag.String("emitter", "", "Start with specific emitter name")
	assetsFlag  = flag.String("assets", "", "Directory for image references")
	workersFlag = flag.Int("workers", 1, "Number of goroutines updating particles")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	cfg := app.Config{
		Verbose:     *verboseFlag,
		EffectsPath: *configFlag,
		AssetDir:    *assetsFlag,
		Particles:   true,
		Emitter:     *emitterFlag,
		Workers:     *workersFlag,
		Seed:        *seedFlag,
		Width:       800,
		Height:      600,
	}
	if err := app.Run(cfg, "Particle Viewer"); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Particle viewer failed: %v", err)
	}
}
