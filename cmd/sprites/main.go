// Package main plays the animations of a configured sprite.
//
// Usage:
//
//	go run ./cmd/sprites [flags]
//
// Flags:
//
//	--config <path>       Effects YAML (default: built-in effects)
//	--sprite <name>       Sprite to show (default: hydra)
//	--animation <name>    Start animation (default: the sprite's default)
//	--assets <dir>        Directory containing the sprite sheets
//	--verbose             Enable verbose logging (default off)
//
// Controls:
//
//	Up/Down Arrow  - Switch animation
//	S              - Pause/resume playback
//	H              - Toggle status text
//	F11            - Toggle fullscreen
//	Q/Escape       - Quit
//
// A sheet that does not exist on disk is replaced by a generated placeholder.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/pyrate/pkg/app"
)

var (
	configFlag    = flag.String("config", "", "Effects YAML file (default: built-in effects)")
	spriteFlag    = flag.String("sprite", "hydra", "Sprite name")
	animationFlag = flag.String("animation", "", "Start animation (default: sprite default)")
	assetsFlag    = flag.String("assets", "", "Directory containing sprite sheets")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	cfg := app.Config{
		Verbose:     *verboseFlag,
		EffectsPath: *configFlag,
		AssetDir:    *assetsFlag,
		Sprite:      *spriteFlag,
		Animation:   *animationFlag,
		Width:       200,
		Height:      200,
	}
	if err := app.Run(cfg, "Sprite Viewer"); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Sprite viewer failed: %v", err)
	}
}
