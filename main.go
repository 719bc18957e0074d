package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/pyrate/pkg/app"
)

// 默认演示：屏幕中央播放 hydra 精灵，同时运行 demo 粒子发射器
func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	configPath := flag.String("config", "", "Effects YAML file (default: built-in effects)")
	assetDir := flag.String("assets", "", "Directory for sprite sheets and images")
	flag.Parse()

	cfg := app.Config{
		Verbose:     *verbose,
		EffectsPath: *configPath,
		AssetDir:    *assetDir,
		Particles:   true,
		Emitter:     "demo",
		Sprite:      "hydra",
		Width:       400,
		Height:      400,
	}

	// 启动主循环，直到窗口关闭或按下 Q/Esc
	if err := app.Run(cfg, "Pyrate"); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
