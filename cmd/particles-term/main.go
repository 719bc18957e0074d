// Package main runs the particle emitters in a terminal through tcell.
//
// Usage:
//
//	go run ./cmd/particles-term [flags]
//
// Controls:
//
//	Left/Right Arrow  - Switch emitter
//	Mouse Click       - Move the emitter to the clicked cell
//	Space             - Burst at the emitter
//	p                 - Toggle pause
//	r                 - Clear all particles
//	q/Esc/Ctrl-C      - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/pyrate/internal/termhost"
	"github.com/decker502/pyrate/pkg/config"
	"github.com/decker502/pyrate/pkg/particle"
	"github.com/decker502/pyrate/pkg/scenes"
)

// maxFrameDelta 限制单帧推进的模拟时间（终端挂起后恢复时不一次性补齐）
const maxFrameDelta = 0.1

var (
	configFlag  = flag.String("config", "", "Effects YAML file (default: built-in effects)")
	emitterFlag = flag.String("emitter", "", "Start with specific emitter name")
	workersFlag = flag.Int("workers", 1, "Number of goroutines updating particles")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	logFlag     = flag.String("log", "", "Write logs to this file (the terminal is taken by the screen)")
	cellWFlag   = flag.Int("cell-w", termhost.DefaultCellW, "Particle pixels per terminal column")
	cellHFlag   = flag.Int("cell-h", termhost.DefaultCellH, "Particle pixels per terminal row")
)

var statusColor = particle.RGB{R: 200, G: 200, B: 200}

type game struct {
	screen tcell.Screen
	canvas *termhost.Canvas
	scene  *scenes.ParticleScene
}

func newGame(cfg *config.EffectsConfig) (*game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	canvas := termhost.NewCanvas(screen, *cellWFlag, *cellHFlag)
	w, h := canvas.PixelSize()
	scene, err := scenes.NewParticleScene(cfg, scenes.ParticleSceneOptions{
		Emitter: *emitterFlag,
		X:       float64(w) / 2,
		Y:       float64(h) / 2,
		Seed:    *seedFlag,
		Workers: *workersFlag,
	})
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return &game{screen: screen, canvas: canvas, scene: scene}, nil
}

// handleEvent 返回 false 表示退出
func (g *game) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if termhost.IsQuitKey(ev.Key(), ev.Rune()) {
			return false, nil
		}
		switch ev.Key() {
		case tcell.KeyRight:
			return true, g.scene.NextEmitter(1)
		case tcell.KeyLeft:
			return true, g.scene.NextEmitter(-1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				x, y := g.scene.Origin()
				_, err := g.scene.Burst(x, y, 30)
				return true, err
			case 'p', 'P':
				g.scene.TogglePause()
			case 'r', 'R':
				return true, g.scene.Clear()
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			col, row := ev.Position()
			g.scene.MoveEmitter(
				float64(col*g.canvas.CellW+g.canvas.CellW/2),
				float64(row*g.canvas.CellH+g.canvas.CellH/2))
		}

	case *tcell.EventResize:
		g.screen.Sync()
		w, h := g.canvas.PixelSize()
		g.scene.MoveEmitter(float64(w)/2, float64(h)/2)
	}
	return true, nil
}

func (g *game) draw() {
	g.canvas.Clear()
	g.scene.Draw(g.canvas)

	state := ""
	if g.scene.Paused() {
		state = " [paused]"
	}
	g.canvas.DrawText(0, 0, fmt.Sprintf("emitter %s  particles %d%s", g.scene.EmitterName(), g.scene.ParticleCount(), state), statusColor)
	g.screen.Show()
}

func (g *game) run() error {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	events := termhost.Events(g.screen)
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			cont, err := g.handleEvent(ev)
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > maxFrameDelta {
				dt = maxFrameDelta
			}
			g.scene.Update(dt)
			g.draw()
		}
	}
}

func main() {
	flag.Parse()

	// tcell 接管终端，日志默认丢弃，--log 指定时写入文件
	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	var cfg *config.EffectsConfig
	var err error
	if *configFlag != "" {
		cfg, err = config.LoadEffectsConfig(*configFlag)
	} else {
		cfg, err = config.DefaultEffectsConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load effects: %v\n", err)
		os.Exit(1)
	}

	g, err := newGame(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	runErr := g.run()
	g.screen.Fini()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}
