// Package app 提供 ebiten 演示程序的核心包装器
//
// 该包把粒子场景和精灵场景组合成一个 ebiten.Game，供 cmd/particles、cmd/sprites
// 和根目录的 main.go 共用。场景本身不依赖窗口，这里只负责输入、时钟和绘制目标。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/pyrate/internal/ebitenhost"
	"github.com/decker502/pyrate/pkg/config"
	"github.com/decker502/pyrate/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool

	// EffectsPath 特效配置文件路径，空则使用内置配置
	EffectsPath string
	// AssetDir 精灵表和粒子图片的根目录
	AssetDir string

	// Particles / Sprite 控制启用哪些场景（至少启用一个）
	Particles bool
	Sprite    string // 精灵名称，空表示不显示精灵

	Emitter   string // 初始发射器
	Animation string // 初始动画，空则使用配置中的 default
	Workers   int
	Seed      int64

	Width, Height int
}

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg Config

	particles *scenes.ParticleScene
	sprites   *scenes.SpriteScene

	canvas  *ebitenhost.Canvas
	blitter *ebitenhost.Blitter
	hud     *ebitenhost.HUD

	showHUD bool
}

// NewApp 创建并初始化演示应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 640, 480
	}
	if !cfg.Particles && cfg.Sprite == "" {
		return nil, fmt.Errorf("nothing to show: enable particles or choose a sprite")
	}

	effects, err := loadEffects(cfg.EffectsPath)
	if err != nil {
		return nil, err
	}

	loader := assetLoader(cfg.AssetDir)
	a := &App{
		cfg:     cfg,
		canvas:  ebitenhost.NewCanvas(loader),
		blitter: &ebitenhost.Blitter{},
		hud:     ebitenhost.NewHUD(),
		showHUD: true,
	}

	cx, cy := float64(cfg.Width)/2, float64(cfg.Height)/2

	if cfg.Particles {
		a.particles, err = scenes.NewParticleScene(effects, scenes.ParticleSceneOptions{
			Emitter: cfg.Emitter,
			X:       cx,
			Y:       cy,
			Seed:    cfg.Seed,
			Workers: cfg.Workers,
		})
		if err != nil {
			return nil, fmt.Errorf("粒子场景初始化失败: %w", err)
		}
	}

	if cfg.Sprite != "" {
		sc, err := effects.Sprite(cfg.Sprite)
		if err != nil {
			return nil, err
		}
		s, err := ebitenhost.BuildSprite(sc, placeholderOnMissing(loader, sc))
		if err != nil {
			return nil, fmt.Errorf("精灵 %s 加载失败: %w", cfg.Sprite, err)
		}
		start := cfg.Animation
		if start == "" {
			start = sc.Default
		}
		a.sprites, err = scenes.NewSpriteScene(s, start, cx, cy, time.Now())
		if err != nil {
			return nil, fmt.Errorf("精灵场景初始化失败: %w", err)
		}
	}

	log.Printf("[App] 初始化完成 (particles=%v, sprite=%q)", cfg.Particles, cfg.Sprite)
	return a, nil
}

func loadEffects(path string) (*config.EffectsConfig, error) {
	if path == "" {
		return config.DefaultEffectsConfig()
	}
	return config.LoadEffectsConfig(path)
}

// assetLoader 在 dir 下解析相对路径
func assetLoader(dir string) ebitenhost.ImageLoader {
	return func(ref string) (*ebiten.Image, error) {
		if dir != "" && !filepath.IsAbs(ref) {
			ref = filepath.Join(dir, ref)
		}
		return ebitenhost.LoadImageFile(ref)
	}
}

// placeholderOnMissing 精灵表文件不存在时生成占位图，保证演示可以运行
func placeholderOnMissing(load ebitenhost.ImageLoader, sc config.SpriteConfig) ebitenhost.ImageLoader {
	return func(ref string) (*ebiten.Image, error) {
		img, err := load(ref)
		if err == nil {
			return img, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for _, ac := range sc.Animations {
			if ac.Sheet == ref {
				log.Printf("[App] 精灵表 %s 不存在，使用占位图", ref)
				return ebitenhost.PlaceholderSheet(ac.Rows, ac.Cols, 64, 64), nil
			}
		}
		return nil, err
	}
}

// Update 更新演示逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.showHUD = !a.showHUD
	}

	now := time.Now()
	deltaTime := 1.0 / float64(ebiten.TPS())

	if a.particles != nil {
		if err := a.updateParticles(deltaTime); err != nil {
			return err
		}
	}
	if a.sprites != nil {
		a.handleSpriteInput(now)
		// 活动动画无效时直接返回错误，终止主循环
		if err := a.sprites.Update(now); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) updateParticles(dt float64) error {
	p := a.particles

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		if err := p.NextEmitter(1); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		if err := p.NextEmitter(-1); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		p.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := p.Clear(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		x, y := p.Origin()
		if _, err := p.Burst(x, y, 30); err != nil {
			return err
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if _, err := p.Burst(float64(x), float64(y), 30); err != nil {
			return err
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		p.MoveEmitter(float64(x), float64(y))
	}

	p.Update(dt)
	return nil
}

func (a *App) handleSpriteInput(now time.Time) {
	s := a.sprites
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.NextAnimation(1, now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.NextAnimation(-1, now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.TogglePause(now)
	}
	// 只有精灵时，鼠标左键拖动精灵
	if a.particles == nil && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.MoveTo(float64(x), float64(y))
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if a.sprites != nil {
		a.blitter.Target = screen
		a.sprites.Draw(a.blitter)
	}
	if a.particles != nil {
		a.canvas.Target = screen
		a.particles.Draw(a.canvas)
	}

	if a.showHUD {
		a.hud.Draw(screen, a.statusLines()...)
	}
}

func (a *App) statusLines() []string {
	lines := []string{fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS())}
	if p := a.particles; p != nil {
		state := ""
		if p.Paused() {
			state = " [paused]"
		}
		lines = append(lines,
			fmt.Sprintf("emitter %s  particles %d%s", p.EmitterName(), p.ParticleCount(), state),
			"<-/-> emitter  space/click burst  right-drag move  P pause  R clear")
	}
	if s := a.sprites; s != nil {
		lines = append(lines,
			fmt.Sprintf("animation %s  frame %d", s.AnimationName(), s.FrameIndex()),
			"up/down animation  S pause")
	}
	return lines
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Width, a.cfg.Height
}

// Run 打开窗口并运行，直到窗口关闭或按下 Q/Esc
func Run(cfg Config, title string) error {
	a, err := NewApp(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(a.cfg.Width, a.cfg.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
