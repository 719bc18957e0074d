package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/decker502/pyrate/pkg/particle"
)

const testYAML = `
version: "1"
particles:
  spark:
    shape: square
    width: 20
    height: 20
    behaviors:
      - type: opacity
        decay: 1.0
      - type: scale
        growth: -0.6
      - type: motion
        direction: 0.25
        speed: 50
  glow:
    shape: image:glow.png
    color: teal
    behaviors:
      - type: color
        to: "#ff0000"
        duration: 2
        ease: in_quad
emitters:
  demo:
    particle: spark
    interval: 0.1
    offset_x: "[50 -50]"
    offset_y: "10"
    max_active: 200
    lifetime: 3
sprites:
  hydra:
    fps: 9
    default: idle
    animations:
      idle:
        sheet: TestSprite.png
        rows: 1
        cols: 4
`

func mustParse(t *testing.T, data string) *EffectsConfig {
	t.Helper()
	cfg, err := ParseEffectsConfig([]byte(data))
	if err != nil {
		t.Fatalf("ParseEffectsConfig() error = %v", err)
	}
	return cfg
}

func TestParseEffectsConfig(t *testing.T) {
	cfg := mustParse(t, testYAML)

	if cfg.Version != "1" {
		t.Errorf("Version = %q, want 1", cfg.Version)
	}
	if len(cfg.Particles) != 2 || len(cfg.Emitters) != 1 || len(cfg.Sprites) != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", len(cfg.Particles), len(cfg.Emitters), len(cfg.Sprites))
	}

	idle := cfg.Sprites["hydra"].Animations["idle"]
	if !idle.IsRepeat() {
		t.Error("IsRepeat() = false, want default true")
	}
	if idle.FrameCount() != 4 {
		t.Errorf("FrameCount() = %d, want 4 (rows*cols)", idle.FrameCount())
	}
}

// TestBuildPrototype_Spark 从 YAML 构建的原型应按配置的行为演化
func TestBuildPrototype_Spark(t *testing.T) {
	cfg := mustParse(t, testYAML)

	proto, err := cfg.BuildPrototype("spark")
	if err != nil {
		t.Fatalf("BuildPrototype() error = %v", err)
	}
	if proto.Opacity != DefaultInitOpacity {
		t.Errorf("Opacity = %v, want %v", proto.Opacity, DefaultInitOpacity)
	}
	if proto.Width != 20 || proto.Height != 20 {
		t.Errorf("size = %vx%v, want 20x20", proto.Width, proto.Height)
	}
	if len(proto.Behaviors) != 3 {
		t.Fatalf("len(Behaviors) = %d, want 3", len(proto.Behaviors))
	}

	p := proto.Create(100, 100, time.Time{})
	for i := 0; i < 8; i++ {
		p.Update(0.1)
	}

	if math.Abs(p.Opacity) > 1e-9 {
		t.Errorf("Opacity after 0.8s = %v, want ~0", p.Opacity)
	}
	if want := 20 * math.Pow(0.4, 0.8); math.Abs(p.Width-want) > 1e-6 {
		t.Errorf("Width = %v, want %v", p.Width, want)
	}
	if math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y-140) > 1e-9 {
		t.Errorf("position = (%v, %v), want (100, 140)", p.X, p.Y)
	}
}

func TestBuildPrototype_ImageAndColor(t *testing.T) {
	cfg := mustParse(t, testYAML)

	proto, err := cfg.BuildPrototype("glow")
	if err != nil {
		t.Fatalf("BuildPrototype() error = %v", err)
	}
	if proto.Shape != particle.Image("glow.png") {
		t.Errorf("Shape = %v, want image:glow.png", proto.Shape)
	}
	if want := (particle.RGB{R: 0, G: 128, B: 128}); proto.Color != want {
		t.Errorf("Color = %v, want teal %v", proto.Color, want)
	}

	p := proto.Create(0, 0, time.Time{})
	p.Update(2)
	if want := (particle.RGB{R: 255}); p.Color != want {
		t.Errorf("Color after duration = %v, want %v", p.Color, want)
	}
}

func TestBuildPrototype_Unknown(t *testing.T) {
	cfg := mustParse(t, testYAML)
	if _, err := cfg.BuildPrototype("nope"); !errors.Is(err, ErrUnknownEntry) {
		t.Errorf("BuildPrototype(nope) error = %v, want ErrUnknownEntry", err)
	}
}

func TestBuildEmitter(t *testing.T) {
	cfg := mustParse(t, testYAML)

	e, err := cfg.BuildEmitter("demo")
	if err != nil {
		t.Fatalf("BuildEmitter() error = %v", err)
	}
	if !e.Active {
		t.Error("Active = false, want true")
	}
	if e.SpawnInterval != 0.1 || e.MaxActive != 200 || e.ParticleLifetime != 3 {
		t.Errorf("emitter = %+v", e)
	}
	if e.OffsetX != (particle.Range{Min: -50, Max: 50}) {
		t.Errorf("OffsetX = %v, want [-50 50]", e.OffsetX)
	}
	if e.OffsetY != particle.Fixed(10) {
		t.Errorf("OffsetY = %v, want 10", e.OffsetY)
	}
	if e.Prototype == nil || e.Prototype.Width != 20 {
		t.Errorf("Prototype = %+v, want spark", e.Prototype)
	}

	if _, err := cfg.BuildEmitter("nope"); !errors.Is(err, ErrUnknownEntry) {
		t.Errorf("BuildEmitter(nope) error = %v, want ErrUnknownEntry", err)
	}
	if names := cfg.EmitterNames(); len(names) != 1 || names[0] != "demo" {
		t.Errorf("EmitterNames() = %v, want [demo]", names)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantSub string
	}{
		{
			"未知行为",
			"particles:\n  p:\n    behaviors:\n      - type: spin\n",
			"unknown behavior type",
		},
		{
			"缩放增长过小",
			"particles:\n  p:\n    behaviors:\n      - type: scale\n        growth: -1.5\n",
			"below -1",
		},
		{
			"未知颜色",
			"particles:\n  p:\n    color: notacolor\n",
			"notacolor",
		},
		{
			"不支持的形状",
			"particles:\n  p:\n    shape: circle\n",
			"circle",
		},
		{
			"发射器引用未知粒子",
			"emitters:\n  e:\n    particle: ghost\n",
			"ghost",
		},
		{
			"非法范围",
			"particles:\n  p: {}\nemitters:\n  e:\n    particle: p\n    offset_x: \"[1 2\"\n",
			"offset_x",
		},
		{
			"精灵默认动画不存在",
			"sprites:\n  s:\n    default: run\n    animations:\n      idle: {sheet: a.png, rows: 1, cols: 2}\n",
			"run",
		},
		{
			"帧数超出网格",
			"sprites:\n  s:\n    animations:\n      idle: {sheet: a.png, rows: 1, cols: 2, frames: 3}\n",
			"invalid grid",
		},
		{
			"未知缓动",
			"particles:\n  p:\n    behaviors:\n      - type: color\n        to: red\n        ease: bounce\n",
			"bounce",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEffectsConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseEffectsConfig() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseEffectsConfig_BadYAML(t *testing.T) {
	if _, err := ParseEffectsConfig([]byte("particles: [")); err == nil {
		t.Error("ParseEffectsConfig() error = nil, want YAML error")
	}
}

func TestLoadEffectsConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "effects.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadEffectsConfig(path)
	if err != nil {
		t.Fatalf("LoadEffectsConfig() error = %v", err)
	}
	if _, err := cfg.Sprite("hydra"); err != nil {
		t.Errorf("Sprite(hydra) error = %v", err)
	}

	if _, err := LoadEffectsConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadEffectsConfig(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestDefaultEffectsConfig(t *testing.T) {
	cfg, err := DefaultEffectsConfig()
	if err != nil {
		t.Fatalf("DefaultEffectsConfig() error = %v", err)
	}
	for _, name := range cfg.EmitterNames() {
		if _, err := cfg.BuildEmitter(name); err != nil {
			t.Errorf("BuildEmitter(%q) error = %v", name, err)
		}
	}

	hydra, err := cfg.Sprite("hydra")
	if err != nil {
		t.Fatalf("Sprite(hydra) error = %v", err)
	}
	if hydra.FPS != 9 || hydra.Default != "idle" {
		t.Errorf("hydra = %+v, want fps 9, default idle", hydra)
	}
}
