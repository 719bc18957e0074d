package particle

import (
	"errors"
	"image"
	"math/rand"
	"testing"
	"time"
)

// recordingCanvas 记录绘制调用的测试画布
type recordingCanvas struct {
	fills  []fillCall
	images []string
	imgErr error
}

type fillCall struct {
	rect  image.Rectangle
	color RGB
	alpha uint8
}

func (c *recordingCanvas) FillRect(r image.Rectangle, col RGB, alpha uint8) {
	c.fills = append(c.fills, fillCall{rect: r, color: col, alpha: alpha})
}

func (c *recordingCanvas) DrawImage(ref string, r image.Rectangle, alpha uint8) error {
	if c.imgErr != nil {
		return c.imgErr
	}
	c.images = append(c.images, ref)
	return nil
}

func TestNewParticle_Defaults(t *testing.T) {
	p := NewParticle(5, 6, Square(), 0, -1)

	if p.Width != DefaultSize || p.Height != DefaultSize {
		t.Errorf("size = %vx%v, want %vx%v", p.Width, p.Height, DefaultSize, DefaultSize)
	}
	if p.Opacity != DefaultOpacity {
		t.Errorf("Opacity = %v, want %v", p.Opacity, DefaultOpacity)
	}
	if p.Color != DefaultColor {
		t.Errorf("Color = %v, want %v", p.Color, DefaultColor)
	}
	if len(p.Behaviors) != 0 {
		t.Errorf("len(Behaviors) = %d, want 0", len(p.Behaviors))
	}
}

func TestCreate_CopiesVisualState(t *testing.T) {
	proto := NewParticle(0, 0, Square(), 20, 20)
	proto.Color = RGB{R: 1, G: 2, B: 3}
	proto.ApplyBehavior(NewOpacityEffect(0.8, 1.0))
	proto.ApplyBehavior(NewScaleEffect(2.0, 0))

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := proto.Create(40, 50, now)

	if p.X != 40 || p.Y != 50 {
		t.Errorf("position = (%v, %v), want (40, 50)", p.X, p.Y)
	}
	if p.Opacity != 0.8 {
		t.Errorf("Opacity = %v, want 0.8", p.Opacity)
	}
	if p.Width != 40 || p.Height != 40 {
		t.Errorf("size = %vx%v, want 40x40", p.Width, p.Height)
	}
	if p.Color != proto.Color {
		t.Errorf("Color = %v, want %v", p.Color, proto.Color)
	}
	if !p.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", p.CreatedAt, now)
	}
	if len(p.Behaviors) != 2 {
		t.Fatalf("len(Behaviors) = %d, want 2", len(p.Behaviors))
	}
	for i := range p.Behaviors {
		if p.Behaviors[i] == proto.Behaviors[i] {
			t.Errorf("Behaviors[%d] shared with prototype", i)
		}
	}
}

// TestCreate_IndependentRuntimeState 测试两个克隆的运行时状态互不影响
func TestCreate_IndependentRuntimeState(t *testing.T) {
	proto := NewParticle(0, 0, Square(), 10, 10)
	proto.ApplyBehavior(NewLinearMotionEffect(0, 50, 10))

	a := proto.Create(0, 0, time.Time{})
	b := proto.Create(0, 0, time.Time{})

	ma := a.Behaviors[0].(*LinearMotionEffect)
	mb := b.Behaviors[0].(*LinearMotionEffect)

	a.Update(1.0)
	ma.SetSpeed(999)

	if mb.Speed() != 50 {
		t.Errorf("other clone Speed() = %v, want 50", mb.Speed())
	}
	if pm := proto.Behaviors[0].(*LinearMotionEffect); pm.Speed() != 50 {
		t.Errorf("prototype Speed() = %v, want 50", pm.Speed())
	}
	if b.X != 0 {
		t.Errorf("other clone X = %v, want 0", b.X)
	}
}

func TestCreate_ClonedMotionRestartsFromInitSpeed(t *testing.T) {
	proto := NewParticle(0, 0, Square(), 10, 10)
	proto.ApplyBehavior(NewLinearMotionEffect(0, 50, 10))
	proto.Update(2.0)

	p := proto.Create(0, 0, time.Time{})
	if got := p.Behaviors[0].(*LinearMotionEffect).Speed(); got != 50 {
		t.Errorf("cloned Speed() = %v, want 50", got)
	}
}

// TestUpdate_BehaviorOrder 测试后面的行为能看到前面行为的修改
func TestUpdate_BehaviorOrder(t *testing.T) {
	var seen []float64
	p := NewParticle(0, 0, Square(), 10, 10)
	p.ApplyBehavior(NewOpacityEffect(1.0, 1.0))
	p.ApplyBehavior(funcBehavior(func(p *Particle, dt float64) {
		seen = append(seen, p.Opacity)
	}))

	p.Update(0.25)
	p.Update(0.25)

	want := []float64{0.75, 0.5}
	if len(seen) != len(want) {
		t.Fatalf("len(seen) = %d, want %d", len(seen), len(want))
	}
	for i := range want {
		if !approxEqual(seen[i], want[i], epsilon) {
			t.Errorf("seen[%d] = %v, want %v", i, seen[i], want[i])
		}
	}
	if !approxEqual(p.Age, 0.5, epsilon) {
		t.Errorf("Age = %v, want 0.5", p.Age)
	}
}

func TestApplyBehavior_OrderMatters(t *testing.T) {
	p := NewParticle(0, 0, Square(), 10, 10)
	p.ApplyBehavior(NewOpacityEffect(0.3, 0))
	p.ApplyBehavior(NewOpacityEffect(0.9, 0))

	if p.Opacity != 0.9 {
		t.Errorf("Opacity = %v, want 0.9 (last attached wins)", p.Opacity)
	}

	p.ApplyBehavior(nil)
	if len(p.Behaviors) != 2 {
		t.Errorf("len(Behaviors) = %d, want 2 after nil", len(p.Behaviors))
	}
}

// TestScenario_FadeOutRemoval 场景：0.8 初始透明度，每秒衰减 1.0，0.8 秒后可被移除
func TestScenario_FadeOutRemoval(t *testing.T) {
	proto := NewParticle(0, 0, Square(), 10, 10)
	proto.ApplyBehavior(NewOpacityEffect(0.8, 1.0))

	p := proto.Create(100, 100, time.Time{})
	for i := 0; i < 7; i++ {
		p.Update(0.1)
	}
	if p.Dead() {
		t.Fatalf("particle dead after 0.7s, opacity = %v", p.Opacity)
	}

	p.Update(0.1)
	if !approxEqual(p.Opacity, 0, 1e-9) {
		t.Errorf("Opacity after 0.8s = %v, want ~0", p.Opacity)
	}

	// 浮点误差可能让透明度略大于 0，再推进一个极小步长后必定死亡
	if !p.Dead() {
		p.Update(1e-6)
	}
	if !p.Dead() {
		t.Errorf("Dead() = false, want true (opacity = %v)", p.Opacity)
	}
}

func TestDraw_Square(t *testing.T) {
	p := NewParticle(100, 50, Square(), 20, 10)
	p.Opacity = 0.5
	p.Color = RGB{R: 10, G: 20, B: 30}

	c := &recordingCanvas{}
	if err := p.Draw(c); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(c.fills) != 1 {
		t.Fatalf("len(fills) = %d, want 1", len(c.fills))
	}

	got := c.fills[0]
	wantRect := image.Rect(90, 45, 110, 55)
	if got.rect != wantRect {
		t.Errorf("rect = %v, want %v", got.rect, wantRect)
	}
	if got.alpha != 127 {
		t.Errorf("alpha = %d, want 127", got.alpha)
	}
	if got.color != p.Color {
		t.Errorf("color = %v, want %v", got.color, p.Color)
	}
}

func TestAlpha_Clamped(t *testing.T) {
	tests := []struct {
		opacity float64
		want    uint8
	}{
		{-0.5, 0},
		{0, 0},
		{1, 255},
		{3, 255},
	}
	for _, tt := range tests {
		p := NewParticle(0, 0, Square(), 1, 1)
		p.Opacity = tt.opacity
		if got := p.Alpha(); got != tt.want {
			t.Errorf("Alpha() with opacity %v = %d, want %d", tt.opacity, got, tt.want)
		}
	}
}

func TestDraw_UnsupportedShape(t *testing.T) {
	p := NewParticle(0, 0, Primitive("circle"), 10, 10)
	c := &recordingCanvas{}

	err := p.Draw(c)
	if !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("Draw() error = %v, want ErrUnsupportedShape", err)
	}
	if len(c.fills) != 0 || len(c.images) != 0 {
		t.Errorf("Draw() drew something for an unsupported shape")
	}
}

func TestDraw_ImageDelegatesToHost(t *testing.T) {
	p := NewParticle(0, 0, Image("spark.png"), 10, 10)
	c := &recordingCanvas{}

	if err := p.Draw(c); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(c.images) != 1 || c.images[0] != "spark.png" {
		t.Errorf("images = %v, want [spark.png]", c.images)
	}

	hostErr := errors.New("not loaded")
	c.imgErr = hostErr
	if err := p.Draw(c); !errors.Is(err, hostErr) {
		t.Errorf("Draw() error = %v, want wrapped host error", err)
	}
}

func TestDeathRules(t *testing.T) {
	p := NewParticle(0, 0, Square(), 10, 10)

	if OpacityDeath(p) {
		t.Error("OpacityDeath() = true for opaque particle")
	}
	if MinSizeDeath(1)(p) {
		t.Error("MinSizeDeath(1) = true for 10x10 particle")
	}

	p.Width = 0.5
	if !MinSizeDeath(1)(p) {
		t.Error("MinSizeDeath(1) = false for 0.5 wide particle")
	}

	p.Age = 3
	if !MaxAgeDeath(2)(p) {
		t.Error("MaxAgeDeath(2) = false at age 3")
	}

	rule := AnyDeath(nil, OpacityDeath, MaxAgeDeath(10))
	if rule(p) {
		t.Error("AnyDeath() = true, want false")
	}
	p.Opacity = 0
	if !rule(p) {
		t.Error("AnyDeath() = false, want true after opacity hit 0")
	}
}

func TestRange_Sample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if got := Fixed(3).Sample(rng); got != 3 {
		t.Errorf("Fixed(3).Sample() = %v, want 3", got)
	}
	if got := (Range{Min: 1, Max: 2}).Sample(nil); got != 1 {
		t.Errorf("Sample(nil) = %v, want 1", got)
	}

	r := Range{Min: -5, Max: 5}
	for i := 0; i < 100; i++ {
		v := r.Sample(rng)
		if v < r.Min || v > r.Max {
			t.Fatalf("Sample() = %v, out of [%v, %v]", v, r.Min, r.Max)
		}
	}
}

// funcBehavior 把函数包装为 Behavior，用于测试
type funcBehavior func(p *Particle, dt float64)

func (f funcBehavior) Update(p *Particle, dt float64) { f(p, dt) }
func (f funcBehavior) Clone() Behavior                { return f }
