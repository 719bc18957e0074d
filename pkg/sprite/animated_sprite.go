package sprite

import (
	"fmt"
	"sort"
	"time"
)

// DefaultFPS is the playback rate used by configs that do not set one.
const DefaultFPS = 12.0

// Blitter renders a frame at a position. It is implemented by the host.
type Blitter[F any] interface {
	Blit(frame F, x, y float64)
}

// AnimatedSprite owns a set of named animations and plays one at a time.
//
// Time is always passed in by the caller; the sprite never reads a clock.
type AnimatedSprite[F any] struct {
	animations map[string]*Animation[F]

	active      string
	hasActive   bool
	activeSince time.Time

	paused   bool
	pausedAt time.Time

	X, Y float64
	fps  float64
}

// NewAnimatedSprite creates a sprite playing at fps frames per second.
func NewAnimatedSprite[F any](fps float64) (*AnimatedSprite[F], error) {
	if !(fps > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFPS, fps)
	}
	return &AnimatedSprite[F]{
		animations: make(map[string]*Animation[F]),
		fps:        fps,
	}, nil
}

// FPS returns the playback rate.
func (s *AnimatedSprite[F]) FPS() float64 {
	return s.fps
}

// AddAnimations merges anims into the sprite, replacing existing names.
func (s *AnimatedSprite[F]) AddAnimations(anims map[string]*Animation[F]) {
	for name, a := range anims {
		s.animations[name] = a
	}
}

// Animation returns the animation registered under name.
func (s *AnimatedSprite[F]) Animation(name string) (*Animation[F], bool) {
	a, ok := s.animations[name]
	return a, ok
}

// AnimationNames returns the registered names in sorted order.
func (s *AnimatedSprite[F]) AnimationNames() []string {
	names := make([]string, 0, len(s.animations))
	for name := range s.animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StartAnimation makes name the active animation starting at now, and
// un-pauses the sprite. The name is not checked here; an unknown name is
// reported when a frame is requested.
func (s *AnimatedSprite[F]) StartAnimation(name string, now time.Time) {
	s.paused = false
	s.active = name
	s.hasActive = true
	s.activeSince = now
}

// ActiveAnimation returns the active animation name, if any.
func (s *AnimatedSprite[F]) ActiveAnimation() (string, bool) {
	return s.active, s.hasActive
}

// Pause freezes the current frame at now.
func (s *AnimatedSprite[F]) Pause(now time.Time) {
	if s.paused {
		return
	}
	s.paused = true
	s.pausedAt = now
}

// Resume continues playback from the frame shown when paused.
func (s *AnimatedSprite[F]) Resume(now time.Time) {
	if !s.paused {
		return
	}
	s.activeSince = s.activeSince.Add(now.Sub(s.pausedAt))
	s.paused = false
}

// Paused reports whether playback is frozen.
func (s *AnimatedSprite[F]) Paused() bool {
	return s.paused
}

// SetPosition moves the sprite.
func (s *AnimatedSprite[F]) SetPosition(x, y float64) {
	s.X, s.Y = x, y
}

// Position returns the sprite position.
func (s *AnimatedSprite[F]) Position() (x, y float64) {
	return s.X, s.Y
}

// Elapsed returns the playback time of the active animation at now, in seconds.
func (s *AnimatedSprite[F]) Elapsed(now time.Time) float64 {
	if s.paused {
		now = s.pausedAt
	}
	return now.Sub(s.activeSince).Seconds()
}

func (s *AnimatedSprite[F]) activeAnimation() (*Animation[F], error) {
	if !s.hasActive {
		return nil, &AnimationError{Err: ErrNoActiveAnimation}
	}
	a, ok := s.animations[s.active]
	if !ok {
		return nil, &AnimationError{Name: s.active, Err: ErrUnknownAnimation}
	}
	return a, nil
}

// CurrentFrameIndex returns the index of the frame to show at now.
func (s *AnimatedSprite[F]) CurrentFrameIndex(now time.Time) (int, error) {
	a, err := s.activeAnimation()
	if err != nil {
		return 0, err
	}
	return FrameIndex(s.Elapsed(now), s.fps, a.FrameCount(), a.Repeat()), nil
}

// CurrentFrame returns the frame to show at now.
//
// It fails with an *AnimationError when no animation was started or the
// active name is not registered. That is a programming error in the host;
// the host decides whether to stop.
func (s *AnimatedSprite[F]) CurrentFrame(now time.Time) (F, error) {
	a, err := s.activeAnimation()
	if err != nil {
		var zero F
		return zero, err
	}
	idx := FrameIndex(s.Elapsed(now), s.fps, a.FrameCount(), a.Repeat())
	return a.Frame(idx), nil
}

// Draw blits the current frame at the sprite position.
func (s *AnimatedSprite[F]) Draw(b Blitter[F], now time.Time) error {
	frame, err := s.CurrentFrame(now)
	if err != nil {
		return err
	}
	b.Blit(frame, s.X, s.Y)
	return nil
}
