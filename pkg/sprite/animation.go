package sprite

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAnimation is returned when an animation is built without frames.
	ErrEmptyAnimation = errors.New("animation has no frames")
	// ErrNoActiveAnimation is returned when a frame is requested before any
	// animation was started.
	ErrNoActiveAnimation = errors.New("no active animation")
	// ErrUnknownAnimation is returned when the active animation name is not
	// registered on the sprite.
	ErrUnknownAnimation = errors.New("active animation not found")
	// ErrInvalidFPS is returned for a non-positive frame rate.
	ErrInvalidFPS = errors.New("frames per second must be positive")
	// ErrInvalidGrid is returned for sheet layouts that cannot be sliced.
	ErrInvalidGrid = errors.New("invalid sprite sheet grid")
)

// AnimationError reports a problem with the sprite's active animation.
type AnimationError struct {
	Name string
	Err  error
}

func (e *AnimationError) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Name)
}

func (e *AnimationError) Unwrap() error { return e.Err }

// Animation is an ordered list of pre-sliced frames with a wrap or clamp
// policy. F is whatever handle the host renders (for ebiten, *ebiten.Image).
type Animation[F any] struct {
	frames []F
	repeat bool
}

// NewAnimation creates an animation. The frame slice is copied.
func NewAnimation[F any](frames []F, repeat bool) (*Animation[F], error) {
	if len(frames) == 0 {
		return nil, ErrEmptyAnimation
	}
	cp := make([]F, len(frames))
	copy(cp, frames)
	return &Animation[F]{frames: cp, repeat: repeat}, nil
}

// FrameCount returns the number of frames (always >= 1).
func (a *Animation[F]) FrameCount() int {
	return len(a.frames)
}

// Repeat reports whether out-of-range indices wrap.
func (a *Animation[F]) Repeat() bool {
	return a.repeat
}

// SetRepeat switches between wrap (true) and hold-last-frame (false).
func (a *Animation[F]) SetRepeat(repeat bool) {
	a.repeat = repeat
}

// Frame returns frame n. Indices past the end wrap when repeating and clamp
// to the last frame otherwise; negative indices return the first frame.
func (a *Animation[F]) Frame(n int) F {
	if n < 0 {
		n = 0
	}
	if a.repeat {
		return a.frames[n%len(a.frames)]
	}
	if n >= len(a.frames) {
		n = len(a.frames) - 1
	}
	return a.frames[n]
}

// Frames returns a copy of the frames.
func (a *Animation[F]) Frames() []F {
	cp := make([]F, len(a.frames))
	copy(cp, a.frames)
	return cp
}

// Reversed returns a new animation playing the frames backwards with the same policy.
func (a *Animation[F]) Reversed() *Animation[F] {
	rev := make([]F, len(a.frames))
	for i, f := range a.frames {
		rev[len(a.frames)-1-i] = f
	}
	return &Animation[F]{frames: rev, repeat: a.repeat}
}
