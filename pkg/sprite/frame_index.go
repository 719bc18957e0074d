// Package sprite schedules sprite-sheet animations.
//
// Frame selection is derived from elapsed wall-clock time, never from a
// per-tick counter, so a slow or uneven host loop cannot make an animation
// drift: the frame shown at time t is always FrameIndex(t-start, fps, n, repeat).
package sprite

import "math"

// FrameIndex maps elapsed seconds to a frame index.
//
// With repeat the index wraps (floor(elapsed*fps) mod frameCount); without it
// the animation holds on its last frame. Elapsed <= 0, NaN, fps <= 0 and
// frameCount < 1 all return 0.
//
// The arithmetic stays in float64 until the index is reduced, so very long
// runtimes cannot overflow int.
func FrameIndex(elapsed, fps float64, frameCount int, repeat bool) int {
	if frameCount < 1 || !(fps > 0) || !(elapsed > 0) {
		return 0
	}

	frames := math.Floor(elapsed * fps)
	if math.IsInf(frames, 0) || math.IsNaN(frames) {
		if repeat {
			return 0
		}
		return frameCount - 1
	}

	n := float64(frameCount)
	if repeat {
		return int(math.Mod(frames, n))
	}
	if frames >= n-1 {
		return frameCount - 1
	}
	return int(frames)
}
