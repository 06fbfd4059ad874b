// Package chart provides the zoom/pan viewport engine used to select
// the visible subrange of a sample sequence, and the view variant the
// renderer dispatches on.
package chart

import "math"

const (
	// zoomFactor is the window-width multiplier per zoom-in step.
	zoomFactor = 0.7

	// panDivisor: a pan step moves the window by width/panDivisor, so
	// panning covers the same fraction of the screen at any zoom.
	panDivisor = 5

	// MinVisiblePoints is the smallest window zooming in can reach,
	// when the data has at least that many points.
	MinVisiblePoints = 10
)

// Viewport is a zoom/pan window over an ordered sequence of N indexed
// points. It never mutates or observes the underlying data: every
// operation takes the current N and clamps against it, so the window
// stays valid even when the data shrank or grew since the last call.
//
// The zero value selects the full range. Independent views hold
// independent instances.
type Viewport struct {
	start int
	width int
	// fitted reports whether the window has ever been positioned;
	// until then the viewport tracks the full range.
	fitted bool
}

// Window describes the current visible window for a dataset of n
// points, after clamping.
type Window struct {
	Start int
	Width int
	// Zoom is the visible fraction of the data, 1.0 = everything.
	Zoom float64
}

// FitToData resets the window to exactly cover all n points.
// Idempotent: fitting twice is the same as fitting once.
func (v *Viewport) FitToData(n int) {
	v.start = 0
	v.width = n
	v.fitted = true
}

// ZoomIn shrinks the window by the zoom factor, keeping the focal
// point in place: the center normally, or the right edge when the
// window is pinned to the newest point (the live view case).
func (v *Viewport) ZoomIn(n int) {
	lo, hi := v.Clamp(n)
	width := hi - lo
	if width == 0 {
		return
	}

	next := int(math.Round(float64(width) * zoomFactor))
	floor := MinVisiblePoints
	if floor > n {
		floor = n
	}
	if next < floor {
		next = floor
	}

	v.place(lo, hi, next, n)
}

// ZoomOut grows the window by the zoom factor, clamped to the full
// range, preserving the same focal point rule as ZoomIn.
func (v *Viewport) ZoomOut(n int) {
	lo, hi := v.Clamp(n)
	width := hi - lo
	if width == 0 {
		return
	}

	next := int(math.Round(float64(width) / zoomFactor))
	if next <= width {
		next = width + 1
	}
	if next >= n {
		v.FitToData(n)
		return
	}

	v.place(lo, hi, next, n)
}

// place positions a window of the given width around the previous
// window [lo, hi) and stores it.
func (v *Viewport) place(lo, hi, width, n int) {
	var start int
	if hi == n {
		// Right edge pinned to the newest point
		start = n - width
	} else {
		center := lo + (hi-lo)/2
		start = center - width/2
	}

	if start+width > n {
		start = n - width
	}
	if start < 0 {
		start = 0
	}

	v.start = start
	v.width = width
	v.fitted = true
}

// PanLeft shifts the window toward older points by a step proportional
// to the window width.
func (v *Viewport) PanLeft(n int) {
	lo, hi := v.Clamp(n)
	width := hi - lo
	if width == 0 || width >= n {
		return
	}

	start := lo - panStep(width)
	if start < 0 {
		start = 0
	}

	v.start = start
	v.width = width
	v.fitted = true
}

// PanRight shifts the window toward newer points, clamped so it never
// extends past the last point.
func (v *Viewport) PanRight(n int) {
	lo, hi := v.Clamp(n)
	width := hi - lo
	if width == 0 || width >= n {
		return
	}

	start := lo + panStep(width)
	if start+width > n {
		start = n - width
	}

	v.start = start
	v.width = width
	v.fitted = true
}

func panStep(width int) int {
	step := width / panDivisor
	if step < 1 {
		step = 1
	}
	return step
}

// Clamp returns the visible bounds [lo, hi) for a dataset of n points.
// The result is always in range and non-empty whenever n > 0, whatever
// sequence of operations preceded it and however n changed since.
func (v *Viewport) Clamp(n int) (lo, hi int) {
	if n <= 0 {
		return 0, 0
	}

	width := v.width
	if !v.fitted || width <= 0 || width > n {
		width = n
	}
	if !v.fitted {
		return 0, n
	}

	start := v.start
	if start+width > n {
		start = n - width
	}
	if start < 0 {
		start = 0
	}

	return start, start + width
}

// CurrentWindow reports the clamped window plus its zoom level for a
// dataset of n points.
func (v *Viewport) CurrentWindow(n int) Window {
	lo, hi := v.Clamp(n)
	w := Window{Start: lo, Width: hi - lo}
	if n > 0 {
		w.Zoom = float64(w.Width) / float64(n)
	}
	return w
}
