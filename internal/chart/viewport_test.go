package chart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/halden/battrack/internal/chart"
)

func TestZeroValueSelectsFullRange(t *testing.T) {
	var vp chart.Viewport

	lo, hi := vp.Clamp(250)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 250, hi)

	lo, hi = vp.Clamp(0)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi, "no data means an empty window, the only empty case")
}

func TestFitToDataIsIdempotent(t *testing.T) {
	var vp chart.Viewport

	vp.FitToData(100)
	first := vp.CurrentWindow(100)

	vp.FitToData(100)
	second := vp.CurrentWindow(100)

	assert.Equal(t, first, second)
	assert.Equal(t, chart.Window{Start: 0, Width: 100, Zoom: 1.0}, second)
}

func TestZoomInThriceThenFitRestoresFullRange(t *testing.T) {
	var vp chart.Viewport
	vp.FitToData(100)

	vp.ZoomIn(100)
	vp.ZoomIn(100)
	vp.ZoomIn(100)

	window := vp.CurrentWindow(100)
	require.Less(t, window.Width, 100)

	vp.FitToData(100)
	assert.Equal(t, chart.Window{Start: 0, Width: 100, Zoom: 1.0}, vp.CurrentWindow(100),
		"fit yields the same window as if no zoom had occurred")
}

func TestZoomPinsRightEdgeOnLiveView(t *testing.T) {
	var vp chart.Viewport
	vp.FitToData(100)

	// The full-range window touches the newest point, so zooming keeps
	// that edge in place
	vp.ZoomIn(100)
	lo, hi := vp.Clamp(100)
	assert.Equal(t, 100, hi)
	assert.Equal(t, 30, lo)

	vp.ZoomIn(100)
	lo, hi = vp.Clamp(100)
	assert.Equal(t, 100, hi)
	assert.Equal(t, 51, lo)
}

func TestZoomPreservesCenterAwayFromLiveEdge(t *testing.T) {
	var vp chart.Viewport
	vp.FitToData(100)
	vp.ZoomIn(100) // [30, 100)
	vp.PanLeft(100)
	vp.PanLeft(100)
	vp.PanLeft(100) // [0, 70)

	lo, hi := vp.Clamp(100)
	require.Equal(t, 0, lo)
	require.Equal(t, 70, hi)

	vp.ZoomIn(100)
	lo, hi = vp.Clamp(100)
	assert.Equal(t, 11, lo, "window shrinks around its center")
	assert.Equal(t, 60, hi)
}

func TestZoomNeverShrinksBelowMinimum(t *testing.T) {
	var vp chart.Viewport
	vp.FitToData(1000)

	for i := 0; i < 50; i++ {
		vp.ZoomIn(1000)
	}

	window := vp.CurrentWindow(1000)
	assert.Equal(t, chart.MinVisiblePoints, window.Width)
}

func TestZoomOutClampsToFullRange(t *testing.T) {
	var vp chart.Viewport
	vp.FitToData(100)
	vp.ZoomIn(100)

	vp.ZoomOut(100)
	vp.ZoomOut(100)

	assert.Equal(t, chart.Window{Start: 0, Width: 100, Zoom: 1.0}, vp.CurrentWindow(100))
}

func TestZoomOnTinyDataset(t *testing.T) {
	var vp chart.Viewport
	vp.FitToData(4)

	vp.ZoomIn(4)
	lo, hi := vp.Clamp(4)
	assert.Equal(t, 0, lo, "cannot zoom below the data size when under the minimum")
	assert.Equal(t, 4, hi)
}

func TestPanStepsAreProportionalAndClamped(t *testing.T) {
	var vp chart.Viewport
	vp.FitToData(100)
	vp.ZoomIn(100) // [30, 100), width 70

	vp.PanLeft(100)
	lo, hi := vp.Clamp(100)
	assert.Equal(t, 16, lo, "pan step is a fifth of the window")
	assert.Equal(t, 86, hi)

	vp.PanRight(100)
	lo, _ = vp.Clamp(100)
	assert.Equal(t, 30, lo)

	for i := 0; i < 20; i++ {
		vp.PanRight(100)
	}
	lo, hi = vp.Clamp(100)
	assert.Equal(t, 100, hi, "pan clamps at the newest point")
	assert.Equal(t, 30, lo)

	for i := 0; i < 20; i++ {
		vp.PanLeft(100)
	}
	lo, _ = vp.Clamp(100)
	assert.Equal(t, 0, lo, "pan clamps at the oldest point")
}

func TestPanOnFullWindowIsNoop(t *testing.T) {
	var vp chart.Viewport
	vp.FitToData(50)

	vp.PanLeft(50)
	vp.PanRight(50)

	assert.Equal(t, chart.Window{Start: 0, Width: 50, Zoom: 1.0}, vp.CurrentWindow(50))
}

func TestClampSurvivesDataShrinking(t *testing.T) {
	var vp chart.Viewport
	vp.FitToData(100)
	vp.ZoomIn(100) // [30, 100)

	// Eviction shrank the dataset between renders; the window must
	// still be a non-empty in-range subrange
	lo, hi := vp.Clamp(40)
	assert.GreaterOrEqual(t, lo, 0)
	assert.LessOrEqual(t, hi, 40)
	assert.Greater(t, hi, lo)

	lo, hi = vp.Clamp(1)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 1, hi)
}

func TestClampSurvivesDataGrowth(t *testing.T) {
	var vp chart.Viewport
	vp.FitToData(10)

	lo, hi := vp.Clamp(500)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 10, hi, "window keeps its width until re-fit")
}

func TestRandomOperationSequenceKeepsInvariant(t *testing.T) {
	var vp chart.Viewport
	sizes := []int{100, 37, 0, 1, 500, 12}

	ops := []func(n int){vp.ZoomIn, vp.ZoomOut, vp.PanLeft, vp.PanRight, vp.FitToData}
	for i := 0; i < 200; i++ {
		n := sizes[i%len(sizes)]
		ops[i%len(ops)](n)

		check := sizes[(i+3)%len(sizes)]
		lo, hi := vp.Clamp(check)
		assert.GreaterOrEqual(t, lo, 0)
		assert.LessOrEqual(t, hi, check)
		if check > 0 {
			assert.Greater(t, hi, lo, "window is non-empty whenever data exists")
		}
	}
}
