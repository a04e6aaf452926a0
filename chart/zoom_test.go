package chart

import (
	"math"
	"testing"

	"git.sr.ht/~whereswaldon/decart/data"
	"git.sr.ht/~whereswaldon/decart/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhasesClamp(t *testing.T) {
	for _, tc := range []struct {
		name     string
		in       Phases
		expected Phases
	}{
		{name: "in range", in: Phases{X: 0.3, Y: 0.7}, expected: Phases{X: 0.3, Y: 0.7}},
		{name: "below", in: Phases{X: -1, Y: -0.1}, expected: Phases{}},
		{name: "above", in: Phases{X: 2, Y: 1.5}, expected: Phases{X: 1, Y: 1}},
		{name: "nan", in: Phases{X: math.NaN(), Y: 0.5}, expected: Phases{X: 1, Y: 0.5}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Clamped(); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestSetPhasesInvalidates(t *testing.T) {
	g := New()
	invalidations := 0
	g.SetInvalidator(func() { invalidations++ })
	assert.True(t, g.Phases().Done())

	g.SetPhases(Phases{X: 0, Y: 0})
	g.SetPhaseX(0.5)
	g.SetPhaseY(3)
	assert.Equal(t, Phases{X: 0.5, Y: 1}, g.Phases())
	assert.False(t, g.Phases().Done())
	assert.Equal(t, 3, invalidations)

	g.SetPhaseX(0.5)
	assert.Equal(t, 3, invalidations, "unchanged phases do not redraw")
}

func TestZoomNotifiesAndRegeneratesTicks(t *testing.T) {
	entries := make([]data.Entry, 0, 101)
	for i := 0; i <= 100; i++ {
		entries = append(entries, data.E(float64(i), float64(i%7)))
	}
	g := newGraph(t, data.NewDataSet("s", entries))
	var scales [][2]float64
	g.SetViewportListener(func(sx, sy float64) {
		scales = append(scales, [2]float64{sx, sy})
	})
	fullInterval := g.XTicks().Interval

	for i := 0; i < 4; i++ {
		g.ZoomIn()
	}
	require.Len(t, scales, 4)
	assert.InDelta(t, math.Pow(viewport.ZoomInFactor, 4), scales[3][0], 1e-9)
	assert.Less(t, g.XTicks().Interval, fullInterval, "zoomed ticks follow the visible range")
	visible := g.Transformer().VisibleRange()
	for _, v := range g.XTicks().Values {
		assert.GreaterOrEqual(t, v, visible.Min.X-g.XTicks().Interval)
		assert.LessOrEqual(t, v, visible.Max.X+g.XTicks().Interval)
	}

	g.FitScreen()
	assert.True(t, g.Transformer().IsFullyZoomedOut())
	assert.Equal(t, fullInterval, g.XTicks().Interval)
	assert.Equal(t, [2]float64{1, 1}, scales[len(scales)-1])
}

func TestPixelValueRoundTrip(t *testing.T) {
	g := newGraph(t, data.NewDataSet("s", []data.Entry{data.E(-3, 2), data.E(8, 40)}))
	g.Zoom(2, 1.5, g.PixelForValue(1, 10))
	g.PanBy(-30, 12)
	for _, v := range [][2]float64{{0, 0}, {-3, 2}, {8, 40}, {2.5, 17.25}} {
		p := g.PixelForValue(v[0], v[1])
		back := g.ValueForPixel(p.X, p.Y)
		assert.InDelta(t, v[0], back.X, 1e-6)
		assert.InDelta(t, v[1], back.Y, 1e-6)
	}
}

func TestCenterViewport(t *testing.T) {
	g := newGraph(t, data.NewDataSet("s", []data.Entry{data.E(0, 0), data.E(100, 100)}))
	g.Zoom(4, 4, g.Transformer().ContentRect().Center())
	g.CenterViewport(60, 40)
	p := g.PixelForValue(60, 40)
	c := g.Transformer().ContentRect().Center()
	assert.InDelta(t, c.X, p.X, 1e-6)
	assert.InDelta(t, c.Y, p.Y, 1e-6)
}

func TestSetScaleMinima(t *testing.T) {
	g := newGraph(t, data.NewDataSet("s", []data.Entry{data.E(0, 0), data.E(10, 10)}))
	g.SetScaleMinima(3, 2)
	assert.InDelta(t, 3, g.Transformer().ScaleX(), 1e-9)
	assert.InDelta(t, 2, g.Transformer().ScaleY(), 1e-9)
	g.ZoomOut()
	assert.InDelta(t, 3, g.Transformer().ScaleX(), 1e-9)
}
