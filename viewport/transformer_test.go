package viewport

import (
	"math/rand"
	"testing"

	"git.sr.ht/~whereswaldon/decart/data"
	"git.sr.ht/~whereswaldon/decart/geom"
	"github.com/stretchr/testify/assert"
)

func newTestTransformer() *Transformer {
	t := NewTransformer()
	t.SetContentRect(geom.R(10, 20, 110, 220))
	t.SetValueRange(0, 10, 0, 100)
	return t
}

func TestValueToPixelCorners(t *testing.T) {
	tr := newTestTransformer()
	for _, tc := range []struct {
		name     string
		value    geom.Point
		expected geom.Point
	}{
		{name: "origin bottom left", value: geom.Pt(0, 0), expected: geom.Pt(10, 220)},
		{name: "max top right", value: geom.Pt(10, 100), expected: geom.Pt(110, 20)},
		{name: "middle", value: geom.Pt(5, 50), expected: geom.Pt(60, 120)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tr.ValueToPixel(tc.value)
			if !got.Near(tc.expected, 1e-9) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestZeroRangeStillMaps(t *testing.T) {
	tr := NewTransformer()
	tr.SetContentRect(geom.R(0, 0, 100, 100))
	tr.SetValueRange(3, 3, 7, 7)
	p := tr.ValueToPixel(geom.Pt(3, 7))
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 100, p.Y, 1e-9)
	back := tr.PixelToValue(p)
	assert.InDelta(t, 3, back.X, 1e-9)
	assert.InDelta(t, 7, back.Y, 1e-9)
}

func TestZoomKeepsAnchor(t *testing.T) {
	tr := newTestTransformer()
	tr.ZoomIn()
	assert.InDelta(t, ZoomInFactor, tr.ScaleX(), 1e-9)
	center := tr.ValueToPixel(geom.Pt(5, 50))
	assert.InDelta(t, 60, center.X, 1e-9)
	assert.InDelta(t, 120, center.Y, 1e-9)

	visible := tr.VisibleRange()
	assert.Less(t, visible.Dx(), 10.0)
	assert.False(t, tr.IsFullyZoomedOut())

	tr.FitToScreen()
	assert.True(t, tr.IsFullyZoomedOut())
}

func TestZoomOutClampsAtFit(t *testing.T) {
	tr := newTestTransformer()
	tr.ZoomOut()
	assert.Equal(t, 1.0, tr.ScaleX())
	assert.Equal(t, 1.0, tr.ScaleY())
	p := tr.ValueToPixel(geom.Pt(0, 0))
	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 220, p.Y, 1e-9)
}

func TestScaleMinimum(t *testing.T) {
	tr := newTestTransformer()
	tr.SetScaleMinimum(0.5, 3)
	assert.Equal(t, 1.0, tr.ScaleX(), "minimums below 1 are raised without permission")
	assert.Equal(t, 3.0, tr.ScaleY())

	tr = newTestTransformer()
	tr.AllowZoomOutPastFit(true)
	tr.SetScaleMinimum(0.5, 0.5)
	tr.ZoomAt(0.1, 0.1, tr.ContentRect().Center())
	assert.InDelta(t, 0.5, tr.ScaleX(), 1e-12)
}

func TestPanIsBoundedByContent(t *testing.T) {
	tr := newTestTransformer()
	tr.PanBy(50, 50)
	assert.Equal(t, 0.0, tr.Touch().TranslateX(), "cannot pan an unzoomed chart")

	tr.ZoomAt(2, 2, tr.ContentRect().Min)
	tr.PanBy(-1000, 0)
	assert.InDelta(t, -100, tr.Touch().TranslateX(), 1e-9)

	tr.SetDragOffset(20, 0)
	tr.PanBy(1000, 0)
	assert.InDelta(t, 20, tr.Touch().TranslateX(), 1e-9)
}

func TestCenterViewport(t *testing.T) {
	tr := newTestTransformer()
	tr.ZoomAt(4, 4, tr.ContentRect().Center())
	tr.CenterViewport(geom.Pt(4, 40))
	p := tr.ValueToPixel(geom.Pt(4, 40))
	assert.InDelta(t, 60, p.X, 1e-9)
	assert.InDelta(t, 120, p.Y, 1e-9)
}

func TestRoundTripUnderRandomGestures(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	spans := []float64{5000, 1e6, 2e9}
	for seq := 0; seq < 120; seq++ {
		tr := NewTransformer()
		tr.SetContentRect(geom.R(30, 10, 30+100+rng.Float64()*900, 10+100+rng.Float64()*700))
		span := spans[seq%len(spans)]
		xMin := rng.NormFloat64() * 1000
		yMin := rng.NormFloat64() * 1000
		dx := rng.Float64()*span + 0.01
		dy := rng.Float64()*span + 0.01
		tr.SetValueRange(xMin, xMin+dx, yMin, yMin+dy)
		for step := 0; step < 20; step++ {
			switch rng.Intn(3) {
			case 0:
				tr.ZoomIn()
			case 1:
				tr.ZoomOut()
			default:
				tr.PanBy(rng.NormFloat64()*200, rng.NormFloat64()*200)
			}
			v := geom.Pt(xMin+rng.Float64()*dx, yMin+rng.Float64()*dy)
			back := tr.PixelToValue(tr.ValueToPixel(v))
			if !back.Near(v, 1e-3) {
				t.Fatalf("sequence %d step %d: expected %v, got %v", seq, step, v, back)
			}
		}
	}
}

func TestRoundTripLargeRange(t *testing.T) {
	tr := NewTransformer()
	tr.SetContentRect(geom.R(0, 0, 1000, 1000))
	tr.SetValueRange(0, 2e9, 0, 2e9)
	v := geom.Pt(1e9, 1e9)
	back := tr.PixelToValue(tr.ValueToPixel(v))
	if !back.Near(v, 1e-3) {
		t.Errorf("expected %v, got %v", v, back)
	}
	visible := tr.VisibleRange()
	assert.InDelta(t, 0, visible.Min.X, 1e-3)
	assert.InDelta(t, 2e9, visible.Max.X, 1e-3)
}

func TestTransformEntriesAppliesPhase(t *testing.T) {
	tr := newTestTransformer()
	pts := tr.TransformEntries(nil, []data.Entry{data.E(10, 100)}, 0.5)
	assert.InDelta(t, 110, pts[0].X, 1e-9)
	assert.InDelta(t, 120, pts[0].Y, 1e-9)
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(3, -4).Mul(Scale(2, 5))
	p := geom.Pt(7, 11)
	back := m.Invert().Transform(m.Transform(p))
	if !back.Near(p, 1e-12) {
		t.Errorf("expected %v, got %v", p, back)
	}
	singular := Scale(0, 2).Invert()
	assert.InDelta(t, 1/MinScale, singular.A, 1e-3)
}
