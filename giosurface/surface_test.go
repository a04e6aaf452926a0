package giosurface

import (
	"image"
	"image/color"
	"math"
	"testing"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/decart/geom"
	"git.sr.ht/~whereswaldon/decart/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDash(t *testing.T) {
	line := []geom.Point{geom.Pt(0, 0), geom.Pt(100, 0)}
	for _, tc := range []struct {
		name   string
		phase  float64
		starts []float64
		ends   []float64
	}{
		{name: "no phase", phase: 0, starts: []float64{0, 20, 40, 60, 80}, ends: []float64{10, 30, 50, 70, 90}},
		{name: "complementary phase", phase: 10, starts: []float64{10, 30, 50, 70, 90}, ends: []float64{20, 40, 60, 80, 100}},
		{name: "wrapped phase", phase: 25, starts: []float64{0, 15, 35, 55, 75, 95}, ends: []float64{5, 25, 45, 65, 85, 100}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			runs := dash(line, 10, 10, tc.phase)
			if len(runs) != len(tc.starts) {
				t.Fatalf("expected %d runs, got %d", len(tc.starts), len(runs))
			}
			for i, run := range runs {
				if math.Abs(run[0].X-tc.starts[i]) > 1e-9 {
					t.Errorf("run %d: expected start %v, got %v", i, tc.starts[i], run[0].X)
				}
				end := run[len(run)-1].X
				if math.Abs(end-tc.ends[i]) > 1e-9 {
					t.Errorf("run %d: expected end %v, got %v", i, tc.ends[i], end)
				}
			}
		})
	}
}

func TestDashFollowsCorners(t *testing.T) {
	line := []geom.Point{geom.Pt(0, 0), geom.Pt(5, 0), geom.Pt(5, 20)}
	runs := dash(line, 10, 5, 0)
	require.Len(t, runs, 2)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(5, 0), geom.Pt(5, 5)}, runs[0])
	assert.Equal(t, geom.Pt(5, 10), runs[1][0])
	assert.Equal(t, geom.Pt(5, 20), runs[1][len(runs[1])-1])
}

func TestDashWithoutPattern(t *testing.T) {
	line := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}
	assert.Equal(t, [][]geom.Point{line}, dash(line, 0, 5, 0))
}

func TestFlatten(t *testing.T) {
	var p geom.Path
	p.MoveTo(geom.Pt(0, 0))
	p.LineTo(geom.Pt(10, 0))
	p.CubeTo(geom.Pt(15, 0), geom.Pt(20, 5), geom.Pt(20, 10))
	p.MoveTo(geom.Pt(50, 50))
	p.LineTo(geom.Pt(60, 50))
	p.LineTo(geom.Pt(60, 60))
	p.Close()

	lines := flatten(&p)
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 2+curveSteps)
	assert.True(t, lines[0][len(lines[0])-1].Near(geom.Pt(20, 10), 1e-9))
	assert.Equal(t, []geom.Point{geom.Pt(50, 50), geom.Pt(60, 50), geom.Pt(60, 60), geom.Pt(50, 50)}, lines[1])
}

func newTestSurface() (*Surface, layout.Context) {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Exact(image.Pt(400, 300)),
	}
	s := New(th)
	s.Frame(gtx)
	return s, gtx
}

func TestMeasureText(t *testing.T) {
	s, _ := newTestSurface()
	w1, h1 := s.MeasureText("12", 20)
	w2, h2 := s.MeasureText("12345678", 20)
	assert.Greater(t, w1, 0.0)
	assert.Greater(t, w2, w1)
	assert.Equal(t, h1, h2)
	assert.Len(t, s.sizes, 2)

	w3, _ := s.MeasureText("12345678", 40)
	assert.Greater(t, w3, w2)
}

func TestDrawPrimitives(t *testing.T) {
	s, gtx := newTestSurface()
	black := color.NRGBA{A: 255}
	pop := s.PushClip(geom.R(10, 10, 390, 290))
	s.DrawLine(geom.Pt(0, 0), geom.Pt(100, 100), render.Stroked(black, 2))
	dashed := render.Stroked(black, 1)
	dashed.Dash = render.Dash{On: 4, Off: 4}
	s.DrawLine(geom.Pt(0, 0), geom.Pt(100, 0), dashed)
	s.DrawCircle(geom.Pt(50, 50), 6, render.Filled(black))
	s.DrawCircle(geom.Pt(50, 50), 0, render.Filled(black))
	s.DrawRect(geom.R(1, 1, 5, 5), render.Filled(black))
	s.DrawRoundRect(geom.R(1, 1, 50, 20), 4, render.Stroked(black, 1))
	var p geom.Path
	p.MoveTo(geom.Pt(0, 0))
	p.CubeTo(geom.Pt(10, 0), geom.Pt(20, 10), geom.Pt(30, 30))
	s.DrawPath(&p, dashed)
	s.DrawPath(&p, render.Stroked(black, 3))
	s.DrawImage(image.NewRGBA(image.Rect(0, 0, 4, 4)), geom.R(0, 0, 16, 16))
	pop()
	s.DrawText("label", geom.Pt(100, 100), render.TextStyle{Color: black, Size: 14, Align: render.AlignCenter})
	s.DrawText("", geom.Pt(100, 100), render.TextStyle{Color: black, Size: 14})
	gtx.Ops.Reset()
}
