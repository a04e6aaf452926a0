// Package giosurface draws charts with Gio operations.
package giosurface

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/decart/geom"
	"git.sr.ht/~whereswaldon/decart/render"
)

// circleK is the control point distance of a quarter circle cubic.
const circleK = 0.5522847498

// maxCachedSizes bounds the text measurement cache.
const maxCachedSizes = 2048

type textKey struct {
	text string
	size float64
}

// Surface implements render.Surface on top of a Gio operation list. Call
// Frame at the start of every frame before drawing.
type Surface struct {
	Theme *material.Theme

	gtx     layout.Context
	metric  unit.Metric
	scratch op.Ops
	sizes   map[textKey]image.Point
}

var _ render.Surface = (*Surface)(nil)

func New(th *material.Theme) *Surface {
	return &Surface{
		Theme: th,
		sizes: make(map[textKey]image.Point),
	}
}

// Frame points the surface at the operations of the current frame.
func (s *Surface) Frame(gtx layout.Context) {
	if gtx.Metric != s.metric {
		clear(s.sizes)
		s.metric = gtx.Metric
	}
	s.gtx = gtx
}

func pt(p geom.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

func (s *Surface) paint(spec clip.PathSpec, style render.Style) {
	if style.Mode == render.Stroke {
		paint.FillShape(s.gtx.Ops, style.Color, clip.Stroke{Path: spec, Width: float32(max(style.StrokeWidth, 1))}.Op())
		return
	}
	paint.FillShape(s.gtx.Ops, style.Color, clip.Outline{Path: spec}.Op())
}

// stroke draws an open polyline, dashed if requested.
func (s *Surface) stroke(line []geom.Point, style render.Style) {
	runs := [][]geom.Point{line}
	if style.Dash.On > 0 && style.Dash.Off > 0 {
		runs = dash(line, style.Dash.On, style.Dash.Off, style.Dash.Phase)
	}
	for _, run := range runs {
		if len(run) < 2 {
			continue
		}
		var p clip.Path
		p.Begin(s.gtx.Ops)
		p.MoveTo(pt(run[0]))
		for _, q := range run[1:] {
			p.LineTo(pt(q))
		}
		paint.FillShape(s.gtx.Ops, style.Color, clip.Stroke{Path: p.End(), Width: float32(max(style.StrokeWidth, 1))}.Op())
	}
}

func (s *Surface) DrawLine(from, to geom.Point, style render.Style) {
	s.stroke([]geom.Point{from, to}, style)
}

func (s *Surface) DrawCircle(center geom.Point, radius float64, style render.Style) {
	if radius <= 0 {
		return
	}
	var p clip.Path
	p.Begin(s.gtx.Ops)
	appendCircle(&p, center, radius)
	s.paint(p.End(), style)
}

func appendCircle(p *clip.Path, c geom.Point, r float64) {
	k := r * circleK
	p.MoveTo(pt(geom.Pt(c.X+r, c.Y)))
	p.CubeTo(pt(geom.Pt(c.X+r, c.Y+k)), pt(geom.Pt(c.X+k, c.Y+r)), pt(geom.Pt(c.X, c.Y+r)))
	p.CubeTo(pt(geom.Pt(c.X-k, c.Y+r)), pt(geom.Pt(c.X-r, c.Y+k)), pt(geom.Pt(c.X-r, c.Y)))
	p.CubeTo(pt(geom.Pt(c.X-r, c.Y-k)), pt(geom.Pt(c.X-k, c.Y-r)), pt(geom.Pt(c.X, c.Y-r)))
	p.CubeTo(pt(geom.Pt(c.X+k, c.Y-r)), pt(geom.Pt(c.X+r, c.Y-k)), pt(geom.Pt(c.X+r, c.Y)))
	p.Close()
}

func (s *Surface) DrawPath(gp *geom.Path, style render.Style) {
	if gp == nil || gp.Len() == 0 {
		return
	}
	if style.Mode == render.Stroke && style.Dash.On > 0 && style.Dash.Off > 0 {
		for _, line := range flatten(gp) {
			s.stroke(line, style)
		}
		return
	}
	var p clip.Path
	p.Begin(s.gtx.Ops)
	for _, seg := range gp.Segments {
		switch seg.Verb {
		case geom.MoveTo:
			p.MoveTo(pt(seg.Pts[0]))
		case geom.LineTo:
			p.LineTo(pt(seg.Pts[0]))
		case geom.CubeTo:
			p.CubeTo(pt(seg.Pts[0]), pt(seg.Pts[1]), pt(seg.Pts[2]))
		case geom.Close:
			p.Close()
		}
	}
	s.paint(p.End(), style)
}

func rectPath(ops *op.Ops, r geom.Rect) clip.PathSpec {
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(pt(r.Min))
	p.LineTo(pt(geom.Pt(r.Max.X, r.Min.Y)))
	p.LineTo(pt(r.Max))
	p.LineTo(pt(geom.Pt(r.Min.X, r.Max.Y)))
	p.Close()
	return p.End()
}

func (s *Surface) DrawRect(r geom.Rect, style render.Style) {
	if r.Empty() {
		return
	}
	s.paint(rectPath(s.gtx.Ops, r), style)
}

func (s *Surface) DrawRoundRect(r geom.Rect, radius float64, style render.Style) {
	if r.Empty() {
		return
	}
	radius = min(radius, r.Dx()/2, r.Dy()/2)
	if radius <= 0 {
		s.DrawRect(r, style)
		return
	}
	k := radius * (1 - circleK)
	var p clip.Path
	p.Begin(s.gtx.Ops)
	p.MoveTo(pt(geom.Pt(r.Min.X+radius, r.Min.Y)))
	p.LineTo(pt(geom.Pt(r.Max.X-radius, r.Min.Y)))
	p.CubeTo(pt(geom.Pt(r.Max.X-k, r.Min.Y)), pt(geom.Pt(r.Max.X, r.Min.Y+k)), pt(geom.Pt(r.Max.X, r.Min.Y+radius)))
	p.LineTo(pt(geom.Pt(r.Max.X, r.Max.Y-radius)))
	p.CubeTo(pt(geom.Pt(r.Max.X, r.Max.Y-k)), pt(geom.Pt(r.Max.X-k, r.Max.Y)), pt(geom.Pt(r.Max.X-radius, r.Max.Y)))
	p.LineTo(pt(geom.Pt(r.Min.X+radius, r.Max.Y)))
	p.CubeTo(pt(geom.Pt(r.Min.X+k, r.Max.Y)), pt(geom.Pt(r.Min.X, r.Max.Y-k)), pt(geom.Pt(r.Min.X, r.Max.Y-radius)))
	p.LineTo(pt(geom.Pt(r.Min.X, r.Min.Y+radius)))
	p.CubeTo(pt(geom.Pt(r.Min.X, r.Min.Y+k)), pt(geom.Pt(r.Min.X+k, r.Min.Y)), pt(geom.Pt(r.Min.X+radius, r.Min.Y)))
	p.Close()
	s.paint(p.End(), style)
}

// label returns a single line label for text at size pixels.
func (s *Surface) label(text string, size float64, c color.NRGBA) material.LabelStyle {
	sp := unit.Sp(size)
	if s.gtx.Metric.PxPerSp > 0 {
		sp = unit.Sp(float32(size) / s.gtx.Metric.PxPerSp)
	}
	l := material.Label(s.Theme, sp, text)
	l.Color = c
	l.MaxLines = 1
	return l
}

func (s *Surface) layoutText(gtx layout.Context, text string, size float64, c color.NRGBA) (layout.Dimensions, op.CallOp) {
	gtx.Constraints = layout.Constraints{Max: image.Pt(1<<20, 1<<20)}
	macro := op.Record(gtx.Ops)
	dims := s.label(text, size, c).Layout(gtx)
	return dims, macro.Stop()
}

func (s *Surface) MeasureText(text string, size float64) (float64, float64) {
	key := textKey{text: text, size: size}
	if sz, ok := s.sizes[key]; ok {
		return float64(sz.X), float64(sz.Y)
	}
	if s.Theme == nil {
		return 0, 0
	}
	gtx := s.gtx
	s.scratch.Reset()
	gtx.Ops = &s.scratch
	dims, _ := s.layoutText(gtx, text, size, color.NRGBA{})
	if len(s.sizes) >= maxCachedSizes {
		clear(s.sizes)
	}
	s.sizes[key] = dims.Size
	return float64(dims.Size.X), float64(dims.Size.Y)
}

// DrawText draws a line of text aligned horizontally on anchor and centred
// vertically on it.
func (s *Surface) DrawText(text string, anchor geom.Point, style render.TextStyle) {
	if text == "" || s.Theme == nil {
		return
	}
	dims, call := s.layoutText(s.gtx, text, style.Size, style.Color)
	x := float32(anchor.X)
	switch style.Align {
	case render.AlignCenter:
		x -= float32(dims.Size.X) / 2
	case render.AlignEnd:
		x -= float32(dims.Size.X)
	}
	y := float32(anchor.Y) - float32(dims.Size.Y)/2
	defer op.Affine(f32.Affine2D{}.Offset(f32.Pt(x, y))).Push(s.gtx.Ops).Pop()
	call.Add(s.gtx.Ops)
}

// DrawImage scales img to fill dst.
func (s *Surface) DrawImage(img image.Image, dst geom.Rect) {
	b := img.Bounds()
	if b.Empty() || dst.Empty() {
		return
	}
	scale := f32.Pt(float32(dst.Dx())/float32(b.Dx()), float32(dst.Dy())/float32(b.Dy()))
	tr := f32.Affine2D{}.Scale(f32.Point{}, scale).Offset(pt(dst.Min))
	defer op.Affine(tr).Push(s.gtx.Ops).Pop()
	defer clip.Rect{Max: b.Size()}.Push(s.gtx.Ops).Pop()
	imgOp := paint.NewImageOp(img)
	imgOp.Filter = paint.FilterLinear
	imgOp.Add(s.gtx.Ops)
	paint.PaintOp{}.Add(s.gtx.Ops)
}

func (s *Surface) PushClip(r geom.Rect) func() {
	stack := clip.Outline{Path: rectPath(s.gtx.Ops, r)}.Op().Push(s.gtx.Ops)
	return stack.Pop
}
