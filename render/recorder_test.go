package render

import (
	"image"

	"git.sr.ht/~whereswaldon/decart/geom"
)

// call is one recorded Surface invocation.
type call struct {
	op     string
	pts    []geom.Point
	radius float64
	rect   geom.Rect
	path   *geom.Path
	style  Style
	text   string
	tstyle TextStyle
}

// recorder is a Surface that remembers every call.
type recorder struct {
	calls []call
	clips int
}

var _ Surface = (*recorder)(nil)

func (r *recorder) DrawLine(from, to geom.Point, style Style) {
	r.calls = append(r.calls, call{op: "line", pts: []geom.Point{from, to}, style: style})
}

func (r *recorder) DrawCircle(center geom.Point, radius float64, style Style) {
	r.calls = append(r.calls, call{op: "circle", pts: []geom.Point{center}, radius: radius, style: style})
}

func (r *recorder) DrawPath(p *geom.Path, style Style) {
	r.calls = append(r.calls, call{op: "path", path: p.Clone(), style: style})
}

func (r *recorder) DrawRect(rect geom.Rect, style Style) {
	r.calls = append(r.calls, call{op: "rect", rect: rect, style: style})
}

func (r *recorder) DrawRoundRect(rect geom.Rect, radius float64, style Style) {
	r.calls = append(r.calls, call{op: "roundrect", rect: rect, radius: radius, style: style})
}

func (r *recorder) DrawText(text string, anchor geom.Point, style TextStyle) {
	r.calls = append(r.calls, call{op: "text", pts: []geom.Point{anchor}, text: text, tstyle: style})
}

func (r *recorder) MeasureText(text string, size float64) (float64, float64) {
	return float64(len(text)) * size / 2, size
}

func (r *recorder) DrawImage(img image.Image, dst geom.Rect) {
	r.calls = append(r.calls, call{op: "image", rect: dst})
}

func (r *recorder) PushClip(rect geom.Rect) func() {
	r.clips++
	r.calls = append(r.calls, call{op: "clip", rect: rect})
	return func() {
		r.clips--
		r.calls = append(r.calls, call{op: "unclip"})
	}
}

func (r *recorder) ops(op string) []call {
	var out []call
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) index(op string) int {
	for i, c := range r.calls {
		if c.op == op {
			return i
		}
	}
	return -1
}
