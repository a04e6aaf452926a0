package viewport

import (
	"math"

	"git.sr.ht/~whereswaldon/decart/data"
	"git.sr.ht/~whereswaldon/decart/geom"
	"golang.org/x/exp/constraints"
)

const (
	// MinDelta is the smallest axis range the value matrix divides by.
	MinDelta = 1e-5
	// ZoomInFactor and ZoomOutFactor are the steps used by ZoomIn and ZoomOut.
	ZoomInFactor  = 1.4
	ZoomOutFactor = 0.7
)

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Transformer converts between value space and pixel space. It composes a
// value matrix (data bounds to the unit square, Y flipped), a scale to the
// content size, a touch matrix holding pan and zoom in content-local pixels,
// and a translation to the content origin.
type Transformer struct {
	value   Matrix
	touch   Matrix
	content geom.Rect

	minScaleX, minScaleY float64
	maxScaleX, maxScaleY float64
	allowFitOverflow     bool
	dragX, dragY         float64

	toPixel, toValue Matrix
}

// NewTransformer returns a transformer with an identity touch matrix and
// a unit value range.
func NewTransformer() *Transformer {
	t := &Transformer{
		touch:     Identity(),
		minScaleX: 1,
		minScaleY: 1,
		maxScaleX: math.MaxFloat32,
		maxScaleY: math.MaxFloat32,
	}
	t.SetValueRange(0, 1, 0, 1)
	return t
}

// SetValueRange maps [xMin, xMax] x [yMin, yMax] onto the content area.
// A range narrower than MinDelta is widened to 1 so the mapping stays
// valid.
func (t *Transformer) SetValueRange(xMin, xMax, yMin, yMax float64) {
	deltaX := xMax - xMin
	deltaY := yMax - yMin
	if math.Abs(deltaX) < MinDelta || math.IsNaN(deltaX) {
		deltaX = 1
	}
	if math.Abs(deltaY) < MinDelta || math.IsNaN(deltaY) {
		deltaY = 1
	}
	t.value = Matrix{
		A: 1 / deltaX,
		C: -xMin / deltaX,
		E: -1 / deltaY,
		F: 1 + yMin/deltaY,
	}
	t.rebuild()
}

// SetContentRect sets the pixel rectangle the data is drawn into.
func (t *Transformer) SetContentRect(r geom.Rect) {
	t.content = r
	t.limit()
}

func (t *Transformer) ContentRect() geom.Rect {
	return t.content
}

// SetScaleMinimum sets the smallest zoom level on each axis. Values below 1
// are raised to 1 unless AllowZoomOutPastFit was enabled.
func (t *Transformer) SetScaleMinimum(x, y float64) {
	if !t.allowFitOverflow {
		x, y = max(x, 1), max(y, 1)
	}
	t.minScaleX = max(x, MinScale)
	t.minScaleY = max(y, MinScale)
	t.maxScaleX = max(t.maxScaleX, t.minScaleX)
	t.maxScaleY = max(t.maxScaleY, t.minScaleY)
	t.limit()
}

// SetScaleMaximum sets the largest zoom level on each axis.
func (t *Transformer) SetScaleMaximum(x, y float64) {
	t.maxScaleX = max(x, t.minScaleX)
	t.maxScaleY = max(y, t.minScaleY)
	t.limit()
}

// AllowZoomOutPastFit permits minimum scales below 1.
func (t *Transformer) AllowZoomOutPastFit(allow bool) {
	t.allowFitOverflow = allow
}

// SetDragOffset sets how far, in pixels, the data may be dragged past the
// content edges.
func (t *Transformer) SetDragOffset(x, y float64) {
	t.dragX, t.dragY = max(x, 0), max(y, 0)
	t.limit()
}

// ValueToPixel maps a value-space point to pixels.
func (t *Transformer) ValueToPixel(p geom.Point) geom.Point {
	return t.toPixel.Transform(p)
}

// PixelToValue maps a pixel to value space.
func (t *Transformer) PixelToValue(p geom.Point) geom.Point {
	return t.toValue.Transform(p)
}

// ValuesToPixels converts pts from value space to pixels in place.
func (t *Transformer) ValuesToPixels(pts []geom.Point) {
	for i := range pts {
		pts[i] = t.toPixel.Transform(pts[i])
	}
}

// PathValueToPixel converts every point of p to pixels in place.
func (t *Transformer) PathValueToPixel(p *geom.Path) {
	p.Transform(t.toPixel.Transform)
}

// TransformEntries appends the pixel positions of entries to dst, with Y
// values scaled by phaseY, and returns the extended slice.
func (t *Transformer) TransformEntries(dst []geom.Point, entries []data.Entry, phaseY float64) []geom.Point {
	for _, e := range entries {
		dst = append(dst, t.toPixel.Transform(geom.Point{X: e.X, Y: e.Y * phaseY}))
	}
	return dst
}

// PixelMatrix returns the complete value to pixel transform.
func (t *Transformer) PixelMatrix() Matrix {
	return t.toPixel
}

// Touch returns the current pan and zoom matrix in content-local pixels.
func (t *Transformer) Touch() Matrix {
	return t.touch
}

// SetTouch replaces the pan and zoom matrix, subject to the usual limits.
func (t *Transformer) SetTouch(m Matrix) {
	t.touch = m
	t.limit()
}

func (t *Transformer) ScaleX() float64 { return t.touch.A }
func (t *Transformer) ScaleY() float64 { return t.touch.E }

// PanBy shifts the view by (dx, dy) pixels.
func (t *Transformer) PanBy(dx, dy float64) {
	t.touch = t.touch.PostTranslate(dx, dy)
	t.limit()
}

// ZoomAt multiplies the zoom by (sx, sy), keeping the pixel anchor fixed.
// Factors that would cross the scale limits are reduced to reach them.
func (t *Transformer) ZoomAt(sx, sy float64, anchor geom.Point) {
	if sx <= 0 || sy <= 0 {
		return
	}
	targetX := clamp(t.touch.A*sx, t.minScaleX, t.maxScaleX)
	targetY := clamp(t.touch.E*sy, t.minScaleY, t.maxScaleY)
	sx = targetX / t.touch.A
	sy = targetY / t.touch.E
	ax := anchor.X - t.content.Min.X
	ay := anchor.Y - t.content.Min.Y
	t.touch = t.touch.
		PostTranslate(-ax, -ay).
		PostScale(sx, sy).
		PostTranslate(ax, ay)
	t.limit()
}

// ZoomIn zooms by ZoomInFactor about the content centre.
func (t *Transformer) ZoomIn() {
	t.ZoomAt(ZoomInFactor, ZoomInFactor, t.content.Center())
}

// ZoomOut zooms by ZoomOutFactor about the content centre.
func (t *Transformer) ZoomOut() {
	t.ZoomAt(ZoomOutFactor, ZoomOutFactor, t.content.Center())
}

// FitToScreen resets pan and zoom so that the whole value range is
// visible.
func (t *Transformer) FitToScreen() {
	t.touch = Identity()
	t.limit()
}

// CenterViewport pans so that the value-space point v sits in the middle
// of the content area.
func (t *Transformer) CenterViewport(v geom.Point) {
	p := t.ValueToPixel(v)
	c := t.content.Center()
	t.PanBy(c.X-p.X, c.Y-p.Y)
}

// IsFullyZoomedOutX reports whether no horizontal zoom is applied.
func (t *Transformer) IsFullyZoomedOutX() bool {
	return t.touch.A <= t.minScaleX && t.minScaleX <= 1
}

// IsFullyZoomedOutY reports whether no vertical zoom is applied.
func (t *Transformer) IsFullyZoomedOutY() bool {
	return t.touch.E <= t.minScaleY && t.minScaleY <= 1
}

func (t *Transformer) IsFullyZoomedOut() bool {
	return t.IsFullyZoomedOutX() && t.IsFullyZoomedOutY()
}

// VisibleRange returns the value-space rectangle currently shown in the
// content area.
func (t *Transformer) VisibleRange() geom.Rect {
	a := t.PixelToValue(t.content.Min)
	b := t.PixelToValue(t.content.Max)
	return geom.R(a.X, a.Y, b.X, b.Y)
}

// limit clamps the touch scale to its bounds and keeps the scaled content
// within the drag offset of the content edges, then rebuilds the cached
// matrices.
func (t *Transformer) limit() {
	sx := clamp(t.touch.A, t.minScaleX, t.maxScaleX)
	sy := clamp(t.touch.E, t.minScaleY, t.maxScaleY)
	w, h := t.content.Dx(), t.content.Dy()
	spanX := w * (1 - sx)
	spanY := h * (1 - sy)
	tx := clamp(t.touch.C, min(0, spanX)-t.dragX, max(0, spanX)+t.dragX)
	ty := clamp(t.touch.F, min(0, spanY)-t.dragY, max(0, spanY)+t.dragY)
	t.touch = Matrix{A: sx, C: tx, E: sy, F: ty}
	t.rebuild()
}

func (t *Transformer) rebuild() {
	w, h := t.content.Dx(), t.content.Dy()
	t.toPixel = Translate(t.content.Min.X, t.content.Min.Y).
		Mul(t.touch).
		Mul(Scale(w, h)).
		Mul(t.value)
	t.toValue = t.toPixel.Invert()
}
