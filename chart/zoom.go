package chart

import (
	"git.sr.ht/~whereswaldon/decart/geom"
)

// viewportChanged regenerates the ticks for the new visible range and
// notifies the host.
func (g *Graph) viewportChanged() {
	if !g.IsEmpty() {
		g.prepareLabels()
	}
	if g.onViewport != nil {
		g.onViewport(g.tr.ScaleX(), g.tr.ScaleY())
	}
	g.invalidateView()
}

// ZoomIn zooms in by 40% about the centre of the content area.
func (g *Graph) ZoomIn() {
	g.tr.ZoomIn()
	g.viewportChanged()
}

// ZoomOut zooms out by 30% about the centre of the content area.
func (g *Graph) ZoomOut() {
	g.tr.ZoomOut()
	g.viewportChanged()
}

// Zoom scales the viewport by sx and sy, keeping the pixel anchor fixed.
func (g *Graph) Zoom(sx, sy float64, anchor geom.Point) {
	g.tr.ZoomAt(sx, sy, anchor)
	g.viewportChanged()
}

// FitScreen resets all pan and zoom.
func (g *Graph) FitScreen() {
	g.tr.FitToScreen()
	g.viewportChanged()
}

// PanBy moves the viewport by the given pixel deltas.
func (g *Graph) PanBy(dx, dy float64) {
	g.tr.PanBy(dx, dy)
	g.viewportChanged()
}

// SetScaleMinima sets the minimum zoom on each axis.
func (g *Graph) SetScaleMinima(x, y float64) {
	g.tr.SetScaleMinimum(x, y)
	g.viewportChanged()
}

// CenterViewport pans so that the value (x, y) is in the middle of the
// content area.
func (g *Graph) CenterViewport(x, y float64) {
	g.tr.CenterViewport(geom.Pt(x, y))
	g.viewportChanged()
}

// PixelForValue maps a value to its pixel position.
func (g *Graph) PixelForValue(x, y float64) geom.Point {
	return g.tr.ValueToPixel(geom.Pt(x, y))
}

// ValueForPixel maps a pixel to its value.
func (g *Graph) ValueForPixel(x, y float64) geom.Point {
	return g.tr.PixelToValue(geom.Pt(x, y))
}
