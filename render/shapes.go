package render

import (
	"image"
	"image/color"

	"git.sr.ht/~whereswaldon/decart/data"
	"git.sr.ht/~whereswaldon/decart/geom"
	"git.sr.ht/~whereswaldon/decart/viewport"
)

const (
	// InkScale enlarges the halo drawn beneath inked shapes.
	InkScale = 1.2
	// HaloScale enlarges the outline drawn around highlight shapes.
	HaloScale = 2
	// HaloAlpha is the opacity of highlight halos.
	HaloAlpha = 60
	// StrokeCircleWidth is the ring width of the StrokeCircle shape.
	StrokeCircleWidth = 3
	// triangle vertex offsets for a unit circumradius.
	sin60 = 0.866
	cos60 = 0.5
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// BitmapFunc supplies the image drawn for an entry of a Custom data set.
// Returning nil falls back to the data set's custom path.
type BitmapFunc func(set *data.DataSet, index int, e data.Entry) image.Image

// marker carries everything a shape function needs to draw one entry.
type marker struct {
	center geom.Point
	size   float64
	color  color.NRGBA
	set    *data.DataSet
	index  int
	entry  data.Entry
	phaseY float64
	tr     *viewport.Transformer
	bitmap BitmapFunc
}

type shapeFunc func(s Surface, m marker)

// shapeTable maps each point shape to its geometry. Line shapes have no
// entry; they are drawn as paths.
var shapeTable = [data.ShapeCount]shapeFunc{
	data.Cross:             drawCross,
	data.Triangle:          drawTriangle,
	data.Circle:            drawCircle,
	data.StrokeCircle:      drawStrokeCircle,
	data.Square:            drawSquare,
	data.Custom:            drawCustom,
	data.CircleHighlight:   drawCircleHighlight,
	data.TriangleHighlight: drawTriangleHighlight,
}

// shapeFor returns the geometry function for a point shape, or nil for
// line shapes and unknown values.
func shapeFor(s data.Shape) shapeFunc {
	if s >= data.ShapeCount {
		return nil
	}
	return shapeTable[s]
}

func drawCross(s Surface, m marker) {
	r := m.size / 2
	style := Stroked(m.color, max(1, m.size/6))
	s.DrawLine(geom.Pt(m.center.X-r, m.center.Y), geom.Pt(m.center.X+r, m.center.Y), style)
	s.DrawLine(geom.Pt(m.center.X, m.center.Y-r), geom.Pt(m.center.X, m.center.Y+r), style)
}

func trianglePath(c geom.Point, r float64) *geom.Path {
	p := &geom.Path{}
	p.MoveTo(geom.Pt(c.X-sin60*r, c.Y+cos60*r))
	p.LineTo(geom.Pt(c.X, c.Y-r))
	p.LineTo(geom.Pt(c.X+sin60*r, c.Y+cos60*r))
	p.Close()
	return p
}

func drawTriangle(s Surface, m marker) {
	s.DrawPath(trianglePath(m.center, m.size/2), Filled(m.color))
}

func drawCircle(s Surface, m marker) {
	s.DrawCircle(m.center, m.size/2, Filled(m.color))
}

func drawStrokeCircle(s Surface, m marker) {
	r := m.size / 2
	s.DrawCircle(m.center, r, Filled(white))
	s.DrawCircle(m.center, max(r-StrokeCircleWidth/2.0, 0), Stroked(m.color, StrokeCircleWidth))
}

func drawSquare(s Surface, m marker) {
	s.DrawRect(geom.RectAround(m.center, m.size), Filled(m.color))
}

// drawCustom blits the entry's bitmap when one is supplied, otherwise it
// fills the data set's value-space path anchored at the entry. Sets with
// neither fall back to a circle.
func drawCustom(s Surface, m marker) {
	if m.bitmap != nil {
		if img := m.bitmap(m.set, m.index, m.entry); img != nil {
			s.DrawImage(img, geom.RectAround(m.center, m.size))
			return
		}
	}
	if m.set == nil || m.set.CustomPath == nil || m.tr == nil {
		drawCircle(s, m)
		return
	}
	p := m.set.CustomPath.Clone()
	origin := geom.Pt(m.entry.X, m.entry.Y*m.phaseY)
	p.Transform(func(pt geom.Point) geom.Point { return pt.Add(origin) })
	m.tr.PathValueToPixel(p)
	if m.set.ShapeSize > 0 && m.size != m.set.ShapeSize {
		scale := m.size / m.set.ShapeSize
		p.Transform(func(pt geom.Point) geom.Point {
			return m.center.Add(pt.Sub(m.center).Mul(scale))
		})
	}
	s.DrawPath(p, Filled(m.color))
}

func haloColor(c color.NRGBA) color.NRGBA {
	c.A = HaloAlpha
	return c
}

func drawCircleHighlight(s Surface, m marker) {
	r := m.size / 2 * HaloScale
	s.DrawCircle(m.center, r, Filled(haloColor(white)))
	s.DrawCircle(m.center, r, Stroked(haloColor(m.color), 1))
	drawCircle(s, m)
}

func drawTriangleHighlight(s Surface, m marker) {
	halo := trianglePath(m.center, m.size/2*HaloScale)
	s.DrawPath(halo, Filled(haloColor(white)))
	s.DrawPath(halo, Stroked(haloColor(m.color), 1))
	drawTriangle(s, m)
}
