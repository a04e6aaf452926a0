package render

import (
	"math"

	"git.sr.ht/~whereswaldon/decart/geom"
)

// SmoothIntensity scales the finite difference tangents of smoothed lines.
const SmoothIntensity = 0.1

// Revealed returns how many of n points are drawn at horizontal phase
// phaseX.
func Revealed(n int, phaseX float64) int {
	if n <= 0 {
		return 0
	}
	phaseX = max(0, min(phaseX, 1))
	return min(n, int(math.Floor(float64(n)*phaseX)))
}

// scaleY moves y toward baseline so that phaseY == 0 collapses every point
// onto it.
func scaleY(y, baseline, phaseY float64) float64 {
	return baseline + (y-baseline)*phaseY
}

// LinePath builds a polyline through the first Revealed(len(pts), phaseX)
// points, with Y scaled toward baseline by phaseY. It returns nil when
// fewer than two points are revealed.
func LinePath(pts []geom.Point, phaseX, phaseY, baseline float64) *geom.Path {
	count := Revealed(len(pts), phaseX)
	if count < 2 {
		return nil
	}
	p := &geom.Path{}
	for i := 0; i < count; i++ {
		pt := geom.Pt(pts[i].X, scaleY(pts[i].Y, baseline, phaseY))
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	return p
}

// SmoothPath builds a cubic cardinal spline through the first
// Revealed(len(pts), phaseX) points. Every point's Y is scaled toward
// baseline by phaseY before the tangents are computed. Tangents use the
// full neighbour set, so the last revealed point keeps the slope it will
// have once the whole line is shown. It returns nil when fewer than two
// points are revealed.
func SmoothPath(pts []geom.Point, phaseX, phaseY, baseline float64) *geom.Path {
	count := Revealed(len(pts), phaseX)
	if count < 2 {
		return nil
	}
	scaled := make([]geom.Point, len(pts))
	for i, pt := range pts {
		scaled[i] = geom.Pt(pt.X, scaleY(pt.Y, baseline, phaseY))
	}
	p := &geom.Path{}
	p.MoveTo(scaled[0])
	prevTangent := tangent(scaled, 0)
	for i := 1; i < count; i++ {
		d := tangent(scaled, i)
		p.CubeTo(scaled[i-1].Add(prevTangent), scaled[i].Sub(d), scaled[i])
		prevTangent = d
	}
	return p
}

// tangent returns the intensity-scaled finite difference at index i.
func tangent(pts []geom.Point, i int) geom.Point {
	switch {
	case len(pts) < 2:
		return geom.Point{}
	case i == 0:
		return pts[1].Sub(pts[0]).Mul(SmoothIntensity)
	case i == len(pts)-1:
		return pts[i].Sub(pts[i-1]).Mul(SmoothIntensity)
	default:
		return pts[i+1].Sub(pts[i-1]).Mul(SmoothIntensity)
	}
}
