package giosurface

import (
	"math"

	"git.sr.ht/~whereswaldon/decart/geom"
)

// curveSteps is the number of line segments a cubic is flattened into.
const curveSteps = 16

// flatten converts p into polylines, one per subpath. Closed subpaths end
// at their starting point.
func flatten(p *geom.Path) [][]geom.Point {
	var (
		out   [][]geom.Point
		cur   []geom.Point
		start geom.Point
	)
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, seg := range p.Segments {
		switch seg.Verb {
		case geom.MoveTo:
			flush()
			start = seg.Pts[0]
			cur = append(cur, start)
		case geom.LineTo:
			cur = append(cur, seg.Pts[0])
		case geom.CubeTo:
			if len(cur) == 0 {
				cur = append(cur, start)
			}
			from := cur[len(cur)-1]
			for i := 1; i <= curveSteps; i++ {
				cur = append(cur, cubicAt(from, seg.Pts[0], seg.Pts[1], seg.Pts[2], float64(i)/curveSteps))
			}
		case geom.Close:
			if len(cur) > 0 {
				cur = append(cur, start)
			}
			flush()
		}
	}
	flush()
	return out
}

func cubicAt(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return geom.Pt(
		a*p0.X+b*p1.X+c*p2.X+d*p3.X,
		a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
	)
}

// dash splits a polyline into its "on" runs. The pattern starts phase
// pixels in.
func dash(line []geom.Point, on, off, phase float64) [][]geom.Point {
	if on <= 0 || off <= 0 || len(line) < 2 {
		return [][]geom.Point{line}
	}
	period := on + off
	pos := math.Mod(phase, period)
	if pos < 0 {
		pos += period
	}
	var (
		out [][]geom.Point
		run []geom.Point
	)
	drawing := pos < on
	if drawing {
		run = append(run, line[0])
	}
	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		segLen := math.Sqrt(a.DistanceSq(b))
		traveled := 0.0
		for segLen-traveled > 0 {
			var boundary float64
			if drawing {
				boundary = on - pos
			} else {
				boundary = period - pos
			}
			step := min(boundary, segLen-traveled)
			traveled += step
			pos += step
			pt := a.Add(b.Sub(a).Mul(traveled / segLen))
			if step < boundary {
				if drawing {
					run = append(run, pt)
				}
				break
			}
			// Crossed a pattern boundary.
			if drawing {
				run = append(run, pt)
				out = append(out, run)
				run = nil
				drawing = false
			} else {
				run = []geom.Point{pt}
				drawing = true
				pos = 0
			}
		}
	}
	if drawing && len(run) > 1 {
		out = append(out, run)
	}
	return out
}
