// Package viewport maps between chart values and screen pixels, and holds
// the pan and zoom state applied on top of that mapping.
package viewport

import (
	"git.sr.ht/~whereswaldon/decart/geom"
)

// MinScale replaces a zero scale factor when a singular matrix is
// inverted.
const MinScale = 1e-6

// Matrix is a 2D affine transform in float64:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// The zero value is not the identity; use Identity.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, E: sy}
}

func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, C: tx, E: 1, F: ty}
}

// Mul returns the transform that applies n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// PostScale applies a scale about the origin after m.
func (m Matrix) PostScale(sx, sy float64) Matrix {
	return Scale(sx, sy).Mul(m)
}

// PostTranslate applies a translation after m.
func (m Matrix) PostTranslate(tx, ty float64) Matrix {
	return Translate(tx, ty).Mul(m)
}

// Transform maps p through m.
func (m Matrix) Transform(p geom.Point) geom.Point {
	return geom.Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Invert returns the inverse of m. A singular matrix has its zero scale
// factors replaced by MinScale first, so the result is always usable.
// Small but nonzero scales are inverted exactly.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if det == 0 {
		if m.A == 0 {
			m.A = MinScale
		}
		if m.E == 0 {
			m.E = MinScale
		}
		det = m.A*m.E - m.B*m.D
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}
}

// ScaleX returns the horizontal scale of a matrix without skew.
func (m Matrix) ScaleX() float64 { return m.A }

// ScaleY returns the vertical scale of a matrix without skew.
func (m Matrix) ScaleY() float64 { return m.E }

func (m Matrix) TranslateX() float64 { return m.C }
func (m Matrix) TranslateY() float64 { return m.F }
