package render

import "git.sr.ht/~whereswaldon/decart/geom"

// LabelMargin is the gap in pixels between a shape's edge and its label.
const LabelMargin = 4

// LabelPlacer places value labels so that they overlap neither each other
// nor the shapes they describe. It must be reset once per frame and seeded
// with every drawn shape's bounds before the first label is placed.
type LabelPlacer struct {
	occupied []geom.Rect
}

// Reset forgets every occupied rectangle.
func (l *LabelPlacer) Reset() {
	l.occupied = l.occupied[:0]
}

// Seed marks r as occupied.
func (l *LabelPlacer) Seed(r geom.Rect) {
	l.occupied = append(l.occupied, r)
}

// Len returns the number of occupied rectangles.
func (l *LabelPlacer) Len() int {
	return len(l.occupied)
}

// Occupied returns the occupied rectangles. Callers must not modify them.
func (l *LabelPlacer) Occupied() []geom.Rect {
	return l.occupied
}

func (l *LabelPlacer) collides(r geom.Rect) bool {
	for _, o := range l.occupied {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}

// Place finds room for a w by h label next to a shape of the given size
// centered on anchor. The right side is tried first, then the mirrored
// left side. A label that fits neither side, or whose rectangle leaves
// content, is suppressed and ok is false. A placed rectangle becomes
// occupied.
func (l *LabelPlacer) Place(anchor geom.Point, w, h, shapeSize float64, content geom.Rect) (placed geom.Rect, ok bool) {
	gap := shapeSize/2 + LabelMargin
	top, bottom := anchor.Y-h/2, anchor.Y+h/2
	right := geom.R(anchor.X+gap, top, anchor.X+gap+w, bottom)
	placed = right
	if l.collides(right) {
		left := geom.R(anchor.X-gap-w, top, anchor.X-gap, bottom)
		if l.collides(left) {
			return geom.Rect{}, false
		}
		placed = left
	}
	if !content.ContainsRect(placed) {
		return geom.Rect{}, false
	}
	l.occupied = append(l.occupied, placed)
	return placed, true
}
