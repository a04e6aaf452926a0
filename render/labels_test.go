package render

import (
	"testing"

	"git.sr.ht/~whereswaldon/decart/geom"
	"github.com/stretchr/testify/assert"
)

var labelContent = geom.R(0, 0, 400, 300)

func TestLabelPlacerPrefersRight(t *testing.T) {
	var l LabelPlacer
	rect, ok := l.Place(geom.Pt(100, 100), 40, 10, 10, labelContent)
	assert.True(t, ok)
	assert.Equal(t, geom.R(109, 95, 149, 105), rect)
	assert.Equal(t, 1, l.Len())
}

func TestLabelPlacerMirrorsOnCollision(t *testing.T) {
	var l LabelPlacer
	first, ok := l.Place(geom.Pt(100, 100), 40, 10, 10, labelContent)
	assert.True(t, ok)
	second, ok := l.Place(geom.Pt(110, 100), 40, 10, 10, labelContent)
	assert.True(t, ok, "second label should move to the left")
	assert.Equal(t, geom.R(61, 95, 101, 105), second)
	assert.False(t, second.Intersects(first))
	assert.Equal(t, 2, l.Len())
}

func TestLabelPlacerSuppresses(t *testing.T) {
	for _, tc := range []struct {
		name   string
		seeds  []geom.Rect
		anchor geom.Point
	}{
		{
			name:   "both sides blocked",
			seeds:  []geom.Rect{geom.R(105, 90, 200, 110), geom.R(0, 90, 95, 110)},
			anchor: geom.Pt(100, 100),
		},
		{
			name:   "outside content",
			anchor: geom.Pt(380, 100),
		},
		{
			name:   "left side outside content",
			seeds:  []geom.Rect{geom.R(10, 0, 100, 300)},
			anchor: geom.Pt(20, 100),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var l LabelPlacer
			for _, s := range tc.seeds {
				l.Seed(s)
			}
			if _, ok := l.Place(tc.anchor, 40, 10, 10, labelContent); ok {
				t.Errorf("expected label to be suppressed")
			}
			if l.Len() != len(tc.seeds) {
				t.Errorf("expected %d occupied rects, got %d", len(tc.seeds), l.Len())
			}
		})
	}
}

func TestLabelPlacerCountsSeedsAndLabels(t *testing.T) {
	var l LabelPlacer
	anchors := []geom.Point{geom.Pt(50, 50), geom.Pt(60, 52), geom.Pt(200, 200), geom.Pt(205, 200)}
	for _, a := range anchors {
		l.Seed(geom.RectAround(a, 10))
	}
	placed := 0
	for _, a := range anchors {
		if _, ok := l.Place(a, 30, 10, 10, labelContent); ok {
			placed++
		}
	}
	assert.Equal(t, len(anchors)+placed, l.Len())
	occupied := l.Occupied()
	for i := len(anchors); i < len(occupied); i++ {
		for j := 0; j < i; j++ {
			assert.False(t, occupied[i].Intersects(occupied[j]), "label %d overlaps rect %d", i, j)
		}
	}

	l.Reset()
	assert.Equal(t, 0, l.Len())
}
