package chart

import (
	"fmt"

	"git.sr.ht/~whereswaldon/decart/data"
	"git.sr.ht/~whereswaldon/decart/geom"
)

// Highlight selects one entry of the chart.
type Highlight struct {
	Entry        data.Entry
	DataSetIndex int
	EntryIndex   int
}

// Equal reports whether h and o select the same entry.
func (h Highlight) Equal(o Highlight) bool {
	return h.DataSetIndex == o.DataSetIndex && h.EntryIndex == o.EntryIndex && h.Entry.Equal(o.Entry)
}

func (h Highlight) String() string {
	return fmt.Sprintf("Highlight{set: %d, index: %d, %v}", h.DataSetIndex, h.EntryIndex, h.Entry)
}

// SelectionListener is notified when a touch changes the selection.
type SelectionListener interface {
	ValueSelected(e data.Entry, h Highlight)
	NothingSelected()
	ValueLongPressed(e data.Entry, h Highlight)
}

// SelectionFuncs adapts functions to SelectionListener. Nil fields are
// skipped.
type SelectionFuncs struct {
	Selected    func(data.Entry, Highlight)
	Nothing     func()
	LongPressed func(data.Entry, Highlight)
}

func (s SelectionFuncs) ValueSelected(e data.Entry, h Highlight) {
	if s.Selected != nil {
		s.Selected(e, h)
	}
}

func (s SelectionFuncs) NothingSelected() {
	if s.Nothing != nil {
		s.Nothing()
	}
}

func (s SelectionFuncs) ValueLongPressed(e data.Entry, h Highlight) {
	if s.LongPressed != nil {
		s.LongPressed(e, h)
	}
}

// SetListener sets the selection listener. Nil disables notifications.
func (g *Graph) SetListener(l SelectionListener) {
	g.listener = l
}

// ValuesAtTouchPoint returns the entry nearest to the pixel px within the
// touch tolerance. Candidates are gathered with an inclusive box around the
// touch value; the nearest by squared distance wins and ties go to the
// first data set, then the first entry.
func (g *Graph) ValuesAtTouchPoint(px geom.Point) (Highlight, bool) {
	if g.IsEmpty() {
		g.log.V(1).Info("can't select by touch, no data set")
		return Highlight{}, false
	}
	v := g.tr.PixelToValue(px)
	tol := g.touchOffset
	if v.X < -tol || v.X > g.xChartMax {
		return Highlight{}, false
	}
	var (
		best      Highlight
		bestDist  float64
		found     bool
		candidate []int
	)
	for si, set := range g.data.DataSets() {
		if !set.Visible {
			continue
		}
		candidate = set.EntriesInRange(candidate[:0], v.X, v.Y, tol)
		for _, ei := range candidate {
			e := set.Entries()[ei]
			d := e.DistanceSq(v.X, v.Y)
			if !found || d < bestDist {
				best = Highlight{Entry: e, DataSetIndex: si, EntryIndex: ei}
				bestDist = d
				found = true
			}
		}
	}
	return best, found
}

// EntryAtTouchPoint returns the entry nearest to px, if any.
func (g *Graph) EntryAtTouchPoint(px geom.Point) (data.Entry, bool) {
	h, ok := g.ValuesAtTouchPoint(px)
	return h.Entry, ok
}

// Highlights returns the current selection.
func (g *Graph) Highlights() []Highlight {
	return g.highlights
}

// HasHighlight reports whether any entry is selected.
func (g *Graph) HasHighlight() bool {
	return len(g.highlights) > 0
}

// HighlightValues replaces the selection without notifying the listener.
func (g *Graph) HighlightValues(hs []Highlight) {
	g.highlights = append(g.highlights[:0], hs...)
	g.invalidateView()
}

// HighlightValue selects the entry at entryIndex in the data set at
// dataSetIndex. Out of range indices clear the selection.
func (g *Graph) HighlightValue(entryIndex, dataSetIndex int) {
	if g.data == nil {
		g.HighlightValues(nil)
		return
	}
	set := g.data.DataSet(dataSetIndex)
	if set == nil {
		g.HighlightValues(nil)
		return
	}
	e, ok := set.Entry(entryIndex)
	if !ok {
		g.HighlightValues(nil)
		return
	}
	g.HighlightValues([]Highlight{{Entry: e, DataSetIndex: dataSetIndex, EntryIndex: entryIndex}})
}

// HighlightTouch selects the entry nearest to px and notifies the
// listener. A touch that hits nothing clears the selection.
func (g *Graph) HighlightTouch(px geom.Point) {
	h, ok := g.ValuesAtTouchPoint(px)
	g.setSelection(h, ok, false)
}

// HighlightLongTap is HighlightTouch for long presses.
func (g *Graph) HighlightLongTap(px geom.Point) {
	h, ok := g.ValuesAtTouchPoint(px)
	g.setSelection(h, ok, true)
}

// ClearHighlight drops the selection and notifies the listener.
func (g *Graph) ClearHighlight() {
	g.setSelection(Highlight{}, false, false)
}

func (g *Graph) setSelection(h Highlight, ok, long bool) {
	g.highlights = g.highlights[:0]
	if ok {
		g.highlights = append(g.highlights, h)
	}
	g.invalidateView()
	if g.listener == nil {
		return
	}
	switch {
	case !ok:
		g.listener.NothingSelected()
	case long:
		g.listener.ValueLongPressed(h.Entry, h)
	default:
		g.listener.ValueSelected(h.Entry, h)
	}
}
