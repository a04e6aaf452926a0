package data

import (
	"image/color"
	"math"

	"git.sr.ht/~whereswaldon/decart/geom"
)

const DefaultShapeSize = 12

var (
	DefaultColor          = color.NRGBA{R: 140, G: 234, B: 255, A: 255}
	DefaultHighlightColor = color.NRGBA{R: 255, G: 187, B: 115, A: 255}
)

// DataSet is an ordered list of entries drawn with a common shape and
// colour sequence. Insertion order is both drawing order and the neighbour
// order used when smoothing lines.
type DataSet struct {
	label   string
	entries []Entry

	xMin, xMax float64
	yMin, yMax float64
	yValueSum  float64
	xValueSum  float64

	Shape Shape
	// ShapeSize is the marker size in pixels.
	ShapeSize float64
	// ShapeAlpha replaces the alpha channel of point markers.
	ShapeAlpha uint8
	// Colors is cycled through per entry; Color(i) never fails.
	Colors         []color.NRGBA
	HighlightColor color.NRGBA
	// CustomPath is the value-space outline used by the Custom shape. It is
	// translated to each entry before being mapped to pixels.
	CustomPath *geom.Path
	// DrawValues enables value labels next to each entry.
	DrawValues bool
	// ValueTextSize is the label text size in pixels.
	ValueTextSize float64
	// Visible hides the set from drawing and highlighting when false.
	Visible bool
	// LineWidth is the stroke width in pixels for line shapes.
	LineWidth float64
}

// NewDataSet returns a data set holding a copy of entries.
func NewDataSet(label string, entries []Entry) *DataSet {
	d := &DataSet{
		label:          label,
		entries:        append([]Entry(nil), entries...),
		Shape:          Circle,
		ShapeSize:      DefaultShapeSize,
		ShapeAlpha:     255,
		Colors:         []color.NRGBA{DefaultColor},
		HighlightColor: DefaultHighlightColor,
		DrawValues:     true,
		ValueTextSize:  17,
		Visible:        true,
		LineWidth:      2,
	}
	d.NotifyChanged()
	return d
}

func (d *DataSet) Label() string { return d.label }

func (d *DataSet) SetLabel(label string) { d.label = label }

// NotifyChanged rescans every entry to rebuild the cached bounds and sums.
func (d *DataSet) NotifyChanged() {
	d.yValueSum, d.xValueSum = 0, 0
	if len(d.entries) == 0 {
		d.xMin, d.xMax, d.yMin, d.yMax = 0, 0, 0, 0
		return
	}
	d.xMin, d.yMin = math.Inf(1), math.Inf(1)
	d.xMax, d.yMax = math.Inf(-1), math.Inf(-1)
	for _, e := range d.entries {
		d.xMin = min(d.xMin, e.X)
		d.xMax = max(d.xMax, e.X)
		d.yMin = min(d.yMin, e.Y)
		d.yMax = max(d.yMax, e.Y)
		d.yValueSum += math.Abs(e.Y)
		d.xValueSum += math.Abs(e.X)
	}
}

// AddEntry appends e and refreshes the cached bounds.
func (d *DataSet) AddEntry(e Entry) {
	d.entries = append(d.entries, e)
	d.NotifyChanged()
}

// RemoveEntry removes the first entry equal to e. It reports whether an
// entry was removed.
func (d *DataSet) RemoveEntry(e Entry) bool {
	i := d.IndexOf(e)
	if i < 0 {
		return false
	}
	return d.RemoveEntryAt(i)
}

// RemoveEntryAt removes the entry at index i, reporting false when i is out
// of range.
func (d *DataSet) RemoveEntryAt(i int) bool {
	if i < 0 || i >= len(d.entries) {
		return false
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	d.NotifyChanged()
	return true
}

// Clear removes every entry.
func (d *DataSet) Clear() {
	d.entries = d.entries[:0]
	d.NotifyChanged()
}

// Entries returns the backing slice. Callers must not modify it.
func (d *DataSet) Entries() []Entry { return d.entries }

func (d *DataSet) EntryCount() int { return len(d.entries) }

// Entry returns the entry at index i.
func (d *DataSet) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(d.entries) {
		return Entry{}, false
	}
	return d.entries[i], true
}

// IndexOf returns the index of the first entry equal to e, or -1.
func (d *DataSet) IndexOf(e Entry) int {
	for i, candidate := range d.entries {
		if candidate.Equal(e) {
			return i
		}
	}
	return -1
}

func (d *DataSet) Contains(e Entry) bool {
	return d.IndexOf(e) >= 0
}

// EntriesInRange appends to dst the indices of entries inside the inclusive
// box of half-size tol centered on (x, y), and returns the extended slice.
func (d *DataSet) EntriesInRange(dst []int, x, y, tol float64) []int {
	for i, e := range d.entries {
		if e.X >= x-tol && e.X <= x+tol && e.Y >= y-tol && e.Y <= y+tol {
			dst = append(dst, i)
		}
	}
	return dst
}

func (d *DataSet) XMin() float64 { return d.xMin }
func (d *DataSet) XMax() float64 { return d.xMax }
func (d *DataSet) YMin() float64 { return d.yMin }
func (d *DataSet) YMax() float64 { return d.yMax }

// YValueSum is the sum of the absolute Y values.
func (d *DataSet) YValueSum() float64 { return d.yValueSum }

// XValueSum is the sum of the absolute X values.
func (d *DataSet) XValueSum() float64 { return d.xValueSum }

// Color returns the colour for entry i, cycling through Colors.
func (d *DataSet) Color(i int) color.NRGBA {
	if len(d.Colors) == 0 {
		return DefaultColor
	}
	if i < 0 {
		i = -i
	}
	return d.Colors[i%len(d.Colors)]
}

// SetColor replaces the colour sequence with a single colour.
func (d *DataSet) SetColor(c color.NRGBA) {
	d.Colors = []color.NRGBA{c}
}

// Copy returns a data set with its own entry slice. Colours and the custom
// path are shared.
func (d *DataSet) Copy() *DataSet {
	out := *d
	out.entries = append([]Entry(nil), d.entries...)
	return &out
}
