package data

import (
	"image/color"
	"math"
)

// LabelPosition places a limit line's label relative to the line.
type LabelPosition uint8

const (
	LabelRight LabelPosition = iota
	LabelLeft
)

// LimitLine is a horizontal reference line drawn across the content area.
type LimitLine struct {
	Value    float64
	Label    string
	Position LabelPosition
	Color    color.NRGBA
	Width    float64
	// DashOn and DashOff describe an optional dash pattern in pixels.
	DashOn, DashOff float64
}

// ChartData is the ordered collection of data sets rendered by a chart.
// Collection order is z-order. Aggregates are only refreshed by
// NotifyChanged; mutating a DataSet does not update them.
type ChartData struct {
	sets       []*DataSet
	LimitLines []LimitLine

	xMin, xMax float64
	yMin, yMax float64
	yValueSum  float64
	entryCount int
}

// NewChartData collects sets and computes the initial aggregates.
func NewChartData(sets ...*DataSet) *ChartData {
	c := &ChartData{sets: sets}
	c.NotifyChanged()
	return c
}

// NotifyChanged recomputes the aggregates from the current data sets.
func (c *ChartData) NotifyChanged() {
	c.yValueSum, c.entryCount = 0, 0
	c.xMin, c.yMin = math.Inf(1), math.Inf(1)
	c.xMax, c.yMax = math.Inf(-1), math.Inf(-1)
	populated := false
	for _, set := range c.sets {
		c.yValueSum += set.YValueSum()
		c.entryCount += set.EntryCount()
		if set.EntryCount() == 0 {
			continue
		}
		populated = true
		c.xMin = min(c.xMin, set.XMin())
		c.xMax = max(c.xMax, set.XMax())
		c.yMin = min(c.yMin, set.YMin())
		c.yMax = max(c.yMax, set.YMax())
	}
	if !populated {
		c.xMin, c.xMax, c.yMin, c.yMax = 0, 0, 0, 0
	}
}

// AddDataSet appends set and refreshes the aggregates.
func (c *ChartData) AddDataSet(set *DataSet) {
	c.sets = append(c.sets, set)
	c.NotifyChanged()
}

// RemoveDataSet removes the set at index i, reporting false when i is out
// of range.
func (c *ChartData) RemoveDataSet(i int) bool {
	if i < 0 || i >= len(c.sets) {
		return false
	}
	c.sets = append(c.sets[:i], c.sets[i+1:]...)
	c.NotifyChanged()
	return true
}

// DataSets returns the backing slice. Callers must not modify it.
func (c *ChartData) DataSets() []*DataSet { return c.sets }

func (c *ChartData) DataSetCount() int { return len(c.sets) }

// DataSet returns the set at index i, or nil when i is out of range.
func (c *ChartData) DataSet(i int) *DataSet {
	if i < 0 || i >= len(c.sets) {
		return nil
	}
	return c.sets[i]
}

// DataSetByLabel returns the first set with the given label and its index.
func (c *ChartData) DataSetByLabel(label string) (*DataSet, int) {
	for i, set := range c.sets {
		if set.Label() == label {
			return set, i
		}
	}
	return nil, -1
}

func (c *ChartData) XMin() float64 { return c.xMin }
func (c *ChartData) XMax() float64 { return c.xMax }
func (c *ChartData) YMin() float64 { return c.yMin }
func (c *ChartData) YMax() float64 { return c.yMax }
func (c *ChartData) YValueSum() float64 { return c.yValueSum }
func (c *ChartData) EntryCount() int { return c.entryCount }

// GreatestShapeSize returns the largest marker size across visible sets.
func (c *ChartData) GreatestShapeSize() float64 {
	var size float64
	for _, set := range c.sets {
		if set.Visible {
			size = max(size, set.ShapeSize)
		}
	}
	return size
}

// Copy returns a deep copy of the collection.
func (c *ChartData) Copy() *ChartData {
	sets := make([]*DataSet, len(c.sets))
	for i, set := range c.sets {
		sets[i] = set.Copy()
	}
	out := NewChartData(sets...)
	out.LimitLines = append([]LimitLine(nil), c.LimitLines...)
	return out
}
