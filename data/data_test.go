package data

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryEqual(t *testing.T) {
	payload := &struct{ name string }{name: "a"}
	other := &struct{ name string }{name: "a"}
	for _, tc := range []struct {
		name     string
		a, b     Entry
		expected bool
	}{
		{name: "identical", a: E(1, 2), b: E(1, 2), expected: true},
		{name: "within epsilon", a: E(1, 2), b: E(1+5e-6, 2-5e-6), expected: true},
		{name: "outside epsilon", a: E(1, 2), b: E(1+2e-5, 2), expected: false},
		{name: "same payload", a: Entry{X: 1, Data: payload}, b: Entry{X: 1, Data: payload}, expected: true},
		{name: "distinct payload", a: Entry{X: 1, Data: payload}, b: Entry{X: 1, Data: other}, expected: false},
		{name: "one payload", a: Entry{X: 1, Data: payload}, b: E(1, 0), expected: false},
		{name: "uncomparable payload", a: Entry{Data: []int{1}}, b: Entry{Data: []int{1}}, expected: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestDataSetColorCycles(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	d := NewDataSet("cycle", nil)
	d.Colors = []color.NRGBA{red, blue}
	for i, expected := range []color.NRGBA{red, blue, red, blue, red} {
		if got := d.Color(i); got != expected {
			t.Errorf("entry %d: expected %v, got %v", i, expected, got)
		}
	}
	d.Colors = nil
	if got := d.Color(3); got != DefaultColor {
		t.Errorf("expected fallback %v, got %v", DefaultColor, got)
	}
}

func TestDataSetMutations(t *testing.T) {
	d := NewDataSet("m", []Entry{E(0, -3), E(2, 5), E(-1, 1)})
	assert.Equal(t, -1.0, d.XMin())
	assert.Equal(t, 2.0, d.XMax())
	assert.Equal(t, -3.0, d.YMin())
	assert.Equal(t, 5.0, d.YMax())
	assert.Equal(t, 9.0, d.YValueSum())

	require.True(t, d.RemoveEntry(E(2, 5)))
	assert.Equal(t, 1.0, d.YMax())
	assert.Equal(t, 0.0, d.XMax())
	assert.False(t, d.RemoveEntry(E(2, 5)))
	assert.False(t, d.RemoveEntryAt(7))

	d.Clear()
	assert.Equal(t, 0, d.EntryCount())
	assert.Equal(t, 0.0, d.YValueSum())
}

func TestEntriesInRangeInclusive(t *testing.T) {
	d := NewDataSet("r", []Entry{E(0, 0), E(1, 1), E(1, 1.5), E(1.6, 1)})
	got := d.EntriesInRange(nil, 1, 1, 0.5)
	expected := []int{1, 2}
	assert.Equal(t, expected, got)
}

func TestChartDataAggregates(t *testing.T) {
	a := NewDataSet("a", []Entry{E(0, 1), E(4, -2)})
	b := NewDataSet("b", []Entry{E(-3, 7)})
	empty := NewDataSet("empty", nil)
	c := NewChartData(a, empty, b)
	assert.Equal(t, -3.0, c.XMin())
	assert.Equal(t, 4.0, c.XMax())
	assert.Equal(t, -2.0, c.YMin())
	assert.Equal(t, 7.0, c.YMax())
	assert.Equal(t, 10.0, c.YValueSum())
	assert.Equal(t, 3, c.EntryCount())

	// Aggregates are stale until notified.
	b.AddEntry(E(10, 0))
	assert.Equal(t, 4.0, c.XMax())
	c.NotifyChanged()
	assert.Equal(t, 10.0, c.XMax())

	assert.Nil(t, c.DataSet(3))
	assert.Nil(t, c.DataSet(-1))
	set, idx := c.DataSetByLabel("b")
	assert.Same(t, b, set)
	assert.Equal(t, 2, idx)
}

func TestAggregateInvariantsRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for seq := 0; seq < 150; seq++ {
		sets := []*DataSet{NewDataSet("a", nil), NewDataSet("b", nil), NewDataSet("c", nil)}
		c := NewChartData(sets...)
		for step := 0; step < 40; step++ {
			set := sets[rng.Intn(len(sets))]
			if set.EntryCount() > 0 && rng.Intn(3) == 0 {
				set.RemoveEntryAt(rng.Intn(set.EntryCount()))
			} else {
				set.AddEntry(E(rng.NormFloat64()*100, rng.NormFloat64()*100))
			}
		}
		c.NotifyChanged()

		var (
			count int
			sum   float64
		)
		// Bounds of the chart recomputed from the sets' own aggregates.
		want := [4]float64{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
		for _, set := range sets {
			var setSum float64
			bounds := [4]float64{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
			for _, e := range set.Entries() {
				bounds = [4]float64{min(bounds[0], e.X), max(bounds[1], e.X), min(bounds[2], e.Y), max(bounds[3], e.Y)}
				setSum += math.Abs(e.Y)
			}
			if math.Abs(setSum-set.YValueSum()) > 1e-9 {
				t.Fatalf("sequence %d: expected set sum %f, got %f", seq, setSum, set.YValueSum())
			}
			count += set.EntryCount()
			sum += setSum
			if set.EntryCount() == 0 {
				continue
			}
			got := [4]float64{set.XMin(), set.XMax(), set.YMin(), set.YMax()}
			if got != bounds {
				t.Fatalf("sequence %d: expected set bounds %v, got %v", seq, bounds, got)
			}
			if set.YMin() > set.YMax() {
				t.Fatalf("sequence %d: set yMin %f above yMax %f", seq, set.YMin(), set.YMax())
			}
			want = [4]float64{min(want[0], set.XMin()), max(want[1], set.XMax()), min(want[2], set.YMin()), max(want[3], set.YMax())}
		}
		if count == 0 {
			want = [4]float64{}
		}
		if got := [4]float64{c.XMin(), c.XMax(), c.YMin(), c.YMax()}; got != want {
			t.Fatalf("sequence %d: expected chart bounds %v, got %v", seq, want, got)
		}
		if count != c.EntryCount() {
			t.Fatalf("sequence %d: expected %d entries, got %d", seq, count, c.EntryCount())
		}
		if math.Abs(sum-c.YValueSum()) > 1e-9 {
			t.Fatalf("sequence %d: expected chart sum %f, got %f", seq, sum, c.YValueSum())
		}
	}
}

func TestShapeNames(t *testing.T) {
	for s := Shape(0); s < ShapeCount; s++ {
		parsed, err := ParseShape(s.String())
		if err != nil {
			t.Errorf("shape %d: unexpected error %v", s, err)
		} else if parsed != s {
			t.Errorf("expected %v, got %v", s, parsed)
		}
	}
	if _, err := ParseShape("hexagon"); err == nil {
		t.Errorf("expected error for unknown shape")
	}
}
