package backend

import (
	"sort"

	"git.sr.ht/~whereswaldon/decart/data"
)

// Stats summarizes the y values of a data set over an x interval.
type Stats struct {
	Label               string
	Count               int
	Max, Mean, Min, Sum float64
}

// StatsBetween returns statistics about the entries of set in the closed
// interval [xA,xB]. The entries must be sorted by x. If xB is less than xA
// the bounds are swapped. If no entry falls inside the interval all values
// are zero and ok is false.
func StatsBetween(set *data.DataSet, xA, xB float64) (st Stats, ok bool) {
	st.Label = set.Label()
	entries := set.Entries()
	if len(entries) < 1 {
		return st, false
	}
	if xB < xA {
		xA, xB = xB, xA
	}
	indexA := sort.Search(len(entries), func(i int) bool {
		return entries[i].X >= xA
	})
	indexB := sort.Search(len(entries), func(i int) bool {
		return entries[i].X > xB
	})
	if indexA >= indexB {
		return st, false
	}
	for i, e := range entries[indexA:indexB] {
		if i == 0 {
			st.Max, st.Min = e.Y, e.Y
		} else {
			st.Max = max(st.Max, e.Y)
			st.Min = min(st.Min, e.Y)
		}
		st.Sum += e.Y
	}
	st.Count = indexB - indexA
	st.Mean = st.Sum / float64(st.Count)
	return st, true
}

// VisibleStats returns the statistics of every visible data set in cd
// over [xA,xB]. Sets with no entries in the interval report a zero count.
func VisibleStats(cd *data.ChartData, xA, xB float64) []Stats {
	if cd == nil {
		return nil
	}
	out := make([]Stats, 0, cd.DataSetCount())
	for _, set := range cd.DataSets() {
		if !set.Visible {
			continue
		}
		st, _ := StatsBetween(set, xA, xB)
		out = append(out, st)
	}
	return out
}
