package backend

import (
	"cmp"
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/decart/data"
)

// TraceHeader is the header row of a trace file.
var TraceHeader = []string{"dataset", "x", "y"}

var errNotHeader = errors.New("not a trace header")

// Trace is a snapshot of the entries read from a trace so far. Snapshots
// are never modified after they are published.
type Trace struct {
	Name    string
	Labels  []string
	Entries [][]data.Entry
	// Skipped counts malformed rows.
	Skipped int
	// Version increases with every published snapshot of a source.
	Version int
}

// Loaded reports whether any data set was read.
func (t Trace) Loaded() bool {
	return len(t.Labels) > 0
}

func (t Trace) EntryCount() int {
	n := 0
	for _, e := range t.Entries {
		n += len(e)
	}
	return n
}

// ChartData builds chart data from the snapshot, styled by cfg. palette
// supplies the colour of data sets without a configured one.
func (t Trace) ChartData(cfg Config, palette func(i int) color.NRGBA) *data.ChartData {
	cd := data.NewChartData()
	for i, label := range t.Labels {
		entries := t.Entries[i]
		if cfg.SortEntries && !slices.IsSortedFunc(entries, compareX) {
			entries = slices.Clone(entries)
			slices.SortStableFunc(entries, compareX)
		}
		set := data.NewDataSet(label, entries)
		fallback := data.DefaultColor
		if palette != nil {
			fallback = palette(i)
		}
		cfg.Style(set, fallback)
		cd.AddDataSet(set)
	}
	cd.LimitLines = cfg.Limits()
	cd.NotifyChanged()
	return cd
}

func compareX(a, b data.Entry) int {
	return cmp.Compare(a.X, b.X)
}

func checkHeader(rec []string) error {
	if len(rec) != len(TraceHeader) {
		return errNotHeader
	}
	for i, h := range TraceHeader {
		if !strings.EqualFold(strings.TrimSpace(rec[i]), h) {
			return errNotHeader
		}
	}
	return nil
}

// traceBuilder accumulates rows into per data set entry lists.
type traceBuilder struct {
	name    string
	index   map[string]int
	labels  []string
	entries [][]data.Entry
	skipped int
	version int
}

func newTraceBuilder(name string) *traceBuilder {
	return &traceBuilder{
		name:  name,
		index: make(map[string]int),
	}
}

// add parses one "dataset, x, y" row.
func (b *traceBuilder) add(rec []string) error {
	if len(rec) != len(TraceHeader) {
		b.skipped++
		return fmt.Errorf("expected %d fields, got %d", len(TraceHeader), len(rec))
	}
	label := strings.TrimSpace(rec[0])
	x, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		b.skipped++
		return fmt.Errorf("failed parsing x=%q: %w", rec[1], err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
	if err != nil {
		b.skipped++
		return fmt.Errorf("failed parsing y=%q: %w", rec[2], err)
	}
	i, ok := b.index[label]
	if !ok {
		i = len(b.labels)
		b.index[label] = i
		b.labels = append(b.labels, label)
		b.entries = append(b.entries, nil)
	}
	b.entries[i] = append(b.entries[i], data.E(x, y))
	return nil
}

// snapshot returns the current state. Entry slices are capped so that
// later appends never write into memory a snapshot can see.
func (b *traceBuilder) snapshot() Trace {
	b.version++
	t := Trace{
		Name:    b.name,
		Labels:  slices.Clip(slices.Clone(b.labels)),
		Entries: make([][]data.Entry, len(b.entries)),
		Skipped: b.skipped,
		Version: b.version,
	}
	for i, e := range b.entries {
		t.Entries[i] = slices.Clip(e)
	}
	return t
}
