// Package chart implements the Cartesian graph engine. A Graph owns the
// chart data, derives the plotted bounds, ticks and content area from it,
// resolves touches to entries and draws frames onto a render.Surface.
//
// A Graph is not safe for concurrent use. Hosts mutate data and draw from
// a single goroutine.
package chart

import (
	"math"
	"unicode/utf8"

	"git.sr.ht/~whereswaldon/decart/axis"
	"git.sr.ht/~whereswaldon/decart/data"
	"git.sr.ht/~whereswaldon/decart/geom"
	"git.sr.ht/~whereswaldon/decart/render"
	"git.sr.ht/~whereswaldon/decart/viewport"
	"github.com/go-logr/logr"
)

const (
	// DefaultTouchRadius is the on-screen hit radius, in pixels, used to
	// derive the value-space touch tolerance.
	DefaultTouchRadius = 75
	// MinOffset is the smallest margin around the content area.
	MinOffset = 11
	// DegenerateTouchOffset is the touch tolerance used when every entry
	// shares one x value.
	DegenerateTouchOffset = 0.025
	// YPadding and XPadding are the fractions of the largest magnitude on
	// each axis added as space around the data.
	YPadding = 0.2
	XPadding = 0.5
)

// Measurer reports the size of rendered text.
type Measurer interface {
	MeasureText(text string, size float64) (w, h float64)
}

// approxMeasurer estimates text size when no real measurer is available.
type approxMeasurer struct{}

func (approxMeasurer) MeasureText(text string, size float64) (float64, float64) {
	return float64(utf8.RuneCountInString(text)) * size * 0.55, size
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger routes engine diagnostics to l.
func WithLogger(l logr.Logger) Option {
	return func(g *Graph) {
		g.log = l
	}
}

// WithMeasurer sets the text measurer used to size the label margins.
func WithMeasurer(m Measurer) Option {
	return func(g *Graph) {
		if m != nil {
			g.measurer = m
		}
	}
}

// WithRenderConfig replaces the default drawing options.
func WithRenderConfig(cfg render.Config) Option {
	return func(g *Graph) {
		g.renderer = render.NewRenderer(cfg)
	}
}

// WithTouchRadius sets the on-screen hit radius in pixels.
func WithTouchRadius(px float64) Option {
	return func(g *Graph) {
		if px > 0 {
			g.touchRadius = px
		}
	}
}

// WithStartAtZero makes the value axes include zero.
func WithStartAtZero(x, y bool) Option {
	return func(g *Graph) {
		g.StartAtZeroX, g.StartAtZeroY = x, y
	}
}

// Graph is a scatter and line chart over a pannable, zoomable viewport.
type Graph struct {
	// StartAtZeroX and StartAtZeroY extend the plotted range to include
	// zero and put all of the padding on the far side.
	StartAtZeroX, StartAtZeroY bool

	log         logr.Logger
	data        *data.ChartData
	tr          *viewport.Transformer
	renderer    *render.Renderer
	measurer    Measurer
	touchRadius float64

	width, height float64

	xLabels, yLabels axis.Labels
	xTicks, yTicks   axis.Ticks

	fixedY               bool
	fixedYMin, fixedYMax float64

	xChartMin, xChartMax float64
	yChartMin, yChartMax float64
	deltaX, deltaY       float64
	degenerateX          bool
	touchOffset          float64
	valueDecimals        int

	phases     Phases
	highlights []Highlight

	listener   SelectionListener
	invalidate func()
	onViewport func(scaleX, scaleY float64)
}

// New returns an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		log:         logr.Discard(),
		tr:          viewport.NewTransformer(),
		renderer:    render.NewRenderer(render.DefaultConfig()),
		measurer:    approxMeasurer{},
		touchRadius: DefaultTouchRadius,
		xLabels:     axis.DefaultLabels(),
		yLabels:     axis.DefaultLabels(),
		phases:      Phases{X: 1, Y: 1},
	}
	g.xLabels.IntegerAlign = true
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetData replaces the chart data and refreshes the graph. Nil data is
// ignored.
func (g *Graph) SetData(d *data.ChartData) {
	if d == nil {
		g.log.Info("ignoring nil chart data")
		return
	}
	g.data = d
	g.highlights = g.highlights[:0]
	g.data.NotifyChanged()
	g.Refresh()
	g.invalidateView()
}

// Data returns the chart data, or nil if none was set.
func (g *Graph) Data() *data.ChartData {
	return g.data
}

// Clear drops the data and any highlight.
func (g *Graph) Clear() {
	g.data = nil
	g.highlights = g.highlights[:0]
	g.invalidateView()
}

// IsEmpty reports whether there are no entries to draw.
func (g *Graph) IsEmpty() bool {
	return g.data == nil || g.data.EntryCount() == 0
}

// NotifyDataChanged recomputes the data aggregates and refreshes the graph
// after the data was mutated in place.
func (g *Graph) NotifyDataChanged() {
	if g.data == nil {
		g.log.V(1).Info("data changed notification without data")
		return
	}
	g.data.NotifyChanged()
	g.Refresh()
	g.invalidateView()
}

// SetSize sets the full drawing area in pixels.
func (g *Graph) SetSize(w, h float64) {
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = max(w, 0), max(h, 0)
	g.Refresh()
}

// Size returns the drawing area set by SetSize.
func (g *Graph) Size() (w, h float64) {
	return g.width, g.height
}

// SetYRange fixes the plotted y range, disabling automatic padding on
// that axis.
func (g *Graph) SetYRange(lo, hi float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	g.fixedY, g.fixedYMin, g.fixedYMax = true, lo, hi
	g.Refresh()
	g.invalidateView()
}

// ResetYRange restores the automatic y range.
func (g *Graph) ResetYRange() {
	g.fixedY = false
	g.Refresh()
	g.invalidateView()
}

// SetXLabels replaces the x axis label configuration.
func (g *Graph) SetXLabels(l axis.Labels) {
	g.xLabels = l
	g.Refresh()
}

// SetYLabels replaces the y axis label configuration.
func (g *Graph) SetYLabels(l axis.Labels) {
	g.yLabels = l
	g.Refresh()
}

func (g *Graph) XLabels() axis.Labels { return g.xLabels }
func (g *Graph) YLabels() axis.Labels { return g.yLabels }
func (g *Graph) XTicks() axis.Ticks   { return g.xTicks }
func (g *Graph) YTicks() axis.Ticks   { return g.yTicks }

// Transformer exposes the value/pixel mapping. Callers must not mutate it
// directly; use the Graph's pan and zoom methods instead.
func (g *Graph) Transformer() *viewport.Transformer {
	return g.tr
}

// RenderConfig returns the drawing options in use.
func (g *Graph) RenderConfig() render.Config {
	return g.renderer.Config
}

// SetRenderConfig replaces the drawing options.
func (g *Graph) SetRenderConfig(cfg render.Config) {
	g.renderer.Config = cfg
	g.invalidateView()
}

// Bounds returns the plotted value range, padding included.
func (g *Graph) Bounds() geom.Rect {
	return geom.R(g.xChartMin, g.yChartMin, g.xChartMin+g.deltaX, g.yChartMin+g.deltaY)
}

// TouchOffset returns the value-space touch tolerance.
func (g *Graph) TouchOffset() float64 {
	return g.touchOffset
}

// ValueDecimals returns the number of fractional digits used for value
// labels.
func (g *Graph) ValueDecimals() int {
	return g.valueDecimals
}

// SetInvalidator sets the function called whenever the graph needs to be
// redrawn.
func (g *Graph) SetInvalidator(fn func()) {
	g.invalidate = fn
}

// SetViewportListener sets the function called after every pan or zoom
// with the resulting scale factors.
func (g *Graph) SetViewportListener(fn func(scaleX, scaleY float64)) {
	g.onViewport = fn
}

func (g *Graph) invalidateView() {
	if g.invalidate != nil {
		g.invalidate()
	}
}

// Refresh recomputes the plotted bounds, ticks, content area and matrices.
// It is idempotent and does nothing without data.
func (g *Graph) Refresh() {
	if g.IsEmpty() {
		return
	}
	g.calcMinMax()
	g.calcFormats()
	g.prepareLabels()
	g.calculateOffsets()
	g.prepareMatrices()
}

// pad widens [lo, hi] by space derived from frac of the largest
// magnitude.
func pad(lo, hi, frac float64, startAtZero bool) (float64, float64) {
	space := max(math.Abs(hi), math.Abs(lo)) * frac
	if math.Abs(hi-lo) < data.Epsilon {
		if math.Abs(hi) < 10 {
			space = 1
		} else {
			space = math.Abs(hi) * 0.2
		}
	}
	if !startAtZero {
		return lo - space/2, hi + space/2
	}
	if hi < 0 {
		return lo - space, 0
	}
	return min(lo, 0), hi + space
}

func (g *Graph) calcMinMax() {
	g.xChartMin, g.xChartMax = pad(g.data.XMin(), g.data.XMax(), XPadding, g.StartAtZeroX)
	if g.fixedY {
		g.yChartMin, g.yChartMax = g.fixedYMin, g.fixedYMax
	} else {
		g.yChartMin, g.yChartMax = pad(g.data.YMin(), g.data.YMax(), YPadding, g.StartAtZeroY)
	}
	g.deltaX = math.Abs(g.xChartMax - g.xChartMin)
	g.deltaY = math.Abs(g.yChartMax - g.yChartMin)
	g.degenerateX = g.deltaX < data.Epsilon && g.data.EntryCount() > 0
	if g.degenerateX {
		g.deltaX = 1
	}
	if g.deltaY < data.Epsilon {
		g.deltaY = 1
	}
}

func (g *Graph) calcFormats() {
	reference := g.deltaY
	if g.data.EntryCount() < 2 {
		reference = max(math.Abs(g.yChartMin), math.Abs(g.yChartMax))
	}
	g.valueDecimals = axis.ValueDecimals(reference)
}

// prepareLabels generates ticks for the visible range when zoomed and the
// full plotted range otherwise.
func (g *Graph) prepareLabels() {
	content := g.tr.ContentRect()
	visible := g.tr.VisibleRange()
	yLo, yHi := g.yChartMin, g.yChartMin+g.deltaY
	if content.Dy() > 10 && !g.tr.IsFullyZoomedOutY() {
		yLo, yHi = visible.Min.Y, visible.Max.Y
	}
	g.yTicks = g.yLabels.Ticks(yLo, yHi)
	xLo, xHi := g.xChartMin, g.xChartMin+g.deltaX
	if content.Dy() > 10 && !g.tr.IsFullyZoomedOutX() {
		xLo, xHi = visible.Min.X, visible.Max.X
	}
	g.xTicks = g.xLabels.Ticks(xLo, xHi)
}

func longest(labels []string) string {
	var out string
	for _, l := range labels {
		if utf8.RuneCountInString(l) > utf8.RuneCountInString(out) {
			out = l
		}
	}
	return out
}

// calculateOffsets sizes the margins around the content area from the
// measured label extents.
func (g *Graph) calculateOffsets() {
	var left, right, top, bottom float64
	if g.yLabels.Enabled && !g.yLabels.Inside {
		// Reserve room for a sign and some slack beyond the widest label.
		suffix := "+++++"
		if g.yChartMin < 0 {
			suffix = "------"
		}
		w, _ := g.measurer.MeasureText(longest(g.yLabels.Strings(g.yTicks))+suffix, g.yLabels.TextSize)
		switch g.yLabels.Side {
		case axis.Start:
			left = w
		case axis.End:
			right = w
		case axis.Both:
			left, right = w, w
		}
	}
	if g.xLabels.Enabled && !g.xLabels.Inside {
		_, h := g.measurer.MeasureText("Q", g.xLabels.TextSize)
		h *= 2
		switch g.xLabels.Side {
		case axis.Start:
			bottom = h
		case axis.End:
			top = h
		case axis.Both:
			top, bottom = h, h
		}
	}
	left, right = max(left, MinOffset), max(right, MinOffset)
	top, bottom = max(top, MinOffset), max(bottom, MinOffset)
	x1 := max(left, g.width-right)
	y1 := max(top, g.height-bottom)
	g.tr.SetContentRect(geom.R(left, top, x1, y1))
}

func (g *Graph) prepareMatrices() {
	g.tr.SetValueRange(g.xChartMin, g.xChartMin+g.deltaX, g.yChartMin, g.yChartMin+g.deltaY)
	if w := g.tr.ContentRect().Dx(); !g.degenerateX && w > 0 {
		g.touchOffset = g.deltaX * g.touchRadius / w
	} else {
		g.touchOffset = DegenerateTouchOffset * g.deltaX
	}
}

// Frame assembles the state needed to draw the current frame.
func (g *Graph) Frame() render.Frame {
	marks := make([]render.Mark, len(g.highlights))
	for i, h := range g.highlights {
		marks[i] = render.Mark{Entry: h.Entry, DataSetIndex: h.DataSetIndex, EntryIndex: h.EntryIndex}
	}
	return render.Frame{
		Bounds:        geom.R(0, 0, g.width, g.height),
		Data:          g.data,
		Transformer:   g.tr,
		PhaseX:        g.phases.X,
		PhaseY:        g.phases.Y,
		XLabels:       g.xLabels,
		YLabels:       g.yLabels,
		XTicks:        g.xTicks,
		YTicks:        g.yTicks,
		Highlights:    marks,
		ValueDecimals: g.valueDecimals,
	}
}

// Draw renders the graph onto s. Without data it draws the no-data text.
func (g *Graph) Draw(s render.Surface) {
	if g.IsEmpty() {
		g.renderer.DrawNoData(s, geom.R(0, 0, g.width, g.height))
		return
	}
	g.prepareLabels()
	g.renderer.DrawFrame(s, g.Frame())
}
