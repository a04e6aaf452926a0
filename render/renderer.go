package render

import (
	"image/color"

	"git.sr.ht/~whereswaldon/decart/axis"
	"git.sr.ht/~whereswaldon/decart/data"
	"git.sr.ht/~whereswaldon/decart/geom"
	"git.sr.ht/~whereswaldon/decart/viewport"
)

const (
	DefaultMaxVisibleCount = 1000
	DefaultDashLength      = 15
	// OutOfBoundsMarkerSize is the thickness of the bar drawn at the
	// content edge for entries outside of it.
	OutOfBoundsMarkerSize = 5
	// HighlightScale is the highlight circle radius as a multiple of the
	// shape size.
	HighlightScale = 1.25
	NoDataText     = "No chart data available."
)

// Config holds the drawing options of a Renderer.
type Config struct {
	// Inking draws a background tinted enlarged copy beneath every shape.
	Inking bool
	// Background fills the content area and tints inked halos.
	Background     color.NRGBA
	DrawBackground bool
	// ShowOutOfBounds replaces entries outside the content area with a
	// marker on the nearest edge.
	ShowOutOfBounds  bool
	OutOfBoundsColor color.NRGBA
	// MaxVisibleCount disables value labels when the chart holds at least
	// this many entries per unit of horizontal zoom.
	MaxVisibleCount int
	DashLength      float64
	CustomBitmap    BitmapFunc
	// SizeMultiplier scales an entry's shape. Nil means 1.
	SizeMultiplier func(set *data.DataSet, index int) float64
	ValueFormatter axis.Formatter
	ValueColor     color.NRGBA
	DrawBorder     bool
	BorderColor    color.NRGBA
	BorderWidth    float64
	NoDataText     string
	NoDataColor    color.NRGBA
	NoDataSize     float64
}

// DefaultConfig returns the options used when a chart sets none.
func DefaultConfig() Config {
	return Config{
		Background:       color.NRGBA{R: 240, G: 240, B: 240, A: 255},
		DrawBackground:   true,
		OutOfBoundsColor: color.NRGBA{R: 200, G: 60, B: 60, A: 255},
		MaxVisibleCount:  DefaultMaxVisibleCount,
		DashLength:       DefaultDashLength,
		ValueFormatter:   axis.NewNumberFormatter(false, axis.DefaultLanguage),
		ValueColor:       color.NRGBA{R: 60, G: 60, B: 60, A: 255},
		DrawBorder:       true,
		BorderColor:      color.NRGBA{A: 255},
		BorderWidth:      1,
		NoDataText:       NoDataText,
		NoDataColor:      color.NRGBA{R: 247, G: 189, B: 51, A: 255},
		NoDataSize:       24,
	}
}

// Mark identifies a highlighted entry.
type Mark struct {
	Entry        data.Entry
	DataSetIndex int
	EntryIndex   int
}

// Frame is everything needed to draw one frame of a chart.
type Frame struct {
	// Bounds is the full drawing area, margins included.
	Bounds           geom.Rect
	Data             *data.ChartData
	Transformer      *viewport.Transformer
	PhaseX, PhaseY   float64
	XLabels, YLabels axis.Labels
	XTicks, YTicks   axis.Ticks
	Highlights       []Mark
	// ValueDecimals is the precision of value labels.
	ValueDecimals int
}

// Renderer draws frames. It keeps scratch buffers between frames and must
// only be used from one goroutine.
type Renderer struct {
	Config
	placer     LabelPlacer
	pts        []geom.Point
	shapeRects []geom.Rect
}

// NewRenderer returns a renderer using cfg.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{Config: cfg}
}

// Placer exposes the label placer state of the last frame.
func (r *Renderer) Placer() *LabelPlacer {
	return &r.placer
}

// DrawFrame draws the background, grid, highlights, data and limit lines
// clipped to the content area, then the axis labels, value labels and
// border. Frames without entries draw the no-data text instead.
func (r *Renderer) DrawFrame(s Surface, f Frame) {
	if f.Data == nil || f.Data.EntryCount() == 0 || f.Transformer == nil {
		r.DrawNoData(s, f.Bounds)
		return
	}
	content := f.Transformer.ContentRect()
	if r.DrawBackground {
		s.DrawRect(content, Filled(r.Background))
	}
	pop := s.PushClip(content)
	r.DrawGrid(s, f)
	r.DrawHighlights(s, f)
	r.DrawData(s, f)
	r.DrawLimitLines(s, f)
	pop()
	r.DrawAxisLabels(s, f)
	r.DrawValues(s, f)
	if r.DrawBorder {
		s.DrawRect(content, Stroked(r.BorderColor, r.BorderWidth))
	}
}

// DrawNoData centers the no-data text in bounds.
func (r *Renderer) DrawNoData(s Surface, bounds geom.Rect) {
	if r.NoDataText == "" {
		return
	}
	s.DrawText(r.NoDataText, bounds.Center(), TextStyle{
		Color: r.NoDataColor,
		Size:  r.NoDataSize,
		Align: AlignCenter,
	})
}

// DrawGrid draws a line across the content area for every tick.
func (r *Renderer) DrawGrid(s Surface, f Frame) {
	content := f.Transformer.ContentRect()
	if f.YLabels.DrawGrid {
		style := Stroked(f.YLabels.GridColor, f.YLabels.GridWidth)
		for _, v := range f.YTicks.Values {
			y := f.Transformer.ValueToPixel(geom.Pt(0, v)).Y
			s.DrawLine(geom.Pt(content.Min.X, y), geom.Pt(content.Max.X, y), style)
		}
	}
	if f.XLabels.DrawGrid {
		style := Stroked(f.XLabels.GridColor, f.XLabels.GridWidth)
		for _, v := range f.XTicks.Values {
			x := f.Transformer.ValueToPixel(geom.Pt(v, 0)).X
			s.DrawLine(geom.Pt(x, content.Min.Y), geom.Pt(x, content.Max.Y), style)
		}
	}
}

// DrawHighlights draws a translucent circle behind every highlighted entry
// that the X phase has revealed.
func (r *Renderer) DrawHighlights(s Surface, f Frame) {
	content := f.Transformer.ContentRect()
	for _, h := range f.Highlights {
		set := f.Data.DataSet(h.DataSetIndex)
		if set == nil || !set.Visible {
			continue
		}
		if h.EntryIndex >= Revealed(set.EntryCount(), f.PhaseX) {
			continue
		}
		p := f.Transformer.ValueToPixel(geom.Pt(h.Entry.X, h.Entry.Y*f.PhaseY))
		if !content.Contains(p) {
			continue
		}
		s.DrawCircle(p, set.ShapeSize*HighlightScale, Filled(haloColor(set.HighlightColor)))
	}
}

// DrawData draws every visible data set in collection order.
func (r *Renderer) DrawData(s Surface, f Frame) {
	r.shapeRects = r.shapeRects[:0]
	for _, set := range f.Data.DataSets() {
		if !set.Visible || set.EntryCount() == 0 {
			continue
		}
		if set.Shape.IsLine() {
			r.drawLine(s, f, set)
		} else {
			r.drawShapes(s, f, set)
		}
	}
}

func (r *Renderer) drawLine(s Surface, f Frame, set *data.DataSet) {
	r.pts = f.Transformer.TransformEntries(r.pts[:0], set.Entries(), 1)
	baseline := f.Transformer.ValueToPixel(geom.Point{}).Y
	var p *geom.Path
	if set.Shape.IsSmoothed() {
		p = SmoothPath(r.pts, f.PhaseX, f.PhaseY, baseline)
	} else {
		p = LinePath(r.pts, f.PhaseX, f.PhaseY, baseline)
	}
	if p == nil {
		return
	}
	style := Stroked(set.Color(0), set.LineWidth)
	if !set.Shape.IsDashed() {
		s.DrawPath(p, style)
		return
	}
	dash := r.DashLength
	if dash <= 0 {
		dash = DefaultDashLength
	}
	style.Dash = Dash{On: dash, Off: dash}
	s.DrawPath(p, style)
	style.Color = set.Color(1)
	style.Dash.Phase = dash
	s.DrawPath(p, style)
}

func (r *Renderer) drawShapes(s Surface, f Frame, set *data.DataSet) {
	fn := shapeFor(set.Shape)
	if fn == nil {
		return
	}
	content := f.Transformer.ContentRect()
	r.pts = f.Transformer.TransformEntries(r.pts[:0], set.Entries(), f.PhaseY)
	count := Revealed(len(r.pts), f.PhaseX)
	for j := 0; j < count; j++ {
		p := r.pts[j]
		size := set.ShapeSize
		if r.SizeMultiplier != nil {
			size *= r.SizeMultiplier(set, j)
		}
		reach := size
		if r.Inking {
			reach *= InkScale
		}
		// An entry is out of bounds only when its whole shape is.
		shape := geom.RectAround(p, reach)
		if !content.Intersects(shape) {
			if !r.ShowOutOfBounds {
				if shape.Min.X > content.Max.X {
					// Entries are ordered by x, so nothing further is visible.
					break
				}
				continue
			}
			s.DrawRect(outOfBoundsMarker(p, content), Filled(r.OutOfBoundsColor))
			continue
		}
		entry := set.Entries()[j]
		m := marker{
			center: p,
			size:   size,
			color:  withAlpha(set.Color(j), set.ShapeAlpha),
			set:    set,
			index:  j,
			entry:  entry,
			phaseY: f.PhaseY,
			tr:     f.Transformer,
			bitmap: r.CustomBitmap,
		}
		if r.Inking {
			ink := m
			ink.size *= InkScale
			ink.color = r.Background
			fn(s, ink)
		}
		fn(s, m)
		r.shapeRects = append(r.shapeRects, geom.RectAround(p, size))
	}
}

func withAlpha(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = uint8(uint16(c.A) * uint16(alpha) / 255)
	return c
}

// outOfBoundsMarker returns a bar on the content edge nearest to p.
func outOfBoundsMarker(p geom.Point, content geom.Rect) geom.Rect {
	const m = OutOfBoundsMarkerSize
	x := max(content.Min.X, min(p.X, content.Max.X))
	y := max(content.Min.Y, min(p.Y, content.Max.Y))
	x0, x1 := x-m/2, x+m/2
	switch {
	case p.X < content.Min.X:
		x0, x1 = content.Min.X, content.Min.X+m
	case p.X > content.Max.X:
		x0, x1 = content.Max.X-m, content.Max.X
	}
	y0, y1 := y-m/2, y+m/2
	switch {
	case p.Y < content.Min.Y:
		y0, y1 = content.Min.Y, content.Min.Y+m
	case p.Y > content.Max.Y:
		y0, y1 = content.Max.Y-m, content.Max.Y
	}
	return geom.R(x0, y0, x1, y1)
}

// DrawLimitLines draws every limit line inside the content area.
func (r *Renderer) DrawLimitLines(s Surface, f Frame) {
	content := f.Transformer.ContentRect()
	for _, l := range f.Data.LimitLines {
		y := f.Transformer.ValueToPixel(geom.Pt(0, l.Value)).Y
		if y < content.Min.Y || y > content.Max.Y {
			continue
		}
		style := Stroked(l.Color, max(l.Width, 1))
		style.Dash = Dash{On: l.DashOn, Off: l.DashOff}
		s.DrawLine(geom.Pt(content.Min.X, y), geom.Pt(content.Max.X, y), style)
		if l.Label == "" {
			continue
		}
		size := f.YLabels.TextSize
		_, h := s.MeasureText(l.Label, size)
		ts := TextStyle{Color: l.Color, Size: size, Align: AlignEnd}
		anchor := geom.Pt(content.Max.X-LabelMargin, y-h/2-LabelMargin)
		if l.Position == data.LabelLeft {
			ts.Align = AlignStart
			anchor.X = content.Min.X + LabelMargin
		}
		s.DrawText(l.Label, anchor, ts)
	}
}

// DrawAxisLabels draws the tick labels of both axes.
func (r *Renderer) DrawAxisLabels(s Surface, f Frame) {
	content := f.Transformer.ContentRect()
	const slack = 1
	if f.YLabels.Enabled {
		labels := f.YLabels.Strings(f.YTicks)
		ts := TextStyle{Color: f.YLabels.TextColor, Size: f.YLabels.TextSize}
		for i, v := range f.YTicks.Values {
			if !f.YLabels.DrawTopLabel && i == len(labels)-1 {
				break
			}
			y := f.Transformer.ValueToPixel(geom.Pt(0, v)).Y
			if y < content.Min.Y-slack || y > content.Max.Y+slack {
				continue
			}
			for _, side := range sides(f.YLabels.Side) {
				align, anchor := yLabelAnchor(side, f.YLabels, content, y)
				ts.Align = align
				s.DrawText(labels[i], anchor, ts)
			}
		}
	}
	if f.XLabels.Enabled {
		labels := f.XLabels.Strings(f.XTicks)
		ts := TextStyle{Color: f.XLabels.TextColor, Size: f.XLabels.TextSize, Align: AlignCenter}
		for i, v := range f.XTicks.Values {
			x := f.Transformer.ValueToPixel(geom.Pt(v, 0)).X
			if x < content.Min.X-slack || x > content.Max.X+slack {
				continue
			}
			_, h := s.MeasureText(labels[i], ts.Size)
			for _, side := range sides(f.XLabels.Side) {
				s.DrawText(labels[i], geom.Pt(x, xLabelY(side, f.XLabels, content, h)), ts)
			}
		}
	}
}

func sides(s axis.Side) []axis.Side {
	if s == axis.Both {
		return []axis.Side{axis.Start, axis.End}
	}
	return []axis.Side{s}
}

func yLabelAnchor(side axis.Side, l axis.Labels, content geom.Rect, y float64) (Align, geom.Point) {
	switch {
	case side == axis.Start && !l.Inside:
		return AlignEnd, geom.Pt(content.Min.X-l.Offset, y)
	case side == axis.Start:
		return AlignStart, geom.Pt(content.Min.X+l.Offset, y)
	case !l.Inside:
		return AlignStart, geom.Pt(content.Max.X+l.Offset, y)
	default:
		return AlignEnd, geom.Pt(content.Max.X-l.Offset, y)
	}
}

func xLabelY(side axis.Side, l axis.Labels, content geom.Rect, h float64) float64 {
	switch {
	case side == axis.Start && !l.Inside:
		return content.Max.Y + l.Offset + h/2
	case side == axis.Start:
		return content.Max.Y - l.Offset - h/2
	case !l.Inside:
		return content.Min.Y - l.Offset - h/2
	default:
		return content.Min.Y + l.Offset + h/2
	}
}

// DrawValues labels every revealed entry with its Y value, avoiding the
// drawn shapes and previously placed labels.
func (r *Renderer) DrawValues(s Surface, f Frame) {
	r.placer.Reset()
	maxVisible := r.MaxVisibleCount
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisibleCount
	}
	if float64(f.Data.EntryCount()) >= float64(maxVisible)*f.Transformer.ScaleX() {
		return
	}
	for _, rect := range r.shapeRects {
		r.placer.Seed(rect)
	}
	content := f.Transformer.ContentRect()
	formatter := r.ValueFormatter
	if formatter == nil {
		formatter = axis.NewNumberFormatter(false, axis.DefaultLanguage)
	}
	for _, set := range f.Data.DataSets() {
		if !set.Visible || !set.DrawValues {
			continue
		}
		r.pts = f.Transformer.TransformEntries(r.pts[:0], set.Entries(), f.PhaseY)
		count := Revealed(len(r.pts), f.PhaseX)
		ts := TextStyle{Color: r.ValueColor, Size: set.ValueTextSize, Align: AlignCenter}
		for j := 0; j < count; j++ {
			p := r.pts[j]
			if p.X > content.Max.X {
				break
			}
			if !content.Contains(p) {
				continue
			}
			text := formatter.Format(set.Entries()[j].Y, f.ValueDecimals)
			w, h := s.MeasureText(text, ts.Size)
			rect, ok := r.placer.Place(p, w, h, set.ShapeSize, content)
			if !ok {
				continue
			}
			s.DrawText(text, rect.Center(), ts)
		}
	}
}
