package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"time"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"git.sr.ht/~whereswaldon/decart/backend"
	"git.sr.ht/~whereswaldon/decart/chart"
	"git.sr.ht/~whereswaldon/decart/data"
	"git.sr.ht/~whereswaldon/decart/geom"
	"git.sr.ht/~whereswaldon/decart/giosurface"
	"github.com/go-logr/logr"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

const (
	longPressDuration = 500 * time.Millisecond
	// zoomPerPx is the exponential zoom rate per scrolled pixel.
	zoomPerPx = 0.002
	revealX   = 800 * time.Millisecond
	revealY   = 1200 * time.Millisecond
)

var zoomInIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionZoomIn)
	return icon
}()

var zoomOutIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionZoomOut)
	return icon
}()

var fitIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.NavigationFullscreen)
	return icon
}()

var replayIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVReplay)
	return icon
}()

// ChartView is an interactive graph of a trace with a key table of the
// statistics of the visible range.
type ChartView struct {
	graph   *chart.Graph
	surface *giosurface.Surface
	cfg     backend.Config
	anim    Animator

	zoom     gesture.Scroll
	drag     gesture.Drag
	click    gesture.Click
	dragLast f32.Point

	// hover gesture state
	pos       f32.Point
	isHovered bool

	// long press state
	pressing  bool
	pressAt   time.Time
	pressPos  f32.Point
	longFired bool

	zoomInBtn  widget.Clickable
	zoomOutBtn widget.Clickable
	fitBtn     widget.Clickable
	replayBtn  widget.Clickable
	enabled    []*widget.Bool
	keyTable   component.GridState

	traceName string
	version   int
	selected  string
	stats     []backend.Stats
}

func NewChartView(th *material.Theme, cfg backend.Config, log logr.Logger, invalidate func()) *ChartView {
	c := &ChartView{
		surface: giosurface.New(th),
		cfg:     cfg,
	}
	opts := append(cfg.GraphOptions(), chart.WithLogger(log), chart.WithMeasurer(c.surface))
	c.graph = chart.New(opts...)
	cfg.Apply(c.graph)
	c.graph.SetInvalidator(invalidate)
	c.graph.SetListener(chart.SelectionFuncs{
		Selected: func(e data.Entry, h chart.Highlight) {
			c.selected = c.describe(e, h)
		},
		Nothing: func() {
			c.selected = ""
		},
		LongPressed: func(e data.Entry, h chart.Highlight) {
			c.selected = c.describe(e, h)
			c.graph.CenterViewport(e.X, e.Y)
		},
	})
	return c
}

func (c *ChartView) format(v float64) string {
	return c.graph.RenderConfig().ValueFormatter.Format(v, c.graph.ValueDecimals())
}

func (c *ChartView) describe(e data.Entry, h chart.Highlight) string {
	label := ""
	if set := c.graph.Data().DataSet(h.DataSetIndex); set != nil {
		label = set.Label()
	}
	return fmt.Sprintf("%s: x=%s y=%s", label, c.format(e.X), c.format(e.Y))
}

// SetTrace shows tr. A new trace resets the viewport and replays the
// reveal animation; a newer snapshot of the same trace keeps both.
func (c *ChartView) SetTrace(gtx C, tr backend.Trace) {
	if tr.Name == c.traceName && tr.Version == c.version {
		return
	}
	fresh := tr.Name != c.traceName || tr.Version < c.version
	c.traceName, c.version = tr.Name, tr.Version
	for len(c.enabled) < len(tr.Labels) {
		c.enabled = append(c.enabled, &widget.Bool{Value: true})
	}
	cd := tr.ChartData(c.cfg, paletteColor)
	for i, set := range cd.DataSets() {
		set.Visible = c.enabled[i].Value
	}
	kept := slices.Clone(c.graph.Highlights())
	c.graph.SetData(cd)
	if fresh {
		c.selected = ""
		c.graph.FitScreen()
		c.anim.Start(gtx.Now, revealX, revealY)
		return
	}
	c.graph.HighlightValues(kept)
}

func toGeom(p f32.Point) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

func (c *ChartView) Update(gtx C) {
	if c.zoomInBtn.Clicked(gtx) {
		c.graph.ZoomIn()
	}
	if c.zoomOutBtn.Clicked(gtx) {
		c.graph.ZoomOut()
	}
	if c.fitBtn.Clicked(gtx) {
		c.graph.FitScreen()
	}
	if c.replayBtn.Clicked(gtx) {
		c.anim.Start(gtx.Now, revealX, revealY)
	}
	if cd := c.graph.Data(); cd != nil {
		changed := false
		for i, b := range c.enabled {
			if !b.Update(gtx) {
				continue
			}
			if set := cd.DataSet(i); set != nil {
				set.Visible = b.Value
				changed = true
			}
		}
		if changed {
			c.graph.ClearHighlight()
			c.graph.NotifyDataChanged()
		}
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move,
		})
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case pointer.Event:
			switch ev.Kind {
			case pointer.Enter:
				c.isHovered = true
				c.pos = ev.Position
			case pointer.Leave, pointer.Cancel:
				c.isHovered = false
			case pointer.Move:
				c.pos = ev.Position
			}
		}
	}
	if dist := c.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6)); dist != 0 {
		f := math.Exp(-float64(dist) * zoomPerPx)
		c.graph.Zoom(f, f, toGeom(c.pos))
	}
	for {
		ev, ok := c.drag.Update(gtx.Metric, gtx.Source, gesture.Both)
		if !ok {
			break
		}
		switch ev.Kind {
		case pointer.Press:
			c.dragLast = ev.Position
		case pointer.Drag:
			d := ev.Position.Sub(c.dragLast)
			c.dragLast = ev.Position
			c.pos = ev.Position
			c.graph.PanBy(float64(d.X), float64(d.Y))
			if moved := ev.Position.Sub(c.pressPos); moved.X*moved.X+moved.Y*moved.Y > float32(gtx.Dp(8)*gtx.Dp(8)) {
				c.pressing = false
			}
		}
	}
	for {
		ev, ok := c.click.Update(gtx.Source)
		if !ok {
			break
		}
		pos := f32.Pt(float32(ev.Position.X), float32(ev.Position.Y))
		switch ev.Kind {
		case gesture.KindPress:
			c.pressing = true
			c.longFired = false
			c.pressAt = gtx.Now
			c.pressPos = pos
		case gesture.KindClick:
			if !c.longFired {
				c.graph.HighlightTouch(toGeom(pos))
			}
			c.pressing = false
		case gesture.KindCancel:
			c.pressing = false
		}
	}
	if c.pressing && !c.longFired {
		if gtx.Now.Sub(c.pressAt) >= longPressDuration {
			c.longFired = true
			c.graph.HighlightLongTap(toGeom(c.pressPos))
		} else {
			gtx.Execute(op.InvalidateCmd{At: c.pressAt.Add(longPressDuration)})
		}
	}
	if c.anim.Running() {
		c.graph.SetPhases(c.anim.Phases(gtx.Now))
		if c.anim.Running() {
			gtx.Execute(op.InvalidateCmd{})
		}
	}
}

func (c *ChartView) Layout(gtx C, th *material.Theme) D {
	c.surface.Frame(gtx)
	c.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return c.layoutToolbar(gtx, th)
		}),
		layout.Flexed(1, func(gtx C) D {
			return c.layoutPlot(gtx, th)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, gtx.Dp(200))
			return c.layoutKey(gtx, th)
		}),
	)
}

func (c *ChartView) layoutToolbar(gtx C, th *material.Theme) D {
	button := func(btn *widget.Clickable, icon *widget.Icon, desc string) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			b := material.IconButton(th, btn, icon, desc)
			b.Size = 20
			b.Inset = layout.UniformInset(6)
			return layout.UniformInset(2).Layout(gtx, b.Layout)
		})
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		button(&c.zoomInBtn, zoomInIcon, "Zoom in"),
		button(&c.zoomOutBtn, zoomOutIcon, "Zoom out"),
		button(&c.fitBtn, fitIcon, "Fit to screen"),
		button(&c.replayBtn, replayIcon, "Replay animation"),
		layout.Flexed(1, func(gtx C) D {
			l := material.Body2(th, c.selected)
			l.MaxLines = 1
			l.Alignment = text.End
			return layout.UniformInset(4).Layout(gtx, l.Layout)
		}),
	)
}

func (c *ChartView) layoutPlot(gtx C, th *material.Theme) D {
	size := gtx.Constraints.Max
	c.graph.SetSize(float64(size.X), float64(size.Y))
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	c.zoom.Add(gtx.Ops)
	c.drag.Add(gtx.Ops)
	c.click.Add(gtx.Ops)
	event.Op(gtx.Ops, c)

	c.surface.Frame(gtx)
	c.graph.Draw(c.surface)

	if c.isHovered && !c.graph.IsEmpty() {
		c.layoutCursor(gtx, th)
	}
	return D{Size: size}
}

// layoutCursor draws a vertical rule under the pointer labelled with the
// value at that position.
func (c *ChartView) layoutCursor(gtx C, th *material.Theme) {
	content := c.graph.Transformer().ContentRect()
	p := toGeom(c.pos)
	if !content.Contains(p) {
		return
	}
	x := int(c.pos.X)
	paint.FillShape(gtx.Ops, color.NRGBA{A: 80}, clip.Rect{
		Min: image.Pt(x, int(content.Min.Y)),
		Max: image.Pt(x+max(gtx.Dp(1), 1), int(content.Max.Y)),
	}.Op())
	v := c.graph.ValueForPixel(p.X, p.Y)
	gtx.Constraints.Min = image.Point{}
	l := material.Caption(th, fmt.Sprintf("%s, %s", c.format(v.X), c.format(v.Y)))
	l.MaxLines = 1
	macro := op.Record(gtx.Ops)
	dims := layout.Background{}.Layout(gtx,
		func(gtx C) D {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 200}, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		},
		func(gtx C) D {
			return layout.UniformInset(4).Layout(gtx, l.Layout)
		},
	)
	call := macro.Stop()
	pos := image.Pt(x+gtx.Dp(4), int(c.pos.Y)-dims.Size.Y-gtx.Dp(4))
	if pos.X+dims.Size.X > int(content.Max.X) {
		pos.X = x - gtx.Dp(4) - dims.Size.X
	}
	pos.Y = max(pos.Y, int(content.Min.Y))
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

// visibleStats refreshes the statistics of every data set over the
// visible x range.
func (c *ChartView) visibleStats() []backend.Stats {
	c.stats = c.stats[:0]
	cd := c.graph.Data()
	if cd == nil {
		return c.stats
	}
	vis := c.graph.Transformer().VisibleRange()
	for _, set := range cd.DataSets() {
		st, _ := backend.StatsBetween(set, vis.Min.X, vis.Max.X)
		c.stats = append(c.stats, st)
	}
	return c.stats
}

func (c *ChartView) layoutKey(gtx C, th *material.Theme) D {
	stats := c.visibleStats()
	if len(stats) == 0 {
		return D{}
	}
	var visibleSum float64
	if cd := c.graph.Data(); cd != nil {
		vis := c.graph.Transformer().VisibleRange()
		for _, st := range backend.VisibleStats(cd, vis.Min.X, vis.Max.X) {
			visibleSum += st.Sum
		}
	}
	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	numColWidth := gtx.Dp(90)
	const (
		colorCol = iota
		nameCol
		countCol
		minCol
		meanCol
		maxCol
		sumCol
		numCols
	)
	nameColWidth := max(gtx.Constraints.Max.X-colorColWidth-(numCols-2)*numColWidth-gtx.Dp(table.VScrollbarStyle.Width()), gtx.Dp(80))
	rowHeight := gtx.Sp(20)
	headings := [numCols]string{"Color", "Data Set", "Count", "Min", "Mean", "Max", "Sum"}
	return table.Layout(gtx, len(stats)+1, numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			switch index {
			case colorCol:
				return min(colorColWidth, constraint)
			case nameCol:
				return min(nameColWidth, constraint)
			default:
				return min(numColWidth, constraint)
			}
		},
		func(gtx C, index int) D {
			l := material.Body1(th, headings[index])
			switch index {
			case colorCol:
			case nameCol:
				l.Alignment = text.Middle
			default:
				l.Alignment = text.End
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			number := func(s string, enabled bool) D {
				l := material.Body2(th, s)
				l.Alignment = text.End
				if !enabled {
					l.Color.A = 100
				}
				return l.Layout(gtx)
			}
			if row == len(stats) {
				switch col {
				case nameCol:
					return material.Body2(th, "Total of shown data sets").Layout(gtx)
				case sumCol:
					return number(c.format(visibleSum), true)
				default:
					return D{Size: gtx.Constraints.Min}
				}
			}
			st := stats[row]
			enabled := row < len(c.enabled) && c.enabled[row].Value
			switch col {
			case colorCol:
				if row >= len(c.enabled) {
					return D{Size: gtx.Constraints.Min}
				}
				return c.enabled[row].Layout(gtx, func(gtx C) D {
					return layout.Center.Layout(gtx, func(gtx C) D {
						sideLen := gtx.Dp(10)
						sz := image.Pt(sideLen, sideLen)
						fill := paletteColor(row)
						if set := c.graph.Data().DataSet(row); set != nil {
							fill = set.Color(0)
						}
						if !enabled {
							fill = withAlpha(fill, 100)
						}
						paint.FillShape(gtx.Ops, fill, clip.Rect{Max: sz}.Op())
						return D{Size: sz}
					})
				})
			case nameCol:
				l := material.Body2(th, st.Label)
				if !enabled {
					l.Color.A = 100
				}
				return l.Layout(gtx)
			case countCol:
				return number(fmt.Sprintf("%d", st.Count), enabled)
			case minCol:
				return number(c.format(st.Min), enabled)
			case meanCol:
				return number(c.format(st.Mean), enabled)
			case maxCol:
				return number(c.format(st.Max), enabled)
			case sumCol:
				return number(c.format(st.Sum), enabled)
			default:
				return D{Size: gtx.Constraints.Min}
			}
		})
}
