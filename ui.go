package main

import (
	"image"
	"image/color"
	"path/filepath"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/decart/backend"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	chart       *ChartView
	explorerBtn widget.Clickable
	loadErr     string

	th           *material.Theme
	traceStream  *stream.Stream[backend.Trace]
	trace        backend.Trace
	statusStream *stream.Stream[backend.Status]
	status       backend.Status
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, invalidate func()) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:           ws,
		th:           th,
		expl:         expl,
		traceStream:  stream.New(ws.Controller, ws.Bundle.Source.Traces),
		statusStream: stream.New(ws.Controller, ws.Bundle.Source.Status),
	}
	ui.chart = NewChartView(th, ws.Bundle.Config, ws.Bundle.Log.WithName("chart"), invalidate)
	return ui
}

// Update the state of the UI from the backend streams and user input.
func (ui *UI) Update(gtx C) {
	ui.traceStream.ReadInto(gtx, &ui.trace, backend.Trace{})
	ui.statusStream.ReadInto(gtx, &ui.status, backend.Status{})
	if ui.trace.Loaded() {
		ui.chart.SetTrace(gtx, ui.trace)
	}
	if ui.status.Err != nil {
		ui.loadErr = ui.status.Err.Error()
	} else if ui.status.Loading {
		ui.loadErr = ""
	}
	if ui.explorerBtn.Clicked(gtx) {
		go func() {
			if err := ui.ws.Bundle.Source.LoadFromFile(ui.expl); err != nil {
				ui.ws.Bundle.Log.Error(err, "failed loading trace")
			}
		}()
	}
}

func (ui *UI) statusText() string {
	name := filepath.Base(ui.status.Name)
	switch {
	case ui.status.Name == "":
		return ""
	case ui.status.Loading:
		return "Loading " + name + "..."
	case ui.status.Tailing:
		return "Following " + name
	default:
		return name
	}
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, func(gtx C) D {
					l := material.Body1(ui.th, ui.statusText())
					l.MaxLines = 1
					return layout.UniformInset(4).Layout(gtx, l.Layout)
				}),
				layout.Rigid(func(gtx C) D {
					return layout.UniformInset(2).Layout(gtx, material.Button(ui.th, &ui.explorerBtn, "Open Trace").Layout)
				}),
			)
		}),
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			return ui.chart.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	msg := "No data yet."
	if ui.status.Loading {
		msg = ui.statusText()
	}
	l := material.Body1(ui.th, msg)
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.explorerBtn, "Open Existing Trace").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.trace.Loaded() {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
