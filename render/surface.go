// Package render turns chart data into drawing commands on a Surface. It
// generates geometry only; painting pixels is the Surface's job.
package render

import (
	"image"
	"image/color"

	"git.sr.ht/~whereswaldon/decart/geom"
)

// PaintMode selects between filling and stroking a shape.
type PaintMode uint8

const (
	Fill PaintMode = iota
	Stroke
)

func (m PaintMode) String() string {
	switch m {
	case Fill:
		return "fill"
	case Stroke:
		return "stroke"
	default:
		return "unknown"
	}
}

// Dash describes a dash pattern in pixels. The zero value draws a solid
// stroke.
type Dash struct {
	On, Off float64
	// Phase shifts the pattern start along the path.
	Phase float64
}

// Solid reports whether the pattern is a plain solid stroke.
func (d Dash) Solid() bool {
	return d.On <= 0 || d.Off <= 0
}

// Style is an immutable description of how to paint one primitive.
type Style struct {
	Color       color.NRGBA
	Mode        PaintMode
	StrokeWidth float64
	Dash        Dash
}

// Filled returns a fill style in c.
func Filled(c color.NRGBA) Style {
	return Style{Color: c, Mode: Fill}
}

// Stroked returns a solid stroke style in c.
func Stroked(c color.NRGBA, width float64) Style {
	return Style{Color: c, Mode: Stroke, StrokeWidth: width}
}

// Align positions text horizontally relative to its anchor.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// TextStyle describes how to draw a string. Size is in pixels.
type TextStyle struct {
	Color color.NRGBA
	Size  float64
	Align Align
}

// Surface is the drawing target. Coordinates are pixels. Implementations
// must not retain styles or paths after a call returns.
type Surface interface {
	DrawLine(from, to geom.Point, style Style)
	DrawCircle(center geom.Point, radius float64, style Style)
	DrawPath(p *geom.Path, style Style)
	DrawRect(r geom.Rect, style Style)
	DrawRoundRect(r geom.Rect, radius float64, style Style)
	// DrawText draws text whose line box is vertically centered on
	// anchor.Y and horizontally placed according to style.Align.
	DrawText(text string, anchor geom.Point, style TextStyle)
	// MeasureText returns the width and height of text at size.
	MeasureText(text string, size float64) (width, height float64)
	DrawImage(img image.Image, dst geom.Rect)
	// PushClip restricts drawing to r until the returned function is
	// called.
	PushClip(r geom.Rect) (pop func())
}
