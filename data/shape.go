package data

import "fmt"

// Shape selects how a data set's entries are drawn.
type Shape uint8

const (
	Cross Shape = iota
	Triangle
	Circle
	StrokeCircle
	Square
	Custom
	Line
	DashedLine
	SmoothedLine
	SmoothedDashedLine
	CircleHighlight
	TriangleHighlight
	// ShapeCount is the number of shape variants.
	ShapeCount
)

func (s Shape) String() string {
	switch s {
	case Cross:
		return "cross"
	case Triangle:
		return "triangle"
	case Circle:
		return "circle"
	case StrokeCircle:
		return "stroke-circle"
	case Square:
		return "square"
	case Custom:
		return "custom"
	case Line:
		return "line"
	case DashedLine:
		return "dashed-line"
	case SmoothedLine:
		return "smoothed-line"
	case SmoothedDashedLine:
		return "smoothed-dashed-line"
	case CircleHighlight:
		return "circle-highlight"
	case TriangleHighlight:
		return "triangle-highlight"
	default:
		return "unknown"
	}
}

// ParseShape is the inverse of Shape.String.
func ParseShape(name string) (Shape, error) {
	for s := Shape(0); s < ShapeCount; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

// UnmarshalText lets shapes be decoded from configuration files.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Shape) MarshalText() ([]byte, error) {
	if s >= ShapeCount {
		return nil, fmt.Errorf("invalid shape %d", s)
	}
	return []byte(s.String()), nil
}

// IsLine reports whether the shape connects entries rather than marking
// them individually.
func (s Shape) IsLine() bool {
	switch s {
	case Line, DashedLine, SmoothedLine, SmoothedDashedLine:
		return true
	}
	return false
}

func (s Shape) IsDashed() bool {
	return s == DashedLine || s == SmoothedDashedLine
}

func (s Shape) IsSmoothed() bool {
	return s == SmoothedLine || s == SmoothedDashedLine
}
