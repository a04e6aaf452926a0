package geom

// Verb identifies the kind of a path segment.
type Verb uint8

const (
	MoveTo Verb = iota
	LineTo
	CubeTo
	Close
)

func (v Verb) String() string {
	switch v {
	case MoveTo:
		return "move"
	case LineTo:
		return "line"
	case CubeTo:
		return "cube"
	case Close:
		return "close"
	default:
		return "unknown"
	}
}

// Segment is one drawing command. MoveTo and LineTo use Pts[0]. CubeTo uses
// Pts[0] and Pts[1] as control points and Pts[2] as the end point.
type Segment struct {
	Verb Verb
	Pts  [3]Point
}

// Path is a sequence of segments with absolute coordinates. The zero value
// is an empty path ready to use.
type Path struct {
	Segments []Segment
}

func (p *Path) MoveTo(pt Point) {
	p.Segments = append(p.Segments, Segment{Verb: MoveTo, Pts: [3]Point{pt}})
}

func (p *Path) LineTo(pt Point) {
	p.Segments = append(p.Segments, Segment{Verb: LineTo, Pts: [3]Point{pt}})
}

func (p *Path) CubeTo(ctrl1, ctrl2, to Point) {
	p.Segments = append(p.Segments, Segment{Verb: CubeTo, Pts: [3]Point{ctrl1, ctrl2, to}})
}

func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Verb: Close})
}

// Reset empties the path while keeping its storage.
func (p *Path) Reset() {
	p.Segments = p.Segments[:0]
}

func (p *Path) Len() int {
	return len(p.Segments)
}

// Clone returns a deep copy of p.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	out := &Path{Segments: make([]Segment, len(p.Segments))}
	copy(out.Segments, p.Segments)
	return out
}

// Transform applies f to every point of every segment in place.
func (p *Path) Transform(f func(Point) Point) {
	for i := range p.Segments {
		seg := &p.Segments[i]
		switch seg.Verb {
		case MoveTo, LineTo:
			seg.Pts[0] = f(seg.Pts[0])
		case CubeTo:
			for j := range seg.Pts {
				seg.Pts[j] = f(seg.Pts[j])
			}
		}
	}
}

// Bounds returns the rectangle covering every point of the path, control
// points included.
func (p *Path) Bounds() Rect {
	var (
		r     Rect
		first = true
	)
	grow := func(pt Point) {
		if first {
			r = Rect{Min: pt, Max: pt}
			first = false
			return
		}
		r.Min.X = min(r.Min.X, pt.X)
		r.Min.Y = min(r.Min.Y, pt.Y)
		r.Max.X = max(r.Max.X, pt.X)
		r.Max.Y = max(r.Max.Y, pt.Y)
	}
	for _, seg := range p.Segments {
		switch seg.Verb {
		case MoveTo, LineTo:
			grow(seg.Pts[0])
		case CubeTo:
			grow(seg.Pts[0])
			grow(seg.Pts[1])
			grow(seg.Pts[2])
		}
	}
	return r
}
