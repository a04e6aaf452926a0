package chart

// Phases are the animation progress fractions of a graph. X reveals
// entries left to right and Y grows values from zero. Both lie in [0, 1];
// any value in that range is a valid place to stop.
type Phases struct {
	X, Y float64
}

func clampUnit(v float64) float64 {
	if v != v {
		return 1
	}
	return max(0, min(v, 1))
}

// Clamped returns p with both phases limited to [0, 1]. NaN becomes 1.
func (p Phases) Clamped() Phases {
	return Phases{X: clampUnit(p.X), Y: clampUnit(p.Y)}
}

// Done reports whether both phases are complete.
func (p Phases) Done() bool {
	return p.X >= 1 && p.Y >= 1
}

// Phases returns the current animation phases.
func (g *Graph) Phases() Phases {
	return g.phases
}

// SetPhases sets both animation phases and requests a redraw.
func (g *Graph) SetPhases(p Phases) {
	p = p.Clamped()
	if p == g.phases {
		return
	}
	g.phases = p
	g.invalidateView()
}

func (g *Graph) SetPhaseX(x float64) {
	g.SetPhases(Phases{X: x, Y: g.phases.Y})
}

func (g *Graph) SetPhaseY(y float64) {
	g.SetPhases(Phases{X: g.phases.X, Y: y})
}
