package main

import (
	"time"

	"git.sr.ht/~whereswaldon/decart/chart"
)

// Animator drives the reveal phases of a graph from frame timestamps.
// The X and Y phases run independently.
type Animator struct {
	start      time.Time
	durX, durY time.Duration
	running    bool
}

// Start begins a reveal at now. A zero duration completes that axis
// immediately.
func (a *Animator) Start(now time.Time, durX, durY time.Duration) {
	a.start = now
	a.durX = durX
	a.durY = durY
	a.running = true
}

func (a *Animator) Stop() {
	a.running = false
}

// Running reports whether phases are still changing.
func (a *Animator) Running() bool {
	return a.running
}

func progress(elapsed, d time.Duration) float64 {
	if d <= 0 || elapsed >= d {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	t := float64(elapsed) / float64(d)
	// Ease out.
	return 1 - (1-t)*(1-t)
}

// Phases returns the phases at now. The animator stops once both reach 1.
func (a *Animator) Phases(now time.Time) chart.Phases {
	if !a.running {
		return chart.Phases{X: 1, Y: 1}
	}
	elapsed := now.Sub(a.start)
	p := chart.Phases{
		X: progress(elapsed, a.durX),
		Y: progress(elapsed, a.durY),
	}
	if p.Done() {
		a.running = false
	}
	return p
}
