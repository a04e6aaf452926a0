package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"

	"git.sr.ht/~whereswaldon/decart/backend"
)

// generator produces the y value of one data set for each x.
type generator struct {
	name string
	next func(x float64) float64
}

func newGenerator(kind string, rng *rand.Rand) (generator, error) {
	switch kind {
	case "sin":
		return generator{name: kind, next: math.Sin}, nil
	case "cos":
		return generator{name: kind, next: math.Cos}, nil
	case "square":
		return generator{name: kind, next: func(x float64) float64 {
			if math.Mod(math.Floor(x), 2) == 0 {
				return 1
			}
			return -1
		}}, nil
	case "walk":
		y := 0.0
		return generator{name: kind, next: func(float64) float64 {
			y += rng.NormFloat64() * 0.1
			return y
		}}, nil
	default:
		return generator{}, fmt.Errorf("unknown series %q", kind)
	}
}

// sampler writes rows for every generator at evenly spaced x values.
type sampler struct {
	gens []generator
	x    float64
	step float64
}

func newSampler(kinds string, step float64, seed int64) (*sampler, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %v", step)
	}
	rng := rand.New(rand.NewSource(seed))
	s := &sampler{step: step}
	for _, kind := range strings.Split(kinds, ",") {
		kind = strings.TrimSpace(kind)
		if kind == "" {
			continue
		}
		g, err := newGenerator(kind, rng)
		if err != nil {
			return nil, err
		}
		s.gens = append(s.gens, g)
	}
	if len(s.gens) < 1 {
		return nil, fmt.Errorf("no series requested")
	}
	return s, nil
}

func writeHeader(w io.Writer) error {
	_, err := fmt.Fprintln(w, strings.Join(backend.TraceHeader, ", "))
	return err
}

// writeRows writes one row per generator at the current x and advances x.
func (s *sampler) writeRows(w io.Writer) error {
	for _, g := range s.gens {
		if _, err := fmt.Fprintf(w, "%s, %g, %g\n", g.name, s.x, g.next(s.x)); err != nil {
			return err
		}
	}
	s.x += s.step
	return nil
}
