// Package axis computes axis tick values and formats their labels.
package axis

import "math"

const (
	MinLabelCount     = 2
	MaxLabelCount     = 15
	DefaultLabelCount = 6
)

// Ticks are the label positions of one axis.
type Ticks struct {
	Values   []float64
	Interval float64
	// Decimals is the number of fractional digits needed to tell the
	// ticks apart.
	Decimals int
}

// Len returns the number of ticks.
func (t Ticks) Len() int {
	return len(t.Values)
}

// Options adjust tick generation.
type Options struct {
	// OnlyMinMax emits exactly the range bounds.
	OnlyMinMax bool
	// IntegerAlign starts the ticks at the rounded minimum instead of a
	// multiple of the interval when the range spans more than five units and
	// the minimum is not already zero.
	IntegerAlign bool
}

// ClampLabelCount keeps n within [MinLabelCount, MaxLabelCount].
func ClampLabelCount(n int) int {
	return max(MinLabelCount, min(n, MaxLabelCount))
}

// NiceInterval rounds range/n up to the nearest 1, 2, 5 or 10 times a power
// of ten. It returns 0 when no interval exists.
func NiceInterval(span float64, n int) float64 {
	if n <= 0 || !(span > 0) || math.IsInf(span, 0) {
		return 0
	}
	raw := span / float64(n)
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	interval := 10 * magnitude
	for _, step := range [...]float64{1, 2, 5} {
		if step*magnitude >= raw {
			interval = step * magnitude
			break
		}
	}
	if interval/magnitude > 5 {
		interval = 10 * magnitude
	}
	return interval
}

// Generate returns "nice" ticks covering [lo, hi] with roughly n labels. An
// empty or inverted range, or n == 0, yields no ticks. Any other n is
// clamped with ClampLabelCount.
func Generate(lo, hi float64, n int, opts Options) Ticks {
	span := hi - lo
	if n == 0 || !(span > 0) {
		return Ticks{}
	}
	n = ClampLabelCount(n)
	if opts.OnlyMinMax {
		interval := span
		return Ticks{
			Values:   []float64{lo, hi},
			Interval: interval,
			Decimals: Decimals(interval),
		}
	}
	interval := NiceInterval(span, n)
	if interval == 0 {
		return Ticks{}
	}

	first := math.Ceil(lo/interval) * interval
	if opts.IntegerAlign && span > 5 && lo != 0 {
		first = math.Round(lo)
	}
	last := math.Nextafter(math.Floor(hi/interval)*interval, math.Inf(1))

	var values []float64
	for i := 0; ; i++ {
		v := first + float64(i)*interval
		if v > last {
			break
		}
		if v == 0 {
			// Avoid printing "-0".
			v = 0
		}
		values = append(values, v)
	}
	return Ticks{
		Values:   values,
		Interval: interval,
		Decimals: Decimals(interval),
	}
}

// Decimals returns how many fractional digits distinguish values spaced
// interval apart.
func Decimals(interval float64) int {
	if !(interval > 0) || interval >= 1 || math.IsInf(interval, 0) {
		return 0
	}
	return int(math.Ceil(-math.Log10(interval) - 1e-9))
}

// RoundToSignificant rounds v to one significant digit.
func RoundToSignificant(v float64) float64 {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	d := math.Ceil(math.Log10(math.Abs(v)))
	magnitude := math.Pow(10, 1-d)
	return math.Round(v*magnitude) / magnitude
}

// ValueDecimals returns the number of fractional digits used to print
// values of a chart whose magnitude is reference.
func ValueDecimals(reference float64) int {
	r := RoundToSignificant(reference)
	if r == 0 {
		return 0
	}
	return max(0, int(math.Ceil(-math.Log10(math.Abs(r))-1e-9))+2)
}
