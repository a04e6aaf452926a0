package axis

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLanguage picks the digit grouping of the default formatters.
var DefaultLanguage = language.English

// Side selects where an axis draws its labels. Start is the left or bottom
// edge, End the right or top edge.
type Side uint8

const (
	Start Side = iota
	End
	Both
)

func (s Side) String() string {
	switch s {
	case Start:
		return "start"
	case End:
		return "end"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// UnmarshalText parses "start", "end" or "both". The aliases "left" and
// "bottom" mean start, "right" and "top" mean end.
func (s *Side) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "start", "left", "bottom":
		*s = Start
	case "end", "right", "top":
		*s = End
	case "both":
		*s = Both
	default:
		return fmt.Errorf("unknown label side %q", text)
	}
	return nil
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Formatter renders a tick or value as text.
type Formatter interface {
	Format(value float64, decimals int) string
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(value float64, decimals int) string

func (f FormatterFunc) Format(value float64, decimals int) string {
	return f(value, decimals)
}

// NumberFormatter prints fixed-point numbers, optionally grouping thousands
// according to a locale.
type NumberFormatter struct {
	SeparateThousands bool
	printer           *message.Printer
}

// NewNumberFormatter returns a formatter grouping digits the way tag does.
func NewNumberFormatter(separateThousands bool, tag language.Tag) *NumberFormatter {
	return &NumberFormatter{
		SeparateThousands: separateThousands,
		printer:           message.NewPrinter(tag),
	}
}

func (n *NumberFormatter) Format(value float64, decimals int) string {
	return FormatNumber(n.printer, value, decimals, n.SeparateThousands)
}

// FormatNumber prints value with the given number of fractional digits.
// A nil printer uses English grouping.
func FormatNumber(p *message.Printer, value float64, decimals int, separateThousands bool) string {
	decimals = max(decimals, 0)
	if value == 0 || math.Abs(value) < math.Pow(10, -float64(decimals))/2 {
		value = 0
	}
	if !separateThousands {
		return strconv.FormatFloat(value, 'f', decimals, 64)
	}
	if p == nil {
		p = message.NewPrinter(DefaultLanguage)
	}
	return p.Sprintf(fmt.Sprintf("%%.%df", decimals), value)
}

// Labels configures how one axis produces and draws its labels.
type Labels struct {
	Enabled bool
	// Count is the desired number of labels. Values outside
	// [MinLabelCount, MaxLabelCount] are clamped when ticks are generated.
	Count      int
	OnlyMinMax bool
	// IntegerAlign is passed through to Generate.
	IntegerAlign bool
	Formatter    Formatter
	Side         Side
	// Inside draws labels within the content area instead of the margin.
	Inside    bool
	TextSize  float64
	TextColor color.NRGBA
	DrawGrid  bool
	GridColor color.NRGBA
	GridWidth float64
	// DrawTopLabel controls whether the highest Y label is drawn.
	DrawTopLabel bool
	// Offset is the gap in pixels between the labels and the content edge.
	Offset float64
}

// DefaultLabels returns an enabled axis with six labels and a light grid.
func DefaultLabels() Labels {
	return Labels{
		Enabled:      true,
		Count:        DefaultLabelCount,
		Formatter:    NewNumberFormatter(false, DefaultLanguage),
		TextSize:     20,
		TextColor:    color.NRGBA{A: 255},
		DrawGrid:     true,
		GridColor:    color.NRGBA{R: 160, G: 160, B: 160, A: 90},
		GridWidth:    1,
		DrawTopLabel: true,
		Offset:       5,
	}
}

// SetCount stores n clamped to [MinLabelCount, MaxLabelCount].
func (l *Labels) SetCount(n int) {
	l.Count = ClampLabelCount(n)
}

// Ticks generates ticks for the visible range [lo, hi].
func (l Labels) Ticks(lo, hi float64) Ticks {
	if !l.Enabled {
		return Ticks{}
	}
	return Generate(lo, hi, l.Count, Options{
		OnlyMinMax:   l.OnlyMinMax,
		IntegerAlign: l.IntegerAlign,
	})
}

// Format renders tick value v using the configured formatter.
func (l Labels) Format(v float64, decimals int) string {
	if l.Formatter == nil {
		return FormatNumber(nil, v, decimals, false)
	}
	return l.Formatter.Format(v, decimals)
}

// Strings formats every tick.
func (l Labels) Strings(t Ticks) []string {
	out := make([]string, len(t.Values))
	for i, v := range t.Values {
		out[i] = l.Format(v, t.Decimals)
	}
	return out
}
