package backend

import (
	"fmt"
	"image/color"
	"strings"

	"git.sr.ht/~whereswaldon/decart/axis"
	"git.sr.ht/~whereswaldon/decart/chart"
	"git.sr.ht/~whereswaldon/decart/data"
	"git.sr.ht/~whereswaldon/decart/render"
	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"
)

// AxisConfig configures the labels of one axis.
type AxisConfig struct {
	Labels            int       `toml:"labels"`
	OnlyMinMax        bool      `toml:"only_min_max"`
	SeparateThousands bool      `toml:"separate_thousands"`
	Side              axis.Side `toml:"side"`
	Inside            bool      `toml:"inside"`
	HideGrid          bool      `toml:"hide_grid"`
	HideTopLabel      bool      `toml:"hide_top_label"`
	TextSize          float64   `toml:"text_size"`
}

// DataSetConfig styles the data set with a matching label.
type DataSetConfig struct {
	Label      string      `toml:"label"`
	Shape      *data.Shape `toml:"shape"`
	Size       float64     `toml:"size"`
	Colors     []string    `toml:"colors"`
	Highlight  string      `toml:"highlight"`
	HideValues bool        `toml:"hide_values"`
	LineWidth  float64     `toml:"line_width"`
	Alpha      *uint8      `toml:"alpha"`
}

// LimitLineConfig describes a horizontal reference line.
type LimitLineConfig struct {
	Value float64 `toml:"value"`
	Label string  `toml:"label"`
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
	// Dash is the length of the dashes; zero draws a solid line.
	Dash float64 `toml:"dash"`
	// Position is "left" or "right".
	Position string `toml:"position"`
}

// Range is an inclusive value interval.
type Range struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// Config is the chart configuration file.
type Config struct {
	TouchRadius     float64    `toml:"touch_radius"`
	Inking          bool       `toml:"inking"`
	ShowOutOfBounds bool       `toml:"show_out_of_bounds"`
	MaxVisibleCount int        `toml:"max_visible_count"`
	StartAtZero     bool       `toml:"start_at_zero"`
	SortEntries     bool       `toml:"sort_entries"`
	DefaultShape    data.Shape `toml:"shape"`
	YRange          *Range     `toml:"y_range"`
	// Language selects digit grouping, e.g. "en" or "de".
	Language   string            `toml:"language"`
	XAxis      AxisConfig        `toml:"x_axis"`
	YAxis      AxisConfig        `toml:"y_axis"`
	DataSets   []DataSetConfig   `toml:"dataset"`
	LimitLines []LimitLineConfig `toml:"limit"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		TouchRadius:     chart.DefaultTouchRadius,
		MaxVisibleCount: render.DefaultMaxVisibleCount,
		SortEntries:     true,
		DefaultShape:    data.Circle,
		Language:        "en",
		XAxis: AxisConfig{
			Labels:   axis.DefaultLabelCount,
			Side:     axis.Start,
			TextSize: 20,
		},
		YAxis: AxisConfig{
			Labels:   axis.DefaultLabelCount,
			Side:     axis.Start,
			TextSize: 20,
		},
	}
}

// LoadConfig reads a TOML configuration file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed decoding config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys in config %q: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig parses TOML text on top of the defaults.
func DecodeConfig(text string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(text, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseColor reads a "#rrggbb" hex colour.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("failed parsing color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Validate checks every colour, range and language in c.
func (c Config) Validate() error {
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("failed parsing language %q: %w", c.Language, err)
	}
	if c.YRange != nil && c.YRange.Min >= c.YRange.Max {
		return fmt.Errorf("y range min %v must be below max %v", c.YRange.Min, c.YRange.Max)
	}
	for _, ds := range c.DataSets {
		for _, col := range ds.Colors {
			if _, err := ParseColor(col); err != nil {
				return fmt.Errorf("data set %q: %w", ds.Label, err)
			}
		}
		if ds.Highlight != "" {
			if _, err := ParseColor(ds.Highlight); err != nil {
				return fmt.Errorf("data set %q: %w", ds.Label, err)
			}
		}
	}
	for _, l := range c.LimitLines {
		if l.Color == "" {
			continue
		}
		if _, err := ParseColor(l.Color); err != nil {
			return fmt.Errorf("limit %q: %w", l.Label, err)
		}
	}
	return nil
}

func (c Config) tag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return axis.DefaultLanguage
	}
	return tag
}

func (c Config) labels(a AxisConfig) axis.Labels {
	l := axis.DefaultLabels()
	l.SetCount(a.Labels)
	l.OnlyMinMax = a.OnlyMinMax
	l.Formatter = axis.NewNumberFormatter(a.SeparateThousands, c.tag())
	l.Side = a.Side
	l.Inside = a.Inside
	l.DrawGrid = !a.HideGrid
	l.DrawTopLabel = !a.HideTopLabel
	if a.TextSize > 0 {
		l.TextSize = a.TextSize
	}
	return l
}

// XLabels returns the x axis label configuration.
func (c Config) XLabels() axis.Labels {
	l := c.labels(c.XAxis)
	l.IntegerAlign = true
	return l
}

// YLabels returns the y axis label configuration.
func (c Config) YLabels() axis.Labels {
	return c.labels(c.YAxis)
}

// RenderConfig returns the drawing options described by c.
func (c Config) RenderConfig() render.Config {
	rc := render.DefaultConfig()
	rc.Inking = c.Inking
	rc.ShowOutOfBounds = c.ShowOutOfBounds
	if c.MaxVisibleCount > 0 {
		rc.MaxVisibleCount = c.MaxVisibleCount
	}
	rc.ValueFormatter = axis.NewNumberFormatter(c.YAxis.SeparateThousands, c.tag())
	return rc
}

// GraphOptions returns the construction options described by c.
func (c Config) GraphOptions() []chart.Option {
	return []chart.Option{
		chart.WithTouchRadius(c.TouchRadius),
		chart.WithStartAtZero(false, c.StartAtZero),
		chart.WithRenderConfig(c.RenderConfig()),
	}
}

// Apply configures the labels and y range of g.
func (c Config) Apply(g *chart.Graph) {
	g.SetXLabels(c.XLabels())
	g.SetYLabels(c.YLabels())
	if c.YRange != nil {
		g.SetYRange(c.YRange.Min, c.YRange.Max)
	} else {
		g.ResetYRange()
	}
}

// DataSet returns the style for the data set labelled label.
func (c Config) DataSet(label string) (DataSetConfig, bool) {
	for _, ds := range c.DataSets {
		if ds.Label == label {
			return ds, true
		}
	}
	return DataSetConfig{}, false
}

// Style applies the configuration for set's label. Sets without one get
// the default shape and fallback as their only colour.
func (c Config) Style(set *data.DataSet, fallback color.NRGBA) {
	set.Shape = c.DefaultShape
	set.Colors = []color.NRGBA{fallback}
	ds, ok := c.DataSet(set.Label())
	if !ok {
		return
	}
	if ds.Shape != nil {
		set.Shape = *ds.Shape
	}
	if ds.Size > 0 {
		set.ShapeSize = ds.Size
	}
	if ds.LineWidth > 0 {
		set.LineWidth = ds.LineWidth
	}
	if ds.Alpha != nil {
		set.ShapeAlpha = *ds.Alpha
	}
	set.DrawValues = !ds.HideValues
	if len(ds.Colors) > 0 {
		set.Colors = set.Colors[:0]
		for _, s := range ds.Colors {
			if col, err := ParseColor(s); err == nil {
				set.Colors = append(set.Colors, col)
			}
		}
	}
	if col, err := ParseColor(ds.Highlight); err == nil {
		set.HighlightColor = col
	}
}

// Limits converts the configured limit lines.
func (c Config) Limits() []data.LimitLine {
	out := make([]data.LimitLine, 0, len(c.LimitLines))
	for _, l := range c.LimitLines {
		line := data.LimitLine{
			Value:   l.Value,
			Label:   l.Label,
			Color:   color.NRGBA{R: 237, G: 91, B: 91, A: 255},
			Width:   max(l.Width, 1),
			DashOn:  l.Dash,
			DashOff: l.Dash,
		}
		if col, err := ParseColor(l.Color); err == nil {
			line.Color = col
		}
		if strings.EqualFold(l.Position, "left") {
			line.Position = data.LabelLeft
		}
		out = append(out, line)
	}
	return out
}
