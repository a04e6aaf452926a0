package backend

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"git.sr.ht/~whereswaldon/decart/axis"
	"git.sr.ht/~whereswaldon/decart/chart"
	"git.sr.ht/~whereswaldon/decart/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const sampleConfig = `
touch_radius = 40
inking = true
start_at_zero = true
shape = "line"
language = "de"

[y_range]
min = -10
max = 10

[x_axis]
labels = 30
side = "top"
hide_grid = true

[y_axis]
labels = 4
side = "both"
separate_thousands = true

[[dataset]]
label = "power"
shape = "smoothed-line"
colors = ["#ff0000", "#00ff00"]
highlight = "#0000ff"
line_width = 3
alpha = 128

[[dataset]]
label = "dots"
size = 20
hide_values = true

[[limit]]
value = 5
label = "max"
dash = 4
position = "left"
`

func writeConfig(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "decart.toml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("failed writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 40.0, cfg.TouchRadius)
	assert.True(t, cfg.Inking)
	assert.True(t, cfg.StartAtZero)
	assert.True(t, cfg.SortEntries, "unset keys keep their defaults")
	assert.Equal(t, data.Line, cfg.DefaultShape)
	require.NotNil(t, cfg.YRange)
	assert.Equal(t, Range{Min: -10, Max: 10}, *cfg.YRange)
	assert.Equal(t, axis.End, cfg.XAxis.Side)
	assert.Equal(t, axis.Both, cfg.YAxis.Side)
	require.Len(t, cfg.DataSets, 2)
	require.NotNil(t, cfg.DataSets[0].Shape)
	assert.Equal(t, data.SmoothedLine, *cfg.DataSets[0].Shape)
	assert.Nil(t, cfg.DataSets[1].Shape)
	require.Len(t, cfg.LimitLines, 1)

	x := cfg.XLabels()
	assert.Equal(t, axis.MaxLabelCount, x.Count)
	assert.False(t, x.DrawGrid)
	assert.True(t, x.IntegerAlign)
	y := cfg.YLabels()
	assert.Equal(t, 4, y.Count)
	german := axis.NewNumberFormatter(true, language.German)
	assert.Equal(t, german.Format(1234.5, 2), y.Formatter.Format(1234.5, 2))
}

func TestLoadConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
	}{
		{name: "unknown key", text: "zoom_speed = 3\n"},
		{name: "bad shape", text: "shape = \"hexagon\"\n"},
		{name: "bad side", text: "[x_axis]\nside = \"middle\"\n"},
		{name: "bad color", text: "[[dataset]]\nlabel = \"a\"\ncolors = [\"red\"]\n"},
		{name: "bad limit color", text: "[[limit]]\nvalue = 1\ncolor = \"#12\"\n"},
		{name: "bad range", text: "[y_range]\nmin = 5\nmax = 1\n"},
		{name: "bad language", text: "language = \"not a language tag\"\n"},
		{name: "bad syntax", text: "touch_radius = \n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.text))
			if err == nil {
				t.Errorf("expected an error loading %q", tc.text)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeConfigDefaults(t *testing.T) {
	cfg, err := DecodeConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, data.Circle, cfg.DefaultShape)
	assert.Nil(t, cfg.YRange)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ed5b5b")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 237, G: 91, B: 91, A: 255}, c)
	_, err = ParseColor("ed5b5b")
	assert.Error(t, err)
}

func TestStyle(t *testing.T) {
	cfg, err := DecodeConfig(sampleConfig)
	require.NoError(t, err)
	fallback := color.NRGBA{R: 1, G: 2, B: 3, A: 255}

	power := data.NewDataSet("power", nil)
	cfg.Style(power, fallback)
	assert.Equal(t, data.SmoothedLine, power.Shape)
	assert.Equal(t, []color.NRGBA{{R: 255, A: 255}, {G: 255, A: 255}}, power.Colors)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, power.HighlightColor)
	assert.Equal(t, 3.0, power.LineWidth)
	assert.Equal(t, uint8(128), power.ShapeAlpha)
	assert.True(t, power.DrawValues)

	dots := data.NewDataSet("dots", nil)
	cfg.Style(dots, fallback)
	assert.Equal(t, data.Line, dots.Shape, "sets without a shape use the default shape")
	assert.Equal(t, 20.0, dots.ShapeSize)
	assert.False(t, dots.DrawValues)
	assert.Equal(t, []color.NRGBA{fallback}, dots.Colors)

	other := data.NewDataSet("other", nil)
	cfg.Style(other, fallback)
	assert.Equal(t, data.Line, other.Shape)
	assert.Equal(t, fallback, other.Color(0))
}

func TestLimits(t *testing.T) {
	cfg, err := DecodeConfig(sampleConfig)
	require.NoError(t, err)
	limits := cfg.Limits()
	require.Len(t, limits, 1)
	l := limits[0]
	assert.Equal(t, 5.0, l.Value)
	assert.Equal(t, "max", l.Label)
	assert.Equal(t, data.LabelLeft, l.Position)
	assert.Equal(t, 1.0, l.Width)
	assert.Equal(t, 4.0, l.DashOn)
	assert.Equal(t, 4.0, l.DashOff)
	assert.Equal(t, color.NRGBA{R: 237, G: 91, B: 91, A: 255}, l.Color)
}

func TestApply(t *testing.T) {
	cfg, err := DecodeConfig(sampleConfig)
	require.NoError(t, err)
	g := chart.New(cfg.GraphOptions()...)
	cfg.Apply(g)
	assert.True(t, g.StartAtZeroY)
	assert.Equal(t, axis.End, g.XLabels().Side)
	assert.Equal(t, 4, g.YLabels().Count)
	assert.True(t, g.RenderConfig().Inking)
}
