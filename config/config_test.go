package config_test

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~whereswaldon/scrollchart/chart"
	"git.sr.ht/~whereswaldon/scrollchart/config"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scrollchart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoad_DefaultFile_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, config.WriteDefault(&buf))

	cfg, err := config.Load(writeConfig(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
}

func TestLoad_PartialFile_KeepsDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
data:
  file: trace.csv
style:
  item_width: 30
  initial_position: first
  colors:
    background: "#102030"
`))
	require.NoError(t, err)

	assert.Equal(t, "trace.csv", cfg.Data.File)
	assert.Equal(t, float32(30), cfg.Style.ItemWidth)
	assert.Equal(t, config.Default().Style.ItemPadding, cfg.Style.ItemPadding)
	assert.True(t, cfg.Data.Smoothed)

	st, err := cfg.ChartStyle()
	require.NoError(t, err)
	assert.Equal(t, chart.FirstItem, st.InitialPosition)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, st.BackgroundColor)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("SCROLLCHART_STYLE_ITEM_WIDTH", "22")
	t.Setenv("SCROLLCHART_LOGGING_LEVEL", "debug")

	cfg, err := config.Load(writeConfig(t, "style:\n  item_width: 30\n"))
	require.NoError(t, err)
	assert.Equal(t, float32(22), cfg.Style.ItemWidth)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidFile_ReturnsError(t *testing.T) {
	_, err := config.Load(writeConfig(t, "style:\n  item_width: 0\n"))
	require.ErrorIs(t, err, config.ErrInvalidItemWidth)

	_, err = config.Load(writeConfig(t, "style: [unclosed\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(*config.Config)
		want   error
	}{
		{name: "default", modify: func(*config.Config) {}},
		{name: "negative item width", modify: func(c *config.Config) { c.Style.ItemWidth = -1 }, want: config.ErrInvalidItemWidth},
		{name: "bad color", modify: func(c *config.Config) { c.Style.Colors.Focus = "white" }, want: config.ErrInvalidColor},
		{name: "short color", modify: func(c *config.Config) { c.Style.Colors.AxisLine = "#fff" }, want: config.ErrInvalidColor},
		{name: "bad position", modify: func(c *config.Config) { c.Style.InitialPosition = "middle" }, want: config.ErrInvalidInitialPosition},
		{name: "fill alpha", modify: func(c *config.Config) { c.Data.FillAlpha = 300 }, want: config.ErrInvalidFillAlpha},
		{name: "log level", modify: func(c *config.Config) { c.Logging.Level = "loud" }, want: config.ErrInvalidLogLevel},
		{name: "log format", modify: func(c *config.Config) { c.Logging.Format = "xml" }, want: config.ErrInvalidLogFormat},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{in: "#ff0000", want: color.NRGBA{R: 0xff, A: 0xff}, ok: true},
		{in: "#00ff0080", want: color.NRGBA{G: 0xff, A: 0x80}, ok: true},
		{in: " #0000FF ", want: color.NRGBA{B: 0xff, A: 0xff}, ok: true},
		{in: "00ff00"},
		{in: "#00ff0"},
		{in: "#00ff00zz"},
		{in: "#gg0000"},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, err := config.ParseColor(tc.in)
			if !tc.ok {
				assert.ErrorIs(t, err, config.ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, mustParse(t, config.FormatColor(got)))
		})
	}
}

func mustParse(t *testing.T, s string) color.NRGBA {
	t.Helper()
	c, err := config.ParseColor(s)
	require.NoError(t, err)
	return c
}

func TestChartStyle_MatchesChartDefaults(t *testing.T) {
	cfg := config.Default()
	st, err := cfg.ChartStyle()
	require.NoError(t, err)

	want := chart.DefaultStyle()
	want.BackgroundColor = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	assert.Equal(t, want.ItemWidth, st.ItemWidth)
	assert.Equal(t, want.FocusColor, st.FocusColor)
	assert.Equal(t, want.AxisBackgroundColor, st.AxisBackgroundColor)
	assert.Equal(t, want.BackgroundColor, st.BackgroundColor)
	assert.Equal(t, want.SectionTitleFont, st.SectionTitleFont)
	assert.Equal(t, want.InitialPosition, st.InitialPosition)
}

func TestTableOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Data.FillAlpha = 0x40
	cfg.Data.ShowBarFocus = true
	opts := cfg.TableOptions()
	assert.Equal(t, uint8(0x40), opts.FillAlpha)
	assert.True(t, opts.ShowBarFocus)
	assert.True(t, opts.Smoothed)
	assert.Equal(t, config.DefaultAxisDivisions, opts.AxisDivisions)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := config.LoggingConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
