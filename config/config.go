// Package config holds the viewer configuration.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"git.sr.ht/~whereswaldon/scrollchart/backend"
	"git.sr.ht/~whereswaldon/scrollchart/chart"
)

// Config is the top-level configuration of the viewer.
// Field tags use mapstructure for viper unmarshalling and yaml for writing
// the default file.
type Config struct {
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Style   StyleConfig   `mapstructure:"style" yaml:"style"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// DataConfig selects the data file and how its columns are drawn.
type DataConfig struct {
	File          string  `mapstructure:"file" yaml:"file"`
	Smoothed      bool    `mapstructure:"smoothed" yaml:"smoothed"`
	LineWidth     float32 `mapstructure:"line_width" yaml:"line_width"`
	FillAlpha     int     `mapstructure:"fill_alpha" yaml:"fill_alpha"`
	AxisDivisions int     `mapstructure:"axis_divisions" yaml:"axis_divisions"`
	ShowLineFocus bool    `mapstructure:"show_line_focus" yaml:"show_line_focus"`
	ShowBarFocus  bool    `mapstructure:"show_bar_focus" yaml:"show_bar_focus"`
}

// StyleConfig holds the chart appearance. Sizes are in Dp, font sizes in Sp.
type StyleConfig struct {
	ItemWidth             float32      `mapstructure:"item_width" yaml:"item_width"`
	ItemPadding           float32      `mapstructure:"item_padding" yaml:"item_padding"`
	SectionPadding        float32      `mapstructure:"section_padding" yaml:"section_padding"`
	ShowSectionTitles     bool         `mapstructure:"show_section_titles" yaml:"show_section_titles"`
	ShowSectionSeparator  bool         `mapstructure:"show_section_separator" yaml:"show_section_separator"`
	TruncateSectionTitles bool         `mapstructure:"truncate_section_titles" yaml:"truncate_section_titles"`
	ShowFocus             bool         `mapstructure:"show_focus" yaml:"show_focus"`
	ShowAxis              bool         `mapstructure:"show_axis" yaml:"show_axis"`
	InitialPosition       string       `mapstructure:"initial_position" yaml:"initial_position"`
	TitleFontSize         float32      `mapstructure:"title_font_size" yaml:"title_font_size"`
	FocusFontSize         float32      `mapstructure:"focus_font_size" yaml:"focus_font_size"`
	AxisFontSize          float32      `mapstructure:"axis_font_size" yaml:"axis_font_size"`
	Colors                ColorsConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorsConfig holds colors as #rrggbb or #rrggbbaa strings.
type ColorsConfig struct {
	Background          string `mapstructure:"background" yaml:"background"`
	HorizontalLine      string `mapstructure:"horizontal_line" yaml:"horizontal_line"`
	SectionTitle        string `mapstructure:"section_title" yaml:"section_title"`
	SectionSeparator    string `mapstructure:"section_separator" yaml:"section_separator"`
	FocusText           string `mapstructure:"focus_text" yaml:"focus_text"`
	FocusTextBackground string `mapstructure:"focus_text_background" yaml:"focus_text_background"`
	Focus               string `mapstructure:"focus" yaml:"focus"`
	AxisText            string `mapstructure:"axis_text" yaml:"axis_text"`
	AxisBackground      string `mapstructure:"axis_background" yaml:"axis_background"`
	AxisLine            string `mapstructure:"axis_line" yaml:"axis_line"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig configures the prometheus endpoint. An empty address
// disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

const (
	DefaultLineWidth     = 1
	DefaultAxisDivisions = 4
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	// DefaultBackground is a dark gray.
	DefaultBackground = "#555555ff"

	logFormatText = "text"
	logFormatJSON = "json"
	maxAlpha      = 0xff
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidItemWidth indicates the item width is not positive.
	ErrInvalidItemWidth = errors.New("style.item_width must be positive")
	// ErrInvalidColor indicates a color string that is not #rrggbb or #rrggbbaa.
	ErrInvalidColor = errors.New("colors must be #rrggbb or #rrggbbaa")
	// ErrInvalidInitialPosition indicates an initial position other than first or last.
	ErrInvalidInitialPosition = errors.New("style.initial_position must be first or last")
	// ErrInvalidFillAlpha indicates a fill alpha outside [0,255].
	ErrInvalidFillAlpha = errors.New("data.fill_alpha must be between 0 and 255")
	// ErrInvalidLogLevel indicates an unknown logging level.
	ErrInvalidLogLevel = errors.New("logging.level must be debug, info, warn or error")
	// ErrInvalidLogFormat indicates an unknown logging format.
	ErrInvalidLogFormat = errors.New("logging.format must be text or json")
)

// ParseColor parses #rrggbb or #rrggbbaa. Colors without alpha are opaque.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 && len(s) != 9 || !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s[:7])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	a := uint64(maxAlpha)
	if len(s) == 9 {
		a, err = strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
}

// FormatColor formats c as #rrggbbaa.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	st := chart.DefaultStyle()
	return Config{
		Data: DataConfig{
			Smoothed:      true,
			LineWidth:     DefaultLineWidth,
			AxisDivisions: DefaultAxisDivisions,
			ShowLineFocus: true,
		},
		Style: StyleConfig{
			ItemWidth:             st.ItemWidth,
			ItemPadding:           st.ItemPadding,
			SectionPadding:        st.SectionPadding,
			ShowSectionTitles:     st.ShowSectionTitles,
			ShowSectionSeparator:  st.ShowSectionSeparator,
			TruncateSectionTitles: st.TruncateSectionTitles,
			ShowFocus:             st.ShowFocus,
			ShowAxis:              st.ShowAxis,
			InitialPosition:       st.InitialPosition.String(),
			TitleFontSize:         st.SectionTitleFont.Size,
			FocusFontSize:         st.FocusTextFont.Size,
			AxisFontSize:          st.AxisTextFont.Size,
			Colors: ColorsConfig{
				Background:          DefaultBackground,
				HorizontalLine:      FormatColor(st.HorizontalLineColor),
				SectionTitle:        FormatColor(st.SectionTitleColor),
				SectionSeparator:    FormatColor(st.SectionSeparatorColor),
				FocusText:           FormatColor(st.FocusTextColor),
				FocusTextBackground: FormatColor(st.FocusTextBackgroundColor),
				Focus:               FormatColor(st.FocusColor),
				AxisText:            FormatColor(st.AxisTextColor),
				AxisBackground:      FormatColor(st.AxisBackgroundColor),
				AxisLine:            FormatColor(st.AxisLineColor),
			},
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

func (c ColorsConfig) each(f func(name, value string) error) error {
	for _, kv := range [...]struct{ name, value string }{
		{"background", c.Background},
		{"horizontal_line", c.HorizontalLine},
		{"section_title", c.SectionTitle},
		{"section_separator", c.SectionSeparator},
		{"focus_text", c.FocusText},
		{"focus_text_background", c.FocusTextBackground},
		{"focus", c.Focus},
		{"axis_text", c.AxisText},
		{"axis_background", c.AxisBackground},
		{"axis_line", c.AxisLine},
	} {
		if err := f(kv.name, kv.value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the configuration for values the viewer cannot use.
func (c *Config) Validate() error {
	if c.Style.ItemWidth <= 0 {
		return ErrInvalidItemWidth
	}
	if _, err := parsePosition(c.Style.InitialPosition); err != nil {
		return err
	}
	if c.Data.FillAlpha < 0 || c.Data.FillAlpha > maxAlpha {
		return ErrInvalidFillAlpha
	}
	err := c.Style.Colors.each(func(name, value string) error {
		if _, err := ParseColor(value); err != nil {
			return fmt.Errorf("style.colors.%s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if _, err := c.Logging.level(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case logFormatText, logFormatJSON:
	default:
		return ErrInvalidLogFormat
	}
	return nil
}

func parsePosition(s string) (chart.InitialPosition, error) {
	switch strings.ToLower(s) {
	case chart.FirstItem.String():
		return chart.FirstItem, nil
	case chart.LastItem.String():
		return chart.LastItem, nil
	default:
		return 0, ErrInvalidInitialPosition
	}
}

// ChartStyle converts the style section into a chart style. Options not
// exposed here keep their chart.DefaultStyle values.
func (c *Config) ChartStyle() (chart.Style, error) {
	if err := c.Validate(); err != nil {
		return chart.Style{}, err
	}
	s := c.Style
	st := chart.DefaultStyle()
	st.ItemWidth = s.ItemWidth
	st.ItemPadding = s.ItemPadding
	st.SectionPadding = s.SectionPadding
	st.ShowSectionTitles = s.ShowSectionTitles
	st.ShowSectionSeparator = s.ShowSectionSeparator
	st.TruncateSectionTitles = s.TruncateSectionTitles
	st.ShowFocus = s.ShowFocus
	st.ShowAxis = s.ShowAxis
	st.InitialPosition, _ = parsePosition(s.InitialPosition)
	st.SectionTitleFont.Size = s.TitleFontSize
	st.FocusTextFont.Size = s.FocusFontSize
	st.AxisTextFont.Size = s.AxisFontSize

	for _, target := range []struct {
		dst *color.NRGBA
		src string
	}{
		{&st.BackgroundColor, s.Colors.Background},
		{&st.HorizontalLineColor, s.Colors.HorizontalLine},
		{&st.SectionTitleColor, s.Colors.SectionTitle},
		{&st.SectionSeparatorColor, s.Colors.SectionSeparator},
		{&st.FocusTextColor, s.Colors.FocusText},
		{&st.FocusTextBackgroundColor, s.Colors.FocusTextBackground},
		{&st.FocusColor, s.Colors.Focus},
		{&st.AxisTextColor, s.Colors.AxisText},
		{&st.AxisBackgroundColor, s.Colors.AxisBackground},
		{&st.AxisLineColor, s.Colors.AxisLine},
	} {
		// Validated above.
		*target.dst, _ = ParseColor(target.src)
	}
	return st, nil
}

// TableOptions converts the data section into table options.
func (c *Config) TableOptions() backend.TableOptions {
	opts := backend.DefaultTableOptions()
	opts.Smoothed = c.Data.Smoothed
	opts.LineWidth = c.Data.LineWidth
	opts.FillAlpha = uint8(min(max(c.Data.FillAlpha, 0), maxAlpha))
	opts.AxisDivisions = c.Data.AxisDivisions
	opts.ShowLineFocus = c.Data.ShowLineFocus
	opts.ShowBarFocus = c.Data.ShowBarFocus
	return opts
}

func (l LoggingConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, ErrInvalidLogLevel
	}
	return level, nil
}

// NewLogger returns a logger writing to w as configured.
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == logFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
