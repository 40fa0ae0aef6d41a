package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configName is the config file name without extension.
const configName = "scrollchart"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for settings.
const envPrefix = "SCROLLCHART"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// yamlIndent is the indentation of written config files.
const yamlIndent = 2

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and the user config
// directory. Missing config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		dir, err := os.UserConfigDir()
		if err == nil {
			viperCfg.AddConfigPath(filepath.Join(dir, configName))
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	d := Default()

	viperCfg.SetDefault("data.file", d.Data.File)
	viperCfg.SetDefault("data.smoothed", d.Data.Smoothed)
	viperCfg.SetDefault("data.line_width", d.Data.LineWidth)
	viperCfg.SetDefault("data.fill_alpha", d.Data.FillAlpha)
	viperCfg.SetDefault("data.axis_divisions", d.Data.AxisDivisions)
	viperCfg.SetDefault("data.show_line_focus", d.Data.ShowLineFocus)
	viperCfg.SetDefault("data.show_bar_focus", d.Data.ShowBarFocus)

	viperCfg.SetDefault("style.item_width", d.Style.ItemWidth)
	viperCfg.SetDefault("style.item_padding", d.Style.ItemPadding)
	viperCfg.SetDefault("style.section_padding", d.Style.SectionPadding)
	viperCfg.SetDefault("style.show_section_titles", d.Style.ShowSectionTitles)
	viperCfg.SetDefault("style.show_section_separator", d.Style.ShowSectionSeparator)
	viperCfg.SetDefault("style.truncate_section_titles", d.Style.TruncateSectionTitles)
	viperCfg.SetDefault("style.show_focus", d.Style.ShowFocus)
	viperCfg.SetDefault("style.show_axis", d.Style.ShowAxis)
	viperCfg.SetDefault("style.initial_position", d.Style.InitialPosition)
	viperCfg.SetDefault("style.title_font_size", d.Style.TitleFontSize)
	viperCfg.SetDefault("style.focus_font_size", d.Style.FocusFontSize)
	viperCfg.SetDefault("style.axis_font_size", d.Style.AxisFontSize)

	viperCfg.SetDefault("style.colors.background", d.Style.Colors.Background)
	viperCfg.SetDefault("style.colors.horizontal_line", d.Style.Colors.HorizontalLine)
	viperCfg.SetDefault("style.colors.section_title", d.Style.Colors.SectionTitle)
	viperCfg.SetDefault("style.colors.section_separator", d.Style.Colors.SectionSeparator)
	viperCfg.SetDefault("style.colors.focus_text", d.Style.Colors.FocusText)
	viperCfg.SetDefault("style.colors.focus_text_background", d.Style.Colors.FocusTextBackground)
	viperCfg.SetDefault("style.colors.focus", d.Style.Colors.Focus)
	viperCfg.SetDefault("style.colors.axis_text", d.Style.Colors.AxisText)
	viperCfg.SetDefault("style.colors.axis_background", d.Style.Colors.AxisBackground)
	viperCfg.SetDefault("style.colors.axis_line", d.Style.Colors.AxisLine)

	viperCfg.SetDefault("logging.level", d.Logging.Level)
	viperCfg.SetDefault("logging.format", d.Logging.Format)

	viperCfg.SetDefault("metrics.addr", d.Metrics.Addr)
}

// WriteDefault writes the default configuration to w as YAML.
func WriteDefault(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(Default()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
