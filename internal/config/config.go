// Package config loads chart and server settings for the vangochart CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/recera/vangochart/pkg/barchart"
)

// EnvPrefix is prepended to environment overrides,
// e.g. VANGOCHART_LAYOUT_WIDTH for layout.width.
const EnvPrefix = "VANGOCHART"

// Config holds the complete vangochart configuration
type Config struct {
	Title  string       `mapstructure:"title"`
	Layout LayoutConfig `mapstructure:"layout"`
	Theme  ThemeConfig  `mapstructure:"theme"`
	Server ServerConfig `mapstructure:"server"`
	Cache  CacheConfig  `mapstructure:"cache"`
}

// LayoutConfig controls chart geometry
type LayoutConfig struct {
	Width          float64         `mapstructure:"width"`
	Height         float64         `mapstructure:"height"`
	Margin         barchart.Margin `mapstructure:"margin"`
	Padding        float64         `mapstructure:"padding"`
	PixelsPerTick  float64         `mapstructure:"pixels_per_tick"`
	LabelInset     float64         `mapstructure:"label_inset"`
	MinInsideWidth float64         `mapstructure:"min_inside_width"`
}

// ThemeConfig controls colours and text
type ThemeConfig struct {
	BarColor          string  `mapstructure:"bar_color"`
	LabelColor        string  `mapstructure:"label_color"`
	OutsideLabelColor string  `mapstructure:"outside_label_color"`
	FontFamily        string  `mapstructure:"font_family"`
	FontSize          float64 `mapstructure:"font_size"`
	GridOpacity       float64 `mapstructure:"grid_opacity"`
	Caption           string  `mapstructure:"caption"`
}

// ServerConfig controls `vangochart serve`
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// DebounceMs coalesces bursts of file events before re-rendering
	DebounceMs int `mapstructure:"debounce_ms"`
}

// CacheConfig controls the rendered-markup cache
type CacheConfig struct {
	Size int `mapstructure:"size"`
}

// Debounce returns the debounce interval as a time.Duration
func (c ServerConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Addr returns host:port
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Default returns the default configuration
func Default() *Config {
	o := barchart.DefaultOptions()
	return &Config{
		Title: "Bar chart",
		Layout: LayoutConfig{
			Width:          o.Width,
			Height:         o.Height,
			Margin:         o.Margin,
			Padding:        o.Padding,
			PixelsPerTick:  o.PixelsPerTick,
			LabelInset:     o.LabelInset,
			MinInsideWidth: o.MinInsideWidth,
		},
		Theme: ThemeConfig{
			BarColor:          o.BarColor,
			LabelColor:        o.LabelColor,
			OutsideLabelColor: o.OutsideLabelColor,
			FontFamily:        o.FontFamily,
			FontSize:          o.FontSize,
			GridOpacity:       o.GridOpacity,
			Caption:           o.Caption,
		},
		Server: ServerConfig{
			Host:       "localhost",
			Port:       8080,
			DebounceMs: 100,
		},
		Cache: CacheConfig{
			Size: 64,
		},
	}
}

// SetDefaults registers default values with v
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("title", d.Title)

	v.SetDefault("layout.width", d.Layout.Width)
	v.SetDefault("layout.height", d.Layout.Height)
	v.SetDefault("layout.margin.top", d.Layout.Margin.Top)
	v.SetDefault("layout.margin.right", d.Layout.Margin.Right)
	v.SetDefault("layout.margin.bottom", d.Layout.Margin.Bottom)
	v.SetDefault("layout.margin.left", d.Layout.Margin.Left)
	v.SetDefault("layout.padding", d.Layout.Padding)
	v.SetDefault("layout.pixels_per_tick", d.Layout.PixelsPerTick)
	v.SetDefault("layout.label_inset", d.Layout.LabelInset)
	v.SetDefault("layout.min_inside_width", d.Layout.MinInsideWidth)

	v.SetDefault("theme.bar_color", d.Theme.BarColor)
	v.SetDefault("theme.label_color", d.Theme.LabelColor)
	v.SetDefault("theme.outside_label_color", d.Theme.OutsideLabelColor)
	v.SetDefault("theme.font_family", d.Theme.FontFamily)
	v.SetDefault("theme.font_size", d.Theme.FontSize)
	v.SetDefault("theme.grid_opacity", d.Theme.GridOpacity)
	v.SetDefault("theme.caption", d.Theme.Caption)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.debounce_ms", d.Server.DebounceMs)

	v.SetDefault("cache.size", d.Cache.Size)
}

// New returns a viper instance with defaults and environment overrides
// registered, reading path if set or ./vangochart.{yaml,json,toml} otherwise.
func New(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("vangochart")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file at path, applies environment overrides
// and validates the result. An empty path falls back to defaults when no
// vangochart config file exists in the working directory.
func Load(path string) (*Config, error) {
	v := New(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return Decode(v)
}

// Decode unmarshals v into a Config and validates it
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ChartOptions converts the layout and theme into renderer options
func (c *Config) ChartOptions() barchart.Options {
	return barchart.Options{
		Width:             c.Layout.Width,
		Height:            c.Layout.Height,
		Margin:            c.Layout.Margin,
		Padding:           c.Layout.Padding,
		PixelsPerTick:     c.Layout.PixelsPerTick,
		GridOpacity:       c.Theme.GridOpacity,
		BarColor:          c.Theme.BarColor,
		LabelColor:        c.Theme.LabelColor,
		OutsideLabelColor: c.Theme.OutsideLabelColor,
		FontFamily:        c.Theme.FontFamily,
		FontSize:          c.Theme.FontSize,
		LabelInset:        c.Layout.LabelInset,
		MinInsideWidth:    c.Layout.MinInsideWidth,
		Caption:           c.Theme.Caption,
	}
}
