// Package config loads ganttline configuration from a TOML file layered
// over built-in defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/fabwerk/ganttline/pkg/errors"
	"github.com/fabwerk/ganttline/pkg/timeline"
)

// Config is the full application configuration.
type Config struct {
	View   View   `toml:"view"`
	Mongo  Mongo  `toml:"mongo"`
	Redis  Redis  `toml:"redis"`
	Server Server `toml:"server"`
	Cache  CacheC `toml:"cache"`
}

// View configures the layout engine's tunables.
type View struct {
	// ZoomMin and ZoomMax bound pixels-per-day.
	ZoomMin float64 `toml:"zoom_min"`
	ZoomMax float64 `toml:"zoom_max"`

	// Per-granularity default pixels-per-day applied on scale switches.
	WeekUnit    float64 `toml:"week_unit"`
	MonthUnit   float64 `toml:"month_unit"`
	QuarterUnit float64 `toml:"quarter_unit"`

	// MarginDays pads the visible window around the loaded orders.
	MarginDays int `toml:"margin_days"`
}

// Mongo configures the production order repository.
type Mongo struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Redis configures the shared fetch cache.
type Redis struct {
	Addr string `toml:"addr"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// CacheC selects and tunes the cache backend.
type CacheC struct {
	// Backend is one of "redis", "file", "none".
	Backend string `toml:"backend"`
	// Dir is the file backend's directory.
	Dir string `toml:"dir"`
	// TTLSeconds bounds cached order fetches.
	TTLSeconds int `toml:"ttl_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		View: View{
			ZoomMin:     timeline.DefaultBounds.Min,
			ZoomMax:     timeline.DefaultBounds.Max,
			WeekUnit:    timeline.DefaultUnits[timeline.GranularityWeek],
			MonthUnit:   timeline.DefaultUnits[timeline.GranularityMonth],
			QuarterUnit: timeline.DefaultUnits[timeline.GranularityQuarter],
			MarginDays:  timeline.DefaultMarginDays,
		},
		Mongo:  Mongo{URI: "mongodb://localhost:27017", Database: "ganttline"},
		Redis:  Redis{Addr: "localhost:6379"},
		Server: Server{Addr: ":8080"},
		Cache:  CacheC{Backend: "none", TTLSeconds: 30},
	}
}

// Load reads the TOML file at path over the defaults. A missing path (or
// empty string) returns the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if cfg.View.ZoomMin <= 0 || cfg.View.ZoomMax < cfg.View.ZoomMin {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "zoom bounds must satisfy 0 < min <= max")
	}
	return cfg, nil
}

// Bounds returns the configured pixels-per-day bounds.
func (v View) Bounds() timeline.Bounds {
	return timeline.Bounds{Min: v.ZoomMin, Max: v.ZoomMax}
}

// Units returns the configured per-granularity zoom defaults.
func (v View) Units() map[timeline.Granularity]float64 {
	return map[timeline.Granularity]float64{
		timeline.GranularityWeek:    v.WeekUnit,
		timeline.GranularityMonth:   v.MonthUnit,
		timeline.GranularityQuarter: v.QuarterUnit,
	}
}
