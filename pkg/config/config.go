// Package config loads the flightdeck YAML configuration document.
// A missing file or missing keys fall back to documented defaults; config
// problems are never fatal to the application.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	Location LocationConfig `yaml:"location"`

	// FlightRadiusKm is the search radius around the observer
	FlightRadiusKm float64 `yaml:"flight_radius_km"`

	// FlightUpdateIntervalSeconds is how often the feed is polled
	FlightUpdateIntervalSeconds int `yaml:"flight_update_interval_seconds"`

	Weather WeatherConfig `yaml:"weather"`
	Display DisplayConfig `yaml:"display"`
	Status  StatusConfig  `yaml:"status"`

	// Watchlist flags specific airframes on the flight screen. The YAML
	// value may be a mapping of registration to label or a bare list of
	// registrations; both normalize to the same representation at load.
	Watchlist Watchlist `yaml:"watchlist"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// LocationConfig is the observer's position.
type LocationConfig struct {
	// Latitude in decimal degrees (-90 to +90)
	Latitude float64 `yaml:"latitude"`

	// Longitude in decimal degrees (-180 to +180)
	Longitude float64 `yaml:"longitude"`

	// Name is a friendly label shown on the idle screen
	Name string `yaml:"name"`
}

// WeatherConfig controls the weather source.
type WeatherConfig struct {
	// UpdateIntervalSeconds is the weather cache window
	UpdateIntervalSeconds int `yaml:"update_interval_seconds"`
}

// DisplayConfig describes the panel and its sinks.
type DisplayConfig struct {
	// Width and Height of the panel in pixels
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Framebuffer is the primary sink device node. When it does not
	// exist the display runs in simulation mode and writes PreviewPath.
	Framebuffer string `yaml:"framebuffer"`

	// PreviewPath receives a PNG of each frame in simulation mode
	PreviewPath string `yaml:"preview_path"`

	// MirrorHDMI enables best-effort mirroring to the HDMI framebuffer
	MirrorHDMI bool `yaml:"mirror_hdmi"`

	// MirrorFramebuffer is the mirror sink device node
	MirrorFramebuffer string `yaml:"mirror_framebuffer"`
}

// StatusConfig controls the local status/metrics HTTP server.
type StatusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the documented default configuration (central London,
// 50 km radius, MHS 3.5" panel on /dev/fb1 mirrored to /dev/fb0).
func Default() *Config {
	return &Config{
		Location: LocationConfig{
			Latitude:  51.5074,
			Longitude: -0.1278,
		},
		FlightRadiusKm:              50,
		FlightUpdateIntervalSeconds: 5,
		Weather: WeatherConfig{
			UpdateIntervalSeconds: 600,
		},
		Display: DisplayConfig{
			Width:             480,
			Height:            320,
			Framebuffer:       "/dev/fb1",
			PreviewPath:       "/tmp/flightdeck-preview.png",
			MirrorHDMI:        true,
			MirrorFramebuffer: "/dev/fb0",
		},
		Status: StatusConfig{
			Enabled: true,
			Addr:    "127.0.0.1:9090",
		},
		LogLevel: "info",
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// default configuration; keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// FlightUpdateInterval returns the poll interval as a Duration.
func (c *Config) FlightUpdateInterval() time.Duration {
	return time.Duration(c.FlightUpdateIntervalSeconds) * time.Second
}

// WeatherCacheDuration returns the weather cache window as a Duration.
func (c *Config) WeatherCacheDuration() time.Duration {
	return time.Duration(c.Weather.UpdateIntervalSeconds) * time.Second
}
