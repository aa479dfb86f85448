// Package openmeteo fetches current conditions from the Open-Meteo
// forecast API (free, no key) and caches the most recent successful
// snapshot for a configurable window.
package openmeteo

import (
	"math"
	"time"
)

// Snapshot is the current weather at the observer's location. One cached
// instance exists at a time; it is replaced on a successful fetch and
// retained stale when a fetch fails.
type Snapshot struct {
	// TemperatureC is the air temperature in Celsius
	TemperatureC float64

	// TemperatureF is derived from TemperatureC, rounded to 0.1
	TemperatureF float64

	// FeelsLikeC is the apparent temperature in Celsius
	FeelsLikeC float64

	// Humidity is the relative humidity in percent
	Humidity int

	// WindSpeedKmh is the 10 m wind speed in km/h
	WindSpeedKmh float64

	// WindDirectionDeg is the wind direction in degrees (0-360)
	WindDirectionDeg int

	// WindGustsKmh is the 10 m gust speed in km/h
	WindGustsKmh float64

	// PressureHPa is the surface pressure in hectopascals
	PressureHPa float64

	// WeatherCode is the WMO weather interpretation code
	WeatherCode int

	// Description is the human-readable form of WeatherCode,
	// "Unknown" for unmapped codes
	Description string

	// IsDay reports whether the sun is up
	IsDay bool

	// Sunrise and Sunset are local times in "HH:MM" form
	Sunrise string
	Sunset  string

	// TempMaxC and TempMinC are today's forecast extremes in Celsius
	TempMaxC float64
	TempMinC float64

	// PrecipitationMm is today's precipitation total in millimeters
	PrecipitationMm float64

	// FetchedAt is when this snapshot was retrieved
	FetchedAt time.Time
}

// compassPoints are the 16 points of the compass rose, clockwise from north.
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassPoint maps a wind direction in degrees to one of the 16 points
// of the compass rose.
func CompassPoint(degrees int) string {
	idx := int(math.Round(float64(degrees)/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}

// Glyph returns a short display tag for a weather code, for layouts too
// small for the full description.
func Glyph(code int, isDay bool) string {
	switch {
	case code == 0:
		if isDay {
			return "SUN"
		}
		return "MOON"
	case code == 1 || code == 2:
		return "PCLD"
	case code == 3:
		return "CLDY"
	case code == 45 || code == 48:
		return "FOG"
	case code >= 51 && code <= 57:
		return "DRZL"
	case (code >= 61 && code <= 67) || (code >= 80 && code <= 82):
		return "RAIN"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return "SNOW"
	case code == 95 || code == 96 || code == 99:
		return "STRM"
	default:
		return "????"
	}
}
