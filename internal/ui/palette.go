package ui

import "image/color"

// Screen palette. High-contrast colors chosen for a small TFT viewed
// from across a room.
var (
	colorBackground    = color.RGBA{A: 0xFF}
	colorTextPrimary   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorTextSecondary = color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF}
	colorAccent        = color.RGBA{G: 0xAA, B: 0xFF, A: 0xFF}
	colorDivider       = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}

	colorAltitudeHigh = color.RGBA{G: 0xFF, A: 0xFF}
	colorAltitudeMed  = color.RGBA{R: 0xFF, G: 0xFF, A: 0xFF}
	colorAltitudeLow  = color.RGBA{R: 0xFF, G: 0x88, A: 0xFF}
	colorClimbing     = color.RGBA{G: 0xFF, A: 0xFF}
	colorDescending   = color.RGBA{R: 0xFF, G: 0x44, B: 0x44, A: 0xFF}

	colorTempHot  = color.RGBA{R: 0xFF, G: 0x44, B: 0x44, A: 0xFF}
	colorTempWarm = color.RGBA{R: 0xFF, G: 0xAA, A: 0xFF}
	colorTempMild = color.RGBA{R: 0x88, G: 0xFF, B: 0x88, A: 0xFF}
	colorTempCool = color.RGBA{R: 0x88, G: 0xCC, B: 0xFF, A: 0xFF}
	colorTempCold = color.RGBA{R: 0x44, G: 0x88, B: 0xFF, A: 0xFF}

	colorWatchlist   = color.RGBA{R: 0xFF, B: 0xFF, A: 0xFF}
	colorWatchlistBG = color.RGBA{R: 0x33, B: 0x33, A: 0xFF}

	colorHeaderBG        = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}
	colorHeaderWatchedBG = color.RGBA{R: 0x44, G: 0x11, B: 0x44, A: 0xFF}
)

// altitudeColor maps altitude to the cruise/transit/pattern bands.
func altitudeColor(altitudeFt int) color.RGBA {
	switch {
	case altitudeFt > 30000:
		return colorAltitudeHigh
	case altitudeFt > 10000:
		return colorAltitudeMed
	default:
		return colorAltitudeLow
	}
}

// temperatureColor maps degrees Celsius to the idle screen bands.
func temperatureColor(tempC float64) color.RGBA {
	switch {
	case tempC >= 30:
		return colorTempHot
	case tempC >= 20:
		return colorTempWarm
	case tempC >= 10:
		return colorTempMild
	case tempC >= 0:
		return colorTempCool
	default:
		return colorTempCold
	}
}

// verticalIndicator returns the climb/descend glyph and its color. A
// band of +-100 fpm reads as level flight.
func verticalIndicator(verticalSpeedFPM int) (string, color.RGBA) {
	switch {
	case verticalSpeedFPM > 100:
		return "▲", colorClimbing
	case verticalSpeedFPM < -100:
		return "▼", colorDescending
	default:
		return "→", colorTextSecondary
	}
}
