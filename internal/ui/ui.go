// Package ui draws the three flightdeck screens onto a framebuf.Surface:
// a startup splash, the flight detail view and the clock/weather idle
// view. Screens are pure drawing; all data arrives as arguments and the
// only ambient input is the injected clock.
package ui

import (
	"fmt"
	"net"

	"github.com/jonboulle/clockwork"

	"github.com/unklstewy/flightdeck/pkg/airports"
	"github.com/unklstewy/flightdeck/pkg/config"
	"github.com/unklstewy/flightdeck/pkg/fr24"
	"github.com/unklstewy/flightdeck/pkg/framebuf"
	"github.com/unklstewy/flightdeck/pkg/openmeteo"
)

// weatherPages is how many idle-screen detail pages rotate, and
// pageCycleSeconds how long each one is shown.
const (
	weatherPages     = 3
	pageCycleSeconds = 5
)

// Screens renders onto a single surface owned by the render loop.
type Screens struct {
	surface *framebuf.Surface
	clock   clockwork.Clock
	width   int
	height  int
}

// New wires the screen set to its surface. The clock drives the idle
// page rotation; pass a fake in tests.
func New(surface *framebuf.Surface, clock clockwork.Clock) *Screens {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	w, h := surface.Size()
	return &Screens{surface: surface, clock: clock, width: w, height: h}
}

// Loading draws the startup splash with a status line.
func (s *Screens) Loading(status string) {
	s.surface.Clear(colorBackground)

	logoX, logoY := s.width/2, 80
	s.surface.AircraftIcon(logoX, logoY, 0, 60, colorAccent)
	for _, radius := range []int{70, 85, 100} {
		s.surface.StrokeCircle(logoX, logoY, radius, colorDivider)
	}

	s.surface.CenteredText("Flight Deck", 160, framebuf.FontLarge, colorTextPrimary)
	s.surface.CenteredText(status, 210, framebuf.FontMedium, colorAccent)
	s.surface.Line(100, 245, s.width-100, 245, colorDivider)
	s.surface.CenteredText("Raspberry Pi Flight Display", 260, framebuf.FontSmall, colorTextSecondary)

	s.surface.Text(localIP(), s.width-10, s.height-10,
		framebuf.FontSmall, colorTextSecondary, framebuf.AnchorBottomRight)
}

// Flight draws the detail view for one aircraft. index and count
// describe the position in the sorted nearby list; watched aircraft get
// the magenta treatment.
func (s *Screens) Flight(flight fr24.Flight, index, count int, radiusKm float64, watchlist config.Watchlist) {
	label, watched := watchlist.Match(flight.Registration)

	background := colorBackground
	headerBG := colorHeaderBG
	if watched {
		background = colorWatchlistBG
		headerBG = colorHeaderWatchedBG
	}
	s.surface.Clear(background)

	// Header bar: position in the list and the search radius.
	s.surface.FillRect(0, 0, s.width, 35, headerBG)
	s.surface.StrokeRect(0, 0, s.width, 35, colorDivider)
	header := fmt.Sprintf("1 flight in %.0f km radius", radiusKm)
	if count > 1 {
		header = fmt.Sprintf("%d/%d flights in %.0f km radius (tap to cycle)",
			index+1, count, radiusKm)
	}
	s.surface.Text(header, 10, 8, framebuf.FontSmall, colorTextSecondary, framebuf.AnchorTopLeft)
	s.surface.Text(fmt.Sprintf("%.1f km", flight.DistanceKm), s.width-10, 8,
		framebuf.FontSmall, colorAccent, framebuf.AnchorTopRight)

	flightNum := flight.FlightNumber
	if flightNum == "" {
		flightNum = flight.Callsign
	}
	s.surface.CenteredText(flightNum, 50, framebuf.FontLarge, colorTextPrimary)
	s.surface.CenteredText(flight.Airline, 105, framebuf.FontMedium, colorAccent)

	route := fmt.Sprintf("%s  →  %s", flight.Origin, flight.Destination)
	s.surface.CenteredText(route, 135, framebuf.FontMedium, colorTextPrimary)

	originCity := airports.City(flight.Origin)
	destCity := airports.City(flight.Destination)
	if originCity != "" || destCity != "" {
		if originCity == "" {
			originCity = flight.Origin
		}
		if destCity == "" {
			destCity = flight.Destination
		}
		s.surface.CenteredText(fmt.Sprintf("%s  →  %s", originCity, destCity),
			158, framebuf.FontSmall, colorTextSecondary)
	}

	s.surface.Line(20, 192, s.width-20, 192, colorDivider)

	// ALT / SPD / HDG columns.
	detailY := 210
	glyph, _ := verticalIndicator(flight.VerticalSpeedFPM)
	s.surface.Text("ALT", 30, detailY, framebuf.FontSmall, colorTextSecondary, framebuf.AnchorTopLeft)
	s.surface.Text(fmt.Sprintf("%s %s", glyph, formatAltitude(flight.AltitudeFt)),
		30, detailY+20, framebuf.FontMedium, altitudeColor(flight.AltitudeFt), framebuf.AnchorTopLeft)

	s.surface.Text("SPD", s.width/2-30, detailY, framebuf.FontSmall, colorTextSecondary, framebuf.AnchorTopLeft)
	s.surface.Text(fmt.Sprintf("%d kts", flight.GroundSpeedKt),
		s.width/2-30, detailY+20, framebuf.FontMedium, colorTextPrimary, framebuf.AnchorTopLeft)

	s.surface.Text("HDG", s.width-100, detailY, framebuf.FontSmall, colorTextSecondary, framebuf.AnchorTopLeft)
	s.surface.Text(fmt.Sprintf("%03d°", flight.Heading),
		s.width-100, detailY+20, framebuf.FontMedium, colorTextPrimary, framebuf.AnchorTopLeft)

	s.surface.Line(20, 265, s.width-20, 265, colorDivider)
	s.surface.Text(fmt.Sprintf("Aircraft: %s", flight.AircraftType),
		30, 280, framebuf.FontSmall, colorTextSecondary, framebuf.AnchorTopLeft)

	if flight.Registration != "" {
		regColor := colorTextSecondary
		regText := flight.Registration
		if watched {
			regColor = colorWatchlist
			regText = "★ " + flight.Registration
		}
		s.surface.Text(regText, s.width-30, 280, framebuf.FontSmall, regColor, framebuf.AnchorTopRight)
	}

	iconColor := colorAccent
	if watched {
		iconColor = colorWatchlist
	}
	s.surface.AircraftIcon(s.width-50, 70, flight.Heading, 40, iconColor)

	if watched {
		banner := "★ WATCHLIST ★"
		if label != "" {
			banner = fmt.Sprintf("★ %s ★", label)
		}
		s.surface.Text(banner, 10, s.height-8,
			framebuf.FontSmall, colorWatchlist, framebuf.AnchorBottomLeft)
	}

	s.surface.Text("flightradar24.com", s.width-10, s.height-8,
		framebuf.FontSmall, colorDivider, framebuf.AnchorBottomRight)
}

// Idle draws the clock, date and weather view shown when the sky is
// quiet. weather may be nil.
func (s *Screens) Idle(weather *openmeteo.Snapshot, locationName string) {
	s.surface.Clear(colorBackground)

	now := s.clock.Now()
	s.surface.CenteredText(now.Format("15:04"), 30, framebuf.FontLarge, colorTextPrimary)
	s.surface.CenteredText(now.Format("Monday, January 02"), 90, framebuf.FontMedium, colorAccent)
	s.surface.Line(50, 125, s.width-50, 125, colorDivider)

	if weather == nil {
		s.surface.CenteredText("Weather unavailable", 170, framebuf.FontMedium, colorTextSecondary)
		if locationName != "" {
			s.surface.CenteredText(locationName, 210, framebuf.FontSmall, colorTextSecondary)
		}
	} else {
		page := s.idlePage()

		s.surface.CenteredText(fmt.Sprintf("%.1f°C", weather.TemperatureC),
			135, framebuf.FontLarge, temperatureColor(weather.TemperatureC))
		s.surface.CenteredText(weather.Description, 185, framebuf.FontMedium, colorTextPrimary)

		switch page {
		case 0:
			s.surface.CenteredText(fmt.Sprintf("Feels like %.1f°C", weather.FeelsLikeC),
				212, framebuf.FontSmall, colorTextSecondary)
			wind := fmt.Sprintf("Wind: %s %.0f km/h",
				openmeteo.CompassPoint(weather.WindDirectionDeg), weather.WindSpeedKmh)
			s.surface.Text(wind, 30, 235, framebuf.FontSmall, colorTextSecondary, framebuf.AnchorTopLeft)
			s.surface.Text(fmt.Sprintf("Humidity: %d%%", weather.Humidity),
				s.width-30, 235, framebuf.FontSmall, colorTextSecondary, framebuf.AnchorTopRight)
		case 1:
			s.surface.CenteredText(
				fmt.Sprintf("High: %.1f°C  Low: %.1f°C", weather.TempMaxC, weather.TempMinC),
				212, framebuf.FontSmall, colorTextSecondary)
			s.surface.Text(fmt.Sprintf("Precip: %.1f mm", weather.PrecipitationMm),
				30, 235, framebuf.FontSmall, colorAccent, framebuf.AnchorTopLeft)
			s.surface.Text(fmt.Sprintf("Pressure: %.0f hPa", weather.PressureHPa),
				s.width-30, 235, framebuf.FontSmall, colorTextSecondary, framebuf.AnchorTopRight)
		case 2:
			wind := fmt.Sprintf("Wind: %s %.0f km/h",
				openmeteo.CompassPoint(weather.WindDirectionDeg), weather.WindSpeedKmh)
			s.surface.Text(wind, 30, 212, framebuf.FontSmall, colorTextSecondary, framebuf.AnchorTopLeft)
			s.surface.Text(fmt.Sprintf("Gusts: %.0f km/h", weather.WindGustsKmh),
				s.width-30, 212, framebuf.FontSmall, colorTextSecondary, framebuf.AnchorTopRight)
			if weather.Sunrise != "" && weather.Sunset != "" {
				s.surface.Text(fmt.Sprintf("Sunrise: %s", weather.Sunrise),
					30, 235, framebuf.FontSmall, colorTempWarm, framebuf.AnchorTopLeft)
				s.surface.Text(fmt.Sprintf("Sunset: %s", weather.Sunset),
					s.width-30, 235, framebuf.FontSmall, colorAccent, framebuf.AnchorTopRight)
			}
		}

		footer := fmt.Sprintf("[%d/%d]", page+1, weatherPages)
		if locationName != "" {
			footer = fmt.Sprintf("%s  %s", locationName, footer)
		}
		s.surface.CenteredText(footer, 265, framebuf.FontSmall, colorTextSecondary)
	}

	s.surface.Text("Scanning for flights...", 10, s.height-20,
		framebuf.FontSmall, colorDivider, framebuf.AnchorTopLeft)
}

// idlePage picks the rotating weather page purely from the clock, so
// the screen cycles even when nothing else changes.
func (s *Screens) idlePage() int {
	return int(s.clock.Now().Unix()/pageCycleSeconds) % weatherPages
}

// formatAltitude shortens high altitudes to thousands of feet.
func formatAltitude(altitudeFt int) string {
	if altitudeFt >= 1000 {
		return fmt.Sprintf("%dk ft", altitudeFt/1000)
	}
	return fmt.Sprintf("%d ft", altitudeFt)
}

// localIP finds the address the default route would use. Dialing UDP
// sends no packets; it only binds a source address.
func localIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "No network"
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "No network"
}
