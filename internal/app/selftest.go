package app

import (
	"context"
	"time"

	"github.com/unklstewy/flightdeck/pkg/fr24"
)

// sampleFlight is the canned aircraft used by the display self test.
func sampleFlight(lat, lon float64) fr24.Flight {
	return fr24.Flight{
		FlightNumber:  "BA123",
		Callsign:      "BAW123",
		AircraftType:  "A320",
		Airline:       "British Airways",
		Origin:        "LHR",
		Destination:   "CDG",
		AltitudeFt:    35000,
		GroundSpeedKt: 450,
		Heading:       135,
		Latitude:      lat + 0.1,
		Longitude:     lon + 0.1,
		DistanceKm:    12.5,
		Registration:  "G-EUPT",
		Squawk:        "1234",
	}
}

// SelfTest renders the flight screen with canned data, then the idle
// screen with live weather, holding each for five seconds. Used to
// verify panel wiring without waiting for an aircraft.
func (a *App) SelfTest(ctx context.Context) error {
	a.logger.Info("display self test, flight screen")
	a.screens.Flight(sampleFlight(a.cfg.Location.Latitude, a.cfg.Location.Longitude),
		0, 3, a.cfg.FlightRadiusKm, a.cfg.Watchlist)
	a.push()
	a.clock.Sleep(5 * time.Second)

	a.logger.Info("display self test, idle screen")
	a.screens.Idle(a.weather.Current(ctx), a.cfg.Location.Name)
	a.push()
	a.clock.Sleep(5 * time.Second)

	a.logger.Info("display self test complete")
	return a.display.Close()
}
