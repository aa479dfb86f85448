// Package fr24 fetches live aircraft positions from the public
// FlightRadar24 feed and turns them into Flight snapshots around a fixed
// observer. The feed is an undocumented JSON object whose aircraft values
// are fixed-length positional arrays; all knowledge of the array layout
// lives in decodeRecord.
package fr24

// Flight is a snapshot of one aircraft near the observer. Snapshots are
// rebuilt wholesale on every poll; no identity is carried across polls.
type Flight struct {
	// FlightNumber is the commercial flight number (e.g. "BA123"). Falls
	// back to the callsign, then to "Unknown", when the feed omits it.
	FlightNumber string

	// Callsign is the ATC callsign (e.g. "BAW123")
	Callsign string

	// AircraftType is the ICAO type designator (e.g. "A320")
	AircraftType string

	// Airline is the operating airline name, may be empty
	Airline string

	// Origin is the IATA code of the departure airport, "???" if unknown
	Origin string

	// Destination is the IATA code of the arrival airport, "???" if unknown
	Destination string

	// AltitudeFt is the barometric altitude in feet
	AltitudeFt int

	// GroundSpeedKt is the ground speed in knots
	GroundSpeedKt int

	// Heading is the ground track in degrees (0-359)
	Heading int

	// Latitude in decimal degrees
	Latitude float64

	// Longitude in decimal degrees
	Longitude float64

	// VerticalSpeedFPM is the vertical rate in feet per minute
	// (positive = climbing, negative = descending)
	VerticalSpeedFPM int

	// DistanceKm is the great-circle distance from the observer,
	// rounded to 0.1 km
	DistanceKm float64

	// Registration is the airframe registration (e.g. "G-EUPT")
	Registration string

	// Squawk is the transponder code
	Squawk string
}
