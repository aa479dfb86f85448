package fr24

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/unklstewy/flightdeck/pkg/geo"
)

// DefaultBaseURL is the public FlightRadar24 feed endpoint (no auth).
const DefaultBaseURL = "https://data-cloud.flightradar24.com/zones/fcgi/feed.js"

// userAgent mimics a browser; the feed rejects obvious bot agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const requestTimeout = 15 * time.Second

// Client queries the FlightRadar24 public feed.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// limiter paces feed requests; the feed has no published limit but
	// one request per second is well clear of trouble.
	limiter *rate.Limiter

	logger *slog.Logger
}

// NewClient creates a feed client. baseURL is normally DefaultBaseURL and
// overridden only in tests.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:  logger.With("component", "fr24"),
	}
}

// Nearby returns all aircraft within radiusKm of the observer, sorted
// ascending by distance. It never fails past this boundary: network or
// decode trouble is logged and yields an empty result for this cycle.
func (c *Client) Nearby(ctx context.Context, lat, lon, radiusKm float64) []Flight {
	flights, err := c.fetch(ctx, lat, lon, radiusKm)
	if err != nil {
		c.logger.Warn("flight fetch failed", "error", err)
		return nil
	}
	return flights
}

func (c *Client) fetch(ctx context.Context, lat, lon, radiusKm float64) ([]Flight, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	box := geo.BoundingBox(lat, lon, radiusKm)

	params := url.Values{
		"bounds":    {fmt.Sprintf("%.2f,%.2f,%.2f,%.2f", box.North, box.South, box.West, box.East)},
		"faa":       {"1"},
		"satellite": {"1"},
		"mlat":      {"1"},
		"flarm":     {"1"},
		"adsb":      {"1"},
		"gnd":       {"0"}, // exclude ground vehicles
		"air":       {"1"},
		"vehicles":  {"0"},
		"estimated": {"1"},
		"gliders":   {"1"},
		"stats":     {"0"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch flights: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, body)
	}

	// Top-level values are either metadata (full_count, version, stats)
	// or one positional array per aircraft.
	var feed map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parse feed response: %w", err)
	}

	flights := make([]Flight, 0, len(feed))
	for _, raw := range feed {
		var entry []any
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue // metadata key
		}
		flight, ok := decodeRecord(entry, lat, lon, radiusKm)
		if !ok {
			continue
		}
		flights = append(flights, flight)
	}

	sort.Slice(flights, func(i, j int) bool {
		return flights[i].DistanceKm < flights[j].DistanceKm
	})

	return flights, nil
}

// Positions of the fields within a feed record. The schema is implicit;
// these indices are the only place it is written down.
const (
	idxLatitude      = 1
	idxLongitude     = 2
	idxHeading       = 3
	idxAltitude      = 4
	idxGroundSpeed   = 5
	idxSquawk        = 6
	idxAircraftType  = 8
	idxRegistration  = 9
	idxOrigin        = 11
	idxDestination   = 12
	idxFlightNumber  = 13
	idxVerticalSpeed = 15
	idxCallsign      = 16
	idxAirline       = 18

	// minRecordLen is the shortest array accepted as an aircraft record.
	minRecordLen = 14
)

// decodeRecord turns one positional feed array into a Flight. It returns
// false for metadata, records without a position, and records outside the
// radius. Individual malformed fields fall back to zero values rather than
// rejecting the record.
func decodeRecord(entry []any, obsLat, obsLon, radiusKm float64) (Flight, bool) {
	if len(entry) < minRecordLen {
		return Flight{}, false
	}

	lat := floatAt(entry, idxLatitude)
	lon := floatAt(entry, idxLongitude)

	// (0,0) is the feed's sentinel for "no position"
	if lat == 0 && lon == 0 {
		return Flight{}, false
	}

	distance := geo.Distance(obsLat, obsLon, lat, lon)
	if distance > radiusKm {
		return Flight{}, false
	}

	flightNumber := stringAt(entry, idxFlightNumber)
	callsign := stringAt(entry, idxCallsign)
	if callsign == "" {
		callsign = flightNumber
	}
	if flightNumber == "" {
		flightNumber = callsign
	}
	if flightNumber == "" {
		flightNumber = "Unknown"
	}

	aircraftType := stringAt(entry, idxAircraftType)
	if aircraftType == "" {
		aircraftType = "Unknown"
	}
	origin := stringAt(entry, idxOrigin)
	if origin == "" {
		origin = "???"
	}
	destination := stringAt(entry, idxDestination)
	if destination == "" {
		destination = "???"
	}

	return Flight{
		FlightNumber:     flightNumber,
		Callsign:         callsign,
		AircraftType:     aircraftType,
		Airline:          stringAt(entry, idxAirline),
		Origin:           origin,
		Destination:      destination,
		AltitudeFt:       intAt(entry, idxAltitude),
		GroundSpeedKt:    intAt(entry, idxGroundSpeed),
		Heading:          intAt(entry, idxHeading),
		Latitude:         lat,
		Longitude:        lon,
		VerticalSpeedFPM: intAt(entry, idxVerticalSpeed),
		DistanceKm:       math.Round(distance*10) / 10,
		Registration:     stringAt(entry, idxRegistration),
		Squawk:           stringAt(entry, idxSquawk),
	}, true
}

// stringAt returns the string at index i, or "" when the index is out of
// range or the value is not a string.
func stringAt(entry []any, i int) string {
	if i >= len(entry) {
		return ""
	}
	s, _ := entry[i].(string)
	return s
}

// floatAt returns the number at index i, tolerating the feed's occasional
// habit of quoting numeric fields.
func floatAt(entry []any, i int) float64 {
	if i >= len(entry) {
		return 0
	}
	switch v := entry[i].(type) {
	case float64:
		return v
	case string:
		var f float64
		if _, err := fmt.Sscanf(v, "%f", &f); err == nil {
			return f
		}
	}
	return 0
}

func intAt(entry []any, i int) int {
	return int(floatAt(entry, i))
}
