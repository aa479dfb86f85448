package fr24

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	obsLat   = 51.5074
	obsLon   = -0.1278
	radiusKm = 50.0
)

// record builds a full 19-element feed array the way the live feed emits
// them: [icao, lat, lon, heading, alt, gs, squawk, radar, type, reg, ts,
// origin, dest, flightnum, _, vspeed, callsign, _, airline].
func record(lat, lon float64, flightNum, callsign string) []any {
	return []any{
		"4ca1fa", lat, lon, 135.0, 35000.0, 450.0, "1234", "T-EGLL",
		"A320", "G-EUPT", 1700000000.0, "LHR", "CDG", flightNum,
		0.0, -64.0, callsign, 0.0, "British Airways",
	}
}

func feedServer(t *testing.T, feed map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("bounds"))
		assert.Equal(t, "0", r.URL.Query().Get("gnd"))
		require.NoError(t, json.NewEncoder(w).Encode(feed))
	}))
}

func TestNearby(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Includes aircraft inside the radius", func(t *testing.T) {
		server := feedServer(t, map[string]any{
			"full_count": 12345,
			"version":    4,
			"4ca1fa":     record(obsLat+0.1, obsLon+0.1, "BA123", "BAW123"),
		})
		defer server.Close()

		client := NewClient(server.URL, logger)
		flights := client.Nearby(context.Background(), obsLat, obsLon, radiusKm)

		require.Len(t, flights, 1)
		f := flights[0]
		assert.Equal(t, "BA123", f.FlightNumber)
		assert.Equal(t, "BAW123", f.Callsign)
		assert.Equal(t, "A320", f.AircraftType)
		assert.Equal(t, "British Airways", f.Airline)
		assert.Equal(t, "LHR", f.Origin)
		assert.Equal(t, "CDG", f.Destination)
		assert.Equal(t, 35000, f.AltitudeFt)
		assert.Equal(t, 450, f.GroundSpeedKt)
		assert.Equal(t, 135, f.Heading)
		assert.Equal(t, -64, f.VerticalSpeedFPM)
		assert.Equal(t, "G-EUPT", f.Registration)
		assert.Equal(t, "1234", f.Squawk)
		// 0.1 degrees of both lat and lon is 11-13 km at this latitude
		assert.GreaterOrEqual(t, f.DistanceKm, 11.0)
		assert.LessOrEqual(t, f.DistanceKm, 13.0)
	})

	t.Run("Drops aircraft beyond the radius", func(t *testing.T) {
		server := feedServer(t, map[string]any{
			"near": record(obsLat+0.1, obsLon, "BA1", "BAW1"),
			"far":  record(obsLat+2.0, obsLon, "BA2", "BAW2"), // ~222 km north
		})
		defer server.Close()

		client := NewClient(server.URL, logger)
		flights := client.Nearby(context.Background(), obsLat, obsLon, radiusKm)

		require.Len(t, flights, 1)
		assert.Equal(t, "BA1", flights[0].FlightNumber)
	})

	t.Run("Drops aircraft at the 0,0 position sentinel", func(t *testing.T) {
		server := feedServer(t, map[string]any{
			"ghost": record(0, 0, "GHOST1", ""),
		})
		defer server.Close()

		// Observer near (0,0) so the sentinel would otherwise be in range
		client := NewClient(server.URL, logger)
		flights := client.Nearby(context.Background(), 0.01, 0.01, radiusKm)

		assert.Empty(t, flights)
	})

	t.Run("Sorts ascending by distance", func(t *testing.T) {
		server := feedServer(t, map[string]any{
			"c": record(obsLat+0.30, obsLon, "FAR", "FAR"),
			"a": record(obsLat+0.05, obsLon, "NEAR", "NEAR"),
			"b": record(obsLat+0.15, obsLon, "MID", "MID"),
		})
		defer server.Close()

		client := NewClient(server.URL, logger)
		flights := client.Nearby(context.Background(), obsLat, obsLon, radiusKm)

		require.Len(t, flights, 3)
		assert.Equal(t, "NEAR", flights[0].FlightNumber)
		assert.Equal(t, "MID", flights[1].FlightNumber)
		assert.Equal(t, "FAR", flights[2].FlightNumber)
		assert.True(t, sort.SliceIsSorted(flights, func(i, j int) bool {
			return flights[i].DistanceKm < flights[j].DistanceKm
		}))
	})

	t.Run("Skips metadata and malformed entries", func(t *testing.T) {
		short := []any{"4ca1fa", obsLat + 0.1, obsLon, 90.0} // too few fields
		server := feedServer(t, map[string]any{
			"full_count": 9999,
			"version":    4,
			"stats":      map[string]any{"total": map[string]any{"adsb": 1}},
			"bad":        short,
			"good":       record(obsLat+0.1, obsLon, "OK1", "OK1"),
		})
		defer server.Close()

		client := NewClient(server.URL, logger)
		flights := client.Nearby(context.Background(), obsLat, obsLon, radiusKm)

		require.Len(t, flights, 1)
		assert.Equal(t, "OK1", flights[0].FlightNumber)
	})

	t.Run("Yields empty on server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, logger)
		assert.Empty(t, client.Nearby(context.Background(), obsLat, obsLon, radiusKm))
	})

	t.Run("Yields empty on unparseable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewClient(server.URL, logger)
		assert.Empty(t, client.Nearby(context.Background(), obsLat, obsLon, radiusKm))
	})

	t.Run("Yields empty when the feed is unreachable", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", logger)
		assert.Empty(t, client.Nearby(context.Background(), obsLat, obsLon, radiusKm))
	})
}

func TestDecodeRecord(t *testing.T) {
	t.Run("Flight number falls back to callsign", func(t *testing.T) {
		f, ok := decodeRecord(record(obsLat+0.1, obsLon, "", "BAW123"), obsLat, obsLon, radiusKm)
		require.True(t, ok)
		assert.Equal(t, "BAW123", f.FlightNumber)
	})

	t.Run("Flight number falls back to Unknown", func(t *testing.T) {
		f, ok := decodeRecord(record(obsLat+0.1, obsLon, "", ""), obsLat, obsLon, radiusKm)
		require.True(t, ok)
		assert.Equal(t, "Unknown", f.FlightNumber)
	})

	t.Run("Missing airports default to question marks", func(t *testing.T) {
		entry := record(obsLat+0.1, obsLon, "BA123", "BAW123")
		entry[idxOrigin] = ""
		entry[idxDestination] = ""
		entry[idxAircraftType] = ""

		f, ok := decodeRecord(entry, obsLat, obsLon, radiusKm)
		require.True(t, ok)
		assert.Equal(t, "???", f.Origin)
		assert.Equal(t, "???", f.Destination)
		assert.Equal(t, "Unknown", f.AircraftType)
	})

	t.Run("Tolerates quoted numbers", func(t *testing.T) {
		entry := record(obsLat+0.1, obsLon, "BA123", "BAW123")
		entry[idxAltitude] = "35000"

		f, ok := decodeRecord(entry, obsLat, obsLon, radiusKm)
		require.True(t, ok)
		assert.Equal(t, 35000, f.AltitudeFt)
	})

	t.Run("Wrong-typed fields fall back to zero values", func(t *testing.T) {
		entry := record(obsLat+0.1, obsLon, "BA123", "BAW123")
		entry[idxGroundSpeed] = map[string]any{"weird": true}
		entry[idxRegistration] = 42.0

		f, ok := decodeRecord(entry, obsLat, obsLon, radiusKm)
		require.True(t, ok)
		assert.Zero(t, f.GroundSpeedKt)
		assert.Empty(t, f.Registration)
	})

	t.Run("Distance is rounded to a tenth", func(t *testing.T) {
		f, ok := decodeRecord(record(obsLat+0.1, obsLon+0.1, "BA123", "BAW123"), obsLat, obsLon, radiusKm)
		require.True(t, ok)
		tenths := f.DistanceKm * 10
		assert.InDelta(t, math.Round(tenths), tenths, 1e-9)
	})
}
