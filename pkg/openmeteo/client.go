package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultBaseURL is the Open-Meteo forecast endpoint.
const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// DefaultCacheDuration is how long a successful snapshot is served
// without touching the network.
const DefaultCacheDuration = 10 * time.Minute

const requestTimeout = 10 * time.Second

// Client fetches current conditions for a fixed location, caching the
// last successful snapshot. Safe for use from multiple goroutines.
type Client struct {
	baseURL    string
	latitude   float64
	longitude  float64
	cacheFor   time.Duration
	httpClient *http.Client
	clock      clockwork.Clock
	logger     *slog.Logger

	mu        sync.Mutex
	cached    *Snapshot
	lastFetch time.Time
}

// Option adjusts a Client at construction time.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithCacheDuration overrides the cache window.
func WithCacheDuration(d time.Duration) Option {
	return func(c *Client) { c.cacheFor = d }
}

// WithClock swaps the time source (tests).
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// NewClient creates a weather client for the given location.
func NewClient(latitude, longitude float64, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:   DefaultBaseURL,
		latitude:  latitude,
		longitude: longitude,
		cacheFor:  DefaultCacheDuration,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		clock:  clockwork.NewRealClock(),
		logger: logger.With("component", "openmeteo"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the current weather, serving the cached snapshot when it
// is younger than the cache window. On a failed fetch the previous
// snapshot is returned unchanged, possibly nil — last known good, or
// nothing.
func (c *Client) Current(ctx context.Context) *Snapshot {
	return c.get(ctx, false)
}

// Refresh bypasses the cache window and fetches now. Failure still falls
// back to the previous snapshot.
func (c *Client) Refresh(ctx context.Context) *Snapshot {
	return c.get(ctx, true)
}

func (c *Client) get(ctx context.Context, force bool) *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if !force && c.cached != nil && now.Sub(c.lastFetch) < c.cacheFor {
		return c.cached
	}

	snapshot, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("weather fetch failed, keeping previous snapshot", "error", err)
		return c.cached
	}

	c.cached = snapshot
	c.lastFetch = now
	return c.cached
}

func (c *Client) fetch(ctx context.Context) (*Snapshot, error) {
	params := url.Values{
		"latitude":  {fmt.Sprintf("%.4f", c.latitude)},
		"longitude": {fmt.Sprintf("%.4f", c.longitude)},
		"current": {strings.Join([]string{
			"temperature_2m",
			"relative_humidity_2m",
			"apparent_temperature",
			"weather_code",
			"wind_speed_10m",
			"wind_direction_10m",
			"wind_gusts_10m",
			"surface_pressure",
			"is_day",
		}, ",")},
		"daily": {strings.Join([]string{
			"sunrise",
			"sunset",
			"temperature_2m_max",
			"temperature_2m_min",
			"precipitation_sum",
		}, ",")},
		"temperature_unit": {"celsius"},
		"wind_speed_unit":  {"kmh"},
		"timezone":         {"auto"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather API returned status %d: %s", resp.StatusCode, body)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse weather response: %w", err)
	}

	tempC := payload.Current.Temperature
	snapshot := &Snapshot{
		TemperatureC:     tempC,
		TemperatureF:     math.Round((tempC*9/5+32)*10) / 10,
		FeelsLikeC:       payload.Current.ApparentTemperature,
		Humidity:         payload.Current.RelativeHumidity,
		WindSpeedKmh:     payload.Current.WindSpeed,
		WindDirectionDeg: payload.Current.WindDirection,
		WindGustsKmh:     payload.Current.WindGusts,
		PressureHPa:      payload.Current.SurfacePressure,
		WeatherCode:      payload.Current.WeatherCode,
		Description:      Describe(payload.Current.WeatherCode),
		IsDay:            payload.Current.IsDay == 1,
		Sunrise:          clockTime(firstOf(payload.Daily.Sunrise)),
		Sunset:           clockTime(firstOf(payload.Daily.Sunset)),
		TempMaxC:         firstOf(payload.Daily.TemperatureMax),
		TempMinC:         firstOf(payload.Daily.TemperatureMin),
		PrecipitationMm:  firstOf(payload.Daily.PrecipitationSum),
		FetchedAt:        c.clock.Now(),
	}
	return snapshot, nil
}

// forecastResponse mirrors the slice of the Open-Meteo response we use.
// Daily fields are arrays with one element per forecast day; today is the
// first element.
type forecastResponse struct {
	Current struct {
		Temperature         float64 `json:"temperature_2m"`
		RelativeHumidity    int     `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		WindDirection       int     `json:"wind_direction_10m"`
		WindGusts           float64 `json:"wind_gusts_10m"`
		SurfacePressure     float64 `json:"surface_pressure"`
		IsDay               int     `json:"is_day"`
	} `json:"current"`
	Daily struct {
		Sunrise          []string  `json:"sunrise"`
		Sunset           []string  `json:"sunset"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func firstOf[T any](values []T) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	return values[0]
}

// clockTime extracts "HH:MM" from an ISO-8601 local timestamp such as
// "2024-01-15T07:45". Returns "" when the timestamp has no time part.
func clockTime(iso string) string {
	_, after, found := strings.Cut(iso, "T")
	if !found || len(after) < 5 {
		return ""
	}
	return after[:5]
}
