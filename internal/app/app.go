// Package app runs the flightdeck state machine: poll the flight feed
// on its interval, show the closest-first flight list or the clock and
// weather when the sky is empty, and cycle flights on screen taps. One
// goroutine owns the surface and all rendering; taps and shutdown reach
// it through channels.
package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/unklstewy/flightdeck/internal/status"
	"github.com/unklstewy/flightdeck/internal/ui"
	"github.com/unklstewy/flightdeck/pkg/config"
	"github.com/unklstewy/flightdeck/pkg/fr24"
	"github.com/unklstewy/flightdeck/pkg/framebuf"
	"github.com/unklstewy/flightdeck/pkg/openmeteo"
	"github.com/unklstewy/flightdeck/pkg/touch"
)

// FlightSource yields the aircraft near the observer, closest first.
type FlightSource interface {
	Nearby(ctx context.Context, lat, lon, radiusKm float64) []fr24.Flight
}

// WeatherSource yields the cached weather snapshot, nil when none has
// ever been fetched.
type WeatherSource interface {
	Current(ctx context.Context) *openmeteo.Snapshot
}

// FrameSink receives finished frames.
type FrameSink interface {
	Push(img *image.RGBA) error
	Close() error
}

// TapListener feeds screen taps to the loop.
type TapListener interface {
	Start()
	Stop()
	Taps() <-chan touch.Tap
}

// Options wires the application together. Clock and Logger default to
// the real ones.
type Options struct {
	Config   *config.Config
	Flights  FlightSource
	Weather  WeatherSource
	Surface  *framebuf.Surface
	Display  FrameSink
	Listener TapListener // nil when no touchscreen is present
	Metrics  *status.Metrics
	Clock    clockwork.Clock
	Logger   *slog.Logger
}

// App is the orchestrator. Construct with New, drive with Run.
type App struct {
	cfg      *config.Config
	flights  FlightSource
	weather  WeatherSource
	surface  *framebuf.Surface
	screens  *ui.Screens
	display  FrameSink
	listener TapListener
	debounce *touch.Debouncer
	metrics  *status.Metrics
	clock    clockwork.Clock
	logger   *slog.Logger

	// mu guards the fields below, which the status server reads from
	// other goroutines.
	mu       sync.Mutex
	nearby   []fr24.Flight
	selected int
	lastPoll time.Time
}

// New builds the application.
func New(opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewMetrics()
	}

	return &App{
		cfg:      opts.Config,
		flights:  opts.Flights,
		weather:  opts.Weather,
		surface:  opts.Surface,
		screens:  ui.New(opts.Surface, opts.Clock),
		display:  opts.Display,
		listener: opts.Listener,
		debounce: touch.NewDebouncer(touch.DefaultDebounceWindow, opts.Clock),
		metrics:  opts.Metrics,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
}

// Run executes the startup sequence and the once-per-second loop until
// the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.screens.Loading("Initializing...")
	a.push()

	if a.listener != nil {
		a.listener.Start()
		a.logger.Info("touch input enabled, tap to cycle flights")
	} else {
		a.logger.Info("touch input not available")
	}

	a.screens.Loading("Fetching weather...")
	a.push()
	if weather := a.weather.Current(ctx); weather != nil {
		a.logger.Info("weather primed",
			"temperature_c", weather.TemperatureC,
			"conditions", weather.Description)
	} else {
		a.logger.Warn("weather data unavailable")
	}

	a.screens.Loading("Scanning for flights...")
	a.push()
	a.clock.Sleep(time.Second)

	ticker := a.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return nil
		case <-ticker.Chan():
			a.tick(ctx)
		}
	}
}

// tick is one loop iteration. A panic inside an iteration is logged and
// absorbed; the next tick carries on with the previous state.
func (a *App) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("render iteration panicked", "panic", fmt.Sprint(r))
		}
	}()

	a.drainTaps()
	a.maybePoll(ctx)

	a.mu.Lock()
	nearby := a.nearby
	selected := a.selected
	a.mu.Unlock()

	if len(nearby) > 0 {
		a.screens.Flight(nearby[selected], selected, len(nearby),
			a.cfg.FlightRadiusKm, a.cfg.Watchlist)
	} else {
		a.screens.Idle(a.weather.Current(ctx), a.cfg.Location.Name)
	}
	a.push()
}

// drainTaps consumes every queued tap, advancing the selected flight
// once per debounced tap.
func (a *App) drainTaps() {
	if a.listener == nil {
		return
	}
	for {
		select {
		case <-a.listener.Taps():
			if !a.debounce.Allow() {
				continue
			}
			a.metrics.TapsTotal.Inc()
			a.advance()
		default:
			return
		}
	}
}

// advance moves to the next flight in the list, wrapping around.
func (a *App) advance() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.nearby) > 1 {
		a.selected = (a.selected + 1) % len(a.nearby)
		a.logger.Debug("tap advanced flight",
			"index", a.selected+1, "count", len(a.nearby))
	}
}

// maybePoll re-polls the feed once the configured interval has passed.
// The selected index resets when the list size changes and is always
// clamped into the new list.
func (a *App) maybePoll(ctx context.Context) {
	a.mu.Lock()
	due := a.lastPoll.IsZero() ||
		a.clock.Now().Sub(a.lastPoll) >= a.cfg.FlightUpdateInterval()
	a.mu.Unlock()
	if !due {
		return
	}

	a.metrics.PollsTotal.Inc()
	nearby := a.flights.Nearby(ctx,
		a.cfg.Location.Latitude, a.cfg.Location.Longitude, a.cfg.FlightRadiusKm)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastPoll = a.clock.Now()
	if len(nearby) != len(a.nearby) {
		a.selected = 0
	}
	if a.selected >= len(nearby) {
		a.selected = 0
	}
	a.nearby = nearby
	a.metrics.FlightsNearby.Set(float64(len(nearby)))
}

// push delivers the current surface to the display.
func (a *App) push() {
	if err := a.display.Push(a.surface.Image()); err != nil {
		a.metrics.FrameErrors.Inc()
		a.logger.Warn("frame push failed", "error", err)
		return
	}
	a.metrics.FramesPushed.Inc()
}

// shutdown stops input, blanks the panel and closes the sinks.
func (a *App) shutdown() {
	a.logger.Info("shutting down")
	if a.listener != nil {
		a.listener.Stop()
	}
	a.surface.Clear(color.RGBA{A: 0xFF})
	a.push()
	if err := a.display.Close(); err != nil {
		a.logger.Warn("display close failed", "error", err)
	}
}

// Snapshot reports the loop state for the status endpoint. Safe to call
// from any goroutine.
func (a *App) Snapshot(ctx context.Context) status.Snapshot {
	a.mu.Lock()
	nearby := len(a.nearby)
	selected := a.selected
	lastPoll := a.lastPoll
	a.mu.Unlock()

	state := "idle"
	if nearby > 0 {
		state = "flight"
	}

	weatherAge := -1.0
	if w := a.weather.Current(ctx); w != nil && !w.FetchedAt.IsZero() {
		weatherAge = a.clock.Now().Sub(w.FetchedAt).Seconds()
	}

	return status.Snapshot{
		State:             state,
		FlightCount:       nearby,
		SelectedIndex:     selected,
		LastPoll:          lastPoll,
		WeatherAgeSeconds: weatherAge,
	}
}
