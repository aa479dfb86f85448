package app

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unklstewy/flightdeck/pkg/config"
	"github.com/unklstewy/flightdeck/pkg/fr24"
	"github.com/unklstewy/flightdeck/pkg/framebuf"
	"github.com/unklstewy/flightdeck/pkg/openmeteo"
	"github.com/unklstewy/flightdeck/pkg/touch"
)

type fakeFlights struct {
	lists [][]fr24.Flight
	calls int
}

func (f *fakeFlights) Nearby(_ context.Context, _, _, _ float64) []fr24.Flight {
	idx := f.calls
	if idx >= len(f.lists) {
		idx = len(f.lists) - 1
	}
	f.calls++
	return f.lists[idx]
}

type panickyFlights struct{}

func (panickyFlights) Nearby(_ context.Context, _, _, _ float64) []fr24.Flight {
	panic("feed exploded")
}

type fakeWeather struct {
	snapshot *openmeteo.Snapshot
}

func (f *fakeWeather) Current(_ context.Context) *openmeteo.Snapshot {
	return f.snapshot
}

type fakeSink struct {
	pushes int
	closed bool
	last   *image.RGBA
}

func (f *fakeSink) Push(img *image.RGBA) error {
	f.pushes++
	f.last = img
	return nil
}

func (f *fakeSink) Close() error {
	f.closed = true
	return nil
}

type fakeListener struct {
	taps    chan touch.Tap
	started bool
	stopped bool
}

func newFakeListener() *fakeListener {
	return &fakeListener{taps: make(chan touch.Tap, 8)}
}

func (f *fakeListener) Start()                 { f.started = true }
func (f *fakeListener) Stop()                  { f.stopped = true }
func (f *fakeListener) Taps() <-chan touch.Tap { return f.taps }

func flights(n int) []fr24.Flight {
	out := make([]fr24.Flight, n)
	for i := range out {
		out[i] = fr24.Flight{
			FlightNumber: "BA100",
			Origin:       "LHR",
			Destination:  "JFK",
			DistanceKm:   float64(i) + 1,
		}
	}
	return out
}

func newTestApp(t *testing.T, src FlightSource, clock clockwork.Clock) (*App, *fakeSink, *fakeListener) {
	t.Helper()
	surface, err := framebuf.NewSurface(480, 320)
	require.NoError(t, err)

	sink := &fakeSink{}
	listener := newFakeListener()
	a := New(Options{
		Config:   config.Default(),
		Flights:  src,
		Weather:  &fakeWeather{},
		Surface:  surface,
		Display:  sink,
		Listener: listener,
		Clock:    clock,
	})
	return a, sink, listener
}

func TestMaybePoll(t *testing.T) {
	t.Run("Polls immediately, then waits out the interval", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		src := &fakeFlights{lists: [][]fr24.Flight{flights(2)}}
		a, _, _ := newTestApp(t, src, clock)

		a.maybePoll(context.Background())
		a.maybePoll(context.Background())
		assert.Equal(t, 1, src.calls, "second poll inside the interval is skipped")

		clock.Advance(5 * time.Second)
		a.maybePoll(context.Background())
		assert.Equal(t, 2, src.calls)
	})

	t.Run("Index resets when the count changes", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		src := &fakeFlights{lists: [][]fr24.Flight{flights(3), flights(2)}}
		a, _, _ := newTestApp(t, src, clock)

		a.maybePoll(context.Background())
		a.advance()
		a.advance()
		require.Equal(t, 2, a.selected)

		clock.Advance(5 * time.Second)
		a.maybePoll(context.Background())
		assert.Equal(t, 0, a.selected)
		assert.Len(t, a.nearby, 2)
	})

	t.Run("Index survives a same-size refresh", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		src := &fakeFlights{lists: [][]fr24.Flight{flights(3), flights(3)}}
		a, _, _ := newTestApp(t, src, clock)

		a.maybePoll(context.Background())
		a.advance()
		require.Equal(t, 1, a.selected)

		clock.Advance(5 * time.Second)
		a.maybePoll(context.Background())
		assert.Equal(t, 1, a.selected)
	})

	t.Run("Index is clamped into the new list", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		a, _, _ := newTestApp(t, &fakeFlights{lists: [][]fr24.Flight{flights(3)}}, clock)

		// same size as the incoming list, so only the clamp applies
		a.nearby = flights(3)
		a.selected = 5
		a.maybePoll(context.Background())
		assert.Equal(t, 0, a.selected)
	})
}

func TestTapCycling(t *testing.T) {
	t.Run("Each debounced tap advances modulo the count", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		a, _, listener := newTestApp(t, &fakeFlights{lists: [][]fr24.Flight{flights(3)}}, clock)
		a.maybePoll(context.Background())

		listener.taps <- touch.Tap{X: 1, Y: 1}
		a.drainTaps()
		assert.Equal(t, 1, a.selected)

		clock.Advance(time.Second)
		listener.taps <- touch.Tap{X: 1, Y: 1}
		a.drainTaps()
		assert.Equal(t, 2, a.selected)

		clock.Advance(time.Second)
		listener.taps <- touch.Tap{X: 1, Y: 1}
		a.drainTaps()
		assert.Equal(t, 0, a.selected, "wraps around")
	})

	t.Run("Rapid double tap counts once", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		a, _, listener := newTestApp(t, &fakeFlights{lists: [][]fr24.Flight{flights(3)}}, clock)
		a.maybePoll(context.Background())

		listener.taps <- touch.Tap{X: 1, Y: 1}
		listener.taps <- touch.Tap{X: 2, Y: 2}
		a.drainTaps()
		assert.Equal(t, 1, a.selected)
	})

	t.Run("Single flight does not cycle", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		a, _, listener := newTestApp(t, &fakeFlights{lists: [][]fr24.Flight{flights(1)}}, clock)
		a.maybePoll(context.Background())

		listener.taps <- touch.Tap{X: 1, Y: 1}
		a.drainTaps()
		assert.Equal(t, 0, a.selected)
	})
}

func TestTick(t *testing.T) {
	t.Run("Aircraft nearby renders the flight state", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		a, sink, _ := newTestApp(t, &fakeFlights{lists: [][]fr24.Flight{flights(2)}}, clock)

		a.tick(context.Background())
		snap := a.Snapshot(context.Background())
		assert.Equal(t, "flight", snap.State)
		assert.Equal(t, 2, snap.FlightCount)
		assert.Equal(t, 1, sink.pushes)
	})

	t.Run("Empty sky renders the idle state", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		a, sink, _ := newTestApp(t, &fakeFlights{lists: [][]fr24.Flight{flights(0)}}, clock)

		a.tick(context.Background())
		snap := a.Snapshot(context.Background())
		assert.Equal(t, "idle", snap.State)
		assert.Zero(t, snap.FlightCount)
		assert.Equal(t, 1, sink.pushes)
	})

	t.Run("A panicking feed does not kill the loop", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		a, _, _ := newTestApp(t, panickyFlights{}, clock)

		assert.NotPanics(t, func() { a.tick(context.Background()) })
	})
}

func TestSnapshotWeatherAge(t *testing.T) {
	clock := clockwork.NewFakeClock()
	surface, err := framebuf.NewSurface(480, 320)
	require.NoError(t, err)

	fetched := clock.Now().Add(-90 * time.Second)
	a := New(Options{
		Config:  config.Default(),
		Flights: &fakeFlights{lists: [][]fr24.Flight{flights(0)}},
		Weather: &fakeWeather{snapshot: &openmeteo.Snapshot{FetchedAt: fetched}},
		Surface: surface,
		Display: &fakeSink{},
		Clock:   clock,
	})

	snap := a.Snapshot(context.Background())
	assert.InDelta(t, 90.0, snap.WeatherAgeSeconds, 1e-9)

	a.weather = &fakeWeather{}
	snap = a.Snapshot(context.Background())
	assert.InDelta(t, -1.0, snap.WeatherAgeSeconds, 1e-9)
}

func TestShutdown(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a, sink, listener := newTestApp(t, &fakeFlights{lists: [][]fr24.Flight{flights(0)}}, clock)

	a.shutdown()
	assert.True(t, listener.stopped)
	assert.True(t, sink.closed)
	assert.Equal(t, 1, sink.pushes, "a blank frame is pushed on the way out")
}
