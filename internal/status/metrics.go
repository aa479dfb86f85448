package status

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the application counters exposed on /metrics. Each server
// owns its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	// PollsTotal counts flight feed polls.
	PollsTotal prometheus.Counter

	// FramesPushed counts frames delivered to the panel.
	FramesPushed prometheus.Counter

	// FrameErrors counts failed panel writes.
	FrameErrors prometheus.Counter

	// TapsTotal counts accepted touchscreen taps.
	TapsTotal prometheus.Counter

	// FlightsNearby is the size of the last nearby list.
	FlightsNearby prometheus.Gauge
}

// NewMetrics creates the metric set on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PollsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "flightdeck_polls_total",
			Help: "Flight feed polls performed.",
		}),
		FramesPushed: factory.NewCounter(prometheus.CounterOpts{
			Name: "flightdeck_frames_pushed_total",
			Help: "Frames delivered to the panel.",
		}),
		FrameErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "flightdeck_frame_errors_total",
			Help: "Frames that failed to reach the panel.",
		}),
		TapsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "flightdeck_taps_total",
			Help: "Touchscreen taps accepted after debouncing.",
		}),
		FlightsNearby: factory.NewGauge(prometheus.GaugeOpts{
			Name: "flightdeck_flights_nearby",
			Help: "Aircraft inside the search radius at the last poll.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
