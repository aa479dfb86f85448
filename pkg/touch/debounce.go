package touch

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDebounceWindow suppresses the double releases resistive panels
// report on a single physical tap.
const DefaultDebounceWindow = 300 * time.Millisecond

// Debouncer rate-limits taps. It is used from a single goroutine.
type Debouncer struct {
	clock  clockwork.Clock
	window time.Duration
	last   time.Time
}

// NewDebouncer creates a debouncer with the given window. A zero window
// uses the default.
func NewDebouncer(window time.Duration, clock clockwork.Clock) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Debouncer{clock: clock, window: window}
}

// Allow reports whether a tap arriving now should be acted on, and if
// so starts a new window.
func (d *Debouncer) Allow() bool {
	now := d.clock.Now()
	if !d.last.IsZero() && now.Sub(d.last) < d.window {
		return false
	}
	d.last = now
	return true
}
