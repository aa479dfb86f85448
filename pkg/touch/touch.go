// Package touch reads tap events from a Linux evdev touchscreen such as
// the ADS7846 controller on resistive SPI panels. Taps are delivered on
// a buffered channel; the render loop drains it on its own schedule and
// never blocks the reader.
package touch

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// evdev event types and codes, from linux/input-event-codes.h.
const (
	evKey = 0x01
	evAbs = 0x03

	absX = 0x00
	absY = 0x01

	btnTouch = 0x14A
)

// eventSize is the size of struct input_event on this architecture:
// a timeval of two machine words plus type, code and value.
const eventSize = 2*(strconv.IntSize/8) + 8

// readPollInterval bounds how long a blocked read can delay shutdown.
const readPollInterval = 500 * time.Millisecond

// Tap is a completed press-and-release on the panel, with the last
// reported raw coordinates.
type Tap struct {
	X int
	Y int
}

// Listener reads evdev events from a touchscreen device node and turns
// touch releases into Tap values on its channel.
type Listener struct {
	device *os.File
	taps   chan Tap
	done   chan struct{}
	closed chan struct{}
	logger *slog.Logger
}

// NewListener opens the device node, typically /dev/input/eventN for
// the node FindDevice returns.
func NewListener(devicePath string, logger *slog.Logger) (*Listener, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(devicePath)
	if err != nil {
		return nil, fmt.Errorf("open touch device: %w", err)
	}

	return &Listener{
		device: f,
		taps:   make(chan Tap, 8),
		done:   make(chan struct{}),
		closed: make(chan struct{}),
		logger: logger,
	}, nil
}

// Taps returns the channel taps are delivered on. When the channel is
// full new taps are dropped rather than queued behind stale ones.
func (l *Listener) Taps() <-chan Tap {
	return l.taps
}

// Start launches the read loop.
func (l *Listener) Start() {
	go l.readLoop()
}

// Stop terminates the read loop and closes the device. It waits up to
// a second for the loop to finish.
func (l *Listener) Stop() {
	close(l.done)
	l.device.SetReadDeadline(time.Now())

	select {
	case <-l.closed:
	case <-time.After(time.Second):
		l.logger.Warn("touch read loop did not stop in time")
	}
	l.device.Close()
}

func (l *Listener) readLoop() {
	defer close(l.closed)

	var (
		buf      = make([]byte, eventSize)
		lastX    int
		lastY    int
		touching bool
	)

	for {
		select {
		case <-l.done:
			return
		default:
		}

		l.device.SetReadDeadline(time.Now().Add(readPollInterval))
		if _, err := io.ReadFull(l.device, buf); err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			select {
			case <-l.done:
			default:
				l.logger.Warn("touch device read failed", "error", err)
			}
			return
		}

		typ, code, value := decodeEvent(buf)
		switch typ {
		case evAbs:
			switch code {
			case absX:
				lastX = int(value)
			case absY:
				lastY = int(value)
			}
		case evKey:
			if code != btnTouch {
				continue
			}
			if value != 0 {
				touching = true
				continue
			}
			if !touching {
				continue
			}
			touching = false
			select {
			case l.taps <- Tap{X: lastX, Y: lastY}:
			default:
				l.logger.Debug("tap dropped, channel full")
			}
		}
	}
}

// decodeEvent unpacks the type, code and value fields of a raw
// little-endian struct input_event, skipping the leading timeval.
func decodeEvent(buf []byte) (typ, code uint16, value int32) {
	off := 2 * (strconv.IntSize / 8)
	typ = binary.LittleEndian.Uint16(buf[off:])
	code = binary.LittleEndian.Uint16(buf[off+2:])
	value = int32(binary.LittleEndian.Uint32(buf[off+4:]))
	return typ, code, value
}
