package framebuf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
)

// Sink receives finished frames in addition to the primary panel, for
// example a terminal preview. Sink failures never fail a push.
type Sink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// Display routes finished frames to their outputs. The primary output
// is the panel device node; when that node does not exist at startup
// the display runs in simulation mode and writes each frame as a PNG
// instead, so layouts can be developed off the hardware.
type Display struct {
	devicePath  string
	previewPath string
	simulated   bool
	enc         Encoder
	mirror      *Mirror
	sinks       []Sink
	logger      *slog.Logger
}

// Option configures optional display outputs.
type Option func(*Display)

// WithMirror attaches a best-effort secondary framebuffer.
func WithMirror(m *Mirror) Option {
	return func(d *Display) { d.mirror = m }
}

// WithSink attaches an extra frame sink.
func WithSink(s Sink) Option {
	return func(d *Display) { d.sinks = append(d.sinks, s) }
}

// NewDisplay opens the panel on devicePath, or falls back to simulation
// mode writing previewPath when the device node is absent.
func NewDisplay(devicePath, previewPath string, logger *slog.Logger, opts ...Option) *Display {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Display{
		devicePath:  devicePath,
		previewPath: previewPath,
		enc:         NewEncoder(),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(d)
	}

	if _, err := os.Stat(devicePath); err != nil {
		d.simulated = true
		logger.Warn("display device not found, running in simulation mode",
			"device", devicePath, "preview", previewPath)
	} else {
		logger.Info("display device opened", "device", devicePath)
	}
	return d
}

// Simulated reports whether frames go to the PNG preview instead of a
// real panel.
func (d *Display) Simulated() bool {
	return d.simulated
}

// Push sends a frame to every output. Only a primary output failure is
// returned; mirror and sink failures are logged at debug level and
// dropped, so a dead HDMI cable cannot take down the panel.
func (d *Display) Push(img *image.RGBA) error {
	var primaryErr error
	if d.simulated {
		primaryErr = d.writePreview(img)
	} else {
		primaryErr = d.writePanel(img)
	}

	if d.mirror != nil {
		if err := d.mirror.Write(img); err != nil {
			d.logger.Debug("mirror write failed", "error", err)
		}
	}
	for _, sink := range d.sinks {
		if err := sink.WriteFrame(img); err != nil {
			d.logger.Debug("sink write failed", "error", err)
		}
	}
	return primaryErr
}

// Close shuts down attached sinks. The panel device is opened per frame
// and needs no teardown.
func (d *Display) Close() error {
	for _, sink := range d.sinks {
		if err := sink.Close(); err != nil {
			d.logger.Debug("sink close failed", "error", err)
		}
	}
	return nil
}

func (d *Display) writePanel(img *image.RGBA) error {
	if err := writeDevice(d.devicePath, d.enc.EncodeRGB565(img)); err != nil {
		return fmt.Errorf("write panel %s: %w", d.devicePath, err)
	}
	return nil
}

func (d *Display) writePreview(img *image.RGBA) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := os.WriteFile(d.previewPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}
