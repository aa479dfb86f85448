// Flightdeck shows the aircraft overhead on a small SPI framebuffer
// panel, falling back to a clock and weather view when the sky is
// quiet. Tap the screen to cycle through nearby flights.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/pflag"

	"github.com/unklstewy/flightdeck/internal/app"
	"github.com/unklstewy/flightdeck/internal/status"
	"github.com/unklstewy/flightdeck/pkg/config"
	"github.com/unklstewy/flightdeck/pkg/fr24"
	"github.com/unklstewy/flightdeck/pkg/framebuf"
	"github.com/unklstewy/flightdeck/pkg/openmeteo"
	"github.com/unklstewy/flightdeck/pkg/touch"
)

const sysfsGraphics = "/sys/class/graphics"

func main() {
	configPath := pflag.StringP("config", "c", "config.yaml", "path to configuration file")
	selfTest := pflag.Bool("test", false, "render sample screens and exit")
	termPreview := pflag.Bool("term-preview", false, "mirror frames into the terminal")
	pflag.Parse()

	if err := run(*configPath, *selfTest, *termPreview); err != nil {
		fmt.Fprintf(os.Stderr, "flightdeck: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, selfTest, termPreview bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("==============================")
	logger.Info("  Flight Deck")
	logger.Info("==============================")
	logger.Info("observer",
		"name", cfg.Location.Name,
		"latitude", cfg.Location.Latitude,
		"longitude", cfg.Location.Longitude)
	logger.Info("search radius", "km", cfg.FlightRadiusKm)
	logger.Info("update interval", "seconds", cfg.FlightUpdateIntervalSeconds)

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	surface, err := framebuf.NewSurface(cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}

	var opts []framebuf.Option
	if cfg.Display.MirrorHDMI {
		opts = append(opts, framebuf.WithMirror(framebuf.NewMirror(
			cfg.Display.MirrorFramebuffer, sysfsGraphics,
			logger.With("component", "mirror"))))
		framebuf.HideCursor()
	}
	if termPreview {
		sink, err := framebuf.NewTerminalSink(stop)
		if err != nil {
			return fmt.Errorf("terminal preview: %w", err)
		}
		opts = append(opts, framebuf.WithSink(sink))
	}
	display := framebuf.NewDisplay(cfg.Display.Framebuffer, cfg.Display.PreviewPath,
		logger.With("component", "display"), opts...)

	var listener app.TapListener
	if devicePath, err := touch.FindDevice(); err != nil {
		logger.Warn("no touchscreen", "error", err)
	} else if l, err := touch.NewListener(devicePath, logger.With("component", "touch")); err != nil {
		logger.Warn("touchscreen unusable", "device", devicePath, "error", err)
	} else {
		logger.Info("touchscreen found", "device", devicePath)
		listener = l
	}

	metrics := status.NewMetrics()
	application := app.New(app.Options{
		Config: cfg,
		Flights: fr24.NewClient(fr24.DefaultBaseURL, logger),
		Weather: openmeteo.NewClient(cfg.Location.Latitude, cfg.Location.Longitude,
			logger, openmeteo.WithCacheDuration(cfg.WeatherCacheDuration())),
		Surface:  surface,
		Display:  display,
		Listener: listener,
		Metrics:  metrics,
		Clock:    clockwork.NewRealClock(),
		Logger:   logger.With("component", "app"),
	})

	if selfTest {
		return application.SelfTest(ctx)
	}

	if cfg.Status.Enabled {
		server := status.NewServer(cfg.Status.Addr,
			func() status.Snapshot { return application.Snapshot(ctx) },
			metrics, logger.With("component", "status"))
		server.Start()
		defer server.Shutdown(context.Background())
	}

	return application.Run(ctx)
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
