// Command app runs the orders service: the REST API and the outbox relay.
// Settings come from the environment, optionally seeded from a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"
	"orders/internal/pkg/telemetry"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		log.Fatalf("orders service stopped: %v", err)
	}
}

// run starts the service and blocks until ctx is cancelled or the web server
// fails. Every resource opened here is released before run returns.
func run(ctx context.Context) error {
	configs, err := getConfigs()
	if err != nil {
		return err
	}

	instruments, shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:  "orders",
		LogLevel:     telemetry.ParseLevel(configs.LogLevel),
		OTLPEndpoint: configs.OTLPEndpoint,
		OTLPInsecure: true,
		StdoutTraces: configs.TraceStdout,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	logger := instruments.Logger
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := shutdownTelemetry(shutdownCtx); shutdownErr != nil {
			logger.Error("telemetry shutdown failed", "error", shutdownErr)
		}
	}()

	var closers []cmd.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if closeErr := closers[i](); closeErr != nil {
				logger.Warn("failed to close connection", "error", closeErr)
			}
		}
	}()

	uowFactory, storageClosers, err := cmd.OpenStorage(configs, logger)
	closers = append(closers, storageClosers...)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	cache, closeCache, err := cmd.OpenCache(ctx, configs)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	if closeCache != nil {
		closers = append(closers, closeCache)
	}

	publisher, closePublisher, err := cmd.OpenPublisher(configs, logger)
	if err != nil {
		return fmt.Errorf("connect to NATS Streaming: %w", err)
	}
	if closePublisher != nil {
		closers = append(closers, closePublisher)
	}

	app := cmd.NewCompositionRoot(configs, uowFactory, cache, publisher, instruments)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	e := newWebServer(app)
	serveErr := make(chan error, 1)
	go func() {
		startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
		if startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			serveErr <- startErr
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case startErr, failed := <-serveErr:
		if failed {
			return fmt.Errorf("web server: %w", startErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}
	return nil
}

func getConfigs() (cmd.Config, error) {
	// .env is optional; real environment variables take precedence.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cmd.Config{}, fmt.Errorf("load .env file: %w", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		return cmd.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func newWebServer(app cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	app.CreateHTTPServer().Register(e)
	return e
}
