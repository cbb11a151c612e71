package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/wheelibin/huesence/internal/bus"
	"github.com/wheelibin/huesence/internal/config"
	"github.com/wheelibin/huesence/internal/constants"
	"github.com/wheelibin/huesence/internal/hue"
	"github.com/wheelibin/huesence/internal/huesence"
	"github.com/wheelibin/huesence/internal/metrics"
	"github.com/wheelibin/huesence/internal/models"
	"github.com/wheelibin/huesence/internal/pairing"
	"github.com/wheelibin/huesence/internal/reconciler"
	"github.com/wheelibin/huesence/internal/repos"
	"github.com/wheelibin/huesence/internal/state"
	"github.com/wheelibin/huesence/internal/sun"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"
)

type stateBackend interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Close() error
}

func main() {
	configPath := pflag.String("config", "", "path to the config file (json or yaml)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("unable to load config", "err", err)
	}

	logger := newLogger(cfg.Log)
	logger.Info("huesenced starting")

	// durable state
	backend, err := openBackend(logger, cfg.State)
	if err != nil {
		logger.Fatal("unable to open state", "err", err)
	}
	defer backend.Close()

	store := state.NewStore(logger, backend)
	if err := store.Load(); err != nil {
		logger.Error("unable to load stored state, starting from defaults", "err", err)
	}

	recorder := metrics.NewRecorder(logger)

	// bus
	topics := bus.Topics{Prefix: cfg.MQTT.TopicPrefix}
	client, err := bus.Connect(logger, bus.Options{
		Broker:   cfg.MQTT.Broker,
		ClientID: cfg.MQTT.ClientID,
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password,
		QoS:      byte(cfg.MQTT.QoS),
		Topics:   topics,
	})
	if err != nil {
		logger.Fatal("unable to connect to the broker", "broker", cfg.MQTT.Broker, "err", err)
	}
	defer client.Close()
	gateway := bus.NewGateway(logger, client, topics, recorder)

	// bridge
	hueService := hue.NewHueAPIService(logger)
	pairer := pairing.NewPairer(
		logger,
		discoverers(logger, cfg.Hue),
		hueService,
		store,
		gateway,
		recorder,
		pairing.Options{DeviceType: cfg.Hue.DeviceType, Debounce: cfg.Hue.ScanDebounce},
	)

	rec, err := reconciler.NewReconciler(logger, store, recorder, reconciler.Options{
		Scheme:              cfg.Matching.Scheme,
		GroupUpdateInterval: cfg.Hue.GroupUpdateInterval,
	})
	if err != nil {
		logger.Fatal("unable to create reconciler", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	watcher, err := newSunWatcher(logger, cfg.Sun)
	if err != nil {
		logger.Fatal("unable to start the sun watcher", "err", err)
	}
	var sunPositions chan models.NightFlag
	if watcher != nil {
		sunPositions = make(chan models.NightFlag)
		g.Go(func() error {
			watcher.Run(ctx, sunPositions)
			return nil
		})
	}

	groups := func(conn pairing.Connection) reconciler.GroupAPI {
		return hueService.Groups(conn.Host, conn.Username)
	}
	app := huesence.NewHuesence(logger, pairer, rec, groups, cfg.Hue.RetryInterval, sunPositions)

	if err := gateway.Start(app); err != nil {
		logger.Fatal("unable to subscribe to the bus", "err", err)
	}

	g.Go(func() error {
		app.Run(ctx)
		return nil
	})

	if cfg.Metrics.Listen != "" {
		g.Go(func() error {
			return serveMetrics(ctx, logger, cfg.Metrics.Listen, recorder.Handler())
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("huesenced stopped with error", "err", err)
		os.Exit(1)
	}
	logger.Info("huesenced is closing")
}

func newLogger(cfg config.LogConfig) *log.Logger {
	var out io.Writer = os.Stderr
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename: cfg.File,
			MaxAge:   3,
		}
	}

	level, ok := map[string]log.Level{
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
	}[cfg.Level]
	if !ok {
		level = log.InfoLevel
	}

	return log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "2006/01/02 15:04:05",
	})
}

// newSunWatcher returns nil when no geo location is configured, day/night then only comes from the bus.
func newSunWatcher(logger *log.Logger, cfg config.SunConfig) (*sun.Watcher, error) {
	if cfg.GeoLocation == "" {
		return nil, nil
	}
	location, err := sun.ParseLocation(cfg.GeoLocation)
	if err != nil {
		return nil, fmt.Errorf("invalid sun.geoLocation: %w", err)
	}
	return sun.NewWatcher(logger, location, constants.SunCheckInterval), nil
}

func openBackend(logger *log.Logger, cfg config.StateConfig) (stateBackend, error) {
	if cfg.Driver == constants.StateDriverSQLite {
		return repos.OpenSQLiteStateRepo(logger, cfg.Path)
	}
	return repos.NewFileStateRepo(logger, cfg.Path), nil
}

func discoverers(logger *log.Logger, cfg config.HueConfig) []pairing.Discoverer {
	ds := []pairing.Discoverer{}
	if len(cfg.Hosts) > 0 {
		ds = append(ds, hue.NewStaticDiscoverer(cfg.Hosts))
	}
	if cfg.PortalDiscovery {
		ds = append(ds, hue.NewPortalDiscoverer(logger))
	}
	if cfg.SSDPDiscovery {
		ds = append(ds, hue.NewSSDPDiscoverer(logger))
	}
	return ds
}

func serveMetrics(ctx context.Context, logger *log.Logger, addr string, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
