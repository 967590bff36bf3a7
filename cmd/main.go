package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"greenhouse_control/internal/config"
	"greenhouse_control/internal/debugsink"
	"greenhouse_control/internal/gpio"
	"greenhouse_control/internal/handlers"
	"greenhouse_control/internal/link"
	"greenhouse_control/internal/logger"
	"greenhouse_control/internal/repository"
	"greenhouse_control/internal/repository/db"
	"greenhouse_control/internal/rtc"
	"greenhouse_control/internal/schedule"
	"greenhouse_control/internal/sensor"
	"greenhouse_control/internal/server"
	"greenhouse_control/internal/service"
	"greenhouse_control/internal/state"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./configs/config.yml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Init(cfg.Log.Level, cfg.Log.Encoding)

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	initial, sys, err := cfg.Control.Initial()
	if err != nil {
		log.Fatalw("invalid control config", "err", err)
	}
	store := state.NewStore(initial, sys)

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if cerr := closers[i].Close(); cerr != nil {
				log.Warnw("close_failed", "err", cerr)
			}
		}
	}()

	hw, err := openHardware(cfg, log, &closers)
	if err != nil {
		log.Fatalw("failed to open hardware", "err", err)
	}

	repos := repository.NewRepository(sqlDB)
	greenhouse := service.NewGreenhouseService(store, repos.EventRepo, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub, transports := openLinks(ctx, cfg, greenhouse.HandleFrame, log)
	if len(transports) > 0 {
		hw.Link = transports
	}

	services := service.NewService(repos, service.Deps{
		Store:    store,
		Hardware: hw,
		Loop: service.LoopOptions{
			FastTick:        cfg.Loop.FastTick,
			SlowTick:        cfg.Loop.SlowTick,
			HistoryInterval: cfg.History.Interval,
		},
		Auth: service.AuthOptions{
			SigningKey: signingKey(cfg.Auth.SigningKey, log),
			TokenTTL:   cfg.Auth.TokenTTL,
		},
		Log: log,
	})
	// HTTP commands and link frames go through the same instance.
	services.Greenhouse = greenhouse

	var wsEndpoint http.Handler
	if hub != nil {
		wsEndpoint = hub
	}
	apiHandler := handlers.NewHandler(services, wsEndpoint, log)

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		services.Controller.Run(ctx)
	}()

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	log.Infow("greenhouse_controller_started",
		"port", cfg.Port,
		"sensors", cfg.Sensors.Driver,
		"gpio", cfg.GPIO.Enabled,
		"arithmetic", cfg.Schedule.Arithmetic,
		"links", len(transports),
	)

	waitForShutdown(cancel, srv, log)
	<-loopDone
	if len(transports) > 0 {
		if cerr := transports.Close(); cerr != nil {
			log.Warnw("link_close_failed", "err", cerr)
		}
	}
}

// openHardware builds the sensor drivers, relay outputs, clock, scheduler and
// debug sink. Everything that must be released is appended to closers.
func openHardware(cfg config.Config, log *logger.Logger, closers *[]io.Closer) (service.Hardware, error) {
	var (
		ambient sensor.Ambient
		soil    sensor.Analog
	)
	switch cfg.Sensors.Driver {
	case "hardware":
		dht, err := sensor.NewDHT(cfg.Sensors.DHTModel, cfg.Sensors.DHTPin, cfg.Sensors.DHTRetries)
		if err != nil {
			return service.Hardware{}, err
		}
		ads, err := sensor.NewADS1115(cfg.Sensors.I2CBus, cfg.Sensors.ADCChannel)
		if err != nil {
			return service.Hardware{}, err
		}
		*closers = append(*closers, ads)
		ambient, soil = dht, ads
	default:
		sim := sensor.NewSimulated(nil)
		ambient, soil = sim, sim
	}
	calib := sensor.Calibration{Slope: cfg.Sensors.Calibration.Slope, Offset: cfg.Sensors.Calibration.Offset}

	irrigation, err := openOutput(cfg.GPIO, cfg.GPIO.IrrigationPin, closers)
	if err != nil {
		return service.Hardware{}, err
	}
	ventilation, err := openOutput(cfg.GPIO, cfg.GPIO.VentilationPin, closers)
	if err != nil {
		return service.Hardware{}, err
	}
	led, err := openOutput(cfg.GPIO, cfg.GPIO.LEDPin, closers)
	if err != nil {
		return service.Hardware{}, err
	}

	clock := rtc.NewSoftClock(nil)
	if cfg.Clock.BootTime != "" {
		boot, err := rtc.ParseTimeOfDay(cfg.Clock.BootTime)
		if err != nil {
			return service.Hardware{}, err
		}
		clock.Configure(boot)
	}

	var debug debugsink.Sink = debugsink.NewWriter(nil, log)
	if cfg.Debug.Serial {
		w, port, err := debugsink.OpenSerial(cfg.Debug.Device, cfg.Debug.Baud, log)
		if err != nil {
			return service.Hardware{}, err
		}
		*closers = append(*closers, port)
		debug = w
	}

	return service.Hardware{
		Acquirer:    sensor.NewAcquirer(ambient, soil, calib),
		Clock:       clock,
		Scheduler:   schedule.New(schedule.ParseArithmetic(cfg.Schedule.Arithmetic)),
		Irrigation:  irrigation,
		Ventilation: ventilation,
		LED:         led,
		Debug:       debug,
	}, nil
}

func openOutput(cfg config.GPIOConfig, pin int, closers *[]io.Closer) (gpio.Output, error) {
	if !cfg.Enabled {
		return gpio.NewFakeOutput(), nil
	}
	out, err := gpio.NewRealOutput(cfg.Chip, pin)
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, out)
	return out, nil
}

// openLinks starts every configured mobile link transport. A transport that
// fails to open is logged and skipped so the controller keeps running.
func openLinks(ctx context.Context, cfg config.Config, onFrame link.Handler, log *logger.Logger) (*link.Hub, link.Multi) {
	var (
		hub        *link.Hub
		transports link.Multi
	)
	if cfg.Link.WebSocket {
		hub = link.NewHub(onFrame, log)
		transports = append(transports, hub)
	}
	if cfg.Link.Serial.Enabled {
		s, err := link.OpenSerial(link.SerialConfig{
			Device: cfg.Link.Serial.Device,
			Baud:   cfg.Link.Serial.Baud,
		}, onFrame, log)
		if err != nil {
			log.Errorw("serial_link_unavailable", "device", cfg.Link.Serial.Device, "err", err)
		} else {
			s.Start(ctx)
			transports = append(transports, s)
		}
	}
	if cfg.Link.MQTT.Enabled {
		m, err := link.DialMQTT(link.MQTTConfig{
			Broker:         cfg.Link.MQTT.Broker,
			ClientID:       cfg.Link.MQTT.ClientID,
			TelemetryTopic: cfg.Link.MQTT.TelemetryTopic,
			CommandTopic:   cfg.Link.MQTT.CommandTopic,
		}, onFrame, log)
		if err != nil {
			log.Errorw("mqtt_link_unavailable", "broker", cfg.Link.MQTT.Broker, "err", err)
		} else {
			transports = append(transports, m)
		}
	}
	return hub, transports
}

// signingKey returns the configured JWT key or a random per-process one.
func signingKey(configured string, log *logger.Logger) []byte {
	if configured != "" {
		return []byte(configured)
	}
	log.Warnw("auth.signing_key not set; using a random key, tokens will not survive a restart")
	return []byte(uuid.NewString())
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the control loop and link readers
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
