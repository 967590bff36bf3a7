package service

import (
	"context"
	"errors"
	"time"

	"greenhouse_control/internal/control"
	"greenhouse_control/internal/debugsink"
	"greenhouse_control/internal/gpio"
	"greenhouse_control/internal/link"
	"greenhouse_control/internal/logger"
	"greenhouse_control/internal/models"
	"greenhouse_control/internal/protocol"
	"greenhouse_control/internal/repository"
	"greenhouse_control/internal/rtc"
	"greenhouse_control/internal/schedule"
	"greenhouse_control/internal/sensor"
	"greenhouse_control/internal/state"
)

const (
	defaultFastTick = 500 * time.Millisecond
	defaultSlowTick = 500 * time.Millisecond
)

// Hardware is everything the control loop reads from or drives.
type Hardware struct {
	Acquirer    *sensor.Acquirer
	Clock       rtc.Clock
	Scheduler   *schedule.Scheduler
	Irrigation  gpio.Output
	Ventilation gpio.Output
	LED         gpio.Output
	Link        link.Transport // nil when no transport is configured
	Debug       debugsink.Sink // nil disables the debug line
}

// ControllerService runs the fast control tick and the slow status LED tick.
// All of its fields are owned by the Run goroutine.
type ControllerService struct {
	store       *state.Store
	hw          Hardware
	led         *gpio.Indicator
	opts        LoopOptions
	eventRepo   repository.EventRepo
	readingRepo repository.ReadingRepo
	log         *logger.Logger

	sensors    models.SensorSnapshot
	actuators  models.ActuatorState
	faulted    bool
	overflow   bool
	lastSample time.Time
}

func NewControllerService(
	store *state.Store,
	hw Hardware,
	opts LoopOptions,
	eventRepo repository.EventRepo,
	readingRepo repository.ReadingRepo,
	log *logger.Logger,
) *ControllerService {
	if opts.FastTick <= 0 {
		opts.FastTick = defaultFastTick
	}
	if opts.SlowTick <= 0 {
		opts.SlowTick = defaultSlowTick
	}
	if hw.Scheduler == nil {
		hw.Scheduler = schedule.New(schedule.Minutes)
	}
	if hw.Clock == nil {
		hw.Clock = rtc.NewSoftClock(nil)
	}
	s := &ControllerService{
		store:       store,
		hw:          hw,
		opts:        opts,
		eventRepo:   eventRepo,
		readingRepo: readingRepo,
		log:         log,
	}
	if hw.LED != nil {
		s.led = gpio.NewIndicator(hw.LED)
	}
	return s
}

// Run ticks until ctx is cancelled, then switches both relays and the LED off.
func (s *ControllerService) Run(ctx context.Context) {
	fast := time.NewTicker(s.opts.FastTick)
	slow := time.NewTicker(s.opts.SlowTick)
	defer func() {
		fast.Stop()
		slow.Stop()
		s.shutdown()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-fast.C:
			s.tick(ctx, now)
		case <-slow.C:
			s.indicate()
		}
	}
}

// tick runs one control cycle: sensors, clock, schedule, decision, relays,
// telemetry, debug line, status and history.
func (s *ControllerService) tick(ctx context.Context, now time.Time) {
	cfg, sys := s.store.Inputs()

	if sys.Enabled {
		s.acquire(ctx)
	} else {
		s.sensors = models.SensorSnapshot{}
	}

	clock := s.hw.Clock.Read()
	dec := s.hw.Scheduler.Evaluate(clock, cfg)
	s.noteOverflow(ctx, dec, clock)

	out := control.Decide(control.Inputs{
		System:   sys,
		Config:   cfg,
		Sensors:  s.sensors,
		Schedule: dec,
	})

	s.drive(out.Actuators)
	for _, typ := range control.Transitions(s.actuators, out.Actuators) {
		appendEvent(ctx, s.eventRepo, s.log, models.ControllerEvent{
			OccurredAt:  now,
			Type:        typ,
			Description: "relay " + typ,
			Metadata: map[string]any{
				"clock":         clock.String(),
				"slot":          dec.Slot,
				"window":        string(dec.Window),
				"soil_humidity": out.Sensors.SoilHumidity,
				"heat_index":    out.Sensors.HeatIndex,
			},
		})
	}
	s.actuators = out.Actuators

	linkStatus := link.Off
	if s.hw.Link != nil {
		linkStatus = s.hw.Link.Status()
		if linkStatus == link.Connected {
			s.sendTelemetry(protocol.Telemetry{
				Actuators: out.Actuators,
				Sensors:   out.Sensors,
				Clock:     s.hw.Scheduler.Reported(clock),
				Config:    cfg,
			})
		}
	}

	if s.hw.Debug != nil {
		s.hw.Debug.WriteLine(protocol.DebugLine(out.Sensors, clock))
	}

	s.store.Publish(state.Tick{
		Sensors:   out.Sensors,
		Actuators: out.Actuators,
		Clock:     clock,
		Link:      linkStatus.String(),
	})

	s.sample(ctx, now, out)
}

func (s *ControllerService) acquire(ctx context.Context) {
	if s.hw.Acquirer == nil {
		return
	}
	snap, errs := s.hw.Acquirer.Acquire(s.sensors)
	s.sensors = snap

	if len(errs) == 0 {
		if s.faulted && s.log != nil {
			s.log.Infow("sensors_recovered")
		}
		s.faulted = false
		return
	}

	err := errors.Join(errs...)
	if s.faulted {
		if s.log != nil {
			s.log.Debugw("sensor_read_failed", "err", err)
		}
		return
	}
	s.faulted = true
	if s.log != nil {
		s.log.Warnw("sensor_read_failed", "err", err)
	}
	appendEvent(ctx, s.eventRepo, s.log, models.ControllerEvent{
		Type:        models.EventSensorFault,
		Description: err.Error(),
	})
}

func (s *ControllerService) noteOverflow(ctx context.Context, dec schedule.Decision, clock models.TimeOfDay) {
	if dec.Overflow == s.overflow {
		return
	}
	s.overflow = dec.Overflow
	if !dec.Overflow {
		return
	}
	if s.log != nil {
		s.log.Warnw("schedule_time_overflow", "clock", clock.String(), "slot", dec.Slot)
	}
	appendEvent(ctx, s.eventRepo, s.log, models.ControllerEvent{
		Type:        models.EventClockOverflow,
		Description: "legacy schedule arithmetic left the day",
		Metadata:    map[string]any{"clock": clock.String()},
	})
}

func (s *ControllerService) drive(a models.ActuatorState) {
	if s.hw.Irrigation != nil {
		if err := s.hw.Irrigation.Set(a.IrrigationOn); err != nil && s.log != nil {
			s.log.Errorw("irrigation_write_failed", "err", err)
		}
	}
	if s.hw.Ventilation != nil {
		if err := s.hw.Ventilation.Set(a.VentilationOn); err != nil && s.log != nil {
			s.log.Errorw("ventilation_write_failed", "err", err)
		}
	}
}

func (s *ControllerService) sendTelemetry(t protocol.Telemetry) {
	for _, frame := range protocol.Frames(t) {
		if err := s.hw.Link.Send(frame); err != nil {
			if s.log != nil {
				s.log.Warnw("telemetry_send_failed", "frame", frame, "err", err)
			}
			return
		}
	}
}

func (s *ControllerService) sample(ctx context.Context, now time.Time, out control.Outputs) {
	if s.readingRepo == nil || s.opts.HistoryInterval <= 0 {
		return
	}
	if !s.lastSample.IsZero() && now.Sub(s.lastSample) < s.opts.HistoryInterval {
		return
	}
	s.lastSample = now
	err := s.readingRepo.Save(ctx, models.Reading{
		TakenAt:            now,
		SoilHumidity:       out.Sensors.SoilHumidity,
		AmbientTemperature: out.Sensors.AmbientTemperature,
		AmbientHumidity:    out.Sensors.AmbientHumidity,
		HeatIndex:          out.Sensors.HeatIndex,
		IrrigationOn:       out.Actuators.IrrigationOn,
		VentilationOn:      out.Actuators.VentilationOn,
	})
	if err != nil && s.log != nil {
		s.log.Errorw("reading_save_failed", "err", err)
	}
}

// indicate maps the link status onto the LED: off, blinking, steady.
func (s *ControllerService) indicate() {
	if s.led == nil {
		return
	}
	status := link.Off
	if s.hw.Link != nil {
		status = s.hw.Link.Status()
	}

	var err error
	switch status {
	case link.Connected:
		err = s.led.On()
	case link.Disconnected:
		err = s.led.Toggle()
	default:
		err = s.led.Off()
	}
	if err != nil && s.log != nil {
		s.log.Warnw("status_led_write_failed", "err", err)
	}
}

func (s *ControllerService) shutdown() {
	s.drive(models.ActuatorState{})
	s.actuators = models.ActuatorState{}
	if s.led != nil {
		_ = s.led.Off()
	}
	if s.log != nil {
		s.log.Infow("controller_stopped")
	}
}
