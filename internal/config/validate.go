package config

import (
	"errors"
	"fmt"

	"greenhouse_control/internal/rtc"
	"greenhouse_control/internal/schedule"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, cfg.Log.Level)
	}
	switch cfg.Log.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.encoding %q", ErrInvalid, cfg.Log.Encoding)
	}

	c := cfg.Control
	for _, f := range []struct {
		name     string
		val, max int
	}{
		{"control.watering_minutes", c.WateringMinutes, 255},
		{"control.pause_minutes", c.PauseMinutes, 255},
		{"control.heat_index_min", c.HeatIndexMin, 255},
		{"control.soil_humidity_max", c.SoilHumidityMax, 100},
	} {
		if f.val < 0 || f.val > f.max {
			return fmt.Errorf("%w: %s must be within 0..%d, got %d", ErrInvalid, f.name, f.max, f.val)
		}
	}
	if _, _, err := c.Initial(); err != nil {
		return err
	}

	switch schedule.Arithmetic(cfg.Schedule.Arithmetic) {
	case schedule.Minutes, schedule.Legacy:
	default:
		return fmt.Errorf("%w: schedule.arithmetic %q", ErrInvalid, cfg.Schedule.Arithmetic)
	}

	if cfg.Loop.FastTick <= 0 || cfg.Loop.SlowTick <= 0 {
		return fmt.Errorf("%w: loop ticks must be positive", ErrInvalid)
	}
	if cfg.History.Interval < 0 {
		return fmt.Errorf("%w: history.interval must not be negative", ErrInvalid)
	}
	if cfg.Clock.BootTime != "" {
		if _, err := rtc.ParseTimeOfDay(cfg.Clock.BootTime); err != nil {
			return fmt.Errorf("%w: clock.boot_time: %v", ErrInvalid, err)
		}
	}

	switch cfg.Sensors.Driver {
	case "hardware", "simulated":
	default:
		return fmt.Errorf("%w: sensors.driver %q", ErrInvalid, cfg.Sensors.Driver)
	}
	if cfg.Sensors.ADCChannel < 0 || cfg.Sensors.ADCChannel > 3 {
		return fmt.Errorf("%w: sensors.adc_channel must be within 0..3", ErrInvalid)
	}

	if cfg.Link.Serial.Enabled && cfg.Link.Serial.Device == "" {
		return fmt.Errorf("%w: link.serial.device is required", ErrInvalid)
	}
	if cfg.Link.MQTT.Enabled && (cfg.Link.MQTT.Broker == "" || cfg.Link.MQTT.TelemetryTopic == "") {
		return fmt.Errorf("%w: link.mqtt needs broker and telemetry_topic", ErrInvalid)
	}
	if cfg.Debug.Serial && cfg.Debug.Device == "" {
		return fmt.Errorf("%w: debug.device is required", ErrInvalid)
	}
	return nil
}
