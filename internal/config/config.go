// Package config loads the controller configuration from configs/config.yml,
// GREENHOUSE_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"greenhouse_control/internal/debugsink"
	"greenhouse_control/internal/gpio"
	"greenhouse_control/internal/models"
	"greenhouse_control/internal/rtc"
)

const envPrefix = "GREENHOUSE"

type Config struct {
	Port     string         `mapstructure:"port"`
	Log      LogConfig      `mapstructure:"log"`
	DB       DBConfig       `mapstructure:"db"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Control  ControlConfig  `mapstructure:"control"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Loop     LoopConfig     `mapstructure:"loop"`
	Clock    ClockConfig    `mapstructure:"clock"`
	History  HistoryConfig  `mapstructure:"history"`
	Sensors  SensorsConfig  `mapstructure:"sensors"`
	GPIO     GPIOConfig     `mapstructure:"gpio"`
	Link     LinkConfig     `mapstructure:"link"`
	Debug    DebugConfig    `mapstructure:"debug"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // console | json
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// ControlConfig seeds the in-memory controller state at boot.
type ControlConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	ScheduleOverride bool     `mapstructure:"schedule_override"`
	WateringMinutes  int      `mapstructure:"watering_minutes"`
	PauseMinutes     int      `mapstructure:"pause_minutes"`
	SoilHumidityMax  int      `mapstructure:"soil_humidity_max"`
	HeatIndexMin     int      `mapstructure:"heat_index_min"`
	Slots            []string `mapstructure:"slots"` // "HH:MM", at most 4
}

type ScheduleConfig struct {
	Arithmetic string `mapstructure:"arithmetic"` // minutes | legacy
}

type LoopConfig struct {
	FastTick time.Duration `mapstructure:"fast_tick"`
	SlowTick time.Duration `mapstructure:"slow_tick"`
}

type ClockConfig struct {
	BootTime string `mapstructure:"boot_time"` // "HH:MM"; empty keeps host time
}

type HistoryConfig struct {
	Interval time.Duration `mapstructure:"interval"` // 0 disables sampling
}

type SensorsConfig struct {
	Driver      string            `mapstructure:"driver"` // hardware | simulated
	DHTModel    string            `mapstructure:"dht_model"`
	DHTPin      int               `mapstructure:"dht_pin"`
	DHTRetries  int               `mapstructure:"dht_retries"`
	I2CBus      string            `mapstructure:"i2c_bus"`
	ADCChannel  int               `mapstructure:"adc_channel"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
}

type CalibrationConfig struct {
	Slope  float64 `mapstructure:"slope"`
	Offset float64 `mapstructure:"offset"`
}

type GPIOConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Chip           string `mapstructure:"chip"`
	IrrigationPin  int    `mapstructure:"irrigation_pin"`
	VentilationPin int    `mapstructure:"ventilation_pin"`
	LEDPin         int    `mapstructure:"led_pin"`
}

type LinkConfig struct {
	WebSocket bool             `mapstructure:"websocket"`
	Serial    SerialLinkConfig `mapstructure:"serial"`
	MQTT      MQTTConfig       `mapstructure:"mqtt"`
}

type SerialLinkConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Device  string `mapstructure:"device"`
	Baud    int    `mapstructure:"baud"`
}

type MQTTConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Broker         string `mapstructure:"broker"`
	ClientID       string `mapstructure:"client_id"`
	TelemetryTopic string `mapstructure:"telemetry_topic"`
	CommandTopic   string `mapstructure:"command_topic"`
}

type DebugConfig struct {
	Serial bool   `mapstructure:"serial"`
	Device string `mapstructure:"device"`
	Baud   int    `mapstructure:"baud"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("db.path", "greenhouse.db")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("control.enabled", false)
	v.SetDefault("control.schedule_override", false)
	v.SetDefault("control.watering_minutes", 20)
	v.SetDefault("control.pause_minutes", 4)
	v.SetDefault("control.soil_humidity_max", 60)
	v.SetDefault("control.heat_index_min", 30)
	v.SetDefault("control.slots", []string{})

	v.SetDefault("schedule.arithmetic", "minutes")
	v.SetDefault("loop.fast_tick", 500*time.Millisecond)
	v.SetDefault("loop.slow_tick", 500*time.Millisecond)
	v.SetDefault("clock.boot_time", "10:32")
	v.SetDefault("history.interval", time.Minute)

	v.SetDefault("sensors.driver", "simulated")
	v.SetDefault("sensors.dht_model", "dht11")
	v.SetDefault("sensors.dht_pin", 4)
	v.SetDefault("sensors.dht_retries", 3)
	v.SetDefault("sensors.i2c_bus", "")
	v.SetDefault("sensors.adc_channel", 0)
	v.SetDefault("sensors.calibration.slope", -0.269)
	v.SetDefault("sensors.calibration.offset", 171.0)

	v.SetDefault("gpio.enabled", false)
	v.SetDefault("gpio.chip", "gpiochip0")
	v.SetDefault("gpio.irrigation_pin", gpio.DefaultPinIrrigation)
	v.SetDefault("gpio.ventilation_pin", gpio.DefaultPinVentilation)
	v.SetDefault("gpio.led_pin", gpio.DefaultPinLED)

	v.SetDefault("link.websocket", true)
	v.SetDefault("link.serial.enabled", false)
	v.SetDefault("link.serial.device", "/dev/rfcomm0")
	v.SetDefault("link.serial.baud", 9600)
	v.SetDefault("link.mqtt.enabled", false)
	v.SetDefault("link.mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("link.mqtt.client_id", "greenhouse-controller")
	v.SetDefault("link.mqtt.telemetry_topic", "greenhouse/telemetry")
	v.SetDefault("link.mqtt.command_topic", "greenhouse/commands")

	v.SetDefault("debug.serial", false)
	v.SetDefault("debug.device", "/dev/ttyS0")
	v.SetDefault("debug.baud", debugsink.DefaultBaud)
}

// Load reads the configuration. An empty path searches ./configs/config.yml
// and falls back to defaults when it is missing; an explicit path must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Initial returns the controller state to boot with.
func (c ControlConfig) Initial() (models.ControlConfig, models.SystemState, error) {
	cfg := models.ControlConfig{
		WateringMinutes: c.WateringMinutes,
		PauseMinutes:    c.PauseMinutes,
		SoilHumidityMax: c.SoilHumidityMax,
		HeatIndexMin:    c.HeatIndexMin,
	}
	for i, s := range c.Slots {
		if i >= models.ScheduleSlots {
			return models.ControlConfig{}, models.SystemState{}, fmt.Errorf("%w: at most %d slots", ErrInvalid, models.ScheduleSlots)
		}
		t, err := rtc.ParseTimeOfDay(s)
		if err != nil {
			return models.ControlConfig{}, models.SystemState{}, fmt.Errorf("%w: slot %d: %v", ErrInvalid, i+1, err)
		}
		cfg.Schedule[i] = t
	}
	sys := models.SystemState{Enabled: c.Enabled, ScheduleOverride: c.ScheduleOverride}
	return cfg, sys, nil
}
