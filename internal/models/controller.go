package models

import "time"

// ScheduleSlots is the number of configurable watering slots.
const ScheduleSlots = 4

// ControlConfig holds the thresholds and schedule set by the mobile client.
// It lives in memory only and is seeded from configuration at startup.
type ControlConfig struct {
	WateringMinutes int                      `json:"watering_minutes"`  // t_control, 0..255
	PauseMinutes    int                      `json:"pause_minutes"`     // t_pausa, 0..255
	SoilHumidityMax int                      `json:"soil_humidity_max"` // water while soil <= this
	HeatIndexMin    int                      `json:"heat_index_min"`    // ventilate while heat index >= this
	Schedule        [ScheduleSlots]TimeOfDay `json:"schedule"`
}

// SystemState holds the two toggles driven by E/e and C/c frames.
type SystemState struct {
	Enabled          bool `json:"enabled"`
	ScheduleOverride bool `json:"schedule_override"`
}

// SensorSnapshot is the calibrated sensor view for one tick.
type SensorSnapshot struct {
	SoilHumidity       int `json:"soil_humidity"`       // %, clamped 0..100
	AmbientTemperature int `json:"ambient_temperature"` // °C
	AmbientHumidity    int `json:"ambient_humidity"`    // %
	HeatIndex          int `json:"heat_index"`          // °C, derived
}

// ActuatorState mirrors the relay outputs.
type ActuatorState struct {
	IrrigationOn  bool `json:"irrigation_on"`
	VentilationOn bool `json:"ventilation_on"`
}

// Status is the point-in-time view served to the HTTP API.
type Status struct {
	System    SystemState    `json:"system"`
	Config    ControlConfig  `json:"config"`
	Sensors   SensorSnapshot `json:"sensors"`
	Actuators ActuatorState  `json:"actuators"`
	Clock     TimeOfDay      `json:"clock"`
	Link      string         `json:"link"`
	Tick      uint64         `json:"tick"`
	UpdatedAt time.Time      `json:"updated_at"`
}
