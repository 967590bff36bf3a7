package models

import "time"

// Event types recorded in the controller log.
const (
	EventEnable         = "ENABLE"
	EventDisable        = "DISABLE"
	EventCommand        = "COMMAND"
	EventMalformed      = "MALFORMED_COMMAND"
	EventIrrigationOn   = "IRRIGATION_ON"
	EventIrrigationOff  = "IRRIGATION_OFF"
	EventVentilationOn  = "VENTILATION_ON"
	EventVentilationOff = "VENTILATION_OFF"
	EventSensorFault    = "SENSOR_FAULT"
	EventClockOverflow  = "CLOCK_OVERFLOW"
)

// ControllerEvent is a single log entry.
type ControllerEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}

// Reading is a sampled row of the readings history.
type Reading struct {
	ID                 int64     `json:"id"`
	TakenAt            time.Time `json:"taken_at"`
	SoilHumidity       int       `json:"soil_humidity"`
	AmbientTemperature int       `json:"ambient_temperature"`
	AmbientHumidity    int       `json:"ambient_humidity"`
	HeatIndex          int       `json:"heat_index"`
	IrrigationOn       bool      `json:"irrigation_on"`
	VentilationOn      bool      `json:"ventilation_on"`
}
