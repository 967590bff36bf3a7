package protocol

import (
	"fmt"
	"strconv"

	"greenhouse_control/internal/models"
)

// Telemetry tags, in emission order.
const (
	TelemetryIrrigation   byte = 'R'
	TelemetryVentilation  byte = 'V'
	TelemetryHeatIndex    byte = 'T'
	TelemetrySoilHumidity byte = 'H'
	TelemetryClock        byte = 'X'
	TelemetryWatering     byte = 'O'
	TelemetryPause        byte = 'P'
	TelemetryHeatIndexMin byte = 'F'
	TelemetrySoilMax      byte = 'G'
)

// Indicator colours understood by the mobile client.
const (
	ColorOn  = "R0G255B0"
	ColorOff = "R155G155B155"
)

// Telemetry is everything reported to the client on one tick.
type Telemetry struct {
	Actuators models.ActuatorState
	Sensors   models.SensorSnapshot
	Clock     models.TimeOfDay
	Config    models.ControlConfig
}

// Frame wraps a tagged value in '*' delimiters.
func Frame(tag byte, value string) string {
	return "*" + string(tag) + value + "*"
}

func color(on bool) string {
	if on {
		return ColorOn
	}
	return ColorOff
}

// Frames returns one frame per datum in the fixed order the client expects.
func Frames(t Telemetry) []string {
	return []string{
		Frame(TelemetryIrrigation, color(t.Actuators.IrrigationOn)),
		Frame(TelemetryVentilation, color(t.Actuators.VentilationOn)),
		Frame(TelemetryHeatIndex, strconv.Itoa(t.Sensors.HeatIndex)),
		Frame(TelemetrySoilHumidity, strconv.Itoa(t.Sensors.SoilHumidity)),
		Frame(TelemetryClock, t.Clock.String()),
		Frame(TelemetryWatering, strconv.Itoa(t.Config.WateringMinutes)),
		Frame(TelemetryPause, strconv.Itoa(t.Config.PauseMinutes)),
		Frame(TelemetryHeatIndexMin, strconv.Itoa(t.Config.HeatIndexMin)),
		Frame(TelemetrySoilMax, strconv.Itoa(t.Config.SoilHumidityMax)),
	}
}

// DebugLine is the human-readable line written to the debug UART each tick.
func DebugLine(s models.SensorSnapshot, clock models.TimeOfDay) string {
	return fmt.Sprintf("%d -- %d -- %d -- %s\r\n",
		s.AmbientHumidity, s.AmbientTemperature, s.HeatIndex, clock)
}
