// Package control holds the actuator decision rules. It has no I/O; the
// controller service feeds it one tick at a time.
package control

import (
	"greenhouse_control/internal/models"
	"greenhouse_control/internal/schedule"
)

// Inputs is everything a decision depends on.
type Inputs struct {
	System   models.SystemState
	Config   models.ControlConfig
	Sensors  models.SensorSnapshot
	Schedule schedule.Decision
}

// Outputs is the decided relay state plus the snapshot to publish.
type Outputs struct {
	Actuators models.ActuatorState
	Sensors   models.SensorSnapshot
}

// Decide applies the single-threshold rules:
//   - disabled: both relays off and a zeroed snapshot;
//   - irrigation on when it is time to water (or the schedule is overridden)
//     and the soil is at or below SoilHumidityMax;
//   - ventilation on when the heat index is at or above HeatIndexMin.
func Decide(in Inputs) Outputs {
	if !in.System.Enabled {
		return Outputs{}
	}

	water := in.Schedule.Water || in.System.ScheduleOverride
	return Outputs{
		Actuators: models.ActuatorState{
			IrrigationOn:  water && in.Sensors.SoilHumidity <= in.Config.SoilHumidityMax,
			VentilationOn: in.Sensors.HeatIndex >= in.Config.HeatIndexMin,
		},
		Sensors: in.Sensors,
	}
}

// Transitions lists the event types for relays that changed between prev and next.
func Transitions(prev, next models.ActuatorState) []string {
	var events []string
	if prev.IrrigationOn != next.IrrigationOn {
		if next.IrrigationOn {
			events = append(events, models.EventIrrigationOn)
		} else {
			events = append(events, models.EventIrrigationOff)
		}
	}
	if prev.VentilationOn != next.VentilationOn {
		if next.VentilationOn {
			events = append(events, models.EventVentilationOn)
		} else {
			events = append(events, models.EventVentilationOff)
		}
	}
	return events
}
