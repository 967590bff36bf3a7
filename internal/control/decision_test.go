package control

import (
	"reflect"
	"testing"

	"greenhouse_control/internal/models"
	"greenhouse_control/internal/schedule"
)

func baseInputs() Inputs {
	return Inputs{
		System:  models.SystemState{Enabled: true},
		Config:  models.ControlConfig{SoilHumidityMax: 40, HeatIndexMin: 30},
		Sensors: models.SensorSnapshot{SoilHumidity: 35, AmbientTemperature: 25, AmbientHumidity: 50, HeatIndex: 25},
	}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name        string
		mutate      func(in *Inputs)
		irrigation  bool
		ventilation bool
	}{
		{"idle_outside_window", func(in *Inputs) {}, false, false},
		{"water_in_window_when_dry", func(in *Inputs) { in.Schedule.Water = true }, true, false},
		{"water_at_threshold", func(in *Inputs) {
			in.Schedule.Water = true
			in.Sensors.SoilHumidity = 40
		}, true, false},
		{"no_water_when_wet", func(in *Inputs) {
			in.Schedule.Water = true
			in.Sensors.SoilHumidity = 41
		}, false, false},
		{"override_ignores_schedule", func(in *Inputs) { in.System.ScheduleOverride = true }, true, false},
		{"override_still_needs_dry_soil", func(in *Inputs) {
			in.System.ScheduleOverride = true
			in.Sensors.SoilHumidity = 90
		}, false, false},
		{"ventilate_at_threshold", func(in *Inputs) { in.Sensors.HeatIndex = 30 }, false, true},
		{"ventilate_above_threshold", func(in *Inputs) { in.Sensors.HeatIndex = 40 }, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInputs()
			tc.mutate(&in)
			out := Decide(in)
			if out.Actuators.IrrigationOn != tc.irrigation {
				t.Errorf("irrigation = %v, want %v", out.Actuators.IrrigationOn, tc.irrigation)
			}
			if out.Actuators.VentilationOn != tc.ventilation {
				t.Errorf("ventilation = %v, want %v", out.Actuators.VentilationOn, tc.ventilation)
			}
			if out.Sensors != in.Sensors {
				t.Errorf("active state must pass the snapshot through, got %+v", out.Sensors)
			}
		})
	}
}

func TestDecide_DisabledForcesOffAndZeroes(t *testing.T) {
	in := baseInputs()
	in.System = models.SystemState{Enabled: false, ScheduleOverride: true}
	in.Schedule = schedule.Decision{Water: true, Slot: 0, Window: schedule.WindowFirst}
	in.Sensors = models.SensorSnapshot{SoilHumidity: 5, AmbientTemperature: 40, AmbientHumidity: 80, HeatIndex: 60}

	out := Decide(in)
	if out != (Outputs{}) {
		t.Fatalf("disabled output = %+v, want zero value", out)
	}
}

func TestTransitions(t *testing.T) {
	off := models.ActuatorState{}
	both := models.ActuatorState{IrrigationOn: true, VentilationOn: true}

	if got := Transitions(off, off); len(got) != 0 {
		t.Fatalf("no change should produce no events, got %v", got)
	}
	want := []string{models.EventIrrigationOn, models.EventVentilationOn}
	if got := Transitions(off, both); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	want = []string{models.EventIrrigationOff}
	if got := Transitions(both, models.ActuatorState{VentilationOn: true}); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
