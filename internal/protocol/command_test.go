package protocol

import (
	"errors"
	"testing"

	"greenhouse_control/internal/models"
)

func TestParse_RoundTripWatering(t *testing.T) {
	frame := EncodeCommand(Command{Tag: TagWatering, Value: 45})
	if frame != "O45A" {
		t.Fatalf("encoded %q, want O45A", frame)
	}
	cmd, err := Parse([]byte(frame))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var cfg models.ControlConfig
	var sys models.SystemState
	cmd.Apply(&cfg, &sys)
	if cfg.WateringMinutes != 45 {
		t.Fatalf("WateringMinutes = %d, want 45", cfg.WateringMinutes)
	}
}

func TestParse_Valid(t *testing.T) {
	cases := []struct {
		frame string
		want  Command
	}{
		{"E", Command{Tag: TagEnable}},
		{"e", Command{Tag: TagDisable}},
		{"C", Command{Tag: TagOverrideOn}},
		{"c\r\n", Command{Tag: TagOverrideOff}},
		{"P4A", Command{Tag: TagPause, Value: 4}},
		{"T28A", Command{Tag: TagHeatIndex, Value: 28}},
		{"H100A", Command{Tag: TagSoilHumidity, Value: 100}},
		{"OA", Command{Tag: TagWatering, Value: 0}},
		{"O255A\n", Command{Tag: TagWatering, Value: 255}},
		{"O00000045A", Command{Tag: TagWatering, Value: 45}},
		{"J800A", Command{Tag: TagSlot1, Value: 800}},
		{"M2359A", Command{Tag: TagSlot4, Value: 2359}},
	}
	for _, tc := range cases {
		t.Run(tc.frame, func(t *testing.T) {
			got, err := Parse([]byte(tc.frame))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name  string
		frame string
		want  error
	}{
		{"empty", "", ErrMalformedCommand},
		{"no_terminator", "O45", ErrMalformedCommand},
		{"terminator_past_limit", "O123456789A", ErrMalformedCommand},
		{"non_digit", "O4xA", ErrMalformedCommand},
		{"lowercase_terminator", "O45a", ErrMalformedCommand},
		{"unknown_tag", "Z12A", ErrUnknownCommand},
		{"byte_overflow", "O256A", ErrConfigOutOfRange},
		{"humidity_over_100", "H101A", ErrConfigOutOfRange},
		{"slot_hour", "K2400A", ErrConfigOutOfRange},
		{"slot_minute", "L1260A", ErrConfigOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.frame))
			if !errors.Is(err, tc.want) {
				t.Fatalf("Parse(%q) error = %v, want %v", tc.frame, err, tc.want)
			}
		})
	}
}

func TestParse_FailureLeavesConfigUnchanged(t *testing.T) {
	cfg := models.ControlConfig{WateringMinutes: 20}
	sys := models.SystemState{Enabled: true}
	before := cfg

	cmd, err := Parse([]byte("O99"))
	if !errors.Is(err, ErrMalformedCommand) {
		t.Fatalf("expected ErrMalformedCommand, got %v", err)
	}
	if cmd != (Command{}) {
		t.Fatalf("failed parse returned %+v", cmd)
	}
	if cfg != before {
		t.Fatalf("config changed: %+v", cfg)
	}
	if !sys.Enabled {
		t.Fatal("system state changed")
	}
}

func TestApply_Idempotent(t *testing.T) {
	frames := []string{"E", "C", "O30A", "P5A", "T27A", "H40A", "J630A", "K1800A"}
	var once, twice models.ControlConfig
	var sysOnce, sysTwice models.SystemState

	for _, f := range frames {
		cmd, err := Parse([]byte(f))
		if err != nil {
			t.Fatalf("Parse(%q): %v", f, err)
		}
		cmd.Apply(&once, &sysOnce)
		cmd.Apply(&twice, &sysTwice)
		cmd.Apply(&twice, &sysTwice)
	}
	if once != twice || sysOnce != sysTwice {
		t.Fatalf("applying twice differs: %+v/%+v vs %+v/%+v", once, sysOnce, twice, sysTwice)
	}
	if once.Schedule[0] != (models.TimeOfDay{Hour: 6, Minute: 30}) ||
		once.Schedule[1] != (models.TimeOfDay{Hour: 18, Minute: 0}) {
		t.Fatalf("unexpected schedule %+v", once.Schedule)
	}
	if !sysOnce.Enabled || !sysOnce.ScheduleOverride {
		t.Fatalf("toggles not applied: %+v", sysOnce)
	}
}

func TestSlotCommand_Encode(t *testing.T) {
	got := SlotCommand(2, models.TimeOfDay{Hour: 7, Minute: 5}).String()
	if got != "L705A" {
		t.Fatalf("got %q, want L705A", got)
	}
}
