package schedule

import "greenhouse_control/internal/models"

// Window names the part of a watering cycle the clock is in.
type Window string

const (
	WindowNone   Window = "NONE"
	WindowFirst  Window = "FIRST"
	WindowPause  Window = "PAUSE"
	WindowSecond Window = "SECOND"
)

// Decision is the outcome of evaluating the schedule at one instant.
type Decision struct {
	Water    bool
	Slot     int // index of the selected slot, -1 if none
	Window   Window
	Overflow bool // a legacy window boundary was clamped
}

// Scheduler evaluates the four watering slots.
type Scheduler struct {
	mode Arithmetic
}

// New returns a Scheduler using the given arithmetic.
func New(mode Arithmetic) *Scheduler {
	return &Scheduler{mode: mode}
}

// Evaluate selects the first slot (ascending index) whose whole cycle
// [start, start+watering) contains now, then reports whether now is in the
// first or second watering window of that cycle. The two windows split the
// watering time around the pause: the first lasts (watering-pause)/2 minutes,
// the pause follows, and the second runs until start+watering.
func (s *Scheduler) Evaluate(now models.TimeOfDay, cfg models.ControlConfig) Decision {
	if s.mode == Legacy {
		return evaluateLegacy(now, cfg)
	}
	return evaluateMinutes(now, cfg)
}

// Reported is the clock as it is sent to the mobile client. Legacy arithmetic
// reports midnight as hour 24.
func (s *Scheduler) Reported(now models.TimeOfDay) models.TimeOfDay {
	if s.mode == Legacy && now.Hour == 0 {
		now.Hour = 24
	}
	return now
}

func half(cfg models.ControlConfig) int {
	h := (cfg.WateringMinutes - cfg.PauseMinutes) / 2
	if h < 0 {
		return 0
	}
	return h
}

func evaluateMinutes(now models.TimeOfDay, cfg models.ControlConfig) Decision {
	d := Decision{Slot: -1, Window: WindowNone}
	if cfg.WateringMinutes <= 0 {
		return d
	}
	first := half(cfg)

	for i, slot := range cfg.Schedule {
		if slot.IsZero() {
			continue
		}
		offset := (now.MinutesOfDay() - slot.MinutesOfDay() + models.MinutesPerDay) % models.MinutesPerDay
		if offset >= cfg.WateringMinutes {
			continue
		}
		d.Slot = i
		switch {
		case offset < first:
			d.Window = WindowFirst
		case offset < first+cfg.PauseMinutes:
			d.Window = WindowPause
		default:
			d.Window = WindowSecond
		}
		d.Water = d.Window != WindowPause
		return d
	}
	return d
}

func evaluateLegacy(now models.TimeOfDay, cfg models.ControlConfig) Decision {
	d := Decision{Slot: -1, Window: WindowNone}
	current := legacyNow(now)
	first := half(cfg)

	for i, slot := range cfg.Schedule {
		start := slot.Packed()
		end, ov := LegacyAddMinutes(slot, cfg.WateringMinutes)
		if current < start || current >= end {
			continue
		}
		firstEnd, ovA := LegacyAddMinutes(slot, first)
		secondStart, ovB := LegacyAddMinutes(slot, first+cfg.PauseMinutes)

		d.Slot = i
		d.Overflow = ov || ovA || ovB
		switch {
		case current < firstEnd:
			d.Window = WindowFirst
		case current >= secondStart:
			d.Window = WindowSecond
		default:
			d.Window = WindowPause
		}
		d.Water = d.Window != WindowPause
		return d
	}
	return d
}
