package models

import "fmt"

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// MinutesPerDay is the length of the schedule domain in minutes.
const MinutesPerDay = 24 * 60

// Packed returns the decimal-concatenated encoding hour*100+minute used by the
// legacy controller for comparisons and by the slot command frames.
func (t TimeOfDay) Packed() int {
	return t.Hour*100 + t.Minute
}

// MinutesOfDay returns the number of minutes since midnight.
func (t TimeOfDay) MinutesOfDay() int {
	return t.Hour*60 + t.Minute
}

// IsZero reports whether t is 00:00, which marks an unset schedule slot.
func (t TimeOfDay) IsZero() bool {
	return t.Hour == 0 && t.Minute == 0
}

// Valid reports whether t is inside 00:00..23:59.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// String formats t the way the telemetry frame does (no zero padding).
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%d:%d", t.Hour, t.Minute)
}

// FromMinutes builds a TimeOfDay from minutes since midnight, wrapping at 24h.
func FromMinutes(m int) TimeOfDay {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// FromPacked splits a packed hour*100+minute value.
func FromPacked(p int) TimeOfDay {
	return TimeOfDay{Hour: p / 100, Minute: p % 100}
}
