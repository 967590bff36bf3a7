// Package schedule decides whether the current time falls inside one of the
// configured watering windows.
package schedule

import "greenhouse_control/internal/models"

// Arithmetic selects how slot windows are computed.
type Arithmetic string

const (
	// Minutes uses true minute-of-day arithmetic and wraps at midnight.
	Minutes Arithmetic = "minutes"
	// Legacy reproduces the packed hour*100+minute arithmetic of the
	// first-generation controller, including its hour-carry defect.
	Legacy Arithmetic = "legacy"
)

// LegacyMaxPacked is the top of the packed domain. The legacy clock reports
// midnight as hour 24, so 24:59 is the largest comparable value.
const LegacyMaxPacked = 2459

// ParseArithmetic maps a config string to an Arithmetic, defaulting to Minutes.
func ParseArithmetic(s string) Arithmetic {
	if Arithmetic(s) == Legacy {
		return Legacy
	}
	return Minutes
}

// AddMinutes adds minutes to t, wrapping past midnight.
func AddMinutes(t models.TimeOfDay, minutes int) models.TimeOfDay {
	return models.FromMinutes(t.MinutesOfDay() + minutes)
}

// LegacyAddMinutes adds minutes to t in the packed domain exactly as the legacy
// controller did and returns the packed result. The minute carry only happens
// when the sum is strictly greater than 60, and any hour carry is scaled by 100 before
// being folded into an 8-bit hour, which pushes the result out of the day.
// Results above LegacyMaxPacked are clamped and reported through overflow.
func LegacyAddMinutes(t models.TimeOfDay, minutes int) (packed int, overflow bool) {
	h, m := t.Hour, t.Minute
	hours := minutes / 60
	rest := minutes - 60*hours

	var minute int
	if rest+m > 60 {
		minute = rest + m - 60
		hours++
	} else {
		minute = rest + m
	}

	var hour int
	if carried := (h + hours*100) / 100; carried > 24 {
		hour = ((carried - 24) * 100) & 0xff
	} else {
		hour = (h + hours*100) & 0xff
	}

	packed = hour*100 + (minute & 0xff)
	if packed > LegacyMaxPacked {
		return LegacyMaxPacked, true
	}
	return packed, false
}

// legacyNow converts the clock reading into the packed value the legacy
// comparisons use. Hour 0 is reported as 24.
func legacyNow(t models.TimeOfDay) int {
	if t.Hour == 0 {
		t.Hour = 24
	}
	return t.Packed()
}
