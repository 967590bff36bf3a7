package sensor

import (
	"math"
	"time"
)

// Simulation constants.
const (
	SimMeanTempC      = 27.0 // daily mean temperature °C
	SimTempSwingC     = 7.0  // half the day/night temperature swing
	SimMeanHumidity   = 55.0 // daily mean relative humidity %
	SimHumiditySwing  = 15.0 // humidity runs opposite to temperature
	SimSoilRawWet     = 300  // raw count of freshly watered soil
	SimSoilRawDry     = 560  // raw count after a dry spell
	simWarmestHour    = 15.0
	simSoilCycleHours = 6.0
)

// Simulated stands in for the DHT11 and the soil ADC when no hardware is
// attached. Readings follow smooth daily curves of the host clock so the
// thresholds and the schedule can be exercised end to end.
type Simulated struct {
	now func() time.Time
}

// NewSimulated returns a simulated driver following now. A nil now uses
// time.Now.
func NewSimulated(now func() time.Time) *Simulated {
	if now == nil {
		now = time.Now
	}
	return &Simulated{now: now}
}

// Read returns humidity and temperature; warmest at 15:00, coolest at 03:00.
func (s *Simulated) Read() (float32, float32, error) {
	phase := s.dayPhase(simWarmestHour, 24)
	temp := SimMeanTempC + SimTempSwingC*math.Cos(phase)
	hum := SimMeanHumidity - SimHumiditySwing*math.Cos(phase)
	return float32(hum), float32(temp), nil
}

// ReadChannel returns a raw soil count swinging between wet and dry every few
// hours.
func (s *Simulated) ReadChannel() (int, error) {
	phase := s.dayPhase(0, simSoilCycleHours)
	mid := float64(SimSoilRawWet+SimSoilRawDry) / 2
	amp := float64(SimSoilRawDry-SimSoilRawWet) / 2
	return int(math.Round(mid - amp*math.Cos(phase))), nil
}

// dayPhase maps the host clock onto [0, 2π) for a cycle of period hours that
// peaks at peak.
func (s *Simulated) dayPhase(peak, period float64) float64 {
	t := s.now()
	hours := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	return 2 * math.Pi * (hours - peak) / period
}
