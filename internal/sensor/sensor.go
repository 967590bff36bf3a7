// Package sensor turns raw driver readings into the calibrated snapshot the
// controller works with.
package sensor

import (
	"errors"
	"math"
)

// ErrReadFailure is returned by drivers that could not produce a reading.
var ErrReadFailure = errors.New("sensor read failure")

// Ambient reads relative humidity (%) and temperature (°C) from the air sensor.
type Ambient interface {
	Read() (humidity, temperature float32, err error)
}

// Analog reads a raw count from the soil moisture channel.
type Analog interface {
	ReadChannel() (int, error)
}

// Calibration is the linear mapping from raw soil count to humidity percent.
type Calibration struct {
	Slope  float64
	Offset float64
}

// DefaultCalibration matches the HW-390 capacitive probe read in millivolts.
var DefaultCalibration = Calibration{Slope: -0.269, Offset: 171}

// SoilHumidity converts a raw reading to a percentage in 0..100.
func (c Calibration) SoilHumidity(raw int) int {
	v := math.Round(c.Slope*float64(raw) + c.Offset)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

// Heat index domain bounds (°C, %).
const (
	heatIndexMinTemp     = 26.6
	heatIndexMaxTemp     = 43.3
	heatIndexMinHumidity = 40
)

// HeatIndex returns the NWS/NOAA apparent temperature in whole degrees Celsius.
// Outside 26.6 <= t < 43.3 with h > 40 it returns t unchanged. Every stage is
// truncated toward zero, matching the values the mobile client has always shown.
func HeatIndex(t, h int) int {
	tf64 := float64(t)
	if !(tf64 >= heatIndexMinTemp && tf64 < heatIndexMaxTemp && h > heatIndexMinHumidity) {
		return t
	}
	tf := math.Trunc(tf64*1.8 + 32)
	rh := float64(h)

	hi := -42.379 +
		2.04901523*tf +
		10.14333127*rh -
		0.22475541*tf*rh -
		6.83783e-3*tf*tf -
		5.481717e-2*rh*rh +
		1.22874e-3*tf*tf*rh +
		8.5282e-4*tf*rh*rh -
		1.99e-6*tf*tf*rh*rh

	return int((math.Trunc(hi) - 32) / 1.8)
}
