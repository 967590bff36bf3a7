package sensor

import (
	"fmt"

	"greenhouse_control/internal/models"
)

// Acquirer reads both drivers and produces a new snapshot.
type Acquirer struct {
	ambient Ambient
	soil    Analog
	calib   Calibration
}

// NewAcquirer wires the two drivers with a soil calibration.
func NewAcquirer(ambient Ambient, soil Analog, calib Calibration) *Acquirer {
	return &Acquirer{ambient: ambient, soil: soil, calib: calib}
}

// Acquire returns a fresh snapshot derived from prev. A driver that fails leaves
// its fields at the previous values; the failures are returned so the caller can
// log them, but the snapshot is always usable.
func (a *Acquirer) Acquire(prev models.SensorSnapshot) (models.SensorSnapshot, []error) {
	snap := prev
	var errs []error

	if a.soil != nil {
		raw, err := a.soil.ReadChannel()
		if err != nil {
			errs = append(errs, fmt.Errorf("soil channel: %w", err))
		} else {
			snap.SoilHumidity = a.calib.SoilHumidity(raw)
		}
	}

	if a.ambient != nil {
		hum, temp, err := a.ambient.Read()
		if err != nil {
			errs = append(errs, fmt.Errorf("ambient sensor: %w", err))
		} else {
			snap.AmbientHumidity = int(hum)
			snap.AmbientTemperature = int(temp)
		}
	}

	snap.HeatIndex = HeatIndex(snap.AmbientTemperature, snap.AmbientHumidity)
	return snap, errs
}
