package sensor

import (
	"errors"
	"testing"

	"greenhouse_control/internal/models"
)

func TestAcquire_ComputesSnapshot(t *testing.T) {
	a := NewAcquirer(
		&FakeAmbient{Samples: []AmbientSample{{Humidity: 60.7, Temperature: 30.9}}},
		&FakeAnalog{Raw: 300},
		DefaultCalibration,
	)
	snap, errs := a.Acquire(models.SensorSnapshot{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := models.SensorSnapshot{
		SoilHumidity:       90,
		AmbientTemperature: 30,
		AmbientHumidity:    60,
		HeatIndex:          32,
	}
	if snap != want {
		t.Fatalf("got %+v, want %+v", snap, want)
	}
}

func TestAcquire_KeepsPreviousValuesOnFailure(t *testing.T) {
	prev := models.SensorSnapshot{
		SoilHumidity:       42,
		AmbientTemperature: 35,
		AmbientHumidity:    50,
		HeatIndex:          40,
	}
	a := NewAcquirer(
		&FakeAmbient{Err: errors.New("checksum mismatch")},
		&FakeAnalog{Err: errors.New("i2c nack")},
		DefaultCalibration,
	)
	snap, errs := a.Acquire(prev)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if snap != prev {
		t.Fatalf("snapshot changed on failure: got %+v, want %+v", snap, prev)
	}
}

func TestAcquire_PartialFailure(t *testing.T) {
	prev := models.SensorSnapshot{AmbientTemperature: 20, AmbientHumidity: 30, HeatIndex: 20}
	a := NewAcquirer(
		&FakeAmbient{Err: ErrReadFailure},
		&FakeAnalog{Raw: 1000},
		DefaultCalibration,
	)
	snap, errs := a.Acquire(prev)
	if len(errs) != 1 || !errors.Is(errs[0], ErrReadFailure) {
		t.Fatalf("expected one ErrReadFailure, got %v", errs)
	}
	if snap.SoilHumidity != 0 || snap.AmbientTemperature != 20 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
