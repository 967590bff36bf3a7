package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"greenhouse_control/internal/models"
	"greenhouse_control/internal/repository"
	"greenhouse_control/internal/repository/db"
)

func TestSQLiteRoundTrip(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "greenhouse.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	repos := repository.NewRepository(conn)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, typ := range []string{models.EventEnable, models.EventIrrigationOn, models.EventIrrigationOff} {
		err := repos.EventRepo.Append(ctx, models.ControllerEvent{
			OccurredAt:  base.Add(time.Duration(i) * time.Minute),
			Type:        typ,
			Description: typ,
		})
		if err != nil {
			t.Fatalf("Append %s: %v", typ, err)
		}
	}
	events, err := repos.EventRepo.List(ctx, base.Add(time.Minute), time.Time{}, "")
	if err != nil {
		t.Fatalf("List events: %v", err)
	}
	if len(events) != 2 || events[0].Type != models.EventIrrigationOn {
		t.Fatalf("unexpected events: %+v", events)
	}

	for i := 0; i < 3; i++ {
		if err := repos.ReadingRepo.Save(ctx, models.Reading{
			TakenAt:      base.Add(time.Duration(i) * time.Minute),
			SoilHumidity: 60 + i,
		}); err != nil {
			t.Fatalf("Save reading: %v", err)
		}
	}
	readings, err := repos.ReadingRepo.List(ctx, time.Time{}, time.Time{}, 2)
	if err != nil {
		t.Fatalf("List readings: %v", err)
	}
	if len(readings) != 2 || readings[1].SoilHumidity != 61 || !readings[0].TakenAt.Equal(base) {
		t.Fatalf("unexpected readings: %+v", readings)
	}

	id, err := repos.Auth.Create(ctx, "grower", "hash")
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	u, err := repos.Auth.GetByUsername(ctx, "grower")
	if err != nil || u == nil || u.ID != id {
		t.Fatalf("GetByUsername = %+v, %v", u, err)
	}
	if _, err := repos.Auth.Create(ctx, "grower", "other"); !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Fatalf("duplicate Create: got %v, want ErrDuplicateUsername", err)
	}
}
