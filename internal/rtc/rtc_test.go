package rtc

import (
	"testing"
	"time"

	"greenhouse_control/internal/models"
)

func TestSoftClock_ConfigureAndAdvance(t *testing.T) {
	host := time.Date(2024, 4, 8, 18, 0, 30, 0, time.UTC)
	c := NewSoftClock(func() time.Time { return host })

	c.Configure(models.TimeOfDay{Hour: 10, Minute: 32})
	if got := c.Read(); got != (models.TimeOfDay{Hour: 10, Minute: 32}) {
		t.Fatalf("after configure got %v, want 10:32", got)
	}

	host = host.Add(29*time.Second + 31*time.Minute)
	if got := c.Read(); got != (models.TimeOfDay{Hour: 11, Minute: 3}) {
		t.Fatalf("after advance got %v, want 11:3", got)
	}

	host = host.Add(13 * time.Hour)
	if got := c.Read(); got != (models.TimeOfDay{Hour: 0, Minute: 3}) {
		t.Fatalf("after midnight got %v, want 0:3", got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("10:32")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (models.TimeOfDay{Hour: 10, Minute: 32}) {
		t.Fatalf("got %v", got)
	}
	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Fatal("expected error for 25:00")
	}
}
