// Package rtc provides the controller's time-of-day clock.
package rtc

import (
	"fmt"
	"sync"
	"time"

	"greenhouse_control/internal/models"
)

// Clock is the real-time clock the schedule is evaluated against.
type Clock interface {
	Read() models.TimeOfDay
	Configure(t models.TimeOfDay)
}

// SoftClock is a real-time clock kept as an offset from the host clock. It
// starts from whatever time it is configured with and does not survive a
// restart, like the battery-less RTC it replaces.
type SoftClock struct {
	mu     sync.Mutex
	now    func() time.Time
	offset time.Duration
}

// NewSoftClock returns a clock following now. A nil now uses time.Now.
func NewSoftClock(now func() time.Time) *SoftClock {
	if now == nil {
		now = time.Now
	}
	return &SoftClock{now: now}
}

// Read returns the current time of day.
func (c *SoftClock) Read() models.TimeOfDay {
	c.mu.Lock()
	t := c.now().Add(c.offset)
	c.mu.Unlock()
	return models.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Configure sets the clock so that Read returns t from now on.
func (c *SoftClock) Configure(t models.TimeOfDay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	host := c.now()
	wantMin := t.MinutesOfDay()
	hostMin := host.Hour()*60 + host.Minute()
	// Keep the host's seconds so minute boundaries line up.
	c.offset = time.Duration(wantMin-hostMin) * time.Minute
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (models.TimeOfDay, error) {
	tm, err := time.Parse("15:04", s)
	if err != nil {
		return models.TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return models.TimeOfDay{Hour: tm.Hour(), Minute: tm.Minute()}, nil
}
