package service

import (
	"context"
	"sync"
	"time"

	"greenhouse_control/internal/models"
)

// fakeEventRepo records appended events and serves scripted List results.
type fakeEventRepo struct {
	mu       sync.Mutex
	appended []models.ControllerEvent
	appendFn func(models.ControllerEvent) error

	gotFrom time.Time
	gotTo   time.Time
	gotType string
	events  []models.ControllerEvent
	listErr error
	calls   int
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.ControllerEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendFn != nil {
		if err := f.appendFn(e); err != nil {
			return err
		}
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.ControllerEvent, error) {
	f.calls++
	f.gotFrom, f.gotTo, f.gotType = from, to, typ
	return f.events, f.listErr
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

// fakeReadingRepo records saved readings.
type fakeReadingRepo struct {
	saved    []models.Reading
	saveErr  error
	gotFrom  time.Time
	gotTo    time.Time
	gotLimit int
	readings []models.Reading
}

func (f *fakeReadingRepo) Save(ctx context.Context, r models.Reading) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeReadingRepo) List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error) {
	f.gotFrom, f.gotTo, f.gotLimit = from, to, limit
	return f.readings, nil
}

// fixedClock always reads the same time of day.
type fixedClock struct{ t models.TimeOfDay }

func (c *fixedClock) Read() models.TimeOfDay { return c.t }
func (c *fixedClock) Configure(t models.TimeOfDay) { c.t = t }

// lineSink collects debug lines.
type lineSink struct{ lines []string }

func (s *lineSink) WriteLine(line string) { s.lines = append(s.lines, line) }
