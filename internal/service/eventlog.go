package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"greenhouse_control/internal/logger"
	"greenhouse_control/internal/models"
	"greenhouse_control/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// ErrInvalidTimeRange is returned when a filter's From is after its To.
var ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeRange converts both bounds to UTC and checks their order.
func normalizeRange(from, to time.Time) (time.Time, time.Time, error) {
	from, to = normalizeToUTC(from), normalizeToUTC(to)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return from, to, nil
}

// List returns events matching f, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ControllerEvent, error) {
	from, to, err := normalizeRange(f.From, f.To)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, normalizeEventType(f.Type))
}

// appendEvent records ev. A storage failure is logged and never stops the
// caller.
func appendEvent(ctx context.Context, repo repository.EventRepo, log *logger.Logger, ev models.ControllerEvent) {
	if repo == nil {
		return
	}
	if err := repo.Append(ctx, ev); err != nil && log != nil {
		log.Errorw("event_append_failed", "type", ev.Type, "err", err)
	}
}
