package service

import (
	"context"

	"greenhouse_control/internal/models"
	"greenhouse_control/internal/state"
)

type MonitoringService struct {
	store *state.Store
}

func NewMonitoringService(store *state.Store) *MonitoringService {
	return &MonitoringService{store: store}
}

// GetStatus returns the configuration and the last published tick.
func (s *MonitoringService) GetStatus(ctx context.Context) (models.Status, error) {
	if err := ctx.Err(); err != nil {
		return models.Status{}, err
	}
	st := s.store.Status()
	st.UpdatedAt = normalizeToUTC(st.UpdatedAt)
	return st, nil
}
