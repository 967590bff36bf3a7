package service

import (
	"context"

	"greenhouse_control/internal/models"
	"greenhouse_control/internal/repository"
)

const (
	DefaultReadingLimit = 500
	MaxReadingLimit     = 5000
)

type ReadingsService struct {
	readingRepo repository.ReadingRepo
}

func NewReadingsService(readingRepo repository.ReadingRepo) *ReadingsService {
	return &ReadingsService{readingRepo: readingRepo}
}

// History returns samples in the filter range, oldest first, capped at
// MaxReadingLimit.
func (s *ReadingsService) History(ctx context.Context, f ReadingFilter) ([]models.Reading, error) {
	from, to, err := normalizeRange(f.From, f.To)
	if err != nil {
		return nil, err
	}
	limit := f.Limit
	switch {
	case limit <= 0:
		limit = DefaultReadingLimit
	case limit > MaxReadingLimit:
		limit = MaxReadingLimit
	}
	return s.readingRepo.List(ctx, from, to, limit)
}
