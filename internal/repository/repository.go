package repository

import (
	"context"
	"database/sql"
	"time"

	"greenhouse_control/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ReadingRepo stores the sampled sensor and relay history.
type ReadingRepo interface {
	Save(ctx context.Context, r models.Reading) error
	List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.ControllerEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ControllerEvent, error)
}

type Repository struct {
	ReadingRepo ReadingRepo
	EventRepo   EventRepo
	Auth        Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ReadingRepo: NewReadingSQLite(db),
		EventRepo:   NewEventSQLite(db),
		Auth:        NewUserRepository(db),
	}
}
