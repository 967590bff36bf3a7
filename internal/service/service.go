package service

import (
	"context"
	"time"

	"greenhouse_control/internal/logger"
	"greenhouse_control/internal/models"
	"greenhouse_control/internal/protocol"
	"greenhouse_control/internal/repository"
	"greenhouse_control/internal/state"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Greenhouse changes the controller configuration. Changes take effect on the
// next control tick.
type Greenhouse interface {
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	ApplyFrame(ctx context.Context, frame []byte) (protocol.Command, error)
}

// Monitoring exposes the last published controller status.
type Monitoring interface {
	GetStatus(ctx context.Context) (models.Status, error)
}

// EventLog exposes the append-only controller event log.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ControllerEvent, error)
}

// Readings exposes the sampled sensor history.
type Readings interface {
	History(ctx context.Context, f ReadingFilter) ([]models.Reading, error)
}

// Controller runs the control loop until ctx is cancelled.
type Controller interface {
	Run(ctx context.Context)
}

type Service struct {
	Greenhouse
	Monitoring
	EventLog
	Readings
	Controller
	Authorization
}

// Deps carries what the services need besides the repositories.
type Deps struct {
	Store    *state.Store
	Hardware Hardware
	Loop     LoopOptions
	Auth     AuthOptions
	Log      *logger.Logger
}

// NewService wires the repositories and the hardware into the services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	return &Service{
		Greenhouse:    NewGreenhouseService(deps.Store, repos.EventRepo, deps.Log),
		Monitoring:    NewMonitoringService(deps.Store),
		EventLog:      NewEventLogService(repos.EventRepo),
		Readings:      NewReadingsService(repos.ReadingRepo),
		Controller:    NewControllerService(deps.Store, deps.Hardware, deps.Loop, repos.EventRepo, repos.ReadingRepo, deps.Log),
		Authorization: NewAuthService(repos.Auth, deps.Auth),
	}
}

// LoopOptions tunes the control loop.
type LoopOptions struct {
	FastTick        time.Duration
	SlowTick        time.Duration
	HistoryInterval time.Duration
}
