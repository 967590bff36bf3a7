// Package state holds the controller state shared between the control loop,
// the link transports and the HTTP API.
package state

import (
	"sync"
	"time"

	"greenhouse_control/internal/models"
	"greenhouse_control/internal/protocol"
)

// Tick is what the control loop publishes after each fast tick.
type Tick struct {
	Sensors   models.SensorSnapshot
	Actuators models.ActuatorState
	Clock     models.TimeOfDay
	Link      string
}

// Store keeps the configuration, the toggles and the last published tick
// behind an RWMutex. Readers always get copies.
type Store struct {
	mu     sync.RWMutex
	status models.Status
	now    func() time.Time
}

// NewStore seeds the store with the startup configuration.
func NewStore(cfg models.ControlConfig, sys models.SystemState) *Store {
	return &Store{
		status: models.Status{Config: cfg, System: sys},
		now:    time.Now,
	}
}

// Inputs returns the configuration and toggles the next tick should use.
func (s *Store) Inputs() (models.ControlConfig, models.SystemState) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.Config, s.status.System
}

// Apply writes a parsed command.
func (s *Store) Apply(cmd protocol.Command) {
	s.mu.Lock()
	cmd.Apply(&s.status.Config, &s.status.System)
	s.mu.Unlock()
}

// ApplyFrame parses frame and applies it. A frame that fails to parse
// changes nothing.
func (s *Store) ApplyFrame(frame []byte) (protocol.Command, error) {
	cmd, err := protocol.Parse(frame)
	if err != nil {
		return protocol.Command{}, err
	}
	s.Apply(cmd)
	return cmd, nil
}

// Publish records the result of a fast tick.
func (s *Store) Publish(t Tick) {
	s.mu.Lock()
	s.status.Sensors = t.Sensors
	s.status.Actuators = t.Actuators
	s.status.Clock = t.Clock
	s.status.Link = t.Link
	s.status.Tick++
	s.status.UpdatedAt = s.now()
	s.mu.Unlock()
}

// Status returns a point-in-time copy of everything.
func (s *Store) Status() models.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
