package service

import (
	"context"
	"errors"

	"greenhouse_control/internal/logger"
	"greenhouse_control/internal/models"
	"greenhouse_control/internal/protocol"
	"greenhouse_control/internal/repository"
	"greenhouse_control/internal/state"
)

// GreenhouseService applies commands from the HTTP API and from every link
// transport to the shared state store and records them in the event log.
type GreenhouseService struct {
	store     *state.Store
	eventRepo repository.EventRepo
	log       *logger.Logger
}

func NewGreenhouseService(store *state.Store, eventRepo repository.EventRepo, log *logger.Logger) *GreenhouseService {
	return &GreenhouseService{store: store, eventRepo: eventRepo, log: log}
}

func (s *GreenhouseService) Enable(ctx context.Context) error {
	return s.apply(ctx, protocol.Command{Tag: protocol.TagEnable})
}

func (s *GreenhouseService) Disable(ctx context.Context) error {
	return s.apply(ctx, protocol.Command{Tag: protocol.TagDisable})
}

// ApplyFrame parses one command frame and applies it. A rejected frame leaves
// the configuration untouched and is recorded as MALFORMED_COMMAND.
func (s *GreenhouseService) ApplyFrame(ctx context.Context, frame []byte) (protocol.Command, error) {
	cmd, err := s.store.ApplyFrame(frame)
	if err != nil {
		if s.log != nil {
			s.log.Warnw("command_rejected", "frame", string(frame), "err", err)
		}
		appendEvent(ctx, s.eventRepo, s.log, models.ControllerEvent{
			Type:        models.EventMalformed,
			Description: err.Error(),
			Metadata:    map[string]any{"frame": string(frame), "reason": rejectReason(err)},
		})
		return protocol.Command{}, err
	}
	s.record(ctx, cmd)
	return cmd, nil
}

// HandleFrame is the link.Handler for inbound transport frames.
func (s *GreenhouseService) HandleFrame(frame []byte) {
	_, _ = s.ApplyFrame(context.Background(), frame)
}

func (s *GreenhouseService) apply(ctx context.Context, cmd protocol.Command) error {
	s.store.Apply(cmd)
	s.record(ctx, cmd)
	return nil
}

// record logs an applied command and appends it to the event log.
func (s *GreenhouseService) record(ctx context.Context, cmd protocol.Command) {
	if s.log != nil {
		s.log.Infow("command_applied", "command", cmd.String())
	}

	ev := models.ControllerEvent{Description: "command " + cmd.String()}
	switch cmd.Tag {
	case protocol.TagEnable:
		ev.Type = models.EventEnable
	case protocol.TagDisable:
		ev.Type = models.EventDisable
	default:
		ev.Type = models.EventCommand
		ev.Metadata = map[string]any{"tag": string(cmd.Tag), "value": cmd.Value}
	}
	appendEvent(ctx, s.eventRepo, s.log, ev)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, protocol.ErrUnknownCommand):
		return "unknown"
	case errors.Is(err, protocol.ErrConfigOutOfRange):
		return "out_of_range"
	default:
		return "malformed"
	}
}
