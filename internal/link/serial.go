package link

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tarm/serial"

	"greenhouse_control/internal/logger"
)

// SerialConfig describes the Bluetooth SPP serial port.
type SerialConfig struct {
	Device string
	Baud   int
}

// Serial is the Bluetooth link. Inbound frames are newline delimited; outbound
// telemetry frames are written as-is.
type Serial struct {
	onFrame Handler
	log     *logger.Logger

	mu     sync.Mutex
	port   io.ReadWriteCloser
	status Status
}

// OpenSerial opens the port described by cfg.
func OpenSerial(cfg SerialConfig, onFrame Handler, log *logger.Logger) (*Serial, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name: cfg.Device,
		Baud: cfg.Baud,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Device, err)
	}
	return NewSerial(port, onFrame, log), nil
}

// NewSerial wraps an already open port.
func NewSerial(port io.ReadWriteCloser, onFrame Handler, log *logger.Logger) *Serial {
	return &Serial{onFrame: onFrame, log: log, port: port, status: Connected}
}

// maxFrameLen bounds one inbound line. Longer lines are dropped whole.
const maxFrameLen = 256

// Start launches Run in the background and returns immediately.
func (s *Serial) Start(ctx context.Context) {
	go s.Run(ctx)
}

// Run reads frames until ctx is cancelled or the port fails.
func (s *Serial) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	r := bufio.NewReaderSize(s.port, maxFrameLen)
	var err error
	for {
		var line []byte
		line, err = r.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			if s.log != nil {
				s.log.Warnw("serial_frame_dropped", "reason", "frame too long", "limit", maxFrameLen)
			}
			if err = skipLine(r); err != nil {
				break
			}
			continue
		}
		if err != nil {
			break
		}
		frame := bytes.TrimRight(line, "\r\n")
		if len(frame) == 0 || s.onFrame == nil {
			continue
		}
		s.onFrame(append([]byte(nil), frame...))
	}

	s.mu.Lock()
	closed := s.status == Off
	if !closed {
		s.status = Disconnected
	}
	s.mu.Unlock()
	if !closed && !errors.Is(err, io.EOF) && s.log != nil {
		s.log.Warnw("serial_read_failed", "err", err)
	}
}

// skipLine discards input up to and including the next newline.
func skipLine(r *bufio.Reader) error {
	for {
		_, err := r.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

func (s *Serial) Send(frame string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == Off {
		return ErrClosed
	}
	if _, err := io.WriteString(s.port, frame); err != nil {
		s.status = Disconnected
		return fmt.Errorf("serial write: %w", err)
	}
	s.status = Connected
	return nil
}

func (s *Serial) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == Off {
		return nil
	}
	s.status = Off
	return s.port.Close()
}
