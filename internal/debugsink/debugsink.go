// Package debugsink writes the human readable debug line produced each tick.
package debugsink

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tarm/serial"

	"greenhouse_control/internal/logger"
)

// DefaultBaud matches the controller's debug UART.
const DefaultBaud = 115200

// Sink receives one debug line per tick.
type Sink interface {
	WriteLine(line string)
}

// Writer sends lines to an io.Writer, usually the debug serial port. A failed
// write is logged and the line falls back to the logger.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	log *logger.Logger
}

// NewWriter wraps w. A nil w sends every line to the logger at debug level.
func NewWriter(w io.Writer, log *logger.Logger) *Writer {
	return &Writer{w: w, log: log}
}

// OpenSerial opens the debug UART.
func OpenSerial(device string, baud int, log *logger.Logger) (*Writer, io.Closer, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, nil, fmt.Errorf("open debug serial %s: %w", device, err)
	}
	return NewWriter(port, log), port, nil
}

func (d *Writer) WriteLine(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.w != nil {
		_, err := io.WriteString(d.w, line)
		if err == nil {
			return
		}
		if d.log != nil {
			d.log.Warnw("debug_write_failed", "err", err)
		}
	}
	if d.log != nil {
		d.log.Debugw("debug_line", "line", strings.TrimRight(line, "\r\n"))
	}
}
