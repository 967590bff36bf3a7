// Package link carries protocol frames between the controller and the mobile
// client. Several transports can be active at once; the controller sees them
// through Multi.
package link

import "errors"

// Status is the connection state shown on the status LED.
type Status int

const (
	Off Status = iota
	Disconnected
	Connected
)

func (s Status) String() string {
	switch s {
	case Connected:
		return "CONNECTED"
	case Disconnected:
		return "DISCONNECTED"
	default:
		return "OFF"
	}
}

// ErrClosed is returned by Send on a closed transport.
var ErrClosed = errors.New("link closed")

// Handler receives one inbound frame. It is called from the transport's
// reader goroutine and must not block for long.
type Handler func(frame []byte)

// Transport sends telemetry frames and reports its connection state.
type Transport interface {
	Send(frame string) error
	Status() Status
	Close() error
}

// Multi fans frames out to every connected transport.
type Multi []Transport

// Send writes frame to the connected members and joins their errors.
func (m Multi) Send(frame string) error {
	var errs []error
	for _, t := range m {
		if t.Status() != Connected {
			continue
		}
		if err := t.Send(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Status is the best status of any member.
func (m Multi) Status() Status {
	best := Off
	for _, t := range m {
		if s := t.Status(); s > best {
			best = s
		}
	}
	return best
}

func (m Multi) Close() error {
	var errs []error
	for _, t := range m {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
