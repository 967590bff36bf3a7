//go:build !linux || !cgo

package sensor

import "errors"

// DHT is not available on non-Linux platforms.
type DHT struct{}

// NewDHT returns an error on non-Linux platforms.
func NewDHT(model string, pin, retries int) (*DHT, error) {
	return nil, errors.New("dht: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (d *DHT) Read() (float32, float32, error) {
	return 0, 0, ErrReadFailure
}
