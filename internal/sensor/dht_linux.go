//go:build linux && cgo

package sensor

import (
	"fmt"

	"github.com/d2r2/go-dht"
	logger "github.com/d2r2/go-logger"
)

// DHT reads a DHTxx air sensor over its single-wire GPIO line.
type DHT struct {
	kind    dht.SensorType
	pin     int
	retries int
}

// NewDHT configures a DHT11, DHT12 or DHT22 on the given BCM pin.
func NewDHT(model string, pin, retries int) (*DHT, error) {
	var kind dht.SensorType
	switch model {
	case "", "dht11":
		kind = dht.DHT11
	case "dht12":
		kind = dht.DHT12
	case "dht22":
		kind = dht.DHT22
	default:
		return nil, fmt.Errorf("unknown dht model %q", model)
	}
	// go-dht logs every retry at info level.
	logger.ChangePackageLogLevel("dht", logger.ErrorLevel)
	return &DHT{kind: kind, pin: pin, retries: retries}, nil
}

// Read returns humidity and temperature.
func (d *DHT) Read() (float32, float32, error) {
	temperature, humidity, _, err := dht.ReadDHTxxWithRetry(d.kind, d.pin, false, d.retries)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: dht pin %d: %v", ErrReadFailure, d.pin, err)
	}
	return humidity, temperature, nil
}
