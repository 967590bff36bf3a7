package sensor

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"
)

var adsChannels = [...]ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// ADS1115 reads the soil probe through an ADS1115 on the I²C bus. The raw
// count is the measured potential in millivolts.
type ADS1115 struct {
	bus i2c.BusCloser
	pin ads1x15.PinADC
}

// NewADS1115 opens the named I²C bus ("" for the default) and claims channel 0..3.
func NewADS1115(busName string, channel int) (*ADS1115, error) {
	if channel < 0 || channel >= len(adsChannels) {
		return nil, fmt.Errorf("ads1115: channel %d out of range 0..3", channel)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	adc, err := ads1x15.NewADS1115(bus, &ads1x15.DefaultOpts)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("init ads1115: %w", err)
	}

	pin, err := adc.PinForChannel(adsChannels[channel], 5*physic.Volt, 1*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("ads1115 channel %d: %w", channel, err)
	}

	return &ADS1115{bus: bus, pin: pin}, nil
}

// ReadChannel returns the channel potential in millivolts.
func (a *ADS1115) ReadChannel() (int, error) {
	sample, err := a.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: ads1115: %v", ErrReadFailure, err)
	}
	return int(sample.V / physic.MilliVolt), nil
}

// Close halts the pin and releases the bus.
func (a *ADS1115) Close() error {
	var errs []error
	if a.pin != nil {
		if err := a.pin.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt pin: %w", err))
		}
	}
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close bus: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
