// Package gpio drives the relay outputs and the status LED.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Output is a single digital output line.
type Output interface {
	// Set drives the line high (true) or low (false).
	Set(on bool) error

	// Close releases the line.
	Close() error
}

// Pin defaults (BCM numbering).
const (
	DefaultPinIrrigation  = 20
	DefaultPinVentilation = 21
	DefaultPinLED         = 26
)

// Indicator is an LED on top of an Output that remembers its level so it can
// be toggled.
type Indicator struct {
	out Output
	on  bool
}

// NewIndicator wraps out; the LED starts off.
func NewIndicator(out Output) *Indicator {
	return &Indicator{out: out}
}

// On lights the LED.
func (i *Indicator) On() error { return i.set(true) }

// Off darkens the LED.
func (i *Indicator) Off() error { return i.set(false) }

// Toggle inverts the LED.
func (i *Indicator) Toggle() error { return i.set(!i.on) }

// Lit reports the last level written.
func (i *Indicator) Lit() bool { return i.on }

func (i *Indicator) set(on bool) error {
	if err := i.out.Set(on); err != nil {
		return err
	}
	i.on = on
	return nil
}
