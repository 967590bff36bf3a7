// Package protocol implements the ASCII frames exchanged with the mobile
// client: command frames "<tag><digits>A" that change configuration and
// telemetry frames "*<tag><value>*" that report state.
package protocol

import (
	"errors"
	"fmt"

	"greenhouse_control/internal/models"
)

// Parse errors. Every failed frame leaves the configuration untouched.
var (
	ErrMalformedCommand = errors.New("malformed command")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrConfigOutOfRange = errors.New("config value out of range")
)

const (
	// Terminator ends the digits of a numeric command.
	Terminator = 'A'
	// MaxDigits bounds how far the parser scans for the terminator.
	MaxDigits = 8
)

// Command tags.
const (
	TagEnable       byte = 'E'
	TagDisable      byte = 'e'
	TagOverrideOn   byte = 'C'
	TagOverrideOff  byte = 'c'
	TagWatering     byte = 'O'
	TagPause        byte = 'P'
	TagHeatIndex    byte = 'T'
	TagSoilHumidity byte = 'H'
	TagSlot1        byte = 'J'
	TagSlot2        byte = 'K'
	TagSlot3        byte = 'L'
	TagSlot4        byte = 'M'
)

var slotTags = [models.ScheduleSlots]byte{TagSlot1, TagSlot2, TagSlot3, TagSlot4}

// Command is a parsed inbound frame.
type Command struct {
	Tag   byte
	Value int
}

// IsToggle reports whether the command carries no digits.
func (c Command) IsToggle() bool {
	switch c.Tag {
	case TagEnable, TagDisable, TagOverrideOn, TagOverrideOff:
		return true
	}
	return false
}

// String returns the wire form of the command.
func (c Command) String() string {
	return EncodeCommand(c)
}

// SlotCommand builds the command that sets schedule slot i (0..3) to t.
func SlotCommand(i int, t models.TimeOfDay) Command {
	return Command{Tag: slotTags[i], Value: t.Packed()}
}

// EncodeCommand returns the frame for c.
func EncodeCommand(c Command) string {
	if c.IsToggle() {
		return string(c.Tag)
	}
	return fmt.Sprintf("%c%d%c", c.Tag, c.Value, Terminator)
}

// Parse decodes one inbound frame. Bytes after the terminator (or after a
// toggle tag) are ignored.
func Parse(frame []byte) (Command, error) {
	if len(frame) == 0 {
		return Command{}, fmt.Errorf("%w: empty frame", ErrMalformedCommand)
	}
	cmd := Command{Tag: frame[0]}
	if cmd.IsToggle() {
		return cmd, nil
	}
	if !isNumericTag(cmd.Tag) {
		return Command{}, fmt.Errorf("%w: tag %q", ErrUnknownCommand, cmd.Tag)
	}

	value, err := scanDigits(cmd.Tag, frame[1:])
	if err != nil {
		return Command{}, err
	}
	cmd.Value = value

	if err := validate(cmd); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

func scanDigits(tag byte, b []byte) (int, error) {
	value := 0
	for i := 0; ; i++ {
		if i >= len(b) {
			return 0, fmt.Errorf("%w: tag %q: missing terminator", ErrMalformedCommand, tag)
		}
		c := b[i]
		if c == Terminator {
			return value, nil
		}
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: tag %q: non-digit byte %q", ErrMalformedCommand, tag, c)
		}
		if i == MaxDigits {
			return 0, fmt.Errorf("%w: tag %q: no terminator within %d digits", ErrMalformedCommand, tag, MaxDigits)
		}
		value = value*10 + int(c-'0')
	}
}

func isNumericTag(tag byte) bool {
	switch tag {
	case TagWatering, TagPause, TagHeatIndex, TagSoilHumidity:
		return true
	}
	return slotIndex(tag) >= 0
}

func slotIndex(tag byte) int {
	for i, t := range slotTags {
		if t == tag {
			return i
		}
	}
	return -1
}

func validate(c Command) error {
	switch c.Tag {
	case TagWatering, TagPause, TagHeatIndex:
		if c.Value > 255 {
			return fmt.Errorf("%w: tag %q: %d exceeds 255", ErrConfigOutOfRange, c.Tag, c.Value)
		}
	case TagSoilHumidity:
		if c.Value > 100 {
			return fmt.Errorf("%w: tag %q: %d exceeds 100%%", ErrConfigOutOfRange, c.Tag, c.Value)
		}
	default:
		if t := models.FromPacked(c.Value); !t.Valid() {
			return fmt.Errorf("%w: tag %q: %04d is not a time of day", ErrConfigOutOfRange, c.Tag, c.Value)
		}
	}
	return nil
}

// Apply writes the command into cfg and sys.
func (c Command) Apply(cfg *models.ControlConfig, sys *models.SystemState) {
	switch c.Tag {
	case TagEnable:
		sys.Enabled = true
	case TagDisable:
		sys.Enabled = false
	case TagOverrideOn:
		sys.ScheduleOverride = true
	case TagOverrideOff:
		sys.ScheduleOverride = false
	case TagWatering:
		cfg.WateringMinutes = c.Value
	case TagPause:
		cfg.PauseMinutes = c.Value
	case TagHeatIndex:
		cfg.HeatIndexMin = c.Value
	case TagSoilHumidity:
		cfg.SoilHumidityMax = c.Value
	default:
		if i := slotIndex(c.Tag); i >= 0 {
			cfg.Schedule[i] = models.FromPacked(c.Value)
		}
	}
}
