package device

import (
	"fmt"

	"github.com/nerrad567/gray-logic-power/internal/clock"
)

// Bulb defaults.
const (
	DefaultBrightness = MaxBrightness
	DefaultColor      = "warm white"
)

type bulbState struct {
	brightness int
	color      string
}

// Bulb is a dimmable lamp. It draws its rated power whenever it is on;
// brightness does not scale the draw.
type Bulb struct {
	*Device
}

// NewBulb constructs a bulb. An empty color selects DefaultColor.
// Brightness must be within [MinBrightness, MaxBrightness].
func NewBulb(reg *Registry, clk clock.Clock, id, name string, ratedWatts float64, brightness int, color string) (*Bulb, error) {
	if err := ValidateBrightness(brightness); err != nil {
		return nil, err
	}
	if color == "" {
		color = DefaultColor
	}

	d, err := newDevice(reg, clk, KindBulb, id, name, ratedWatts)
	if err != nil {
		return nil, err
	}
	d.bulb = &bulbState{brightness: brightness, color: color}
	d.register()
	return &Bulb{Device: d}, nil
}

// Brightness returns the brightness level in percent.
func (b *Bulb) Brightness() int { return b.bulb.brightness }

// SetBrightness changes the brightness. Out-of-range levels are rejected
// and the current level is kept.
func (b *Bulb) SetBrightness(level int) error {
	if err := ValidateBrightness(level); err != nil {
		return err
	}
	b.bulb.brightness = level
	return nil
}

// Color returns the light color.
func (b *Bulb) Color() string { return b.bulb.color }

// SetColor changes the light color.
func (b *Bulb) SetColor(color string) error {
	if color == "" {
		return invalid("color", `""`, "cannot be empty")
	}
	b.bulb.color = color
	return nil
}

func bulbPower(d *Device) float64 {
	if !d.IsOn() {
		return 0
	}
	return d.RatedPower()
}

func bulbStatus(d *Device) string {
	return fmt.Sprintf("%s %q %s, brightness %d%%, color %s, rated %s W",
		d.kind.Label(), d.name, onOffLabel(d.IsOn()),
		d.bulb.brightness, d.bulb.color, formatWatts(d.RatedPower()))
}

func bulbSnapshot(d *Device, s *Snapshot) {
	brightness := d.bulb.brightness
	s.Brightness = &brightness
	s.Color = d.bulb.color
}
