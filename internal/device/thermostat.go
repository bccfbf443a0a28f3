package device

import (
	"fmt"
	"math"

	"github.com/nerrad567/gray-logic-power/internal/clock"
)

// Thermostat power model constants: draw is rated × (baseline + |Δt| / span).
const (
	thermostatBaselineFactor = 0.5
	thermostatSpanCelsius    = 10.0
)

type thermostatState struct {
	current float64
	target  float64
	mode    Mode
}

// Thermostat is a heating/cooling controller whose draw grows with the gap
// between measured and target temperature.
//
// Mode is off whenever the thermostat is off. Requesting a non-off mode, or
// a target different from the measured temperature, switches it on.
type Thermostat struct {
	*Device
}

// NewThermostat constructs a thermostat measuring initialTemp. The target
// starts equal to the measured temperature and the mode starts off.
func NewThermostat(reg *Registry, clk clock.Clock, id, name string, ratedWatts, initialTemp float64) (*Thermostat, error) {
	if err := ValidateTemperature("initial temperature", initialTemp); err != nil {
		return nil, err
	}

	d, err := newDevice(reg, clk, KindThermostat, id, name, ratedWatts)
	if err != nil {
		return nil, err
	}
	d.thermostat = &thermostatState{
		current: initialTemp,
		target:  initialTemp,
		mode:    ModeOff,
	}
	d.register()
	return &Thermostat{Device: d}, nil
}

// CurrentTemperature returns the measured temperature in °C.
func (t *Thermostat) CurrentTemperature() float64 { return t.thermostat.current }

// TargetTemperature returns the setpoint in °C.
func (t *Thermostat) TargetTemperature() float64 { return t.thermostat.target }

// Mode returns the operating mode.
func (t *Thermostat) Mode() Mode { return t.thermostat.mode }

// SetTargetTemperature changes the setpoint. If the thermostat is off and
// the setpoint differs from the measured temperature, it is switched on.
func (t *Thermostat) SetTargetTemperature(celsius float64) error {
	if err := ValidateTemperature("target temperature", celsius); err != nil {
		return err
	}
	t.thermostat.target = celsius
	if !t.IsOn() && celsius != t.thermostat.current {
		t.TurnOn()
	}
	return nil
}

// UpdateTemperature records a new measured temperature. It has no
// lifecycle effect.
func (t *Thermostat) UpdateTemperature(celsius float64) error {
	if err := ValidateTemperature("current temperature", celsius); err != nil {
		return err
	}
	t.thermostat.current = celsius
	return nil
}

// SetMode changes the operating mode from its string form.
//
// A non-off mode switches an idle thermostat on. Selecting off while on
// switches the thermostat off, booking the running session.
func (t *Thermostat) SetMode(mode string) error {
	m, err := ParseMode(mode)
	if err != nil {
		return err
	}
	t.thermostat.mode = m
	switch {
	case m != ModeOff && !t.IsOn():
		t.TurnOn()
	case m == ModeOff && t.IsOn():
		t.TurnOff()
	}
	return nil
}

func thermostatPower(d *Device) float64 {
	st := d.thermostat
	if !d.IsOn() || st.mode == ModeOff {
		return 0
	}
	gap := math.Abs(st.target - st.current)
	return d.RatedPower() * (thermostatBaselineFactor + gap/thermostatSpanCelsius)
}

func thermostatActivated(d *Device) {
	if d.thermostat.mode == ModeOff {
		d.thermostat.mode = ModeHeating
	}
}

func thermostatDeactivated(d *Device) {
	d.thermostat.mode = ModeOff
}

func thermostatStatus(d *Device) string {
	st := d.thermostat
	return fmt.Sprintf("%s %q %s, current %.1f°C, target %.1f°C, mode %s, rated %s W",
		d.kind.Label(), d.name, onOffLabel(d.IsOn()),
		st.current, st.target, st.mode, formatWatts(d.RatedPower()))
}

func thermostatSnapshot(d *Device, s *Snapshot) {
	current, target := d.thermostat.current, d.thermostat.target
	s.CurrentTemperature = &current
	s.TargetTemperature = &target
	s.Mode = d.thermostat.mode
}
