package device

import (
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-power/internal/clock"
)

// Device is one powered appliance.
//
// It owns its PowerAccount and the state of exactly one variant, selected by
// Kind. Kind-specific behaviour (power model, status line, lifecycle hooks)
// is looked up in behaviourOf, never through embedding.
//
// Use the typed handles (Bulb, Thermostat, Outlet) returned by the
// constructors, or AsBulb/AsThermostat/AsOutlet, for kind-specific setters.
type Device struct {
	id   string
	name string
	kind Kind

	account  PowerAccount
	sessions []Session

	clock    clock.Clock
	registry *Registry

	// Exactly one of these is non-nil, matching kind.
	bulb       *bulbState
	thermostat *thermostatState
	outlet     *outletState
}

// newDevice validates the common fields and returns an unregistered device.
// Callers validate their variant parameters first, then set the variant
// state, then call register.
func newDevice(reg *Registry, clk clock.Clock, kind Kind, id, name string, ratedWatts float64) (*Device, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateRatedPower(ratedWatts); err != nil {
		return nil, err
	}
	if id == "" {
		id = GenerateID()
	}
	if clk == nil {
		clk = clock.Real()
	}
	return &Device{
		id:       id,
		name:     name,
		kind:     kind,
		account:  newPowerAccount(ratedWatts),
		clock:    clk,
		registry: reg,
	}, nil
}

func (d *Device) register() {
	d.registry.RegisterCreation()
}

// ID returns the immutable device identifier.
func (d *Device) ID() string { return d.id }

// Name returns the display name.
func (d *Device) Name() string { return d.name }

// Kind returns the device variant.
func (d *Device) Kind() Kind { return d.kind }

// IsOn reports whether a session is open.
func (d *Device) IsOn() bool { return d.account.Active() }

// RatedPower returns the nameplate wattage.
func (d *Device) RatedPower() float64 { return d.account.RatedWatts() }

// Account exposes the power bookkeeping read-only.
func (d *Device) Account() PowerAccount { return d.account }

// Rename changes the display name.
func (d *Device) Rename(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	d.name = name
	return nil
}

// TurnOn opens a session. Calling it on a device that is already on does
// nothing.
func (d *Device) TurnOn() {
	if !d.account.start(d.clock.Now()) {
		return
	}
	if hook := behaviourOf(d.kind).afterOn; hook != nil {
		hook(d)
	}
}

// TurnOff closes the open session, adds its energy to the Registry and
// the session log. Calling it on a device that is already off does nothing.
func (d *Device) TurnOff() {
	s, ok := d.account.stop(d.clock.Now())
	if !ok {
		return
	}
	d.sessions = append(d.sessions, s)
	d.registry.RecordEnergy(s.EnergyWh)
	if hook := behaviourOf(d.kind).afterOff; hook != nil {
		hook(d)
	}
}

// PowerUsage returns the instantaneous draw in watts. It is pure and returns
// 0 while the device is off.
func (d *Device) PowerUsage() float64 {
	return behaviourOf(d.kind).power(d)
}

// EnergyConsumed returns rated power × total on-hours in Wh, including the
// session in progress.
func (d *Device) EnergyConsumed() float64 {
	return d.account.EnergyWh(d.clock.Now())
}

// OnDuration returns the total on-time, including the session in progress.
func (d *Device) OnDuration() time.Duration {
	return d.account.OnDuration(d.clock.Now())
}

// SessionDuration returns the length of the session in progress, or 0.
func (d *Device) SessionDuration() time.Duration {
	return d.account.Live(d.clock.Now())
}

// OnHours returns OnDuration in hours.
func (d *Device) OnHours() float64 {
	return d.OnDuration().Hours()
}

// FormattedOnTime renders OnDuration as "1h 2m 3s".
func (d *Device) FormattedOnTime() string {
	return FormatOnTime(d.OnDuration())
}

// Sessions returns a copy of the completed sessions, oldest first.
func (d *Device) Sessions() []Session {
	out := make([]Session, len(d.sessions))
	copy(out, d.sessions)
	return out
}

// Status returns a one-line description of the device state.
func (d *Device) Status() string {
	return behaviourOf(d.kind).status(d)
}

// Info returns the identity line: name, ID and kind.
func (d *Device) Info() string {
	return fmt.Sprintf("Device: %s (ID: %s) [%s]", d.name, d.id, d.kind.Label())
}

// String implements fmt.Stringer.
func (d *Device) String() string {
	return d.Status()
}

// Sensor returns the device's sensor capability, if it has one.
func (d *Device) Sensor() (Sensor, bool) {
	if d.outlet == nil || d.outlet.sensor == nil {
		return nil, false
	}
	return d.outlet.sensor, true
}

// Clone returns an independent copy of d with the given ID (a new UUID when
// empty) and counts it as a new device in the same Registry.
//
// Everything else is copied as-is, including an open session, which keeps
// its original start time.
func (d *Device) Clone(id string) (*Device, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	if id == "" {
		id = GenerateID()
	}

	cpy := *d
	cpy.id = id
	cpy.sessions = d.Sessions()
	if d.bulb != nil {
		b := *d.bulb
		cpy.bulb = &b
	}
	if d.thermostat != nil {
		t := *d.thermostat
		cpy.thermostat = &t
	}
	if d.outlet != nil {
		o := *d.outlet
		o.sensor = d.outlet.sensor.clone()
		cpy.outlet = &o
	}

	cpy.register()
	return &cpy, nil
}

// AsBulb returns the bulb view of d.
func (d *Device) AsBulb() (*Bulb, bool) {
	if d.kind != KindBulb {
		return nil, false
	}
	return &Bulb{Device: d}, true
}

// AsThermostat returns the thermostat view of d.
func (d *Device) AsThermostat() (*Thermostat, bool) {
	if d.kind != KindThermostat {
		return nil, false
	}
	return &Thermostat{Device: d}, true
}

// AsOutlet returns the outlet view of d.
func (d *Device) AsOutlet() (*Outlet, bool) {
	if d.kind != KindOutlet {
		return nil, false
	}
	return &Outlet{Device: d}, true
}

// onOffLabel renders the on/off flag for status lines.
func onOffLabel(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
