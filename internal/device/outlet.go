package device

import (
	"fmt"

	"github.com/nerrad567/gray-logic-power/internal/clock"
)

// DefaultMaxCurrent is the current rating used when none is configured.
const DefaultMaxCurrent = 16.0

type outletState struct {
	active     bool
	maxCurrent float64
	sensor     *VoltageSensor
}

// Outlet is a switched socket with a voltage sensor.
//
// The socket relay (active) is independent of the device power state; energy
// only flows while both are on. Switching the device on or off also switches
// the relay.
type Outlet struct {
	*Device
}

// NewOutlet constructs an outlet rated for maxCurrent amps.
func NewOutlet(reg *Registry, clk clock.Clock, id, name string, ratedWatts, maxCurrent float64, opts ...SensorOption) (*Outlet, error) {
	if err := ValidateMaxCurrent(maxCurrent); err != nil {
		return nil, err
	}

	d, err := newDevice(reg, clk, KindOutlet, id, name, ratedWatts)
	if err != nil {
		return nil, err
	}
	d.outlet = &outletState{
		maxCurrent: maxCurrent,
		sensor:     newVoltageSensor(opts...),
	}
	d.register()
	return &Outlet{Device: d}, nil
}

// OutletActive reports whether the socket relay is closed.
func (o *Outlet) OutletActive() bool { return o.outlet.active }

// ToggleOutlet flips the socket relay without changing the device state.
func (o *Outlet) ToggleOutlet() {
	o.outlet.active = !o.outlet.active
}

// MaxCurrent returns the current rating in amps.
func (o *Outlet) MaxCurrent() float64 { return o.outlet.maxCurrent }

// VoltageSensor returns the outlet's sensor.
func (o *Outlet) VoltageSensor() *VoltageSensor { return o.outlet.sensor }

// ReadCount returns how many voltage readings have been taken.
func (o *Outlet) ReadCount() uint64 { return o.outlet.sensor.ReadCount() }

// CurrentVoltage takes a voltage reading.
func (o *Outlet) CurrentVoltage() float64 { return o.outlet.sensor.CurrentVoltage() }

func outletPower(d *Device) float64 {
	if !d.IsOn() || !d.outlet.active {
		return 0
	}
	return d.RatedPower()
}

func outletActivated(d *Device) {
	d.outlet.active = true
}

func outletDeactivated(d *Device) {
	d.outlet.active = false
}

func outletStatus(d *Device) string {
	relay := "outlet inactive"
	if d.outlet.active {
		relay = "outlet active"
	}
	return fmt.Sprintf("%s %q %s, %s, max current %.1f A, rated %s W",
		d.kind.Label(), d.name, onOffLabel(d.IsOn()),
		relay, d.outlet.maxCurrent, formatWatts(d.RatedPower()))
}

func outletSnapshot(d *Device, s *Snapshot) {
	active, maxCurrent, reads := d.outlet.active, d.outlet.maxCurrent, d.outlet.sensor.ReadCount()
	s.OutletActive = &active
	s.MaxCurrent = &maxCurrent
	s.SensorReads = &reads
}
