package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nerrad567/gray-logic-power/internal/clock"
	"github.com/nerrad567/gray-logic-power/internal/device"
)

const testNamespace = "graypower"

// newTestFleet builds a 60 W bulb that ran for one hour, was switched off,
// and has now been on again for thirty minutes, next to an idle 120 W outlet.
func newTestFleet(t *testing.T) (*device.Fleet, *device.Registry) {
	t.Helper()
	reg := device.NewRegistry()
	clk := clock.NewManual(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	fleet := device.NewFleet()

	bulb, err := device.NewBulb(reg, clk, "bulb-1", "Desk", 60, device.DefaultBrightness, "")
	if err != nil {
		t.Fatalf("NewBulb() error = %v", err)
	}
	outlet, err := device.NewOutlet(reg, clk, "outlet-1", "TV", 120, device.DefaultMaxCurrent)
	if err != nil {
		t.Fatalf("NewOutlet() error = %v", err)
	}
	for _, d := range []*device.Device{bulb.Device, outlet.Device} {
		if err := fleet.Add(d); err != nil {
			t.Fatalf("Add(%s) error = %v", d.ID(), err)
		}
	}

	bulb.TurnOn()
	clk.Advance(time.Hour)
	bulb.TurnOff()
	bulb.TurnOn()
	clk.Advance(30 * time.Minute)

	return fleet, reg
}

func TestCollector_Totals(t *testing.T) {
	fleet, reg := newTestFleet(t)
	pr := prometheus.NewPedanticRegistry()
	pr.MustRegister(NewCollector(testNamespace, fleet, reg))

	expected := `
# HELP graypower_devices_created_total Devices constructed since start, including clones.
# TYPE graypower_devices_created_total counter
graypower_devices_created_total 2
# HELP graypower_energy_consumed_wh Energy recorded by turn-off events since the last reset, in watt-hours.
# TYPE graypower_energy_consumed_wh gauge
graypower_energy_consumed_wh 60
`
	if err := testutil.GatherAndCompare(pr, strings.NewReader(expected),
		"graypower_devices_created_total", "graypower_energy_consumed_wh"); err != nil {
		t.Errorf("unexpected totals:\n%v", err)
	}
}

func TestCollector_DevicePower(t *testing.T) {
	fleet, reg := newTestFleet(t)
	pr := prometheus.NewPedanticRegistry()
	pr.MustRegister(NewCollector(testNamespace, fleet, reg))

	expected := `
# HELP graypower_device_power_watts Current power draw of the device in watts.
# TYPE graypower_device_power_watts gauge
graypower_device_power_watts{device_id="bulb-1",kind="bulb"} 60
graypower_device_power_watts{device_id="outlet-1",kind="outlet"} 0
# HELP graypower_device_energy_wh_total Energy consumed by the device in watt-hours.
# TYPE graypower_device_energy_wh_total counter
graypower_device_energy_wh_total{device_id="bulb-1",kind="bulb"} 90
graypower_device_energy_wh_total{device_id="outlet-1",kind="outlet"} 0
# HELP graypower_device_on Whether the device is switched on (1) or off (0).
# TYPE graypower_device_on gauge
graypower_device_on{device_id="bulb-1",kind="bulb"} 1
graypower_device_on{device_id="outlet-1",kind="outlet"} 0
`
	if err := testutil.GatherAndCompare(pr, strings.NewReader(expected),
		"graypower_device_power_watts", "graypower_device_energy_wh_total", "graypower_device_on"); err != nil {
		t.Errorf("unexpected device metrics:\n%v", err)
	}
}

func TestCollector_FleetByKind(t *testing.T) {
	fleet, reg := newTestFleet(t)
	pr := prometheus.NewPedanticRegistry()
	pr.MustRegister(NewCollector(testNamespace, fleet, reg))

	expected := `
# HELP graypower_fleet_devices Devices currently managed, by kind.
# TYPE graypower_fleet_devices gauge
graypower_fleet_devices{kind="bulb"} 1
graypower_fleet_devices{kind="outlet"} 1
graypower_fleet_devices{kind="thermostat"} 0
`
	if err := testutil.GatherAndCompare(pr, strings.NewReader(expected), "graypower_fleet_devices"); err != nil {
		t.Errorf("unexpected fleet metrics:\n%v", err)
	}
}

func TestCollector_KindSpecificSeries(t *testing.T) {
	reg := device.NewRegistry()
	clk := clock.NewManual(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	fleet := device.NewFleet()

	th, err := device.NewThermostat(reg, clk, "thermo-1", "Hall", 1000, 19.5)
	if err != nil {
		t.Fatalf("NewThermostat() error = %v", err)
	}
	if err := fleet.Add(th.Device); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if got := testutil.CollectAndCount(NewCollector(testNamespace, fleet, nil),
		"graypower_thermostat_temperature_celsius"); got < 1 {
		t.Errorf("thermostat temperature series = %d, want at least 1", got)
	}
	if got := testutil.CollectAndCount(NewCollector(testNamespace, fleet, nil),
		"graypower_bulb_brightness_percent", "graypower_outlet_sensor_reads_total"); got != 0 {
		t.Errorf("bulb/outlet series for a thermostat-only fleet = %d, want 0", got)
	}
	if got := testutil.CollectAndCount(NewCollector(testNamespace, fleet, nil),
		"graypower_devices_created_total"); got != 0 {
		t.Errorf("totals series without a registry = %d, want 0", got)
	}
}

func TestCollector_ScrapeDoesNotReadSensor(t *testing.T) {
	fleet, reg := newTestFleet(t)
	c := NewCollector(testNamespace, fleet, reg)

	for i := 0; i < 3; i++ {
		testutil.CollectAndCount(c)
	}

	snap, err := fleet.Snapshot("outlet-1")
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.SensorReads == nil || *snap.SensorReads != 0 {
		t.Errorf("SensorReads after scrapes = %v, want 0", snap.SensorReads)
	}
}

func TestCollector_Lint(t *testing.T) {
	fleet, reg := newTestFleet(t)
	problems, err := testutil.CollectAndLint(NewCollector(testNamespace, fleet, reg))
	if err != nil {
		t.Fatalf("CollectAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Errorf("lint %s: %s", p.Metric, p.Text)
	}
}
