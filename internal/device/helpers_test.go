package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nerrad567/gray-logic-power/internal/clock"
)

var epoch = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

// floatTolerance absorbs rounding between per-session and whole-history
// energy sums.
const floatTolerance = 1e-9

func newTestEnv() (*Registry, *clock.Manual) {
	return NewRegistry(), clock.NewManual(epoch)
}

func mustBulb(t *testing.T, reg *Registry, clk clock.Clock, watts float64) *Bulb {
	t.Helper()
	b, err := NewBulb(reg, clk, "bulb-1", "Desk", watts, DefaultBrightness, "")
	require.NoError(t, err)
	return b
}

func mustThermostat(t *testing.T, reg *Registry, clk clock.Clock, watts, temp float64) *Thermostat {
	t.Helper()
	th, err := NewThermostat(reg, clk, "thermo-1", "Hall", watts, temp)
	require.NoError(t, err)
	return th
}

func mustOutlet(t *testing.T, reg *Registry, clk clock.Clock, watts float64, opts ...SensorOption) *Outlet {
	t.Helper()
	o, err := NewOutlet(reg, clk, "outlet-1", "TV", watts, DefaultMaxCurrent, opts...)
	require.NoError(t, err)
	return o
}
