package device

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Snapshot is a read-only picture of a device, shaped for telemetry sinks.
// Taking one never mutates the device; in particular it does not take a
// sensor reading.
type Snapshot struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Kind       Kind      `json:"kind"`
	On         bool      `json:"on"`
	RatedWatts float64   `json:"rated_w"`
	PowerWatts float64   `json:"power_w"`
	EnergyWh   float64   `json:"energy_wh"`
	OnSeconds  float64   `json:"on_seconds"`
	Timestamp  time.Time `json:"timestamp"`

	// Bulb
	Brightness *int   `json:"brightness,omitempty"`
	Color      string `json:"color,omitempty"`

	// Thermostat
	CurrentTemperature *float64 `json:"current_temperature,omitempty"`
	TargetTemperature  *float64 `json:"target_temperature,omitempty"`
	Mode               Mode     `json:"mode,omitempty"`

	// Outlet
	OutletActive *bool    `json:"outlet_active,omitempty"`
	MaxCurrent   *float64 `json:"max_current,omitempty"`
	SensorReads  *uint64  `json:"sensor_reads,omitempty"`
}

// Snapshot captures the device at the current clock time.
func (d *Device) Snapshot() Snapshot {
	now := d.clock.Now()
	onFor := d.account.OnDuration(now)
	s := Snapshot{
		ID:         d.id,
		Name:       d.name,
		Kind:       d.kind,
		On:         d.IsOn(),
		RatedWatts: d.RatedPower(),
		PowerWatts: d.PowerUsage(),
		EnergyWh:   energyWh(d.RatedPower(), onFor),
		OnSeconds:  onFor.Seconds(),
		Timestamp:  now,
	}
	behaviourOf(d.kind).snapshot(d, &s)
	return s
}

// FormatOnTime renders a duration as "1h 2m 3s", omitting leading zero
// units. Sub-second remainders are truncated.
func FormatOnTime(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if hours > 0 || minutes > 0 {
		fmt.Fprintf(&b, "%dm ", minutes)
	}
	fmt.Fprintf(&b, "%ds", seconds)
	return b.String()
}

func formatWatts(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
