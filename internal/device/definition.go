package device

import (
	"github.com/nerrad567/gray-logic-power/internal/clock"
)

// Definition describes a device to build from configuration data.
// Fields that do not apply to Kind are ignored.
type Definition struct {
	ID         string
	Name       string
	Kind       Kind
	RatedWatts float64

	// Bulb. Nil brightness selects DefaultBrightness.
	Brightness *int
	Color      string

	// Thermostat
	InitialTemperature float64
	TargetTemperature  *float64
	Mode               string

	// Outlet. Zero selects DefaultMaxCurrent.
	MaxCurrent float64

	// On switches the device on once it is built.
	On bool
}

// Build constructs the device described by def and registers it with reg.
//
// Thermostat target and mode are applied after construction through the
// regular setters, so they follow the usual auto-activation rules.
func Build(def Definition, reg *Registry, clk clock.Clock) (*Device, error) {
	kind, err := ParseKind(string(def.Kind))
	if err != nil {
		return nil, err
	}
	if def.Mode != "" {
		if _, err := ParseMode(def.Mode); err != nil {
			return nil, err
		}
	}
	if def.TargetTemperature != nil {
		if err := ValidateTemperature("target temperature", *def.TargetTemperature); err != nil {
			return nil, err
		}
	}

	var d *Device
	switch kind {
	case KindBulb:
		brightness := DefaultBrightness
		if def.Brightness != nil {
			brightness = *def.Brightness
		}
		b, err := NewBulb(reg, clk, def.ID, def.Name, def.RatedWatts, brightness, def.Color)
		if err != nil {
			return nil, err
		}
		d = b.Device

	case KindThermostat:
		t, err := NewThermostat(reg, clk, def.ID, def.Name, def.RatedWatts, def.InitialTemperature)
		if err != nil {
			return nil, err
		}
		// Both inputs were validated above, so these cannot fail.
		if def.TargetTemperature != nil {
			_ = t.SetTargetTemperature(*def.TargetTemperature)
		}
		if def.Mode != "" {
			_ = t.SetMode(def.Mode)
		}
		d = t.Device

	case KindOutlet:
		maxCurrent := def.MaxCurrent
		if maxCurrent == 0 {
			maxCurrent = DefaultMaxCurrent
		}
		o, err := NewOutlet(reg, clk, def.ID, def.Name, def.RatedWatts, maxCurrent)
		if err != nil {
			return nil, err
		}
		d = o.Device
	}

	if def.On {
		d.TurnOn()
	}
	return d, nil
}
