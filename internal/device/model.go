package device

// behaviour is the per-kind function table. Hooks run after the base
// lifecycle transition and may be nil.
type behaviour struct {
	power    func(d *Device) float64
	status   func(d *Device) string
	afterOn  func(d *Device)
	afterOff func(d *Device)
	snapshot func(d *Device, s *Snapshot)
}

// behaviourOf returns the function table for k.
//
// Devices can only be built through the kind constructors, so an unknown
// kind is a programming error.
func behaviourOf(k Kind) behaviour {
	switch k {
	case KindBulb:
		return behaviour{
			power:    bulbPower,
			status:   bulbStatus,
			snapshot: bulbSnapshot,
		}
	case KindThermostat:
		return behaviour{
			power:    thermostatPower,
			status:   thermostatStatus,
			afterOn:  thermostatActivated,
			afterOff: thermostatDeactivated,
			snapshot: thermostatSnapshot,
		}
	case KindOutlet:
		return behaviour{
			power:    outletPower,
			status:   outletStatus,
			afterOn:  outletActivated,
			afterOff: outletDeactivated,
			snapshot: outletSnapshot,
		}
	}
	panic("device: unknown kind " + string(k))
}
