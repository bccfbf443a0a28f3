// Package device models powered appliances and their energy accounting for
// Gray Logic Power.
//
// A Device is switched on and off, reports its instantaneous draw, and books
// the energy of every completed on-session into a shared Registry. Three
// kinds exist: a dimmable bulb, a thermostat and a sensor-equipped outlet.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│                               Device                                  │
//	│                                                                       │
//	│  ┌────────────────┐   ┌────────────────┐   ┌──────────────────────┐  │
//	│  │  PowerAccount  │   │   behaviour    │   │   variant state      │  │
//	│  │ (account.go)   │   │  (model.go)    │   │ bulb / thermostat /  │  │
//	│  │                │   │                │   │ outlet (+ sensor)    │  │
//	│  │ • on/off       │   │ • power model  │   │                      │  │
//	│  │ • session start│   │ • status line  │   │ • validated setters  │  │
//	│  │ • on-duration  │   │ • on/off hooks │   │ • capability query   │  │
//	│  └────────────────┘   └────────────────┘   └──────────────────────┘  │
//	│           │                                                           │
//	└───────────│───────────────────────────────────────────────────────────┘
//	            ▼
//	┌──────────────────────┐      ┌──────────────────────┐
//	│ Registry (aggregate) │      │ Fleet (catalogue)    │
//	│ • devices created    │      │ • lookup by ID/kind  │
//	│ • energy consumed    │      │ • serialised access  │
//	└──────────────────────┘      └──────────────────────┘
//
// # Lifecycle
//
// TurnOn and TurnOff are idempotent and never fail. TurnOff measures the
// session against the injected clock.Clock, adds it to the device's
// accumulated on-time, and records rated watts × hours in the Registry.
// Kind-specific hooks run after the base transition: a thermostat switches
// to heating when activated from "off" and back to "off" when deactivated;
// an outlet activates its socket with the device and deactivates it again.
//
// # Validation
//
// Every setter validates before it mutates. Failures are *ValidationError
// values matching ErrValidation:
//
//	if err := bulb.SetBrightness(150); errors.Is(err, device.ErrValidation) {
//	    // brightness is unchanged
//	}
//
// # Usage
//
//	reg := device.NewRegistry()
//	clk := clock.Real()
//
//	lamp, err := device.NewBulb(reg, clk, "lamp-desk", "Desk lamp", 60, 100, "")
//	if err != nil {
//	    return err
//	}
//	lamp.TurnOn()
//	// ...
//	lamp.TurnOff()
//	fmt.Println(lamp.Status(), lamp.EnergyConsumed(), reg.TotalEnergyConsumed())
//
//	if s, ok := outlet.Sensor(); ok {
//	    fmt.Println(s.SensorType(), s.CurrentVoltage())
//	}
//
// # Thread Safety
//
// A Device belongs to one logical owner and is not safe for concurrent use.
// The Registry is safe for concurrent use. The Fleet serialises access to
// the devices it holds, so hosts that share devices between goroutines should
// go through it.
package device
