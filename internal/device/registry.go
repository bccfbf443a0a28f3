package device

import "sync"

// Logger defines the logging interface used by the Registry and Fleet.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry holds the process-wide aggregate counters shared by every device:
// how many devices were ever constructed and how much energy all of them
// consumed.
//
// One Registry is created by the host and handed to every constructor.
// Tests create their own so they never observe each other's totals.
//
// The counters are monotonic: the creation count never goes down, not even
// when devices are discarded, and the energy total only grows until an
// explicit ResetEnergyConsumption.
//
// All methods are safe for concurrent use. A nil *Registry accepts every
// call and records nothing.
type Registry struct {
	mu       sync.Mutex
	created  int
	energyWh float64
	logger   Logger
}

// Totals is a consistent snapshot of both counters.
type Totals struct {
	DevicesCreated int     `json:"devices_created"`
	EnergyWh       float64 `json:"energy_wh"`
}

// NewRegistry creates an empty aggregate.
func NewRegistry() *Registry {
	return &Registry{logger: noopLogger{}}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.mu.Lock()
	r.logger = logger
	r.mu.Unlock()
}

// RegisterCreation counts one constructed device. Clones count too.
func (r *Registry) RegisterCreation() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.created++
	r.mu.Unlock()
}

// RecordEnergy adds a completed session's energy to the total.
// Negative and NaN deltas are ignored so the total stays monotonic.
func (r *Registry) RecordEnergy(deltaWh float64) {
	if r == nil || !(deltaWh > 0) {
		return
	}
	r.mu.Lock()
	r.energyWh += deltaWh
	r.mu.Unlock()
}

// ResetEnergyConsumption zeroes the energy total. Device on-time and the
// creation count are untouched.
func (r *Registry) ResetEnergyConsumption() {
	if r == nil {
		return
	}
	r.mu.Lock()
	previous := r.energyWh
	r.energyWh = 0
	logger := r.logger
	r.mu.Unlock()

	if logger != nil {
		logger.Info("energy total reset", "previous_wh", previous)
	}
}

// TotalDevicesCreated returns the number of devices ever constructed.
func (r *Registry) TotalDevicesCreated() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

// TotalEnergyConsumed returns the energy booked since the last reset, in Wh.
func (r *Registry) TotalEnergyConsumed() float64 {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.energyWh
}

// Totals returns both counters read under one lock.
func (r *Registry) Totals() Totals {
	if r == nil {
		return Totals{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return Totals{DevicesCreated: r.created, EnergyWh: r.energyWh}
}
