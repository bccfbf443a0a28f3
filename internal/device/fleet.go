package device

import (
	"fmt"
	"sort"
	"sync"
)

// Fleet is the catalogue of live devices, keyed by ID.
//
// Devices themselves are single-owner values; the Fleet is that owner when
// several goroutines (a command handler, the telemetry sampler, shutdown)
// need the same devices. Every device call made through the Fleet runs
// under its lock.
//
// All public methods are thread-safe.
type Fleet struct {
	devices map[string]*Device
	mu      sync.RWMutex
	logger  Logger
}

// NewFleet creates an empty fleet.
func NewFleet() *Fleet {
	return &Fleet{
		devices: make(map[string]*Device),
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the fleet.
func (f *Fleet) SetLogger(logger Logger) {
	f.mu.Lock()
	f.logger = logger
	f.mu.Unlock()
}

// Add puts d in the fleet.
// Returns ErrDeviceExists if a device with the same ID is already present.
func (f *Fleet) Add(d *Device) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.devices[d.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDeviceExists, d.ID())
	}
	f.devices[d.ID()] = d

	f.logger.Info("device added", "id", d.ID(), "name", d.Name(), "kind", d.Kind())
	return nil
}

// Remove takes a device out of the fleet and returns it.
// An open session stays open; callers that want it booked turn it off first.
func (f *Fleet) Remove(id string) (*Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, ok := f.devices[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	delete(f.devices, id)

	f.logger.Info("device removed", "id", id)
	return d, nil
}

// Do runs fn on the device with the given ID while holding the fleet lock.
// fn must not call back into the Fleet.
func (f *Fleet) Do(id string, fn func(*Device) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, ok := f.devices[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	return fn(d)
}

// TurnOn switches a device on.
func (f *Fleet) TurnOn(id string) error {
	return f.Do(id, func(d *Device) error {
		d.TurnOn()
		f.logger.Debug("device turned on", "id", id)
		return nil
	})
}

// TurnOff switches a device off, booking its session.
func (f *Fleet) TurnOff(id string) error {
	return f.Do(id, func(d *Device) error {
		d.TurnOff()
		f.logger.Debug("device turned off", "id", id, "energy_wh", d.EnergyConsumed())
		return nil
	})
}

// TurnAllOff switches every device off so that all open sessions are
// booked. It returns the number of devices that were on.
func (f *Fleet) TurnAllOff() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, d := range f.devices {
		if d.IsOn() {
			d.TurnOff()
			n++
		}
	}
	f.logger.Info("all devices turned off", "count", n)
	return n
}

// Count returns the number of devices in the fleet.
func (f *Fleet) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.devices)
}

// IDs returns the device IDs in ascending order.
func (f *Fleet) IDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sortedIDs()
}

// Snapshot returns a snapshot of one device.
func (f *Fleet) Snapshot(id string) (Snapshot, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	d, ok := f.devices[id]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	return d.Snapshot(), nil
}

// Snapshots returns snapshots of all devices ordered by ID.
func (f *Fleet) Snapshots() []Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Snapshot, 0, len(f.devices))
	for _, id := range f.sortedIDs() {
		out = append(out, f.devices[id].Snapshot())
	}
	return out
}

// SnapshotsByKind returns snapshots of all devices of kind k ordered by ID.
func (f *Fleet) SnapshotsByKind(k Kind) []Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []Snapshot
	for _, id := range f.sortedIDs() {
		if d := f.devices[id]; d.Kind() == k {
			out = append(out, d.Snapshot())
		}
	}
	return out
}

// Reading is one sensor measurement taken through the fleet.
type Reading struct {
	DeviceID   string  `json:"device_id"`
	SensorType string  `json:"sensor_type"`
	Value      float64 `json:"value"`
}

// ReadSensors takes one reading from every device that has a sensor
// capability, ordered by device ID. Each reading advances that sensor's
// read counter.
func (f *Fleet) ReadSensors() []Reading {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Reading
	for _, id := range f.sortedIDs() {
		s, ok := f.devices[id].Sensor()
		if !ok {
			continue
		}
		out = append(out, Reading{
			DeviceID:   id,
			SensorType: s.SensorType(),
			Value:      s.CurrentVoltage(),
		})
	}
	return out
}

// Stats returns fleet statistics for monitoring.
type Stats struct {
	TotalDevices int
	On           int
	ByKind       map[Kind]int
	PowerWatts   float64
	EnergyWh     float64
}

// GetStats returns current fleet statistics.
func (f *Fleet) GetStats() Stats {
	f.mu.RLock()
	defer f.mu.RUnlock()

	stats := Stats{
		TotalDevices: len(f.devices),
		ByKind:       make(map[Kind]int),
	}
	for _, d := range f.devices {
		stats.ByKind[d.Kind()]++
		if d.IsOn() {
			stats.On++
		}
		stats.PowerWatts += d.PowerUsage()
		stats.EnergyWh += d.EnergyConsumed()
	}
	return stats
}

// sortedIDs must be called with f.mu held.
func (f *Fleet) sortedIDs() []string {
	ids := make([]string, 0, len(f.devices))
	for id := range f.devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
