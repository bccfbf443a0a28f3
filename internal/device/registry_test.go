package device

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	l.msgs = append(l.msgs, msg)
	l.mu.Unlock()
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.record(msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.record(msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record(msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.record(msg) }

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}

func TestRegistry_CountsEveryConstruction(t *testing.T) {
	reg, clk := newTestEnv()

	mustBulb(t, reg, clk, 60)
	mustThermostat(t, reg, clk, 1000, 20)
	o := mustOutlet(t, reg, clk, 100)
	_, err := o.Clone("outlet-2")
	require.NoError(t, err)

	assert.Equal(t, 4, reg.TotalDevicesCreated())
}

func TestRegistry_CreationCountIsMonotonic(t *testing.T) {
	reg, clk := newTestEnv()
	fleet := NewFleet()

	b := mustBulb(t, reg, clk, 60)
	require.NoError(t, fleet.Add(b.Device))
	_, err := fleet.Remove(b.ID())
	require.NoError(t, err)

	reg.ResetEnergyConsumption()
	assert.Equal(t, 1, reg.TotalDevicesCreated())
}

func TestRegistry_ResetEnergy(t *testing.T) {
	reg, clk := newTestEnv()
	b := mustBulb(t, reg, clk, 60)

	b.TurnOn()
	clk.Advance(time.Hour)
	b.TurnOff()
	require.InDelta(t, 60.0, reg.TotalEnergyConsumed(), floatTolerance)

	reg.ResetEnergyConsumption()
	assert.Zero(t, reg.TotalEnergyConsumed())
	assert.Equal(t, time.Hour, b.OnDuration(), "device on-time is untouched")
	assert.Equal(t, 1, reg.TotalDevicesCreated())

	b.TurnOn()
	clk.Advance(30 * time.Minute)
	b.TurnOff()
	assert.InDelta(t, 30.0, reg.TotalEnergyConsumed(), floatTolerance)
}

func TestRegistry_ResetLogs(t *testing.T) {
	reg := NewRegistry()
	logger := &recordingLogger{}
	reg.SetLogger(logger)

	reg.ResetEnergyConsumption()
	assert.Equal(t, []string{"energy total reset"}, logger.messages())
}

func TestRegistry_IgnoresInvalidDeltas(t *testing.T) {
	reg := NewRegistry()
	reg.RecordEnergy(10)
	reg.RecordEnergy(-5)
	reg.RecordEnergy(0)
	reg.RecordEnergy(math.NaN())

	assert.Equal(t, 10.0, reg.TotalEnergyConsumed())
}

func TestRegistry_Totals(t *testing.T) {
	reg, clk := newTestEnv()
	b := mustBulb(t, reg, clk, 120)
	b.TurnOn()
	clk.Advance(15 * time.Minute)
	b.TurnOff()

	assert.Equal(t, Totals{DevicesCreated: 1, EnergyWh: 30}, reg.Totals())
}

func TestRegistry_NilIsSafe(t *testing.T) {
	var reg *Registry

	assert.NotPanics(t, func() {
		reg.RegisterCreation()
		reg.RecordEnergy(5)
		reg.ResetEnergyConsumption()
	})
	assert.Zero(t, reg.TotalDevicesCreated())
	assert.Zero(t, reg.TotalEnergyConsumed())
	assert.Equal(t, Totals{}, reg.Totals())

	b, err := NewBulb(nil, nil, "", "Loose", 40, 50, "")
	require.NoError(t, err)
	b.TurnOn()
	b.TurnOff()
}

func TestRegistry_IsolatedInstances(t *testing.T) {
	regA, clk := newTestEnv()
	regB := NewRegistry()

	mustBulb(t, regA, clk, 60)
	assert.Equal(t, 1, regA.TotalDevicesCreated())
	assert.Zero(t, regB.TotalDevicesCreated())
}

func TestRegistry_ConcurrentUpdates(t *testing.T) {
	reg := NewRegistry()
	const workers, perWorker = 16, 250

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				reg.RegisterCreation()
				reg.RecordEnergy(1)
				_ = reg.Totals()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, reg.TotalDevicesCreated())
	assert.Equal(t, float64(workers*perWorker), reg.TotalEnergyConsumed())
}

func TestRegistry_ConcurrentDevices(t *testing.T) {
	reg, clk := newTestEnv()
	const workers = 8

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each goroutine owns its device; only the registry is shared.
			b, err := NewBulb(reg, clk, "", "Worker", 60, 50, "")
			if err != nil {
				t.Error(err)
				return
			}
			b.TurnOn()
			b.TurnOff()
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, reg.TotalDevicesCreated())
}
