package device

import (
	"math"
	"math/rand/v2"
)

// Sensor is the optional measuring capability a device may expose.
// Query it with Device.Sensor.
type Sensor interface {
	// CurrentVoltage takes a reading. Every call counts as a read.
	CurrentVoltage() float64
	// SensorType describes what the sensor measures.
	SensorType() string
}

// Voltage sensor constants.
const (
	NominalVoltage = 220.0

	voltageSensorType = "voltage sensor"

	// oscillationAmplitude and jitterAmplitude bound a reading to
	// NominalVoltage ± (oscillationAmplitude + jitterAmplitude).
	oscillationAmplitude = 2.0
	oscillationStep      = 0.5
	jitterAmplitude      = 1.0
)

// VoltageSensor simulates the mains voltage seen by an outlet: a slow
// oscillation around NominalVoltage plus random jitter.
type VoltageSensor struct {
	reads uint64
	rng   *rand.Rand
}

// SensorOption configures a VoltageSensor.
type SensorOption func(*VoltageSensor)

// WithJitterSource makes the jitter deterministic. Intended for tests.
func WithJitterSource(src rand.Source) SensorOption {
	return func(s *VoltageSensor) {
		s.rng = rand.New(src)
	}
}

func newVoltageSensor(opts ...SensorOption) *VoltageSensor {
	s := &VoltageSensor{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentVoltage increments the read counter and returns a reading.
// It works whether or not the owning device is on, and never fails.
func (s *VoltageSensor) CurrentVoltage() float64 {
	s.reads++
	oscillation := oscillationAmplitude * math.Sin(float64(s.reads)*oscillationStep)
	return NominalVoltage + oscillation + s.jitter()
}

// SensorType returns the fixed capability label.
func (s *VoltageSensor) SensorType() string {
	return voltageSensorType
}

// ReadCount returns how many readings have been taken.
func (s *VoltageSensor) ReadCount() uint64 {
	return s.reads
}

// jitter returns a value in [-jitterAmplitude, jitterAmplitude).
func (s *VoltageSensor) jitter() float64 {
	var f float64
	if s.rng != nil {
		f = s.rng.Float64()
	} else {
		f = rand.Float64()
	}
	return (f*2 - 1) * jitterAmplitude
}

// clone copies the read counter. The jitter source is shared with the original.
func (s *VoltageSensor) clone() *VoltageSensor {
	if s == nil {
		return nil
	}
	cpy := *s
	return &cpy
}
