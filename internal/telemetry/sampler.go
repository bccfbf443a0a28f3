package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-power/internal/clock"
	"github.com/nerrad567/gray-logic-power/internal/device"
)

// Sample is one observation of the whole fleet.
type Sample struct {
	Site     string            `json:"site"`
	Time     time.Time         `json:"time"`
	Devices  []device.Snapshot `json:"devices"`
	Readings []device.Reading  `json:"readings,omitempty"`
	Totals   device.Totals     `json:"totals"`
}

// Sink receives samples. Write must not retain the Sample after returning.
type Sink interface {
	Name() string
	Write(ctx context.Context, s Sample) error
}

// Flusher is implemented by sinks that buffer writes.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Source is the read side of the device fleet.
type Source interface {
	Snapshots() []device.Snapshot
	ReadSensors() []device.Reading
}

// Totaler exposes the aggregate counters.
type Totaler interface {
	Totals() device.Totals
}

// Logger is the logging interface used by the Sampler.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Config controls a Sampler.
type Config struct {
	Site        string
	Interval    time.Duration
	ReadSensors bool
	Clock       clock.Clock
}

// Stats counts sampling activity since the Sampler was created.
type Stats struct {
	Samples      uint64
	SinkFailures map[string]uint64
}

// Sampler periodically collects a Sample and writes it to every sink.
//
// Thread Safety: SampleOnce, Flush and Stats are safe for concurrent use.
// Run should be started once.
type Sampler struct {
	cfg    Config
	source Source
	totals Totaler
	sinks  []Sink

	logger   Logger
	loggerMu sync.RWMutex

	statsMu  sync.Mutex
	samples  uint64
	failures map[string]uint64
}

// NewSampler creates a sampler over the given fleet and registry.
// A nil Clock selects the real clock.
func NewSampler(cfg Config, source Source, totals Totaler, sinks ...Sink) *Sampler {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	return &Sampler{
		cfg:      cfg,
		source:   source,
		totals:   totals,
		sinks:    sinks,
		logger:   noopLogger{},
		failures: make(map[string]uint64),
	}
}

// SetLogger sets the logger for the sampler.
func (s *Sampler) SetLogger(logger Logger) {
	s.loggerMu.Lock()
	s.logger = logger
	s.loggerMu.Unlock()
}

func (s *Sampler) getLogger() Logger {
	s.loggerMu.RLock()
	defer s.loggerMu.RUnlock()
	return s.logger
}

// Collect builds a Sample without writing it anywhere.
func (s *Sampler) Collect() Sample {
	sample := Sample{
		Site:    s.cfg.Site,
		Time:    s.cfg.Clock.Now(),
		Devices: s.source.Snapshots(),
		Totals:  s.totals.Totals(),
	}
	if s.cfg.ReadSensors {
		sample.Readings = s.source.ReadSensors()
	}
	return sample
}

// SampleOnce collects one Sample and writes it to every sink.
// All sinks are attempted; their errors are joined.
func (s *Sampler) SampleOnce(ctx context.Context) error {
	sample := s.Collect()

	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Write(ctx, sample); err != nil {
			s.recordFailure(sink.Name())
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrSinkFailed, sink.Name(), err))
		}
	}

	s.statsMu.Lock()
	s.samples++
	s.statsMu.Unlock()

	s.getLogger().Debug("telemetry sample written",
		"devices", len(sample.Devices),
		"readings", len(sample.Readings),
		"energy_wh", sample.Totals.EnergyWh,
	)
	return errors.Join(errs...)
}

// Run samples immediately, then every Interval until ctx is cancelled.
// Sink errors are logged and do not stop the loop.
func (s *Sampler) Run(ctx context.Context) error {
	if s.cfg.Interval <= 0 {
		return ErrInvalidInterval
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.sampleAndLog(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sampleAndLog(ctx)
		}
	}
}

func (s *Sampler) sampleAndLog(ctx context.Context) {
	if err := s.SampleOnce(ctx); err != nil {
		s.getLogger().Warn("telemetry sample failed", "error", err)
	}
}

// Flush flushes every sink that buffers writes.
func (s *Sampler) Flush(ctx context.Context) error {
	var errs []error
	for _, sink := range s.sinks {
		f, ok := sink.(Flusher)
		if !ok {
			continue
		}
		if err := f.Flush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrSinkFailed, sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Stats returns a copy of the sampling counters.
func (s *Sampler) Stats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	failures := make(map[string]uint64, len(s.failures))
	for name, n := range s.failures {
		failures[name] = n
	}
	return Stats{Samples: s.samples, SinkFailures: failures}
}

func (s *Sampler) recordFailure(name string) {
	s.statsMu.Lock()
	s.failures[name]++
	s.statsMu.Unlock()
}
