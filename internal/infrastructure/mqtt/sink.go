package mqtt

import (
	"context"
	"errors"
	"fmt"

	"github.com/nerrad567/gray-logic-power/internal/telemetry"
)

// jsonPublisher is the part of Client the sink needs.
type jsonPublisher interface {
	PublishJSON(topic string, v any, retained bool) error
}

// Sink publishes telemetry samples:
//   - every device snapshot, retained, on graypower/device/{id}/state
//   - every sensor reading on graypower/device/{id}/sensor
//   - the registry totals, retained, on graypower/system/totals
type Sink struct {
	pub    jsonPublisher
	retain bool
}

// NewSink creates a telemetry sink on top of a connected client.
// Snapshots and totals are always retained; cfg.Retain also retains
// sensor readings.
func NewSink(c *Client) *Sink {
	return &Sink{pub: c, retain: c.cfg.Retain}
}

// Name identifies the sink in logs and stats.
func (s *Sink) Name() string { return "mqtt" }

// Write publishes one sample. Every message is attempted; failures are joined.
func (s *Sink) Write(ctx context.Context, sample telemetry.Sample) error {
	topics := Topics{}
	var errs []error

	for _, snap := range sample.Devices {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.pub.PublishJSON(topics.DeviceState(snap.ID), snap, true); err != nil {
			errs = append(errs, fmt.Errorf("device %s: %w", snap.ID, err))
		}
	}

	for _, r := range sample.Readings {
		if err := s.pub.PublishJSON(topics.DeviceSensor(r.DeviceID), r, s.retain); err != nil {
			errs = append(errs, fmt.Errorf("sensor %s: %w", r.DeviceID, err))
		}
	}

	if err := s.pub.PublishJSON(topics.SystemTotals(), sample.Totals, true); err != nil {
		errs = append(errs, fmt.Errorf("totals: %w", err))
	}

	return errors.Join(errs...)
}
