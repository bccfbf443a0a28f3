package influxdb

import (
	"context"

	"github.com/nerrad567/gray-logic-power/internal/telemetry"
)

// Sink writes telemetry samples as InfluxDB points. Writes are batched by
// the client; call Flush before shutdown.
type Sink struct {
	client *Client
}

// NewSink creates a telemetry sink on top of a connected client.
func NewSink(c *Client) *Sink {
	return &Sink{client: c}
}

// Name identifies the sink in logs and stats.
func (s *Sink) Name() string { return "influxdb" }

// Write queues one point per device, one per sensor reading and one for the totals.
func (s *Sink) Write(ctx context.Context, sample telemetry.Sample) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, p := range samplePoints(sample) {
		if err := s.client.WritePoint(p); err != nil {
			return err
		}
	}
	return nil
}

// Flush sends buffered points.
func (s *Sink) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.client.Flush()
	return nil
}
