package influxdb

import (
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/gray-logic-power/internal/device"
	"github.com/nerrad567/gray-logic-power/internal/telemetry"
)

// Measurement names.
const (
	MeasurementDevice = "device_power"
	MeasurementSensor = "sensor"
	MeasurementTotals = "energy_totals"
)

// devicePoint converts a snapshot into a device_power point tagged by
// device and kind. Variant parameters become extra fields.
func devicePoint(site string, s device.Snapshot) *write.Point {
	p := write.NewPointWithMeasurement(MeasurementDevice).
		AddTag("device_id", s.ID).
		AddTag("kind", string(s.Kind)).
		AddField("on", s.On).
		AddField("rated_w", s.RatedWatts).
		AddField("power_w", s.PowerWatts).
		AddField("energy_wh", s.EnergyWh).
		AddField("on_seconds", s.OnSeconds).
		SetTime(s.Timestamp)
	if site != "" {
		p.AddTag("site", site)
	}

	if s.Brightness != nil {
		p.AddField("brightness", *s.Brightness)
	}
	if s.CurrentTemperature != nil {
		p.AddField("current_c", *s.CurrentTemperature)
	}
	if s.TargetTemperature != nil {
		p.AddField("target_c", *s.TargetTemperature)
	}
	if s.Mode != "" {
		p.AddField("mode", string(s.Mode))
	}
	if s.OutletActive != nil {
		p.AddField("outlet_active", *s.OutletActive)
	}
	if s.SensorReads != nil {
		p.AddField("sensor_reads", *s.SensorReads)
	}
	return p
}

func readingPoint(sample telemetry.Sample, r device.Reading) *write.Point {
	p := write.NewPointWithMeasurement(MeasurementSensor).
		AddTag("device_id", r.DeviceID).
		AddTag("sensor_type", r.SensorType).
		AddField("value", r.Value).
		SetTime(sample.Time)
	if sample.Site != "" {
		p.AddTag("site", sample.Site)
	}
	return p
}

func totalsPoint(sample telemetry.Sample) *write.Point {
	p := write.NewPointWithMeasurement(MeasurementTotals).
		AddField("devices_created", sample.Totals.DevicesCreated).
		AddField("energy_wh", sample.Totals.EnergyWh).
		SetTime(sample.Time)
	if sample.Site != "" {
		p.AddTag("site", sample.Site)
	}
	return p
}

// samplePoints converts a whole sample into points.
func samplePoints(sample telemetry.Sample) []*write.Point {
	points := make([]*write.Point, 0, len(sample.Devices)+len(sample.Readings)+1)
	for _, s := range sample.Devices {
		points = append(points, devicePoint(sample.Site, s))
	}
	for _, r := range sample.Readings {
		points = append(points, readingPoint(sample, r))
	}
	return append(points, totalsPoint(sample))
}
