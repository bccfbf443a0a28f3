// Package influxdb writes Gray Logic Power telemetry to InfluxDB.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, batched non-blocking writes and health monitoring, and
// provides a telemetry.Sink.
//
// # Measurements
//
//	device_power   tags: device_id, kind, site
//	               fields: on, rated_w, power_w, energy_wh, on_seconds,
//	                       plus per-kind fields (brightness, current_c,
//	                       target_c, mode, outlet_active, sensor_reads)
//	sensor         tags: device_id, sensor_type, site   fields: value
//	energy_totals  tags: site   fields: devices_created, energy_wh
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // run without InfluxDB
//	}
//	defer client.Close()
//
//	sampler := telemetry.NewSampler(tcfg, fleet, registry, influxdb.NewSink(client))
//
// Writes are batched according to batch_size and flush_interval.
// Async write failures are delivered via SetOnError.
package influxdb
