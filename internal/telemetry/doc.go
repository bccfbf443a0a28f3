// Package telemetry samples the device fleet on a fixed interval and fans
// the result out to sinks.
//
// # Architecture
//
//	┌──────────────┐  Snapshots()   ┌──────────┐  Write(Sample)  ┌─────────────┐
//	│ device.Fleet │ ─────────────▶ │ Sampler  │ ──────────────▶ │ MQTT sink   │
//	└──────────────┘  ReadSensors() │ (ticker) │                 │ Influx sink │
//	┌──────────────┐  Totals()      │          │                 │ ...         │
//	│ Registry     │ ─────────────▶ └──────────┘                 └─────────────┘
//	└──────────────┘
//
// Sampling is read-only with one exception: when ReadSensors is enabled,
// each sample takes one voltage reading per outlet, which advances that
// outlet's read counter.
//
// A failing sink never stops the loop or the other sinks; the error is
// logged and counted.
//
// # Usage
//
//	sampler := telemetry.NewSampler(telemetry.Config{Interval: 10 * time.Second}, fleet, registry, mqttSink, influxSink)
//	sampler.SetLogger(logger)
//	go sampler.Run(ctx)
package telemetry
