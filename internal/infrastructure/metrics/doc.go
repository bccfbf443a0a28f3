// Package metrics exposes Gray Logic Power state to Prometheus.
//
// A Collector reads device snapshots and registry totals on every scrape,
// so the exported values are always as fresh as the device clock. Nothing
// is cached between scrapes and collecting never mutates a device.
//
// # Exported series
//
//	<ns>_device_on{device_id,kind}                 1 while the session is open
//	<ns>_device_rated_watts{device_id,kind}
//	<ns>_device_power_watts{device_id,kind}        current draw
//	<ns>_device_energy_wh_total{device_id,kind}
//	<ns>_device_on_seconds_total{device_id,kind}
//	<ns>_device_info{device_id,kind,name}          always 1
//	<ns>_bulb_brightness_percent{device_id}
//	<ns>_thermostat_temperature_celsius{device_id,setpoint}
//	<ns>_outlet_sensor_reads_total{device_id}
//	<ns>_fleet_devices{kind}
//	<ns>_devices_created_total
//	<ns>_energy_consumed_wh                         resettable
//
// # Usage
//
//	srv, err := metrics.NewServer(cfg.Metrics, metrics.NewCollector(cfg.Metrics.Namespace, fleet, registry))
//	if errors.Is(err, metrics.ErrDisabled) {
//	    // run without the exporter
//	}
//	if err := srv.Start(ctx); err != nil { ... }
//	defer srv.Close()
package metrics
