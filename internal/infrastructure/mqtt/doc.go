// Package mqtt publishes Gray Logic Power telemetry to an MQTT broker.
//
// This package manages:
//   - Connection to a broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - A telemetry.Sink that publishes device snapshots and totals
//
// The client is publish-only. Devices are never controlled over MQTT.
//
// # Topics
//
//	graypower/device/{id}/state    retained device snapshot (JSON)
//	graypower/device/{id}/sensor   voltage reading (JSON)
//	graypower/system/totals        retained registry totals (JSON)
//	graypower/system/status        retained online/offline status, LWT
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if errors.Is(err, mqtt.ErrDisabled) {
//	    // run without MQTT
//	}
//	defer client.Close()
//
//	sampler := telemetry.NewSampler(tcfg, fleet, registry, mqtt.NewSink(client))
package mqtt
