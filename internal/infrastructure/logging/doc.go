// Package logging provides structured logging for Gray Logic Power.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the host, the device fleet and
// the telemetry sinks.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	fleet.SetLogger(logger.With("component", "fleet"))
//	logger.Info("device turned off", "id", id, "energy_wh", wh)
//
// Never log broker passwords or InfluxDB tokens.
package logging
