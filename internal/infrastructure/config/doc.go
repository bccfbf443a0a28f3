// Package config handles loading and validating Gray Logic Power configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with GRAYPOWER_* environment variables
//   - Validation of required fields
//   - Default value handling
//
// Every telemetry sink (MQTT, InfluxDB, Prometheus) is disabled by default,
// so a bare config runs the device fleet with logging only.
//
// Security Considerations:
//   - Broker passwords and InfluxDB tokens should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Site.Name, len(cfg.Devices))
package config
