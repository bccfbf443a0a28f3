// Gray Logic Power - appliance energy accounting service
//
// This is the main entry point for Gray Logic Power. It builds the
// configured appliances, tracks their on-time and energy, and forwards
// read-only telemetry to the optional sinks:
//   - MQTT (retained device state and totals)
//   - InfluxDB (time-series history)
//   - Prometheus (pull-based metrics endpoint)
//
// On shutdown every device is switched off so its last session is
// accounted before the final sample is written.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nerrad567/gray-logic-power/internal/clock"
	"github.com/nerrad567/gray-logic-power/internal/device"
	"github.com/nerrad567/gray-logic-power/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-power/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-power/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-power/internal/infrastructure/metrics"
	"github.com/nerrad567/gray-logic-power/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-power/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// shutdownTimeout bounds the final sample and sink flush after the
// shutdown signal has cancelled the main context.
const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting Gray Logic Power",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	clk := clock.Real()
	registry := device.NewRegistry()
	registry.SetLogger(log)
	fleet := device.NewFleet()
	fleet.SetLogger(log)

	if err := buildFleet(cfg.Devices, fleet, registry, clk); err != nil {
		return fmt.Errorf("building devices: %w", err)
	}
	stats := fleet.GetStats()
	log.Info("devices initialised",
		"devices", stats.TotalDevices,
		"on", stats.On,
		"power_w", stats.PowerWatts,
	)

	var sinks []telemetry.Sink

	mqttClient, err := connectMQTT(cfg.MQTT, log)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	if mqttClient != nil {
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		sinks = append(sinks, mqtt.NewSink(mqttClient))
	}

	influxClient, err := connectInfluxDB(ctx, cfg.InfluxDB, log)
	if err != nil {
		return fmt.Errorf("connecting to InfluxDB: %w", err)
	}
	if influxClient != nil {
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		sinks = append(sinks, influxdb.NewSink(influxClient))
	}

	metricsServer, err := startMetrics(ctx, cfg.Metrics, fleet, registry, log)
	if err != nil {
		return fmt.Errorf("starting metrics server: %w", err)
	}
	if metricsServer != nil {
		defer func() {
			log.Info("stopping metrics server")
			if closeErr := metricsServer.Close(); closeErr != nil {
				log.Error("error stopping metrics server", "error", closeErr)
			}
		}()
	}

	if err := healthCheck(ctx, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	sampler := telemetry.NewSampler(telemetry.Config{
		Site:        cfg.Site.ID,
		Interval:    cfg.TelemetryInterval(),
		ReadSensors: cfg.Telemetry.ReadSensors,
		Clock:       clk,
	}, fleet, registry, sinks...)
	sampler.SetLogger(log)

	samplerDone := make(chan error, 1)
	go func() {
		samplerDone <- sampler.Run(ctx)
	}()

	log.Info("initialisation complete, waiting for shutdown signal",
		"sinks", len(sinks),
		"interval", cfg.TelemetryInterval(),
	)

	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")

	if runErr := <-samplerDone; runErr != nil {
		log.Warn("telemetry sampler stopped with error", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdown(shutdownCtx, fleet, registry, sampler, log)

	log.Info("Gray Logic Power stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses GRAYPOWER_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("GRAYPOWER_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// buildFleet constructs every configured device and adds it to the fleet.
// The first failure aborts startup.
func buildFleet(defs []config.DeviceConfig, fleet *device.Fleet, registry *device.Registry, clk clock.Clock) error {
	for i, dc := range defs {
		d, err := device.Build(toDefinition(dc), registry, clk)
		if err != nil {
			return fmt.Errorf("devices[%d] %q: %w", i, dc.Name, err)
		}
		if err := fleet.Add(d); err != nil {
			return fmt.Errorf("devices[%d] %q: %w", i, dc.Name, err)
		}
	}
	return nil
}

// toDefinition converts a configuration entry into a device definition.
func toDefinition(dc config.DeviceConfig) device.Definition {
	return device.Definition{
		ID:                 dc.ID,
		Name:               dc.Name,
		Kind:               device.Kind(dc.Kind),
		RatedWatts:         dc.RatedWatts,
		Brightness:         dc.Brightness,
		Color:              dc.Color,
		InitialTemperature: dc.InitialTemperature,
		TargetTemperature:  dc.TargetTemperature,
		Mode:               dc.Mode,
		MaxCurrent:         dc.MaxCurrent,
		On:                 dc.On,
	}
}

// connectMQTT connects to the broker, or returns a nil client when MQTT is disabled.
func connectMQTT(cfg config.MQTTConfig, log *logging.Logger) (*mqtt.Client, error) {
	client, err := mqtt.Connect(cfg)
	if errors.Is(err, mqtt.ErrDisabled) {
		log.Info("MQTT disabled")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	client.SetLogger(log)
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.Broker.Host, cfg.Broker.Port),
		"client_id", cfg.Broker.ClientID,
	)
	return client, nil
}

// connectInfluxDB connects to InfluxDB, or returns a nil client when it is disabled.
func connectInfluxDB(ctx context.Context, cfg config.InfluxDBConfig, log *logging.Logger) (*influxdb.Client, error) {
	client, err := influxdb.Connect(ctx, cfg)
	if errors.Is(err, influxdb.ErrDisabled) {
		log.Info("InfluxDB disabled")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	client.SetOnError(func(err error) {
		log.Error("InfluxDB write error", "error", err)
	})
	log.Info("InfluxDB connected",
		"url", cfg.URL,
		"org", cfg.Org,
		"bucket", cfg.Bucket,
	)
	return client, nil
}

// startMetrics starts the Prometheus exporter, or returns nil when it is disabled.
func startMetrics(ctx context.Context, cfg config.MetricsConfig, fleet *device.Fleet, registry *device.Registry, log *logging.Logger) (*metrics.Server, error) {
	srv, err := metrics.NewServer(cfg, metrics.NewCollector(cfg.Namespace, fleet, registry))
	if errors.Is(err, metrics.ErrDisabled) {
		log.Info("metrics exporter disabled")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	srv.SetLogger(log)
	if err := srv.Start(ctx); err != nil {
		return nil, err
	}
	return srv, nil
}

// healthCheck verifies the connected sinks are healthy. Nil clients are skipped.
func healthCheck(ctx context.Context, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	return nil
}

// shutdown switches every device off so open sessions are accounted,
// writes one final sample and flushes buffered sinks.
func shutdown(ctx context.Context, fleet *device.Fleet, registry *device.Registry, sampler *telemetry.Sampler, log *logging.Logger) {
	switched := fleet.TurnAllOff()
	log.Info("devices switched off", "count", switched)

	if err := sampler.SampleOnce(ctx); err != nil {
		log.Warn("final telemetry sample incomplete", "error", err)
	}
	if err := sampler.Flush(ctx); err != nil {
		log.Warn("flushing telemetry sinks", "error", err)
	}

	totals := registry.Totals()
	log.Info("energy totals",
		"devices_created", totals.DevicesCreated,
		"energy_wh", totals.EnergyWh,
		"samples", sampler.Stats().Samples,
	)
}
