package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nerrad567/gray-logic-power/internal/device"
)

// Source provides device snapshots. *device.Fleet satisfies it.
type Source interface {
	Snapshots() []device.Snapshot
}

// Totaler provides the process-wide counters. *device.Registry satisfies it.
type Totaler interface {
	Totals() device.Totals
}

var deviceLabels = []string{"device_id", "kind"}

// Collector is a prometheus.Collector over a fleet and its registry.
type Collector struct {
	source Source
	totals Totaler

	on          *prometheus.Desc
	rated       *prometheus.Desc
	power       *prometheus.Desc
	energy      *prometheus.Desc
	onSeconds   *prometheus.Desc
	info        *prometheus.Desc
	brightness  *prometheus.Desc
	temperature *prometheus.Desc
	sensorReads *prometheus.Desc
	fleet       *prometheus.Desc
	created     *prometheus.Desc
	consumed    *prometheus.Desc
}

// NewCollector builds a collector whose metric names are prefixed with namespace.
// Either source or totals may be nil, in which case its series are omitted.
func NewCollector(namespace string, source Source, totals Totaler) *Collector {
	name := func(n string) string { return prometheus.BuildFQName(namespace, "", n) }
	return &Collector{
		source: source,
		totals: totals,

		on:          prometheus.NewDesc(name("device_on"), "Whether the device is switched on (1) or off (0).", deviceLabels, nil),
		rated:       prometheus.NewDesc(name("device_rated_watts"), "Nameplate power of the device in watts.", deviceLabels, nil),
		power:       prometheus.NewDesc(name("device_power_watts"), "Current power draw of the device in watts.", deviceLabels, nil),
		energy:      prometheus.NewDesc(name("device_energy_wh_total"), "Energy consumed by the device in watt-hours.", deviceLabels, nil),
		onSeconds:   prometheus.NewDesc(name("device_on_seconds_total"), "Accumulated on-time of the device in seconds.", deviceLabels, nil),
		info:        prometheus.NewDesc(name("device_info"), "Static device information.", []string{"device_id", "kind", "name"}, nil),
		brightness:  prometheus.NewDesc(name("bulb_brightness_percent"), "Configured bulb brightness.", []string{"device_id"}, nil),
		temperature: prometheus.NewDesc(name("thermostat_temperature_celsius"), "Thermostat temperatures.", []string{"device_id", "setpoint"}, nil),
		sensorReads: prometheus.NewDesc(name("outlet_sensor_reads_total"), "Voltage readings taken from the outlet sensor.", []string{"device_id"}, nil),
		fleet:       prometheus.NewDesc(name("fleet_devices"), "Devices currently managed, by kind.", []string{"kind"}, nil),
		created:     prometheus.NewDesc(name("devices_created_total"), "Devices constructed since start, including clones.", nil, nil),
		consumed:    prometheus.NewDesc(name("energy_consumed_wh"), "Energy recorded by turn-off events since the last reset, in watt-hours.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.on
	ch <- c.rated
	ch <- c.power
	ch <- c.energy
	ch <- c.onSeconds
	ch <- c.info
	ch <- c.brightness
	ch <- c.temperature
	ch <- c.sensorReads
	ch <- c.fleet
	ch <- c.created
	ch <- c.consumed
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.source != nil {
		c.collectDevices(ch)
	}
	if c.totals != nil {
		t := c.totals.Totals()
		ch <- prometheus.MustNewConstMetric(c.created, prometheus.CounterValue, float64(t.DevicesCreated))
		ch <- prometheus.MustNewConstMetric(c.consumed, prometheus.GaugeValue, t.EnergyWh)
	}
}

func (c *Collector) collectDevices(ch chan<- prometheus.Metric) {
	byKind := make(map[device.Kind]int, len(device.AllKinds()))
	for _, k := range device.AllKinds() {
		byKind[k] = 0
	}

	for _, s := range c.source.Snapshots() {
		id, kind := s.ID, string(s.Kind)
		byKind[s.Kind]++

		ch <- prometheus.MustNewConstMetric(c.on, prometheus.GaugeValue, boolValue(s.On), id, kind)
		ch <- prometheus.MustNewConstMetric(c.rated, prometheus.GaugeValue, s.RatedWatts, id, kind)
		ch <- prometheus.MustNewConstMetric(c.power, prometheus.GaugeValue, s.PowerWatts, id, kind)
		ch <- prometheus.MustNewConstMetric(c.energy, prometheus.CounterValue, s.EnergyWh, id, kind)
		ch <- prometheus.MustNewConstMetric(c.onSeconds, prometheus.CounterValue, s.OnSeconds, id, kind)
		ch <- prometheus.MustNewConstMetric(c.info, prometheus.GaugeValue, 1, id, kind, s.Name)

		if s.Brightness != nil {
			ch <- prometheus.MustNewConstMetric(c.brightness, prometheus.GaugeValue, float64(*s.Brightness), id)
		}
		if s.CurrentTemperature != nil {
			ch <- prometheus.MustNewConstMetric(c.temperature, prometheus.GaugeValue, *s.CurrentTemperature, id, "current")
		}
		if s.TargetTemperature != nil {
			ch <- prometheus.MustNewConstMetric(c.temperature, prometheus.GaugeValue, *s.TargetTemperature, id, "target")
		}
		if s.SensorReads != nil {
			ch <- prometheus.MustNewConstMetric(c.sensorReads, prometheus.CounterValue, float64(*s.SensorReads), id)
		}
	}

	for k, n := range byKind {
		ch <- prometheus.MustNewConstMetric(c.fleet, prometheus.GaugeValue, float64(n), string(k))
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
