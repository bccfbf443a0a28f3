package mqtt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-power/internal/device"
	"github.com/nerrad567/gray-logic-power/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-power/internal/telemetry"
)

type published struct {
	topic    string
	value    any
	retained bool
}

type fakePublisher struct {
	msgs   []published
	failOn string
}

func (f *fakePublisher) PublishJSON(topic string, v any, retained bool) error {
	if topic == f.failOn {
		return ErrNotConnected
	}
	f.msgs = append(f.msgs, published{topic: topic, value: v, retained: retained})
	return nil
}

func testSample() telemetry.Sample {
	return telemetry.Sample{
		Time: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Devices: []device.Snapshot{
			{ID: "bulb-1", Kind: device.KindBulb, On: true, PowerWatts: 60},
			{ID: "outlet-1", Kind: device.KindOutlet},
		},
		Readings: []device.Reading{
			{DeviceID: "outlet-1", SensorType: "voltage sensor", Value: 220.4},
		},
		Totals: device.Totals{DevicesCreated: 2, EnergyWh: 12.5},
	}
}

func TestSink_Write(t *testing.T) {
	pub := &fakePublisher{}
	sink := &Sink{pub: pub}

	if err := sink.Write(context.Background(), testSample()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := []published{
		{topic: "graypower/device/bulb-1/state", retained: true},
		{topic: "graypower/device/outlet-1/state", retained: true},
		{topic: "graypower/device/outlet-1/sensor", retained: false},
		{topic: "graypower/system/totals", retained: true},
	}
	if len(pub.msgs) != len(want) {
		t.Fatalf("published %d messages, want %d", len(pub.msgs), len(want))
	}
	for i, w := range want {
		if pub.msgs[i].topic != w.topic || pub.msgs[i].retained != w.retained {
			t.Errorf("msg[%d] = %s retained=%v, want %s retained=%v",
				i, pub.msgs[i].topic, pub.msgs[i].retained, w.topic, w.retained)
		}
	}

	totals, ok := pub.msgs[3].value.(device.Totals)
	if !ok || totals.EnergyWh != 12.5 {
		t.Errorf("totals payload = %#v, want 12.5 Wh", pub.msgs[3].value)
	}
}

func TestSink_WriteContinuesAfterFailure(t *testing.T) {
	pub := &fakePublisher{failOn: "graypower/device/bulb-1/state"}
	sink := &Sink{pub: pub}

	err := sink.Write(context.Background(), testSample())
	if !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Write() error = %v, want ErrNotConnected", err)
	}
	if len(pub.msgs) != 3 {
		t.Errorf("published %d messages, want the other 3", len(pub.msgs))
	}
}

func TestSink_WriteCancelled(t *testing.T) {
	pub := &fakePublisher{}
	sink := &Sink{pub: pub}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sink.Write(ctx, testSample()); !errors.Is(err, context.Canceled) {
		t.Errorf("Write() error = %v, want context.Canceled", err)
	}
	if len(pub.msgs) != 0 {
		t.Errorf("published %d messages after cancel", len(pub.msgs))
	}
}

func TestSink_RetainReadings(t *testing.T) {
	pub := &fakePublisher{}
	sink := NewSink(&Client{cfg: config.MQTTConfig{Retain: true}})
	sink.pub = pub

	if err := sink.Write(context.Background(), testSample()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !pub.msgs[2].retained {
		t.Error("sensor reading not retained with Retain=true")
	}
	if sink.Name() != "mqtt" {
		t.Errorf("Name() = %q, want mqtt", sink.Name())
	}
}
