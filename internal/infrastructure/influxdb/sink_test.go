package influxdb

import (
	"context"
	"testing"

	"github.com/calverly/hearth-core/internal/device"
	"github.com/calverly/hearth-core/internal/events"
)

type fakeWriter struct {
	temps   map[string]float64
	metrics map[string]float64
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{
		temps:   make(map[string]float64),
		metrics: make(map[string]float64),
	}
}

func (f *fakeWriter) WriteTemperature(deviceID string, temperature float64) {
	f.temps[deviceID] = temperature
}

func (f *fakeWriter) WriteDeviceMetric(deviceID, measurement string, value float64) {
	f.metrics[deviceID+"/"+measurement] = value
}

func TestSink_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("temperature reading", func(t *testing.T) {
		w := newFakeWriter()
		sink := &Sink{writer: w}

		sink.Publish(ctx, events.New(events.DeviceTemperature, events.EntityDevice, "dev-123",
			map[string]any{"temperature": 21.5}))

		if got := w.temps["dev-123"]; got != 21.5 {
			t.Errorf("WriteTemperature value = %v, want 21.5", got)
		}
	})

	t.Run("temperature without payload ignored", func(t *testing.T) {
		w := newFakeWriter()
		sink := &Sink{writer: w}

		sink.Publish(ctx, events.New(events.DeviceTemperature, events.EntityDevice, "dev-123", nil))

		if len(w.temps) != 0 {
			t.Errorf("expected no writes, got %v", w.temps)
		}
	})

	t.Run("modified writes numeric state fields", func(t *testing.T) {
		w := newFakeWriter()
		sink := &Sink{writer: w}

		state := device.State{
			"brightness": 75.0,
			"power":      true,
			"name":       "lamp",
		}
		sink.Publish(ctx, events.New(events.DeviceModified, events.EntityDevice, "dev-456",
			map[string]any{"state": state}))

		if got := w.metrics["dev-456/brightness"]; got != 75.0 {
			t.Errorf("brightness metric = %v, want 75.0", got)
		}
		if len(w.metrics) != 1 {
			t.Errorf("expected only numeric fields written, got %v", w.metrics)
		}
	})

	t.Run("modified writes integer state fields", func(t *testing.T) {
		w := newFakeWriter()
		sink := &Sink{writer: w}

		d := device.NewDimmer("dev-dim", "Lounge Dimmer")
		b := 75
		if !d.Apply(device.DimmerUpdate{Brightness: &b}) {
			t.Fatal("brightness update not applied")
		}

		sink.Publish(ctx, events.New(events.DeviceModified, events.EntityDevice, "dev-dim",
			map[string]any{"state": d.State()}))

		if got := w.metrics["dev-dim/brightness"]; got != 75 {
			t.Errorf("brightness metric = %v, want 75", got)
		}
	})

	t.Run("modified without state ignored", func(t *testing.T) {
		w := newFakeWriter()
		sink := &Sink{writer: w}

		sink.Publish(ctx, events.New(events.DeviceModified, events.EntityDevice, "dev-456", nil))

		if len(w.metrics) != 0 {
			t.Errorf("expected no writes, got %v", w.metrics)
		}
	})

	t.Run("unrelated event ignored", func(t *testing.T) {
		w := newFakeWriter()
		sink := &Sink{writer: w}

		sink.Publish(ctx, events.New(events.DeviceCreated, events.EntityDevice, "dev-789", nil))

		if len(w.temps) != 0 || len(w.metrics) != 0 {
			t.Error("expected no writes for unrelated event")
		}
	})
}
