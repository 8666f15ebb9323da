package influxdb

import (
	"context"

	"github.com/calverly/hearth-core/internal/device"
	"github.com/calverly/hearth-core/internal/events"
)

// metricWriter is the slice of Client the sink needs; narrowed for testing.
type metricWriter interface {
	WriteTemperature(deviceID string, temperature float64)
	WriteDeviceMetric(deviceID string, measurement string, value float64)
}

// Sink forwards numeric registry events to InfluxDB. It implements
// events.Sink; writes are non-blocking and failures surface through the
// client's async error callback.
type Sink struct {
	writer metricWriter
}

// NewSink creates a telemetry sink writing through the given client.
func NewSink(client *Client) *Sink {
	return &Sink{writer: client}
}

// Publish records temperature readings and other numeric state changes.
// Events without a numeric payload are ignored.
func (s *Sink) Publish(_ context.Context, ev events.Event) {
	switch ev.Type {
	case events.DeviceTemperature:
		if temp, ok := ev.Details["temperature"].(float64); ok {
			s.writer.WriteTemperature(ev.EntityID, temp)
		}
	case events.DeviceModified:
		state, ok := ev.Details["state"].(device.State)
		if !ok {
			return
		}
		for key, value := range state {
			if v, ok := numeric(value); ok {
				s.writer.WriteDeviceMetric(ev.EntityID, key, v)
			}
		}
	}
}

// numeric coerces int and float state values to float64. Brightness is an
// int, temperatures are float64; everything else is not telemetry.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
