package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TemperatureWriter records a sensor temperature reading against a device.
// Satisfied by the registry.
type TemperatureWriter interface {
	SetCurrentTemperature(ctx context.Context, deviceID string, temp float64) error
}

// temperatureReading is the payload expected on sensor temperature topics.
type temperatureReading struct {
	Temperature float64 `json:"temperature"`
}

// SensorListener subscribes to hearth/sensor/temperature/+ and feeds inbound
// readings into the registry. Malformed payloads and unknown devices are
// reported through the handler error path and otherwise ignored.
type SensorListener struct {
	client *Client
	writer TemperatureWriter
}

// NewSensorListener creates a listener writing readings via writer.
func NewSensorListener(client *Client, writer TemperatureWriter) *SensorListener {
	return &SensorListener{client: client, writer: writer}
}

// Start subscribes to the temperature topic pattern.
func (l *SensorListener) Start() error {
	return l.client.Subscribe(Topics{}.AllSensorTemperatures(), byte(l.client.cfg.QoS), l.handle)
}

// Stop removes the subscription.
func (l *SensorListener) Stop() error {
	return l.client.Unsubscribe(Topics{}.AllSensorTemperatures())
}

func (l *SensorListener) handle(topic string, payload []byte) error {
	deviceID := topic[strings.LastIndex(topic, "/")+1:]
	if deviceID == "" {
		return fmt.Errorf("sensor topic %q carries no device id", topic)
	}

	var reading temperatureReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return fmt.Errorf("parsing temperature payload on %q: %w", topic, err)
	}

	return l.writer.SetCurrentTemperature(context.Background(), deviceID, reading.Temperature)
}
