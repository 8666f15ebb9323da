//go:build integration

package mqtt

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/calverly/hearth-core/internal/events"
	"github.com/calverly/hearth-core/internal/infrastructure/config"
)

// Integration tests for broker-dependent behaviour.
// These tests require a running MQTT broker at 127.0.0.1:1883.
//
// Run with:
//   go test -tags=integration -v ./internal/infrastructure/mqtt/...

func integrationConfig(clientID string) config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: clientID,
			TLS:      false,
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

func TestConnectAndClose(t *testing.T) {
	client, err := Connect(integrationConfig("hearth-it-connect"))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if !client.IsConnected() {
		t.Error("IsConnected() = false, want true")
	}
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close(), want false")
	}
}

func TestPublishSubscribeRoundtrip(t *testing.T) {
	pubClient, err := Connect(integrationConfig("hearth-it-pub"))
	if err != nil {
		t.Fatalf("Connect() publisher error = %v", err)
	}
	defer pubClient.Close()

	subClient, err := Connect(integrationConfig("hearth-it-sub"))
	if err != nil {
		t.Fatalf("Connect() subscriber error = %v", err)
	}
	defer subClient.Close()

	received := make(chan []byte, 1)
	err = subClient.Subscribe(Topics{}.AllEvents(), 1, func(_ string, payload []byte) error {
		received <- payload
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	pub := NewPublisher(pubClient, 1)
	ev := events.New(events.DeviceCreated, events.EntityDevice, "dev-it", map[string]any{
		"name": "Integration Switch",
	})
	pub.Publish(context.Background(), ev)

	select {
	case payload := <-received:
		var got events.Event
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("unmarshalling event: %v", err)
		}
		if got.Type != events.DeviceCreated || got.EntityID != "dev-it" {
			t.Errorf("received %+v, want device.created/dev-it", got)
		}
	case <-time.After(5 * time.Second):
		t.Error("timeout waiting for event")
	}
}

func TestSensorListenerRoundtrip(t *testing.T) {
	sensorClient, err := Connect(integrationConfig("hearth-it-sensor"))
	if err != nil {
		t.Fatalf("Connect() sensor error = %v", err)
	}
	defer sensorClient.Close()

	coreClient, err := Connect(integrationConfig("hearth-it-core"))
	if err != nil {
		t.Fatalf("Connect() core error = %v", err)
	}
	defer coreClient.Close()

	recorded := make(chan float64, 1)
	writer := temperatureWriterFunc(func(_ context.Context, id string, temp float64) error {
		if id == "dev-th" {
			recorded <- temp
		}
		return nil
	})

	listener := NewSensorListener(coreClient, writer)
	if err := listener.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer listener.Stop()
	time.Sleep(100 * time.Millisecond)

	topic := Topics{}.SensorTemperature("dev-th")
	if err := sensorClient.Publish(topic, []byte(`{"temperature": 64.2}`), 1, false); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case temp := <-recorded:
		if temp != 64.2 {
			t.Errorf("recorded temperature = %v, want 64.2", temp)
		}
	case <-time.After(5 * time.Second):
		t.Error("timeout waiting for temperature reading")
	}
}

// temperatureWriterFunc adapts a function to the TemperatureWriter interface.
type temperatureWriterFunc func(ctx context.Context, deviceID string, temp float64) error

func (f temperatureWriterFunc) SetCurrentTemperature(ctx context.Context, id string, temp float64) error {
	return f(ctx, id, temp)
}
