package influxdb_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/calverly/hearth-core/internal/infrastructure/config"
	"github.com/calverly/hearth-core/internal/infrastructure/influxdb"
)

// devConfig matches the local docker-compose InfluxDB. Tests that need a
// live server go through connectOrSkip and are skipped when it is absent.
func devConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "hearth-dev-token",
		Org:           "hearth",
		Bucket:        "metrics",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

func connectOrSkip(t *testing.T, cfg config.InfluxDBConfig) *influxdb.Client {
	t.Helper()
	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Skipf("InfluxDB not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// captureErrors wires SetOnError to a race-safe accumulator and returns a
// getter for the last recorded error.
func captureErrors(client *influxdb.Client) func() error {
	var mu sync.Mutex
	var last error
	client.SetOnError(func(err error) {
		mu.Lock()
		last = err
		mu.Unlock()
	})
	return func() error {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func TestConnect(t *testing.T) {
	client := connectOrSkip(t, devConfig())

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := devConfig()
	cfg.Enabled = false

	if _, err := influxdb.Connect(cfg); !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	cfg := devConfig()
	cfg.URL = "http://127.0.0.1:59999"

	if _, err := influxdb.Connect(cfg); err == nil {
		t.Fatal("Connect() to dead port should fail")
	}
}

func TestConnect_ZeroBatchSettings(t *testing.T) {
	cfg := devConfig()
	cfg.BatchSize = 0
	cfg.FlushInterval = 0

	client := connectOrSkip(t, cfg)
	if !client.IsConnected() {
		t.Error("IsConnected() = false with defaulted batch settings")
	}
}

func TestHealthCheck(t *testing.T) {
	client := connectOrSkip(t, devConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := client.HealthCheck(ctx); err == nil {
			t.Error("HealthCheck() with cancelled context should fail")
		}
	})
}

func TestWrites(t *testing.T) {
	client := connectOrSkip(t, devConfig())
	lastErr := captureErrors(client)

	tests := []struct {
		name  string
		write func()
	}{
		{
			name:  "temperature reading",
			write: func() { client.WriteTemperature("test-device-001", 21.5) },
		},
		{
			name:  "device metric",
			write: func() { client.WriteDeviceMetric("test-device-002", "brightness", 75.0) },
		},
		{
			name: "custom point",
			write: func() {
				client.WritePoint("custom_measurement",
					map[string]string{"source": "test"},
					map[string]interface{}{"value": 99.9, "count": 5})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.write()
			client.Flush()

			// The error callback is asynchronous.
			time.Sleep(100 * time.Millisecond)

			if err := lastErr(); err != nil {
				t.Errorf("async write error = %v", err)
			}
		})
	}
}

func TestClose(t *testing.T) {
	cfg := devConfig()
	client, err := influxdb.Connect(cfg)
	if err != nil {
		t.Skipf("InfluxDB not available: %v", err)
	}

	client.WriteTemperature("close-test", 19.0)

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}
}
