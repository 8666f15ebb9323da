package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
site:
  id: "test-site"
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
api:
  host: "0.0.0.0"
  port: 8420
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Site.ID != "test-site" {
		t.Errorf("Site.ID = %q, want test-site", cfg.Site.ID)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want /tmp/test.db", cfg.Database.Path)
	}
	if !cfg.Database.WALMode {
		t.Error("Database.WALMode = false, want true")
	}
	if cfg.MQTT.Broker.ClientID != "test-client" {
		t.Errorf("MQTT.Broker.ClientID = %q, want test-client", cfg.MQTT.Broker.ClientID)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() of missing file should fail")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: [yaml: content")
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
site:
  id: ""
database:
  path: "/tmp/test.db"
api:
  port: 8420
`)
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject empty site.id")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Site:     SiteConfig{ID: "site-001"},
			Database: DatabaseConfig{Path: ":memory:"},
			MQTT:     MQTTConfig{QoS: 1},
			API:      APIConfig{Port: 8420},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(*Config) {}, false},
		{"missing site id", func(c *Config) { c.Site.ID = "" }, true},
		{"missing database path", func(c *Config) { c.Database.Path = "" }, true},
		{"qos out of range", func(c *Config) { c.MQTT.QoS = 3 }, true},
		{"port zero", func(c *Config) { c.API.Port = 0 }, true},
		{"port too high", func(c *Config) { c.API.Port = 70000 }, true},
		{"influxdb without token", func(c *Config) {
			c.InfluxDB = InfluxDBConfig{Enabled: true, URL: "http://localhost:8086"}
		}, true},
		{"influxdb without url", func(c *Config) {
			c.InfluxDB = InfluxDBConfig{Enabled: true, Token: "tok"}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeoutGetters(t *testing.T) {
	cfg := APIConfig{Timeouts: APITimeoutConfig{Read: 30, Write: 45, Idle: 60}}

	if got := cfg.GetReadTimeout().Seconds(); got != 30 {
		t.Errorf("GetReadTimeout() = %vs, want 30s", got)
	}
	if got := cfg.GetWriteTimeout().Seconds(); got != 45 {
		t.Errorf("GetWriteTimeout() = %vs, want 45s", got)
	}
	if got := cfg.GetIdleTimeout().Seconds(); got != 60 {
		t.Errorf("GetIdleTimeout() = %vs, want 60s", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	for key, value := range map[string]string{
		"HEARTH_DATABASE_PATH":  "/custom/path.db",
		"HEARTH_MQTT_ENABLED":   "true",
		"HEARTH_MQTT_HOST":      "mqtt.example.com",
		"HEARTH_MQTT_USERNAME":  "testuser",
		"HEARTH_MQTT_PASSWORD":  "testpass",
		"HEARTH_API_HOST":       "192.168.1.1",
		"HEARTH_API_PORT":       "9000",
		"HEARTH_INFLUXDB_TOKEN": "secret-token",
	} {
		t.Setenv(key, value)
	}

	cfg := Default()

	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if !cfg.MQTT.Enabled {
		t.Error("MQTT.Enabled = false, want true")
	}
	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q", cfg.MQTT.Broker.Host)
	}
	if cfg.MQTT.Auth.Username != "testuser" || cfg.MQTT.Auth.Password != "testpass" {
		t.Errorf("MQTT.Auth = %q/%q", cfg.MQTT.Auth.Username, cfg.MQTT.Auth.Password)
	}
	if cfg.API.Host != "192.168.1.1" || cfg.API.Port != 9000 {
		t.Errorf("API = %s:%d, want 192.168.1.1:9000", cfg.API.Host, cfg.API.Port)
	}
	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q", cfg.InfluxDB.Token)
	}
}

func TestEnvOverride_BadPort(t *testing.T) {
	t.Setenv("HEARTH_API_PORT", "not-a-number")

	cfg := Default()
	if cfg.API.Port != 8420 {
		t.Errorf("API.Port = %d, want default 8420 for unparseable override", cfg.API.Port)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Site.ID == "" {
		t.Error("Default() Site.ID is empty")
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("Default() Database.Path = %q, want :memory:", cfg.Database.Path)
	}
	if cfg.MQTT.Enabled || cfg.InfluxDB.Enabled {
		t.Error("Default() should leave MQTT and InfluxDB disabled")
	}
	if cfg.API.Port != 8420 {
		t.Errorf("Default() API.Port = %d, want 8420", cfg.API.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should validate cleanly: %v", err)
	}
}
