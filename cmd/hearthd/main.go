// Hearth Core - Smart Home Registry
//
// This is the main entry point for the Hearth Core daemon. Hearth keeps an
// in-process inventory of smart-home devices, a single pairing hub, and the
// dwellings the hub is installed in, and exposes the lot over a REST API
// with a WebSocket event stream. Mutations are audited to SQLite and
// optionally mirrored to MQTT and InfluxDB.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/calverly/hearth-core/migrations"

	"github.com/calverly/hearth-core/internal/api"
	"github.com/calverly/hearth-core/internal/audit"
	"github.com/calverly/hearth-core/internal/device"
	"github.com/calverly/hearth-core/internal/infrastructure/config"
	"github.com/calverly/hearth-core/internal/infrastructure/database"
	"github.com/calverly/hearth-core/internal/infrastructure/influxdb"
	"github.com/calverly/hearth-core/internal/infrastructure/logging"
	"github.com/calverly/hearth-core/internal/infrastructure/mqtt"
	"github.com/calverly/hearth-core/internal/registry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	configPath := flag.String("config", "", "path to config file (default: built-in defaults)")
	seed := flag.Bool("seed", false, "provision a demo inventory on startup")
	flag.Parse()

	if err := run(ctx, *configPath, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context, configPath string, seed bool) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Hearth Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration. Without a config file the built-in defaults run
	// entirely in memory: no persistence, MQTT and InfluxDB disabled.
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the audit database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise the registry and its audit sink
	reg := registry.New()
	reg.SetLogger(log)

	auditRepo := audit.NewSQLiteRepository(db.DB)
	recorder := audit.NewRecorder(auditRepo)
	recorder.SetLogger(log)
	reg.AddSink(recorder)
	log.Info("registry initialised")

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		// Outbound: registry events to the event topics
		publisher := mqtt.NewPublisher(mqttClient, byte(cfg.MQTT.QoS))
		publisher.SetLogger(log)
		reg.AddSink(publisher)

		// Inbound: temperature readings into thermostats
		sensors := mqtt.NewSensorListener(mqttClient, reg)
		if startErr := sensors.Start(); startErr != nil {
			return fmt.Errorf("starting sensor listener: %w", startErr)
		}
		defer func() {
			if stopErr := sensors.Stop(); stopErr != nil {
				log.Warn("error stopping sensor listener", "error", stopErr)
			}
		}()
		log.Info("sensor listener started")
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		reg.AddSink(influxdb.NewSink(influxClient))
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Start the API server
	server, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Logger:   log,
		Registry: reg,
		Audit:    auditRepo,
		MQTT:     mqttClient,
		DB:       db,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	// The WebSocket hub doubles as an event sink
	reg.AddSink(server.Events())

	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Provision a demo inventory when asked
	if seed {
		if seedErr := seedDemo(ctx, reg); seedErr != nil {
			return fmt.Errorf("seeding demo inventory: %w", seedErr)
		}
		log.Info("demo inventory seeded")
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, server, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("Hearth Core stopped")
	return nil
}

// loadConfig resolves configuration from, in order of precedence: the
// -config flag, the HEARTH_CONFIG environment variable, or built-in
// defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("HEARTH_CONFIG")
	}
	if path == "" {
		cfg := config.Default()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.Load(path)
}

// seedDemo provisions a small demo inventory: one device of each variant, a
// hub with everything paired, and an occupied dwelling housing the hub.
func seedDemo(ctx context.Context, reg *registry.Registry) error {
	deviceSpecs := []struct {
		typ  string
		name string
		opts device.CreateOptions
	}{
		{"switch", "Hall Switch", device.CreateOptions{}},
		{"dimmer", "Lounge Dimmer", device.CreateOptions{}},
		{"lock", "Front Door", device.CreateOptions{PIN: "5678"}},
		{"thermostat", "Landing Thermostat", device.CreateOptions{}},
	}

	ids := make([]string, 0, len(deviceSpecs))
	for _, spec := range deviceSpecs {
		id, err := reg.CreateDevice(ctx, spec.typ, spec.name, spec.opts)
		if err != nil {
			return fmt.Errorf("creating %s: %w", spec.typ, err)
		}
		ids = append(ids, id)
	}

	reg.CreateHub(ctx, "Main Hub")
	for _, id := range ids {
		if err := reg.PairDevice(ctx, id); err != nil {
			return fmt.Errorf("pairing %s: %w", id, err)
		}
	}

	dwellingID := reg.CreateDwelling(ctx, "Willow Cottage", "1 Mill Lane")
	if err := reg.InstallHub(ctx, dwellingID); err != nil {
		return fmt.Errorf("installing hub: %w", err)
	}
	if err := reg.SetDwellingOccupied(ctx, dwellingID, true); err != nil {
		return fmt.Errorf("setting occupancy: %w", err)
	}

	return nil
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - server: API server to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, server *api.Server, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

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
