// VRISA Core - Environmental Monitoring Platform
//
// This is the main entry point for the VRISA Core application.
// VRISA serves the REST API used by web and mobile clients to manage
// monitoring institutes, their stations and devices, pollution alerts,
// and user accounts, and optionally ingests alerts published by field
// devices over MQTT.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/vrisa-dev/vrisa-core/migrations"

	"github.com/vrisa-dev/vrisa-core/internal/api"
	"github.com/vrisa-dev/vrisa-core/internal/auth"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/config"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/database"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/influxdb"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/logging"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/mqtt"
	"github.com/vrisa-dev/vrisa-core/internal/ingest"
	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
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

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting VRISA Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
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

	// Build repositories
	userRepo := auth.NewUserRepository(db.DB)
	instituteRepo := monitoring.NewInstituteRepository(db.DB)
	stationRepo := monitoring.NewStationRepository(db.DB)
	deviceRepo := monitoring.NewDeviceRepository(db.DB)
	alertRepo := monitoring.NewAlertRepository(db.DB)
	colorRepo := monitoring.NewColorRepository(db.DB)
	accessRepo := monitoring.NewAccessRepository(db.DB)
	registrationRepo := monitoring.NewRegistrationRepository(db.DB)

	userCount, err := userRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	log.Info("user store ready", "users", userCount)

	// Token service signs the bearer tokens issued at login
	tokens := auth.NewTokenService(cfg.Security.JWT.Secret, cfg.Security.AccessTokenTTL())

	// Connect to InfluxDB (optional pollutant sample mirror)
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
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Connect to the MQTT broker and start the alert ingestion bridge
	// (optional). Field devices publish alerts that the bridge persists
	// through the same repository the API uses.
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
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		bridge := newBridge(mqttClient, alertRepo, influxClient, log, byte(cfg.MQTT.QoS))
		if startErr := bridge.Start(); startErr != nil {
			return fmt.Errorf("starting ingestion bridge: %w", startErr)
		}
		defer func() {
			log.Info("stopping ingestion bridge")
			if stopErr := bridge.Stop(); stopErr != nil {
				log.Error("error stopping ingestion bridge", "error", stopErr)
			}
		}()
	} else {
		log.Info("MQTT ingestion disabled")
	}

	// Start the API server
	apiServer, err := api.New(api.Deps{
		Config:        cfg.API,
		Logger:        log,
		DB:            db,
		Tokens:        tokens,
		Users:         userRepo,
		Institutes:    instituteRepo,
		Stations:      stationRepo,
		Devices:       deviceRepo,
		Alerts:        alertRepo,
		Colors:        colorRepo,
		Access:        accessRepo,
		Registrations: registrationRepo,
		Version:       version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, apiServer, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. Ingestion bridge, then MQTT (if enabled)
	// 3. InfluxDB (if enabled)
	// 4. Database

	log.Info("VRISA Core stopped")
	return nil
}

// newBridge wires the ingestion bridge, omitting the sample mirror when
// InfluxDB is disabled. The nil check must happen on the concrete type so
// the bridge sees an absent mirror rather than a nil pointer behind an
// interface.
func newBridge(broker *mqtt.Client, alerts monitoring.AlertRepository, mirror *influxdb.Client, log *logging.Logger, qos byte) *ingest.Bridge {
	if mirror == nil {
		return ingest.NewBridge(broker, alerts, nil, log, qos)
	}
	return ingest.NewBridge(broker, alerts, mirror, log, qos)
}

// getConfigPath returns the configuration file path.
// Uses VRISA_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("VRISA_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
// Optional clients may be nil when their integration is disabled.
func healthCheck(ctx context.Context, db *database.DB, apiServer *api.Server, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.HealthCheck(checkCtx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := apiServer.HealthCheck(checkCtx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(checkCtx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(checkCtx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
