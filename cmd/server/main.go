package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"ev-route-service/internal/adapters/cache"
	"ev-route-service/internal/adapters/geocode"
	"ev-route-service/internal/adapters/repositories"
	"ev-route-service/internal/adapters/routing"
	"ev-route-service/internal/adapters/stations"
	"ev-route-service/internal/api"
	"ev-route-service/internal/config"
	"ev-route-service/internal/platform/db"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, OSRM, open-meteo, Redis) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found (using environment variables)")
	}
	setupLogging()

	port := config.Get("PORT", "8080")
	seedPath := config.Get("SEED_PATH", "data/seeds/stations.json")

	conn, err := openDatabase()
	if err != nil {
		logrus.Fatal(err)
	}
	defer conn.db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := conn.initAndSeed(seedPath); err != nil {
		logrus.Fatal(err)
	}

	finder, err := buildStationIndex(conn.stationRepo())
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.WithField("stations", finder.Size()).Info("station index ready")

	provider, err := buildRouteProvider(conn)
	if err != nil {
		logrus.Fatal(err)
	}

	geocoder, err := geocode.NewOpenMeteoGeocoder(
		config.Get("GEOCODER_URL", "https://geocoding-api.open-meteo.com"),
		conn.geocodeCache(),
	)
	if err != nil {
		logrus.Fatal(err)
	}

	deps := api.RouterDeps{
		Provider:       provider,
		Finder:         finder,
		Searcher:       finder,
		Geocoder:       geocoder,
		Planner:        plannerConfig(),
		AllowedOrigins: config.GetList("ALLOWED_ORIGINS"),
	}

	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		deps.PlanCache = cache.NewRedisPlanCache(redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.Get("REDIS_PASSWORD", ""),
		}))
		deps.PlanCacheTTL = config.GetDuration("PLAN_CACHE_TTL", 15*time.Minute)
		logrus.WithField("addr", addr).Info("plan cache enabled")
	}

	router := api.NewRouter(deps)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	logrus.WithField("addr", ":"+port).Info("server listening")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logrus.Fatal(srv.ListenAndServe())
}

func setupLogging() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(config.Get("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// connection abstracts over the SQLite and Postgres wiring so the rest of
// main stays dialect-agnostic.
type connection struct {
	db       *sql.DB
	postgres bool
}

func openDatabase() (*connection, error) {
	if databaseURL := config.Get("DATABASE_URL", ""); strings.TrimSpace(databaseURL) != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, err
		}
		logrus.Info("using postgres storage")
		return &connection{db: pg, postgres: true}, nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	lite, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}
	if err := lite.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", dbPath, err)
	}

	logrus.WithField("path", dbPath).Info("using sqlite storage")
	return &connection{db: lite}, nil
}

func (c *connection) initAndSeed(seedPath string) error {
	if c.postgres {
		if err := repositories.InitPostgresSchema(c.db); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		if err := repositories.SeedPostgresFromJSON(c.db, seedPath); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		return nil
	}

	if err := repositories.InitSchema(c.db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedFromJSON(c.db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}

func (c *connection) stationRepo() ports.StationRepository {
	if c.postgres {
		return repositories.NewPostgresStationRepository(c.db)
	}
	return repositories.NewSqliteStationRepository(c.db)
}

func (c *connection) legCache() routing.LegCache {
	if c.postgres {
		return cache.NewSQLLegCache(c.db)
	}
	return cache.NewSqliteLegCache(c.db)
}

func (c *connection) geocodeCache() geocode.GeocodeCache {
	if c.postgres {
		return cache.NewSQLGeocodeCache(c.db)
	}
	return cache.NewSqliteGeocodeCache(c.db)
}

func buildStationIndex(repo ports.StationRepository) (*stations.RTreeStationFinder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalogue, err := repo.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load station catalogue: %w", err)
	}

	return stations.NewRTreeStationFinder(catalogue)
}

func buildRouteProvider(conn *connection) (ports.RouteProvider, error) {
	switch name := config.Get("ROUTE_PROVIDER", "osrm"); name {
	case "osrm":
		// The public demo server works for development; run your own OSRM for
		// anything serious.
		return routing.NewOSRMRouteProvider(
			config.Get("OSRM_URL", "http://router.project-osrm.org"),
			conn.legCache(),
		)
	case "direct":
		return routing.NewDirectRouteProvider(config.GetFloat("DIRECT_AVG_SPEED_KMH", 60)), nil
	default:
		return nil, fmt.Errorf("unknown ROUTE_PROVIDER %q", name)
	}
}

func plannerConfig() services.PlannerConfig {
	cfg := services.DefaultPlannerConfig()

	cfg.Profile.ReferenceRangeKm = config.GetFloat("CHARGE_REFERENCE_RANGE_KM", cfg.Profile.ReferenceRangeKm)
	cfg.Profile.SafetyBufferPct = config.GetFloat("CHARGE_SAFETY_BUFFER_PCT", cfg.Profile.SafetyBufferPct)
	cfg.Profile.ChargeStepPct = config.GetFloat("CHARGE_STEP_PCT", cfg.Profile.ChargeStepPct)
	cfg.Profile.ChargeStepMin = config.GetFloat("CHARGE_STEP_MIN", cfg.Profile.ChargeStepMin)
	cfg.LookupTimeout = config.GetDuration("STATION_LOOKUP_TIMEOUT", cfg.LookupTimeout)
	cfg.RejectUnreachable = config.GetBool("REJECT_UNREACHABLE", false)

	return cfg
}
