package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"skycast/api"
	"skycast/config"
	"skycast/forecast"
	"skycast/geocode"
	"skycast/geolocate"
	"skycast/pipeline"
	"skycast/statestore"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	dbPath := flag.String("db", "", "Path to the sqlite state file (overrides config)")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable upstream rate limiting")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	slog.SetDefault(logger)

	// Load configuration; a missing file falls back to defaults.
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		slog.Info("no config file, using defaults", "path", *configFile)
		cfg = config.DefaultConfig()
	}

	// Environment and flag overrides.
	if v := os.Getenv("SKYCAST_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}
	if v := os.Getenv("SKYCAST_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if *port > 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}

	// Upstream clients, decorated the same way regardless of endpoint.
	var geocoder geocode.Geocoder = geocode.NewClient(cfg.GeocodeBaseURL)
	var source forecast.Source = forecast.NewClient(cfg.ForecastBaseURL)
	if *enableRateLimiting {
		geocoder = geocode.NewRateLimited(geocoder, cfg.RequestsPerSecond, cfg.Burst)
		source = forecast.NewRateLimitedSource(source, cfg.RequestsPerSecond, cfg.Burst)
		slog.Info("applied rate limiting to upstream clients",
			"rps", cfg.RequestsPerSecond, "burst", cfg.Burst)
	}
	if cfg.CacheTTLMinutes > 0 {
		source = forecast.NewCachedSource(source, time.Duration(cfg.CacheTTLMinutes)*time.Minute)
	}

	// Persisted last-resolution state.
	var store statestore.Store
	if cfg.DatabasePath != "" {
		sqliteStore, err := statestore.NewSQLite(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open state store: %v", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
	}

	p := pipeline.New(geocoder, source, store, geolocate.NewClient(cfg.GeolocateBaseURL))
	if cfg.Units != "" {
		// Configured default; a persisted preference wins on restore.
		if _, err := p.SetUnits(cfg.Units); err != nil {
			log.Fatalf("Invalid units in configuration: %v", err)
		}
	}
	if _, ok := p.Restore(); ok {
		slog.Info("restored last resolved state")
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Route("/api", func(r chi.Router) {
		api.NewServer(p, geocoder).RegisterRoutes(r)
	})

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	refreshCtx, cancelRefresh := context.WithCancel(context.Background())
	defer cancelRefresh()
	if cfg.RefreshMinutes > 0 {
		go p.AutoRefresh(refreshCtx, time.Duration(cfg.RefreshMinutes)*time.Minute)
	}

	go func() {
		slog.Info("skycast started", "port", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	cancelRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down")
	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
