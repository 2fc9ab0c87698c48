package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.temporal.io/sdk/client"

	"github.com/samirrijal/restroomfinder/internal/adapters/directory"
	"github.com/samirrijal/restroomfinder/internal/adapters/email"
	"github.com/samirrijal/restroomfinder/internal/adapters/geocoding"
	"github.com/samirrijal/restroomfinder/internal/adapters/hostapi"
	"github.com/samirrijal/restroomfinder/internal/adapters/http"
	natsadapter "github.com/samirrijal/restroomfinder/internal/adapters/nats"
	"github.com/samirrijal/restroomfinder/internal/adapters/postal"
	"github.com/samirrijal/restroomfinder/internal/adapters/postgres"
	"github.com/samirrijal/restroomfinder/internal/adapters/valkey"
	"github.com/samirrijal/restroomfinder/internal/core/ports"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
	"github.com/samirrijal/restroomfinder/internal/pkg/config"
	"github.com/samirrijal/restroomfinder/internal/pkg/logging"
	"github.com/samirrijal/restroomfinder/internal/pkg/metrics"
	"github.com/samirrijal/restroomfinder/internal/pkg/telemetry"
	"github.com/samirrijal/restroomfinder/internal/pkg/validator"
	"github.com/samirrijal/restroomfinder/internal/workflows"
)

func main() {
	cfg, err := config.Load("restroomfinder-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database is only needed when the postal table lives in Postgres
	var db *postgres.DB
	if cfg.Postal.Source == config.PostalSourcePostgres {
		db, err = postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
	}

	// Postal table
	table, err := loadPostalTable(ctx, cfg, db)
	if err != nil {
		log.Fatalf("postal table: %v", err)
	}
	metrics.PostalCodesLoaded.Set(float64(table.Len()))
	slog.Info("postal table loaded", "source", cfg.Postal.Source, "codes", table.Len())

	// Cache
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr, cfg.Valkey.KeyPrefix)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		defer cache.Close()
		cacheSvc = cache
	}

	// NATS
	var events ports.EventPublisher
	nc, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
		nc = nil
	} else {
		defer nc.Close()
		events = nc
	}

	// Results email
	mailer, closeMailer, err := newMailer(cfg)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}
	defer closeMailer()

	// Providers
	geocoder := geocoding.NewGoogle(geocoding.Options{
		APIKey:        cfg.Geocoding.APIKey,
		BaseURL:       cfg.Geocoding.BaseURL,
		Timeout:       time.Duration(cfg.Geocoding.TimeoutMS) * time.Millisecond,
		RatePerSecond: cfg.Geocoding.RatePerSecond,
		Cache:         cacheSvc,
	})
	dir := directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.PerPage,
		time.Duration(cfg.Directory.TimeoutSeconds)*time.Second)
	host := hostapi.NewClient(3 * time.Second)
	v := validator.New()

	// Use cases
	resolver := usecases.NewLocationResolver(geocoder, host, table, cfg.Geocoding.BoundsRadiusMeters)
	restrooms := usecases.NewRestroomService(dir, cacheSvc)
	composer := usecases.NewResponseComposer(mailer, v)
	finder := usecases.NewFinderService(resolver, restrooms, host, composer, events)

	deps := &http.Dependencies{
		Finder:      finder,
		Directions:  usecases.NewDirectionsService(),
		Restrooms:   restrooms,
		Postal:      table,
		Validator:   v,
		DB:          db,
		Cache:       cache,
		Events:      nc,
		OpenAPIPath: http.DefaultOpenAPIPath,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    256 * 1024, // host envelopes are small
		AppName:      "Restroom Finder API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "email_mode", cfg.Email.Mode)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func loadPostalTable(ctx context.Context, cfg *config.Config, db *postgres.DB) (*postal.Table, error) {
	if cfg.Postal.Source == config.PostalSourcePostgres {
		loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return postal.LoadRepository(loadCtx, postgres.NewPostalCodeRepo(db))
	}
	return postal.LoadFile(cfg.Postal.Path)
}

// newMailer picks the results mailer for email.mode. A nil mailer disables email.
func newMailer(cfg *config.Config) (ports.ResultsMailer, func(), error) {
	noop := func() {}
	switch cfg.Email.Mode {
	case config.EmailModeDirect:
		return email.NewSMTPSender(smtpConfig(cfg)), noop, nil
	case config.EmailModeTemporal:
		c, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("temporal client: %w", err)
		}
		return workflows.NewDispatcher(c, cfg.Temporal.TaskQueue), c.Close, nil
	default:
		return nil, noop, nil
	}
}

func smtpConfig(cfg *config.Config) email.SMTPConfig {
	return email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		Subject:   cfg.Email.Subject,
	}
}
