package config_test

import (
	"strings"
	"testing"

	"github.com/samirrijal/restroomfinder/internal/pkg/config"
)

func validConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: 8080, ReadTimeout: 10, WriteTimeout: 10},
		Geocoding: config.GeocodingConfig{TimeoutMS: 1000, RatePerSecond: 10},
		Directory: config.DirectoryConfig{BaseURL: "https://www.refugerestrooms.org", TimeoutSeconds: 5, PerPage: 10},
		Postal:    config.PostalConfig{Source: config.PostalSourceFile, Path: "data/us-zip-codes.json"},
		Email:     config.EmailConfig{Mode: config.EmailModeDisabled},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RESTROOMFINDER_EMAIL_MODE", "disabled")

	cfg, err := config.Load("restroomfinder-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Geocoding.TimeoutMS != 1000 {
		t.Errorf("expected 1000ms geocode timeout, got %d", cfg.Geocoding.TimeoutMS)
	}
	if cfg.Telemetry.ServiceName != "restroomfinder-test" {
		t.Errorf("unexpected service name %q", cfg.Telemetry.ServiceName)
	}
	if cfg.Email.Subject != "Refugee Restrooms - Alexa Skill" {
		t.Errorf("unexpected subject %q", cfg.Email.Subject)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RESTROOMFINDER_EMAIL_MODE", "disabled")
	t.Setenv("RESTROOMFINDER_SERVER_PORT", "9090")
	t.Setenv("RESTROOMFINDER_GEOCODING_API_KEY", "k")

	cfg, err := config.Load("restroomfinder-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Geocoding.APIKey != "k" {
		t.Errorf("expected api key from env, got %q", cfg.Geocoding.APIKey)
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Directory.BaseURL = ""
	cfg.Postal.Source = "s3"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"server.port", "directory.base_url", "postal.source"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidate_EmailModes(t *testing.T) {
	cfg := validConfig()
	cfg.Email = config.EmailConfig{Mode: config.EmailModeDirect, SMTPPort: 587}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "email.smtp_host") || !strings.Contains(err.Error(), "email.from_email") {
		t.Errorf("expected smtp errors, got %v", err)
	}

	cfg.Email = config.EmailConfig{Mode: "pigeon"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "email.mode") {
		t.Errorf("expected email.mode error, got %v", err)
	}
}

func TestValidate_PostgresPostalNeedsDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Postal.Source = config.PostalSourcePostgres
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "database.host") {
		t.Errorf("expected database errors, got %v", err)
	}

	cfg.Database = config.DatabaseConfig{Host: "db", Port: 5432, User: "u", DBName: "d"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDSN(t *testing.T) {
	d := config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "rf", SSLMode: "disable"}
	if got := d.DSN(); got != "postgres://u:p@db:5432/rf?sslmode=disable" {
		t.Errorf("unexpected dsn %q", got)
	}
}
