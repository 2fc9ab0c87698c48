package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Email delivery modes.
const (
	EmailModeDirect   = "direct"
	EmailModeTemporal = "temporal"
	EmailModeDisabled = "disabled"
)

// Postal table sources.
const (
	PostalSourceFile     = "file"
	PostalSourcePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Postal    PostalConfig    `mapstructure:"postal"`
	Email     EmailConfig     `mapstructure:"email"`
	Temporal  TemporalConfig  `mapstructure:"temporal"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr      string `mapstructure:"addr"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// GeocodingConfig configures the address geocoder.
type GeocodingConfig struct {
	APIKey             string  `mapstructure:"api_key"`
	BaseURL            string  `mapstructure:"base_url"`
	TimeoutMS          int     `mapstructure:"timeout_ms"`
	RatePerSecond      float64 `mapstructure:"rate_per_second"`
	BoundsRadiusMeters float64 `mapstructure:"bounds_radius_meters"`
}

// DirectoryConfig configures the restroom directory client.
type DirectoryConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	PerPage        int    `mapstructure:"per_page"`
}

// PostalConfig selects where the postal code table is loaded from.
type PostalConfig struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

// EmailConfig configures results email delivery.
type EmailConfig struct {
	Mode         string `mapstructure:"mode"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromName     string `mapstructure:"from_name"`
	FromEmail    string `mapstructure:"from_email"`
	Subject      string `mapstructure:"subject"`
}

type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	_ = godotenv.Load() // optional .env for local runs

	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "restrooms")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "restroomfinder")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("valkey.key_prefix", "rf:")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("geocoding.api_key", "")
	v.SetDefault("geocoding.base_url", "https://maps.googleapis.com")
	v.SetDefault("geocoding.timeout_ms", 1000)
	v.SetDefault("geocoding.rate_per_second", 10)
	v.SetDefault("geocoding.bounds_radius_meters", 0)
	v.SetDefault("directory.base_url", "https://www.refugerestrooms.org")
	v.SetDefault("directory.timeout_seconds", 5)
	v.SetDefault("directory.per_page", 10)
	v.SetDefault("postal.source", PostalSourceFile)
	v.SetDefault("postal.path", "data/us-zip-codes.json")
	v.SetDefault("email.mode", EmailModeDirect)
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.smtp_username", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_name", "Refugee Restrooms")
	v.SetDefault("email.from_email", "")
	v.SetDefault("email.subject", "Refugee Restrooms - Alexa Skill")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "results-email")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: RESTROOMFINDER_GEOCODING_API_KEY → geocoding.api_key
	v.SetEnvPrefix("RESTROOMFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
// The geocoding API key is not required here; a missing key fails each
// geocode so the remaining modalities keep working.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Geocoding.TimeoutMS <= 0 {
		errs = append(errs, "geocoding.timeout_ms must be positive")
	}
	if c.Geocoding.RatePerSecond <= 0 {
		errs = append(errs, "geocoding.rate_per_second must be positive")
	}
	if c.Geocoding.BoundsRadiusMeters < 0 {
		errs = append(errs, "geocoding.bounds_radius_meters must not be negative")
	}
	if c.Directory.BaseURL == "" {
		errs = append(errs, "directory.base_url is required")
	}
	if c.Directory.TimeoutSeconds <= 0 {
		errs = append(errs, "directory.timeout_seconds must be positive")
	}
	if c.Directory.PerPage <= 0 {
		errs = append(errs, "directory.per_page must be positive")
	}

	switch c.Postal.Source {
	case PostalSourceFile:
		if c.Postal.Path == "" {
			errs = append(errs, "postal.path is required when postal.source is file")
		}
	case PostalSourcePostgres:
		errs = append(errs, c.validateDatabase()...)
	default:
		errs = append(errs, fmt.Sprintf("postal.source must be file or postgres, got %q", c.Postal.Source))
	}

	switch c.Email.Mode {
	case EmailModeDisabled:
	case EmailModeDirect, EmailModeTemporal:
		if c.Email.SMTPHost == "" {
			errs = append(errs, "email.smtp_host is required unless email.mode is disabled")
		}
		if c.Email.SMTPPort <= 0 || c.Email.SMTPPort > 65535 {
			errs = append(errs, fmt.Sprintf("email.smtp_port must be 1-65535, got %d", c.Email.SMTPPort))
		}
		if c.Email.FromEmail == "" {
			errs = append(errs, "email.from_email is required unless email.mode is disabled")
		}
		if c.Email.Mode == EmailModeTemporal && c.Temporal.TaskQueue == "" {
			errs = append(errs, "temporal.task_queue is required when email.mode is temporal")
		}
	default:
		errs = append(errs, fmt.Sprintf("email.mode must be direct, temporal or disabled, got %q", c.Email.Mode))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (c *Config) validateDatabase() []string {
	var errs []string
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	return errs
}

// ValidateDatabase checks the database section alone, for tools that always
// need Postgres regardless of postal.source.
func (c *Config) ValidateDatabase() error {
	if errs := c.validateDatabase(); len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
