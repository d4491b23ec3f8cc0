package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath   string `yaml:"storage_path" env:"STORAGE_PATH"`
		MaxUploadSize int64  `yaml:"max_upload_size" env:"MAX_UPLOAD_SIZE"`
		// PublicURL prefixes image URLs, e.g. "https://api.campus.example". Empty means relative URLs.
		PublicURL       string        `yaml:"public_url" env:"PUBLIC_URL"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		// URL takes precedence over the discrete connection fields.
		URL             string `yaml:"url" env:"DATABASE_URL"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsPath  string `yaml:"migrations_path" env:"DB_MIGRATIONS_PATH"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	RateLimit struct {
		Enabled           bool   `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
		RequestsPerMinute int    `yaml:"requests_per_minute" env:"RATE_LIMIT_PER_MINUTE"`
		Burst             int    `yaml:"burst" env:"RATE_LIMIT_BURST"`
		RedisAddr         string `yaml:"redis_addr" env:"REDIS_ADDR"`
		RedisPassword     string `yaml:"redis_password" env:"REDIS_PASSWORD"`
		RedisDB           int    `yaml:"redis_db" env:"REDIS_DB"`
		// IdleTTL is how long an in-process per-IP limiter survives without requests.
		IdleTTL time.Duration `yaml:"idle_ttl" env:"RATE_LIMIT_IDLE_TTL"`
	} `yaml:"rate_limit"`

	Realtime struct {
		SocketIOEnabled  bool `yaml:"socketio_enabled" env:"SOCKETIO_ENABLED"`
		WebSocketEnabled bool `yaml:"websocket_enabled" env:"WEBSOCKET_ENABLED"`
	} `yaml:"realtime"`
}

// LoadConfig loads configuration from defaults, a YAML file, optional .env files and
// environment variables, in that order of increasing precedence.
func LoadConfig(configPath string, envFiles ...string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadEnvFiles exports the variables of each existing .env file. Variables already set
// in the process environment win.
func loadEnvFiles(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.MaxUploadSize = 5 * 1024 * 1024
	config.Server.ShutdownTimeout = 10 * time.Second

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "campuslink"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsPath = "migrations"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.CORS.AllowedOrigins = []string{"*"}

	config.RateLimit.Enabled = true
	config.RateLimit.RequestsPerMinute = 30
	config.RateLimit.Burst = 10
	config.RateLimit.IdleTTL = 10 * time.Minute

	config.Realtime.SocketIOEnabled = true
	config.Realtime.WebSocketEnabled = true
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.New("server port is required")
	}

	if config.Server.StoragePath == "" {
		return errors.New("storage path is required")
	}

	if config.Server.MaxUploadSize <= 0 {
		return errors.New("max upload size must be positive")
	}

	if config.Database.URL == "" && config.Database.Host == "" {
		return errors.New("database url or host is required")
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection max lifetime: %w", err)
	}

	if config.RateLimit.Enabled && config.RateLimit.RequestsPerMinute <= 0 {
		return errors.New("rate limit requests per minute must be positive when rate limiting is enabled")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// UploadsURL returns the URL prefix stored images are served under.
func (c *Config) UploadsURL() string {
	return strings.TrimRight(c.Server.PublicURL, "/") + "/uploads"
}
