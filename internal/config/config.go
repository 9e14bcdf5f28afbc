package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Arena holds all configuration for the arena server and simulator.
type Arena struct {
	// Logging: debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Sim      SimConfig      `yaml:"sim"`
}

// HTTPConfig holds the API listener settings.
type HTTPConfig struct {
	BindAddress     string        `yaml:"bind_address"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// gin mode: debug, release, test
	Mode string `yaml:"mode"`
}

// Addr returns host:port for net/http.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.BindAddress, h.Port)
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// SimConfig tunes the batch simulator.
type SimConfig struct {
	Workers int `yaml:"workers"`
	Battles int `yaml:"battles"`
	// Seed of the first battle; battle i uses Seed+i.
	Seed uint64 `yaml:"seed"`
}

// DefaultArena returns Arena config with sensible defaults.
func DefaultArena() Arena {
	return Arena{
		LogLevel: "info",
		HTTP: HTTPConfig{
			BindAddress:     "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			Mode:            "release",
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "cardarena",
			Password: "cardarena",
			DBName:   "cardarena",
			SSLMode:  "disable",
		},
		Sim: SimConfig{
			Workers: 8,
			Battles: 10000,
			Seed:    1,
		},
	}
}

// LoadArena loads arena config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ParseLogLevel maps a config level name to slog. Unknown names fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
