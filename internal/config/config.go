package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/diarioapp/diario/internal/domain/diary"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sheet   SheetConfig   `yaml:"sheet"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SheetConfig identifies the remote spreadsheet.
type SheetConfig struct {
	// ID is the document key between /d/ and /edit in the sheet URL.
	ID string `yaml:"id"`
	// CacheTTLSeconds bounds how often the CSV export is refetched.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	// CredentialsFile optionally points at a service-account JSON file used
	// as the default credential for read-write sessions.
	CredentialsFile string `yaml:"credentials_file"`
}

// SessionConfig holds the defaults new browser sessions start from.
type SessionConfig struct {
	Mode   string       `yaml:"mode"`
	Points diary.Points `yaml:"points"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Sheet: SheetConfig{
			CacheTTLSeconds: 60,
		},
		Session: SessionConfig{
			Mode:   string(diary.ModeReadOnly),
			Points: diary.DefaultPoints(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("DIARIO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("DIARIO_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("DIARIO_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DIARIO_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if id := os.Getenv("DIARIO_SHEET_ID"); id != "" {
		cfg.Sheet.ID = id
	}
	if file := os.Getenv("DIARIO_CREDENTIALS_FILE"); file != "" {
		cfg.Sheet.CredentialsFile = file
	}
	if mode := os.Getenv("DIARIO_MODE"); mode != "" {
		cfg.Session.Mode = mode
	}
	if level := os.Getenv("DIARIO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Sheet.ID == "" {
		return fmt.Errorf("sheet id is required (set DIARIO_SHEET_ID)")
	}
	if !diary.Mode(cfg.Session.Mode).Valid() {
		return fmt.Errorf("invalid session mode %q", cfg.Session.Mode)
	}
	if err := cfg.Session.Points.Validate(); err != nil {
		return fmt.Errorf("session points: %w", err)
	}
	if cfg.Sheet.CacheTTLSeconds <= 0 {
		return fmt.Errorf("cache_ttl_seconds must be positive")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
