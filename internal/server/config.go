package server

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/spatial/internal/core/observability/log"
)

// Config holds server configuration
type Config struct {
	// Network settings
	ListenAddr   string        `yaml:"listen_addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// Query settings
	MaxDistance  float64 `yaml:"max_distance"`
	MaxBodySize  int64   `yaml:"max_body_size"`
	MaxBatchSize int     `yaml:"max_batch_size"`

	// WebSocket settings
	ReadBufferSize  int `yaml:"read_buffer_size"`
	WriteBufferSize int `yaml:"write_buffer_size"`

	// Logging
	LogLevel log.Level `yaml:"log_level"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		MaxDistance:     1000,
		MaxBodySize:     1024 * 1024, // 1MB
		MaxBatchSize:    256,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		LogLevel:        log.LevelInfo,
	}
}

// LoadConfig reads a YAML file on top of DefaultServerConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultServerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch {
	case c.ListenAddr == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	case !(c.MaxDistance > 0) || math.IsInf(c.MaxDistance, 0):
		return fmt.Errorf("%w: max distance %g", ErrInvalidConfig, c.MaxDistance)
	case c.MaxBodySize <= 0:
		return fmt.Errorf("%w: max body size %d", ErrInvalidConfig, c.MaxBodySize)
	case c.MaxBatchSize <= 0:
		return fmt.Errorf("%w: max batch size %d", ErrInvalidConfig, c.MaxBatchSize)
	case c.ReadTimeout < 0 || c.WriteTimeout < 0:
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	return nil
}
