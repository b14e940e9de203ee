// Package config provides the configuration structure for the tts-chunker.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/book-expert/configurator"
	"github.com/book-expert/logger"
	"github.com/book-expert/tts-chunker/internal/chunking"
	"github.com/pelletier/go-toml/v2"
)

const logDirPermissions = 0o750

var (
	// ErrNATSURLEmpty indicates that no NATS server URL is configured.
	ErrNATSURLEmpty = errors.New("nats url cannot be empty")
	// ErrSubjectEmpty indicates that no input subject is configured.
	ErrSubjectEmpty = errors.New("text processed subject cannot be empty")
	// ErrBucketEmpty indicates that an object store bucket is not configured.
	ErrBucketEmpty = errors.New("object store bucket cannot be empty")
)

// NATSConfig holds the configuration for NATS.
type NATSConfig struct {
	URL                    string `toml:"url"`
	TextProcessedSubject   string `toml:"text_processed_subject"`
	ChunksPreparedSubject  string `toml:"chunks_prepared_subject"`
	TextObjectStoreBucket  string `toml:"text_object_store_bucket"`
	ChunkObjectStoreBucket string `toml:"chunk_object_store_bucket"`
}

// MetricsConfig holds the configuration for the metrics endpoint.
type MetricsConfig struct {
	// ListenAddress serves /metrics when set, for example ":9102".
	ListenAddress string `toml:"listen_address"`
}

// PathsConfig holds the configuration for file paths.
type PathsConfig struct {
	BaseLogsDir string `toml:"base_logs_dir"`
}

// Config is the root configuration structure.
type Config struct {
	NATS     NATSConfig      `toml:"nats"`
	Chunking chunking.Config `toml:"chunking"`
	Metrics  MetricsConfig   `toml:"metrics"`
	Paths    PathsConfig     `toml:"paths"`
}

// Load loads the configuration for the tts-chunker through the central
// configurator and validates its chunking section.
func Load(log *logger.Logger) (*Config, error) {
	var cfg Config

	err := configurator.Load(&cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from configurator: %w", err)
	}

	return finish(&cfg)
}

// Parse decodes a TOML document. Sections that are absent keep their zero
// values and the chunking section takes its defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return finish(&cfg)
}

// ValidateService checks the settings the NATS service needs beyond chunking.
func (c *Config) ValidateService() error {
	if c.NATS.URL == "" {
		return ErrNATSURLEmpty
	}

	if c.NATS.TextProcessedSubject == "" {
		return ErrSubjectEmpty
	}

	if c.NATS.TextObjectStoreBucket == "" || c.NATS.ChunkObjectStoreBucket == "" {
		return ErrBucketEmpty
	}

	return nil
}

// EnsureDirectories creates the log directory.
func (c *Config) EnsureDirectories() error {
	if c.Paths.BaseLogsDir == "" {
		return nil
	}

	err := os.MkdirAll(c.Paths.BaseLogsDir, logDirPermissions)
	if err != nil {
		return fmt.Errorf("failed to create log directory '%s': %w", c.Paths.BaseLogsDir, err)
	}

	return nil
}

func finish(cfg *Config) (*Config, error) {
	cfg.Chunking = cfg.Chunking.WithDefaults()

	err := cfg.Chunking.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid [chunking] section: %w", err)
	}

	return cfg, nil
}
