// Package config reads the CLI and server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"

	"github.com/goliatone/go-formwizard/pkg/store"
	"github.com/goliatone/go-formwizard/pkg/store/file"
	"github.com/goliatone/go-formwizard/pkg/store/memory"
	redisstore "github.com/goliatone/go-formwizard/pkg/store/redis"
)

// Store backends accepted by FORMWIZARD_STORE.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// ErrUnknownStore is returned by OpenStore for an unsupported backend name.
var ErrUnknownStore = errors.New("config: unknown store backend")

// Config holds process level settings. Flags override the decoded values.
type Config struct {
	// Store selects the persistence backend. ENV: FORMWIZARD_STORE
	Store string `env:"FORMWIZARD_STORE,default=file"`

	// StoreDir is the file store directory. ENV: FORMWIZARD_STORE_DIR
	StoreDir string `env:"FORMWIZARD_STORE_DIR,default=.formwizard"`

	// Addr is the listen address of serve. ENV: FORMWIZARD_ADDR
	Addr string `env:"FORMWIZARD_ADDR,default=:8080"`

	// LogLevel is one of debug, info, warn, error. ENV: FORMWIZARD_LOG_LEVEL
	LogLevel string `env:"FORMWIZARD_LOG_LEVEL,default=info"`

	Redis redisstore.Config
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{}.withDefaults()
}

// Load decodes the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: decode env: %w", err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.Store == "" {
		c.Store = StoreFile
	}
	if c.StoreDir == "" {
		c.StoreDir = ".formwizard"
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Logger builds a text logger on w at the configured level.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// OpenStore constructs the configured backend. The caller closes it.
func (c Config) OpenStore() (store.Store, error) {
	switch strings.ToLower(strings.TrimSpace(c.Store)) {
	case StoreMemory:
		return memory.New(), nil
	case StoreFile, "":
		return file.New(file.Config{Dir: c.StoreDir})
	case StoreRedis:
		return redisstore.New(c.Redis)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
}
