// Package cli provides the start-up steps shared by every vicmoney command.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"vicmoney/internal/config"
	"vicmoney/internal/log"
)

// Overrides are command-line values that take precedence over the environment.
// Empty fields leave the environment value in place.
type Overrides struct {
	Port      string
	LogLevel  string
	LogFormat string
}

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// LoadAndValidateConfig loads configuration, applies overrides and validates it.
func LoadAndValidateConfig(o Overrides) (*config.Config, error) {
	cfg := config.Load()
	if o.Port != "" {
		cfg.Port = o.Port
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the application logger from cfg and sets it as the
// slog default. cfg must already be validated.
func SetupLogger(cfg *config.Config, out io.Writer) *log.Logger {
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
