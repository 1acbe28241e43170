// Package config loads the service configuration from the environment and
// the solver parameter datafile from YAML.
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/copyleftdev/zerofun/internal/dispatch"
	apperrors "github.com/copyleftdev/zerofun/internal/errors"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Solver struct {
		DefaultMethod    string `env:"SOLVER_DEFAULT_METHOD" envDefault:"Brent"`
		ParamsFile       string `env:"SOLVER_PARAMS_FILE"`
		MaxExpressionLen int    `env:"SOLVER_MAX_EXPRESSION_LEN" envDefault:"512"`
		MaxRuns          int    `env:"SOLVER_MAX_RUNS" envDefault:"1000"`
		// MaxIterations caps maxIt and maxIter on requests served over HTTP.
		MaxIterations int `env:"SOLVER_MAX_ITERATIONS" envDefault:"10000"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	// Parse environment variables
	if err := env.Parse(cfg); err != nil {
		return nil, apperrors.Wrap(err, "parse environment").
			WithOperation("load").
			WithComponent("config")
	}

	// Set default logging level based on environment
	if cfg.Logging.Level == "" {
		if cfg.Environment == "development" {
			cfg.Logging.Level = "debug"
		} else {
			cfg.Logging.Level = "info"
		}
	}

	if _, err := dispatch.ParseMethod(cfg.Solver.DefaultMethod); err != nil {
		return nil, err
	}
	if cfg.Solver.MaxExpressionLen <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidParameter, "SOLVER_MAX_EXPRESSION_LEN must be positive, got %d", cfg.Solver.MaxExpressionLen).
			WithOperation("load").
			WithComponent("config")
	}
	if cfg.Solver.MaxRuns <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidParameter, "SOLVER_MAX_RUNS must be positive, got %d", cfg.Solver.MaxRuns).
			WithOperation("load").
			WithComponent("config")
	}
	if cfg.Solver.MaxIterations <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidParameter, "SOLVER_MAX_ITERATIONS must be positive, got %d", cfg.Solver.MaxIterations).
			WithOperation("load").
			WithComponent("config")
	}
	cfg.Solver.ParamsFile = strings.TrimSpace(cfg.Solver.ParamsFile)

	return cfg, nil
}

// Defaults returns the solver defaults: the datafile named by
// SOLVER_PARAMS_FILE when set, the built-in parameters otherwise.
func (c *Config) Defaults() (*Datafile, error) {
	if c.Solver.ParamsFile == "" {
		df := NewDatafile()
		df.Method = c.Solver.DefaultMethod
		return df, nil
	}
	df, err := LoadDatafile(c.Solver.ParamsFile)
	if err != nil {
		return nil, err
	}
	if df.Method == "" {
		df.Method = c.Solver.DefaultMethod
	}
	return df, nil
}
