// Package config defines the configuration of a lending pool simulation run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the parameters of a simulation run. It is constructed once and
// is not changed during the run.
type Config struct {
	// Tick is the length of a simulation step, in years.
	Tick float64 `yaml:"tick"`

	InitialInterestRate float64 `yaml:"initial_interest_rate"`
	MaximumInterestRate float64 `yaml:"maximum_interest_rate"`
	TargetUtilization   float64 `yaml:"target_utilization"`

	NumberOfActors int `yaml:"number_of_actors"`

	// InitialCash is the cash every actor holds at the start of the run.
	InitialCash float64 `yaml:"initial_cash"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Tick:                1.0 / 256.0,
		InitialInterestRate: 0.03,
		MaximumInterestRate: 0.06,
		TargetUtilization:   0.8,
		NumberOfActors:      1000,
		InitialCash:         1.0,
	}
}

// envOverrides maps environment variables to the float fields they override.
var envOverrides = map[string]func(c *Config) *float64{
	"LENDSIM_TICK":                  func(c *Config) *float64 { return &c.Tick },
	"LENDSIM_INITIAL_INTEREST_RATE": func(c *Config) *float64 { return &c.InitialInterestRate },
	"LENDSIM_MAXIMUM_INTEREST_RATE": func(c *Config) *float64 { return &c.MaximumInterestRate },
	"LENDSIM_TARGET_UTILIZATION":    func(c *Config) *float64 { return &c.TargetUtilization },
	"LENDSIM_INITIAL_CASH":          func(c *Config) *float64 { return &c.InitialCash },
}

// Load starts from the default configuration, applies the YAML file at path,
// then applies the variables in a .env file in the working directory and the
// LENDSIM_* environment variables. An empty path skips the file. A missing
// file and unknown keys in the file are errors; a missing .env is not.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		err = dec.Decode(&cfg)
		if err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	for name, field := range envOverrides {
		v := os.Getenv(name)
		if v == "" {
			continue
		}

		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}

		*field(c) = f
	}

	if v := os.Getenv("LENDSIM_NUMBER_OF_ACTORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse LENDSIM_NUMBER_OF_ACTORS: %w", err)
		}

		c.NumberOfActors = n
	}

	return nil
}

// Validate checks that the configuration cannot drive the rate law into a
// singularity.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"tick":                  c.Tick,
		"initial_interest_rate": c.InitialInterestRate,
		"maximum_interest_rate": c.MaximumInterestRate,
		"target_utilization":    c.TargetUtilization,
		"initial_cash":          c.InitialCash,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, name)
		}
	}

	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick must be positive", ErrInvalidConfig)
	}

	if c.InitialInterestRate <= 0 {
		return fmt.Errorf("%w: initial_interest_rate must be positive",
			ErrInvalidConfig)
	}

	if c.MaximumInterestRate <= c.InitialInterestRate {
		return fmt.Errorf(
			"%w: maximum_interest_rate must be greater than initial_interest_rate",
			ErrInvalidConfig)
	}

	if c.TargetUtilization <= 0 || c.TargetUtilization > 1 {
		return fmt.Errorf("%w: target_utilization must be in (0, 1]",
			ErrInvalidConfig)
	}

	if c.NumberOfActors < 1 {
		return fmt.Errorf("%w: number_of_actors must be at least 1",
			ErrInvalidConfig)
	}

	if c.InitialCash <= 0 {
		return fmt.Errorf("%w: initial_cash must be positive", ErrInvalidConfig)
	}

	return nil
}
