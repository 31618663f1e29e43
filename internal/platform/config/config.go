// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (API client, CLI) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the console is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Pivora admin console.
type Config struct {

	// PIM backend API
	APIBaseURL string `env:"PIVORA_API_URL,required"`
	APIToken   string `env:"PIVORA_API_TOKEN"`

	// RequestTimeout bounds every individual API round trip.
	RequestTimeout time.Duration `env:"PIVORA_TIMEOUT" envDefault:"20s"`

	// Client-side rate limiting (requests per second + burst allowance).
	RateLimit float64 `env:"PIVORA_RATE_LIMIT" envDefault:"10"`
	RateBurst int     `env:"PIVORA_RATE_BURST" envDefault:"20"`

	// Runtime mode
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the console is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the console is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
