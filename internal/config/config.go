// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration shared by both binaries. The server
// reads Server, Security and Logging; the display agent reads Kiosk, Sync,
// Idle, Monitor and Logging.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Kiosk    KioskConfig    `koanf:"kiosk"`
	Sync     SyncConfig     `koanf:"sync"`
	Idle     IdleConfig     `koanf:"idle"`
	Monitor  MonitorConfig  `koanf:"monitor"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds the content server's HTTP and storage settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// DataDir is the directory holding the JSON document files.
	DataDir string `koanf:"data_dir"`
}

// KioskConfig holds the display agent's connection and cache settings.
type KioskConfig struct {
	// APIBaseURL is the content server base URL, e.g. http://localhost:8311.
	APIBaseURL string `koanf:"api_base_url"`

	// CacheDir is the badger directory for the offline cache.
	CacheDir string `koanf:"cache_dir"`

	// Language is the initial running-text language: id or makassar.
	Language string `koanf:"language"`

	// StatusAddr is the agent's local status/metrics listen address.
	StatusAddr string `koanf:"status_addr"`
}

// SyncConfig controls the agent's periodic background sync.
type SyncConfig struct {
	Interval       time.Duration `koanf:"interval"`
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// ProbeInterval is how often connectivity to the content server is
	// probed.
	ProbeInterval time.Duration `koanf:"probe_interval"`
}

// IdleConfig controls the idle/attract state machine. CountdownWindow must
// be strictly shorter than Budget; the countdown starts at
// Budget - CountdownWindow.
type IdleConfig struct {
	Budget          time.Duration `koanf:"budget"`
	CountdownWindow time.Duration `koanf:"countdown_window"`
}

// MonitorConfig controls the performance monitor.
type MonitorConfig struct {
	SampleInterval time.Duration `koanf:"sample_interval"`
	MemoryWarnMB   uint64        `koanf:"memory_warn_mb"`
}

// SecurityConfig holds the server's transport hardening settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks cross-field constraints after loading.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d outside valid range 1-65535", c.Server.Port)
	}
	if c.Server.DataDir == "" {
		return errors.New("server.data_dir must not be empty")
	}
	if c.Kiosk.APIBaseURL != "" {
		if _, err := url.Parse(c.Kiosk.APIBaseURL); err != nil {
			return fmt.Errorf("kiosk.api_base_url invalid: %w", err)
		}
	}
	if c.Kiosk.Language != "id" && c.Kiosk.Language != "makassar" {
		return fmt.Errorf("kiosk.language must be id or makassar, got %q", c.Kiosk.Language)
	}
	if c.Sync.Interval <= 0 {
		return errors.New("sync.interval must be positive")
	}
	if c.Sync.ProbeInterval <= 0 {
		return errors.New("sync.probe_interval must be positive")
	}
	if c.Idle.Budget <= 0 || c.Idle.CountdownWindow <= 0 {
		return errors.New("idle.budget and idle.countdown_window must be positive")
	}
	if c.Idle.CountdownWindow >= c.Idle.Budget {
		return fmt.Errorf("idle.countdown_window %s must be shorter than idle.budget %s",
			c.Idle.CountdownWindow, c.Idle.Budget)
	}
	return nil
}
