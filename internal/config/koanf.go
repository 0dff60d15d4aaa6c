// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"kiosk.yaml",
	"kiosk.yml",
	"/etc/sigma-kiosk/kiosk.yaml",
	"/etc/sigma-kiosk/kiosk.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "KIOSK_CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. The idle budget
// and countdown window match the reference kiosk configuration (60s budget,
// countdown over the final 10s).
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8311,
			Timeout: 30 * time.Second,
			DataDir: "/data/kiosk",
		},
		Kiosk: KioskConfig{
			APIBaseURL: "http://127.0.0.1:8311",
			CacheDir:   "/data/kiosk-cache",
			Language:   "id",
			StatusAddr: "127.0.0.1:9311",
		},
		Sync: SyncConfig{
			Interval:       5 * time.Minute,
			RequestTimeout: 15 * time.Second,
			ProbeInterval:  30 * time.Second,
		},
		Idle: IdleConfig{
			Budget:          60 * time.Second,
			CountdownWindow: 10 * time.Second,
		},
		Monitor: MonitorConfig{
			SampleInterval: 5 * time.Minute,
			MemoryWarnMB:   500,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if found)
//  3. Environment variables: highest priority
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches the env override and default paths, returning the
// first file that exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// supplied through environment variables.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env strings to slices for the
// known slice fields. YAML-sourced slices are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return empty string and are skipped, which keeps
// unrelated environment noise out of the configuration.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - KIOSK_API_BASE_URL -> kiosk.api_base_url
//   - SYNC_INTERVAL -> sync.interval
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":      "server.host",
		"http_port":      "server.port",
		"http_timeout":   "server.timeout",
		"kiosk_data_dir": "server.data_dir",

		// Display agent mappings
		"kiosk_api_base_url": "kiosk.api_base_url",
		"kiosk_cache_dir":    "kiosk.cache_dir",
		"kiosk_language":     "kiosk.language",
		"kiosk_status_addr":  "kiosk.status_addr",

		// Sync mappings
		"sync_interval":        "sync.interval",
		"sync_request_timeout": "sync.request_timeout",
		"sync_probe_interval":  "sync.probe_interval",

		// Idle mappings
		"idle_budget":           "idle.budget",
		"idle_countdown_window": "idle.countdown_window",

		// Monitor mappings
		"monitor_sample_interval": "monitor.sample_interval",
		"monitor_memory_warn_mb":  "monitor.memory_warn_mb",

		// Security mappings
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
