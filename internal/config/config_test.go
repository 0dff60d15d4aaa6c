// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8311 {
		t.Errorf("server.port = %d, want 8311", cfg.Server.Port)
	}
	if cfg.Kiosk.Language != "id" {
		t.Errorf("kiosk.language = %q, want id", cfg.Kiosk.Language)
	}
	if cfg.Kiosk.StatusAddr != "127.0.0.1:9311" {
		t.Errorf("kiosk.status_addr = %q", cfg.Kiosk.StatusAddr)
	}
	if cfg.Sync.Interval != 5*time.Minute {
		t.Errorf("sync.interval = %s, want 5m", cfg.Sync.Interval)
	}
	if cfg.Idle.Budget != 60*time.Second || cfg.Idle.CountdownWindow != 10*time.Second {
		t.Errorf("idle = %s/%s, want 60s/10s", cfg.Idle.Budget, cfg.Idle.CountdownWindow)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("KIOSK_API_BASE_URL", "http://content.desa.local:8311")
	t.Setenv("KIOSK_LANGUAGE", "makassar")
	t.Setenv("SYNC_INTERVAL", "90s")
	t.Setenv("IDLE_BUDGET", "45s")
	t.Setenv("CORS_ORIGINS", "http://kiosk-1.local, http://kiosk-2.local")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("server.port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Kiosk.APIBaseURL != "http://content.desa.local:8311" {
		t.Errorf("kiosk.api_base_url = %q", cfg.Kiosk.APIBaseURL)
	}
	if cfg.Kiosk.Language != "makassar" {
		t.Errorf("kiosk.language = %q, want makassar", cfg.Kiosk.Language)
	}
	if cfg.Sync.Interval != 90*time.Second {
		t.Errorf("sync.interval = %s, want 90s", cfg.Sync.Interval)
	}
	if cfg.Idle.Budget != 45*time.Second {
		t.Errorf("idle.budget = %s, want 45s", cfg.Idle.Budget)
	}

	want := []string{"http://kiosk-1.local", "http://kiosk-2.local"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("cors_origins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i, origin := range want {
		if cfg.Security.CORSOrigins[i] != origin {
			t.Errorf("cors_origins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], origin)
		}
	}
}

func TestLoadUnmappedEnvIgnored(t *testing.T) {
	t.Setenv("PORT", "1234")
	t.Setenv("HOSTNAME", "unrelated")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8311 {
		t.Errorf("server.port = %d, unrelated env leaked in", cfg.Server.Port)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kiosk.yaml")
	content := strings.Join([]string{
		"server:",
		"  port: 8400",
		"kiosk:",
		"  language: makassar",
		"idle:",
		"  budget: 2m",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8400 {
		t.Errorf("server.port = %d, want 8400 from file", cfg.Server.Port)
	}
	if cfg.Kiosk.Language != "makassar" {
		t.Errorf("kiosk.language = %q, want makassar from file", cfg.Kiosk.Language)
	}
	if cfg.Idle.Budget != 2*time.Minute {
		t.Errorf("idle.budget = %s, want 2m from file", cfg.Idle.Budget)
	}
	// Unset file keys keep their defaults.
	if cfg.Sync.Interval != 5*time.Minute {
		t.Errorf("sync.interval = %s, want default 5m", cfg.Sync.Interval)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kiosk.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8400\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "8500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8500 {
		t.Errorf("server.port = %d, env should beat file", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(*Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.Server.DataDir = "" },
			wantErr: "server.data_dir",
		},
		{
			name:    "unknown language",
			mutate:  func(c *Config) { c.Kiosk.Language = "en" },
			wantErr: "kiosk.language",
		},
		{
			name:    "sync interval zero",
			mutate:  func(c *Config) { c.Sync.Interval = 0 },
			wantErr: "sync.interval",
		},
		{
			name:    "probe interval zero",
			mutate:  func(c *Config) { c.Sync.ProbeInterval = 0 },
			wantErr: "sync.probe_interval",
		},
		{
			name:    "idle budget zero",
			mutate:  func(c *Config) { c.Idle.Budget = 0 },
			wantErr: "idle.budget",
		},
		{
			name: "countdown not shorter than budget",
			mutate: func(c *Config) {
				c.Idle.Budget = 10 * time.Second
				c.Idle.CountdownWindow = 10 * time.Second
			},
			wantErr: "idle.countdown_window",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate accepted invalid config")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
