// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package stores

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/sigma-desa/kiosk/internal/models"
	"github.com/sigma-desa/kiosk/internal/sync"
)

// fallbackIdleTimeout applies when no configuration has ever been
// fetched, so a factory-fresh kiosk still resets to the attract loop.
const fallbackIdleTimeout = 60 * time.Second

// ConfigStore holds the kiosk's display configuration.
type ConfigStore struct {
	state
	engine *sync.Engine

	docMu stdsync.RWMutex
	doc   *models.KioskConfig
}

// NewConfigStore creates a ConfigStore refreshing through engine.
func NewConfigStore(engine *sync.Engine) *ConfigStore {
	return &ConfigStore{engine: engine}
}

// Fetch refreshes the configuration. On failure the previous
// configuration is kept and the error is both recorded and returned.
func (s *ConfigStore) Fetch(ctx context.Context) error {
	s.beginFetch()

	doc, _, err := sync.SyncDocument[models.KioskConfig](ctx, s.engine, sync.DocConfig)
	if err != nil {
		s.endFetch(err, false)
		return err
	}

	s.docMu.Lock()
	s.doc = doc
	s.docMu.Unlock()

	s.endFetch(nil, true)
	return nil
}

// Config returns the current configuration, or the built-in default
// when nothing has been fetched yet.
func (s *ConfigStore) Config() models.KioskConfig {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	if s.doc == nil {
		return models.DefaultKioskConfig()
	}
	return *s.doc
}

// Theme returns the active display theme.
func (s *ConfigStore) Theme() models.Theme {
	return s.Config().Theme
}

// IdleTimeout returns the configured idle budget. When the policy is
// disabled it returns zero; when nothing is fetched it returns the
// fallback so the kiosk never loses its attract loop.
func (s *ConfigStore) IdleTimeout() time.Duration {
	s.docMu.RLock()
	doc := s.doc
	s.docMu.RUnlock()

	if doc == nil {
		return fallbackIdleTimeout
	}
	if !doc.IdleTimeout.Enabled {
		return 0
	}
	return time.Duration(doc.IdleTimeout.Duration) * time.Millisecond
}

// Reset discards fetched data and bookkeeping.
func (s *ConfigStore) Reset() {
	s.docMu.Lock()
	s.doc = nil
	s.docMu.Unlock()
	s.reset()
}
