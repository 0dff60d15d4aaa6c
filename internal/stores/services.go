// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package stores

import (
	"context"
	"sort"
	stdsync "sync"

	"github.com/sigma-desa/kiosk/internal/models"
	"github.com/sigma-desa/kiosk/internal/sync"
)

// ServicesStore holds the directory of village services shown on the
// kiosk menu.
type ServicesStore struct {
	state
	engine *sync.Engine

	docMu    stdsync.RWMutex
	services []models.ServiceItem
}

// NewServicesStore creates a ServicesStore refreshing through engine.
func NewServicesStore(engine *sync.Engine) *ServicesStore {
	return &ServicesStore{engine: engine}
}

// Fetch refreshes the service directory. On failure the previous
// directory is kept and the error is both recorded and returned.
func (s *ServicesStore) Fetch(ctx context.Context) error {
	s.beginFetch()

	doc, _, err := sync.SyncDocument[models.ServicesDocument](ctx, s.engine, sync.DocServices)
	if err != nil {
		s.endFetch(err, false)
		return err
	}

	services := make([]models.ServiceItem, len(doc.Services))
	copy(services, doc.Services)
	sort.SliceStable(services, func(i, j int) bool {
		return services[i].Order < services[j].Order
	})

	s.docMu.Lock()
	s.services = services
	s.docMu.Unlock()

	s.endFetch(nil, true)
	return nil
}

// Services returns the ordered service directory.
func (s *ServicesStore) Services() []models.ServiceItem {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	out := make([]models.ServiceItem, len(s.services))
	copy(out, s.services)
	return out
}

// Count returns the number of services.
func (s *ServicesStore) Count() int {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	return len(s.services)
}

// HasServices reports whether the directory is non-empty.
func (s *ServicesStore) HasServices() bool {
	return s.Count() > 0
}

// ServiceByID returns the service with the given ID, or false when no
// such service exists.
func (s *ServicesStore) ServiceByID(id int) (models.ServiceItem, bool) {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	for _, svc := range s.services {
		if svc.ID == id {
			return svc, true
		}
	}
	return models.ServiceItem{}, false
}

// ServicesByAction returns every service with the given action kind,
// in display order.
func (s *ServicesStore) ServicesByAction(action string) []models.ServiceItem {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	var out []models.ServiceItem
	for _, svc := range s.services {
		if svc.Action == action {
			out = append(out, svc)
		}
	}
	return out
}

// Reset discards the directory and bookkeeping.
func (s *ServicesStore) Reset() {
	s.docMu.Lock()
	s.services = nil
	s.docMu.Unlock()
	s.reset()
}
