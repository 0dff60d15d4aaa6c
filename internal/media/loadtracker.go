// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package media

import (
	"sync"
	"time"
)

// LoadState is an asset's position in its load lifecycle.
type LoadState int

const (
	LoadPending LoadState = iota
	LoadInProgress
	LoadSucceeded
	LoadFailed
)

// String returns the state name for logs.
func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadInProgress:
		return "loading"
	case LoadSucceeded:
		return "loaded"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// assetRecord tracks one asset's load attempts.
type assetRecord struct {
	state    LoadState
	attempts int
	updated  time.Time
}

// LoadTracker records the load state of slide assets so the
// presentation layer can show placeholders for broken media instead of
// a blank panel, and skip assets that keep failing.
type LoadTracker struct {
	mu          sync.Mutex
	assets      map[string]*assetRecord
	maxAttempts int
}

// NewLoadTracker creates a tracker that treats an asset as broken
// after maxAttempts failed loads. maxAttempts below 1 becomes 1.
func NewLoadTracker(maxAttempts int) *LoadTracker {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &LoadTracker{
		assets:      make(map[string]*assetRecord),
		maxAttempts: maxAttempts,
	}
}

// Begin marks url as loading and counts the attempt.
func (t *LoadTracker) Begin(url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec := t.record(url)
	rec.state = LoadInProgress
	rec.attempts++
	rec.updated = time.Now()
}

// Succeed marks url as loaded and clears its failure history.
func (t *LoadTracker) Succeed(url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec := t.record(url)
	rec.state = LoadSucceeded
	rec.attempts = 0
	rec.updated = time.Now()
}

// Fail marks url as failed.
func (t *LoadTracker) Fail(url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec := t.record(url)
	rec.state = LoadFailed
	rec.updated = time.Now()
}

// State returns the current load state of url.
func (t *LoadTracker) State(url string) LoadState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rec, ok := t.assets[url]; ok {
		return rec.state
	}
	return LoadPending
}

// Broken reports whether url has exhausted its load attempts without
// a success.
func (t *LoadTracker) Broken(url string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.assets[url]
	return ok && rec.state == LoadFailed && rec.attempts >= t.maxAttempts
}

// Forget drops url's history, so a content update can retry an asset
// that previously kept failing.
func (t *LoadTracker) Forget(url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.assets, url)
}

func (t *LoadTracker) record(url string) *assetRecord {
	rec, ok := t.assets[url]
	if !ok {
		rec = &assetRecord{}
		t.assets[url] = rec
	}
	return rec
}
