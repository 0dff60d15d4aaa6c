// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package stores

import (
	"sync"
	"time"
)

// state carries the fetch bookkeeping shared by every store.
type state struct {
	mu        sync.RWMutex
	loading   bool
	err       error
	lastFetch time.Time
	subs      []chan struct{}
}

// Loading reports whether a refresh is in flight.
func (s *state) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error from the most recent refresh, or nil after a
// successful one.
func (s *state) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// LastFetch returns when data was last applied. Zero until the first
// successful refresh.
func (s *state) LastFetch() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetch
}

// Subscribe returns a channel that receives a value after every state
// change. Slow subscribers coalesce notifications instead of blocking
// the store.
func (s *state) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// beginFetch marks the store loading, clears the previous error and
// notifies subscribers.
func (s *state) beginFetch() {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
	s.notify()
}

// endFetch records the refresh result. Data application happens in the
// caller under its own lock before endFetch is called.
func (s *state) endFetch(err error, applied bool) {
	s.mu.Lock()
	s.loading = false
	s.err = err
	if applied {
		s.lastFetch = time.Now()
	}
	s.mu.Unlock()
	s.notify()
}

// reset restores the zero bookkeeping state.
func (s *state) reset() {
	s.mu.Lock()
	s.loading = false
	s.err = nil
	s.lastFetch = time.Time{}
	s.mu.Unlock()
	s.notify()
}

func (s *state) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
