// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package sync

import (
	"context"
	"sync"
	"time"

	"github.com/sigma-desa/kiosk/internal/logging"
)

// ConnectivityWatcher probes the content server and keeps the engine's
// online flag current. Subscribers receive a value on every transition.
type ConnectivityWatcher struct {
	fetcher  Fetcher
	engine   *Engine
	interval time.Duration

	mu   sync.Mutex
	subs []chan bool

	startStop
}

// NewConnectivityWatcher creates a watcher probing at the given
// interval. An interval below one second is raised to one second so a
// misconfigured kiosk cannot flood its own server.
func NewConnectivityWatcher(fetcher Fetcher, engine *Engine, interval time.Duration) *ConnectivityWatcher {
	if interval < time.Second {
		interval = time.Second
	}
	return &ConnectivityWatcher{
		fetcher:  fetcher,
		engine:   engine,
		interval: interval,
	}
}

// Subscribe returns a channel receiving the online flag on every
// transition. Slow subscribers miss intermediate transitions rather
// than blocking the watcher.
func (w *ConnectivityWatcher) Subscribe() <-chan bool {
	ch := make(chan bool, 1)
	w.mu.Lock()
	w.subs = append(w.subs, ch)
	w.mu.Unlock()
	return ch
}

// Serve probes until ctx is canceled. Implements suture.Service.
func (w *ConnectivityWatcher) Serve(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.probe(ctx)
		}
	}
}

// Start launches the watcher in the background. Used when the agent
// runs without a supervision tree.
func (w *ConnectivityWatcher) Start() {
	w.start(w.Serve)
}

// Stop cancels a background watcher started with Start.
func (w *ConnectivityWatcher) Stop() {
	w.stop()
}

func (w *ConnectivityWatcher) probe(ctx context.Context) {
	err := w.fetcher.Ping(ctx)
	online := err == nil

	if w.engine.Online() != online {
		if online {
			logging.Info().Msg("Content server reachable again")
		} else {
			logging.Warn().Err(err).Msg("Content server unreachable")
		}
		w.engine.SetOnline(online)
		w.broadcast(online)
	}
}

func (w *ConnectivityWatcher) broadcast(online bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs {
		select {
		case ch <- online:
		default:
			// Replace the stale value so the subscriber always sees
			// the latest state.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- online:
			default:
			}
		}
	}
}

// startStop owns the goroutine lifecycle shared by the watcher and the
// auto sync loop when they run outside a supervision tree.
type startStop struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *startStop) start(serve func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	done := make(chan struct{})
	s.done = done

	go func() {
		defer close(done)
		_ = serve(ctx)
	}()
}

func (s *startStop) stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
