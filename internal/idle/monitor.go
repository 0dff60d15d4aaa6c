// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package idle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/metrics"
)

// Config configures a Monitor.
type Config struct {
	// Budget is how long without input before the kiosk goes idle.
	Budget time.Duration

	// CountdownWindow is the tail of the budget during which the
	// display shows a countdown. Must be shorter than Budget.
	CountdownWindow time.Duration

	// OnIdle fires exactly once per idle episode, when the budget is
	// exhausted. Called from the monitor goroutine.
	OnIdle func()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Budget <= 0 {
		return errors.New("idle: budget must be positive")
	}
	if c.CountdownWindow <= 0 {
		return errors.New("idle: countdown window must be positive")
	}
	if c.CountdownWindow >= c.Budget {
		return fmt.Errorf("idle: countdown window %v must be shorter than budget %v",
			c.CountdownWindow, c.Budget)
	}
	return nil
}

// phase is the monitor's position within an idle episode.
type phase int

const (
	phaseActive phase = iota
	phaseCountdown
	phaseIdle
)

// Monitor watches for inactivity. Start begins a fresh episode; any
// input reported through Input or ResetTimer starts the budget over.
type Monitor struct {
	cfg    Config
	inputs chan struct{}

	mu       sync.Mutex
	phase    phase
	deadline time.Time
	running  bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewMonitor creates a Monitor with the given configuration.
func NewMonitor(cfg Config) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Monitor{
		cfg:    cfg,
		inputs: make(chan struct{}, 16),
	}, nil
}

// Start begins monitoring. Starting an already-running monitor is a
// no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.phase = phaseActive
	m.deadline = time.Now().Add(m.cfg.Budget)

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	done := make(chan struct{})
	m.done = done
	m.mu.Unlock()

	go func() {
		defer close(done)
		m.run(ctx)
	}()
}

// Stop halts monitoring and waits for the monitor goroutine to exit.
// No callback fires after Stop returns.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel := m.cancel
	done := m.done
	m.cancel = nil
	m.done = nil
	m.mu.Unlock()

	cancel()
	<-done
}

// Input reports visitor activity. Safe to call from any goroutine;
// when the monitor is saturated with input the extra reports coalesce.
func (m *Monitor) Input() {
	select {
	case m.inputs <- struct{}{}:
	default:
	}
}

// ResetTimer restarts the idle budget, the programmatic equivalent of
// a touch.
func (m *Monitor) ResetTimer() {
	m.Input()
}

// IsIdle reports whether the budget is exhausted and the idle callback
// has fired for this episode.
func (m *Monitor) IsIdle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == phaseIdle
}

// ShowCountdown reports whether the display should warn the visitor
// that the kiosk is about to reset.
func (m *Monitor) ShowCountdown() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == phaseCountdown
}

// CountdownSeconds returns the whole seconds remaining before the
// kiosk resets, rounded up. Zero outside the countdown window.
func (m *Monitor) CountdownSeconds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != phaseCountdown {
		return 0
	}
	remaining := time.Until(m.deadline)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}

// run owns all timing. It wakes at the next phase boundary, on input,
// or on cancellation.
func (m *Monitor) run(ctx context.Context) {
	timer := time.NewTimer(m.untilNextBoundary())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-m.inputs:
			m.mu.Lock()
			prev := m.phase
			m.phase = phaseActive
			m.deadline = time.Now().Add(m.cfg.Budget)
			m.mu.Unlock()

			if prev != phaseActive {
				metrics.IdleTransitions.WithLabelValues("active").Inc()
			}
			resetTimer(timer, m.untilNextBoundary())

		case <-timer.C:
			if fire := m.advance(); fire {
				logging.Info().Msg("Idle budget exhausted, returning to attract loop")
				if m.cfg.OnIdle != nil {
					m.cfg.OnIdle()
				}
			}
			if d := m.untilNextBoundary(); d > 0 {
				resetTimer(timer, d)
			}
		}
	}
}

// advance moves to the next phase when its boundary has passed.
// Returns true exactly when the idle callback should fire.
func (m *Monitor) advance() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	switch m.phase {
	case phaseActive:
		if !now.Before(m.deadline) {
			m.phase = phaseIdle
			metrics.IdleTransitions.WithLabelValues("idle").Inc()
			return true
		}
		if !now.Before(m.deadline.Add(-m.cfg.CountdownWindow)) {
			m.phase = phaseCountdown
			metrics.IdleTransitions.WithLabelValues("countdown").Inc()
		}
	case phaseCountdown:
		if !now.Before(m.deadline) {
			m.phase = phaseIdle
			metrics.IdleTransitions.WithLabelValues("idle").Inc()
			return true
		}
	case phaseIdle:
		// Stay idle until input starts a new episode.
	}
	return false
}

// untilNextBoundary returns how long to sleep before the phase can
// change. Zero means there is no pending boundary.
func (m *Monitor) untilNextBoundary() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	switch m.phase {
	case phaseActive:
		countdownAt := m.deadline.Add(-m.cfg.CountdownWindow)
		if d := countdownAt.Sub(now); d > 0 {
			return d
		}
		return time.Millisecond
	case phaseCountdown:
		if d := m.deadline.Sub(now); d > 0 {
			return d
		}
		return time.Millisecond
	default:
		return 0
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
