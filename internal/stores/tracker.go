// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package stores

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/metrics"
)

// EventPoster submits analytics events to the content server.
// Implemented by sync.Client. timestamp is unix milliseconds.
type EventPoster interface {
	PostEvent(ctx context.Context, event string, data map[string]any, timestamp int64) error
}

// trackerQueueSize bounds buffered events. Analytics are best-effort,
// a burst beyond the buffer is dropped rather than remembered.
const trackerQueueSize = 64

type trackedEvent struct {
	name string
	data map[string]any
	ts   int64
}

// Tracker submits usage events in the background. Tracking never
// blocks the display: events queue into a bounded buffer and are rate
// limited on the way out, and failures are dropped after logging.
type Tracker struct {
	poster  EventPoster
	limiter *rate.Limiter
	queue   chan trackedEvent
}

// NewTracker creates a Tracker. A kiosk produces at most a few events
// per interaction, so the limiter allows short bursts and a sustained
// two events per second.
func NewTracker(poster EventPoster) *Tracker {
	return &Tracker{
		poster:  poster,
		limiter: rate.NewLimiter(rate.Limit(2), 10),
		queue:   make(chan trackedEvent, trackerQueueSize),
	}
}

// Track enqueues an event, stamped with the current clock so delayed
// delivery keeps the moment it happened. Returns false when the queue
// is full and the event was dropped.
func (t *Tracker) Track(event string, data map[string]any) bool {
	select {
	case t.queue <- trackedEvent{name: event, data: data, ts: time.Now().UnixMilli()}:
		return true
	default:
		metrics.AnalyticsEvents.WithLabelValues("dropped").Inc()
		logging.Debug().Str("event", event).Msg("Analytics queue full, event dropped")
		return false
	}
}

// Serve drains the queue until ctx is canceled. Implements
// suture.Service.
func (t *Tracker) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-t.queue:
			if err := t.limiter.Wait(ctx); err != nil {
				return err
			}
			if err := t.poster.PostEvent(ctx, ev.name, ev.data, ev.ts); err != nil {
				metrics.AnalyticsEvents.WithLabelValues("dropped").Inc()
				logging.Debug().Err(err).Str("event", ev.name).Msg("Analytics event not delivered")
				continue
			}
			metrics.AnalyticsEvents.WithLabelValues("sent").Inc()
		}
	}
}
