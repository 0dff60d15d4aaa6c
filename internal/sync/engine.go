// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package sync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"

	"github.com/sigma-desa/kiosk/internal/cache"
	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/metrics"
)

// Fetcher retrieves raw documents from the content server. Implemented
// by Client and CircuitBreakerClient.
type Fetcher interface {
	FetchRaw(ctx context.Context, path string) (json.RawMessage, error)
	Ping(ctx context.Context) error
}

// Outcome classifies how a sync produced its result.
type Outcome string

const (
	// OutcomeFresh means the document came from the network and the
	// cache was updated.
	OutcomeFresh Outcome = "fresh"

	// OutcomeCache means the network failed (or the agent is offline)
	// and the document came from the cache.
	OutcomeCache Outcome = "cache"

	// OutcomeFailed means neither the network nor the cache could
	// produce the document.
	OutcomeFailed Outcome = "failed"
)

// Document pairs a cache key with its server path.
type Document struct {
	Key  string
	Path string
}

// The documents the display agent keeps in sync.
var (
	DocConfig      = Document{Key: "config", Path: PathConfig}
	DocSlides      = Document{Key: "slides", Path: PathSlides}
	DocServices    = Document{Key: "services", Path: PathServices}
	DocRunningText = Document{Key: "running-text", Path: PathRunningText}

	// Documents lists every synced document in sync order.
	Documents = []Document{DocConfig, DocSlides, DocServices, DocRunningText}
)

// ErrUnavailable is returned when a document can be produced neither
// from the network nor from the cache.
var ErrUnavailable = errors.New("sync: document unavailable")

// Engine implements network-first document sync with cache fallback.
type Engine struct {
	fetcher Fetcher
	cache   *cache.Store
	online  atomic.Bool
}

// NewEngine creates an Engine. The agent starts in the online state;
// the connectivity watcher flips it as probes succeed or fail.
func NewEngine(fetcher Fetcher, store *cache.Store) *Engine {
	e := &Engine{fetcher: fetcher, cache: store}
	e.online.Store(true)
	return e
}

// SetOnline records whether the content server is believed reachable.
// While offline, syncs skip the network and serve from cache directly.
func (e *Engine) SetOnline(online bool) {
	if e.online.Swap(online) != online {
		logging.Info().Bool("online", online).Msg("Connectivity state changed")
	}
}

// Online reports the current connectivity belief.
func (e *Engine) Online() bool {
	return e.online.Load()
}

// SyncRaw fetches doc network-first and falls back to the cache. The
// returned entry carries the document body and its fetch time. A fresh
// fetch that cannot be cached is still returned fresh; the cache write
// failure is logged, not fatal.
//
// The offline flag gates every sync, not only the auto-sync ticks:
// while offline, SyncRaw serves the cache without a network attempt.
// The connectivity watcher's probe is the path back online, so a
// manual refresh can trail a recovered network by up to one probe
// interval.
func (e *Engine) SyncRaw(ctx context.Context, doc Document) (cache.Entry, Outcome, error) {
	start := time.Now()
	entry, outcome, err := e.syncRaw(ctx, doc)
	metrics.RecordSyncOutcome(doc.Key, string(outcome), time.Since(start))

	switch outcome {
	case OutcomeFresh:
		logging.Debug().Str("document", doc.Key).Msg("Document synced from server")
	case OutcomeCache:
		logging.Warn().Str("document", doc.Key).
			Dur("age", entry.Age(time.Now())).
			Msg("Serving cached document, server unavailable")
	case OutcomeFailed:
		logging.Error().Err(err).Str("document", doc.Key).Msg("Document unavailable")
	}

	return entry, outcome, err
}

func (e *Engine) syncRaw(ctx context.Context, doc Document) (cache.Entry, Outcome, error) {
	var netErr error

	if e.Online() {
		body, err := e.fetcher.FetchRaw(ctx, doc.Path)
		if err == nil {
			if cerr := e.cache.Set(doc.Key, body); cerr != nil {
				logging.Warn().Err(cerr).Str("document", doc.Key).Msg("Failed to cache document")
			}
			return cache.Entry{Data: body, Timestamp: time.Now().UnixMilli()}, OutcomeFresh, nil
		}
		netErr = err
	} else {
		netErr = fmt.Errorf("%w: agent is offline", ErrUnavailable)
	}

	entry, cerr := e.cache.Get(doc.Key)
	if cerr == nil {
		return entry, OutcomeCache, nil
	}

	return cache.Entry{}, OutcomeFailed, fmt.Errorf("%w: %s", ErrUnavailable, errors.Join(netErr, cerr))
}

// SyncDocument syncs doc and decodes the resulting body into T.
func SyncDocument[T any](ctx context.Context, e *Engine, doc Document) (*T, Outcome, error) {
	entry, outcome, err := e.SyncRaw(ctx, doc)
	if err != nil {
		return nil, outcome, err
	}

	var decoded T
	if err := json.Unmarshal(entry.Data, &decoded); err != nil {
		return nil, OutcomeFailed, fmt.Errorf("sync: decode %s: %w", doc.Key, err)
	}
	return &decoded, outcome, nil
}

// SyncAll syncs every kiosk document. Individual failures do not stop
// the remaining documents; the joined error is returned at the end.
func (e *Engine) SyncAll(ctx context.Context) error {
	var errs []error
	for _, doc := range Documents {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, _, err := e.SyncRaw(ctx, doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
