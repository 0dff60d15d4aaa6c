// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package media

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/metrics"
)

// Player is the playback surface the watchdog drives. The display
// layer adapts its video element to this interface.
type Player interface {
	// Play starts or resumes playback.
	Play() error

	// Pause halts playback without losing position.
	Pause()

	// Duration returns the media duration once known, or zero.
	Duration() time.Duration
}

// Watchdog retry policy.
const (
	playAttempts = 3
	playBackoff  = 500 * time.Millisecond
)

// ErrPlaybackFailed is returned when every play attempt failed.
var ErrPlaybackFailed = errors.New("media: playback failed after retries")

// PlaybackWatchdog restarts failed video playback with bounded
// retries, pauses while the display is hidden, and reports the media
// duration once playback sticks.
type PlaybackWatchdog struct {
	player Player

	// OnDuration, when set, is called once with the media duration
	// after playback starts successfully.
	OnDuration func(time.Duration)

	mu           sync.Mutex
	visible      bool
	playing      bool
	durationSent bool
}

// NewPlaybackWatchdog creates a watchdog over player. The display
// starts visible.
func NewPlaybackWatchdog(player Player) *PlaybackWatchdog {
	return &PlaybackWatchdog{player: player, visible: true}
}

// Start attempts playback, retrying with backoff. It returns
// ErrPlaybackFailed wrapped around the last error when every attempt
// fails; the presentation layer then advances past the broken slide.
func (w *PlaybackWatchdog) Start(ctx context.Context) error {
	var lastErr error

	for attempt := 1; attempt <= playAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		w.mu.Lock()
		hidden := !w.visible
		w.mu.Unlock()
		if hidden {
			// Resume will restart playback when the display returns.
			return nil
		}

		err := w.player.Play()
		if err == nil {
			metrics.VideoPlayAttempts.WithLabelValues("ok").Inc()
			w.markPlaying()
			return nil
		}

		lastErr = err
		metrics.VideoPlayAttempts.WithLabelValues("retry").Inc()
		logging.Warn().Err(err).Int("attempt", attempt).Msg("Video playback failed")

		if attempt < playAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(playBackoff):
			}
		}
	}

	metrics.VideoPlayAttempts.WithLabelValues("exhausted").Inc()
	return fmt.Errorf("%w: %w", ErrPlaybackFailed, lastErr)
}

// SetVisible reports display visibility. Hiding pauses playback;
// showing again resumes it.
func (w *PlaybackWatchdog) SetVisible(ctx context.Context, visible bool) error {
	w.mu.Lock()
	if w.visible == visible {
		w.mu.Unlock()
		return nil
	}
	w.visible = visible
	wasPlaying := w.playing
	w.mu.Unlock()

	if !visible {
		if wasPlaying {
			w.player.Pause()
			w.mu.Lock()
			w.playing = false
			w.mu.Unlock()
			logging.Debug().Msg("Display hidden, playback paused")
		}
		return nil
	}

	logging.Debug().Msg("Display visible, resuming playback")
	return w.Start(ctx)
}

// HandlePause reports that playback paused. A pause at natural
// end-of-stream is expected; any other pause is treated as a fault and
// playback is re-issued while the display is visible.
func (w *PlaybackWatchdog) HandlePause(ctx context.Context, endOfStream bool) error {
	w.mu.Lock()
	w.playing = false
	visible := w.visible
	w.mu.Unlock()

	if endOfStream || !visible {
		return nil
	}

	logging.Warn().Msg("Unexpected playback pause, restarting")
	return w.Start(ctx)
}

// Playing reports whether playback is currently believed active.
func (w *PlaybackWatchdog) Playing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.playing
}

func (w *PlaybackWatchdog) markPlaying() {
	w.mu.Lock()
	w.playing = true
	pending := !w.durationSent
	w.mu.Unlock()

	if !pending || w.OnDuration == nil {
		return
	}

	// A zero duration means metadata has not loaded yet; keep asking on
	// later play events until the player knows its length.
	d := w.player.Duration()
	if d <= 0 {
		return
	}

	w.mu.Lock()
	send := !w.durationSent
	w.durationSent = true
	w.mu.Unlock()

	if send {
		w.OnDuration(d)
	}
}
