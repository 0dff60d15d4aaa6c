// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package media

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakePlayer scripts play outcomes.
type fakePlayer struct {
	failures int
	plays    int
	pauses   int
	duration time.Duration
}

func (p *fakePlayer) Play() error {
	p.plays++
	if p.plays <= p.failures {
		return errors.New("decoder stall")
	}
	return nil
}

func (p *fakePlayer) Pause() {
	p.pauses++
}

func (p *fakePlayer) Duration() time.Duration {
	return p.duration
}

func TestWatchdogRetriesThenSucceeds(t *testing.T) {
	player := &fakePlayer{failures: 2, duration: 30 * time.Second}
	watchdog := NewPlaybackWatchdog(player)

	var gotDuration time.Duration
	watchdog.OnDuration = func(d time.Duration) { gotDuration = d }

	if err := watchdog.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if player.plays != 3 {
		t.Errorf("play attempts = %d, want 3", player.plays)
	}
	if !watchdog.Playing() {
		t.Error("not playing after successful start")
	}
	if gotDuration != 30*time.Second {
		t.Errorf("duration callback = %v, want 30s", gotDuration)
	}
}

func TestWatchdogExhaustsRetries(t *testing.T) {
	player := &fakePlayer{failures: playAttempts + 1}
	watchdog := NewPlaybackWatchdog(player)

	err := watchdog.Start(context.Background())
	if !errors.Is(err, ErrPlaybackFailed) {
		t.Fatalf("err = %v, want ErrPlaybackFailed", err)
	}
	if player.plays != playAttempts {
		t.Errorf("play attempts = %d, want %d", player.plays, playAttempts)
	}
}

func TestWatchdogDurationCallbackFiresOnce(t *testing.T) {
	player := &fakePlayer{duration: 10 * time.Second}
	watchdog := NewPlaybackWatchdog(player)

	calls := 0
	watchdog.OnDuration = func(time.Duration) { calls++ }

	ctx := context.Background()
	if err := watchdog.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := watchdog.SetVisible(ctx, false); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if err := watchdog.SetVisible(ctx, true); err != nil {
		t.Fatalf("show: %v", err)
	}

	if calls != 1 {
		t.Errorf("duration callback fired %d times, want 1", calls)
	}
}

func TestWatchdogVisibilityPausesAndResumes(t *testing.T) {
	player := &fakePlayer{}
	watchdog := NewPlaybackWatchdog(player)
	ctx := context.Background()

	if err := watchdog.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := watchdog.SetVisible(ctx, false); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if player.pauses != 1 {
		t.Errorf("pauses = %d, want 1", player.pauses)
	}
	if watchdog.Playing() {
		t.Error("playing while hidden")
	}

	if err := watchdog.SetVisible(ctx, true); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !watchdog.Playing() {
		t.Error("not playing after resume")
	}
}

func TestWatchdogStartWhileHiddenDefers(t *testing.T) {
	player := &fakePlayer{}
	watchdog := NewPlaybackWatchdog(player)
	ctx := context.Background()

	if err := watchdog.SetVisible(ctx, false); err != nil {
		t.Fatalf("hide: %v", err)
	}
	if err := watchdog.Start(ctx); err != nil {
		t.Fatalf("Start while hidden: %v", err)
	}
	if player.plays != 0 {
		t.Errorf("play attempted while hidden: %d", player.plays)
	}
}

// lateMetadataPlayer reports no duration until a few plays in, like a
// video element before metadata loads.
type lateMetadataPlayer struct {
	fakePlayer
	knownAfter int
}

func (p *lateMetadataPlayer) Duration() time.Duration {
	if p.plays < p.knownAfter {
		return 0
	}
	return p.fakePlayer.duration
}

func TestWatchdogReportsDurationOnceMetadataLoads(t *testing.T) {
	player := &lateMetadataPlayer{
		fakePlayer: fakePlayer{duration: 42 * time.Second},
		knownAfter: 2,
	}
	watchdog := NewPlaybackWatchdog(player)

	var durations []time.Duration
	watchdog.OnDuration = func(d time.Duration) { durations = append(durations, d) }

	ctx := context.Background()
	if err := watchdog.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(durations) != 0 {
		t.Fatalf("duration reported before metadata loaded: %v", durations)
	}

	// A fault pause triggers a replay; by then metadata is available.
	if err := watchdog.HandlePause(ctx, false); err != nil {
		t.Fatalf("HandlePause: %v", err)
	}
	if len(durations) != 1 || durations[0] != 42*time.Second {
		t.Fatalf("durations = %v, want single 42s report", durations)
	}

	// Later plays must not repeat the report.
	if err := watchdog.HandlePause(ctx, false); err != nil {
		t.Fatalf("second HandlePause: %v", err)
	}
	if len(durations) != 1 {
		t.Errorf("durations = %v, want exactly one report", durations)
	}
}

func TestWatchdogUnexpectedPauseRestarts(t *testing.T) {
	player := &fakePlayer{}
	watchdog := NewPlaybackWatchdog(player)
	ctx := context.Background()

	if err := watchdog.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := watchdog.HandlePause(ctx, false); err != nil {
		t.Fatalf("HandlePause: %v", err)
	}
	if player.plays != 2 {
		t.Errorf("plays = %d, want restart after fault pause", player.plays)
	}

	// End-of-stream is not a fault.
	if err := watchdog.HandlePause(ctx, true); err != nil {
		t.Fatalf("HandlePause at end: %v", err)
	}
	if player.plays != 2 {
		t.Errorf("plays = %d, end-of-stream must not restart", player.plays)
	}
	if watchdog.Playing() {
		t.Error("playing after end-of-stream pause")
	}
}

func TestLoadTrackerLifecycle(t *testing.T) {
	tracker := NewLoadTracker(2)
	url := "/media/slide.jpg"

	if got := tracker.State(url); got != LoadPending {
		t.Errorf("initial state = %v, want pending", got)
	}

	tracker.Begin(url)
	if got := tracker.State(url); got != LoadInProgress {
		t.Errorf("state = %v, want loading", got)
	}

	tracker.Fail(url)
	if tracker.Broken(url) {
		t.Error("broken after a single failure, want retry allowed")
	}

	tracker.Begin(url)
	tracker.Fail(url)
	if !tracker.Broken(url) {
		t.Error("not broken after exhausting attempts")
	}

	// A later success clears the failure history.
	tracker.Begin(url)
	tracker.Succeed(url)
	if tracker.Broken(url) {
		t.Error("broken after success")
	}
	if got := tracker.State(url); got != LoadSucceeded {
		t.Errorf("state = %v, want loaded", got)
	}

	tracker.Forget(url)
	if got := tracker.State(url); got != LoadPending {
		t.Errorf("state after Forget = %v, want pending", got)
	}
}

// fakeViewport scripts the print dialog outcome.
type fakeViewport struct {
	err           error
	opened        []string
	currentPrints int
}

func (v *fakeViewport) OpenPrintDialog(url string) error {
	if v.err != nil {
		return v.err
	}
	v.opened = append(v.opened, url)
	return nil
}

func (v *fakeViewport) PrintCurrentView() error {
	if v.err != nil {
		return v.err
	}
	v.currentPrints++
	return nil
}

func TestPrintTrigger(t *testing.T) {
	viewport := &fakeViewport{}
	trigger := NewPrintTrigger(viewport)

	if err := trigger.Print("/letters/domisili.pdf"); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if len(viewport.opened) != 1 || viewport.opened[0] != "/letters/domisili.pdf" {
		t.Errorf("opened = %v", viewport.opened)
	}

	// No target falls back to printing the current view.
	if err := trigger.Print(""); err != nil {
		t.Fatalf("Print current view: %v", err)
	}
	if viewport.currentPrints != 1 {
		t.Errorf("current view prints = %d, want 1", viewport.currentPrints)
	}
}

func TestPrintTriggerBlocked(t *testing.T) {
	trigger := NewPrintTrigger(&fakeViewport{err: errors.New("popup blocked")})

	err := trigger.Print("/letters/usaha.pdf")
	if !errors.Is(err, ErrPrintBlocked) {
		t.Fatalf("err = %v, want ErrPrintBlocked", err)
	}
}

func TestPerformanceMonitorSamples(t *testing.T) {
	monitor, err := NewPerformanceMonitor(time.Second, 1)
	if err != nil {
		t.Fatalf("NewPerformanceMonitor: %v", err)
	}

	// One direct sample must not panic and should read this process.
	monitor.sample(context.Background())
}
