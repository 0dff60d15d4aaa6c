// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/sigma-desa/kiosk/internal/cache"
	"github.com/sigma-desa/kiosk/internal/models"
	"github.com/sigma-desa/kiosk/internal/sync"
)

// stubFetcher serves canned responses per path, optionally failing.
type stubFetcher struct {
	responses map[string]json.RawMessage
	err       error
}

func (f *stubFetcher) FetchRaw(_ context.Context, path string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.responses[path]
	if !ok {
		return nil, errors.New("no canned response")
	}
	return body, nil
}

func (f *stubFetcher) Ping(context.Context) error {
	return f.err
}

func newTestEngine(t *testing.T, fetcher *stubFetcher) *sync.Engine {
	t.Helper()
	store, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return sync.NewEngine(fetcher, store)
}

// observingFetcher runs a hook before delegating, so tests can observe
// store state while a fetch is in flight.
type observingFetcher struct {
	inner   *stubFetcher
	observe func()
}

func (f *observingFetcher) FetchRaw(ctx context.Context, path string) (json.RawMessage, error) {
	if f.observe != nil {
		f.observe()
	}
	return f.inner.FetchRaw(ctx, path)
}

func (f *observingFetcher) Ping(ctx context.Context) error {
	return f.inner.Ping(ctx)
}

func TestFetchClearsPreviousError(t *testing.T) {
	fetcher := &observingFetcher{inner: &stubFetcher{err: errors.New("down")}}
	cacheStore, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() { _ = cacheStore.Close() })
	store := NewSlidesStore(sync.NewEngine(fetcher, cacheStore))

	if err := store.Fetch(context.Background()); err == nil {
		t.Fatal("first fetch should fail")
	}
	if store.Err() == nil {
		t.Fatal("failure not recorded")
	}

	// The stale error must be gone for the whole in-flight window, not
	// only after the fetch resolves.
	observed := errors.New("not observed")
	midFlight := observed
	fetcher.observe = func() { midFlight = store.Err() }
	fetcher.inner = &stubFetcher{responses: map[string]json.RawMessage{
		sync.PathSlides: json.RawMessage(`{"slides":[]}`),
	}}

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if errors.Is(midFlight, observed) {
		t.Fatal("fetch never reached the network")
	}
	if midFlight != nil {
		t.Errorf("in-flight Err() = %v, want nil", midFlight)
	}
}

func TestConfigStoreFallsBackToDefault(t *testing.T) {
	store := NewConfigStore(newTestEngine(t, &stubFetcher{err: errors.New("down")}))

	cfg := store.Config()
	want := models.DefaultKioskConfig()
	if cfg.Theme.PrimaryColor != want.Theme.PrimaryColor {
		t.Errorf("unfetched config theme = %q, want default", cfg.Theme.PrimaryColor)
	}
	if got := store.IdleTimeout(); got != fallbackIdleTimeout {
		t.Errorf("unfetched idle timeout = %v, want %v", got, fallbackIdleTimeout)
	}
}

func TestConfigStoreFetchAppliesDocument(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]json.RawMessage{
		sync.PathConfig: json.RawMessage(`{
			"theme": {"primaryColor": "#00ff00", "headerTitle": "Desa Test"},
			"idleTimeout": {"enabled": true, "duration": 30000}
		}`),
	}}
	store := NewConfigStore(newTestEngine(t, fetcher))

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if got := store.Theme().HeaderTitle; got != "Desa Test" {
		t.Errorf("header title = %q", got)
	}
	if got := store.IdleTimeout(); got != 30*time.Second {
		t.Errorf("idle timeout = %v, want 30s", got)
	}
	if store.Err() != nil {
		t.Errorf("Err = %v after success", store.Err())
	}
	if store.LastFetch().IsZero() {
		t.Error("LastFetch not set after success")
	}
}

func TestConfigStoreErrorPreservesData(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]json.RawMessage{
		sync.PathConfig: json.RawMessage(`{"theme":{"headerTitle":"Keep Me"}}`),
	}}
	engine := newTestEngine(t, fetcher)
	store := NewConfigStore(engine)

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("first Fetch: %v", err)
	}

	// Take the network away. The cache still holds the first fetch, so
	// the refresh serves stale data rather than failing.
	fetcher.err = errors.New("down")
	engine.SetOnline(false)

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("stale Fetch: %v", err)
	}
	if got := store.Config().Theme.HeaderTitle; got != "Keep Me" {
		t.Errorf("title after stale fetch = %q", got)
	}
}

func TestConfigStoreFetchFailureRecordsAndReturnsError(t *testing.T) {
	store := NewConfigStore(newTestEngine(t, &stubFetcher{err: errors.New("down")}))

	err := store.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error with no network and no cache")
	}
	if store.Err() == nil {
		t.Error("store did not record the error")
	}
	if !store.LastFetch().IsZero() {
		t.Error("LastFetch set despite failure")
	}
}

func TestSlidesStoreSortsAndNavigates(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]json.RawMessage{
		sync.PathSlides: json.RawMessage(`{"slides":[
			{"id":3,"type":"image","url":"/c.jpg","order":3},
			{"id":1,"type":"image","url":"/a.jpg","order":1},
			{"id":2,"type":"video","url":"/b.mp4","order":2}
		]}`),
	}}
	store := NewSlidesStore(newTestEngine(t, fetcher))

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	slides := store.Slides()
	for i, want := range []int{1, 2, 3} {
		if slides[i].ID != want {
			t.Errorf("slides[%d] = %d, want %d", i, slides[i].ID, want)
		}
	}

	// Forward wrap.
	store.Next()
	store.Next()
	store.Next()
	if got := store.CurrentIndex(); got != 0 {
		t.Errorf("index after full loop = %d, want 0", got)
	}

	// Backward wrap.
	store.Previous()
	if got := store.CurrentIndex(); got != 2 {
		t.Errorf("index after Previous from 0 = %d, want 2", got)
	}

	store.GoToSlide(1)
	if slide, ok := store.CurrentSlide(); !ok || slide.ID != 2 {
		t.Errorf("CurrentSlide = %+v, %v", slide, ok)
	}

	// Out-of-range jumps are ignored.
	store.GoToSlide(99)
	if got := store.CurrentIndex(); got != 1 {
		t.Errorf("index after invalid jump = %d, want 1", got)
	}
}

func TestSlidesStoreClampsIndexOnShrink(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]json.RawMessage{
		sync.PathSlides: json.RawMessage(`{"slides":[
			{"id":1,"order":1},{"id":2,"order":2},{"id":3,"order":3}
		]}`),
	}}
	store := NewSlidesStore(newTestEngine(t, fetcher))

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	store.GoToSlide(2)

	fetcher.responses[sync.PathSlides] = json.RawMessage(`{"slides":[{"id":1,"order":1}]}`)
	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("refetch: %v", err)
	}

	if got := store.CurrentIndex(); got != 0 {
		t.Errorf("index after shrink = %d, want 0", got)
	}
}

func TestSlidesStoreEmptySlideshow(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]json.RawMessage{
		sync.PathSlides: json.RawMessage(`{"slides":[]}`),
	}}
	store := NewSlidesStore(newTestEngine(t, fetcher))

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if _, ok := store.CurrentSlide(); ok {
		t.Error("CurrentSlide reported a slide for an empty slideshow")
	}
	store.Next() // must not panic
	store.Previous()
	if got := store.CurrentIndex(); got != 0 {
		t.Errorf("index = %d, want 0", got)
	}
}

func TestServicesStoreLookups(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]json.RawMessage{
		sync.PathServices: json.RawMessage(`{"services":[
			{"id":2,"title":"Cetak Surat","action":"print","order":2},
			{"id":1,"title":"Informasi Desa","action":"navigate","route":"/info","order":1},
			{"id":3,"title":"Situs Desa","action":"external","order":3}
		]}`),
	}}
	store := NewServicesStore(newTestEngine(t, fetcher))

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	services := store.Services()
	if services[0].ID != 1 {
		t.Errorf("first service = %d, want 1", services[0].ID)
	}

	svc, ok := store.ServiceByID(2)
	if !ok || svc.Title != "Cetak Surat" {
		t.Errorf("ServiceByID(2) = %+v, %v", svc, ok)
	}
	if _, ok := store.ServiceByID(999); ok {
		t.Error("ServiceByID(999) reported a match")
	}

	navs := store.ServicesByAction(models.ActionNavigate)
	if len(navs) != 1 || navs[0].ID != 1 {
		t.Errorf("ServicesByAction(navigate) = %+v", navs)
	}
}

func TestRunningTextLanguageFallback(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]json.RawMessage{
		sync.PathRunningText: json.RawMessage(`{"messages":[
			{"id":2,"text":"Kedua","order":2},
			{"id":1,"text":"Pertama","textMakassar":"Uru-uru","order":1}
		]}`),
	}}
	store := NewRunningTextStore(newTestEngine(t, fetcher), models.LanguageIndonesian)

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	id := store.DisplayTexts()
	if len(id) != 2 || id[0] != "Pertama" {
		t.Errorf("indonesian texts = %v", id)
	}

	// Makassar falls back to Indonesian where no translation exists.
	store.SetLanguage(models.LanguageMakassar)
	mks := store.DisplayTexts()
	if mks[0] != "Uru-uru" || mks[1] != "Kedua" {
		t.Errorf("makassar texts = %v", mks)
	}
}

func TestRunningTextLanguageSelection(t *testing.T) {
	store := NewRunningTextStore(newTestEngine(t, &stubFetcher{}), models.LanguageIndonesian)

	if got := store.Language(); got != models.LanguageIndonesian {
		t.Fatalf("initial language = %q", got)
	}

	store.ToggleLanguage()
	if got := store.Language(); got != models.LanguageMakassar {
		t.Errorf("after toggle = %q, want makassar", got)
	}
	store.ToggleLanguage()
	if got := store.Language(); got != models.LanguageIndonesian {
		t.Errorf("after second toggle = %q, want id", got)
	}

	// Unknown values are ignored.
	store.SetLanguage("en")
	if got := store.Language(); got != models.LanguageIndonesian {
		t.Errorf("after invalid SetLanguage = %q", got)
	}

	// Reset restores the startup language.
	store.SetLanguage(models.LanguageMakassar)
	store.Reset()
	if got := store.Language(); got != models.LanguageIndonesian {
		t.Errorf("after Reset = %q, want startup language", got)
	}
}

func TestSubscribeReceivesNotifications(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]json.RawMessage{
		sync.PathServices: json.RawMessage(`{"services":[]}`),
	}}
	store := NewServicesStore(newTestEngine(t, fetcher))

	sub := store.Subscribe()
	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	select {
	case <-sub:
	default:
		t.Error("no notification after Fetch")
	}
}

func TestResetClearsState(t *testing.T) {
	fetcher := &stubFetcher{responses: map[string]json.RawMessage{
		sync.PathSlides: json.RawMessage(`{"slides":[{"id":1,"order":1}]}`),
	}}
	store := NewSlidesStore(newTestEngine(t, fetcher))

	if err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	store.Reset()

	if len(store.Slides()) != 0 {
		t.Error("slides survive Reset")
	}
	if !store.LastFetch().IsZero() {
		t.Error("LastFetch survives Reset")
	}
}
