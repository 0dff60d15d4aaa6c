// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package sync

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestFetchRawReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathConfig {
			t.Errorf("path = %s, want %s", r.URL.Path, PathConfig)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"theme":{"primaryColor":"#c2282a"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	body, err := client.FetchRaw(context.Background(), PathConfig)
	if err != nil {
		t.Fatalf("FetchRaw: %v", err)
	}
	if !json.Valid(body) {
		t.Errorf("body not valid JSON: %s", body)
	}
}

func TestFetchRawRejectsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.FetchRaw(context.Background(), PathSlides); !errors.Is(err, ErrServerStatus) {
		t.Fatalf("err = %v, want ErrServerStatus", err)
	}
}

func TestFetchRawRejectsInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>proxy error</html>"))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.FetchRaw(context.Background(), PathServices); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz/live" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestPostEvent(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PathTrack {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := client.PostEvent(context.Background(), "service_click", map[string]any{"serviceId": 3}, 1756600000000); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	if received["event"] != "service_click" {
		t.Errorf("event = %v", received["event"])
	}
	if ts, ok := received["timestamp"].(float64); !ok || int64(ts) != 1756600000000 {
		t.Errorf("timestamp = %v, want 1756600000000", received["timestamp"])
	}
}

func TestConnectivityWatcherBroadcastsTransitions(t *testing.T) {
	store := newTestCache(t)
	fetcher := &stubFetcher{}
	engine := NewEngine(fetcher, store)
	watcher := NewConnectivityWatcher(fetcher, engine, time.Second)

	sub := watcher.Subscribe()

	// Healthy probe: no transition, engine starts online.
	watcher.probe(context.Background())
	select {
	case v := <-sub:
		t.Fatalf("unexpected notification %v for steady state", v)
	default:
	}

	// Failing probe flips the engine offline.
	fetcher.err = errors.New("unreachable")
	watcher.probe(context.Background())
	select {
	case v := <-sub:
		if v {
			t.Error("notified online, want offline")
		}
	default:
		t.Fatal("no notification for offline transition")
	}
	if engine.Online() {
		t.Error("engine still online after failed probe")
	}

	// Recovery flips it back.
	fetcher.err = nil
	watcher.probe(context.Background())
	select {
	case v := <-sub:
		if !v {
			t.Error("notified offline, want online")
		}
	default:
		t.Fatal("no notification for online transition")
	}
}
