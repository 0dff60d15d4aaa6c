// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package docstore

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/sigma-desa/kiosk/internal/models"
)

func TestNewRejectsEmptyDir(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty data directory")
	}
}

func TestConfigSeedsDefaultOnFirstRead(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc, err := store.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}

	want := models.DefaultKioskConfig()
	if doc.Theme.PrimaryColor != want.Theme.PrimaryColor {
		t.Errorf("primary color = %q, want %q", doc.Theme.PrimaryColor, want.Theme.PrimaryColor)
	}

	// The default must now exist on disk for operators to edit.
	if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err != nil {
		t.Errorf("seeded file missing: %v", err)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc := models.DefaultSlidesDocument()
	doc.Slides = append(doc.Slides, models.SlideItem{
		ID:       2,
		Type:     models.SlideTypeVideo,
		URL:      "/media/profile.mp4",
		Title:    "Profil Desa",
		Duration: 30000,
		Order:    2,
	})
	if err := store.SaveSlides(&doc); err != nil {
		t.Fatalf("SaveSlides: %v", err)
	}

	loaded, err := store.Slides()
	if err != nil {
		t.Fatalf("Slides: %v", err)
	}
	if len(loaded.Slides) != len(doc.Slides) {
		t.Fatalf("loaded %d slides, want %d", len(loaded.Slides), len(doc.Slides))
	}
	if loaded.Slides[1].ID != 2 {
		t.Errorf("slide ID = %d, want 2", loaded.Slides[1].ID)
	}
}

func TestCorruptDocumentRestoresDefault(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt document: %v", err)
	}

	doc, err := store.Config()
	if err != nil {
		t.Fatalf("Config on corrupt file: %v", err)
	}

	want := models.DefaultKioskConfig()
	if doc.Theme.PrimaryColor != want.Theme.PrimaryColor {
		t.Errorf("primary color = %q, want default %q", doc.Theme.PrimaryColor, want.Theme.PrimaryColor)
	}

	// The corrupt file is rewritten with the default.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read restored file: %v", err)
	}
	var restored models.KioskConfig
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("restored file still corrupt: %v", err)
	}
	if restored.Theme.PrimaryColor != want.Theme.PrimaryColor {
		t.Errorf("restored color = %q, want %q", restored.Theme.PrimaryColor, want.Theme.PrimaryColor)
	}
}

func TestSeededDefaultSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, err := store.Services()
	if err != nil {
		t.Fatalf("Services: %v", err)
	}

	reopened, err := New(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	second, err := reopened.Services()
	if err != nil {
		t.Fatalf("Services after reopen: %v", err)
	}

	if len(first.Services) != len(second.Services) {
		t.Errorf("service count changed across reopen: %d vs %d",
			len(first.Services), len(second.Services))
	}
}

func TestAppendAnalyticsCapsLog(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	total := models.MaxAnalyticsEvents + 25
	for i := 0; i < total; i++ {
		event := models.AnalyticsEvent{
			Event:     fmt.Sprintf("event-%d", i),
			Timestamp: int64(i),
		}
		if err := store.AppendAnalytics(event); err != nil {
			t.Fatalf("AppendAnalytics(%d): %v", i, err)
		}
	}

	log, err := store.Analytics()
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if len(log.Events) != models.MaxAnalyticsEvents {
		t.Fatalf("log holds %d events, want %d", len(log.Events), models.MaxAnalyticsEvents)
	}

	// Oldest events are dropped, newest kept.
	if got := log.Events[len(log.Events)-1].Event; got != fmt.Sprintf("event-%d", total-1) {
		t.Errorf("newest event = %q, want event-%d", got, total-1)
	}
	if got := log.Events[0].Event; got != "event-25" {
		t.Errorf("oldest kept event = %q, want event-25", got)
	}
}

func TestAppendAnalyticsRecoversFromCorruptLog(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, AnalyticsFile), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt log: %v", err)
	}

	if err := store.AppendAnalytics(models.AnalyticsEvent{Event: "after-corruption"}); err != nil {
		t.Fatalf("AppendAnalytics: %v", err)
	}

	log, err := store.Analytics()
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if len(log.Events) != 1 || log.Events[0].Event != "after-corruption" {
		t.Errorf("log = %+v, want single after-corruption event", log.Events)
	}
}

func TestSeedWritesAllDocuments(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := store.Seed(); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	for _, name := range []string{ConfigFile, SlidesFile, ServicesFile, RunningTextFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}
