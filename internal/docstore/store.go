// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package docstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/models"
)

// File names for each kiosk document within the data directory.
const (
	ConfigFile      = "kiosk-config.json"
	SlidesFile      = "kiosk-slides.json"
	ServicesFile    = "kiosk-services.json"
	RunningTextFile = "kiosk-running-text.json"
	AnalyticsFile   = "kiosk-analytics.json"
)

// Store reads and writes kiosk documents in a single directory.
// All methods are safe for concurrent use.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("docstore: data directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("docstore: create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory this store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// Config returns the kiosk configuration document, writing and
// returning the default when no usable file exists yet.
func (s *Store) Config() (*models.KioskConfig, error) {
	doc, err := loadOrSeed(s, ConfigFile, models.DefaultKioskConfig)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveConfig persists the kiosk configuration document.
func (s *Store) SaveConfig(doc *models.KioskConfig) error {
	return s.save(ConfigFile, doc)
}

// Slides returns the slideshow document, seeding the default on first read.
func (s *Store) Slides() (*models.SlidesDocument, error) {
	doc, err := loadOrSeed(s, SlidesFile, models.DefaultSlidesDocument)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveSlides persists the slideshow document.
func (s *Store) SaveSlides(doc *models.SlidesDocument) error {
	return s.save(SlidesFile, doc)
}

// Services returns the service directory document, seeding the default
// on first read.
func (s *Store) Services() (*models.ServicesDocument, error) {
	doc, err := loadOrSeed(s, ServicesFile, models.DefaultServicesDocument)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveServices persists the service directory document.
func (s *Store) SaveServices(doc *models.ServicesDocument) error {
	return s.save(ServicesFile, doc)
}

// RunningText returns the ticker message document, seeding the default
// on first read.
func (s *Store) RunningText() (*models.RunningTextDocument, error) {
	doc, err := loadOrSeed(s, RunningTextFile, models.DefaultRunningTextDocument)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveRunningText persists the ticker message document.
func (s *Store) SaveRunningText(doc *models.RunningTextDocument) error {
	return s.save(RunningTextFile, doc)
}

// AppendAnalytics appends an event to the analytics log, keeping only
// the newest models.MaxAnalyticsEvents entries.
func (s *Store) AppendAnalytics(event models.AnalyticsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := models.DefaultAnalyticsLog()
	if err := s.loadLocked(AnalyticsFile, &log); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			// A corrupt log should not block tracking. Start fresh and
			// keep the new event.
			logging.Warn().Err(err).Msg("Analytics log unreadable, starting new log")
		}
		log = models.DefaultAnalyticsLog()
	}

	log.Events = append(log.Events, event)
	if len(log.Events) > models.MaxAnalyticsEvents {
		log.Events = log.Events[len(log.Events)-models.MaxAnalyticsEvents:]
	}

	return s.saveLocked(AnalyticsFile, &log)
}

// Analytics returns the persisted analytics log. A missing file yields
// an empty log.
func (s *Store) Analytics() (*models.AnalyticsLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := models.DefaultAnalyticsLog()
	if err := s.loadLocked(AnalyticsFile, &log); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return &log, nil
}

// Seed writes every default document that does not exist yet. Used by
// the server's -seed flag to prepare a data directory for editing.
func (s *Store) Seed() error {
	if _, err := s.Config(); err != nil {
		return err
	}
	if _, err := s.Slides(); err != nil {
		return err
	}
	if _, err := s.Services(); err != nil {
		return err
	}
	if _, err := s.RunningText(); err != nil {
		return err
	}
	return nil
}

// loadOrSeed reads name into a fresh default from def. A missing or
// corrupt file restores the default and writes it back so operators
// always find an editable, well-formed file. Only read failures such
// as permission errors propagate.
func loadOrSeed[T any](s *Store, name string, def func() T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := def()
	err := s.loadLocked(name, &doc)
	if err == nil {
		return doc, nil
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		logging.Info().Str("file", name).Msg("Document missing, seeding default")
	case errors.Is(err, errCorrupt):
		logging.Warn().Err(err).Str("file", name).Msg("Document corrupt, restoring default")
	default:
		return doc, err
	}

	// A failed decode may have partially filled doc.
	doc = def()
	return doc, s.saveLocked(name, &doc)
}

func (s *Store) save(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(name, v)
}

// errCorrupt marks a document that exists but does not decode.
var errCorrupt = errors.New("docstore: corrupt document")

func (s *Store) loadLocked(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w %s: %v", errCorrupt, name, err)
	}
	return nil
}

// saveLocked writes v pretty-printed via a temp file rename so a crash
// mid-write never leaves a truncated document.
func (s *Store) saveLocked(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("docstore: encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("docstore: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("docstore: rename %s: %w", name, err)
	}
	return nil
}
