// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package stores

import (
	"context"
	"sort"
	stdsync "sync"

	"github.com/sigma-desa/kiosk/internal/models"
	"github.com/sigma-desa/kiosk/internal/sync"
)

// RunningTextStore holds the ticker messages scrolling along the
// bottom of the kiosk display, and the language they are shown in.
type RunningTextStore struct {
	state
	engine *sync.Engine

	docMu       stdsync.RWMutex
	messages    []models.RunningTextMessage
	language    string
	initialLang string
}

// NewRunningTextStore creates a RunningTextStore refreshing through
// engine. language is the startup display language; anything other
// than makassar means Indonesian.
func NewRunningTextStore(engine *sync.Engine, language string) *RunningTextStore {
	if language != models.LanguageMakassar {
		language = models.LanguageIndonesian
	}
	return &RunningTextStore{
		engine:      engine,
		language:    language,
		initialLang: language,
	}
}

// Fetch refreshes the ticker messages. On failure the previous
// messages are kept and the error is both recorded and returned.
func (s *RunningTextStore) Fetch(ctx context.Context) error {
	s.beginFetch()

	doc, _, err := sync.SyncDocument[models.RunningTextDocument](ctx, s.engine, sync.DocRunningText)
	if err != nil {
		s.endFetch(err, false)
		return err
	}

	messages := make([]models.RunningTextMessage, len(doc.Messages))
	copy(messages, doc.Messages)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Order < messages[j].Order
	})

	s.docMu.Lock()
	s.messages = messages
	s.docMu.Unlock()

	s.endFetch(nil, true)
	return nil
}

// Messages returns the ordered ticker messages.
func (s *RunningTextStore) Messages() []models.RunningTextMessage {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	out := make([]models.RunningTextMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Language returns the current display language.
func (s *RunningTextStore) Language() string {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	return s.language
}

// SetLanguage switches the display language. Unknown values are
// ignored. Fetches never touch the selection.
func (s *RunningTextStore) SetLanguage(language string) {
	if language != models.LanguageIndonesian && language != models.LanguageMakassar {
		return
	}
	s.docMu.Lock()
	changed := s.language != language
	s.language = language
	s.docMu.Unlock()
	if changed {
		s.notify()
	}
}

// ToggleLanguage flips between Indonesian and Makassar.
func (s *RunningTextStore) ToggleLanguage() {
	s.docMu.Lock()
	if s.language == models.LanguageMakassar {
		s.language = models.LanguageIndonesian
	} else {
		s.language = models.LanguageMakassar
	}
	s.docMu.Unlock()
	s.notify()
}

// DisplayTexts returns the message texts in the current language.
// Messages without a translation fall back to Indonesian, which every
// message carries.
func (s *RunningTextStore) DisplayTexts() []string {
	s.docMu.RLock()
	defer s.docMu.RUnlock()

	texts := make([]string, 0, len(s.messages))
	for _, m := range s.messages {
		text := m.Text
		if s.language == models.LanguageMakassar && m.TextMakassar != "" {
			text = m.TextMakassar
		}
		texts = append(texts, text)
	}
	return texts
}

// Reset discards the messages and bookkeeping and restores the
// startup language.
func (s *RunningTextStore) Reset() {
	s.docMu.Lock()
	s.messages = nil
	s.language = s.initialLang
	s.docMu.Unlock()
	s.reset()
}
