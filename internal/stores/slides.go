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

// SlidesStore holds the attract-loop slideshow and the position within
// it. Slides are kept sorted by their order field; equal orders keep
// their server-provided relative order.
type SlidesStore struct {
	state
	engine *sync.Engine

	docMu        stdsync.RWMutex
	slides       []models.SlideItem
	currentIndex int
}

// NewSlidesStore creates a SlidesStore refreshing through engine.
func NewSlidesStore(engine *sync.Engine) *SlidesStore {
	return &SlidesStore{engine: engine}
}

// Fetch refreshes the slideshow. On failure the previous slides and
// position are kept and the error is both recorded and returned. After
// a successful refresh the current index is clamped so a shrinking
// slideshow never leaves the position out of range.
func (s *SlidesStore) Fetch(ctx context.Context) error {
	s.beginFetch()

	doc, _, err := sync.SyncDocument[models.SlidesDocument](ctx, s.engine, sync.DocSlides)
	if err != nil {
		s.endFetch(err, false)
		return err
	}

	slides := make([]models.SlideItem, len(doc.Slides))
	copy(slides, doc.Slides)
	sort.SliceStable(slides, func(i, j int) bool {
		return slides[i].Order < slides[j].Order
	})

	s.docMu.Lock()
	s.slides = slides
	if s.currentIndex >= len(slides) {
		s.currentIndex = 0
	}
	s.docMu.Unlock()

	s.endFetch(nil, true)
	return nil
}

// Slides returns the ordered slideshow.
func (s *SlidesStore) Slides() []models.SlideItem {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	out := make([]models.SlideItem, len(s.slides))
	copy(out, s.slides)
	return out
}

// Count returns the number of slides.
func (s *SlidesStore) Count() int {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	return len(s.slides)
}

// HasSlides reports whether the slideshow is non-empty.
func (s *SlidesStore) HasSlides() bool {
	return s.Count() > 0
}

// CurrentIndex returns the position within the slideshow.
func (s *SlidesStore) CurrentIndex() int {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	return s.currentIndex
}

// CurrentSlide returns the slide at the current position, or false
// when the slideshow is empty.
func (s *SlidesStore) CurrentSlide() (models.SlideItem, bool) {
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	if len(s.slides) == 0 {
		return models.SlideItem{}, false
	}
	return s.slides[s.currentIndex], true
}

// Next advances to the next slide, wrapping at the end.
func (s *SlidesStore) Next() {
	s.docMu.Lock()
	if n := len(s.slides); n > 0 {
		s.currentIndex = (s.currentIndex + 1) % n
	}
	s.docMu.Unlock()
	s.notify()
}

// Previous steps back one slide, wrapping at the start.
func (s *SlidesStore) Previous() {
	s.docMu.Lock()
	if n := len(s.slides); n > 0 {
		s.currentIndex = (s.currentIndex - 1 + n) % n
	}
	s.docMu.Unlock()
	s.notify()
}

// GoToSlide jumps to index i. Out-of-range indexes are ignored.
func (s *SlidesStore) GoToSlide(i int) {
	s.docMu.Lock()
	if i >= 0 && i < len(s.slides) {
		s.currentIndex = i
	}
	s.docMu.Unlock()
	s.notify()
}

// Reset discards slides, position and bookkeeping.
func (s *SlidesStore) Reset() {
	s.docMu.Lock()
	s.slides = nil
	s.currentIndex = 0
	s.docMu.Unlock()
	s.reset()
}
