// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package media

import (
	"errors"
	"fmt"

	"github.com/sigma-desa/kiosk/internal/logging"
)

// Viewport opens documents on the kiosk display. The display layer
// adapts its window manager or browser shell to this interface.
type Viewport interface {
	// OpenPrintDialog opens url in a print view. Returns an error when
	// the shell refused to open it, e.g. a popup blocker.
	OpenPrintDialog(url string) error

	// PrintCurrentView prints whatever the display currently shows.
	PrintCurrentView() error
}

// ErrPrintBlocked is returned when the display shell refused to open
// the print view, so the UI can tell the visitor to ask staff for help.
var ErrPrintBlocked = errors.New("media: print view blocked")

// PrintTrigger requests document printing from kiosk services, such as
// printing a completed administrative form.
type PrintTrigger struct {
	viewport Viewport
}

// NewPrintTrigger creates a PrintTrigger over viewport.
func NewPrintTrigger(viewport Viewport) *PrintTrigger {
	return &PrintTrigger{viewport: viewport}
}

// Print opens url in the print view. An empty url prints the current
// view instead.
func (p *PrintTrigger) Print(url string) error {
	if url == "" {
		if err := p.viewport.PrintCurrentView(); err != nil {
			logging.Warn().Err(err).Msg("Print of current view refused")
			return fmt.Errorf("%w: %w", ErrPrintBlocked, err)
		}
		logging.Info().Msg("Printed current view")
		return nil
	}

	if err := p.viewport.OpenPrintDialog(url); err != nil {
		logging.Warn().Err(err).Str("url", url).Msg("Print view refused")
		return fmt.Errorf("%w: %w", ErrPrintBlocked, err)
	}

	logging.Info().Str("url", url).Msg("Print view opened")
	return nil
}
