// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package models

// Slide media types.
const (
	SlideTypeImage = "image"
	SlideTypeVideo = "video"
	SlideTypePDF   = "pdf"
)

// Service actions.
const (
	ActionNavigate = "navigate"
	ActionPrint    = "print"
	ActionExternal = "external"
)

// Display languages for running text.
const (
	LanguageIndonesian = "id"
	LanguageMakassar   = "makassar"
)

// Theme holds the kiosk's visual identity.
type Theme struct {
	PrimaryColor string `json:"primaryColor"`
	Logo         string `json:"logo"`
	HeaderTitle  string `json:"headerTitle"`
}

// IdleTimeoutPolicy controls the automatic return to attract mode.
// Duration is in milliseconds.
type IdleTimeoutPolicy struct {
	Enabled  bool  `json:"enabled"`
	Duration int64 `json:"duration"`
}

// KioskConfig is the singleton per-kiosk configuration document.
// It is replaced wholesale on every fetch, never merged field by field.
type KioskConfig struct {
	Theme       Theme             `json:"theme"`
	IdleTimeout IdleTimeoutPolicy `json:"idleTimeout"`
}

// SlideItem is one entry of the attract-mode slideshow.
// Duration is in milliseconds; 0 means auto-detect (a video's natural
// length). Display order is Order ascending, independent of arrival order.
type SlideItem struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	Duration int64  `json:"duration"`
	Order    int    `json:"order"`
}

// ServiceItem is one entry of the services menu.
type ServiceItem struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	TitleMakassar string `json:"titleMakassar,omitempty"`
	Icon          string `json:"icon"`
	Action        string `json:"action"`
	Route         string `json:"route"`
	Order         int    `json:"order"`
}

// RunningTextMessage is one ticker message. The displayed text is selected
// by the active language, not baked into the entity.
type RunningTextMessage struct {
	ID           int    `json:"id"`
	Text         string `json:"text"`
	TextMakassar string `json:"textMakassar,omitempty"`
	Order        int    `json:"order"`
}

// AnalyticsEvent is a single usage event reported by the display agent.
// Timestamp is client clock milliseconds.
type AnalyticsEvent struct {
	Event     string         `json:"event"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// SlidesDocument is the body of GET /api/kiosk/slides.
type SlidesDocument struct {
	Slides []SlideItem `json:"slides"`
}

// ServicesDocument is the body of GET /api/kiosk/services.
type ServicesDocument struct {
	Services []ServiceItem `json:"services"`
}

// RunningTextDocument is the body of GET /api/kiosk/running-text.
type RunningTextDocument struct {
	Messages []RunningTextMessage `json:"messages"`
}

// AnalyticsLog is the persisted analytics document. The server retains at
// most MaxAnalyticsEvents entries, oldest dropped first.
type AnalyticsLog struct {
	Events []AnalyticsEvent `json:"events"`
}

// MaxAnalyticsEvents bounds the analytics document size.
const MaxAnalyticsEvents = 1000
