// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package models

// Default documents returned (and persisted) by the server when a document
// is absent from the store, and used by the display agent as initial state
// before the first successful sync.

// DefaultKioskConfig returns the fallback kiosk configuration.
func DefaultKioskConfig() KioskConfig {
	return KioskConfig{
		Theme: Theme{
			PrimaryColor: "#c2282a",
			Logo:         "/logo.png",
			HeaderTitle:  "SIGMA - Sistem Informasi Desa",
		},
		IdleTimeout: IdleTimeoutPolicy{
			Enabled:  true,
			Duration: 15000,
		},
	}
}

// DefaultSlidesDocument returns the fallback slideshow.
func DefaultSlidesDocument() SlidesDocument {
	return SlidesDocument{
		Slides: []SlideItem{
			{
				ID:       1,
				Type:     SlideTypeImage,
				URL:      "/images/slides/welcome.jpg",
				Duration: 10000,
				Order:    1,
			},
		},
	}
}

// DefaultServicesDocument returns the fallback services menu.
func DefaultServicesDocument() ServicesDocument {
	return ServicesDocument{
		Services: []ServiceItem{
			{
				ID:            1,
				Title:         "Informasi Desa",
				TitleMakassar: "Panrita Kampong",
				Icon:          "mdi-information",
				Action:        ActionNavigate,
				Route:         "/info",
				Order:         1,
			},
		},
	}
}

// DefaultRunningTextDocument returns the fallback ticker messages.
func DefaultRunningTextDocument() RunningTextDocument {
	return RunningTextDocument{
		Messages: []RunningTextMessage{
			{
				ID:           1,
				Text:         "Selamat datang di SIGMA Frontliner Kiosk",
				TextMakassar: "Marampungak ri SIGMA Frontliner Kiosk",
				Order:        1,
			},
		},
	}
}

// DefaultAnalyticsLog returns an empty analytics document.
func DefaultAnalyticsLog() AnalyticsLog {
	return AnalyticsLog{Events: []AnalyticsEvent{}}
}
