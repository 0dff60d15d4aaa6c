// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

// Package models defines the kiosk's domain types: the configuration
// document, slideshow items, the services menu, running-text messages
// and analytics events.
//
// These types are the wire contract between the content server and
// the display agent; field names follow the JSON documents the server
// persists. Each document type has a Default constructor supplying the
// stock content a fresh kiosk shows before an operator has edited
// anything. Request validation lives with the api handlers, not here.
//
// Item IDs are plain integers assigned by the operator tooling; they
// are unique within a document but carry no ordering. Display order
// comes from the explicit Order field.
package models
