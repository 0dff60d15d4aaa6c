// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package services

import (
	"context"

	"github.com/thejerf/suture/v4"
)

// named gives a suture service a stable name in supervisor logs.
type named struct {
	name string
	svc  suture.Service
}

// Named wraps svc so supervisor logs identify it by name.
func Named(name string, svc suture.Service) suture.Service {
	return &named{name: name, svc: svc}
}

func (n *named) Serve(ctx context.Context) error {
	return n.svc.Serve(ctx)
}

func (n *named) String() string {
	return n.name
}
