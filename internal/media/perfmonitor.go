// SIGMA Kiosk - Public Information Kiosk for Village Services
// Copyright 2026 SIGMA Desa contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sigma-desa/kiosk

package media

import (
	"context"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/sigma-desa/kiosk/internal/logging"
	"github.com/sigma-desa/kiosk/internal/metrics"
)

// PerformanceMonitor samples the display agent's memory usage. Kiosks
// run unattended for months; a leaking display process shows up here
// long before the device becomes unresponsive.
type PerformanceMonitor struct {
	interval  time.Duration
	warnBytes uint64
	proc      *process.Process
}

// NewPerformanceMonitor creates a monitor sampling at interval and
// warning when resident memory exceeds warnMB megabytes.
func NewPerformanceMonitor(interval time.Duration, warnMB uint64) (*PerformanceMonitor, error) {
	if interval < time.Second {
		interval = time.Second
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}

	return &PerformanceMonitor{
		interval:  interval,
		warnBytes: warnMB * 1024 * 1024,
		proc:      proc,
	}, nil
}

// Serve samples until ctx is canceled. Implements suture.Service.
func (m *PerformanceMonitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.sample(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.sample(ctx)
		}
	}
}

func (m *PerformanceMonitor) sample(ctx context.Context) {
	info, err := m.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		logging.Debug().Err(err).Msg("Memory sample failed")
		return
	}

	metrics.ProcessMemoryBytes.Set(float64(info.RSS))

	if info.RSS >= m.warnBytes {
		logging.Warn().
			Uint64("rss_mb", info.RSS/(1024*1024)).
			Uint64("threshold_mb", m.warnBytes/(1024*1024)).
			Msg("Display process memory above threshold")
	} else {
		logging.Debug().
			Uint64("rss_mb", info.RSS/(1024*1024)).
			Msg("Memory sample")
	}
}
