package workers

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the jobs enabled in cfg. The result may be empty.
func NewWorkers(sessions SessionExpirer, audit AuditPurger, settings SettingsReader, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if cfg.ReapStaleSessions {
		ws.workers = append(ws.workers, NewSessionReaper(sessions, settings, cfg.Interval, logger))
	}
	if cfg.EnforceRetention {
		ws.workers = append(ws.workers, NewAuditRetention(audit, settings, time.Now, cfg.Interval, logger))
	}

	return ws
}

// Len returns the number of enabled jobs.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every job and waits for all of them. The first failure
// cancels the others. Cancellation of ctx is not an error.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// tick calls fn once immediately and then every interval until ctx ends.
func tick(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) error {
	if interval <= 0 {
		interval = config.DefaultWorkerInterval
	}

	fn(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fn(ctx)
		}
	}
}
