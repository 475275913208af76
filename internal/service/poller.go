package service

import (
	"context"
	"errors"
	"time"

	"chamber_dashboard/internal/logger"
	"chamber_dashboard/internal/metrics"
	"chamber_dashboard/internal/models"
)

// SnapshotFetcher issues the snapshot request. *backend.Client satisfies it.
type SnapshotFetcher interface {
	FetchSnapshots(ctx context.Context) ([]models.TelemetrySnapshot, error)
}

// Projector writes a snapshot onto the page. *view.Page satisfies it.
type Projector interface {
	Project(s models.TelemetrySnapshot) error
}

// StatusPoller refreshes the page from the backend snapshot endpoint.
type StatusPoller struct {
	fetcher SnapshotFetcher
	page    Projector
	metrics *metrics.Metrics
	log     *logger.Logger
	now     func() time.Time
}

func NewStatusPoller(fetcher SnapshotFetcher, page Projector, m *metrics.Metrics, log *logger.Logger) *StatusPoller {
	if log == nil {
		log = logger.Nop()
	}
	return &StatusPoller{fetcher: fetcher, page: page, metrics: m, log: log, now: time.Now}
}

// Poll runs one cycle. A failed request leaves the page untouched; missing
// elements are reported after every other field has been written.
// Concurrent calls are not serialized: the last one to finish wins.
func (p *StatusPoller) Poll(ctx context.Context) error {
	started := p.now()

	snaps, err := p.fetcher.FetchSnapshots(ctx)
	if err != nil {
		p.metrics.PollFinished(metrics.OutcomeFailed, p.now().Sub(started))
		p.log.Errorw("poll_failed", "err", err)
		return err
	}

	var errs []error
	for _, s := range snaps {
		if err := p.page.Project(s); err != nil {
			errs = append(errs, err)
		}
		p.metrics.ObserveSnapshot(s)
	}

	if err := errors.Join(errs...); err != nil {
		p.metrics.PollFinished(metrics.OutcomeFailed, p.now().Sub(started))
		p.log.Errorw("poll_projection_failed", "records", len(snaps), "err", err)
		return err
	}

	p.metrics.PollFinished(metrics.OutcomeOK, p.now().Sub(started))
	p.log.Debugw("poll_ok", "records", len(snaps))
	return nil
}

// Run polls every interval until ctx is canceled. Failures are logged by
// Poll and the loop keeps going; the next cycle is the recovery path.
// A non-positive interval disables periodic polling.
func (p *StatusPoller) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		p.log.Infow("periodic_polling_disabled")
		return
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	_ = p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = p.Poll(ctx)
		}
	}
}
