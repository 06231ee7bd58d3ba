package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/karibu-retail/storefront-gateway/pkg/logger"
)

// Refresher keeps a warm dashboard snapshot on a fixed schedule so admin
// reads are served from cache between refreshes.
type Refresher struct {
	svc      Service
	logg     *logger.Logger
	interval time.Duration
	cron     *cron.Cron

	mu     sync.RWMutex
	latest *Snapshot
}

// NewRefresher builds a refresher ticking at the given interval.
func NewRefresher(svc Service, logg *logger.Logger, interval time.Duration) (*Refresher, error) {
	if svc == nil {
		return nil, fmt.Errorf("dashboard service required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive")
	}
	return &Refresher{svc: svc, logg: logg, interval: interval}, nil
}

// Start primes the cache and schedules periodic refreshes. The initial
// refresh runs synchronously so a snapshot exists before traffic arrives.
func (r *Refresher) Start(ctx context.Context) error {
	r.Refresh(ctx)

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", r.interval), func() {
		r.Refresh(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule dashboard refresh: %w", err)
	}
	c.Start()
	r.cron = c
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

// Refresh fetches a new snapshot. Partial snapshots still replace the cache;
// only a fully failed fetch leaves the previous snapshot in place.
func (r *Refresher) Refresh(ctx context.Context) {
	snap, err := r.svc.Snapshot(ctx)
	if err != nil && r.logg != nil {
		r.logg.Warn(ctx, "dashboard refresh completed with failed sections")
	}
	if len(snap.FailedSections) == SectionCount {
		return
	}

	r.mu.Lock()
	r.latest = &snap
	r.mu.Unlock()
}

// Latest returns the cached snapshot, if one exists yet.
func (r *Refresher) Latest() (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return Snapshot{}, false
	}
	return *r.latest, true
}
