package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"

	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/logger"
	"github.com/karibu-retail/storefront-gateway/pkg/metrics"
	"github.com/karibu-retail/storefront-gateway/pkg/upstream"
)

// Section names, used for metrics labels and failure reporting.
const (
	SectionStats        = "stats"
	SectionSalesTrends  = "sales_trends"
	SectionStockLevels  = "stock_levels"
	SectionOnlineOrders = "recent_online_orders"
	SectionOfflineSales = "recent_offline_sales"

	SectionCount = 5
)

type dashboardClient interface {
	Stats(ctx context.Context) (upstream.Stats, error)
	SalesTrends(ctx context.Context) (upstream.TrendSeries, error)
	StockLevels(ctx context.Context) (upstream.StockLevels, error)
	RecentOnlineOrders(ctx context.Context) ([]upstream.OnlineOrderSummary, error)
	RecentOfflineSales(ctx context.Context) ([]upstream.OfflineSaleSummary, error)
}

// Snapshot is one consolidated dashboard read. Sections that failed to load
// are nil and named in FailedSections; one bad section never blanks the rest.
type Snapshot struct {
	Stats              *upstream.Stats               `json:"stats,omitempty"`
	SalesTrends        *upstream.TrendSeries         `json:"sales_trends,omitempty"`
	StockLevels        *upstream.StockLevels         `json:"stock_levels,omitempty"`
	RecentOnlineOrders []upstream.OnlineOrderSummary `json:"recent_online_orders,omitempty"`
	RecentOfflineSales []upstream.OfflineSaleSummary `json:"recent_offline_sales,omitempty"`
	FailedSections     []string                      `json:"failed_sections,omitempty"`
	RefreshedAt        time.Time                     `json:"refreshed_at"`
}

// Service assembles the admin dashboard from the upstream section endpoints.
type Service interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	Section(ctx context.Context, name string) (any, error)
}

type service struct {
	upstream dashboardClient
	logg     *logger.Logger
	metrics  *metrics.RefreshMetrics
}

// NewService builds the dashboard service. Metrics may be nil.
func NewService(client dashboardClient, logg *logger.Logger, m *metrics.RefreshMetrics) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("dashboard client required")
	}
	return &service{upstream: client, logg: logg, metrics: m}, nil
}

// Snapshot fetches all five sections concurrently. The returned error is the
// aggregate of section failures; the snapshot still carries every section
// that loaded.
func (s *service) Snapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{RefreshedAt: time.Now().UTC()}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs error
	)

	fetch := func(section string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			err := fn(ctx)
			s.metrics.ObserveDuration(section, time.Since(start))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.metrics.IncFailure(section)
				snap.FailedSections = append(snap.FailedSections, section)
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", section, err))
				if s.logg != nil {
					s.logg.Error(ctx, "dashboard section failed", err)
				}
				return
			}
			s.metrics.IncSuccess(section)
		}()
	}

	fetch(SectionStats, func(ctx context.Context) error {
		stats, err := s.upstream.Stats(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Stats = &stats
		mu.Unlock()
		return nil
	})
	fetch(SectionSalesTrends, func(ctx context.Context) error {
		trends, err := s.upstream.SalesTrends(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.SalesTrends = &trends
		mu.Unlock()
		return nil
	})
	fetch(SectionStockLevels, func(ctx context.Context) error {
		levels, err := s.upstream.StockLevels(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.StockLevels = &levels
		mu.Unlock()
		return nil
	})
	fetch(SectionOnlineOrders, func(ctx context.Context) error {
		orders, err := s.upstream.RecentOnlineOrders(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.RecentOnlineOrders = orders
		mu.Unlock()
		return nil
	})
	fetch(SectionOfflineSales, func(ctx context.Context) error {
		sales, err := s.upstream.RecentOfflineSales(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.RecentOfflineSales = sales
		mu.Unlock()
		return nil
	})

	wg.Wait()
	return snap, errs
}

// Section fetches a single named section live, bypassing the cache.
func (s *service) Section(ctx context.Context, name string) (any, error) {
	switch name {
	case SectionStats:
		return s.upstream.Stats(ctx)
	case SectionSalesTrends:
		return s.upstream.SalesTrends(ctx)
	case SectionStockLevels:
		return s.upstream.StockLevels(ctx)
	case SectionOnlineOrders:
		return s.upstream.RecentOnlineOrders(ctx)
	case SectionOfflineSales:
		return s.upstream.RecentOfflineSales(ctx)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("unknown dashboard section %q", name))
	}
}
