package dashboard

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karibu-retail/storefront-gateway/pkg/upstream"
)

type fakeDashboardClient struct {
	statsErr   error
	trendsErr  error
	stockErr   error
	ordersErr  error
	salesErr   error
	statsCalls int
}

func (f *fakeDashboardClient) Stats(_ context.Context) (upstream.Stats, error) {
	f.statsCalls++
	if f.statsErr != nil {
		return upstream.Stats{}, f.statsErr
	}
	return upstream.Stats{Sales: upstream.SalesStats{TotalOrders: 42}}, nil
}

func (f *fakeDashboardClient) SalesTrends(_ context.Context) (upstream.TrendSeries, error) {
	if f.trendsErr != nil {
		return upstream.TrendSeries{}, f.trendsErr
	}
	return upstream.TrendSeries{Labels: []string{"Aug 29", "Aug 30"}}, nil
}

func (f *fakeDashboardClient) StockLevels(_ context.Context) (upstream.StockLevels, error) {
	if f.stockErr != nil {
		return upstream.StockLevels{}, f.stockErr
	}
	return upstream.StockLevels{Labels: []string{"Honey 500g"}, Data: []int{4}}, nil
}

func (f *fakeDashboardClient) RecentOnlineOrders(_ context.Context) ([]upstream.OnlineOrderSummary, error) {
	if f.ordersErr != nil {
		return nil, f.ordersErr
	}
	return []upstream.OnlineOrderSummary{{CustomerName: "Jane Doe"}}, nil
}

func (f *fakeDashboardClient) RecentOfflineSales(_ context.Context) ([]upstream.OfflineSaleSummary, error) {
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	return []upstream.OfflineSaleSummary{{PaymentMode: "cash"}}, nil
}

func TestSnapshotAllSections(t *testing.T) {
	svc, err := NewService(&fakeDashboardClient{}, nil, nil)
	require.NoError(t, err)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	require.NotNil(t, snap.Stats)
	assert.Equal(t, 42, snap.Stats.Sales.TotalOrders)
	require.NotNil(t, snap.SalesTrends)
	require.NotNil(t, snap.StockLevels)
	assert.Len(t, snap.RecentOnlineOrders, 1)
	assert.Len(t, snap.RecentOfflineSales, 1)
	assert.Empty(t, snap.FailedSections)
	assert.False(t, snap.RefreshedAt.IsZero())
}

func TestSnapshotIsolatesSectionFailures(t *testing.T) {
	client := &fakeDashboardClient{
		trendsErr: errors.New("upstream 500"),
		salesErr:  errors.New("timeout"),
	}
	svc, err := NewService(client, nil, nil)
	require.NoError(t, err)

	snap, err := svc.Snapshot(context.Background())
	require.Error(t, err)

	require.NotNil(t, snap.Stats, "healthy sections still load")
	assert.Nil(t, snap.SalesTrends)
	require.NotNil(t, snap.StockLevels)
	assert.Nil(t, snap.RecentOfflineSales)

	failed := append([]string(nil), snap.FailedSections...)
	sort.Strings(failed)
	assert.Equal(t, []string{SectionOfflineSales, SectionSalesTrends}, failed)
}

func TestSectionFetchesLive(t *testing.T) {
	svc, err := NewService(&fakeDashboardClient{}, nil, nil)
	require.NoError(t, err)

	value, err := svc.Section(context.Background(), SectionStats)
	require.NoError(t, err)
	stats, ok := value.(upstream.Stats)
	require.True(t, ok)
	assert.Equal(t, 42, stats.Sales.TotalOrders)

	_, err = svc.Section(context.Background(), "bogus")
	require.Error(t, err)
}

func TestRefresherCachesSnapshot(t *testing.T) {
	client := &fakeDashboardClient{}
	svc, err := NewService(client, nil, nil)
	require.NoError(t, err)

	refresher, err := NewRefresher(svc, nil, 10)
	require.NoError(t, err)

	_, ok := refresher.Latest()
	assert.False(t, ok, "no snapshot before the first refresh")

	refresher.Refresh(context.Background())
	snap, ok := refresher.Latest()
	require.True(t, ok)
	require.NotNil(t, snap.Stats)
	assert.Equal(t, 1, client.statsCalls)
}

func TestRefresherKeepsLastSnapshotOnTotalFailure(t *testing.T) {
	client := &fakeDashboardClient{}
	svc, err := NewService(client, nil, nil)
	require.NoError(t, err)

	refresher, err := NewRefresher(svc, nil, 10)
	require.NoError(t, err)
	refresher.Refresh(context.Background())

	boom := errors.New("upstream down")
	client.statsErr = boom
	client.trendsErr = boom
	client.stockErr = boom
	client.ordersErr = boom
	client.salesErr = boom

	failed, err := svc.Snapshot(context.Background())
	require.Error(t, err)
	assert.Len(t, failed.FailedSections, SectionCount, "every section should report its failure")

	refresher.Refresh(context.Background())
	snap, ok := refresher.Latest()
	require.True(t, ok)
	assert.NotNil(t, snap.Stats, "a fully failed refresh keeps the previous snapshot")
}

func TestNewRefresherValidation(t *testing.T) {
	svc, err := NewService(&fakeDashboardClient{}, nil, nil)
	require.NoError(t, err)

	_, err = NewRefresher(nil, nil, 10)
	assert.Error(t, err)
	_, err = NewRefresher(svc, nil, 0)
	assert.Error(t, err)
}
