package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storepulse/storepulse-api/internal/domain/repository"
	"github.com/storepulse/storepulse-api/internal/infrastructure/cache"
	"github.com/storepulse/storepulse-api/pkg/daterange"
)

// fakeAnalyticsRepo returns canned aggregates and counts how often each
// query runs, so cache behavior is observable.
type fakeAnalyticsRepo struct {
	stats        repository.StatsResult
	products     []repository.TopProductResult
	refundDays   []repository.RefundDayResult
	totalRefunds float64

	statsCalls    int
	productsCalls int
	refundCalls   int
}

func (f *fakeAnalyticsRepo) GetStats(ctx context.Context, r daterange.Range) (*repository.StatsResult, error) {
	f.statsCalls++
	stats := f.stats
	return &stats, nil
}

func (f *fakeAnalyticsRepo) GetTopProducts(ctx context.Context, r daterange.Range, limit int) ([]repository.TopProductResult, error) {
	f.productsCalls++
	if limit < len(f.products) {
		return f.products[:limit], nil
	}
	return f.products, nil
}

func (f *fakeAnalyticsRepo) GetRevenueTrend(ctx context.Context, r daterange.Range, interval string) ([]repository.RevenueTrendPoint, error) {
	return []repository.RevenueTrendPoint{{Period: "2024-03", Total: 150}}, nil
}

func (f *fakeAnalyticsRepo) GetTopCustomers(ctx context.Context, r daterange.Range, limit int) ([]repository.TopCustomerResult, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) GetBestSalesDays(ctx context.Context, r daterange.Range, limit int) ([]repository.SalesDayResult, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) GetRefundDays(ctx context.Context, r daterange.Range) ([]repository.RefundDayResult, error) {
	f.refundCalls++
	return f.refundDays, nil
}

func (f *fakeAnalyticsRepo) GetTotalRefunds(ctx context.Context, r daterange.Range) (float64, error) {
	return f.totalRefunds, nil
}

func (f *fakeAnalyticsRepo) GetCouponsUsed(ctx context.Context, r daterange.Range) ([]repository.CouponResult, error) {
	return nil, nil
}

func testQuery(t *testing.T) ReportQuery {
	t.Helper()
	r, err := daterange.Resolve("2024-03-01", "2024-03-31", false, time.Now())
	require.NoError(t, err)
	return ReportQuery{Range: r, Limit: 10, Interval: repository.IntervalDay}
}

func newTestReportService(repo *fakeAnalyticsRepo) (*ReportService, *cache.MemoryReportCache) {
	store := cache.NewMemoryReportCache()
	return NewReportService(repo, store), store
}

func TestGetStatsComputesAverage(t *testing.T) {
	repo := &fakeAnalyticsRepo{stats: repository.StatsResult{TotalSales: 150, TotalOrders: 2}}
	svc, store := newTestReportService(repo)
	defer store.Close()

	report, err := svc.GetStats(context.Background(), testQuery(t))
	require.NoError(t, err)

	assert.Equal(t, 150.0, report.TotalSales)
	assert.Equal(t, 2, report.TotalOrders)
	assert.Equal(t, 75.0, report.AverageOrderValue)
	assert.Equal(t, "2024-03-01", report.DateRange.From)
	assert.Equal(t, "2024-03-31", report.DateRange.To)
	assert.False(t, report.DateRange.IsAllTime)
}

func TestGetStatsZeroOrders(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc, store := newTestReportService(repo)
	defer store.Close()

	report, err := svc.GetStats(context.Background(), testQuery(t))
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.AverageOrderValue)
}

func TestGetStatsServedFromCache(t *testing.T) {
	repo := &fakeAnalyticsRepo{stats: repository.StatsResult{TotalSales: 150, TotalOrders: 2}}
	svc, store := newTestReportService(repo)
	defer store.Close()
	ctx := context.Background()
	q := testQuery(t)

	first, err := svc.GetStats(ctx, q)
	require.NoError(t, err)
	second, err := svc.GetStats(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.statsCalls)
	assert.Equal(t, first, second)
}

func TestRefreshCacheForcesRecompute(t *testing.T) {
	repo := &fakeAnalyticsRepo{stats: repository.StatsResult{TotalSales: 150, TotalOrders: 2}}
	svc, store := newTestReportService(repo)
	defer store.Close()
	ctx := context.Background()
	q := testQuery(t)

	_, err := svc.GetStats(ctx, q)
	require.NoError(t, err)

	result, err := svc.RefreshCache(ctx)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Cache refreshed. 1 items deleted.", result.Message)

	_, err = svc.GetStats(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.statsCalls)
}

func TestTopProductsDistinctLimitsCachedSeparately(t *testing.T) {
	repo := &fakeAnalyticsRepo{products: []repository.TopProductResult{
		{Name: "Widget", Quantity: 5, Total: 50},
		{Name: "Gadget", Quantity: 3, Total: 30},
	}}
	svc, store := newTestReportService(repo)
	defer store.Close()
	ctx := context.Background()
	q := testQuery(t)

	q.Limit = 1
	one, err := svc.GetTopProducts(ctx, q)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	q.Limit = 10
	all, err := svc.GetTopProducts(ctx, q)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.Equal(t, 2, repo.productsCalls)
}

func TestGetRefundsCountsDays(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		refundDays: []repository.RefundDayResult{
			{Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), RefundCount: 3, Total: 12.5},
			{Date: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), RefundCount: 1, Total: 7.5},
		},
		totalRefunds: 20,
	}
	svc, store := newTestReportService(repo)
	defer store.Close()

	report, err := svc.GetRefunds(context.Background(), testQuery(t))
	require.NoError(t, err)

	assert.Equal(t, 20.0, report.TotalRefundAmount)
	assert.Equal(t, 2, report.RefundCount)
	require.Len(t, report.Refunds, 2)
	assert.Equal(t, "2024-03-10", report.Refunds[0].Date)
	assert.Equal(t, 3, report.Refunds[0].RefundCount)
}

func TestGetRefundsServedFromCache(t *testing.T) {
	repo := &fakeAnalyticsRepo{totalRefunds: 5}
	svc, store := newTestReportService(repo)
	defer store.Close()
	ctx := context.Background()
	q := testQuery(t)

	_, err := svc.GetRefunds(ctx, q)
	require.NoError(t, err)
	_, err = svc.GetRefunds(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.refundCalls)
}
