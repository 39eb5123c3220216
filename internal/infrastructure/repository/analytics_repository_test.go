package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainRepo "github.com/storepulse/storepulse-api/internal/domain/repository"
	"github.com/storepulse/storepulse-api/pkg/daterange"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func testRange(t *testing.T) daterange.Range {
	t.Helper()
	r, err := daterange.Resolve("2024-03-01", "2024-03-31", false, time.Now())
	require.NoError(t, err)
	return r
}

func TestGetStatsFiltersReportableStatuses(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAnalyticsRepository(gdb)
	dr := testRange(t)

	mock.ExpectQuery(`FROM orders`).
		WithArgs(int64(1), int64(2), dr.From, dr.To).
		WillReturnRows(sqlmock.NewRows([]string{"total_sales", "total_orders"}).
			AddRow(150.0, 2))

	stats, err := repo.GetStats(context.Background(), dr)
	require.NoError(t, err)

	assert.Equal(t, 150.0, stats.TotalSales)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatsEmptyRange(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAnalyticsRepository(gdb)
	dr := testRange(t)

	mock.ExpectQuery(`FROM orders`).
		WithArgs(int64(1), int64(2), dr.From, dr.To).
		WillReturnRows(sqlmock.NewRows([]string{"total_sales", "total_orders"}).
			AddRow(0.0, 0))

	stats, err := repo.GetStats(context.Background(), dr)
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.TotalSales)
	assert.Equal(t, 0, stats.TotalOrders)
}

func TestGetTopProductsAppliesLimit(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAnalyticsRepository(gdb)
	dr := testRange(t)

	mock.ExpectQuery(`FROM order_items`).
		WithArgs(int64(1), int64(2), dr.From, dr.To, 5).
		WillReturnRows(sqlmock.NewRows([]string{"name", "quantity", "total"}).
			AddRow("Widget", 7, 139.93).
			AddRow("Gadget", 3, 15.00))

	products, err := repo.GetTopProducts(context.Background(), dr, 5)
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, 7, products[0].Quantity)
	assert.Equal(t, 139.93, products[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRevenueTrendBucketFormats(t *testing.T) {
	tests := []struct {
		interval string
		format   string
	}{
		{domainRepo.IntervalDay, "YYYY-MM-DD"},
		{domainRepo.IntervalWeek, `IYYY-"W"IW`},
		{domainRepo.IntervalMonth, "YYYY-MM"},
	}

	for _, tt := range tests {
		t.Run(tt.interval, func(t *testing.T) {
			gdb, mock := newMockDB(t)
			repo := NewAnalyticsRepository(gdb)
			dr := testRange(t)

			mock.ExpectQuery(`TO_CHAR\(order_date`).
				WithArgs(tt.format, int64(1), int64(2), dr.From, dr.To).
				WillReturnRows(sqlmock.NewRows([]string{"period", "total"}).
					AddRow("2024-03", 150.0))

			trend, err := repo.GetRevenueTrend(context.Background(), dr, tt.interval)
			require.NoError(t, err)

			require.Len(t, trend, 1)
			assert.Equal(t, 150.0, trend[0].Total)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetTopCustomersGroupsByEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAnalyticsRepository(gdb)
	dr := testRange(t)

	mock.ExpectQuery(`GROUP BY billing_email`).
		WithArgs(int64(1), int64(2), dr.From, dr.To, 10).
		WillReturnRows(sqlmock.NewRows([]string{"email", "name", "order_count", "total_spent"}).
			AddRow("jane@example.com", "Jane Doe", 3, 120.50))

	customers, err := repo.GetTopCustomers(context.Background(), dr, 10)
	require.NoError(t, err)

	require.Len(t, customers, 1)
	assert.Equal(t, "jane@example.com", customers[0].Email)
	assert.Equal(t, "Jane Doe", customers[0].Name)
	assert.Equal(t, 3, customers[0].OrderCount)
	assert.Equal(t, 120.50, customers[0].TotalSpent)
}

func TestGetBestSalesDays(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAnalyticsRepository(gdb)
	dr := testRange(t)

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`GROUP BY DATE\(order_date\)`).
		WithArgs(int64(1), int64(2), dr.From, dr.To, 3).
		WillReturnRows(sqlmock.NewRows([]string{"date", "order_count", "total"}).
			AddRow(day, 4, 220.0))

	days, err := repo.GetBestSalesDays(context.Background(), dr, 3)
	require.NoError(t, err)

	require.Len(t, days, 1)
	assert.Equal(t, day, days[0].Date)
	assert.Equal(t, 4, days[0].OrderCount)
	assert.Equal(t, 220.0, days[0].Total)
}

func TestGetRefundDaysUsesAbsoluteAmounts(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAnalyticsRepository(gdb)
	dr := testRange(t)

	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SUM\(ABS\(amount\)\)`).
		WithArgs(dr.From, dr.To).
		WillReturnRows(sqlmock.NewRows([]string{"date", "refund_count", "total"}).
			AddRow(day, 2, 20.0))

	days, err := repo.GetRefundDays(context.Background(), dr)
	require.NoError(t, err)

	require.Len(t, days, 1)
	assert.Equal(t, 2, days[0].RefundCount)
	assert.Equal(t, 20.0, days[0].Total)
}

func TestGetTotalRefunds(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAnalyticsRepository(gdb)
	dr := testRange(t)

	mock.ExpectQuery(`FROM refunds`).
		WithArgs(dr.From, dr.To).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(42.75))

	total, err := repo.GetTotalRefunds(context.Background(), dr)
	require.NoError(t, err)

	assert.Equal(t, 42.75, total)
}

func TestGetCouponsUsed(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAnalyticsRepository(gdb)
	dr := testRange(t)

	mock.ExpectQuery(`FROM order_coupons`).
		WithArgs(int64(1), int64(2), dr.From, dr.To).
		WillReturnRows(sqlmock.NewRows([]string{"code", "usage_count", "discount_amount"}).
			AddRow("save5", 4, 20.0).
			AddRow("welcome10", 1, 10.0))

	coupons, err := repo.GetCouponsUsed(context.Background(), dr)
	require.NoError(t, err)

	require.Len(t, coupons, 2)
	assert.Equal(t, "save5", coupons[0].Code)
	assert.Equal(t, 4, coupons[0].UsageCount)
	assert.Equal(t, 20.0, coupons[0].DiscountAmount)
}
