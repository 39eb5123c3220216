package repository

import (
	"context"
	"time"

	"github.com/storepulse/storepulse-api/pkg/daterange"
)

// Revenue trend intervals
const (
	IntervalDay   = "day"
	IntervalWeek  = "week"
	IntervalMonth = "month"
)

// StatsResult represents overall sales figures for a period
type StatsResult struct {
	TotalSales  float64
	TotalOrders int
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	Name     string
	Quantity int
	Total    float64
}

// RevenueTrendPoint represents revenue summed into one calendar bucket
type RevenueTrendPoint struct {
	Period string
	Total  float64
}

// TopCustomerResult represents a customer's spending data, grouped by
// billing email
type TopCustomerResult struct {
	Email      string
	Name       string
	OrderCount int
	TotalSpent float64
}

// SalesDayResult represents order volume and revenue for a single day
type SalesDayResult struct {
	Date       time.Time
	OrderCount int
	Total      float64
}

// RefundDayResult represents refunds recorded on a single day
type RefundDayResult struct {
	Date        time.Time
	RefundCount int
	Total       float64
}

// CouponResult represents aggregate usage of one coupon code
type CouponResult struct {
	Code           string
	UsageCount     int
	DiscountAmount float64
}

// AnalyticsRepository defines the aggregation queries behind the report
// endpoints. Monetary sums only include orders in a reportable status;
// refund sums use absolute amounts.
type AnalyticsRepository interface {
	// GetStats returns total sales and order count for the range
	GetStats(ctx context.Context, r daterange.Range) (*StatsResult, error)

	// GetTopProducts returns best selling products by line total
	GetTopProducts(ctx context.Context, r daterange.Range, limit int) ([]TopProductResult, error)

	// GetRevenueTrend returns revenue bucketed by day, ISO week or month
	GetRevenueTrend(ctx context.Context, r daterange.Range, interval string) ([]RevenueTrendPoint, error)

	// GetTopCustomers returns top customers by total spent
	GetTopCustomers(ctx context.Context, r daterange.Range, limit int) ([]TopCustomerResult, error)

	// GetBestSalesDays returns the highest-revenue calendar days
	GetBestSalesDays(ctx context.Context, r daterange.Range, limit int) ([]SalesDayResult, error)

	// GetRefundDays returns per-day refund totals, ascending by date
	GetRefundDays(ctx context.Context, r daterange.Range) ([]RefundDayResult, error)

	// GetTotalRefunds returns the absolute refund amount over the range
	GetTotalRefunds(ctx context.Context, r daterange.Range) (float64, error)

	// GetCouponsUsed returns coupon usage grouped by code
	GetCouponsUsed(ctx context.Context, r daterange.Range) ([]CouponResult, error)
}
