package repository

import (
	"context"

	"github.com/storepulse/storepulse-api/internal/domain/enum"
	domainRepo "github.com/storepulse/storepulse-api/internal/domain/repository"
	"github.com/storepulse/storepulse-api/pkg/daterange"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetStats(ctx context.Context, dr daterange.Range) (*domainRepo.StatsResult, error) {
	var result domainRepo.StatsResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total), 0) / 100.0 as total_sales,
			COUNT(id) as total_orders
		FROM orders
		WHERE status IN (?, ?)
		AND order_date BETWEEN ? AND ?
		AND deleted_at IS NULL
	`, enum.OrderStatusProcessing, enum.OrderStatusCompleted, dr.From, dr.To).Scan(&result).Error

	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, dr daterange.Range, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			oi.product_name as name,
			COALESCE(SUM(oi.quantity), 0) as quantity,
			COALESCE(SUM(oi.total), 0) / 100.0 as total
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status IN (?, ?)
		AND o.order_date BETWEEN ? AND ?
		AND o.deleted_at IS NULL AND oi.deleted_at IS NULL
		GROUP BY oi.product_name
		ORDER BY total DESC
		LIMIT ?
	`, enum.OrderStatusProcessing, enum.OrderStatusCompleted, dr.From, dr.To, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetRevenueTrend(ctx context.Context, dr daterange.Range, interval string) ([]domainRepo.RevenueTrendPoint, error) {
	var results []domainRepo.RevenueTrendPoint

	// Calendar buckets, not rolling windows. Weeks follow ISO-8601.
	format := "YYYY-MM-DD"
	switch interval {
	case domainRepo.IntervalWeek:
		format = `IYYY-"W"IW`
	case domainRepo.IntervalMonth:
		format = "YYYY-MM"
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(order_date, ?) as period,
			COALESCE(SUM(total), 0) / 100.0 as total
		FROM orders
		WHERE status IN (?, ?)
		AND order_date BETWEEN ? AND ?
		AND deleted_at IS NULL
		GROUP BY 1
		ORDER BY MIN(order_date) ASC
	`, format, enum.OrderStatusProcessing, enum.OrderStatusCompleted, dr.From, dr.To).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTopCustomers(ctx context.Context, dr daterange.Range, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult

	// Customers are grouped by billing email; the name shown is whichever
	// one appears on the most recent order.
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			billing_email as email,
			(ARRAY_AGG(TRIM(billing_first_name || ' ' || billing_last_name) ORDER BY order_date DESC))[1] as name,
			COUNT(id) as order_count,
			COALESCE(SUM(total), 0) / 100.0 as total_spent
		FROM orders
		WHERE status IN (?, ?)
		AND order_date BETWEEN ? AND ?
		AND deleted_at IS NULL
		GROUP BY billing_email
		ORDER BY total_spent DESC
		LIMIT ?
	`, enum.OrderStatusProcessing, enum.OrderStatusCompleted, dr.From, dr.To, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetBestSalesDays(ctx context.Context, dr daterange.Range, limit int) ([]domainRepo.SalesDayResult, error) {
	var results []domainRepo.SalesDayResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(order_date) as date,
			COUNT(id) as order_count,
			COALESCE(SUM(total), 0) / 100.0 as total
		FROM orders
		WHERE status IN (?, ?)
		AND order_date BETWEEN ? AND ?
		AND deleted_at IS NULL
		GROUP BY DATE(order_date)
		ORDER BY total DESC
		LIMIT ?
	`, enum.OrderStatusProcessing, enum.OrderStatusCompleted, dr.From, dr.To, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetRefundDays(ctx context.Context, dr daterange.Range) ([]domainRepo.RefundDayResult, error) {
	var results []domainRepo.RefundDayResult

	// Refund amounts are stored negative; reports use the absolute value.
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(refund_date) as date,
			COUNT(id) as refund_count,
			COALESCE(SUM(ABS(amount)), 0) / 100.0 as total
		FROM refunds
		WHERE refund_date BETWEEN ? AND ?
		AND deleted_at IS NULL
		GROUP BY DATE(refund_date)
		ORDER BY date ASC
	`, dr.From, dr.To).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTotalRefunds(ctx context.Context, dr daterange.Range) (float64, error) {
	var total float64

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(ABS(amount)), 0) / 100.0
		FROM refunds
		WHERE refund_date BETWEEN ? AND ?
		AND deleted_at IS NULL
	`, dr.From, dr.To).Scan(&total).Error

	return total, err
}

func (r *analyticsRepository) GetCouponsUsed(ctx context.Context, dr daterange.Range) ([]domainRepo.CouponResult, error) {
	var results []domainRepo.CouponResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			oc.code as code,
			COUNT(oc.id) as usage_count,
			COALESCE(SUM(oc.discount), 0) / 100.0 as discount_amount
		FROM order_coupons oc
		JOIN orders o ON o.id = oc.order_id
		WHERE o.status IN (?, ?)
		AND o.order_date BETWEEN ? AND ?
		AND o.deleted_at IS NULL AND oc.deleted_at IS NULL
		GROUP BY oc.code
		ORDER BY usage_count DESC
	`, enum.OrderStatusProcessing, enum.OrderStatusCompleted, dr.From, dr.To).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
