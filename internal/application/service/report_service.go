package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/storepulse/storepulse-api/internal/domain/repository"
	"github.com/storepulse/storepulse-api/internal/infrastructure/cache"
	"github.com/storepulse/storepulse-api/pkg/daterange"
)

// ReportTTL is how long computed report payloads stay valid. Reports are
// refreshed early anyway whenever an order mutation invalidates the cache.
const ReportTTL = 12 * time.Hour

// paramTimeLayout is the canonical timestamp format used inside cache key
// parameter sets
const paramTimeLayout = "2006-01-02 15:04:05"

// ReportQuery carries the resolved request parameters shared by the report
// endpoints
type ReportQuery struct {
	Range    daterange.Range
	Limit    int
	Interval string
}

// DateRangeInfo echoes the resolved reporting window back to the client
type DateRangeInfo struct {
	From      string `json:"from"`
	To        string `json:"to"`
	IsAllTime bool   `json:"is_all_time"`
}

// StatsReport summarises sales over the requested window
type StatsReport struct {
	TotalSales        float64       `json:"total_sales"`
	TotalOrders       int           `json:"total_orders"`
	AverageOrderValue float64       `json:"average_order_value"`
	DateRange         DateRangeInfo `json:"date_range"`
}

// ProductReport represents one row of the top products report
type ProductReport struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// TrendPoint represents revenue summed into one calendar bucket
type TrendPoint struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
}

// CustomerReport represents one row of the top customers report
type CustomerReport struct {
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

// SalesDayReport represents one of the best performing days
type SalesDayReport struct {
	Date       string  `json:"date"`
	OrderCount int     `json:"order_count"`
	Total      float64 `json:"total"`
}

// RefundDay represents refunds recorded on a single day
type RefundDay struct {
	Date        string  `json:"date"`
	RefundCount int     `json:"refund_count"`
	Total       float64 `json:"total"`
}

// RefundsReport summarises refund activity over the requested window.
// RefundCount counts the days on which refunds occurred, matching how the
// per-day breakdown is grouped.
type RefundsReport struct {
	TotalRefundAmount float64     `json:"total_refund_amount"`
	RefundCount       int         `json:"refund_count"`
	Refunds           []RefundDay `json:"refunds"`
}

// CouponReport represents aggregate usage of one coupon code
type CouponReport struct {
	Code           string  `json:"code"`
	UsageCount     int     `json:"usage_count"`
	DiscountAmount float64 `json:"discount_amount"`
}

// RefreshResult reports the outcome of a manual cache refresh
type RefreshResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// rangeParams is the cache key parameter set shared by all reports
type rangeParams struct {
	From    string `json:"from"`
	To      string `json:"to"`
	AllTime bool   `json:"is_all_time"`
}

type limitParams struct {
	rangeParams
	Limit int `json:"limit"`
}

type intervalParams struct {
	rangeParams
	Interval string `json:"interval"`
}

func newRangeParams(r daterange.Range) rangeParams {
	return rangeParams{
		From:    r.From.Format(paramTimeLayout),
		To:      r.To.Format(paramTimeLayout),
		AllTime: r.AllTime,
	}
}

// ReportService handles report computation and caching
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	reportCache   repository.ReportCache
}

// NewReportService creates a new report service
func NewReportService(analyticsRepo repository.AnalyticsRepository, reportCache repository.ReportCache) *ReportService {
	return &ReportService{
		analyticsRepo: analyticsRepo,
		reportCache:   reportCache,
	}
}

// fetchCached returns the cached report for key if present, otherwise
// computes it via fetch and stores the serialized result. Cache failures
// degrade to recomputation instead of failing the request.
func fetchCached[T any](ctx context.Context, c repository.ReportCache, key string, fetch func() (T, error)) (T, error) {
	var result T

	payload, found, err := c.Get(ctx, key)
	if err != nil {
		log.Printf("Warning: report cache get failed for %s: %v", key, err)
	} else if found {
		if err := json.Unmarshal(payload, &result); err == nil {
			return result, nil
		}
		log.Printf("Warning: discarding undecodable cache entry %s", key)
	}

	result, err = fetch()
	if err != nil {
		return result, err
	}

	payload, err = json.Marshal(result)
	if err != nil {
		return result, err
	}
	if err := c.Set(ctx, key, payload, ReportTTL); err != nil {
		log.Printf("Warning: report cache set failed for %s: %v", key, err)
	}

	return result, nil
}

// GetStats returns overall sales figures for the query window
func (s *ReportService) GetStats(ctx context.Context, q ReportQuery) (*StatsReport, error) {
	key := cache.BuildKey("stats", newRangeParams(q.Range))

	return fetchCached(ctx, s.reportCache, key, func() (*StatsReport, error) {
		stats, err := s.analyticsRepo.GetStats(ctx, q.Range)
		if err != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", err)
		}

		report := &StatsReport{
			TotalSales:  stats.TotalSales,
			TotalOrders: stats.TotalOrders,
			DateRange: DateRangeInfo{
				From:      q.Range.From.Format(daterange.DateLayout),
				To:        q.Range.To.Format(daterange.DateLayout),
				IsAllTime: q.Range.AllTime,
			},
		}
		if stats.TotalOrders > 0 {
			report.AverageOrderValue = stats.TotalSales / float64(stats.TotalOrders)
		}
		return report, nil
	})
}

// GetTopProducts returns the best selling products for the query window
func (s *ReportService) GetTopProducts(ctx context.Context, q ReportQuery) ([]ProductReport, error) {
	key := cache.BuildKey("top_products", limitParams{newRangeParams(q.Range), q.Limit})

	return fetchCached(ctx, s.reportCache, key, func() ([]ProductReport, error) {
		rows, err := s.analyticsRepo.GetTopProducts(ctx, q.Range, q.Limit)
		if err != nil {
			return nil, fmt.Errorf("failed to compute top products: %w", err)
		}

		report := make([]ProductReport, 0, len(rows))
		for _, row := range rows {
			report = append(report, ProductReport{
				Name:     row.Name,
				Quantity: row.Quantity,
				Total:    row.Total,
			})
		}
		return report, nil
	})
}

// GetRevenueTrend returns revenue bucketed by the query interval
func (s *ReportService) GetRevenueTrend(ctx context.Context, q ReportQuery) ([]TrendPoint, error) {
	key := cache.BuildKey("revenue_trend", intervalParams{newRangeParams(q.Range), q.Interval})

	return fetchCached(ctx, s.reportCache, key, func() ([]TrendPoint, error) {
		rows, err := s.analyticsRepo.GetRevenueTrend(ctx, q.Range, q.Interval)
		if err != nil {
			return nil, fmt.Errorf("failed to compute revenue trend: %w", err)
		}

		report := make([]TrendPoint, 0, len(rows))
		for _, row := range rows {
			report = append(report, TrendPoint{Period: row.Period, Total: row.Total})
		}
		return report, nil
	})
}

// GetTopCustomers returns the highest spending customers for the query window
func (s *ReportService) GetTopCustomers(ctx context.Context, q ReportQuery) ([]CustomerReport, error) {
	key := cache.BuildKey("top_customers", limitParams{newRangeParams(q.Range), q.Limit})

	return fetchCached(ctx, s.reportCache, key, func() ([]CustomerReport, error) {
		rows, err := s.analyticsRepo.GetTopCustomers(ctx, q.Range, q.Limit)
		if err != nil {
			return nil, fmt.Errorf("failed to compute top customers: %w", err)
		}

		report := make([]CustomerReport, 0, len(rows))
		for _, row := range rows {
			report = append(report, CustomerReport{
				Email:      row.Email,
				Name:       row.Name,
				OrderCount: row.OrderCount,
				TotalSpent: row.TotalSpent,
			})
		}
		return report, nil
	})
}

// GetBestSalesDays returns the highest revenue days for the query window
func (s *ReportService) GetBestSalesDays(ctx context.Context, q ReportQuery) ([]SalesDayReport, error) {
	key := cache.BuildKey("best_sales_days", limitParams{newRangeParams(q.Range), q.Limit})

	return fetchCached(ctx, s.reportCache, key, func() ([]SalesDayReport, error) {
		rows, err := s.analyticsRepo.GetBestSalesDays(ctx, q.Range, q.Limit)
		if err != nil {
			return nil, fmt.Errorf("failed to compute best sales days: %w", err)
		}

		report := make([]SalesDayReport, 0, len(rows))
		for _, row := range rows {
			report = append(report, SalesDayReport{
				Date:       row.Date.Format(daterange.DateLayout),
				OrderCount: row.OrderCount,
				Total:      row.Total,
			})
		}
		return report, nil
	})
}

// GetRefunds returns the refund summary and per-day breakdown for the
// query window
func (s *ReportService) GetRefunds(ctx context.Context, q ReportQuery) (*RefundsReport, error) {
	key := cache.BuildKey("refunds", newRangeParams(q.Range))

	return fetchCached(ctx, s.reportCache, key, func() (*RefundsReport, error) {
		days, err := s.analyticsRepo.GetRefundDays(ctx, q.Range)
		if err != nil {
			return nil, fmt.Errorf("failed to compute refund days: %w", err)
		}
		total, err := s.analyticsRepo.GetTotalRefunds(ctx, q.Range)
		if err != nil {
			return nil, fmt.Errorf("failed to compute total refunds: %w", err)
		}

		report := &RefundsReport{
			TotalRefundAmount: total,
			RefundCount:       len(days),
			Refunds:           make([]RefundDay, 0, len(days)),
		}
		for _, day := range days {
			report.Refunds = append(report.Refunds, RefundDay{
				Date:        day.Date.Format(daterange.DateLayout),
				RefundCount: day.RefundCount,
				Total:       day.Total,
			})
		}
		return report, nil
	})
}

// GetCouponsUsed returns coupon usage grouped by code for the query window
func (s *ReportService) GetCouponsUsed(ctx context.Context, q ReportQuery) ([]CouponReport, error) {
	key := cache.BuildKey("coupons_used", newRangeParams(q.Range))

	return fetchCached(ctx, s.reportCache, key, func() ([]CouponReport, error) {
		rows, err := s.analyticsRepo.GetCouponsUsed(ctx, q.Range)
		if err != nil {
			return nil, fmt.Errorf("failed to compute coupon usage: %w", err)
		}

		report := make([]CouponReport, 0, len(rows))
		for _, row := range rows {
			report = append(report, CouponReport{
				Code:           row.Code,
				UsageCount:     row.UsageCount,
				DiscountAmount: row.DiscountAmount,
			})
		}
		return report, nil
	})
}

// RefreshCache drops every cached report so the next requests recompute
// from the database
func (s *ReportService) RefreshCache(ctx context.Context) (*RefreshResult, error) {
	removed, err := s.reportCache.InvalidateAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh report cache: %w", err)
	}

	return &RefreshResult{
		Success: true,
		Message: fmt.Sprintf("Cache refreshed. %d items deleted.", removed),
	}, nil
}
