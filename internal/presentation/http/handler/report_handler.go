package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storepulse/storepulse-api/internal/application/service"
	"github.com/storepulse/storepulse-api/internal/domain/repository"
	"github.com/storepulse/storepulse-api/internal/presentation/http/dto/response"
	"github.com/storepulse/storepulse-api/pkg/daterange"
)

const defaultReportLimit = 10

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseQuery resolves the shared report query parameters. A malformed
// all_time value is treated as false; malformed dates and non-positive
// limits are rejected.
func (h *ReportHandler) parseQuery(c *gin.Context) (service.ReportQuery, bool) {
	allTime, err := strconv.ParseBool(c.DefaultQuery("all_time", "false"))
	if err != nil {
		allTime = false
	}

	r, err := daterange.Resolve(c.Query("from"), c.Query("to"), allTime, time.Now())
	if err != nil {
		response.BadRequest(c, err.Error())
		return service.ReportQuery{}, false
	}

	limit := defaultReportLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			response.BadRequest(c, "Limit must be a positive integer")
			return service.ReportQuery{}, false
		}
	}

	interval := c.DefaultQuery("interval", repository.IntervalDay)
	switch interval {
	case repository.IntervalDay, repository.IntervalWeek, repository.IntervalMonth:
	default:
		response.BadRequest(c, "Interval must be one of: day, week, month")
		return service.ReportQuery{}, false
	}

	return service.ReportQuery{Range: r, Limit: limit, Interval: interval}, true
}

// GetStats handles the overall sales stats report
// @Summary Sales stats
// @Description Total sales, order count and average order value for a period
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param all_time query bool false "Ignore dates and report over all time"
// @Success 200 {object} response.APIResponse
// @Router /reports/stats [get]
func (h *ReportHandler) GetStats(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetStats(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stats retrieved successfully", report)
}

// GetTopProducts handles the best selling products report
func (h *ReportHandler) GetTopProducts(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetTopProducts(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top products retrieved successfully", report)
}

// GetRevenueTrend handles the bucketed revenue report
func (h *ReportHandler) GetRevenueTrend(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetRevenueTrend(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Revenue trend retrieved successfully", report)
}

// GetTopCustomers handles the top spending customers report
func (h *ReportHandler) GetTopCustomers(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetTopCustomers(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top customers retrieved successfully", report)
}

// GetBestSalesDays handles the best performing days report
func (h *ReportHandler) GetBestSalesDays(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetBestSalesDays(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Best sales days retrieved successfully", report)
}

// GetRefunds handles the refund summary report
func (h *ReportHandler) GetRefunds(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetRefunds(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refunds retrieved successfully", report)
}

// GetCouponsUsed handles the coupon usage report
func (h *ReportHandler) GetCouponsUsed(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetCouponsUsed(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Coupons retrieved successfully", report)
}

// RefreshCache handles dropping all cached reports
// @Summary Refresh report cache
// @Description Delete every cached report so subsequent requests recompute
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /reports/refresh [post]
func (h *ReportHandler) RefreshCache(c *gin.Context) {
	result, err := h.reportService.RefreshCache(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result.Message, result)
}
