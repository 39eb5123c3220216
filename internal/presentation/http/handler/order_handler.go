package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storepulse/storepulse-api/internal/application/service"
	"github.com/storepulse/storepulse-api/internal/domain/enum"
	"github.com/storepulse/storepulse-api/internal/domain/repository"
	"github.com/storepulse/storepulse-api/internal/presentation/http/dto/request"
	"github.com/storepulse/storepulse-api/internal/presentation/http/dto/response"
	"github.com/storepulse/storepulse-api/pkg/pagination"
)

// orderDateLayout is the timestamp format accepted on order and refund
// requests
const orderDateLayout = "2006-01-02 15:04:05"

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles listing orders with filtering and pagination
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			if status.IsValid() {
				params.Status = &status
			}
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles fetching a single order with its items and coupons
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateOrderInput{
		OrderNumber:      req.OrderNumber,
		Status:           req.Status,
		BillingEmail:     req.BillingEmail,
		BillingFirstName: req.BillingFirstName,
		BillingLastName:  req.BillingLastName,
	}

	if req.OrderDate != "" {
		orderDate, err := time.Parse(orderDateLayout, req.OrderDate)
		if err != nil {
			response.BadRequest(c, "Invalid order date, expected YYYY-MM-DD HH:MM:SS")
			return
		}
		input.OrderDate = orderDate
	}

	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	for _, coupon := range req.Coupons {
		input.Coupons = append(input.Coupons, service.OrderCouponInput{
			Code:     coupon.Code,
			Discount: coupon.Discount,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// UpdateStatus handles transitioning an order to a new status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

// RecordRefund handles recording a refund against an order
func (h *OrderHandler) RecordRefund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.RecordRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.RecordRefundInput{
		OrderID: id,
		Amount:  req.Amount,
		Reason:  req.Reason,
	}

	if req.RefundDate != "" {
		refundDate, err := time.Parse(orderDateLayout, req.RefundDate)
		if err != nil {
			response.BadRequest(c, "Invalid refund date, expected YYYY-MM-DD HH:MM:SS")
			return
		}
		input.RefundDate = refundDate
	}

	refund, err := h.orderService.RecordRefund(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Refund recorded successfully", refund)
}
