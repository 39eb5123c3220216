package service

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storepulse/storepulse-api/internal/domain/entity"
	"github.com/storepulse/storepulse-api/internal/domain/enum"
	"github.com/storepulse/storepulse-api/internal/domain/repository"
	"github.com/storepulse/storepulse-api/pkg/apperror"
	"github.com/storepulse/storepulse-api/pkg/pagination"
)

// OrderService handles order lifecycle operations. Every mutation that can
// change report output invalidates the report cache.
type OrderService struct {
	orderRepo   repository.OrderRepository
	refundRepo  repository.RefundRepository
	reportCache repository.ReportCache
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	refundRepo repository.RefundRepository,
	reportCache repository.ReportCache,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		refundRepo:  refundRepo,
		reportCache: reportCache,
	}
}

// toCents converts a decimal money amount to integer cents
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// OrderItemInput represents a line item on a new order
type OrderItemInput struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// OrderCouponInput represents a coupon applied to a new order
type OrderCouponInput struct {
	Code     string
	Discount float64
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	OrderNumber      string
	Status           enum.OrderStatus
	OrderDate        time.Time
	BillingEmail     string
	BillingFirstName string
	BillingLastName  string
	Items            []OrderItemInput
	Coupons          []OrderCouponInput
}

// CreateOrder creates an order with its items and coupons. The order total
// is derived from the line items.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	existing, err := s.orderRepo.GetByOrderNumber(ctx, input.OrderNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Order number already exists")
	}

	if !input.Status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid order status")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must have at least one item")
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	var total int64
	items := make([]entity.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		lineTotal := toCents(item.UnitPrice) * int64(item.Quantity)
		total += lineTotal
		items = append(items, entity.OrderItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Total:       lineTotal,
		})
	}

	coupons := make([]entity.OrderCoupon, 0, len(input.Coupons))
	for _, coupon := range input.Coupons {
		discount := toCents(coupon.Discount)
		total -= discount
		coupons = append(coupons, entity.OrderCoupon{
			Code:     strings.ToLower(coupon.Code),
			Discount: discount,
		})
	}
	if total < 0 {
		total = 0
	}

	order := &entity.Order{
		OrderNumber:      input.OrderNumber,
		Status:           input.Status,
		OrderDate:        orderDate,
		BillingEmail:     strings.ToLower(input.BillingEmail),
		BillingFirstName: input.BillingFirstName,
		BillingLastName:  input.BillingLastName,
		Total:            total,
		Items:            items,
		Coupons:          coupons,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, "order created")
	return order, nil
}

// GetOrder retrieves an order by ID with its items and coupons
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders retrieves orders with filtering and pagination
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination != nil {
		params.Pagination.Validate()
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	page, perPage := 1, len(orders)
	if params.Pagination != nil {
		page = params.Pagination.Page
		perPage = params.Pagination.PerPage
	}

	return pagination.NewPaginatedResult(orders, pagination.NewPagination(page, perPage, total)), nil
}

// UpdateStatus transitions an order to a new status
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid order status")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.invalidateReports(ctx, "order status updated")
	return order, nil
}

// RecordRefundInput represents a refund against an existing order
type RecordRefundInput struct {
	OrderID    uuid.UUID
	Amount     float64
	RefundDate time.Time
	Reason     string
}

// RecordRefund records a refund against an order. Refund amounts are
// stored as negative cents; reports take the absolute value.
func (s *OrderService) RecordRefund(ctx context.Context, input *RecordRefundInput) (*entity.Refund, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Refund amount must be positive")
	}

	order, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	refundDate := input.RefundDate
	if refundDate.IsZero() {
		refundDate = time.Now()
	}

	refund := &entity.Refund{
		OrderID:    input.OrderID,
		Amount:     -toCents(input.Amount),
		RefundDate: refundDate,
		Reason:     input.Reason,
	}

	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, "refund recorded")
	return refund, nil
}

// invalidateReports drops all cached reports after an order mutation.
// Invalidation failures are logged rather than returned; the mutation
// itself already succeeded and the cache expires on its own TTL.
func (s *OrderService) invalidateReports(ctx context.Context, cause string) {
	if _, err := s.reportCache.InvalidateAll(ctx); err != nil {
		log.Printf("Warning: report cache invalidation failed after %s: %v", cause, err)
	}
}
