package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storepulse/storepulse-api/internal/domain/entity"
	"github.com/storepulse/storepulse-api/internal/domain/enum"
	"github.com/storepulse/storepulse-api/pkg/pagination"
)

// OrderFilterParams represents filter parameters for listing orders
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
}

// RefundRepository defines the interface for refund data access
type RefundRepository interface {
	Create(ctx context.Context, refund *entity.Refund) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Refund, error)
}
