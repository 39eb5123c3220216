package request

import (
	"github.com/storepulse/storepulse-api/internal/domain/enum"
)

// OrderItemRequest represents a line item on an incoming order
type OrderItemRequest struct {
	ProductName string  `json:"product_name" binding:"required,max=255"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

// OrderCouponRequest represents a coupon applied to an incoming order
type OrderCouponRequest struct {
	Code     string  `json:"code" binding:"required,max=100"`
	Discount float64 `json:"discount" binding:"gte=0"`
}

// CreateOrderRequest represents a create order request
type CreateOrderRequest struct {
	OrderNumber      string               `json:"order_number" binding:"required,max=100"`
	Status           enum.OrderStatus     `json:"status"`
	OrderDate        string               `json:"order_date"` // YYYY-MM-DD HH:MM:SS, defaults to now
	BillingEmail     string               `json:"billing_email" binding:"required,email"`
	BillingFirstName string               `json:"billing_first_name" binding:"max=255"`
	BillingLastName  string               `json:"billing_last_name" binding:"max=255"`
	Items            []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
	Coupons          []OrderCouponRequest `json:"coupons" binding:"dive"`
}

// UpdateOrderStatusRequest represents an order status transition request
type UpdateOrderStatusRequest struct {
	Status enum.OrderStatus `json:"status"`
}

// RecordRefundRequest represents a refund request against an order
type RecordRefundRequest struct {
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	RefundDate string  `json:"refund_date"` // YYYY-MM-DD HH:MM:SS, defaults to now
	Reason     string  `json:"reason" binding:"max=500"`
}
