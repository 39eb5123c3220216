package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/storepulse/storepulse-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a store order with its billing identity. Monetary values
// are stored in cents and converted to decimal at the API boundary.
type Order struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber      string           `gorm:"size:100;unique;not null" json:"order_number"`
	Status           enum.OrderStatus `gorm:"default:0;index" json:"status"`
	OrderDate        time.Time        `gorm:"not null;index" json:"order_date"`
	BillingEmail     string           `gorm:"size:255;not null;index" json:"billing_email"`
	BillingFirstName string           `gorm:"size:255" json:"billing_first_name"`
	BillingLastName  string           `gorm:"size:255" json:"billing_last_name"`
	Total            int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Items   []OrderItem   `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Coupons []OrderCoupon `gorm:"foreignKey:OrderID" json:"coupons,omitempty"`
	Refunds []Refund      `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(o),
		Total: float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// GetTotalDecimal returns the total as a decimal
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.Total) / 100
}

// OrderItem represents a product line item in an order
type OrderItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductName string         `gorm:"size:255;not null;index" json:"product_name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	Total       int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(oi),
		Total: float64(oi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderCoupon represents a coupon applied to an order
type OrderCoupon struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	Code      string         `gorm:"size:100;not null;index" json:"code"`
	Discount  int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oc OrderCoupon) MarshalJSON() ([]byte, error) {
	type Alias OrderCoupon
	return json.Marshal(&struct {
		Alias
		Discount float64 `json:"discount"`
	}{
		Alias:    Alias(oc),
		Discount: float64(oc.Discount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order coupon
func (oc *OrderCoupon) BeforeCreate(tx *gorm.DB) error {
	if oc.ID == uuid.Nil {
		oc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderCoupon model
func (OrderCoupon) TableName() string {
	return "order_coupons"
}
