package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Refund represents a refund recorded against an order. Amount is stored in
// cents and kept negative, the way the order system of record books refunds;
// report aggregations take the absolute value.
type Refund struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	Amount     int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	RefundDate time.Time      `gorm:"not null;index" json:"refund_date"`
	Reason     string         `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Refund) MarshalJSON() ([]byte, error) {
	type Alias Refund
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(r),
		Amount: float64(r.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new refund
func (r *Refund) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Refund model
func (Refund) TableName() string {
	return "refunds"
}
