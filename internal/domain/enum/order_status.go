package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the status of an order
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 0
	OrderStatusProcessing OrderStatus = 1
	OrderStatusCompleted  OrderStatus = 2
	OrderStatusCancelled  OrderStatus = 3
	OrderStatusRefunded   OrderStatus = 4
)

// ReportableStatuses are the statuses whose orders count toward monetary
// aggregates. Pending, cancelled and refunded orders are excluded.
var ReportableStatuses = []OrderStatus{OrderStatusProcessing, OrderStatusCompleted}

func (s OrderStatus) String() string {
	return [...]string{"Pending", "Processing", "Completed", "Cancelled", "Refunded"}[s]
}

// IsValid reports whether the status is one of the known values
func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusPending && s <= OrderStatusRefunded
}

// IsReportable reports whether orders with this status count toward sales
func (s OrderStatus) IsReportable() bool {
	for _, rs := range ReportableStatuses {
		if s == rs {
			return true
		}
	}
	return false
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = OrderStatusPending
	case "Processing":
		*s = OrderStatusProcessing
	case "Completed":
		*s = OrderStatusCompleted
	case "Cancelled":
		*s = OrderStatusCancelled
	case "Refunded":
		*s = OrderStatusRefunded
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
