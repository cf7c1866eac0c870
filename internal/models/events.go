package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeOrderCreated       = "ORDER_CREATED"
	EventTypePaymentVerified    = "PAYMENT_VERIFIED"
	EventTypePaymentFailed      = "PAYMENT_FAILED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when a customer places an order
type OrderCreatedEvent struct {
	BaseEvent
	OrderID       string          `json:"order_id"`
	CustomerEmail string          `json:"customer_email"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// PaymentVerifiedEvent published when a gateway callback passes
// signature verification and the order is confirmed
type PaymentVerifiedEvent struct {
	BaseEvent
	OrderID       string          `json:"order_id"`
	CustomerEmail string          `json:"customer_email"`
	PaymentID     string          `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentFailedEvent published when signature verification fails
type PaymentFailedEvent struct {
	BaseEvent
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
	Reason        string `json:"reason"`
}

// OrderStatusChangedEvent published on administrative status updates
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID       string      `json:"order_id"`
	CustomerEmail string      `json:"customer_email"`
	OldStatus     OrderStatus `json:"old_status"`
	NewStatus     OrderStatus `json:"new_status"`
}
