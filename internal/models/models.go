package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies catalog products
type Category string

const (
	CategoryNamkeen  Category = "Namkeen"
	CategorySweets   Category = "Sweets"
	CategorySnacks   Category = "Snacks"
	CategoryBiscuits Category = "Biscuits"
	CategoryOther    Category = "Other"
)

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryNamkeen, CategorySweets, CategorySnacks, CategoryBiscuits, CategoryOther:
		return true
	}
	return false
}

// PaymentMethod selects how an order is paid
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "Online"
)

// Valid reports whether m is a known payment method
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// PaymentStatus tracks the payment lifecycle of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// OrderStatus tracks the fulfilment lifecycle of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusConfirmed  OrderStatus = "Confirmed"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Product represents a product in the catalog
type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Image       string          `db:"image" json:"image"`
	Category    Category        `db:"category" json:"category"`
	InStock     bool            `db:"in_stock" json:"in_stock"`
	Weight      string          `db:"weight" json:"weight"`
	Rating      decimal.Decimal `db:"rating" json:"rating"`
	ReviewCount int             `db:"review_count" json:"review_count"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Customer is the contact/address snapshot captured on an order
type Customer struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
}

// Order represents a customer order
type Order struct {
	ID             int64           `db:"id" json:"-"`
	OrderID        string          `db:"order_id" json:"order_id"`
	Customer       Customer        `db:"-" json:"customer"`
	Items          []OrderItem     `db:"-" json:"items"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	PaymentMethod  PaymentMethod   `db:"payment_method" json:"payment_method"`
	PaymentStatus  PaymentStatus   `db:"payment_status" json:"payment_status"`
	OrderStatus    OrderStatus     `db:"order_status" json:"order_status"`
	GatewayOrderID string          `db:"gateway_order_id" json:"gateway_order_id,omitempty"`
	PaymentID      string          `db:"payment_id" json:"payment_id,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderItem is one order line with the unit price captured at order time.
// The captured price is never recomputed from the catalog, so historical
// orders keep the price the customer actually paid.
type OrderItem struct {
	ID          int64           `db:"id" json:"-"`
	OrderID     int64           `db:"order_id" json:"-"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	ProductName string          `db:"product_name" json:"product_name"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
}

// Contact represents a contact-form message
type Contact struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Testimonial represents a customer testimonial, published once approved
type Testimonial struct {
	ID            int64     `db:"id" json:"id"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	CustomerEmail string    `db:"customer_email" json:"customer_email,omitempty"`
	CustomerPhone string    `db:"customer_phone" json:"customer_phone,omitempty"`
	Message       string    `db:"message" json:"message"`
	Rating        int       `db:"rating" json:"rating"`
	ProductID     *int64    `db:"product_id" json:"product_id,omitempty"`
	IsApproved    bool      `db:"is_approved" json:"is_approved"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// NewOrderID generates a human-shareable order identifier
func NewOrderID() string {
	return fmt.Sprintf("ORD%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
