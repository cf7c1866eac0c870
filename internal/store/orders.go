package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/shopspring/decimal"
)

// orderRow flattens the customer snapshot into order columns
type orderRow struct {
	ID              int64                `db:"id"`
	OrderID         string               `db:"order_id"`
	CustomerName    string               `db:"customer_name"`
	CustomerEmail   string               `db:"customer_email"`
	CustomerPhone   string               `db:"customer_phone"`
	CustomerAddress string               `db:"customer_address"`
	CustomerCity    string               `db:"customer_city"`
	CustomerState   string               `db:"customer_state"`
	CustomerPincode string               `db:"customer_pincode"`
	TotalAmount     decimal.Decimal      `db:"total_amount"`
	PaymentMethod   models.PaymentMethod `db:"payment_method"`
	PaymentStatus   models.PaymentStatus `db:"payment_status"`
	OrderStatus     models.OrderStatus   `db:"order_status"`
	GatewayOrderID  string               `db:"gateway_order_id"`
	PaymentID       string               `db:"payment_id"`
	CreatedAt       time.Time            `db:"created_at"`
	UpdatedAt       time.Time            `db:"updated_at"`
}

func (r *orderRow) toModel() *models.Order {
	return &models.Order{
		ID:      r.ID,
		OrderID: r.OrderID,
		Customer: models.Customer{
			Name:    r.CustomerName,
			Email:   r.CustomerEmail,
			Phone:   r.CustomerPhone,
			Address: r.CustomerAddress,
			City:    r.CustomerCity,
			State:   r.CustomerState,
			Pincode: r.CustomerPincode,
		},
		TotalAmount:    r.TotalAmount,
		PaymentMethod:  r.PaymentMethod,
		PaymentStatus:  r.PaymentStatus,
		OrderStatus:    r.OrderStatus,
		GatewayOrderID: r.GatewayOrderID,
		PaymentID:      r.PaymentID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// CreateOrder persists an order with its items in a single transaction
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (
			order_id, customer_name, customer_email, customer_phone,
			customer_address, customer_city, customer_state, customer_pincode,
			total_amount, payment_method, payment_status, order_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		order.OrderID,
		order.Customer.Name, order.Customer.Email, order.Customer.Phone,
		order.Customer.Address, order.Customer.City, order.Customer.State, order.Customer.Pincode,
		order.TotalAmount, order.PaymentMethod, order.PaymentStatus, order.OrderStatus,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRowxContext(ctx, itemQuery,
			item.OrderID, item.ProductID, item.ProductName,
			item.Quantity, item.Price, item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

// GetOrderByOrderID retrieves an order by its public identifier
func (s *Store) GetOrderByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var row orderRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM orders WHERE order_id = $1", orderID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.loadItems(ctx, &row)
}

// GetOrderByGatewayOrderID retrieves an order by the payment gateway order id
func (s *Store) GetOrderByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	var row orderRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM orders WHERE gateway_order_id = $1", gatewayOrderID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order with gateway id %s: %w", gatewayOrderID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.loadItems(ctx, &row)
}

func (s *Store) loadItems(ctx context.Context, row *orderRow) (*models.Order, error) {
	order := row.toModel()
	err := s.db.SelectContext(ctx, &order.Items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// SetGatewayOrderID records the gateway order id on an order
func (s *Store) SetGatewayOrderID(ctx context.Context, id int64, gatewayOrderID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE orders SET gateway_order_id = $1, updated_at = NOW() WHERE id = $2",
		gatewayOrderID, id)
	return err
}

// UpdateOrderStatus overwrites the order status
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET order_status = $1, updated_at = NOW() WHERE id = $2",
		status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return nil
}

// MarkPaymentVerified records a verified payment and confirms the order
func (s *Store) MarkPaymentVerified(ctx context.Context, id int64, paymentID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE orders
		 SET payment_status = $1, payment_id = $2, order_status = $3, updated_at = NOW()
		 WHERE id = $4`,
		models.PaymentStatusPaid, paymentID, models.OrderStatusConfirmed, id)
	return err
}

// MarkPaymentFailed records a failed payment verification
func (s *Store) MarkPaymentFailed(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE id = $2",
		models.PaymentStatusFailed, id)
	return err
}
