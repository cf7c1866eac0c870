package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/gateway"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderStore is the slice of the store the order service needs
type OrderStore interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	GetOrderByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error)
	SetGatewayOrderID(ctx context.Context, id int64, gatewayOrderID string) error
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
	MarkPaymentVerified(ctx context.Context, id int64, paymentID string) error
	MarkPaymentFailed(ctx context.Context, id int64) error
}

// PaymentGateway opens payment intents and verifies callback signatures
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*gateway.Order, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// EventPublisher publishes order lifecycle events
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishPaymentVerified(ctx context.Context, event *models.PaymentVerifiedEvent) error
	PublishPaymentFailed(ctx context.Context, event *models.PaymentFailedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
}

// OrderService handles order creation, payment verification and status
// updates
type OrderService struct {
	store     OrderStore
	gateway   PaymentGateway
	publisher EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store OrderStore, gw PaymentGateway, publisher EventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		gateway:   gw,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateOrderRequest represents a submitted cart
type CreateOrderRequest struct {
	Customer      models.Customer      `json:"customer" binding:"required"`
	Items         []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
}

// OrderItemRequest represents one requested cart line
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CreateOrderResponse carries the persisted order plus the gateway
// payment intent for online payments
type CreateOrderResponse struct {
	Order        *models.Order  `json:"order"`
	GatewayOrder *gateway.Order `json:"gateway_order,omitempty"`
}

// CreateOrder validates the cart against the live catalog, persists the
// order and, for online payment, opens a gateway payment intent.
//
// Every line is validated before anything is written; the first invalid
// line (in request order) fails the whole request and no order is
// persisted. If the gateway call fails after the order was written, the
// order stays persisted as Pending and the error is surfaced.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if !req.PaymentMethod.Valid() {
		util.OrdersFailedTotal.WithLabelValues("invalid_payment_method").Inc()
		return nil, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, ErrValidation)
	}

	items, _, total, err := s.validateItems(ctx, req.Items)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("invalid_items").Inc()
		return nil, err
	}

	order := &models.Order{
		OrderID:       models.NewOrderID(),
		Customer:      req.Customer,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		OrderStatus:   models.OrderStatusPending,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.WithLabelValues(string(order.PaymentMethod)).Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.OrderID),
		zap.String("total_amount", order.TotalAmount.String()),
		zap.String("payment_method", string(order.PaymentMethod)))

	s.publishOrderCreated(ctx, order)

	resp := &CreateOrderResponse{Order: order}

	if order.PaymentMethod == models.PaymentMethodOnline {
		gwOrder, err := s.openPaymentIntent(ctx, order)
		if err != nil {
			// The order stays persisted as Pending; the customer can
			// resubmit payment or fall back to COD.
			return nil, err
		}
		resp.GatewayOrder = gwOrder
	}

	return resp, nil
}

// openPaymentIntent creates the gateway order for the computed total and
// records its id on the persisted order
func (s *OrderService) openPaymentIntent(ctx context.Context, order *models.Order) (*gateway.Order, error) {
	start := time.Now()
	defer func() {
		util.GatewayOrderLatency.Observe(time.Since(start).Seconds())
	}()

	// The gateway expects the smallest currency unit (paise).
	amountMinor := order.TotalAmount.Mul(decimal.NewFromInt(100)).IntPart()

	gwOrder, err := s.gateway.CreateOrder(ctx, amountMinor, "INR", order.OrderID)
	if err != nil {
		util.GatewayOrderFailuresTotal.Inc()
		s.logger.Error("Gateway order creation failed",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	if err := s.store.SetGatewayOrderID(ctx, order.ID, gwOrder.ID); err != nil {
		return nil, fmt.Errorf("failed to record gateway order id: %w", err)
	}
	order.GatewayOrderID = gwOrder.ID

	return gwOrder, nil
}

// VerifyPaymentRequest represents a payment gateway callback
type VerifyPaymentRequest struct {
	GatewayOrderID string `json:"gateway_order_id" binding:"required"`
	PaymentID      string `json:"payment_id" binding:"required"`
	Signature      string `json:"signature" binding:"required"`
}

// VerifyPayment checks a gateway callback signature and transitions the
// order. A valid signature marks the order Paid/Confirmed; an invalid
// one marks the payment Failed and returns ErrPaymentVerificationFailed.
// The order is never deleted.
func (s *OrderService) VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.VerifyPayment")
	defer span.End()

	order, err := s.store.GetOrderByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.PaymentID, req.Signature) {
		if err := s.store.MarkPaymentFailed(ctx, order.ID); err != nil {
			return nil, fmt.Errorf("failed to record failed payment: %w", err)
		}
		order.PaymentStatus = models.PaymentStatusFailed

		util.PaymentVerificationFailedTotal.Inc()
		s.logger.Warn("Payment verification failed",
			zap.String("order_id", order.OrderID),
			zap.String("gateway_order_id", req.GatewayOrderID))

		s.publishPaymentFailed(ctx, order, "signature mismatch")
		return order, ErrPaymentVerificationFailed
	}

	if err := s.store.MarkPaymentVerified(ctx, order.ID, req.PaymentID); err != nil {
		return nil, fmt.Errorf("failed to record verified payment: %w", err)
	}
	order.PaymentStatus = models.PaymentStatusPaid
	order.OrderStatus = models.OrderStatusConfirmed
	order.PaymentID = req.PaymentID

	util.PaymentsVerifiedTotal.Inc()
	s.logger.Info("Payment verified",
		zap.String("order_id", order.OrderID),
		zap.String("payment_id", req.PaymentID))

	s.publishPaymentVerified(ctx, order)
	return order, nil
}

// GetOrder retrieves an order by its public identifier
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.store.GetOrderByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus overwrites the order status. Any status from the
// closed set may follow any other; no transition graph is enforced.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown order status %q: %w", status, ErrValidation)
	}

	order, err := s.store.GetOrderByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.store.UpdateOrderStatus(ctx, order.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	oldStatus := order.OrderStatus
	order.OrderStatus = status

	s.logger.Info("Order status updated",
		zap.String("order_id", order.OrderID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(status)))

	s.publishStatusChanged(ctx, order, oldStatus)
	return order, nil
}

// CartItem is one validated cart line, enriched with product details
type CartItem struct {
	Product  CartProduct     `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartProduct is the product summary returned with a validated cart line
type CartProduct struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Image string          `json:"image"`
	Price decimal.Decimal `json:"price"`
}

// CartValidation is the result of validating a candidate cart
type CartValidation struct {
	Items       []CartItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ValidateCart recomputes totals for a candidate cart against the live
// catalog without persisting anything
func (s *OrderService) ValidateCart(ctx context.Context, items []OrderItemRequest) (*CartValidation, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ValidateCart")
	defer span.End()

	lines, products, total, err := s.validateItems(ctx, items)
	if err != nil {
		util.CartValidationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	cartItems := make([]CartItem, len(lines))
	for i, line := range lines {
		cartItems[i] = CartItem{
			Product: CartProduct{
				ID:    products[i].ID,
				Name:  products[i].Name,
				Image: products[i].Image,
				Price: products[i].Price,
			},
			Quantity: line.Quantity,
			Price:    line.Price,
			Subtotal: line.Subtotal,
		}
	}

	util.CartValidationsTotal.WithLabelValues("ok").Inc()
	return &CartValidation{Items: cartItems, TotalAmount: total}, nil
}

// validateItems checks every requested line against the catalog, in
// request order, and captures current prices. The first invalid line
// fails the whole request.
func (s *OrderService) validateItems(ctx context.Context, items []OrderItemRequest) ([]models.OrderItem, []*models.Product, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, nil, decimal.Zero, fmt.Errorf("cart is empty: %w", ErrValidation)
	}

	lines := make([]models.OrderItem, 0, len(items))
	products := make([]*models.Product, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, nil, decimal.Zero, fmt.Errorf("quantity for product %d must be positive: %w", item.ProductID, ErrValidation)
		}

		product, err := s.store.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, nil, decimal.Zero, &ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, nil, decimal.Zero, fmt.Errorf("failed to look up product %d: %w", item.ProductID, err)
		}

		if !product.InStock {
			return nil, nil, decimal.Zero, &ProductOutOfStockError{ProductID: product.ID, Name: product.Name}
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)

		lines = append(lines, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
			Subtotal:    subtotal,
		})
		products = append(products, product)
	}

	return lines, products, total, nil
}

// Publisher failures are logged, never surfaced; events are advisory.

func (s *OrderService) publishOrderCreated(ctx context.Context, order *models.Order) {
	event := &models.OrderCreatedEvent{
		BaseEvent:     newBaseEvent(models.EventTypeOrderCreated),
		OrderID:       order.OrderID,
		CustomerEmail: order.Customer.Email,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		ItemCount:     len(order.Items),
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}
}

func (s *OrderService) publishPaymentVerified(ctx context.Context, order *models.Order) {
	event := &models.PaymentVerifiedEvent{
		BaseEvent:     newBaseEvent(models.EventTypePaymentVerified),
		OrderID:       order.OrderID,
		CustomerEmail: order.Customer.Email,
		PaymentID:     order.PaymentID,
		Amount:        order.TotalAmount,
	}
	if err := s.publisher.PublishPaymentVerified(ctx, event); err != nil {
		s.logger.Error("Failed to publish PaymentVerified event", zap.Error(err))
	}
}

func (s *OrderService) publishPaymentFailed(ctx context.Context, order *models.Order, reason string) {
	event := &models.PaymentFailedEvent{
		BaseEvent:     newBaseEvent(models.EventTypePaymentFailed),
		OrderID:       order.OrderID,
		CustomerEmail: order.Customer.Email,
		Reason:        reason,
	}
	if err := s.publisher.PublishPaymentFailed(ctx, event); err != nil {
		s.logger.Error("Failed to publish PaymentFailed event", zap.Error(err))
	}
}

func (s *OrderService) publishStatusChanged(ctx context.Context, order *models.Order, oldStatus models.OrderStatus) {
	event := &models.OrderStatusChangedEvent{
		BaseEvent:     newBaseEvent(models.EventTypeOrderStatusChanged),
		OrderID:       order.OrderID,
		CustomerEmail: order.Customer.Email,
		OldStatus:     oldStatus,
		NewStatus:     order.OrderStatus,
	}
	if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}
