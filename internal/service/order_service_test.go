package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"storefront-service/internal/gateway"
	"storefront-service/internal/models"
	"storefront-service/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-key-secret"

// fakeStore is an in-memory OrderStore
type fakeStore struct {
	products       map[int64]*models.Product
	orders         []*models.Order
	nextID         int64
	createOrderErr error
}

func newFakeStore(products ...*models.Product) *fakeStore {
	fs := &fakeStore{products: make(map[int64]*models.Product)}
	for _, p := range products {
		fs.products[p.ID] = p
	}
	return fs
}

func (fs *fakeStore) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	p, ok := fs.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, store.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (fs *fakeStore) CreateOrder(_ context.Context, order *models.Order) error {
	if fs.createOrderErr != nil {
		return fs.createOrderErr
	}
	fs.nextID++
	order.ID = fs.nextID
	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	fs.orders = append(fs.orders, &cp)
	return nil
}

func (fs *fakeStore) findByID(id int64) *models.Order {
	for _, o := range fs.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (fs *fakeStore) GetOrderByOrderID(_ context.Context, orderID string) (*models.Order, error) {
	for _, o := range fs.orders {
		if o.OrderID == orderID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", orderID, store.ErrNotFound)
}

func (fs *fakeStore) GetOrderByGatewayOrderID(_ context.Context, gatewayOrderID string) (*models.Order, error) {
	for _, o := range fs.orders {
		if o.GatewayOrderID == gatewayOrderID && gatewayOrderID != "" {
			cp := *o
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("order with gateway id %s: %w", gatewayOrderID, store.ErrNotFound)
}

func (fs *fakeStore) SetGatewayOrderID(_ context.Context, id int64, gatewayOrderID string) error {
	if o := fs.findByID(id); o != nil {
		o.GatewayOrderID = gatewayOrderID
		return nil
	}
	return store.ErrNotFound
}

func (fs *fakeStore) UpdateOrderStatus(_ context.Context, id int64, status models.OrderStatus) error {
	if o := fs.findByID(id); o != nil {
		o.OrderStatus = status
		return nil
	}
	return store.ErrNotFound
}

func (fs *fakeStore) MarkPaymentVerified(_ context.Context, id int64, paymentID string) error {
	if o := fs.findByID(id); o != nil {
		o.PaymentStatus = models.PaymentStatusPaid
		o.PaymentID = paymentID
		o.OrderStatus = models.OrderStatusConfirmed
		return nil
	}
	return store.ErrNotFound
}

func (fs *fakeStore) MarkPaymentFailed(_ context.Context, id int64) error {
	if o := fs.findByID(id); o != nil {
		o.PaymentStatus = models.PaymentStatusFailed
		return nil
	}
	return store.ErrNotFound
}

// fakeGateway signs and verifies like the real client, without HTTP
type fakeGateway struct {
	createErr error
	created   []*gateway.Order
}

func (fg *fakeGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (*gateway.Order, error) {
	if fg.createErr != nil {
		return nil, fg.createErr
	}
	order := &gateway.Order{
		ID:       fmt.Sprintf("order_fake%d", len(fg.created)+1),
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}
	fg.created = append(fg.created, order)
	return order, nil
}

func (fg *fakeGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	expected := sign(gatewayOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func sign(gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// fakePublisher records published events
type fakePublisher struct {
	created       []*models.OrderCreatedEvent
	verified      []*models.PaymentVerifiedEvent
	failed        []*models.PaymentFailedEvent
	statusChanges []*models.OrderStatusChangedEvent
}

func (fp *fakePublisher) PublishOrderCreated(_ context.Context, e *models.OrderCreatedEvent) error {
	fp.created = append(fp.created, e)
	return nil
}

func (fp *fakePublisher) PublishPaymentVerified(_ context.Context, e *models.PaymentVerifiedEvent) error {
	fp.verified = append(fp.verified, e)
	return nil
}

func (fp *fakePublisher) PublishPaymentFailed(_ context.Context, e *models.PaymentFailedEvent) error {
	fp.failed = append(fp.failed, e)
	return nil
}

func (fp *fakePublisher) PublishOrderStatusChanged(_ context.Context, e *models.OrderStatusChangedEvent) error {
	fp.statusChanges = append(fp.statusChanges, e)
	return nil
}

func testProduct(id int64, name string, price int64, inStock bool) *models.Product {
	return &models.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: models.CategoryNamkeen,
		InStock:  inStock,
	}
}

func testCustomer() models.Customer {
	return models.Customer{
		Name:    "Asha Patel",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 MG Road",
		City:    "Ahmedabad",
		State:   "Gujarat",
		Pincode: "380001",
	}
}

func newTestService(fs *fakeStore) (*OrderService, *fakeGateway, *fakePublisher) {
	fg := &fakeGateway{}
	fp := &fakePublisher{}
	return NewOrderService(fs, fg, fp), fg, fp
}

func TestCreateOrderComputesTotal(t *testing.T) {
	fs := newFakeStore(
		testProduct(1, "Masala Peanuts", 120, true),
		testProduct(2, "Mathri", 80, true),
	)
	svc, _, fp := newTestService(fs)

	resp, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Customer: testCustomer(),
		Items: []OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	order := resp.Order
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(320)),
		"expected total 320, got %s", order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(120)))
	assert.True(t, order.Items[1].Price.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.NotEmpty(t, order.OrderID)
	assert.Empty(t, order.GatewayOrderID, "COD order should not open a payment intent")

	require.Len(t, fs.orders, 1)
	require.Len(t, fp.created, 1)
	assert.Equal(t, order.OrderID, fp.created[0].OrderID)
}

func TestCreateOrderCapturesPriceAtOrderTime(t *testing.T) {
	fs := newFakeStore(testProduct(1, "Kaju Katli", 450, true))
	svc, _, _ := newTestService(fs)

	resp, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Customer:      testCustomer(),
		Items:         []OrderItemRequest{{ProductID: 1, Quantity: 1}},
		PaymentMethod: models.PaymentMethodCOD,
	})
	require.NoError(t, err)

	// Catalog price changes after the order was placed.
	fs.products[1].Price = decimal.NewFromInt(500)

	persisted, err := svc.GetOrder(context.Background(), resp.Order.OrderID)
	require.NoError(t, err)
	assert.True(t, persisted.TotalAmount.Equal(decimal.NewFromInt(450)))
	assert.True(t, persisted.Items[0].Price.Equal(decimal.NewFromInt(450)))
}

func TestCreateOrderProductNotFound(t *testing.T) {
	fs := newFakeStore(testProduct(1, "Masala Peanuts", 120, true))
	svc, _, _ := newTestService(fs)

	_, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Customer: testCustomer(),
		Items: []OrderItemRequest{
			{ProductID: 1, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		},
		PaymentMethod: models.PaymentMethodCOD,
	})

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(99), notFound.ProductID)
	assert.Empty(t, fs.orders, "no partial order may be persisted")
}

func TestCreateOrderOutOfStockFailsWholeCart(t *testing.T) {
	fs := newFakeStore(
		testProduct(1, "Masala Peanuts", 120, true),
		testProduct(3, "Besan Ladoo", 280, false),
	)
	svc, _, _ := newTestService(fs)

	_, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Customer: testCustomer(),
		Items: []OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 3, Quantity: 1},
		},
		PaymentMethod: models.PaymentMethodCOD,
	})

	var outOfStock *ProductOutOfStockError
	require.ErrorAs(t, err, &outOfStock)
	assert.Equal(t, int64(3), outOfStock.ProductID)
	assert.Equal(t, "Besan Ladoo", outOfStock.Name)
	assert.Empty(t, fs.orders)
}

func TestCreateOrderFirstInvalidLineWins(t *testing.T) {
	fs := newFakeStore(testProduct(2, "Mathri", 80, false))
	svc, _, _ := newTestService(fs)

	// Line 1 references a missing product, line 2 an out-of-stock one;
	// the error must report the missing product.
	_, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Customer: testCustomer(),
		Items: []OrderItemRequest{
			{ProductID: 42, Quantity: 1},
			{ProductID: 2, Quantity: 1},
		},
		PaymentMethod: models.PaymentMethodCOD,
	})

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(42), notFound.ProductID)
}

func TestCreateOrderInvalidPaymentMethod(t *testing.T) {
	fs := newFakeStore(testProduct(1, "Masala Peanuts", 120, true))
	svc, _, _ := newTestService(fs)

	_, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Customer:      testCustomer(),
		Items:         []OrderItemRequest{{ProductID: 1, Quantity: 1}},
		PaymentMethod: "Cheque",
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, fs.orders)
}

func TestCreateOrderOnlineOpensPaymentIntent(t *testing.T) {
	fs := newFakeStore(testProduct(1, "Masala Peanuts", 120, true))
	svc, fg, _ := newTestService(fs)

	resp, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Customer:      testCustomer(),
		Items:         []OrderItemRequest{{ProductID: 1, Quantity: 2}},
		PaymentMethod: models.PaymentMethodOnline,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.GatewayOrder)

	// 240 rupees converted to paise.
	assert.Equal(t, int64(24000), resp.GatewayOrder.Amount)
	assert.Equal(t, "INR", resp.GatewayOrder.Currency)
	assert.Equal(t, resp.Order.OrderID, resp.GatewayOrder.Receipt)
	assert.Equal(t, resp.GatewayOrder.ID, resp.Order.GatewayOrderID)

	persisted := fs.findByID(resp.Order.ID)
	require.NotNil(t, persisted)
	assert.Equal(t, resp.GatewayOrder.ID, persisted.GatewayOrderID)
	require.Len(t, fg.created, 1)
}

func TestCreateOrderGatewayFailureKeepsOrder(t *testing.T) {
	fs := newFakeStore(testProduct(1, "Masala Peanuts", 120, true))
	svc, fg, _ := newTestService(fs)
	fg.createErr = errors.New("gateway unavailable")

	_, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Customer:      testCustomer(),
		Items:         []OrderItemRequest{{ProductID: 1, Quantity: 1}},
		PaymentMethod: models.PaymentMethodOnline,
	})
	require.Error(t, err)

	// The order stays persisted as Pending; only the payment intent failed.
	require.Len(t, fs.orders, 1)
	assert.Equal(t, models.PaymentStatusPending, fs.orders[0].PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, fs.orders[0].OrderStatus)
	assert.Empty(t, fs.orders[0].GatewayOrderID)
}

func createOnlineOrder(t *testing.T, svc *OrderService) *models.Order {
	t.Helper()
	resp, err := svc.CreateOrder(context.Background(), &CreateOrderRequest{
		Customer:      testCustomer(),
		Items:         []OrderItemRequest{{ProductID: 1, Quantity: 1}},
		PaymentMethod: models.PaymentMethodOnline,
	})
	require.NoError(t, err)
	return resp.Order
}

func TestVerifyPaymentSuccess(t *testing.T) {
	fs := newFakeStore(testProduct(1, "Masala Peanuts", 120, true))
	svc, _, fp := newTestService(fs)
	order := createOnlineOrder(t, svc)

	verified, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		GatewayOrderID: order.GatewayOrderID,
		PaymentID:      "pay_123",
		Signature:      sign(order.GatewayOrderID, "pay_123"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, verified.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, verified.OrderStatus)
	assert.Equal(t, "pay_123", verified.PaymentID)

	persisted := fs.findByID(order.ID)
	assert.Equal(t, models.PaymentStatusPaid, persisted.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, persisted.OrderStatus)
	require.Len(t, fp.verified, 1)
	assert.Equal(t, order.OrderID, fp.verified[0].OrderID)
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	fs := newFakeStore(testProduct(1, "Masala Peanuts", 120, true))
	svc, _, fp := newTestService(fs)
	order := createOnlineOrder(t, svc)

	verified, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		GatewayOrderID: order.GatewayOrderID,
		PaymentID:      "pay_123",
		Signature:      "deadbeef",
	})
	require.ErrorIs(t, err, ErrPaymentVerificationFailed)
	require.NotNil(t, verified)
	assert.Equal(t, models.PaymentStatusFailed, verified.PaymentStatus)

	// The order is kept, marked Failed, awaiting resolution.
	persisted := fs.findByID(order.ID)
	require.NotNil(t, persisted)
	assert.Equal(t, models.PaymentStatusFailed, persisted.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, persisted.OrderStatus)
	assert.Empty(t, persisted.PaymentID)
	require.Len(t, fp.failed, 1)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	fs := newFakeStore(testProduct(1, "Masala Peanuts", 120, true))
	svc, _, _ := newTestService(fs)
	order := createOnlineOrder(t, svc)

	_, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		GatewayOrderID: "order_unknown",
		PaymentID:      "pay_123",
		Signature:      sign("order_unknown", "pay_123"),
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// Nothing mutated.
	persisted := fs.findByID(order.ID)
	assert.Equal(t, models.PaymentStatusPending, persisted.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, persisted.OrderStatus)
}

func TestUpdateOrderStatus(t *testing.T) {
	fs := newFakeStore(testProduct(1, "Masala Peanuts", 120, true))
	svc, _, fp := newTestService(fs)
	order := createOnlineOrder(t, svc)

	updated, err := svc.UpdateOrderStatus(context.Background(), order.OrderID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.OrderStatus)
	assert.Equal(t, models.OrderStatusShipped, fs.findByID(order.ID).OrderStatus)

	// No transition graph: any status may follow any other.
	updated, err = svc.UpdateOrderStatus(context.Background(), order.OrderID, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.OrderStatus)
	require.Len(t, fp.statusChanges, 2)
	assert.Equal(t, models.OrderStatusShipped, fp.statusChanges[1].OldStatus)
}

func TestUpdateOrderStatusInvalid(t *testing.T) {
	fs := newFakeStore()
	svc, _, _ := newTestService(fs)

	_, err := svc.UpdateOrderStatus(context.Background(), "ORD1", "Teleported")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateOrderStatus(context.Background(), "ORD-missing", models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestValidateCart(t *testing.T) {
	fs := newFakeStore(
		testProduct(1, "Masala Peanuts", 120, true),
		testProduct(2, "Mathri", 80, true),
	)
	svc, _, _ := newTestService(fs)

	result, err := svc.ValidateCart(context.Background(), []OrderItemRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)

	assert.True(t, result.TotalAmount.Equal(decimal.NewFromInt(320)))
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Masala Peanuts", result.Items[0].Product.Name)
	assert.True(t, result.Items[0].Subtotal.Equal(decimal.NewFromInt(240)))
	assert.Empty(t, fs.orders, "cart validation must not persist anything")
}

func TestValidateCartRejectsOutOfStock(t *testing.T) {
	fs := newFakeStore(testProduct(3, "Besan Ladoo", 280, false))
	svc, _, _ := newTestService(fs)

	_, err := svc.ValidateCart(context.Background(), []OrderItemRequest{
		{ProductID: 3, Quantity: 1},
	})

	var outOfStock *ProductOutOfStockError
	assert.ErrorAs(t, err, &outOfStock)
}

func TestValidateCartRejectsNonPositiveQuantity(t *testing.T) {
	fs := newFakeStore(testProduct(1, "Masala Peanuts", 120, true))
	svc, _, _ := newTestService(fs)

	_, err := svc.ValidateCart(context.Background(), []OrderItemRequest{
		{ProductID: 1, Quantity: 0},
	})
	assert.ErrorIs(t, err, ErrValidation)
}
