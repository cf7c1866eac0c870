package worker

import (
	"context"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// NotificationWorker consumes order events and notifies customers.
// Delivery is currently log-only; a mail provider slots in behind
// the handle* methods.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderCreated(w.handleOrderCreated)
	eventHandler.OnPaymentVerified(w.handlePaymentVerified)
	eventHandler.OnPaymentFailed(w.handlePaymentFailed)
	eventHandler.OnOrderStatusChanged(w.handleOrderStatusChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts consuming order events
func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	w.logger.Info("Stopping notification worker")
	return w.consumer.Close()
}

func (w *NotificationWorker) handleOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	w.logger.Info("Sending order acknowledgement",
		zap.String("order_id", event.OrderID),
		zap.String("customer_email", event.CustomerEmail),
		zap.String("total_amount", event.TotalAmount.String()))
	return nil
}

func (w *NotificationWorker) handlePaymentVerified(ctx context.Context, event *models.PaymentVerifiedEvent) error {
	w.logger.Info("Sending payment receipt",
		zap.String("order_id", event.OrderID),
		zap.String("customer_email", event.CustomerEmail),
		zap.String("payment_id", event.PaymentID))
	return nil
}

func (w *NotificationWorker) handlePaymentFailed(ctx context.Context, event *models.PaymentFailedEvent) error {
	w.logger.Warn("Sending payment failure notice",
		zap.String("order_id", event.OrderID),
		zap.String("customer_email", event.CustomerEmail),
		zap.String("reason", event.Reason))
	return nil
}

func (w *NotificationWorker) handleOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	w.logger.Info("Sending order status update",
		zap.String("order_id", event.OrderID),
		zap.String("customer_email", event.CustomerEmail),
		zap.String("new_status", string(event.NewStatus)))
	return nil
}
