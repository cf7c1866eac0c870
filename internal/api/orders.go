package api

import (
	"errors"
	"net/http"

	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
)

// createOrder handles order creation
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Error creating order")
		return
	}

	respondData(c, http.StatusCreated, "Order created successfully", resp)
}

// getOrder handles fetching an order by its public id
func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Order not found")
		return
	}

	respondData(c, http.StatusOK, "", order)
}

// verifyPayment handles payment gateway callbacks
func (h *Handler) verifyPayment(c *gin.Context) {
	var req service.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	order, err := h.orderService.VerifyPayment(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrPaymentVerificationFailed) {
			respondError(c, http.StatusBadRequest, "Payment verification failed", nil)
			return
		}
		respondServiceError(c, err, "Error verifying payment")
		return
	}

	respondData(c, http.StatusOK, "Payment verified successfully", order)
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// updateOrderStatus handles administrative status updates
func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err, "Error updating order status")
		return
	}

	respondData(c, http.StatusOK, "Order status updated successfully", order)
}

type validateCartRequest struct {
	Items []service.OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// validateCart recomputes totals for a candidate cart without persisting
func (h *Handler) validateCart(c *gin.Context) {
	var req validateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.orderService.ValidateCart(c.Request.Context(), req.Items)
	if err != nil {
		respondServiceError(c, err, "Error validating cart")
		return
	}

	respondData(c, http.StatusOK, "", result)
}
