package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/service"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	orderService       *service.OrderService
	catalogService     *service.CatalogService
	contactService     *service.ContactService
	testimonialService *service.TestimonialService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	orderService *service.OrderService,
	catalogService *service.CatalogService,
	contactService *service.ContactService,
	testimonialService *service.TestimonialService,
) *Handler {
	return &Handler{
		orderService:       orderService,
		catalogService:     catalogService,
		contactService:     contactService,
		testimonialService: testimonialService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/orders", h.createOrder)
		api.GET("/orders/:id", h.getOrder)
		api.POST("/orders/verify-payment", h.verifyPayment)
		api.PUT("/orders/:id/status", h.updateOrderStatus)

		api.POST("/cart/validate", h.validateCart)

		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)

		api.POST("/contact", h.submitContact)
		api.GET("/contact", h.listContacts)
		api.PUT("/contact/:id/read", h.markContactRead)

		api.GET("/testimonials", h.listTestimonials)
		api.POST("/testimonials", h.submitTestimonial)
		api.GET("/testimonials/all", h.listAllTestimonials)
		api.PUT("/testimonials/:id/approve", h.approveTestimonial)
		api.DELETE("/testimonials/:id", h.deleteTestimonial)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// respondData writes a success envelope
func respondData(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// respondList writes a success envelope with a count, matching the
// listing endpoints' shape
func respondList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

// respondError writes a failure envelope
func respondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"success": false, "message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// respondServiceError maps the service error taxonomy onto HTTP
// statuses: business-rule violations and validation failures are 400,
// lookup misses are 404, everything else is 500.
func respondServiceError(c *gin.Context, err error, message string) {
	var notFound *service.ProductNotFoundError
	var outOfStock *service.ProductOutOfStockError

	switch {
	case errors.As(err, &notFound) || errors.As(err, &outOfStock) || errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, message, err)
	case errors.Is(err, service.ErrOrderNotFound) || errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, message, err)
	default:
		respondError(c, http.StatusInternalServerError, message, err)
	}
}

// pathID parses the numeric :id path parameter
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
