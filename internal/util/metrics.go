package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	}, []string{"payment_method"})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of rejected order submissions",
	}, []string{"reason"})

	PaymentsVerifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_verified_total",
		Help: "Total number of payment callbacks that passed signature verification",
	})

	PaymentVerificationFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_verification_failed_total",
		Help: "Total number of payment callbacks with an invalid signature",
	})

	GatewayOrderLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gateway_order_latency_seconds",
		Help:    "Latency of payment gateway order creation",
		Buckets: prometheus.DefBuckets,
	})

	GatewayOrderFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_order_failures_total",
		Help: "Total number of failed payment gateway order creations",
	})

	CartValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_validations_total",
		Help: "Total number of cart validation requests",
	}, []string{"result"})

	ContactMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contact_messages_total",
		Help: "Total number of contact messages submitted",
	})

	TestimonialsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "testimonials_submitted_total",
		Help: "Total number of testimonials submitted",
	})

	CatalogCacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Catalog cache lookups by outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
