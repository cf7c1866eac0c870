package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// TestimonialStore is the slice of the store the testimonial service needs
type TestimonialStore interface {
	CreateTestimonial(ctx context.Context, t *models.Testimonial) error
	GetApprovedTestimonials(ctx context.Context) ([]models.Testimonial, error)
	GetAllTestimonials(ctx context.Context) ([]models.Testimonial, error)
	ApproveTestimonial(ctx context.Context, id int64) (*models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id int64) error
}

// TestimonialService handles customer testimonials; submissions start
// unapproved and are published by an administrator
type TestimonialService struct {
	store  TestimonialStore
	logger *zap.Logger
}

// NewTestimonialService creates a new testimonial service
func NewTestimonialService(store TestimonialStore) *TestimonialService {
	return &TestimonialService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// SubmitTestimonialRequest represents a testimonial submission
type SubmitTestimonialRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Message       string `json:"message" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	ProductID     *int64 `json:"product_id"`
}

// Submit persists a testimonial awaiting approval
func (s *TestimonialService) Submit(ctx context.Context, req *SubmitTestimonialRequest) (*models.Testimonial, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}

	t := &models.Testimonial{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Message:       req.Message,
		Rating:        req.Rating,
		ProductID:     req.ProductID,
	}

	if err := s.store.CreateTestimonial(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save testimonial: %w", err)
	}

	util.TestimonialsSubmittedTotal.Inc()
	s.logger.Info("Testimonial submitted",
		zap.Int64("testimonial_id", t.ID),
		zap.Int("rating", t.Rating))

	return t, nil
}

// ListApproved returns published testimonials
func (s *TestimonialService) ListApproved(ctx context.Context) ([]models.Testimonial, error) {
	return s.store.GetApprovedTestimonials(ctx)
}

// ListAll returns every testimonial, including unapproved ones
func (s *TestimonialService) ListAll(ctx context.Context) ([]models.Testimonial, error) {
	return s.store.GetAllTestimonials(ctx)
}

// Approve publishes a testimonial
func (s *TestimonialService) Approve(ctx context.Context, id int64) (*models.Testimonial, error) {
	t, err := s.store.ApproveTestimonial(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("testimonial %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

// Delete removes a testimonial
func (s *TestimonialService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteTestimonial(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("testimonial %d: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}
