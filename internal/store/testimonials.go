package store

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-service/internal/models"
)

// CreateTestimonial persists a testimonial, unapproved by default
func (s *Store) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	query := `
		INSERT INTO testimonials (customer_name, customer_email, customer_phone, message, rating, product_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_approved, created_at, updated_at`

	return s.db.QueryRowxContext(ctx, query,
		t.CustomerName, t.CustomerEmail, t.CustomerPhone, t.Message, t.Rating, t.ProductID,
	).Scan(&t.ID, &t.IsApproved, &t.CreatedAt, &t.UpdatedAt)
}

// GetApprovedTestimonials retrieves published testimonials, newest first
func (s *Store) GetApprovedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := s.db.SelectContext(ctx, &testimonials,
		"SELECT * FROM testimonials WHERE is_approved ORDER BY created_at DESC")
	return testimonials, err
}

// GetAllTestimonials retrieves every testimonial, newest first
func (s *Store) GetAllTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := s.db.SelectContext(ctx, &testimonials,
		"SELECT * FROM testimonials ORDER BY created_at DESC")
	return testimonials, err
}

// ApproveTestimonial publishes a testimonial
func (s *Store) ApproveTestimonial(ctx context.Context, id int64) (*models.Testimonial, error) {
	var t models.Testimonial
	err := s.db.GetContext(ctx, &t,
		"UPDATE testimonials SET is_approved = TRUE, updated_at = NOW() WHERE id = $1 RETURNING *", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("testimonial %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTestimonial removes a testimonial
func (s *Store) DeleteTestimonial(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("testimonial %d: %w", id, ErrNotFound)
	}
	return nil
}
