package store

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-service/internal/models"
)

// CreateContact persists a contact-form message
func (s *Store) CreateContact(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, created_at, updated_at`

	return s.db.QueryRowxContext(ctx, query,
		contact.Name, contact.Email, contact.Phone, contact.Subject, contact.Message,
	).Scan(&contact.ID, &contact.IsRead, &contact.CreatedAt, &contact.UpdatedAt)
}

// GetContacts retrieves all contact messages, newest first
func (s *Store) GetContacts(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	err := s.db.SelectContext(ctx, &contacts,
		"SELECT * FROM contacts ORDER BY created_at DESC")
	return contacts, err
}

// MarkContactRead marks a contact message as read
func (s *Store) MarkContactRead(ctx context.Context, id int64) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.GetContext(ctx, &contact,
		"UPDATE contacts SET is_read = TRUE, updated_at = NOW() WHERE id = $1 RETURNING *", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("contact %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}
