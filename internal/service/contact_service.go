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

// ContactStore is the slice of the store the contact service needs
type ContactStore interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	GetContacts(ctx context.Context) ([]models.Contact, error)
	MarkContactRead(ctx context.Context, id int64) (*models.Contact, error)
}

// ContactService handles contact-form messages
type ContactService struct {
	store  ContactStore
	logger *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(store ContactStore) *ContactService {
	return &ContactService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// SubmitContactRequest represents a contact-form submission
type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// Submit persists a contact-form message
func (s *ContactService) Submit(ctx context.Context, req *SubmitContactRequest) (*models.Contact, error) {
	subject := req.Subject
	if subject == "" {
		subject = "General Inquiry"
	}

	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: subject,
		Message: req.Message,
	}

	if err := s.store.CreateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	util.ContactMessagesTotal.Inc()
	s.logger.Info("Contact message received",
		zap.Int64("contact_id", contact.ID),
		zap.String("subject", contact.Subject))

	return contact, nil
}

// List returns all contact messages, newest first
func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.store.GetContacts(ctx)
}

// MarkRead marks a contact message as read
func (s *ContactService) MarkRead(ctx context.Context, id int64) (*models.Contact, error) {
	contact, err := s.store.MarkContactRead(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("contact %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return contact, nil
}
