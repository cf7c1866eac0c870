package api

import (
	"net/http"

	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
)

// submitContact handles contact-form submissions
func (h *Handler) submitContact(c *gin.Context) {
	var req service.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Error submitting contact form", err)
		return
	}

	contact, err := h.contactService.Submit(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Error submitting contact form")
		return
	}

	respondData(c, http.StatusCreated, "Thank you for your message! We will get back to you soon.", contact)
}

// listContacts handles the admin listing of contact messages
func (h *Handler) listContacts(c *gin.Context) {
	contacts, err := h.contactService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Error fetching contact messages")
		return
	}

	respondList(c, len(contacts), contacts)
}

// markContactRead handles marking a contact message as read
func (h *Handler) markContactRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	contact, err := h.contactService.MarkRead(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Contact message not found")
		return
	}

	respondData(c, http.StatusOK, "Contact marked as read", contact)
}
