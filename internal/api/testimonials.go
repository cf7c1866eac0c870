package api

import (
	"net/http"

	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
)

// listTestimonials returns approved testimonials
func (h *Handler) listTestimonials(c *gin.Context) {
	testimonials, err := h.testimonialService.ListApproved(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Error fetching testimonials")
		return
	}

	respondList(c, len(testimonials), testimonials)
}

// submitTestimonial handles testimonial submissions
func (h *Handler) submitTestimonial(c *gin.Context) {
	var req service.SubmitTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Error submitting testimonial", err)
		return
	}

	testimonial, err := h.testimonialService.Submit(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Error submitting testimonial")
		return
	}

	respondData(c, http.StatusCreated, "Thank you for your testimonial! It will be reviewed and published soon.", testimonial)
}

// listAllTestimonials returns every testimonial, for administrators
func (h *Handler) listAllTestimonials(c *gin.Context) {
	testimonials, err := h.testimonialService.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Error fetching testimonials")
		return
	}

	respondList(c, len(testimonials), testimonials)
}

// approveTestimonial publishes a testimonial
func (h *Handler) approveTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	testimonial, err := h.testimonialService.Approve(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Testimonial not found")
		return
	}

	respondData(c, http.StatusOK, "Testimonial approved successfully", testimonial)
}

// deleteTestimonial removes a testimonial
func (h *Handler) deleteTestimonial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.testimonialService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Testimonial not found")
		return
	}

	respondData(c, http.StatusOK, "Testimonial deleted successfully", nil)
}
