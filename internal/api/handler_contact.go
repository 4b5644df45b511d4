package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"onlinemaid-backend/internal/form"
)

// GetContactForm returns the contact form grid with the choices of every
// select field.
func (h *Handler) GetContactForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rows": form.Layout()})
}

// PostContact handles a contact form submission. Valid submissions are
// stored and queued for staff notification.
func (h *Handler) PostContact(c *gin.Context) {
	f, err := form.New(c.Request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := f.Validate(); len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	enquiry := f.ToEnquiry()
	if err := h.store.CreateContactEnquiry(c.Request.Context(), enquiry); err != nil {
		h.respondError(c, err)
		return
	}

	if h.notifier != nil {
		if err := h.notifier.Dispatch(c.Request.Context(), enquiry.ID); err != nil {
			h.logger.Warn("enquiry notification not queued", zap.Int64("enquiry_id", enquiry.ID), zap.Error(err))
		}
	}
	c.JSON(http.StatusCreated, gin.H{"id": enquiry.ID})
}
