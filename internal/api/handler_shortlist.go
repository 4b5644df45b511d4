package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"onlinemaid-backend/internal/form"
)

// shortlistToken reads the :token parameter. Anything that is not a UUID
// cannot name a shortlist.
func shortlistToken(c *gin.Context) (string, bool) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid shortlist token"})
		return "", false
	}
	return token.String(), true
}

// CreateShortlist starts an empty shortlist. The client keeps the token.
func (h *Handler) CreateShortlist(c *gin.Context) {
	sl, err := h.store.CreateShortlist(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sl)
}

// GetShortlist returns the shortlisted maids together with the enquiry form.
func (h *Handler) GetShortlist(c *gin.Context) {
	token, ok := shortlistToken(c)
	if !ok {
		return
	}
	sl, err := h.store.GetShortlist(c.Request.Context(), token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shortlist": sl, "rows": form.ShortlistLayout()})
}

func (h *Handler) AddToShortlist(c *gin.Context) {
	token, ok := shortlistToken(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.AddToShortlist(c.Request.Context(), token, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) RemoveFromShortlist(c *gin.Context) {
	token, ok := shortlistToken(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.RemoveFromShortlist(c.Request.Context(), token, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitShortlist turns the shortlist into an enquiry about its maids.
func (h *Handler) SubmitShortlist(c *gin.Context) {
	token, ok := shortlistToken(c)
	if !ok {
		return
	}
	f, err := form.NewShortlistForm(c.Request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := f.Validate(); len(errs) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	enquiry := f.ToEnquiry()
	if err := h.store.SubmitShortlist(c.Request.Context(), token, enquiry); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": enquiry.ID})
}

// ListShortlistedEnquiries handles GET <admin>/shortlisted-enquiries.
func (h *Handler) ListShortlistedEnquiries(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	enquiries, err := h.store.ListShortlistedEnquiries(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enquiries)
}

func (h *Handler) GetShortlistedEnquiry(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	e, err := h.store.GetShortlistedEnquiry(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}
