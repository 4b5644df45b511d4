package api

import (
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"onlinemaid-backend/internal/model"
	"onlinemaid-backend/internal/store"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrBiodataLimit),
		errors.Is(err, store.ErrFeaturedLimit),
		errors.Is(err, store.ErrEmployeeLimit),
		errors.Is(err, store.ErrNotPublished),
		errors.Is(err, store.ErrNotShortlistable),
		errors.Is(err, store.ErrAlreadyShortlisted),
		errors.Is(err, store.ErrNotShortlisted),
		errors.Is(err, store.ErrEmptyShortlist):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidChoice),
		errors.Is(err, model.ErrNegative),
		errors.Is(err, model.ErrInvalidRange),
		errors.Is(err, model.ErrInvalidContact),
		errors.Is(err, store.ErrUnknownDuty),
		errors.Is(err, store.ErrUnknownCareKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": ...}. Internal errors are logged and
// their text is not sent to the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}
