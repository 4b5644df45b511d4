package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"onlinemaid-backend/internal/model"
	"onlinemaid-backend/internal/store"
)

// maidsPath is the cache key prefix of the public listing.
const maidsPath = "/api/maids"

func maidFilter(c *gin.Context) (store.MaidFilter, bool) {
	var f store.MaidFilter
	if raw := c.Query("agency_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid agency_id"})
			return f, false
		}
		f.AgencyID = id
	}
	f.MaidType = c.Query("maid_type")
	if raw := c.Query("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid featured"})
			return f, false
		}
		f.Featured = lo.ToPtr(v)
	}
	var ok bool
	if f.Limit, ok = intQuery(c, "limit"); !ok {
		return f, false
	}
	if f.Offset, ok = intQuery(c, "offset"); !ok {
		return f, false
	}
	return f, true
}

// ListMaids handles GET /api/maids. Only published biodata is listed;
// featured maids come first.
func (h *Handler) ListMaids(c *gin.Context) {
	f, ok := maidFilter(c)
	if !ok {
		return
	}
	f.Published = lo.ToPtr(true)

	maids, err := h.store.ListMaids(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, maids)
}

// GetMaid handles GET /api/maids/:id. Unpublished biodata is not found.
func (h *Handler) GetMaid(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	m, err := h.store.GetMaid(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !m.Published {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "maid not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// AdminListMaids lists biodata regardless of publication.
func (h *Handler) AdminListMaids(c *gin.Context) {
	f, ok := maidFilter(c)
	if !ok {
		return
	}
	if raw := c.Query("published"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid published"})
			return
		}
		f.Published = lo.ToPtr(v)
	}
	maids, err := h.store.ListMaids(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, maids)
}

type createMaidRequest struct {
	ReferenceNumber     string `json:"reference_number" binding:"required,max=255"`
	MaidType            string `json:"maid_type"`
	Salary              int    `json:"salary"`
	LoanAmount          int    `json:"loan_amount"`
	DaysOff             int    `json:"days_off"`
	PassportStatus      bool   `json:"passport_status"`
	RepatriationAirport string `json:"repatriation_airport"`
	Remarks             string `json:"remarks"`
}

// CreateMaid handles POST /admin/agencies/:id/maids.
func (h *Handler) CreateMaid(c *gin.Context) {
	agencyID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req createMaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := model.NewMaid(agencyID)
	m.ReferenceNumber = req.ReferenceNumber
	if req.MaidType != "" {
		m.MaidType = req.MaidType
	}
	m.Salary = req.Salary
	m.LoanAmount = req.LoanAmount
	m.DaysOff = req.DaysOff
	m.PassportStatus = req.PassportStatus
	m.RepatriationAirport = req.RepatriationAirport
	m.Remarks = req.Remarks

	if err := h.store.CreateMaid(c.Request.Context(), &m); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

type toggleRequest struct {
	Value *bool `json:"value" binding:"required"`
}

func (h *Handler) toggle(c *gin.Context, set func(id int64, v bool) error) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := set(id, *req.Value); err != nil {
		h.respondError(c, err)
		return
	}
	h.cache.Purge(maidsPath)
	c.Status(http.StatusNoContent)
}

// SetPublished handles PUT /admin/maids/:id/published.
func (h *Handler) SetPublished(c *gin.Context) {
	h.toggle(c, func(id int64, v bool) error {
		return h.store.SetPublished(c.Request.Context(), id, v)
	})
}

// SetFeatured handles PUT /admin/maids/:id/featured.
func (h *Handler) SetFeatured(c *gin.Context) {
	h.toggle(c, func(id int64, v bool) error {
		return h.store.SetFeatured(c.Request.Context(), id, v)
	})
}

func (h *Handler) DeleteMaid(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteMaid(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.cache.Purge(maidsPath)
	c.Status(http.StatusNoContent)
}
