package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"onlinemaid-backend/internal/export"
	"onlinemaid-backend/internal/migration"
	"onlinemaid-backend/internal/migration/history"
	"onlinemaid-backend/internal/model"
	"onlinemaid-backend/internal/parse"
)

// ListEnquiries returns the newest contact enquiries.
func (h *Handler) ListEnquiries(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	enquiries, err := h.store.ListContactEnquiries(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enquiries)
}

// exportLimit caps the rows of an enquiry export without a limit parameter.
const exportLimit = 10000

// ExportEnquiries downloads the newest enquiries as a spreadsheet.
func (h *Handler) ExportEnquiries(c *gin.Context) {
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	if limit == 0 {
		limit = exportLimit
	}
	enquiries, err := h.store.ListContactEnquiries(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	data, err := export.Enquiries(enquiries)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="enquiries.xlsx"`)
	c.Data(http.StatusOK, export.XLSXContentType, data)
}

func (h *Handler) GetEnquiry(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	e, err := h.store.GetContactEnquiry(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) ListInvoices(c *gin.Context) {
	invoices, err := h.store.ListInvoices(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

type createInvoiceRequest struct {
	AgencyID *int64 `json:"agency_id"`
}

// CreateInvoice opens an invoice. The agency is optional.
func (h *Handler) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	inv, err := h.store.CreateInvoice(c.Request.Context(), req.AgencyID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

type createAgencyRequest struct {
	Name                           string  `json:"name" binding:"required,max=100"`
	LicenseNumber                  string  `json:"license_number" binding:"required,max=100"`
	WebsiteURI                     *string `json:"website_uri" binding:"omitempty,url,max=100"`
	Profile                        string  `json:"profile"`
	Services                       string  `json:"services"`
	AmountOfBiodataAllowed         int     `json:"amount_of_biodata_allowed"`
	AmountOfFeaturedBiodataAllowed int     `json:"amount_of_featured_biodata_allowed"`
	AmountOfEmployeesAllowed       int     `json:"amount_of_employees_allowed"`
	Active                         *bool   `json:"active"`
}

func (h *Handler) CreateAgency(c *gin.Context) {
	var req createAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a := &model.Agency{
		Name:                           req.Name,
		LicenseNumber:                  req.LicenseNumber,
		WebsiteURI:                     req.WebsiteURI,
		Profile:                        req.Profile,
		Services:                       req.Services,
		AmountOfBiodataAllowed:         req.AmountOfBiodataAllowed,
		AmountOfFeaturedBiodataAllowed: req.AmountOfFeaturedBiodataAllowed,
		AmountOfEmployeesAllowed:       req.AmountOfEmployeesAllowed,
		Active:                         lo.FromPtrOr(req.Active, true),
	}
	if err := h.store.CreateAgency(c.Request.Context(), a); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAgency(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	a, err := h.store.GetAgency(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAgency removes an agency with its maids and employees. Its invoices
// are kept, detached from the agency.
func (h *Handler) DeleteAgency(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteAgency(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.cache.Purge(maidsPath)
	c.Status(http.StatusNoContent)
}

type employeeResponse struct {
	model.AgencyEmployee
	DisplayEmail string `json:"display_email"`
}

// ListEmployees lists an agency's employees. Synthetic addresses on the
// internal domain are blanked in display_email.
func (h *Handler) ListEmployees(c *gin.Context) {
	agencyID, ok := idParam(c, "id")
	if !ok {
		return
	}
	employees, err := h.store.ListEmployees(c.Request.Context(), agencyID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := lo.Map(employees, func(e model.AgencyEmployee, _ int) employeeResponse {
		shown, err := parse.AgencyEmployeeEmail(e.Email, h.cfg.Agency.EmployeeFEP)
		if err != nil {
			h.logger.Warn("employee email", zap.Int64("employee_id", e.ID), zap.Error(err))
		}
		return employeeResponse{AgencyEmployee: e, DisplayEmail: shown}
	})
	c.JSON(http.StatusOK, out)
}

type createEmployeeRequest struct {
	Name              string `json:"name" binding:"required,max=255"`
	ContactNumber     string `json:"contact_number" binding:"required,max=50"`
	EAPersonnelNumber string `json:"ea_personnel_number" binding:"max=50"`
	Email             string `json:"email" binding:"omitempty,email,max=254"`
	Role              string `json:"role"`
}

// CreateEmployee adds an employee account. Employees without a mailbox get
// a synthetic address built from their personnel number.
func (h *Handler) CreateEmployee(c *gin.Context) {
	agencyID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e := model.NewAgencyEmployee(agencyID)
	e.Name = req.Name
	e.ContactNumber = req.ContactNumber
	if req.EAPersonnelNumber != "" {
		e.EAPersonnelNumber = req.EAPersonnelNumber
	}
	if req.Role != "" {
		e.Role = req.Role
	}
	e.Email = req.Email
	if e.Email == "" {
		email, err := parse.PersonnelEmail(e.EAPersonnelNumber, h.cfg.Agency.EmployeeFEP)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e.Email = email
	}

	if err := h.store.CreateEmployee(c.Request.Context(), &e); err != nil {
		h.respondError(c, err)
		return
	}
	shown, _ := parse.AgencyEmployeeEmail(e.Email, h.cfg.Agency.EmployeeFEP)
	c.JSON(http.StatusCreated, employeeResponse{AgencyEmployee: e, DisplayEmail: shown})
}

// MigrationStatus lists every step of the migration history with its
// applied marker.
func (h *Handler) MigrationStatus(c *gin.Context) {
	runner, err := migration.NewRunner(h.store.DB(), h.logger)
	if err != nil {
		h.respondError(c, err)
		return
	}
	status, err := runner.Status(c.Request.Context(), history.All())
	if err != nil {
		h.respondError(c, err)
		return
	}
	pending := lo.CountBy(status, func(s migration.Status) bool { return !s.Applied })
	c.JSON(http.StatusOK, gin.H{"steps": status, "pending": pending})
}
