package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"onlinemaid-backend/internal/model"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrBiodataLimit    = errors.New("agency has reached its biodata limit")
	ErrFeaturedLimit   = errors.New("agency has reached the limit of featured biodata")
	ErrEmployeeLimit   = errors.New("agency has reached the limit of employee accounts")
	ErrNotPublished    = errors.New("only published biodata can be featured")
	ErrUnknownDuty     = errors.New("unknown work duty")
	ErrUnknownCareKind = errors.New("unknown care kind")
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	CreateAgency(ctx context.Context, a *model.Agency) error
	GetAgency(ctx context.Context, id int64) (*model.Agency, error)
	DeleteAgency(ctx context.Context, id int64) error
	CreateEmployee(ctx context.Context, e *model.AgencyEmployee) error
	ListEmployees(ctx context.Context, agencyID int64) ([]model.AgencyEmployee, error)

	CreateMaid(ctx context.Context, m *model.Maid) error
	GetMaid(ctx context.Context, id int64) (*model.Maid, error)
	ListMaids(ctx context.Context, f MaidFilter) ([]model.Maid, error)
	UpdateMaid(ctx context.Context, m *model.Maid) error
	SetPublished(ctx context.Context, id int64, published bool) error
	SetFeatured(ctx context.Context, id int64, featured bool) error
	DeleteMaid(ctx context.Context, id int64) error

	SaveBiodata(ctx context.Context, b *model.MaidBiodata) error
	SaveFamilyDetails(ctx context.Context, f *model.MaidFamilyDetails) error
	SaveCare(ctx context.Context, maidID int64, kind CareKind, p model.CareProfile) error
	SaveStatus(ctx context.Context, s *model.MaidStatus) error
	AddEmploymentHistory(ctx context.Context, h *model.MaidEmploymentHistory, duties []string) error
	AddFoodHandlingPreference(ctx context.Context, maidID int64, code string) error
	AddDietaryRestriction(ctx context.Context, maidID int64, code string) error

	CreateInvoice(ctx context.Context, agencyID *int64) (*model.Invoice, error)
	ListInvoices(ctx context.Context) ([]model.Invoice, error)
	CreateContactEnquiry(ctx context.Context, e *model.ContactEnquiry) error
	GetContactEnquiry(ctx context.Context, id int64) (*model.ContactEnquiry, error)
	ListContactEnquiries(ctx context.Context, limit int) ([]model.ContactEnquiry, error)

	CreateShortlist(ctx context.Context) (*model.Shortlist, error)
	GetShortlist(ctx context.Context, token string) (*model.Shortlist, error)
	AddToShortlist(ctx context.Context, token string, maidID int64) error
	RemoveFromShortlist(ctx context.Context, token string, maidID int64) error
	SubmitShortlist(ctx context.Context, token string, e *model.ShortlistedEnquiry) error
	GetShortlistedEnquiry(ctx context.Context, id int64) (*model.ShortlistedEnquiry, error)
	ListShortlistedEnquiries(ctx context.Context, limit int) ([]model.ShortlistedEnquiry, error)

	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	ListSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// notFound maps gorm's sentinel to ErrNotFound.
func notFound(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(ErrNotFound, "%s %v", what, id)
	}
	return errors.Wrapf(err, "load %s %v", what, id)
}
