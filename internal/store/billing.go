package store

import (
	"context"

	"github.com/cockroachdb/errors"

	"onlinemaid-backend/internal/model"
)

// CreateInvoice opens an invoice, optionally billed to an agency.
func (s *gormStore) CreateInvoice(ctx context.Context, agencyID *int64) (*model.Invoice, error) {
	inv := model.Invoice{AgencyID: agencyID}
	if err := s.db.WithContext(ctx).Create(&inv).Error; err != nil {
		return nil, errors.Wrap(err, "create invoice")
	}
	return &inv, nil
}

func (s *gormStore) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	var out []model.Invoice
	if err := s.db.WithContext(ctx).Order("created_on DESC, id DESC").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list invoices")
	}
	return out, nil
}

func (s *gormStore) CreateContactEnquiry(ctx context.Context, e *model.ContactEnquiry) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return errors.Wrap(err, "create contact enquiry")
	}
	return nil
}

func (s *gormStore) GetContactEnquiry(ctx context.Context, id int64) (*model.ContactEnquiry, error) {
	var e model.ContactEnquiry
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, notFound(err, "contact enquiry", id)
	}
	return &e, nil
}

// ListContactEnquiries returns the newest enquiries first.
func (s *gormStore) ListContactEnquiries(ctx context.Context, limit int) ([]model.ContactEnquiry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []model.ContactEnquiry
	if err := s.db.WithContext(ctx).Order("created_on DESC, id DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list contact enquiries")
	}
	return out, nil
}
