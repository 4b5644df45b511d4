package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"onlinemaid-backend/internal/model"
)

func (s *gormStore) CreateAgency(ctx context.Context, a *model.Agency) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return errors.Wrap(err, "create agency")
	}
	return nil
}

func (s *gormStore) GetAgency(ctx context.Context, id int64) (*model.Agency, error) {
	var a model.Agency
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, notFound(err, "agency", id)
	}
	return &a, nil
}

// DeleteAgency removes an agency together with its maids and employees.
// Invoices are kept with their agency reference cleared.
func (s *gormStore) DeleteAgency(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Agency{}, id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete agency %d", id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "agency %d", id)
	}
	return nil
}

// CreateEmployee adds a staff account within the agency's employee allowance.
func (s *gormStore) CreateEmployee(ctx context.Context, e *model.AgencyEmployee) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.Agency
		if err := tx.First(&a, e.AgencyID).Error; err != nil {
			return notFound(err, "agency", e.AgencyID)
		}
		if a.AmountOfEmployees >= a.AmountOfEmployeesAllowed {
			return errors.Wrapf(ErrEmployeeLimit, "agency %d allows %d", a.ID, a.AmountOfEmployeesAllowed)
		}
		if err := tx.Create(e).Error; err != nil {
			return errors.Wrap(err, "create employee")
		}
		return refreshEmployeeCount(tx, a.ID)
	})
}

func (s *gormStore) ListEmployees(ctx context.Context, agencyID int64) ([]model.AgencyEmployee, error) {
	var out []model.AgencyEmployee
	err := s.db.WithContext(ctx).
		Where("agency_id = ? AND deleted = ?", agencyID, false).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list employees of agency %d", agencyID)
	}
	return out, nil
}

func refreshEmployeeCount(tx *gorm.DB, agencyID int64) error {
	var n int64
	if err := tx.Model(&model.AgencyEmployee{}).
		Where("agency_id = ? AND deleted = ?", agencyID, false).
		Count(&n).Error; err != nil {
		return errors.Wrap(err, "count employees")
	}
	return tx.Model(&model.Agency{}).Where("id = ?", agencyID).
		UpdateColumn("amount_of_employees", n).Error
}

// refreshBiodataCounts recomputes the agency's maid counters from the rows
// themselves so they cannot drift.
func refreshBiodataCounts(tx *gorm.DB, agencyID int64) error {
	var total, featured int64
	if err := tx.Model(&model.Maid{}).Where("agency_id = ?", agencyID).Count(&total).Error; err != nil {
		return errors.Wrap(err, "count maids")
	}
	if err := tx.Model(&model.Maid{}).Where("agency_id = ? AND featured = ?", agencyID, true).Count(&featured).Error; err != nil {
		return errors.Wrap(err, "count featured maids")
	}
	err := tx.Model(&model.Agency{}).Where("id = ?", agencyID).UpdateColumns(map[string]any{
		"amount_of_biodata":          total,
		"amount_of_featured_biodata": featured,
	}).Error
	return errors.Wrap(err, "update agency counters")
}
