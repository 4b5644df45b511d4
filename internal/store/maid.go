package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"onlinemaid-backend/internal/model"
)

// CreateMaid stores a new maid together with empty one-to-one sections and
// refreshes the agency counters. The agency must have biodata allowance left.
func (s *gormStore) CreateMaid(ctx context.Context, m *model.Maid) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.Agency
		if err := tx.First(&a, m.AgencyID).Error; err != nil {
			return notFound(err, "agency", m.AgencyID)
		}
		if a.AmountOfBiodataAllowed == 0 || a.AmountOfBiodata >= a.AmountOfBiodataAllowed {
			return errors.Wrapf(ErrBiodataLimit, "agency %d allows %d", a.ID, a.AmountOfBiodataAllowed)
		}
		// featuring goes through SetFeatured and its allowance check
		m.Featured = false
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return errors.Wrap(err, "create maid")
		}

		sections := []any{
			&model.MaidBiodata{MaidID: m.ID},
			&model.MaidFamilyDetails{MaidID: m.ID},
			&model.MaidStatus{MaidID: m.ID},
			&model.MaidInfantChildCare{MaidID: m.ID, CareProfile: model.DefaultCareProfile()},
			&model.MaidElderlyCare{MaidID: m.ID, CareProfile: model.DefaultCareProfile()},
			&model.MaidDisabledCare{MaidID: m.ID, CareProfile: model.DefaultCareProfile()},
			&model.MaidGeneralHousework{MaidID: m.ID, CareProfile: model.DefaultCareProfile()},
			&model.MaidCooking{MaidID: m.ID, CareProfile: model.DefaultCareProfile()},
		}
		for _, sec := range sections {
			if err := tx.Create(sec).Error; err != nil {
				return errors.Wrapf(err, "create section %T", sec)
			}
		}
		return refreshBiodataCounts(tx, m.AgencyID)
	})
}

func (s *gormStore) GetMaid(ctx context.Context, id int64) (*model.Maid, error) {
	var m model.Maid
	err := s.db.WithContext(ctx).
		Preload("Biodata").
		Preload("FamilyDetails").
		Preload("Status").
		Preload("InfantChildCare").
		Preload("ElderlyCare").
		Preload("DisabledCare").
		Preload("GeneralHousework").
		Preload("Cooking").
		Preload("EmploymentHistory", func(db *gorm.DB) *gorm.DB { return db.Order("start_date") }).
		Preload("EmploymentHistory.WorkDuties").
		Preload("FoodHandlingPreferences").
		Preload("DietaryRestrictions").
		First(&m, id).Error
	if err != nil {
		return nil, notFound(err, "maid", id)
	}
	return &m, nil
}

func (s *gormStore) ListMaids(ctx context.Context, f MaidFilter) ([]model.Maid, error) {
	q := s.db.WithContext(ctx).Model(&model.Maid{}).Preload("Biodata")
	if f.AgencyID != 0 {
		q = q.Where("agency_id = ?", f.AgencyID)
	}
	if f.MaidType != "" {
		q = q.Where("maid_type = ?", f.MaidType)
	}
	if f.Published != nil {
		q = q.Where("published = ?", *f.Published)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []model.Maid
	if err := q.Order("featured DESC, updated_on DESC, id").Limit(limit).Offset(f.Offset).Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list maids")
	}
	return out, nil
}

// UpdateMaid saves the maid's own columns. Sections, flags and the owning
// agency are changed through their dedicated operations.
func (s *gormStore) UpdateMaid(ctx context.Context, m *model.Maid) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := loadMaid(tx, m.ID)
		if err != nil {
			return err
		}
		current.ReferenceNumber = m.ReferenceNumber
		current.MaidType = m.MaidType
		current.Salary = m.Salary
		current.LoanAmount = m.LoanAmount
		current.DaysOff = m.DaysOff
		current.PassportStatus = m.PassportStatus
		current.RepatriationAirport = m.RepatriationAirport
		current.Remarks = m.Remarks
		if err := saveMaid(tx, current); err != nil {
			return err
		}
		*m = *current
		return nil
	})
}

// SetPublished publishes or withdraws a maid. Withdrawing also drops the
// featured flag.
func (s *gormStore) SetPublished(ctx context.Context, id int64, published bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := loadMaid(tx, id)
		if err != nil {
			return err
		}
		m.Published = published
		if !published {
			m.Featured = false
		}
		if err := saveMaid(tx, m); err != nil {
			return err
		}
		return refreshBiodataCounts(tx, m.AgencyID)
	})
}

// SetFeatured features a published maid within the agency's allowance, or
// drops the featured flag.
func (s *gormStore) SetFeatured(ctx context.Context, id int64, featured bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := loadMaid(tx, id)
		if err != nil {
			return err
		}
		if featured && !m.Featured {
			if !m.Published {
				return errors.Wrapf(ErrNotPublished, "maid %d", id)
			}
			var a model.Agency
			if err := tx.First(&a, m.AgencyID).Error; err != nil {
				return notFound(err, "agency", m.AgencyID)
			}
			if a.AmountOfFeaturedBiodata >= a.AmountOfFeaturedBiodataAllowed {
				return errors.Wrapf(ErrFeaturedLimit, "agency %d allows %d", a.ID, a.AmountOfFeaturedBiodataAllowed)
			}
		}
		m.Featured = featured
		if err := saveMaid(tx, m); err != nil {
			return err
		}
		return refreshBiodataCounts(tx, m.AgencyID)
	})
}

// DeleteMaid removes a maid; its sections go with it.
func (s *gormStore) DeleteMaid(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := loadMaid(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&model.Maid{}, id).Error; err != nil {
			return errors.Wrapf(err, "delete maid %d", id)
		}
		return refreshBiodataCounts(tx, m.AgencyID)
	})
}

func (s *gormStore) SaveBiodata(ctx context.Context, b *model.MaidBiodata) error {
	return s.saveSection(ctx, b.MaidID, b, "biodata_complete")
}

func (s *gormStore) SaveFamilyDetails(ctx context.Context, f *model.MaidFamilyDetails) error {
	return s.saveSection(ctx, f.MaidID, f, "family_details_complete")
}

func (s *gormStore) SaveStatus(ctx context.Context, st *model.MaidStatus) error {
	return s.saveSection(ctx, st.MaidID, st, "")
}

// SaveCare replaces the assessment of one care or housework section.
func (s *gormStore) SaveCare(ctx context.Context, maidID int64, kind CareKind, p model.CareProfile) error {
	var row any
	switch kind {
	case CareInfantChild:
		row = &model.MaidInfantChildCare{MaidID: maidID, CareProfile: p}
	case CareElderly:
		row = &model.MaidElderlyCare{MaidID: maidID, CareProfile: p}
	case CareDisabled:
		row = &model.MaidDisabledCare{MaidID: maidID, CareProfile: p}
	case CareGeneralHousework:
		row = &model.MaidGeneralHousework{MaidID: maidID, CareProfile: p}
	case CareCooking:
		row = &model.MaidCooking{MaidID: maidID, CareProfile: p}
	default:
		return errors.Wrapf(ErrUnknownCareKind, "%q", kind)
	}
	return s.saveSection(ctx, maidID, row, kind.completeColumn())
}

// saveSection upserts a one-to-one section keyed by maid_id and, when flag
// is set, marks the section complete on the maid.
func (s *gormStore) saveSection(ctx context.Context, maidID int64, row any, flag string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := loadMaid(tx, maidID)
		if err != nil {
			return err
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "maid_id"}},
			UpdateAll: true,
		}).Omit("id").Create(row).Error
		if err != nil {
			return errors.Wrapf(err, "save %T for maid %d", row, maidID)
		}
		if flag != "" {
			setCompleteFlag(m, flag)
		}
		return saveMaid(tx, m)
	})
}

func setCompleteFlag(m *model.Maid, flag string) {
	switch flag {
	case "biodata_complete":
		m.BiodataComplete = true
	case "family_details_complete":
		m.FamilyDetailsComplete = true
	case CareInfantChild.completeColumn():
		m.InfantChildCareComplete = true
	case CareElderly.completeColumn():
		m.ElderlyCareComplete = true
	case CareDisabled.completeColumn():
		m.DisabledCareComplete = true
	case CareGeneralHousework.completeColumn():
		m.GeneralHouseworkComplete = true
	case CareCooking.completeColumn():
		m.CookingComplete = true
	}
}

// AddEmploymentHistory records a past placement and links the named duties.
func (s *gormStore) AddEmploymentHistory(ctx context.Context, h *model.MaidEmploymentHistory, duties []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := loadMaid(tx, h.MaidID)
		if err != nil {
			return err
		}
		duties = lo.Uniq(duties)
		var rows []model.MaidWorkDuty
		if len(duties) > 0 {
			if err := tx.Where("name IN ?", duties).Find(&rows).Error; err != nil {
				return errors.Wrap(err, "load work duties")
			}
		}
		if len(rows) != len(duties) {
			found := lo.Map(rows, func(d model.MaidWorkDuty, _ int) string { return d.Name })
			missing, _ := lo.Difference(duties, found)
			return errors.Wrapf(ErrUnknownDuty, "%v", missing)
		}
		h.WorkDuties = rows
		if err := tx.Omit("WorkDuties.*").Create(h).Error; err != nil {
			return errors.Wrap(err, "create employment history")
		}
		return saveMaid(tx, m)
	})
}

func (s *gormStore) AddFoodHandlingPreference(ctx context.Context, maidID int64, code string) error {
	return s.addListItem(ctx, maidID, &model.MaidFoodHandlingPreference{MaidID: maidID, Preference: code})
}

func (s *gormStore) AddDietaryRestriction(ctx context.Context, maidID int64, code string) error {
	return s.addListItem(ctx, maidID, &model.MaidDietaryRestriction{MaidID: maidID, Restriction: code})
}

func (s *gormStore) addListItem(ctx context.Context, maidID int64, row any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := loadMaid(tx, maidID)
		if err != nil {
			return err
		}
		if err := tx.Create(row).Error; err != nil {
			return errors.Wrapf(err, "create %T", row)
		}
		return saveMaid(tx, m)
	})
}

func loadMaid(tx *gorm.DB, id int64) (*model.Maid, error) {
	var m model.Maid
	if err := tx.First(&m, id).Error; err != nil {
		return nil, notFound(err, "maid", id)
	}
	return &m, nil
}

// saveMaid writes the maid's own columns, which refreshes updated_on and
// the derived complete flag.
func saveMaid(tx *gorm.DB, m *model.Maid) error {
	if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
		return errors.Wrapf(err, "save maid %d", m.ID)
	}
	return nil
}
