package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"onlinemaid-backend/internal/model"
)

var (
	ErrNotShortlistable   = errors.New("this maid cannot be shortlisted at the moment")
	ErrAlreadyShortlisted = errors.New("this maid is already in your shortlist")
	ErrNotShortlisted     = errors.New("this maid is not in your shortlist")
	ErrEmptyShortlist     = errors.New("your shortlist is empty")
)

const shortlistMaidsTable = "shortlist_maids"

func (s *gormStore) CreateShortlist(ctx context.Context) (*model.Shortlist, error) {
	sl := model.Shortlist{}
	if err := s.db.WithContext(ctx).Omit("Maids").Create(&sl).Error; err != nil {
		return nil, errors.Wrap(err, "create shortlist")
	}
	sl.Maids = []model.Maid{}
	return &sl, nil
}

// GetShortlist loads a shortlist with its maids in the order they were added.
func (s *gormStore) GetShortlist(ctx context.Context, token string) (*model.Shortlist, error) {
	tx := s.db.WithContext(ctx)
	sl, err := loadShortlist(tx, token)
	if err != nil {
		return nil, err
	}
	if sl.Maids, err = shortlistedMaids(tx, sl.ID); err != nil {
		return nil, err
	}
	return sl, nil
}

// AddToShortlist adds a published maid. A maid is listed at most once.
func (s *gormStore) AddToShortlist(ctx context.Context, token string, maidID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sl, err := loadShortlist(tx, token)
		if err != nil {
			return err
		}
		m, err := loadMaid(tx, maidID)
		if err != nil {
			return err
		}
		if !m.Published {
			return errors.Wrapf(ErrNotShortlistable, "maid %d", maidID)
		}
		listed, err := isShortlisted(tx, sl.ID, maidID)
		if err != nil {
			return err
		}
		if listed {
			return errors.Wrapf(ErrAlreadyShortlisted, "maid %d", maidID)
		}
		row := map[string]any{"shortlist_id": sl.ID, "maid_id": maidID}
		if err := tx.Table(shortlistMaidsTable).Create(row).Error; err != nil {
			return errors.Wrapf(err, "shortlist maid %d", maidID)
		}
		return nil
	})
}

func (s *gormStore) RemoveFromShortlist(ctx context.Context, token string, maidID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sl, err := loadShortlist(tx, token)
		if err != nil {
			return err
		}
		if _, err := loadMaid(tx, maidID); err != nil {
			return err
		}
		res := tx.Exec(`DELETE FROM "shortlist_maids" WHERE "shortlist_id" = ? AND "maid_id" = ?`, sl.ID, maidID)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "unlist maid %d", maidID)
		}
		if res.RowsAffected == 0 {
			return errors.Wrapf(ErrNotShortlisted, "maid %d", maidID)
		}
		return nil
	})
}

// SubmitShortlist stores an enquiry about every shortlisted maid and empties
// the shortlist.
func (s *gormStore) SubmitShortlist(ctx context.Context, token string, e *model.ShortlistedEnquiry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sl, err := loadShortlist(tx, token)
		if err != nil {
			return err
		}
		maids, err := shortlistedMaids(tx, sl.ID)
		if err != nil {
			return err
		}
		if len(maids) == 0 {
			return errors.Wrapf(ErrEmptyShortlist, "shortlist %s", token)
		}
		e.ID = 0
		e.Active = true
		e.Approved = false
		e.Maids = maids
		if err := tx.Omit("Maids.*").Create(e).Error; err != nil {
			return errors.Wrap(err, "create shortlisted enquiry")
		}
		if err := tx.Exec(`DELETE FROM "shortlist_maids" WHERE "shortlist_id" = ?`, sl.ID).Error; err != nil {
			return errors.Wrap(err, "clear shortlist")
		}
		return nil
	})
}

func (s *gormStore) GetShortlistedEnquiry(ctx context.Context, id int64) (*model.ShortlistedEnquiry, error) {
	var e model.ShortlistedEnquiry
	if err := s.db.WithContext(ctx).Preload("Maids").First(&e, id).Error; err != nil {
		return nil, notFound(err, "shortlisted enquiry", id)
	}
	return &e, nil
}

// ListShortlistedEnquiries returns the newest enquiries first.
func (s *gormStore) ListShortlistedEnquiries(ctx context.Context, limit int) ([]model.ShortlistedEnquiry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []model.ShortlistedEnquiry
	err := s.db.WithContext(ctx).Preload("Maids").Order("created_on DESC, id DESC").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "list shortlisted enquiries")
	}
	return out, nil
}

func loadShortlist(tx *gorm.DB, token string) (*model.Shortlist, error) {
	var sl model.Shortlist
	if err := tx.Where(`"token" = ?`, token).First(&sl).Error; err != nil {
		return nil, notFound(err, "shortlist", token)
	}
	return &sl, nil
}

func shortlistedMaids(tx *gorm.DB, shortlistID int64) ([]model.Maid, error) {
	maids := []model.Maid{}
	err := tx.Select(`"maids".*`).
		Joins(`JOIN "shortlist_maids" ON "shortlist_maids"."maid_id" = "maids"."id"`).
		Where(`"shortlist_maids"."shortlist_id" = ?`, shortlistID).
		Order(`"shortlist_maids"."id"`).
		Find(&maids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "load shortlist %d", shortlistID)
	}
	return maids, nil
}

func isShortlisted(tx *gorm.DB, shortlistID, maidID int64) (bool, error) {
	var n int64
	err := tx.Table(shortlistMaidsTable).
		Where(`"shortlist_id" = ? AND "maid_id" = ?`, shortlistID, maidID).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrapf(err, "check shortlist %d", shortlistID)
	}
	return n > 0, nil
}
