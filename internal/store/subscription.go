package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm/clause"

	"onlinemaid-backend/internal/model"
)

// UpsertSubscription creates a subscription or refreshes the keys of an
// existing endpoint.
func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
	}).Create(sub).Error
	return errors.Wrap(err, "upsert subscription")
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	err := s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error
	return errors.Wrap(err, "delete subscription")
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	if err := s.db.WithContext(ctx).First(&sub, "endpoint = ?", endpoint).Error; err != nil {
		return nil, notFound(err, "subscription", endpoint)
	}
	return &sub, nil
}

func (s *gormStore) ListSubscriptions(ctx context.Context) ([]model.PushSubscription, error) {
	var out []model.PushSubscription
	if err := s.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list subscriptions")
	}
	return out, nil
}
