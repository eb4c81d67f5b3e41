package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lucasrosa/lembretes-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *subscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Upsert(ctx context.Context, sub *domain.PushSubscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "created_at"}),
	}).Create(sub).Error
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PushSubscription, error) {
	var subs []*domain.PushSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) FirstByUser(ctx context.Context, userID uuid.UUID) (*domain.PushSubscription, error) {
	var sub domain.PushSubscription
	err := r.db.WithContext(ctx).First(&sub, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// Delete is idempotent: removing an already-removed subscription is a no-op,
// which keeps concurrent pruning by the dispatcher safe.
func (r *subscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.PushSubscription{}, "id = ?", id).Error
}

func (r *subscriptionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.PushSubscription{}, "user_id = ?", userID).Error
}
