package repositories

import (
	"context"
	"time"

	"fitstream/internal/models"
)

type UserSubscriptionRepository struct {
	Repository[subscriptionEntity]
}

// GetActiveSubscriptionByUserID returns the user's current
// subscription: status Active, not yet ended, and among overlapping
// rows the one with the latest end date.
func (r *UserSubscriptionRepository) GetActiveSubscriptionByUserID(ctx context.Context, userID uint) (*models.UserSubscription, error) {
	return first[models.UserSubscription](
		r.uow.session().WithContext(ctx).
			Preload("Plan").
			Where("user_id = ? AND status = ? AND end_date >= ?",
				userID, models.SubscriptionStatusActive, time.Now()).
			Order("end_date desc"))
}

func (r *UserSubscriptionRepository) GetSubscriptionsByUserID(ctx context.Context, userID uint) ([]models.UserSubscription, error) {
	var subs []models.UserSubscription
	err := r.uow.session().WithContext(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&subs).Error
	return subs, err
}

func (r *UserSubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*models.UserSubscription, error) {
	if stripeSubscriptionID == "" {
		return nil, nil
	}
	return first[models.UserSubscription](
		r.uow.session().WithContext(ctx).
			Preload("Plan").
			Where("stripe_subscription_id = ?", stripeSubscriptionID))
}

func (r *UserSubscriptionRepository) HasActiveSubscription(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.uow.session().WithContext(ctx).
		Model(&models.UserSubscription{}).
		Where("user_id = ? AND status = ? AND end_date >= ?",
			userID, models.SubscriptionStatusActive, time.Now()).
		Count(&count).Error
	return count > 0, err
}
