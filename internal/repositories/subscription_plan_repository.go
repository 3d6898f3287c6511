package repositories

import (
	"context"

	"fitstream/internal/models"
)

type SubscriptionPlanRepository struct {
	Repository[planEntity]
}

// GetActivePlans lists plans currently offered for sale, cheapest first.
func (r *SubscriptionPlanRepository) GetActivePlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.uow.session().WithContext(ctx).
		Where("is_active = ?", true).
		Order("price asc").
		Find(&plans).Error
	return plans, err
}

func (r *SubscriptionPlanRepository) GetByStripePriceID(ctx context.Context, priceID string) (*models.SubscriptionPlan, error) {
	if priceID == "" {
		return nil, nil
	}
	return first[models.SubscriptionPlan](
		r.uow.session().WithContext(ctx).Where("stripe_price_id = ?", priceID))
}

func (r *SubscriptionPlanRepository) GetByStripeProductID(ctx context.Context, productID string) (*models.SubscriptionPlan, error) {
	if productID == "" {
		return nil, nil
	}
	return first[models.SubscriptionPlan](
		r.uow.session().WithContext(ctx).Where("stripe_product_id = ?", productID))
}
