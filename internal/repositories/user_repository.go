package repositories

import (
	"context"

	"fitstream/internal/models"
)

// UserRepository resolves accounts, including by the provider-side
// customer id the webhook flows key on.
type UserRepository struct {
	Repository[userEntity]
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](
		r.uow.session().WithContext(ctx).Where("email = ?", email))
}

// GetByStripeCustomerID returns nil for an empty id, which would
// otherwise match every user who never checked out.
func (r *UserRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.User, error) {
	if customerID == "" {
		return nil, nil
	}
	return first[models.User](
		r.uow.session().WithContext(ctx).Where("stripe_customer_id = ?", customerID))
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.uow.session().WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}
