package repositories

import (
	"context"

	"fitstream/internal/models"
)

type PaymentTransactionRepository struct {
	Repository[paymentEntity]
}

func (r *PaymentTransactionRepository) GetTransactionsByUserID(ctx context.Context, userID uint) ([]models.PaymentTransaction, error) {
	var txs []models.PaymentTransaction
	err := r.uow.session().WithContext(ctx).
		Preload("Subscription").
		Preload("Subscription.Plan").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&txs).Error
	return txs, err
}

func (r *PaymentTransactionRepository) GetByStripePaymentIntentID(ctx context.Context, paymentIntentID string) (*models.PaymentTransaction, error) {
	return first[models.PaymentTransaction](
		r.uow.session().WithContext(ctx).Where("stripe_payment_intent_id = ?", paymentIntentID))
}

func (r *PaymentTransactionRepository) GetTransactionsBySubscriptionID(ctx context.Context, subscriptionID uint) ([]models.PaymentTransaction, error) {
	var txs []models.PaymentTransaction
	err := r.uow.session().WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at desc").
		Find(&txs).Error
	return txs, err
}
