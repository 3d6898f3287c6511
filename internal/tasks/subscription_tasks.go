package tasks

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"fitstream/internal/models"
	"fitstream/internal/repositories"
)

// ExpireLapsedSubscriptions flips subscriptions that are still marked
// active but whose end date has passed. The provider normally renews or
// cancels them via webhook; this sweep covers events that never arrived.
func ExpireLapsedSubscriptions(ctx context.Context, db *gorm.DB) (int, error) {
	var lapsed []models.UserSubscription
	now := time.Now()
	if err := db.WithContext(ctx).
		Where("status = ? AND end_date < ?", models.SubscriptionStatusActive, now).
		Find(&lapsed).Error; err != nil {
		return 0, err
	}

	if len(lapsed) == 0 {
		return 0, nil
	}

	uow := repositories.NewUnitOfWork(db)
	for i := range lapsed {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		lapsed[i].Status = models.SubscriptionStatusExpired
		uow.UserSubscriptions().Update(&lapsed[i])
	}
	if err := uow.SaveChanges(ctx); err != nil {
		return 0, err
	}

	log.Printf("Expired %d lapsed subscriptions", len(lapsed))
	return len(lapsed), nil
}
