package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fitstream/internal/models"
)

// Entity aliases keep the memoized accessor wiring in one place.
type (
	userEntity         = models.User
	planEntity         = models.SubscriptionPlan
	subscriptionEntity = models.UserSubscription
	classEntity        = models.FitnessClass
	bookingEntity      = models.ClassBooking
	paymentEntity      = models.PaymentTransaction
)

// Repository is the generic base shared by all aggregate repositories.
// Reads run immediately against the unit of work's session; Add,
// Update and Delete only stage the change; nothing is written until
// UnitOfWork.SaveChanges.
type Repository[T any] struct {
	uow *UnitOfWork
}

func (r *Repository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.uow.session().WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	err := r.uow.session().WithContext(ctx).Find(&entities).Error
	return entities, err
}

func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var entity T
	var count int64
	err := r.uow.session().WithContext(ctx).Model(&entity).Count(&count).Error
	return count, err
}

func (r *Repository[T]) Add(entity *T) {
	r.uow.stage(changeInsert, entity)
}

func (r *Repository[T]) Update(entity *T) {
	r.uow.stage(changeUpdate, entity)
}

func (r *Repository[T]) Delete(entity *T) {
	r.uow.stage(changeDelete, entity)
}

// first runs a single-row query and maps gorm.ErrRecordNotFound to a
// nil entity, matching the silent no-op semantics of the webhook
// reconciliation flows.
func first[T any](query *gorm.DB) (*T, error) {
	var entity T
	err := query.First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}
