package repositories

import (
	"context"

	"gorm.io/gorm"
)

type changeKind int

const (
	changeInsert changeKind = iota
	changeUpdate
	changeDelete
)

type pendingChange struct {
	kind   changeKind
	entity interface{}
}

// UnitOfWork scopes one database session across several repositories.
// Repository accessors are lazily constructed and memoized, so
// repeated access returns the same instance. Writes staged through
// repositories are flushed by SaveChanges, the single flush point.
type UnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	pending []pendingChange

	users         *UserRepository
	plans         *SubscriptionPlanRepository
	subscriptions *UserSubscriptionRepository
	classes       *FitnessClassRepository
	bookings      *ClassBookingRepository
	payments      *PaymentTransactionRepository
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// session returns the explicit transaction when one is open, otherwise
// the shared base session.
func (u *UnitOfWork) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWork) stage(kind changeKind, entity interface{}) {
	u.pending = append(u.pending, pendingChange{kind: kind, entity: entity})
}

func (u *UnitOfWork) Users() *UserRepository {
	if u.users == nil {
		u.users = &UserRepository{Repository: Repository[userEntity]{uow: u}}
	}
	return u.users
}

func (u *UnitOfWork) SubscriptionPlans() *SubscriptionPlanRepository {
	if u.plans == nil {
		u.plans = &SubscriptionPlanRepository{Repository: Repository[planEntity]{uow: u}}
	}
	return u.plans
}

func (u *UnitOfWork) UserSubscriptions() *UserSubscriptionRepository {
	if u.subscriptions == nil {
		u.subscriptions = &UserSubscriptionRepository{Repository: Repository[subscriptionEntity]{uow: u}}
	}
	return u.subscriptions
}

func (u *UnitOfWork) FitnessClasses() *FitnessClassRepository {
	if u.classes == nil {
		u.classes = &FitnessClassRepository{Repository: Repository[classEntity]{uow: u}}
	}
	return u.classes
}

func (u *UnitOfWork) ClassBookings() *ClassBookingRepository {
	if u.bookings == nil {
		u.bookings = &ClassBookingRepository{Repository: Repository[bookingEntity]{uow: u}}
	}
	return u.bookings
}

func (u *UnitOfWork) PaymentTransactions() *PaymentTransactionRepository {
	if u.payments == nil {
		u.payments = &PaymentTransactionRepository{Repository: Repository[paymentEntity]{uow: u}}
	}
	return u.payments
}

// SaveChanges applies all staged inserts, updates and deletes in
// order. Without an explicit transaction the whole batch runs inside
// one implicit transaction; UpdatedAt stamping for modified rows is
// done by the GORM session at write time.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if len(u.pending) == 0 {
		return nil
	}

	apply := func(tx *gorm.DB) error {
		for _, change := range u.pending {
			var err error
			switch change.kind {
			case changeInsert:
				err = tx.Create(change.entity).Error
			case changeUpdate:
				err = tx.Save(change.entity).Error
			case changeDelete:
				err = tx.Delete(change.entity).Error
			}
			if err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	if u.tx != nil {
		err = apply(u.tx.WithContext(ctx))
	} else {
		err = u.db.WithContext(ctx).Transaction(apply)
	}
	if err != nil {
		return err
	}

	u.pending = u.pending[:0]
	return nil
}

// Begin opens an explicit transaction. A no-op when one is already open.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

// Commit commits the explicit transaction and resets the handle, so a
// second Commit or Rollback is a no-op.
func (u *UnitOfWork) Commit() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback aborts the explicit transaction and resets the handle.
// Staged changes that were flushed inside the transaction are undone;
// unflushed staged changes are kept.
func (u *UnitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}
