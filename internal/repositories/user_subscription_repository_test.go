package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fitstream/internal/models"
)

func createTestSubscription(t *testing.T, db *gorm.DB, userID, planID uint, status models.SubscriptionStatus, end time.Time) *models.UserSubscription {
	t.Helper()

	sub := &models.UserSubscription{
		UserID:    userID,
		PlanID:    planID,
		StartDate: end.AddDate(0, -1, 0),
		EndDate:   end,
		Status:    status,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func TestGetActiveSubscriptionPicksLatestEndDate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "subs@example.com")
	plan := createTestPlan(t, db, "Basic", 4.99, true)

	createTestSubscription(t, db, user.ID, plan.ID, models.SubscriptionStatusActive, time.Now().AddDate(0, 0, 7))
	want := createTestSubscription(t, db, user.ID, plan.ID, models.SubscriptionStatusActive, time.Now().AddDate(0, 0, 30))

	sub, err := NewUnitOfWork(db).UserSubscriptions().GetActiveSubscriptionByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, want.ID, sub.ID)
	assert.Equal(t, plan.Name, sub.Plan.Name)
}

func TestGetActiveSubscriptionIgnoresEndedAndNonActive(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "lapsed@example.com")
	plan := createTestPlan(t, db, "Basic", 4.99, true)

	createTestSubscription(t, db, user.ID, plan.ID, models.SubscriptionStatusActive, time.Now().AddDate(0, 0, -1))
	createTestSubscription(t, db, user.ID, plan.ID, models.SubscriptionStatusCancelled, time.Now().AddDate(0, 0, 30))
	createTestSubscription(t, db, user.ID, plan.ID, models.SubscriptionStatusPastDue, time.Now().AddDate(0, 0, 30))

	sub, err := NewUnitOfWork(db).UserSubscriptions().GetActiveSubscriptionByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, sub)

	has, err := NewUnitOfWork(db).UserSubscriptions().HasActiveSubscription(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGetByStripeSubscriptionID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "stripe@example.com")
	plan := createTestPlan(t, db, "Basic", 4.99, true)

	sub := createTestSubscription(t, db, user.ID, plan.ID, models.SubscriptionStatusActive, time.Now().AddDate(0, 0, 30))
	sub.StripeSubscriptionID = "sub_123"
	require.NoError(t, db.Save(sub).Error)

	repo := NewUnitOfWork(db).UserSubscriptions()

	found, err := repo.GetByStripeSubscriptionID(ctx, "sub_123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, sub.ID, found.ID)

	missing, err := repo.GetByStripeSubscriptionID(ctx, "sub_unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
