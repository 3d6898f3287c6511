package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitstream/internal/models"
)

func TestGetTransactionsByUserIDNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "payer@example.com")
	plan := createTestPlan(t, db, "Basic", 4.99, true)
	sub := createTestSubscription(t, db, user.ID, plan.ID, models.SubscriptionStatusActive, time.Now().AddDate(0, 0, 30))

	older := models.PaymentTransaction{
		UserID: user.ID, SubscriptionID: &sub.ID,
		Amount: 4.99, Currency: "USD",
		Status: models.PaymentStatusSucceeded, Type: models.PaymentTypeSubscription,
		StripeInvoiceID: "in_old", StripePaymentIntentID: "pi_old",
	}
	require.NoError(t, db.Create(&older).Error)

	time.Sleep(5 * time.Millisecond)

	newer := models.PaymentTransaction{
		UserID: user.ID, SubscriptionID: &sub.ID,
		Amount: 4.99, Currency: "USD",
		Status: models.PaymentStatusSucceeded, Type: models.PaymentTypeSubscription,
		StripeInvoiceID: "in_new", StripePaymentIntentID: "pi_new",
	}
	require.NoError(t, db.Create(&newer).Error)

	repo := NewUnitOfWork(db).PaymentTransactions()

	txns, err := repo.GetTransactionsByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "in_new", txns[0].StripeInvoiceID)
	require.NotNil(t, txns[0].Subscription)
	assert.Equal(t, plan.Name, txns[0].Subscription.Plan.Name)

	bySub, err := repo.GetTransactionsBySubscriptionID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Len(t, bySub, 2)

	byIntent, err := repo.GetByStripePaymentIntentID(ctx, "pi_old")
	require.NoError(t, err)
	require.NotNil(t, byIntent)
	assert.Equal(t, older.ID, byIntent.ID)

	missing, err := repo.GetByStripePaymentIntentID(ctx, "pi_none")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
