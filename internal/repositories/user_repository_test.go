package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByEmail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "lookup@example.com")

	repo := NewUnitOfWork(db).Users()

	found, err := repo.GetByEmail(ctx, "lookup@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEmailExists(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "taken@example.com")

	repo := NewUnitOfWork(db).Users()

	exists, err := repo.EmailExists(ctx, "taken@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(ctx, "free@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetByStripeCustomerID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "customer@example.com")
	user.StripeCustomerID = "cus_123"
	require.NoError(t, db.Save(user).Error)

	repo := NewUnitOfWork(db).Users()

	found, err := repo.GetByStripeCustomerID(ctx, "cus_123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missing, err := repo.GetByStripeCustomerID(ctx, "cus_unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
