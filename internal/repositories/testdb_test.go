package repositories

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitstream/internal/models"
)

var testDBSeq int64

// openTestDB returns a migrated in-memory database. Each call gets its
// own database, shared across the pooled connections of one *gorm.DB.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
		&models.FitnessClass{},
		&models.ClassBooking{},
		&models.PaymentTransaction{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPlan(t *testing.T, db *gorm.DB, name string, price float64, active bool) *models.SubscriptionPlan {
	t.Helper()

	plan := &models.SubscriptionPlan{
		Name:           name,
		Price:          price,
		DurationInDays: 30,
		IsActive:       active,
		StripePriceID:  "price_" + name,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}
