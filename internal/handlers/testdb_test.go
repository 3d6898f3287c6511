package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitstream/internal/models"
)

var testDBSeq int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
		&models.FitnessClass{},
		&models.ClassBooking{},
		&models.PaymentTransaction{},
	))

	return db
}

// newJSONContext builds an echo context carrying a JSON body and an
// authenticated user when userID is non-zero.
func newJSONContext(t *testing.T, method, path string, body interface{}, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	e := echo.New()
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if userID != 0 {
		c.Set("userID", userID)
	}
	return c, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()

	require.Error(t, err)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPlan(t *testing.T, db *gorm.DB, name string, price float64, live bool, monthlyCap int) *models.SubscriptionPlan {
	t.Helper()

	plan := &models.SubscriptionPlan{
		Name:                     name,
		Price:                    price,
		DurationInDays:           30,
		MaxClassBookingsPerMonth: monthlyCap,
		IncludesLiveClasses:      live,
		IncludesRecordedClasses:  true,
		IsActive:                 true,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func seedActiveSubscription(t *testing.T, db *gorm.DB, userID, planID uint) *models.UserSubscription {
	t.Helper()

	sub := &models.UserSubscription{
		UserID:    userID,
		PlanID:    planID,
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   time.Now().AddDate(0, 0, 30),
		Status:    models.SubscriptionStatusActive,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func seedClass(t *testing.T, db *gorm.DB, class models.FitnessClass) *models.FitnessClass {
	t.Helper()

	require.NoError(t, db.Create(&class).Error)
	return &class
}
