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

func createTestClass(t *testing.T, db *gorm.DB, title string, classType models.ClassType) *models.FitnessClass {
	t.Helper()

	class := &models.FitnessClass{
		Title:      title,
		ClassType:  classType,
		Category:   models.CategoryYoga,
		Difficulty: models.DifficultyAllLevels,
	}
	if classType == models.ClassTypeRecorded {
		class.VideoURL = "https://cdn.example.com/" + title + ".mp4"
	}
	require.NoError(t, db.Create(class).Error)
	return class
}

func TestDuplicateBookingViolatesUniqueIndex(t *testing.T) {
	db := openTestDB(t)

	user := createTestUser(t, db, "dupe@example.com")
	class := createTestClass(t, db, "morning-yoga", models.ClassTypeRecorded)

	booking := models.ClassBooking{
		UserID:   user.ID,
		ClassID:  class.ID,
		BookedAt: time.Now(),
		Status:   models.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(&booking).Error)

	dupe := models.ClassBooking{
		UserID:   user.ID,
		ClassID:  class.ID,
		BookedAt: time.Now(),
		Status:   models.BookingStatusConfirmed,
	}
	assert.Error(t, db.Create(&dupe).Error)
}

func TestHasBookingIgnoresCancelled(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "cancelled@example.com")
	class := createTestClass(t, db, "evening-hiit", models.ClassTypeRecorded)

	booking := models.ClassBooking{
		UserID:   user.ID,
		ClassID:  class.ID,
		BookedAt: time.Now(),
		Status:   models.BookingStatusCancelled,
	}
	require.NoError(t, db.Create(&booking).Error)

	repo := NewUnitOfWork(db).ClassBookings()

	has, err := repo.HasBooking(ctx, user.ID, class.ID)
	require.NoError(t, err)
	assert.False(t, has)

	// The cancelled row is still there and blocks a re-insert.
	found, err := repo.GetBooking(ctx, user.ID, class.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, models.BookingStatusCancelled, found.Status)
}

func TestGetUserBookingCountForMonth(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "monthly@example.com")
	now := time.Now().UTC()
	inMonth := time.Date(now.Year(), now.Month(), 15, 12, 0, 0, 0, time.UTC)
	lastMonth := inMonth.AddDate(0, -1, 0)

	for i, bookedAt := range []time.Time{inMonth, inMonth.Add(time.Hour), lastMonth} {
		class := createTestClass(t, db, "count-"+string(rune('a'+i)), models.ClassTypeRecorded)
		require.NoError(t, db.Create(&models.ClassBooking{
			UserID:   user.ID,
			ClassID:  class.ID,
			BookedAt: bookedAt,
			Status:   models.BookingStatusConfirmed,
		}).Error)
	}

	cancelledClass := createTestClass(t, db, "count-x", models.ClassTypeRecorded)
	require.NoError(t, db.Create(&models.ClassBooking{
		UserID:   user.ID,
		ClassID:  cancelledClass.ID,
		BookedAt: inMonth,
		Status:   models.BookingStatusCancelled,
	}).Error)

	count, err := NewUnitOfWork(db).ClassBookings().GetUserBookingCountForMonth(ctx, user.ID, now.Month(), now.Year())
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestGetBookingsByUserIDNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "history@example.com")
	older := createTestClass(t, db, "older", models.ClassTypeRecorded)
	newer := createTestClass(t, db, "newer", models.ClassTypeRecorded)

	require.NoError(t, db.Create(&models.ClassBooking{
		UserID: user.ID, ClassID: older.ID,
		BookedAt: time.Now().Add(-2 * time.Hour), Status: models.BookingStatusConfirmed,
	}).Error)
	require.NoError(t, db.Create(&models.ClassBooking{
		UserID: user.ID, ClassID: newer.ID,
		BookedAt: time.Now().Add(-1 * time.Hour), Status: models.BookingStatusConfirmed,
	}).Error)

	bookings, err := NewUnitOfWork(db).ClassBookings().GetBookingsByUserID(ctx, user.ID)
	require.NoError(t, err)

	require.Len(t, bookings, 2)
	assert.Equal(t, newer.ID, bookings[0].ClassID)
	assert.Equal(t, "newer", bookings[0].FitnessClass.Title)
}
