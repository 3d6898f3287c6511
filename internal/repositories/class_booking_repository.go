package repositories

import (
	"context"
	"time"

	"fitstream/internal/models"
)

type ClassBookingRepository struct {
	Repository[bookingEntity]
}

func (r *ClassBookingRepository) GetBookingsByUserID(ctx context.Context, userID uint) ([]models.ClassBooking, error) {
	var bookings []models.ClassBooking
	err := r.uow.session().WithContext(ctx).
		Preload("FitnessClass").
		Preload("FitnessClass.Instructor").
		Where("user_id = ?", userID).
		Order("booked_at desc").
		Find(&bookings).Error
	return bookings, err
}

func (r *ClassBookingRepository) GetBookingsByClassID(ctx context.Context, classID uint) ([]models.ClassBooking, error) {
	var bookings []models.ClassBooking
	err := r.uow.session().WithContext(ctx).
		Preload("User").
		Where("class_id = ?", classID).
		Order("booked_at asc").
		Find(&bookings).Error
	return bookings, err
}

func (r *ClassBookingRepository) GetBooking(ctx context.Context, userID, classID uint) (*models.ClassBooking, error) {
	return first[models.ClassBooking](
		r.uow.session().WithContext(ctx).
			Preload("FitnessClass").
			Where("user_id = ? AND class_id = ?", userID, classID))
}

// HasBooking reports whether the user holds a non-cancelled booking
// for the class.
func (r *ClassBookingRepository) HasBooking(ctx context.Context, userID, classID uint) (bool, error) {
	var count int64
	err := r.uow.session().WithContext(ctx).
		Model(&models.ClassBooking{}).
		Where("user_id = ? AND class_id = ? AND status <> ?",
			userID, classID, models.BookingStatusCancelled).
		Count(&count).Error
	return count > 0, err
}

// GetUserBookingCountForMonth counts non-cancelled bookings made by
// the user in the given calendar month, used for plan booking caps.
func (r *ClassBookingRepository) GetUserBookingCountForMonth(ctx context.Context, userID uint, month time.Month, year int) (int64, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var count int64
	err := r.uow.session().WithContext(ctx).
		Model(&models.ClassBooking{}).
		Where("user_id = ? AND booked_at >= ? AND booked_at < ? AND status <> ?",
			userID, start, end, models.BookingStatusCancelled).
		Count(&count).Error
	return count, err
}
