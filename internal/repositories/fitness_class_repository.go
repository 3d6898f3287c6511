package repositories

import (
	"context"
	"strings"
	"time"

	"fitstream/internal/models"
)

type FitnessClassRepository struct {
	Repository[classEntity]
}

// GetByID loads a class with its instructor and minimum plan attached.
func (r *FitnessClassRepository) GetByID(ctx context.Context, id uint) (*models.FitnessClass, error) {
	return first[models.FitnessClass](
		r.uow.session().WithContext(ctx).
			Preload("Instructor").
			Preload("MinimumPlan").
			Where("id = ?", id))
}

// GetUpcomingLiveClasses returns at most count live classes scheduled
// in the future, soonest first.
func (r *FitnessClassRepository) GetUpcomingLiveClasses(ctx context.Context, count int) ([]models.FitnessClass, error) {
	var classes []models.FitnessClass
	err := r.uow.session().WithContext(ctx).
		Preload("Instructor").
		Where("class_type = ? AND scheduled_at > ?", models.ClassTypeLive, time.Now()).
		Order("scheduled_at asc").
		Limit(count).
		Find(&classes).Error
	return classes, err
}

// GetRecordedClasses pages through the on-demand library, newest
// first. Rows without a media reference are never listed.
func (r *FitnessClassRepository) GetRecordedClasses(ctx context.Context, page, pageSize int) ([]models.FitnessClass, error) {
	if page < 1 {
		page = 1
	}
	var classes []models.FitnessClass
	err := r.uow.session().WithContext(ctx).
		Preload("Instructor").
		Where("class_type = ? AND video_url <> ''", models.ClassTypeRecorded).
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&classes).Error
	return classes, err
}

func (r *FitnessClassRepository) GetClassesByInstructor(ctx context.Context, instructorID uint) ([]models.FitnessClass, error) {
	var classes []models.FitnessClass
	err := r.uow.session().WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("scheduled_at desc, created_at desc").
		Find(&classes).Error
	return classes, err
}

func (r *FitnessClassRepository) GetClassesByCategory(ctx context.Context, category models.ClassCategory) ([]models.FitnessClass, error) {
	var classes []models.FitnessClass
	err := r.uow.session().WithContext(ctx).
		Preload("Instructor").
		Where("category = ?", category).
		Order("scheduled_at desc, created_at desc").
		Find(&classes).Error
	return classes, err
}

// SearchClasses matches the term against title and description,
// case-insensitively.
func (r *FitnessClassRepository) SearchClasses(ctx context.Context, term string) ([]models.FitnessClass, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var classes []models.FitnessClass
	err := r.uow.session().WithContext(ctx).
		Preload("Instructor").
		Where("lower(title) LIKE ? OR lower(description) LIKE ?", pattern, pattern).
		Order("created_at desc").
		Find(&classes).Error
	return classes, err
}

// GetBookingCount counts non-cancelled bookings for a class.
func (r *FitnessClassRepository) GetBookingCount(ctx context.Context, classID uint) (int64, error) {
	var count int64
	err := r.uow.session().WithContext(ctx).
		Model(&models.ClassBooking{}).
		Where("class_id = ? AND status <> ?", classID, models.BookingStatusCancelled).
		Count(&count).Error
	return count, err
}
