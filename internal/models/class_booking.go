package models

import "time"

// BookingStatus tracks a booking through its lifecycle. Cancelling a
// booking changes status only; the (user, class) pair stays reserved.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusAttended  BookingStatus = "Attended"
)

// ClassBooking reserves a spot in a fitness class for a user
type ClassBooking struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID  uint `gorm:"uniqueIndex:idx_booking_user_class;not null" json:"user_id"`
	ClassID uint `gorm:"uniqueIndex:idx_booking_user_class;not null" json:"class_id"`

	Status   BookingStatus `gorm:"type:varchar(20);default:'Confirmed'" json:"status"`
	BookedAt time.Time     `gorm:"index" json:"booked_at"`

	// Relationships
	User         User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	FitnessClass FitnessClass `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"fitness_class,omitempty"`
}
