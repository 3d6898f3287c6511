package models

import (
	"time"
)

// UserRole represents the access level of a user
type UserRole string

const (
	RoleAdmin      UserRole = "Admin"
	RoleInstructor UserRole = "Instructor"
	RoleUser       UserRole = "User"
)

// User represents an account on the platform. Instructors are users
// with RoleInstructor and the instructor profile fields filled in.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255)" json:"-"`
	FirstName    string   `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string   `gorm:"type:varchar(100);not null" json:"last_name"`
	Role         UserRole `gorm:"type:varchar(20);default:'User'" json:"role"`

	ProfilePictureURL string `gorm:"type:varchar(500)" json:"profile_picture_url,omitempty"`
	Bio               string `gorm:"type:varchar(1000)" json:"bio,omitempty"`

	// Instructor profile
	Specializations string `gorm:"type:varchar(1000)" json:"specializations,omitempty"`
	Certifications  string `gorm:"type:varchar(1000)" json:"certifications,omitempty"`

	// Stripe customer backing this user, set on first checkout
	StripeCustomerID string `gorm:"type:varchar(100);index" json:"stripe_customer_id,omitempty"`

	// Relationships
	Bookings          []ClassBooking       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
	Subscriptions     []UserSubscription   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"subscriptions,omitempty"`
	Payments          []PaymentTransaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	InstructedClasses []FitnessClass       `gorm:"foreignKey:InstructorID;constraint:OnDelete:SET NULL" json:"instructed_classes,omitempty"`
}

// FullName joins first and last name for display purposes
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
