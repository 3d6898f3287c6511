package models

import "time"

// SubscriptionStatus mirrors the provider's subscription lifecycle
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "Active"
	SubscriptionStatusCancelled SubscriptionStatus = "Cancelled"
	SubscriptionStatusPastDue   SubscriptionStatus = "PastDue"
	SubscriptionStatusPaused    SubscriptionStatus = "Paused"
	SubscriptionStatusExpired   SubscriptionStatus = "Expired"
)

// UserSubscription links a user to a plan for a billing period
type UserSubscription struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	PlanID uint `gorm:"not null" json:"plan_id"`

	StripeSubscriptionID string `gorm:"type:varchar(100);index" json:"stripe_subscription_id,omitempty"`
	StripeCustomerID     string `gorm:"type:varchar(100)" json:"stripe_customer_id,omitempty"`

	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Status    SubscriptionStatus `gorm:"type:varchar(20)" json:"status"`

	// Relationships
	User User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Plan SubscriptionPlan `gorm:"foreignKey:PlanID;constraint:OnDelete:RESTRICT" json:"plan,omitempty"`
}

// IsCurrent reports whether the subscription grants access right now
func (s UserSubscription) IsCurrent() bool {
	return s.Status == SubscriptionStatusActive && s.EndDate.After(time.Now())
}
