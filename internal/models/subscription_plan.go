package models

import "time"

// SubscriptionPlan represents a purchasable subscription tier
type SubscriptionPlan struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Description string  `gorm:"type:varchar(500)" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`

	DurationInDays int `json:"duration_in_days"`
	// 0 means unlimited bookings
	MaxClassBookingsPerMonth int `json:"max_class_bookings_per_month"`

	IncludesLiveClasses     bool `gorm:"default:false" json:"includes_live_classes"`
	IncludesRecordedClasses bool `gorm:"default:true" json:"includes_recorded_classes"`
	IsActive                bool `gorm:"default:true" json:"is_active"`

	StripePriceID   string `gorm:"type:varchar(100)" json:"stripe_price_id,omitempty"`
	StripeProductID string `gorm:"type:varchar(100)" json:"stripe_product_id,omitempty"`

	// Relationships
	UserSubscriptions []UserSubscription `gorm:"foreignKey:PlanID" json:"user_subscriptions,omitempty"`
}
