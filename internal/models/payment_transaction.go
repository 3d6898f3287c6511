package models

import "time"

// PaymentStatus tracks the outcome of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusSucceeded PaymentStatus = "Succeeded"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

// PaymentType classifies what a payment was for
type PaymentType string

const (
	PaymentTypeSubscription PaymentType = "SubscriptionPayment"
	PaymentTypeOneTime      PaymentType = "OneTimePayment"
	PaymentTypeRefund       PaymentType = "Refund"
)

// PaymentTransaction records money movement against a user, usually
// tied to a subscription invoice. Amounts are stored in major units
// with two decimal places.
type PaymentTransaction struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID         uint  `gorm:"index;not null" json:"user_id"`
	SubscriptionID *uint `json:"subscription_id,omitempty"`

	Amount   float64       `gorm:"type:decimal(10,2)" json:"amount"`
	Currency string        `gorm:"type:varchar(10)" json:"currency"`
	Status   PaymentStatus `gorm:"type:varchar(20)" json:"status"`
	Type     PaymentType   `gorm:"type:varchar(30)" json:"type"`

	Description   string `gorm:"type:varchar(500)" json:"description,omitempty"`
	FailureReason string `gorm:"type:varchar(500)" json:"failure_reason,omitempty"`

	StripeInvoiceID       string `gorm:"type:varchar(100)" json:"stripe_invoice_id,omitempty"`
	StripePaymentIntentID string `gorm:"type:varchar(100);index" json:"stripe_payment_intent_id,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Relationships
	User         User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Subscription *UserSubscription `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:SET NULL" json:"subscription,omitempty"`
}
