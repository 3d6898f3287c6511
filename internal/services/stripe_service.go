package services

import (
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// SubscriptionDetails is the provider-side view of a subscription
type SubscriptionDetails struct {
	SubscriptionID     string    `json:"subscription_id"`
	CustomerID         string    `json:"customer_id"`
	Status             string    `json:"status"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	PriceID            string    `json:"price_id"`
}

// StripeService wraps the Stripe SDK behind an explicitly injected
// client. Nothing here touches the SDK's package-global key.
type StripeService struct {
	client *client.API
}

func NewStripeService(apiKey string) *StripeService {
	return &StripeService{client: client.New(apiKey, nil)}
}

func NewStripeServiceWithClient(c *client.API) *StripeService {
	return &StripeService{client: c}
}

// CreateCustomer registers the user with Stripe and returns the new
// customer id.
func (s *StripeService) CreateCustomer(userID uint, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.AddMetadata("userId", strconv.FormatUint(uint64(userID), 10))
	params.SetIdempotencyKey(uuid.New().String())

	customer, err := s.client.Customers.New(params)
	if err != nil {
		log.Printf("stripe: create customer for user %d failed: %v", userID, err)
		return "", err
	}

	log.Printf("stripe: created customer %s for user %d", customer.ID, userID)
	return customer.ID, nil
}

// CreateCheckoutSession opens a hosted checkout in subscription mode
// for a single price, quantity one, and returns the redirect URL.
func (s *StripeService) CreateCheckoutSession(customerID, priceID, successURL, cancelURL string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}

	session, err := s.client.CheckoutSessions.New(params)
	if err != nil {
		log.Printf("stripe: create checkout session for customer %s failed: %v", customerID, err)
		return "", err
	}

	log.Printf("stripe: created checkout session %s for customer %s", session.ID, customerID)
	return session.URL, nil
}

// CancelSubscription cancels the subscription at the provider and
// reports whether the provider confirmed the cancellation.
func (s *StripeService) CancelSubscription(subscriptionID string) (bool, error) {
	sub, err := s.client.Subscriptions.Cancel(subscriptionID, nil)
	if err != nil {
		log.Printf("stripe: cancel subscription %s failed: %v", subscriptionID, err)
		return false, err
	}

	log.Printf("stripe: cancelled subscription %s", subscriptionID)
	return sub.Status == stripe.SubscriptionStatusCanceled, nil
}

// GetSubscriptionDetails fetches the provider state of a subscription.
// A provider failure degrades to nil instead of propagating.
func (s *StripeService) GetSubscriptionDetails(subscriptionID string) *SubscriptionDetails {
	sub, err := s.client.Subscriptions.Get(subscriptionID, nil)
	if err != nil {
		log.Printf("stripe: get subscription %s failed: %v", subscriptionID, err)
		return nil
	}

	details := &SubscriptionDetails{
		SubscriptionID:     sub.ID,
		Status:             string(sub.Status),
		CurrentPeriodStart: time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
	}
	if sub.Customer != nil {
		details.CustomerID = sub.Customer.ID
	}
	if priceID := subscriptionPriceID(sub); priceID != "" {
		details.PriceID = priceID
	}
	return details
}

// subscriptionPriceID pulls the price id from the first subscription
// item; Stripe sends exactly one item for single-plan subscriptions.
func subscriptionPriceID(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return ""
	}
	item := sub.Items.Data[0]
	if item.Price == nil {
		return ""
	}
	return item.Price.ID
}

func subscriptionProductID(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return ""
	}
	item := sub.Items.Data[0]
	if item.Price == nil || item.Price.Product == nil {
		return ""
	}
	return item.Price.Product.ID
}
