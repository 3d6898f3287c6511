package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"
	"gorm.io/gorm"

	"fitstream/internal/models"
	"fitstream/internal/repositories"
)

var (
	ErrInvalidSignature     = errors.New("webhook signature verification failed")
	ErrUserNotFound         = errors.New("user not found")
	ErrPlanNotAvailable     = errors.New("plan not available for purchase")
	ErrNoActiveSubscription = errors.New("no active subscription")
)

// PaymentService orchestrates checkout against Stripe and reconciles
// inbound webhook events into local subscription and transaction rows.
type PaymentService struct {
	db            *gorm.DB
	stripe        *StripeService
	cache         *RedisCache
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewPaymentService(db *gorm.DB, stripeService *StripeService, cache *RedisCache, webhookSecret, successURL, cancelURL string) *PaymentService {
	return &PaymentService{
		db:            db,
		stripe:        stripeService,
		cache:         cache,
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
	}
}

// CreateCheckoutSession ensures the user is registered as a Stripe
// customer, then opens a hosted checkout for the plan's price.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, userID, planID uint) (string, error) {
	uow := repositories.NewUnitOfWork(s.db)

	user, err := uow.Users().GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	plan, err := uow.SubscriptionPlans().GetByID(ctx, planID)
	if err != nil {
		return "", err
	}
	if plan == nil || !plan.IsActive || plan.StripePriceID == "" {
		return "", ErrPlanNotAvailable
	}

	if user.StripeCustomerID == "" {
		customerID, err := s.stripe.CreateCustomer(user.ID, user.Email, user.FullName())
		if err != nil {
			return "", err
		}
		user.StripeCustomerID = customerID
		uow.Users().Update(user)
		if err := uow.SaveChanges(ctx); err != nil {
			return "", err
		}
	}

	return s.stripe.CreateCheckoutSession(user.StripeCustomerID, plan.StripePriceID, s.successURL, s.cancelURL)
}

// CancelSubscription cancels the user's active subscription at the
// provider. The local row is updated when the deletion webhook lands.
func (s *PaymentService) CancelSubscription(ctx context.Context, userID uint) error {
	uow := repositories.NewUnitOfWork(s.db)

	sub, err := uow.UserSubscriptions().GetActiveSubscriptionByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if sub == nil || sub.StripeSubscriptionID == "" {
		return ErrNoActiveSubscription
	}

	_, err = s.stripe.CancelSubscription(sub.StripeSubscriptionID)
	return err
}

// ProviderSubscriptionView returns the provider-side state of a local
// subscription, for support tooling. The provider view may be nil when
// Stripe is unreachable or the subscription is gone there.
func (s *PaymentService) ProviderSubscriptionView(ctx context.Context, subscriptionID uint) (*models.UserSubscription, *SubscriptionDetails, error) {
	uow := repositories.NewUnitOfWork(s.db)

	sub, err := uow.UserSubscriptions().GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, nil, err
	}
	if sub == nil || sub.StripeSubscriptionID == "" {
		return nil, nil, nil
	}

	return sub, s.stripe.GetSubscriptionDetails(sub.StripeSubscriptionID), nil
}

// ProcessWebhookEvent verifies the payload signature and reconciles
// the event into local state. Verification happens before anything is
// read or written; an unverifiable payload changes nothing.
func (s *PaymentService) ProcessWebhookEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := webhook.ConstructEvent(payload, signatureHeader, s.webhookSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	log.Printf("stripe webhook: processing event %s (%s)", event.ID, event.Type)

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("decode checkout session: %w", err)
		}
		// The subscription events that follow carry the real update.
		log.Printf("stripe webhook: checkout session completed: %s", session.ID)
		return nil

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("decode subscription: %w", err)
		}
		return s.reconcileSubscription(ctx, &sub)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("decode subscription: %w", err)
		}
		return s.markSubscriptionCancelled(ctx, sub.ID)

	case "invoice.paid":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return fmt.Errorf("decode invoice: %w", err)
		}
		return s.recordInvoicePaid(ctx, &invoice)

	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return fmt.Errorf("decode invoice: %w", err)
		}
		return s.markSubscriptionPastDue(ctx, &invoice)

	default:
		log.Printf("stripe webhook: unhandled event type %s", event.Type)
		return nil
	}
}

// reconcileSubscription upserts the local subscription row matching a
// provider subscription. Reconciliation is serialized per provider
// subscription id, so two concurrent deliveries cannot both pass the
// not-found check and insert duplicates.
func (s *PaymentService) reconcileSubscription(ctx context.Context, sub *stripe.Subscription) error {
	if s.cache != nil {
		lockKey := "stripe:reconcile:" + sub.ID
		acquired, err := s.cache.AcquireLock(ctx, lockKey, 30*time.Second)
		if err != nil {
			return err
		}
		if !acquired {
			return fmt.Errorf("reconciliation of subscription %s already in progress", sub.ID)
		}
		defer func() {
			_ = s.cache.ReleaseLock(ctx, lockKey)
		}()
	}

	status, err := mapSubscriptionStatus(sub.Status)
	if err != nil {
		return err
	}

	uow := repositories.NewUnitOfWork(s.db)

	existing, err := uow.UserSubscriptions().GetByStripeSubscriptionID(ctx, sub.ID)
	if err != nil {
		return err
	}

	periodStart := time.Unix(sub.CurrentPeriodStart, 0).UTC()
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0).UTC()

	if existing != nil {
		existing.StartDate = periodStart
		existing.EndDate = periodEnd
		existing.Status = status
		uow.UserSubscriptions().Update(existing)
		if err := uow.SaveChanges(ctx); err != nil {
			return err
		}
		log.Printf("stripe webhook: updated subscription %s", sub.ID)
		return nil
	}

	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}

	user, err := uow.Users().GetByStripeCustomerID(ctx, customerID)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("stripe webhook: no user for customer %s, dropping subscription %s", customerID, sub.ID)
		return nil
	}

	plan, err := uow.SubscriptionPlans().GetByStripePriceID(ctx, subscriptionPriceID(sub))
	if err != nil {
		return err
	}
	if plan == nil {
		// Price ids rotate when a plan is repriced; the product id is stable.
		plan, err = uow.SubscriptionPlans().GetByStripeProductID(ctx, subscriptionProductID(sub))
		if err != nil {
			return err
		}
	}
	if plan == nil {
		log.Printf("stripe webhook: no plan for price %s, dropping subscription %s", subscriptionPriceID(sub), sub.ID)
		return nil
	}

	uow.UserSubscriptions().Add(&models.UserSubscription{
		UserID:               user.ID,
		PlanID:               plan.ID,
		StripeSubscriptionID: sub.ID,
		StripeCustomerID:     customerID,
		StartDate:            periodStart,
		EndDate:              periodEnd,
		Status:               status,
	})
	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	log.Printf("stripe webhook: created subscription %s for user %d", sub.ID, user.ID)
	return nil
}

func (s *PaymentService) markSubscriptionCancelled(ctx context.Context, stripeSubscriptionID string) error {
	uow := repositories.NewUnitOfWork(s.db)

	sub, err := uow.UserSubscriptions().GetByStripeSubscriptionID(ctx, stripeSubscriptionID)
	if err != nil {
		return err
	}
	if sub == nil {
		return nil
	}

	sub.Status = models.SubscriptionStatusCancelled
	uow.UserSubscriptions().Update(sub)
	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	log.Printf("stripe webhook: cancelled subscription %s", stripeSubscriptionID)
	return nil
}

// recordInvoicePaid inserts a succeeded transaction for a paid
// invoice. The amount arrives in minor units; the row stores major
// units with the currency upper-cased. An invoice for an unknown
// customer is dropped.
func (s *PaymentService) recordInvoicePaid(ctx context.Context, invoice *stripe.Invoice) error {
	uow := repositories.NewUnitOfWork(s.db)

	customerID := ""
	if invoice.Customer != nil {
		customerID = invoice.Customer.ID
	}

	user, err := uow.Users().GetByStripeCustomerID(ctx, customerID)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("stripe webhook: no user for customer %s, dropping invoice %s", customerID, invoice.ID)
		return nil
	}

	var subscriptionID *uint
	if invoice.Subscription != nil && invoice.Subscription.ID != "" {
		sub, err := uow.UserSubscriptions().GetByStripeSubscriptionID(ctx, invoice.Subscription.ID)
		if err != nil {
			return err
		}
		if sub != nil {
			subscriptionID = &sub.ID
		}
	}

	paymentIntentID := ""
	if invoice.PaymentIntent != nil {
		paymentIntentID = invoice.PaymentIntent.ID
	}

	now := time.Now().UTC()
	uow.PaymentTransactions().Add(&models.PaymentTransaction{
		UserID:                user.ID,
		SubscriptionID:        subscriptionID,
		Amount:                float64(invoice.AmountPaid) / 100,
		Currency:              strings.ToUpper(string(invoice.Currency)),
		Status:                models.PaymentStatusSucceeded,
		Type:                  models.PaymentTypeSubscription,
		StripeInvoiceID:       invoice.ID,
		StripePaymentIntentID: paymentIntentID,
		CompletedAt:           &now,
	})
	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	log.Printf("stripe webhook: recorded payment for invoice %s", invoice.ID)
	return nil
}

func (s *PaymentService) markSubscriptionPastDue(ctx context.Context, invoice *stripe.Invoice) error {
	if invoice.Subscription == nil || invoice.Subscription.ID == "" {
		return nil
	}

	uow := repositories.NewUnitOfWork(s.db)

	sub, err := uow.UserSubscriptions().GetByStripeSubscriptionID(ctx, invoice.Subscription.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		return nil
	}

	sub.Status = models.SubscriptionStatusPastDue
	uow.UserSubscriptions().Update(sub)
	if err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	log.Printf("stripe webhook: payment failed for subscription %s", invoice.Subscription.ID)
	return nil
}

// mapSubscriptionStatus translates the provider's status string. An
// unrecognized status is an error rather than a silent default.
func mapSubscriptionStatus(status stripe.SubscriptionStatus) (models.SubscriptionStatus, error) {
	switch status {
	case stripe.SubscriptionStatusActive:
		return models.SubscriptionStatusActive, nil
	case stripe.SubscriptionStatusCanceled:
		return models.SubscriptionStatusCancelled, nil
	case stripe.SubscriptionStatusPastDue:
		return models.SubscriptionStatusPastDue, nil
	case "paused":
		return models.SubscriptionStatusPaused, nil
	default:
		return "", fmt.Errorf("unmapped stripe subscription status %q", status)
	}
}
