package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v72"
)

func TestSubscriptionPriceID(t *testing.T) {
	sub := &stripe.Subscription{
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{ID: "price_123"}},
			},
		},
	}
	assert.Equal(t, "price_123", subscriptionPriceID(sub))

	assert.Empty(t, subscriptionPriceID(&stripe.Subscription{}))
	assert.Empty(t, subscriptionPriceID(&stripe.Subscription{Items: &stripe.SubscriptionItemList{}}))
	assert.Empty(t, subscriptionPriceID(&stripe.Subscription{
		Items: &stripe.SubscriptionItemList{Data: []*stripe.SubscriptionItem{{}}},
	}))
}
