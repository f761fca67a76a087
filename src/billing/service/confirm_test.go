package billing_service

import (
	"context"
	"errors"
	"testing"
	"time"

	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmCheckoutScopedToCallingMember(t *testing.T) {
	store := newFakeStore()
	member := store.seedMember("alice@example.com", "Alice")
	other := store.seedMember("other@example.com", "Other")

	provider := &fakeProvider{
		getSessionFn: func(context.Context, string) (*billing_model.CheckoutSession, error) {
			return &billing_model.CheckoutSession{
				ID:       "cs_1000",
				MemberID: other.ID.String(),
			}, nil
		},
	}
	service := newTestService(store, provider)

	_, err := service.ConfirmCheckout(context.Background(), member, "cs_1000")
	assert.ErrorIs(t, err, ErrNotVehicleOwner)
	assert.Zero(t, store.mergeCalls)
}

func TestConfirmCheckoutSessionStillFinalizing(t *testing.T) {
	store := newFakeStore()
	member := store.seedMember("alice@example.com", "Alice")

	provider := &fakeProvider{
		getSessionFn: func(context.Context, string) (*billing_model.CheckoutSession, error) {
			return &billing_model.CheckoutSession{
				ID:         "cs_1001",
				CustomerID: "cus_1001",
				MemberID:   member.ID.String(),
			}, nil
		},
	}
	service := newTestService(store, provider)

	resp, err := service.ConfirmCheckout(context.Background(), member, "cs_1001")
	require.NoError(t, err)
	assert.Equal(t, billing_model.BillingStatusIncomplete, resp.BillingStatus)
	assert.Empty(t, resp.SubscriptionID)
	assert.Equal(t, "cus_1001", resp.CustomerID)

	// Still finalizing is not a transition; nothing is written.
	assert.Zero(t, store.mergeCalls)
}

func TestConfirmCheckoutRetrievalErrorIsRetryable(t *testing.T) {
	store := newFakeStore()
	member := store.seedMember("alice@example.com", "Alice")
	vehicle := store.seedVehicle(member.ID, "AB-123-CD")

	provider := &fakeProvider{
		getSessionFn: func(context.Context, string) (*billing_model.CheckoutSession, error) {
			return nil, errors.New("upstream timeout")
		},
	}
	service := newTestService(store, provider)

	_, err := service.ConfirmCheckout(context.Background(), member, "cs_1002")
	require.Error(t, err)

	// Never interpreted as canceled.
	got := store.vehicleState(vehicle.ID)
	assert.Equal(t, billing_model.BillingStatusNone, got.BillingStatus)
	assert.Zero(t, store.mergeCalls)
}

func TestConfirmCheckoutAppliesSubscription(t *testing.T) {
	store := newFakeStore()
	member := store.seedMember("alice@example.com", "Alice")
	vehicle := store.seedVehicle(member.ID, "AB-123-CD")

	periodEnd := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)
	provider := &fakeProvider{
		getSessionFn: func(context.Context, string) (*billing_model.CheckoutSession, error) {
			return &billing_model.CheckoutSession{
				ID:             "cs_1003",
				CustomerID:     "cus_1003",
				SubscriptionID: "sub_1003",
				PaymentStatus:  "paid",
				VehicleID:      vehicle.ID.String(),
				MemberID:       member.ID.String(),
			}, nil
		},
		getSubscriptionFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			// Subscription-level metadata absent; session attribution wins.
			return &billing_model.SubscriptionSnapshot{
				ID:         "sub_1003",
				CustomerID: "cus_1003",
				Status:     billing_model.BillingStatusTrialing,
				Items: []billing_model.SubscriptionItemSnapshot{
					{CurrentPeriodEnd: &periodEnd},
				},
			}, nil
		},
	}
	service := newTestService(store, provider)

	resp, err := service.ConfirmCheckout(context.Background(), member, "cs_1003")
	require.NoError(t, err)
	assert.Equal(t, "sub_1003", resp.SubscriptionID)
	assert.Equal(t, billing_model.BillingStatusTrialing, resp.BillingStatus)
	assert.Equal(t, "cus_1003", resp.CustomerID)
	require.NotNil(t, resp.CurrentPeriodEnd)
	assert.True(t, resp.CurrentPeriodEnd.Equal(periodEnd))

	got := store.vehicleState(vehicle.ID)
	require.NotNil(t, got.SubscriptionID)
	assert.Equal(t, "sub_1003", *got.SubscriptionID)
	assert.Equal(t, billing_model.BillingStatusTrialing, got.BillingStatus)
	assert.True(t, got.IsActive)

	gotMember := store.memberState(member.ID)
	require.NotNil(t, gotMember.StripeCustomerID)
	assert.Equal(t, "cus_1003", *gotMember.StripeCustomerID)
}
