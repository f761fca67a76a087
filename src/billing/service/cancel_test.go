package billing_service

import (
	"context"
	"errors"
	"testing"
	"time"

	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	member_entity "github.com/motorpass/motorpass-server/src/member/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberWithCustomer(store *fakeStore, customerID string) *member_entity.Member {
	member := store.seedMember("alice@example.com", "Alice")
	store.members[member.ID].StripeCustomerID = &customerID
	copied := store.memberState(member.ID)
	return &copied
}

func TestCancelVehicleRejectsForeignVehicle(t *testing.T) {
	store := newFakeStore()
	owner := store.seedMember("owner@example.com", "Owner")
	vehicle := store.seedVehicle(owner.ID, "AB-123-CD")
	intruder := store.seedMember("other@example.com", "Other")
	service := newTestService(store, &fakeProvider{})

	_, err := service.CancelVehicle(context.Background(), intruder, vehicle.ID)
	assert.ErrorIs(t, err, ErrNotVehicleOwner)
}

func TestCancelVehicleNothingToCancel(t *testing.T) {
	store := newFakeStore()
	member := store.seedMember("alice@example.com", "Alice")
	vehicle := store.seedVehicle(member.ID, "AB-123-CD")
	service := newTestService(store, &fakeProvider{})

	resp, err := service.CancelVehicle(context.Background(), member, vehicle.ID)
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
	assert.Empty(t, resp.Warning)

	got := store.vehicleState(vehicle.ID)
	assert.Equal(t, billing_model.BillingStatusCanceled, got.BillingStatus)
	assert.False(t, got.IsActive)
}

func TestCancelVehicleAlreadyCanceledUpstream(t *testing.T) {
	store := newFakeStore()
	member := memberWithCustomer(store, "cus_900")
	vehicle := store.seedVehicle(member.ID, "AB-123-CD")
	subID := "sub_900"
	store.vehicles[vehicle.ID].SubscriptionID = &subID
	store.vehicles[vehicle.ID].BillingStatus = billing_model.BillingStatusActive
	store.vehicles[vehicle.ID].IsActive = true

	provider := &fakeProvider{
		getSubscriptionFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			return &billing_model.SubscriptionSnapshot{
				ID:     subID,
				Status: billing_model.BillingStatusCanceled,
			}, nil
		},
	}
	service := newTestService(store, provider)

	resp, err := service.CancelVehicle(context.Background(), member, vehicle.ID)
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
	assert.Zero(t, provider.cancelNowCount())

	got := store.vehicleState(vehicle.ID)
	assert.Equal(t, billing_model.BillingStatusCanceled, got.BillingStatus)
	assert.False(t, got.IsActive)
}

func TestCancelVehicleImmediateSuccess(t *testing.T) {
	store := newFakeStore()
	member := memberWithCustomer(store, "cus_901")
	vehicle := store.seedVehicle(member.ID, "AB-123-CD")
	subID := "sub_901"
	store.vehicles[vehicle.ID].SubscriptionID = &subID
	store.vehicles[vehicle.ID].BillingStatus = billing_model.BillingStatusActive
	store.vehicles[vehicle.ID].IsActive = true

	periodEnd := time.Now().Add(10 * 24 * time.Hour).Truncate(time.Second)
	provider := &fakeProvider{
		getSubscriptionFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			return &billing_model.SubscriptionSnapshot{
				ID:     subID,
				Status: billing_model.BillingStatusActive,
				Items: []billing_model.SubscriptionItemSnapshot{
					{VehicleID: vehicle.ID.String(), CurrentPeriodEnd: &periodEnd},
				},
			}, nil
		},
		cancelNowFn: func(_ context.Context, id string) (*billing_model.SubscriptionSnapshot, error) {
			assert.Equal(t, subID, id)
			return &billing_model.SubscriptionSnapshot{
				ID:     subID,
				Status: billing_model.BillingStatusCanceled,
			}, nil
		},
	}
	service := newTestService(store, provider)

	resp, err := service.CancelVehicle(context.Background(), member, vehicle.ID)
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
	assert.Empty(t, resp.Warning)
	assert.Equal(t, 1, provider.cancelNowCount())

	got := store.vehicleState(vehicle.ID)
	assert.Equal(t, billing_model.BillingStatusCanceled, got.BillingStatus)
	assert.False(t, got.IsActive)
}

func TestCancelVehicleFallsBackToPeriodEnd(t *testing.T) {
	store := newFakeStore()
	member := memberWithCustomer(store, "cus_902")
	vehicle := store.seedVehicle(member.ID, "AB-123-CD")
	subID := "sub_902"
	store.vehicles[vehicle.ID].SubscriptionID = &subID
	store.vehicles[vehicle.ID].IsActive = true
	store.vehicles[vehicle.ID].BillingStatus = billing_model.BillingStatusActive

	immediateErr := errors.New("cancel rejected")
	provider := &fakeProvider{
		getSubscriptionFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			return &billing_model.SubscriptionSnapshot{ID: subID, Status: billing_model.BillingStatusActive}, nil
		},
		cancelNowFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			return nil, immediateErr
		},
		cancelAtPeriodFn: func(_ context.Context, id string) (*billing_model.SubscriptionSnapshot, error) {
			assert.Equal(t, subID, id)
			return &billing_model.SubscriptionSnapshot{
				ID:                subID,
				Status:            billing_model.BillingStatusActive,
				CancelAtPeriodEnd: true,
			}, nil
		},
	}
	service := newTestService(store, provider)

	resp, err := service.CancelVehicle(context.Background(), member, vehicle.ID)
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
	assert.Equal(t, immediateErr.Error(), resp.Warning)

	// Member-facing state converges to inactive regardless of the softer
	// upstream outcome.
	got := store.vehicleState(vehicle.ID)
	assert.Equal(t, billing_model.BillingStatusCanceled, got.BillingStatus)
	assert.False(t, got.IsActive)
}

func TestCancelVehicleAlwaysEndsInactive(t *testing.T) {
	store := newFakeStore()
	member := memberWithCustomer(store, "cus_903")
	vehicle := store.seedVehicle(member.ID, "AB-123-CD")
	subID := "sub_903"
	store.vehicles[vehicle.ID].SubscriptionID = &subID
	store.vehicles[vehicle.ID].IsActive = true
	store.vehicles[vehicle.ID].BillingStatus = billing_model.BillingStatusActive

	immediateErr := errors.New("immediate cancel failed")
	provider := &fakeProvider{
		getSubscriptionFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			return &billing_model.SubscriptionSnapshot{ID: subID, Status: billing_model.BillingStatusActive}, nil
		},
		cancelNowFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			return nil, immediateErr
		},
		cancelAtPeriodFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			return nil, errors.New("soft cancel failed")
		},
		listFn: func(context.Context, string) ([]billing_model.SubscriptionSnapshot, error) {
			return nil, errors.New("list failed")
		},
	}
	service := newTestService(store, provider)

	resp, err := service.CancelVehicle(context.Background(), member, vehicle.ID)
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
	assert.Equal(t, immediateErr.Error(), resp.Warning)

	got := store.vehicleState(vehicle.ID)
	assert.Equal(t, billing_model.BillingStatusCanceled, got.BillingStatus)
	assert.False(t, got.IsActive)
}

// Stored id drifted from reality: the subscription was deleted out of band,
// so lookup degrades to matching the customer's subscriptions by metadata.
func TestCancelVehicleVanishedSubscription(t *testing.T) {
	store := newFakeStore()
	member := memberWithCustomer(store, "cus_904")
	vehicle := store.seedVehicle(member.ID, "AB-123-CD")
	staleID := "sub_stale"
	store.vehicles[vehicle.ID].SubscriptionID = &staleID
	store.vehicles[vehicle.ID].IsActive = true
	store.vehicles[vehicle.ID].BillingStatus = billing_model.BillingStatusActive

	provider := &fakeProvider{
		getSubscriptionFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			return nil, errors.New("no such subscription")
		},
		listFn: func(_ context.Context, customerID string) ([]billing_model.SubscriptionSnapshot, error) {
			assert.Equal(t, "cus_904", customerID)
			return []billing_model.SubscriptionSnapshot{
				{ID: "sub_old", Status: billing_model.BillingStatusCanceled},
				{ID: "sub_live", Status: billing_model.BillingStatusActive, VehicleID: vehicle.ID.String()},
			}, nil
		},
		cancelNowFn: func(_ context.Context, id string) (*billing_model.SubscriptionSnapshot, error) {
			assert.Equal(t, "sub_live", id)
			return &billing_model.SubscriptionSnapshot{ID: id, Status: billing_model.BillingStatusCanceled}, nil
		},
	}
	service := newTestService(store, provider)

	resp, err := service.CancelVehicle(context.Background(), member, vehicle.ID)
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
	assert.Empty(t, resp.Warning)
	assert.Equal(t, 1, provider.cancelNowCount())

	got := store.vehicleState(vehicle.ID)
	assert.Equal(t, billing_model.BillingStatusCanceled, got.BillingStatus)
	assert.False(t, got.IsActive)
}

func TestCancelVehicleSweepsWhenTargetedCancelsFail(t *testing.T) {
	store := newFakeStore()
	member := memberWithCustomer(store, "cus_905")
	vehicle := store.seedVehicle(member.ID, "AB-123-CD")
	subID := "sub_905"
	store.vehicles[vehicle.ID].SubscriptionID = &subID
	store.vehicles[vehicle.ID].IsActive = true
	store.vehicles[vehicle.ID].BillingStatus = billing_model.BillingStatusActive

	provider := &fakeProvider{
		getSubscriptionFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			return &billing_model.SubscriptionSnapshot{ID: subID, Status: billing_model.BillingStatusActive}, nil
		},
		cancelNowFn: func(_ context.Context, id string) (*billing_model.SubscriptionSnapshot, error) {
			if id == subID {
				return nil, errors.New("immediate cancel failed")
			}
			return &billing_model.SubscriptionSnapshot{ID: id, Status: billing_model.BillingStatusCanceled}, nil
		},
		cancelAtPeriodFn: func(context.Context, string) (*billing_model.SubscriptionSnapshot, error) {
			return nil, errors.New("soft cancel failed")
		},
		listFn: func(context.Context, string) ([]billing_model.SubscriptionSnapshot, error) {
			return []billing_model.SubscriptionSnapshot{
				{ID: "sub_a", Status: billing_model.BillingStatusActive},
				{ID: "sub_b", Status: billing_model.BillingStatusPastDue},
				{ID: "sub_done", Status: billing_model.BillingStatusCanceled},
			}, nil
		},
	}
	service := newTestService(store, provider)

	resp, err := service.CancelVehicle(context.Background(), member, vehicle.ID)
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)
	assert.NotEmpty(t, resp.Warning)

	// Targeted attempt plus one sweep cancel per non-canceled subscription.
	provider.mu.Lock()
	targets := append([]string(nil), provider.cancelNowTargets...)
	provider.mu.Unlock()
	assert.Len(t, targets, 3)
	assert.Contains(t, targets, "sub_a")
	assert.Contains(t, targets, "sub_b")
	assert.NotContains(t, targets, "sub_done")

	got := store.vehicleState(vehicle.ID)
	assert.Equal(t, billing_model.BillingStatusCanceled, got.BillingStatus)
	assert.False(t, got.IsActive)
}

func TestCancelVehicleSoleNonCanceledFallback(t *testing.T) {
	store := newFakeStore()
	member := memberWithCustomer(store, "cus_906")
	vehicle := store.seedVehicle(member.ID, "AB-123-CD")
	store.vehicles[vehicle.ID].IsActive = true
	store.vehicles[vehicle.ID].BillingStatus = billing_model.BillingStatusActive

	// No stored id and no metadata match; the customer's only non-canceled
	// subscription is taken as the one covering the vehicle.
	provider := &fakeProvider{
		listFn: func(context.Context, string) ([]billing_model.SubscriptionSnapshot, error) {
			return []billing_model.SubscriptionSnapshot{
				{ID: "sub_only", Status: billing_model.BillingStatusActive},
				{ID: "sub_gone", Status: billing_model.BillingStatusCanceled},
			}, nil
		},
		cancelNowFn: func(_ context.Context, id string) (*billing_model.SubscriptionSnapshot, error) {
			assert.Equal(t, "sub_only", id)
			return &billing_model.SubscriptionSnapshot{ID: id, Status: billing_model.BillingStatusCanceled}, nil
		},
	}
	service := newTestService(store, provider)

	resp, err := service.CancelVehicle(context.Background(), member, vehicle.ID)
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)

	got := store.vehicleState(vehicle.ID)
	assert.Equal(t, billing_model.BillingStatusCanceled, got.BillingStatus)
	assert.False(t, got.IsActive)
}
