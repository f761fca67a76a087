package billing_service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	"github.com/motorpass/motorpass-server/src/billing/service/payment"
	member_entity "github.com/motorpass/motorpass-server/src/member/entity"
	vehicle_entity "github.com/motorpass/motorpass-server/src/vehicle/entity"
)

// fakeStore is an in-memory Store with the same merge-write and guarded
// write-once semantics as the Postgres implementation.
type fakeStore struct {
	mu       sync.Mutex
	vehicles map[uuid.UUID]*vehicle_entity.Vehicle
	members  map[uuid.UUID]*member_entity.Member

	mergeCalls       int
	mergeErr         error
	setCustomerCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vehicles: make(map[uuid.UUID]*vehicle_entity.Vehicle),
		members:  make(map[uuid.UUID]*member_entity.Member),
	}
}

func (f *fakeStore) seedMember(email, name string) *member_entity.Member {
	f.mu.Lock()
	defer f.mu.Unlock()
	member := &member_entity.Member{ID: uuid.New(), Email: email, Name: name}
	f.members[member.ID] = member
	return member
}

func (f *fakeStore) seedVehicle(memberID uuid.UUID, plate string) *vehicle_entity.Vehicle {
	f.mu.Lock()
	defer f.mu.Unlock()
	vehicle := &vehicle_entity.Vehicle{
		ID:            uuid.New(),
		MemberID:      memberID,
		Plate:         plate,
		BillingStatus: billing_model.BillingStatusNone,
	}
	f.vehicles[vehicle.ID] = vehicle
	return vehicle
}

func (f *fakeStore) vehicleState(id uuid.UUID) vehicle_entity.Vehicle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.vehicles[id]
}

func (f *fakeStore) memberState(id uuid.UUID) member_entity.Member {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.members[id]
}

func (f *fakeStore) Vehicle(_ context.Context, id uuid.UUID) (*vehicle_entity.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vehicle, ok := f.vehicles[id]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	copied := *vehicle
	return &copied, nil
}

func (f *fakeStore) MergeVehicleBilling(_ context.Context, vehicleID uuid.UUID, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mergeCalls++
	if f.mergeErr != nil {
		return f.mergeErr
	}
	vehicle, ok := f.vehicles[vehicleID]
	if !ok {
		return ErrVehicleNotFound
	}
	for key, value := range fields {
		switch key {
		case "billing_status":
			vehicle.BillingStatus = value.(billing_model.BillingStatus)
		case "is_active":
			vehicle.IsActive = value.(bool)
		case "current_period_end":
			vehicle.CurrentPeriodEnd = value.(*time.Time)
		case "subscription_id":
			id := value.(string)
			vehicle.SubscriptionID = &id
		case "last_checkout_session_id":
			id := value.(string)
			vehicle.LastCheckoutSessionID = &id
		}
	}
	return nil
}

func (f *fakeStore) Member(_ context.Context, id uuid.UUID) (*member_entity.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	member, ok := f.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (f *fakeStore) SetMemberCustomerID(_ context.Context, memberID uuid.UUID, customerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCustomerCalls++
	member, ok := f.members[memberID]
	if !ok {
		return nil
	}
	if member.StripeCustomerID != nil && *member.StripeCustomerID != "" {
		return nil
	}
	member.StripeCustomerID = &customerID
	return nil
}

// fakeProvider implements payment.Provider with overridable behavior per
// method and call counters for assertions.
type fakeProvider struct {
	mu sync.Mutex

	createCustomerFn   func(ctx context.Context, memberID, email, name string) (string, error)
	createCheckoutFn   func(ctx context.Context, params payment.CheckoutParams) (*billing_model.CheckoutSession, error)
	getSessionFn       func(ctx context.Context, sessionID string) (*billing_model.CheckoutSession, error)
	getSubscriptionFn  func(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error)
	listFn             func(ctx context.Context, customerID string) ([]billing_model.SubscriptionSnapshot, error)
	cancelNowFn        func(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error)
	cancelAtPeriodFn   func(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error)
	parseFn            func(payload []byte, signature string) (billing_model.LifecycleEvent, error)
	createCustomerHits int
	cancelNowHits      int
	cancelNowTargets   []string
}

var errFakeUnexpected = errors.New("unexpected provider call")

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) CreateCustomer(ctx context.Context, memberID, email, name string) (string, error) {
	f.mu.Lock()
	f.createCustomerHits++
	fn := f.createCustomerFn
	f.mu.Unlock()
	if fn == nil {
		return "", errFakeUnexpected
	}
	return fn(ctx, memberID, email, name)
}

func (f *fakeProvider) CreateVehicleCheckout(ctx context.Context, params payment.CheckoutParams) (*billing_model.CheckoutSession, error) {
	if f.createCheckoutFn == nil {
		return nil, errFakeUnexpected
	}
	return f.createCheckoutFn(ctx, params)
}

func (f *fakeProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*billing_model.CheckoutSession, error) {
	if f.getSessionFn == nil {
		return nil, errFakeUnexpected
	}
	return f.getSessionFn(ctx, sessionID)
}

func (f *fakeProvider) GetSubscription(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error) {
	if f.getSubscriptionFn == nil {
		return nil, errFakeUnexpected
	}
	return f.getSubscriptionFn(ctx, subscriptionID)
}

func (f *fakeProvider) ListCustomerSubscriptions(ctx context.Context, customerID string) ([]billing_model.SubscriptionSnapshot, error) {
	if f.listFn == nil {
		return nil, errFakeUnexpected
	}
	return f.listFn(ctx, customerID)
}

func (f *fakeProvider) CancelNow(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error) {
	f.mu.Lock()
	f.cancelNowHits++
	f.cancelNowTargets = append(f.cancelNowTargets, subscriptionID)
	fn := f.cancelNowFn
	f.mu.Unlock()
	if fn == nil {
		return nil, errFakeUnexpected
	}
	return fn(ctx, subscriptionID)
}

func (f *fakeProvider) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error) {
	if f.cancelAtPeriodFn == nil {
		return nil, errFakeUnexpected
	}
	return f.cancelAtPeriodFn(ctx, subscriptionID)
}

func (f *fakeProvider) ParseLifecycleEvent(payload []byte, signature string) (billing_model.LifecycleEvent, error) {
	if f.parseFn == nil {
		return nil, errFakeUnexpected
	}
	return f.parseFn(payload, signature)
}

func (f *fakeProvider) cancelNowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelNowHits
}

func (f *fakeProvider) customerCreations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCustomerHits
}

// fakeNotifier records deliveries without sending anything.
type fakeNotifier struct {
	mu        sync.Mutex
	activated []string
	cancelled []string
}

func (f *fakeNotifier) SendMembershipActivated(to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activated = append(f.activated, to)
	return nil
}

func (f *fakeNotifier) SendMembershipCancelled(to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, to)
	return nil
}

func newTestService(store *fakeStore, provider *fakeProvider) *Service {
	return New(store, provider, &fakeNotifier{}, Config{
		DefaultSuccessURL: "https://app.test/wallet?checkout={CHECKOUT_SESSION_ID}",
		DefaultCancelURL:  "https://app.test/wallet",
		StepTimeout:       2 * time.Second,
	})
}
