package billing_service

import (
	"context"
	"time"

	"github.com/google/uuid"
	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	"github.com/motorpass/motorpass-server/src/billing/service/payment"
	notification_service "github.com/motorpass/motorpass-server/src/notification/service"
	vehicle_entity "github.com/motorpass/motorpass-server/src/vehicle/entity"
	"golang.org/x/sync/singleflight"
)

// Config carries the service's own knobs; processor credentials live in the
// injected provider.
type Config struct {
	// DefaultSuccessURL/DefaultCancelURL are used when the checkout request
	// does not override them.
	DefaultSuccessURL string
	DefaultCancelURL  string
	// StepTimeout bounds each individual call to the billing processor.
	// Cancellation runs up to three such calls in series.
	StepTimeout time.Duration
}

// Service is the subscription lifecycle reconciliation engine: checkout
// creation, webhook processing, confirmation polling and cancellation all
// converge on its shared transition core.
type Service struct {
	store    Store
	provider payment.Provider
	notifier notification_service.Notifier
	cfg      Config

	// customers collapses concurrent billing-customer resolutions for the
	// same member into one upstream creation.
	customers singleflight.Group
}

func New(store Store, provider payment.Provider, notifier notification_service.Notifier, cfg Config) *Service {
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = 10 * time.Second
	}
	return &Service{
		store:    store,
		provider: provider,
		notifier: notifier,
		cfg:      cfg,
	}
}

// stepContext bounds one upstream call.
func (s *Service) stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.StepTimeout)
}

// providerReady guards every path that talks to the billing processor. A
// missing provider is a configuration failure, never a silent no-op.
func (s *Service) providerReady() error {
	if s.provider == nil {
		return payment.ErrNotConfigured
	}
	return nil
}

// vehicleOwnedBy loads a vehicle and enforces ownership before any mutating
// action. Ownership failure is distinguishable from not-found.
func (s *Service) vehicleOwnedBy(ctx context.Context, vehicleID, memberID uuid.UUID) (*vehicle_entity.Vehicle, error) {
	vehicle, err := s.store.Vehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.MemberID != memberID {
		return nil, ErrNotVehicleOwner
	}
	return vehicle, nil
}

// VehicleStatus returns the persisted billing tuple for one owned vehicle.
func (s *Service) VehicleStatus(ctx context.Context, memberID, vehicleID uuid.UUID) (*billing_model.VehicleBillingStatus, error) {
	vehicle, err := s.vehicleOwnedBy(ctx, vehicleID, memberID)
	if err != nil {
		return nil, err
	}
	return &billing_model.VehicleBillingStatus{
		VehicleID:        vehicle.ID,
		SubscriptionID:   vehicle.SubscriptionID,
		BillingStatus:    vehicle.BillingStatus,
		CurrentPeriodEnd: vehicle.CurrentPeriodEnd,
		IsActive:         vehicle.IsActive,
	}, nil
}
