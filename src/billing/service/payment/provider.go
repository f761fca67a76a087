package payment

import (
	"context"
	"errors"

	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
)

// ErrNotConfigured is returned when the billing processor credentials or
// price configuration are missing. Configuration failures never degrade to
// a no-op billing flow.
var ErrNotConfigured = errors.New("payment provider is not configured")

// CheckoutParams describes one vehicle checkout. The customer id must
// already be resolved; checkout never proceeds on an email-only association.
type CheckoutParams struct {
	VehicleID   string
	MemberID    string
	MemberEmail string
	CustomerID  string
	SuccessURL  string
	CancelURL   string
}

// Provider is the billing-processor boundary. Implementations return the
// engine's own model types; processor SDK types never cross this line.
type Provider interface {
	Name() string

	// CreateCustomer creates a billing customer for a member, using the
	// email as a hint when it is a deliverable internet address.
	CreateCustomer(ctx context.Context, memberID, email, name string) (string, error)

	// CreateVehicleCheckout opens a new hosted checkout flow producing a
	// fresh subscription for one vehicle, with {vehicle_id, member_id}
	// metadata embedded on both the session and the subscription-to-be.
	CreateVehicleCheckout(ctx context.Context, params CheckoutParams) (*billing_model.CheckoutSession, error)

	// GetCheckoutSession retrieves a session, with its subscription
	// reference resolved when one exists.
	GetCheckoutSession(ctx context.Context, sessionID string) (*billing_model.CheckoutSession, error)

	// GetSubscription retrieves the current subscription snapshot.
	GetSubscription(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error)

	// ListCustomerSubscriptions returns every subscription (any status)
	// belonging to a billing customer.
	ListCustomerSubscriptions(ctx context.Context, customerID string) ([]billing_model.SubscriptionSnapshot, error)

	// CancelNow terminates a subscription immediately, without proration or
	// further invoicing.
	CancelNow(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error)

	// CancelAtPeriodEnd marks a subscription to end at the paid period's
	// close instead of renewing.
	CancelAtPeriodEnd(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error)

	// ParseLifecycleEvent verifies the signature over the raw payload and
	// classifies the event. Verification failure means no state change.
	ParseLifecycleEvent(payload []byte, signature string) (billing_model.LifecycleEvent, error)
}
