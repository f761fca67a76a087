package billing_model

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutRequest initiates a new checkout flow for one vehicle.
type CheckoutRequest struct {
	VehicleID  uuid.UUID `json:"vehicle_id" validate:"required"`
	SuccessURL string    `json:"success_url" validate:"omitempty,url"`
	CancelURL  string    `json:"cancel_url" validate:"omitempty,url"`
}

// CheckoutResponse carries the hosted redirect URL. The caller never blocks
// on webhook confirmation.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// ConfirmRequest is the synchronous reconciliation trigger fired when the
// browser returns from the hosted checkout page.
type ConfirmRequest struct {
	SessionID string `json:"session_id" validate:"required,checkout_session"`
}

// ConfirmResponse is the resolved billing tuple after confirmation.
type ConfirmResponse struct {
	SubscriptionID   string        `json:"subscription_id,omitempty"`
	BillingStatus    BillingStatus `json:"billing_status"`
	CurrentPeriodEnd *time.Time    `json:"current_period_end,omitempty"`
	CustomerID       string        `json:"customer_id,omitempty"`
}

// CancelResponse reports the outcome of a cancellation request. Cancelled is
// true whenever the member-facing state converged to inactive, even if the
// upstream call graph only partially succeeded.
type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
	// Warning carries the first upstream error for operator visibility when
	// the fallback chain only partially succeeded.
	Warning string `json:"warning,omitempty"`
}

// VehicleBillingStatus is the wallet read of one vehicle's billing tuple.
type VehicleBillingStatus struct {
	VehicleID        uuid.UUID     `json:"vehicle_id"`
	SubscriptionID   *string       `json:"subscription_id,omitempty"`
	BillingStatus    BillingStatus `json:"billing_status"`
	CurrentPeriodEnd *time.Time    `json:"current_period_end,omitempty"`
	IsActive         bool          `json:"is_active"`
}
