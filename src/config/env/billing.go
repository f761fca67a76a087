package env

import (
	"os"

	"github.com/pterm/pterm"
)

var (
	StripeSecretKey     string
	StripeWebhookSecret string
	// StripeVehiclePriceID is the single flat recurring price charged per vehicle.
	StripeVehiclePriceID string
	// Default redirect targets for the hosted checkout page. Callers may
	// override them per request.
	BillingSuccessURL string
	BillingCancelURL  string
)

func loadBillingEnv() {
	StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	StripeWebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	StripeVehiclePriceID = os.Getenv("STRIPE_VEHICLE_PRICE_ID")

	BillingSuccessURL = os.Getenv("BILLING_SUCCESS_URL")
	if BillingSuccessURL == "" {
		BillingSuccessURL = AppBaseURL + "/wallet?checkout={CHECKOUT_SESSION_ID}"
	}
	BillingCancelURL = os.Getenv("BILLING_CANCEL_URL")
	if BillingCancelURL == "" {
		BillingCancelURL = AppBaseURL + "/wallet"
	}

	if StripeSecretKey == "" {
		pterm.DefaultLogger.Warn("Stripe billing integration is NOT configured (STRIPE_SECRET_KEY not set)")
		return
	}

	pterm.DefaultLogger.Info("Stripe billing integration is CONFIGURED")

	if StripeWebhookSecret == "" {
		pterm.DefaultLogger.Warn("STRIPE_WEBHOOK_SECRET not set; webhook events will be rejected")
	}
	if StripeVehiclePriceID == "" {
		pterm.DefaultLogger.Warn("STRIPE_VEHICLE_PRICE_ID not set; checkout creation will fail until configured")
	}
}
