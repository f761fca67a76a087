package billing_service

import (
	"context"
	"fmt"

	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	"github.com/motorpass/motorpass-server/src/billing/service/payment"
	member_entity "github.com/motorpass/motorpass-server/src/member/entity"
	"github.com/pterm/pterm"
)

// CreateCheckout opens a new hosted checkout flow for one vehicle and
// returns the redirect URL. Always a fresh subscription per invocation;
// historical subscriptions for the same vehicle are disambiguated by
// metadata, never assumed unique. Never blocks on webhook confirmation.
func (s *Service) CreateCheckout(ctx context.Context, member *member_entity.Member, req billing_model.CheckoutRequest) (*billing_model.CheckoutResponse, error) {
	if err := s.providerReady(); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleOwnedBy(ctx, req.VehicleID, member.ID)
	if err != nil {
		return nil, err
	}

	known := ""
	if member.StripeCustomerID != nil {
		known = *member.StripeCustomerID
	}
	customerID, err := s.ResolveCustomer(ctx, member.ID, known)
	if err != nil {
		return nil, err
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = s.cfg.DefaultSuccessURL
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = s.cfg.DefaultCancelURL
	}

	stepCtx, cancel := s.stepContext(ctx)
	defer cancel()

	sess, err := s.provider.CreateVehicleCheckout(stepCtx, payment.CheckoutParams{
		VehicleID:   vehicle.ID.String(),
		MemberID:    member.ID.String(),
		MemberEmail: member.Email,
		CustomerID:  customerID,
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	// Audit/dedupe: record which session we sent the member to. Not part of
	// the billing tuple; failure to record is not fatal to the checkout.
	if err := s.store.MergeVehicleBilling(ctx, vehicle.ID, map[string]any{
		"last_checkout_session_id": sess.ID,
	}); err != nil {
		pterm.DefaultLogger.Warn(fmt.Sprintf(
			"failed to record checkout session id on vehicle %s: %s", vehicle.ID, err,
		))
	}

	return &billing_model.CheckoutResponse{
		CheckoutURL: sess.URL,
		SessionID:   sess.ID,
	}, nil
}
