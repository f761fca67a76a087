package billing_service

import (
	"context"
	"fmt"

	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	member_entity "github.com/motorpass/motorpass-server/src/member/entity"
)

// ConfirmCheckout is the synchronous reconciliation path, invoked when the
// browser returns from the hosted checkout page before the webhook is
// guaranteed to have arrived. It fetches the session and its subscription
// and applies the same transition core as the webhook path, so the two may
// race freely: both always write a fully consistent tuple from the same
// upstream objects.
//
// Retrieval errors are reported to the caller as retryable; "not found yet"
// is indistinguishable from "never will exist", so nothing is ever inferred
// as canceled here.
func (s *Service) ConfirmCheckout(ctx context.Context, member *member_entity.Member, sessionID string) (*billing_model.ConfirmResponse, error) {
	if err := s.providerReady(); err != nil {
		return nil, err
	}

	stepCtx, cancel := s.stepContext(ctx)
	sess, err := s.provider.GetCheckoutSession(stepCtx, sessionID)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("checkout session not retrievable: %w", err)
	}

	// Scope the write to the calling member.
	if sess.MemberID != member.ID.String() {
		return nil, ErrNotVehicleOwner
	}

	if sess.SubscriptionID == "" {
		// Session exists but produced no subscription yet: still finalizing.
		// The caller may re-poll; no state is written.
		return &billing_model.ConfirmResponse{
			BillingStatus: billing_model.BillingStatusIncomplete,
			CustomerID:    sess.CustomerID,
		}, nil
	}

	stepCtx, cancel = s.stepContext(ctx)
	snap, err := s.provider.GetSubscription(stepCtx, sess.SubscriptionID)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("subscription not retrievable: %w", err)
	}

	if snap.VehicleID == "" {
		snap.VehicleID = sess.VehicleID
	}
	if snap.MemberID == "" {
		snap.MemberID = sess.MemberID
	}
	if snap.CustomerID == "" {
		snap.CustomerID = sess.CustomerID
	}

	if err := s.ApplySubscription(ctx, *snap); err != nil {
		return nil, err
	}

	return &billing_model.ConfirmResponse{
		SubscriptionID:   snap.ID,
		BillingStatus:    snap.Status,
		CurrentPeriodEnd: snap.PeriodEnd(),
		CustomerID:       snap.CustomerID,
	}, nil
}
