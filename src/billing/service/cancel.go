package billing_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	"github.com/motorpass/motorpass-server/src/billing/service/payment"
	member_entity "github.com/motorpass/motorpass-server/src/member/entity"
	vehicle_entity "github.com/motorpass/motorpass-server/src/vehicle/entity"
	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"
)

// CancelVehicle terminates a vehicle's subscription with a layered fallback:
//
//  1. locate the subscription (stored id, then metadata match over the
//     customer's subscriptions, then the sole non-canceled one)
//  2. nothing found: mark the vehicle inactive, done
//  3. already canceled upstream: mark inactive, no redundant call
//  4. immediate cancel (no proration, no further invoicing)
//  5. on failure, cancel at period end
//  6. on failure, cancel every non-canceled subscription of the customer
//
// Whatever happens upstream, the vehicle ends inactive: a cancellation the
// application has accepted never leaves the member-facing state active. The
// first error from step 4 is surfaced as a warning for diagnostics.
func (s *Service) CancelVehicle(ctx context.Context, member *member_entity.Member, vehicleID uuid.UUID) (*billing_model.CancelResponse, error) {
	if err := s.providerReady(); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleOwnedBy(ctx, vehicleID, member.ID)
	if err != nil {
		return nil, err
	}

	customerID := ""
	if member.StripeCustomerID != nil {
		customerID = *member.StripeCustomerID
	}

	snap := s.locateSubscription(ctx, vehicle, customerID)

	if snap == nil {
		// Nothing to cancel upstream; converge the local state.
		if err := s.markVehicleCanceled(ctx, vehicle, "", nil); err != nil {
			return nil, err
		}
		return &billing_model.CancelResponse{Cancelled: true}, nil
	}

	if snap.Status == billing_model.BillingStatusCanceled {
		if err := s.markVehicleCanceled(ctx, vehicle, snap.ID, snap.PeriodEnd()); err != nil {
			return nil, err
		}
		return &billing_model.CancelResponse{Cancelled: true}, nil
	}

	terminal, firstErr := s.cancelWithFallback(ctx, snap, customerID)

	periodEnd := snap.PeriodEnd()
	if terminal != nil && terminal.PeriodEnd() != nil {
		periodEnd = terminal.PeriodEnd()
	}
	if err := s.markVehicleCanceled(ctx, vehicle, snap.ID, periodEnd); err != nil {
		return nil, err
	}

	resp := &billing_model.CancelResponse{Cancelled: true}
	if firstErr != nil {
		pterm.DefaultLogger.Warn(fmt.Sprintf(
			"cancellation of vehicle %s converged with upstream errors: %s", vehicle.ID, firstErr,
		))
		resp.Warning = firstErr.Error()
	}
	s.notifyAsync(billing_model.SubscriptionSnapshot{
		ID:        snap.ID,
		VehicleID: vehicle.ID.String(),
		MemberID:  member.ID.String(),
	}, false)
	return resp, nil
}

// locateSubscription resolves the subscription to cancel. The stored id can
// drift from reality (deleted out of band), so lookup degrades to matching
// the customer's subscriptions by vehicle metadata, then to the customer's
// only non-canceled subscription.
func (s *Service) locateSubscription(ctx context.Context, vehicle *vehicle_entity.Vehicle, customerID string) *billing_model.SubscriptionSnapshot {
	if vehicle.SubscriptionID != nil && *vehicle.SubscriptionID != "" {
		stepCtx, cancel := s.stepContext(ctx)
		snap, err := s.provider.GetSubscription(stepCtx, *vehicle.SubscriptionID)
		cancel()
		if err == nil {
			return snap
		}
		if payment.IsNotFound(err) {
			pterm.DefaultLogger.Warn(fmt.Sprintf(
				"stored subscription %s for vehicle %s no longer exists upstream",
				*vehicle.SubscriptionID, vehicle.ID,
			))
		} else {
			pterm.DefaultLogger.Warn(fmt.Sprintf(
				"failed to fetch stored subscription %s: %s", *vehicle.SubscriptionID, err,
			))
		}
	}

	if customerID == "" {
		return nil
	}

	stepCtx, cancel := s.stepContext(ctx)
	subs, err := s.provider.ListCustomerSubscriptions(stepCtx, customerID)
	cancel()
	if err != nil {
		pterm.DefaultLogger.Warn(fmt.Sprintf(
			"failed to list subscriptions for customer %s: %s", customerID, err,
		))
		return nil
	}

	vehicleID := vehicle.ID.String()
	var nonCanceled []billing_model.SubscriptionSnapshot
	for _, sub := range subs {
		if sub.Status == billing_model.BillingStatusCanceled {
			continue
		}
		if subscriptionCoversVehicle(&sub, vehicleID) {
			matched := sub
			return &matched
		}
		nonCanceled = append(nonCanceled, sub)
	}

	if len(nonCanceled) == 1 {
		return &nonCanceled[0]
	}
	return nil
}

func subscriptionCoversVehicle(sub *billing_model.SubscriptionSnapshot, vehicleID string) bool {
	if sub.VehicleID == vehicleID {
		return true
	}
	for _, item := range sub.Items {
		if item.VehicleID == vehicleID {
			return true
		}
	}
	return false
}

// cancelWithFallback runs steps 4-6. Each step is attempted only after the
// prior one's failure is observed, each bounded by the step timeout. Returns
// the terminal snapshot when one of the targeted cancels succeeded, along
// with the first error from the immediate attempt.
func (s *Service) cancelWithFallback(ctx context.Context, snap *billing_model.SubscriptionSnapshot, customerID string) (*billing_model.SubscriptionSnapshot, error) {
	// Step 4: immediate cancellation.
	stepCtx, cancel := s.stepContext(ctx)
	terminal, firstErr := s.provider.CancelNow(stepCtx, snap.ID)
	cancel()
	if firstErr == nil {
		return terminal, nil
	}
	pterm.DefaultLogger.Warn(fmt.Sprintf(
		"immediate cancel of subscription %s failed: %s", snap.ID, firstErr,
	))

	// Step 5: soft cancellation — the member keeps access through the paid
	// period but is not renewed.
	stepCtx, cancel = s.stepContext(ctx)
	soft, err := s.provider.CancelAtPeriodEnd(stepCtx, snap.ID)
	cancel()
	if err == nil {
		return soft, firstErr
	}
	pterm.DefaultLogger.Warn(fmt.Sprintf(
		"cancel-at-period-end of subscription %s failed: %s", snap.ID, err,
	))

	// Step 6: last resort when the subscription id has drifted from reality:
	// cancel everything non-canceled on the customer. Individual failures
	// are logged, never fatal — the governing outcome (inactive) is still
	// recorded by the caller.
	if customerID == "" {
		return nil, firstErr
	}

	stepCtx, cancel = s.stepContext(ctx)
	subs, err := s.provider.ListCustomerSubscriptions(stepCtx, customerID)
	cancel()
	if err != nil {
		pterm.DefaultLogger.Warn(fmt.Sprintf(
			"failed to list subscriptions of customer %s for sweep cancel: %s", customerID, err,
		))
		return nil, firstErr
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, sub := range subs {
		if sub.Status == billing_model.BillingStatusCanceled {
			continue
		}
		subID := sub.ID
		g.Go(func() error {
			stepCtx, cancel := s.stepContext(gctx)
			defer cancel()
			if _, err := s.provider.CancelNow(stepCtx, subID); err != nil {
				pterm.DefaultLogger.Warn(fmt.Sprintf(
					"sweep cancel of subscription %s failed: %s", subID, err,
				))
			}
			return nil
		})
	}
	_ = g.Wait()

	return nil, firstErr
}

// markVehicleCanceled persists the terminal state: is_active is false and
// the status is canceled no matter which step succeeded upstream.
func (s *Service) markVehicleCanceled(ctx context.Context, vehicle *vehicle_entity.Vehicle, subscriptionID string, periodEnd *time.Time) error {
	fields := billingTuple(subscriptionID, billing_model.BillingStatusCanceled, periodEnd)
	if periodEnd == nil {
		// Keep whatever period end is already stored; the tuple's
		// consistency hinges on status and is_active moving together.
		delete(fields, "current_period_end")
	}
	return s.store.MergeVehicleBilling(ctx, vehicle.ID, fields)
}
