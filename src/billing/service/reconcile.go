package billing_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	"github.com/pterm/pterm"
)

// billingTuple builds the complete merge-write for one vehicle. is_active is
// derived from the status here and nowhere else, so the two can never
// diverge; writing the whole tuple at once keeps concurrent reconcilers
// (webhook vs. confirmation poll) last-write-wins safe.
func billingTuple(subscriptionID string, status billing_model.BillingStatus, periodEnd *time.Time) map[string]any {
	fields := map[string]any{
		"billing_status":     status,
		"is_active":          status.Active(),
		"current_period_end": periodEnd,
	}
	if subscriptionID != "" {
		fields["subscription_id"] = subscriptionID
	}
	return fields
}

// ApplySubscription is the shared state-transition function. Both
// reconciliation paths (webhook and confirmation poll) funnel through it:
// for every item attributable to a vehicle it overwrites the vehicle's
// billing tuple with the snapshot's data. Pure overwrite semantics — no
// increments, no appends — which makes replays and races idempotent.
func (s *Service) ApplySubscription(ctx context.Context, snap billing_model.SubscriptionSnapshot) error {
	items := snap.ItemsForReconciliation()
	if len(items) == 0 {
		pterm.DefaultLogger.Warn(fmt.Sprintf(
			"subscription %s carries no vehicle metadata; nothing to reconcile", snap.ID,
		))
		return nil
	}

	var firstErr error
	for _, item := range items {
		vehicleID, err := uuid.Parse(item.VehicleID)
		if err != nil {
			pterm.DefaultLogger.Warn(fmt.Sprintf(
				"subscription %s item carries malformed vehicle id %q", snap.ID, item.VehicleID,
			))
			continue
		}

		fields := billingTuple(snap.ID, snap.Status, item.CurrentPeriodEnd)
		if err := s.store.MergeVehicleBilling(ctx, vehicleID, fields); err != nil {
			pterm.DefaultLogger.Error(fmt.Sprintf(
				"failed to reconcile vehicle %s from subscription %s: %s", vehicleID, snap.ID, err,
			))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	// Backfill the member's customer mapping when the snapshot names one.
	// Write-once: an existing mapping is never overwritten.
	if snap.CustomerID != "" && snap.MemberID != "" {
		if memberID, err := uuid.Parse(snap.MemberID); err == nil {
			if err := s.store.SetMemberCustomerID(ctx, memberID, snap.CustomerID); err != nil {
				pterm.DefaultLogger.Warn(fmt.Sprintf(
					"failed to backfill customer mapping for member %s: %s", memberID, err,
				))
			}
		}
	}

	return firstErr
}

// ProcessEvent applies one verified lifecycle event. Safe to call with
// redelivered events: transitions are idempotent per event content.
func (s *Service) ProcessEvent(ctx context.Context, event billing_model.LifecycleEvent) error {
	switch e := event.(type) {
	case billing_model.CheckoutCompletedEvent:
		return s.processCheckoutCompleted(ctx, e)

	case billing_model.SubscriptionUpdatedEvent:
		return s.ApplySubscription(ctx, e.Subscription)

	case billing_model.SubscriptionDeletedEvent:
		snap := e.Subscription
		snap.Status = billing_model.BillingStatusCanceled
		if err := s.ApplySubscription(ctx, snap); err != nil {
			return err
		}
		s.notifyAsync(snap, false)
		return nil

	case billing_model.IgnoredEvent:
		// The feed is a superset of what the engine cares about; unknown
		// types are acknowledged so the processor does not retry.
		return nil
	}

	pterm.DefaultLogger.Warn(fmt.Sprintf("unhandled lifecycle event type %q", event.EventType()))
	return nil
}

// processCheckoutCompleted reconciles a finished hosted-checkout flow. The
// session names the vehicle; its subscription (when already created) is
// fetched so the tuple written here matches what subscription events will
// later overwrite it with.
func (s *Service) processCheckoutCompleted(ctx context.Context, e billing_model.CheckoutCompletedEvent) error {
	sess := e.Session
	if sess.VehicleID == "" {
		pterm.DefaultLogger.Warn(fmt.Sprintf(
			"checkout session %s completed without vehicle metadata; ignoring", sess.ID,
		))
		return nil
	}

	var snap *billing_model.SubscriptionSnapshot
	if sess.SubscriptionID != "" {
		stepCtx, cancel := s.stepContext(ctx)
		fetched, err := s.provider.GetSubscription(stepCtx, sess.SubscriptionID)
		cancel()
		if err != nil {
			pterm.DefaultLogger.Warn(fmt.Sprintf(
				"checkout session %s: subscription %s not retrievable yet: %s",
				sess.ID, sess.SubscriptionID, err,
			))
		} else {
			snap = fetched
		}
	}

	if snap == nil {
		// Subscription not retrievable: write an activation tuple from the
		// session alone. Still a complete tuple, with an unknown period end
		// that the subscription.updated event will fill in.
		status := billing_model.BillingStatusIncomplete
		if sess.PaymentStatus == "paid" {
			status = billing_model.BillingStatusActive
		}
		snap = &billing_model.SubscriptionSnapshot{
			ID:         sess.SubscriptionID,
			CustomerID: sess.CustomerID,
			Status:     status,
		}
	}

	// The session's own metadata is authoritative for attribution when the
	// subscription carries none.
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
		return err
	}

	// Audit: remember the session that produced this state.
	if vehicleID, err := uuid.Parse(sess.VehicleID); err == nil {
		if err := s.store.MergeVehicleBilling(ctx, vehicleID, map[string]any{
			"last_checkout_session_id": sess.ID,
		}); err != nil {
			pterm.DefaultLogger.Warn(fmt.Sprintf(
				"failed to record checkout session id on vehicle %s: %s", vehicleID, err,
			))
		}
	}

	if snap.Status.Active() {
		s.notifyAsync(*snap, true)
	}
	return nil
}

// notifyAsync delivers the member-facing email after state is persisted.
// Delivery failure never affects the transition.
func (s *Service) notifyAsync(snap billing_model.SubscriptionSnapshot, activated bool) {
	if s.notifier == nil || snap.MemberID == "" {
		return
	}
	memberID, err := uuid.Parse(snap.MemberID)
	if err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		member, err := s.store.Member(ctx, memberID)
		if err != nil {
			return
		}

		label := "your vehicle"
		if snap.VehicleID != "" {
			if vehicleID, err := uuid.Parse(snap.VehicleID); err == nil {
				if vehicle, err := s.store.Vehicle(ctx, vehicleID); err == nil {
					if vehicle.Nickname != "" {
						label = vehicle.Nickname
					} else if vehicle.Plate != "" {
						label = vehicle.Plate
					}
				}
			}
		}

		var sendErr error
		if activated {
			sendErr = s.notifier.SendMembershipActivated(member.Email, member.Name, label)
		} else {
			sendErr = s.notifier.SendMembershipCancelled(member.Email, member.Name, label)
		}
		if sendErr != nil {
			pterm.DefaultLogger.Warn("failed to send billing notification: " + sendErr.Error())
		}
	}()
}
