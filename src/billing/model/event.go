package billing_model

import "time"

// MetadataVehicleID and MetadataMemberID are the correlation keys embedded
// on both the checkout session and the subscription it produces. Webhook
// events for the two objects arrive independently and each must be
// attributable to a vehicle without a second lookup.
const (
	MetadataVehicleID = "vehicle_id"
	MetadataMemberID  = "member_id"
)

// SubscriptionItemSnapshot is one billable line of a subscription. A
// subscription may carry several (historically one per vehicle sharing a
// customer); every item with vehicle metadata gets reconciled.
type SubscriptionItemSnapshot struct {
	VehicleID        string
	CurrentPeriodEnd *time.Time
}

// SubscriptionSnapshot is the processor's view of one subscription, reduced
// to the fields the transition core needs. Snapshots are overwrite-
// consistent on the processor side, which is what makes replayed
// transitions idempotent.
type SubscriptionSnapshot struct {
	ID                string
	CustomerID        string
	Status            BillingStatus
	CancelAtPeriodEnd bool
	VehicleID         string // subscription-level metadata, fallback for items without their own
	MemberID          string
	Items             []SubscriptionItemSnapshot
}

// ItemsForReconciliation resolves the vehicle id of every item, falling back
// to the subscription-level metadata, and drops items that cannot be
// attributed to any vehicle.
func (s *SubscriptionSnapshot) ItemsForReconciliation() []SubscriptionItemSnapshot {
	out := make([]SubscriptionItemSnapshot, 0, len(s.Items))
	for _, item := range s.Items {
		if item.VehicleID == "" {
			item.VehicleID = s.VehicleID
		}
		if item.VehicleID == "" {
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 && s.VehicleID != "" {
		// Subscription with metadata but no attributable items: reconcile at
		// the subscription level with an unknown period end.
		out = append(out, SubscriptionItemSnapshot{VehicleID: s.VehicleID})
	}
	return out
}

// PeriodEnd returns the earliest known current-period end across items, or
// nil when the processor reported none.
func (s *SubscriptionSnapshot) PeriodEnd() *time.Time {
	var end *time.Time
	for _, item := range s.Items {
		if item.CurrentPeriodEnd == nil {
			continue
		}
		if end == nil || item.CurrentPeriodEnd.Before(*end) {
			end = item.CurrentPeriodEnd
		}
	}
	return end
}

// CheckoutSession is the engine's read-only view of a processor-hosted
// checkout flow. Never mutated locally.
type CheckoutSession struct {
	ID             string
	URL            string
	CustomerID     string
	SubscriptionID string
	PaymentStatus  string
	Status         string
	VehicleID      string
	MemberID       string
}

// LifecycleEvent is the tagged union of processor webhook events the engine
// reacts to. Payloads are parsed and validated once at the boundary; the
// transition core never inspects raw JSON.
type LifecycleEvent interface {
	EventID() string
	EventType() string
}

// CheckoutCompletedEvent: the member finished the hosted checkout page.
type CheckoutCompletedEvent struct {
	ID      string
	Type    string
	Session CheckoutSession
}

func (e CheckoutCompletedEvent) EventID() string   { return e.ID }
func (e CheckoutCompletedEvent) EventType() string { return e.Type }

// SubscriptionUpdatedEvent: status or period change on a subscription.
type SubscriptionUpdatedEvent struct {
	ID           string
	Type         string
	Subscription SubscriptionSnapshot
}

func (e SubscriptionUpdatedEvent) EventID() string   { return e.ID }
func (e SubscriptionUpdatedEvent) EventType() string { return e.Type }

// SubscriptionDeletedEvent: the processor fully ended a subscription.
type SubscriptionDeletedEvent struct {
	ID           string
	Type         string
	Subscription SubscriptionSnapshot
}

func (e SubscriptionDeletedEvent) EventID() string   { return e.ID }
func (e SubscriptionDeletedEvent) EventType() string { return e.Type }

// IgnoredEvent: authentic but irrelevant. Acknowledged so the processor
// does not retry; the feed is a superset of what the engine cares about.
type IgnoredEvent struct {
	ID   string
	Type string
}

func (e IgnoredEvent) EventID() string   { return e.ID }
func (e IgnoredEvent) EventType() string { return e.Type }
