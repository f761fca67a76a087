package billing_model

// BillingStatus is the canonical per-vehicle subscription state, mirroring
// the processor's subscription status vocabulary plus "none" for vehicles
// that never checked out.
type BillingStatus string

const (
	BillingStatusNone       BillingStatus = "none"
	BillingStatusIncomplete BillingStatus = "incomplete"
	BillingStatusTrialing   BillingStatus = "trialing"
	BillingStatusActive     BillingStatus = "active"
	BillingStatusPastDue    BillingStatus = "past_due"
	BillingStatusCanceled   BillingStatus = "canceled"
)

// Active reports whether the status grants member-facing access. is_active
// on the vehicle record is always derived from this predicate, never set
// independently.
func (s BillingStatus) Active() bool {
	return s == BillingStatusActive || s == BillingStatusTrialing
}

// FromProcessor maps a raw processor status string onto the canonical set.
// Statuses outside the vocabulary that still deny access (e.g.
// incomplete_expired, unpaid) collapse onto their nearest canonical value.
func FromProcessor(raw string) BillingStatus {
	switch raw {
	case "active":
		return BillingStatusActive
	case "trialing":
		return BillingStatusTrialing
	case "past_due":
		return BillingStatusPastDue
	case "canceled":
		return BillingStatusCanceled
	case "incomplete":
		return BillingStatusIncomplete
	case "incomplete_expired", "unpaid":
		return BillingStatusCanceled
	case "":
		return BillingStatusNone
	default:
		return BillingStatus(raw)
	}
}
