package vehicle_entity

import (
	"time"

	"github.com/google/uuid"
	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
)

// Vehicle is one billable unit in a member's wallet. The billing tuple
// (subscription_id, billing_status, current_period_end, is_active) is only
// ever written together in a single merge-write so concurrent reconcilers
// cannot produce a torn state.
type Vehicle struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MemberID uuid.UUID `gorm:"type:uuid;index;not null" json:"member_id"`
	Plate    string    `gorm:"index" json:"plate"`
	Nickname string    `json:"nickname"`
	VIN      string    `json:"vin"`

	SubscriptionID        *string                     `gorm:"index" json:"subscription_id,omitempty"`
	BillingStatus         billing_model.BillingStatus `gorm:"default:none" json:"billing_status"`
	CurrentPeriodEnd      *time.Time                  `json:"current_period_end,omitempty"`
	LastCheckoutSessionID *string                     `json:"last_checkout_session_id,omitempty"`
	IsActive              bool                        `gorm:"default:false" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
