package member_entity

import (
	"time"

	"github.com/google/uuid"
)

// Member is one person in the club. The billing customer mapping is written
// at most once per member (guarded merge-write); see the billing store.
type Member struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Name             string     `json:"name"`
	StripeCustomerID *string    `gorm:"index" json:"stripe_customer_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
