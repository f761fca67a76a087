package billing_model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBillingStatusActive(t *testing.T) {
	assert.True(t, BillingStatusActive.Active())
	assert.True(t, BillingStatusTrialing.Active())

	assert.False(t, BillingStatusNone.Active())
	assert.False(t, BillingStatusIncomplete.Active())
	assert.False(t, BillingStatusPastDue.Active())
	assert.False(t, BillingStatusCanceled.Active())
}

func TestFromProcessor(t *testing.T) {
	cases := []struct {
		raw  string
		want BillingStatus
	}{
		{"active", BillingStatusActive},
		{"trialing", BillingStatusTrialing},
		{"past_due", BillingStatusPastDue},
		{"canceled", BillingStatusCanceled},
		{"incomplete", BillingStatusIncomplete},
		{"incomplete_expired", BillingStatusCanceled},
		{"unpaid", BillingStatusCanceled},
		{"", BillingStatusNone},
		{"paused", BillingStatus("paused")},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FromProcessor(tc.raw), "raw %q", tc.raw)
	}
}
