package billing_service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// billingCustomerPrefix is the processor's customer id convention. An id
// matching it is trusted as-is.
const billingCustomerPrefix = "cus_"

// ResolveCustomer ensures exactly one billing customer exists for a member
// and returns its id. Resolution order: a well-formed caller-supplied id,
// the persisted mapping, lazy creation. Creation failure aborts the caller;
// there is no email-only fallback, which would break the one-customer-per-
// member invariant.
func (s *Service) ResolveCustomer(ctx context.Context, memberID uuid.UUID, knownCustomerID string) (string, error) {
	if strings.HasPrefix(knownCustomerID, billingCustomerPrefix) {
		return knownCustomerID, nil
	}

	// Concurrent resolutions for one member collapse into a single flight
	// so at most one upstream customer is ever created.
	result, err, _ := s.customers.Do(memberID.String(), func() (any, error) {
		return s.resolveCustomerSlow(ctx, memberID)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (s *Service) resolveCustomerSlow(ctx context.Context, memberID uuid.UUID) (string, error) {
	member, err := s.store.Member(ctx, memberID)
	if err != nil {
		return "", err
	}
	if member.StripeCustomerID != nil && *member.StripeCustomerID != "" {
		return *member.StripeCustomerID, nil
	}

	stepCtx, cancel := s.stepContext(ctx)
	defer cancel()

	customerID, err := s.provider.CreateCustomer(stepCtx, memberID.String(), member.Email, member.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create billing customer: %w", err)
	}

	if err := s.store.SetMemberCustomerID(ctx, memberID, customerID); err != nil {
		return "", fmt.Errorf("failed to persist billing customer mapping: %w", err)
	}

	// The guarded write may have lost to a concurrent writer (e.g. a webhook
	// backfill); the persisted mapping wins.
	member, err = s.store.Member(ctx, memberID)
	if err == nil && member.StripeCustomerID != nil && *member.StripeCustomerID != "" {
		return *member.StripeCustomerID, nil
	}
	return customerID, nil
}
