package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"
	"github.com/stripe/stripe-go/v84/customer"
	"github.com/stripe/stripe-go/v84/subscription"
	"github.com/stripe/stripe-go/v84/webhook"
)

// StripeProvider implements the Provider interface for Stripe billing.
type StripeProvider struct {
	priceID       string
	webhookSecret string
}

// NewStripeProvider configures the Stripe SDK. secretKey and priceID are
// required; a missing webhookSecret only disables event ingestion.
func NewStripeProvider(secretKey, webhookSecret, priceID string) (*StripeProvider, error) {
	if secretKey == "" {
		return nil, ErrNotConfigured
	}
	stripe.Key = secretKey
	return &StripeProvider{
		priceID:       priceID,
		webhookSecret: webhookSecret,
	}, nil
}

func (s *StripeProvider) Name() string {
	return "stripe"
}

// IsNotFound reports whether err is Stripe telling us the resource does not
// exist (as opposed to a transient failure).
func IsNotFound(err error) bool {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.Code == stripe.ErrorCodeResourceMissing ||
			stripeErr.HTTPStatusCode == http.StatusNotFound
	}
	return false
}

func (s *StripeProvider) CreateCustomer(ctx context.Context, memberID, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Metadata: map[string]string{
			billing_model.MetadataMemberID: memberID,
		},
	}
	params.Context = ctx

	// If the email is not a valid internet email (e.g. "su@sudo"), omit it —
	// Stripe rejects emails without a TLD.
	if isValidInternetEmail(email) {
		params.Email = stripe.String(email)
	}
	if name != "" {
		params.Name = stripe.String(name)
	}

	cust, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe customer: %w", err)
	}
	return cust.ID, nil
}

func (s *StripeProvider) CreateVehicleCheckout(ctx context.Context, p CheckoutParams) (*billing_model.CheckoutSession, error) {
	if s.priceID == "" {
		return nil, fmt.Errorf("vehicle price is not configured: %w", ErrNotConfigured)
	}

	metadata := map[string]string{
		billing_model.MetadataVehicleID: p.VehicleID,
		billing_model.MetadataMemberID:  p.MemberID,
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		Metadata:   metadata,
		// Dual embedding: completion and subscription lifecycle events
		// arrive as separate objects and each must be attributable to the
		// vehicle on its own.
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
		Customer: stripe.String(p.CustomerID),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe checkout session: %w", err)
	}

	return sessionView(sess), nil
}

func (s *StripeProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*billing_model.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("subscription")

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get stripe checkout session: %w", err)
	}
	return sessionView(sess), nil
}

func (s *StripeProvider) GetSubscription(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := subscription.Get(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get stripe subscription: %w", err)
	}
	return subscriptionSnapshot(sub), nil
}

func (s *StripeProvider) ListCustomerSubscriptions(ctx context.Context, customerID string) ([]billing_model.SubscriptionSnapshot, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx

	var snaps []billing_model.SubscriptionSnapshot
	iter := subscription.List(params)
	for iter.Next() {
		snaps = append(snaps, *subscriptionSnapshot(iter.Subscription()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list stripe subscriptions: %w", err)
	}
	return snaps, nil
}

func (s *StripeProvider) CancelNow(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error) {
	params := &stripe.SubscriptionCancelParams{
		InvoiceNow: stripe.Bool(false),
		Prorate:    stripe.Bool(false),
	}
	params.Context = ctx

	sub, err := subscription.Cancel(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel stripe subscription: %w", err)
	}
	return subscriptionSnapshot(sub), nil
}

func (s *StripeProvider) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) (*billing_model.SubscriptionSnapshot, error) {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	}
	params.Context = ctx

	sub, err := subscription.Update(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to set cancel_at_period_end: %w", err)
	}
	return subscriptionSnapshot(sub), nil
}

func (s *StripeProvider) ParseLifecycleEvent(payload []byte, signature string) (billing_model.LifecycleEvent, error) {
	if s.webhookSecret == "" {
		return nil, fmt.Errorf("stripe webhook secret: %w", ErrNotConfigured)
	}

	// Authenticity first: the raw body is verified before any JSON is
	// trusted.
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to verify webhook signature: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := sess.UnmarshalJSON(event.Data.Raw); err != nil {
			return nil, fmt.Errorf("failed to parse checkout session: %w", err)
		}
		return billing_model.CheckoutCompletedEvent{
			ID:      event.ID,
			Type:    string(event.Type),
			Session: *sessionView(&sess),
		}, nil

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := sub.UnmarshalJSON(event.Data.Raw); err != nil {
			return nil, fmt.Errorf("failed to parse subscription: %w", err)
		}
		return billing_model.SubscriptionUpdatedEvent{
			ID:           event.ID,
			Type:         string(event.Type),
			Subscription: *subscriptionSnapshot(&sub),
		}, nil

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := sub.UnmarshalJSON(event.Data.Raw); err != nil {
			return nil, fmt.Errorf("failed to parse subscription: %w", err)
		}
		return billing_model.SubscriptionDeletedEvent{
			ID:           event.ID,
			Type:         string(event.Type),
			Subscription: *subscriptionSnapshot(&sub),
		}, nil
	}

	return billing_model.IgnoredEvent{ID: event.ID, Type: string(event.Type)}, nil
}

func sessionView(sess *stripe.CheckoutSession) *billing_model.CheckoutSession {
	view := &billing_model.CheckoutSession{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		Status:        string(sess.Status),
		VehicleID:     sess.Metadata[billing_model.MetadataVehicleID],
		MemberID:      sess.Metadata[billing_model.MetadataMemberID],
	}
	if sess.Customer != nil {
		view.CustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		view.SubscriptionID = sess.Subscription.ID
	}
	return view
}

func subscriptionSnapshot(sub *stripe.Subscription) *billing_model.SubscriptionSnapshot {
	snap := &billing_model.SubscriptionSnapshot{
		ID:                sub.ID,
		Status:            billing_model.FromProcessor(string(sub.Status)),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		VehicleID:         sub.Metadata[billing_model.MetadataVehicleID],
		MemberID:          sub.Metadata[billing_model.MetadataMemberID],
	}
	if sub.Customer != nil {
		snap.CustomerID = sub.Customer.ID
	}

	// In Stripe v84, CurrentPeriodEnd lives on subscription items, not the
	// subscription itself.
	if sub.Items != nil {
		for _, item := range sub.Items.Data {
			snapItem := billing_model.SubscriptionItemSnapshot{
				VehicleID: item.Metadata[billing_model.MetadataVehicleID],
			}
			if item.CurrentPeriodEnd > 0 {
				end := time.Unix(item.CurrentPeriodEnd, 0)
				snapItem.CurrentPeriodEnd = &end
			}
			snap.Items = append(snap.Items, snapItem)
		}
	}
	return snap
}

// isValidInternetEmail checks that the email is RFC 5322 valid AND has a
// domain with at least one dot (i.e. a proper internet domain, not a local
// hostname like "su@sudo"). Stripe rejects emails without a TLD.
func isValidInternetEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	parts := strings.SplitN(addr.Address, "@", 2)
	return len(parts) == 2 && strings.Contains(parts[1], ".")
}
