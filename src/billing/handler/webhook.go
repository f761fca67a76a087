package billing_handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/motorpass/motorpass-server/src/billing/service/payment"
	common_model "github.com/motorpass/motorpass-server/src/common/model"
	"github.com/pterm/pterm"
)

// StripeWebhook handles incoming Stripe lifecycle events.
//
//	@Summary		Handle Stripe webhook
//	@Description	Receives and processes Stripe lifecycle events. Validates the raw payload against the Stripe-Signature header before any parsing. No authentication required.
//	@Tags			Billing Webhook
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header		string							true	"Stripe webhook signature"
//	@Success		200					{string}	string							"OK"
//	@Failure		400					{object}	common_model.DescriptiveError	"Invalid signature or payload"
//	@Failure		500					{object}	common_model.DescriptiveError	"Transition could not be persisted"
//	@Failure		503					{object}	common_model.DescriptiveError	"Payment provider not configured"
//	@Router			/billing/webhook/stripe [post]
func (h *Handler) StripeWebhook(c *fiber.Ctx) error {
	if h.provider == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(
			common_model.NewApiError("payment provider is not configured", payment.ErrNotConfigured, "billing").Send(),
		)
	}

	// c.Body() is the raw request body; signature verification needs it
	// byte-for-byte, before any JSON parsing.
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	event, err := h.provider.ParseLifecycleEvent(payload, signature)
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(
				common_model.NewApiError("payment provider is not configured", err, "billing").Send(),
			)
		}
		pterm.DefaultLogger.Error("Stripe webhook rejected: " + err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(
			common_model.NewApiError("invalid webhook payload", err, "billing").Send(),
		)
	}

	if err := h.service.ProcessEvent(c.UserContext(), event); err != nil {
		// Non-2xx makes Stripe redeliver; redelivery is safe because the
		// transition is an idempotent overwrite.
		pterm.DefaultLogger.Error(fmt.Sprintf(
			"failed to process event %s (%s): %s", event.EventID(), event.EventType(), err,
		))
		return c.Status(fiber.StatusInternalServerError).JSON(
			common_model.NewApiError("failed to apply lifecycle event", err, "billing").Send(),
		)
	}

	return c.SendStatus(fiber.StatusOK)
}
