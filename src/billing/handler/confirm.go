package billing_handler

import (
	"github.com/gofiber/fiber/v2"
	auth_middleware "github.com/motorpass/motorpass-server/src/auth/middleware"
	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	common_model "github.com/motorpass/motorpass-server/src/common/model"
	"github.com/motorpass/motorpass-server/src/validators"
)

// Confirm resolves a returned checkout session without waiting for the webhook.
//
//	@Summary		Confirm a checkout session
//	@Description	Fetches the checkout session the browser returned from and reconciles the vehicle immediately. Safe to re-invoke; races freely with webhook delivery. Errors are retryable.
//	@Tags			Billing
//	@Accept			json
//	@Produce		json
//	@Param			confirm	body		billing_model.ConfirmRequest	true	"Checkout session reference"
//	@Success		200		{object}	billing_model.ConfirmResponse	"Resolved billing state"
//	@Failure		400		{object}	common_model.DescriptiveError	"Invalid request body"
//	@Failure		403		{object}	common_model.DescriptiveError	"Session belongs to another member"
//	@Failure		502		{object}	common_model.DescriptiveError	"Session or subscription not retrievable yet"
//	@Security		ApiKeyAuth
//	@Router			/billing/confirm [post]
func (h *Handler) Confirm(c *fiber.Ctx) error {
	member := auth_middleware.GetMember(c)

	body := new(billing_model.ConfirmRequest)
	if err := c.BodyParser(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			common_model.NewParseJsonError(err).Send(),
		)
	}

	if err := validators.Validator().Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			common_model.NewValidationError(err).Send(),
		)
	}

	resp, err := h.service.ConfirmCheckout(c.UserContext(), member, body.SessionID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(
			common_model.NewApiError("unable to confirm checkout session", err, "billing_service").Send(),
		)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
