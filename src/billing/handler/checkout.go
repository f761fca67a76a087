package billing_handler

import (
	"github.com/gofiber/fiber/v2"
	auth_middleware "github.com/motorpass/motorpass-server/src/auth/middleware"
	billing_model "github.com/motorpass/motorpass-server/src/billing/model"
	common_model "github.com/motorpass/motorpass-server/src/common/model"
	"github.com/motorpass/motorpass-server/src/validators"
)

// Checkout initiates a billing flow for one vehicle.
//
//	@Summary		Initiate vehicle checkout
//	@Description	Creates a new hosted checkout session for the vehicle's monthly subscription. Returns a URL to redirect the member to. Never waits for webhook confirmation.
//	@Tags			Billing
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		billing_model.CheckoutRequest	true	"Checkout data"
//	@Success		200			{object}	billing_model.CheckoutResponse	"Checkout session created"
//	@Failure		400			{object}	common_model.DescriptiveError	"Invalid request body"
//	@Failure		403			{object}	common_model.DescriptiveError	"Vehicle owned by another member"
//	@Failure		404			{object}	common_model.DescriptiveError	"Vehicle not found"
//	@Failure		503			{object}	common_model.DescriptiveError	"Payment provider not configured"
//	@Security		ApiKeyAuth
//	@Router			/billing/checkout [post]
func (h *Handler) Checkout(c *fiber.Ctx) error {
	member := auth_middleware.GetMember(c)

	body := new(billing_model.CheckoutRequest)
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

	resp, err := h.service.CreateCheckout(c.UserContext(), member, *body)
	if err != nil {
		return c.Status(statusForError(err)).JSON(
			common_model.NewApiError("unable to create checkout session", err, "billing_service").Send(),
		)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
