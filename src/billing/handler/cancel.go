package billing_handler

import (
	"github.com/gofiber/fiber/v2"
	auth_middleware "github.com/motorpass/motorpass-server/src/auth/middleware"
	common_model "github.com/motorpass/motorpass-server/src/common/model"
	"github.com/motorpass/motorpass-server/src/validators"
)

// Cancel terminates a vehicle's subscription.
//
//	@Summary		Cancel a vehicle subscription
//	@Description	Cancels the vehicle's subscription with a layered fallback. The vehicle always ends inactive once the request is accepted; partial upstream failures are reported in the warning field, not as errors.
//	@Tags			Billing
//	@Accept			json
//	@Produce		json
//	@Param			id	query		string							true	"Vehicle ID"
//	@Success		200	{object}	billing_model.CancelResponse	"Cancellation outcome"
//	@Failure		400	{object}	common_model.DescriptiveError	"Invalid query parameters"
//	@Failure		403	{object}	common_model.DescriptiveError	"Vehicle owned by another member"
//	@Failure		404	{object}	common_model.DescriptiveError	"Vehicle not found"
//	@Security		ApiKeyAuth
//	@Router			/billing/subscription [delete]
func (h *Handler) Cancel(c *fiber.Ctx) error {
	member := auth_middleware.GetMember(c)

	id := new(common_model.RequiredID)
	if err := c.QueryParser(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			common_model.NewParseJsonError(err).Send(),
		)
	}

	if err := validators.Validator().Struct(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			common_model.NewValidationError(err).Send(),
		)
	}

	resp, err := h.service.CancelVehicle(c.UserContext(), member, id.ID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(
			common_model.NewApiError("unable to cancel subscription", err, "billing_service").Send(),
		)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Status returns the persisted billing tuple for one vehicle.
//
//	@Summary		Vehicle billing status
//	@Description	Returns the persisted subscription state for a vehicle in the caller's wallet.
//	@Tags			Billing
//	@Produce		json
//	@Param			id	query		string								true	"Vehicle ID"
//	@Success		200	{object}	billing_model.VehicleBillingStatus	"Billing state"
//	@Failure		400	{object}	common_model.DescriptiveError		"Invalid query parameters"
//	@Failure		403	{object}	common_model.DescriptiveError		"Vehicle owned by another member"
//	@Failure		404	{object}	common_model.DescriptiveError		"Vehicle not found"
//	@Security		ApiKeyAuth
//	@Router			/billing/status [get]
func (h *Handler) Status(c *fiber.Ctx) error {
	member := auth_middleware.GetMember(c)

	id := new(common_model.RequiredID)
	if err := c.QueryParser(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			common_model.NewParseJsonError(err).Send(),
		)
	}

	if err := validators.Validator().Struct(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			common_model.NewValidationError(err).Send(),
		)
	}

	status, err := h.service.VehicleStatus(c.UserContext(), member.ID, id.ID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(
			common_model.NewApiError("unable to read billing status", err, "billing_service").Send(),
		)
	}

	return c.Status(fiber.StatusOK).JSON(status)
}
