package vehicle_handler

import (
	"github.com/gofiber/fiber/v2"
	auth_middleware "github.com/motorpass/motorpass-server/src/auth/middleware"
	common_model "github.com/motorpass/motorpass-server/src/common/model"
	"github.com/motorpass/motorpass-server/src/validators"
	vehicle_entity "github.com/motorpass/motorpass-server/src/vehicle/entity"
	"gorm.io/gorm"
)

// List returns the caller's wallet: every vehicle with its billing tuple.
//
//	@Summary		List wallet vehicles
//	@Description	Returns the authenticated member's vehicles with their persisted billing state.
//	@Tags			Vehicle
//	@Produce		json
//	@Param			vehicle	query		common_model.Paginate			true	"Pagination parameters"
//	@Success		200		{array}		vehicle_entity.Vehicle			"Vehicles"
//	@Failure		400		{object}	common_model.DescriptiveError	"Invalid query parameters"
//	@Failure		500		{object}	common_model.DescriptiveError	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/vehicle/ [get]
func List(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		member := auth_middleware.GetMember(c)

		query := new(common_model.Paginate)
		if err := c.QueryParser(query); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(
				common_model.NewParseJsonError(err).Send(),
			)
		}

		if err := validators.Validator().Struct(query); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(
				common_model.NewValidationError(err).Send(),
			)
		}

		limit, offset := query.Bounds()

		var vehicles []vehicle_entity.Vehicle
		err := db.WithContext(c.UserContext()).
			Where("member_id = ?", member.ID).
			Order("created_at ASC").
			Limit(limit).
			Offset(offset).
			Find(&vehicles).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(
				common_model.NewApiError("unable to list vehicles", err, "repository").Send(),
			)
		}

		return c.Status(fiber.StatusOK).JSON(vehicles)
	}
}
