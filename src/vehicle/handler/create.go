package vehicle_handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	auth_middleware "github.com/motorpass/motorpass-server/src/auth/middleware"
	common_model "github.com/motorpass/motorpass-server/src/common/model"
	lookup_service "github.com/motorpass/motorpass-server/src/lookup/service"
	"github.com/motorpass/motorpass-server/src/validators"
	vehicle_entity "github.com/motorpass/motorpass-server/src/vehicle/entity"
	vehicle_model "github.com/motorpass/motorpass-server/src/vehicle/model"
	"github.com/pterm/pterm"
	"gorm.io/gorm"
)

// Create registers a new vehicle in the caller's wallet.
//
//	@Summary		Register a vehicle
//	@Description	Adds a vehicle to the authenticated member's wallet. When no VIN is supplied it is resolved from the plate; lookup failure does not block registration.
//	@Tags			Vehicle
//	@Accept			json
//	@Produce		json
//	@Param			vehicle	body		vehicle_model.CreateVehicle		true	"Vehicle data"
//	@Success		201		{object}	vehicle_entity.Vehicle			"Created vehicle"
//	@Failure		400		{object}	common_model.DescriptiveError	"Invalid request body"
//	@Failure		500		{object}	common_model.DescriptiveError	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/vehicle/ [post]
func Create(db *gorm.DB, resolver lookup_service.PlateResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		member := auth_middleware.GetMember(c)

		body := new(vehicle_model.CreateVehicle)
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

		vin := body.VIN
		if vin == "" && resolver != nil {
			resolved, err := resolver.ResolveVIN(c.UserContext(), body.Plate, body.Region)
			switch {
			case err == nil:
				vin = resolved
			case errors.Is(err, lookup_service.ErrPlateNotFound):
				pterm.DefaultLogger.Info(fmt.Sprintf("no VIN found for plate %s", body.Plate))
			default:
				pterm.DefaultLogger.Warn(fmt.Sprintf("VIN lookup for plate %s failed: %s", body.Plate, err))
			}
		}

		vehicle := vehicle_entity.Vehicle{
			MemberID: member.ID,
			Plate:    body.Plate,
			Nickname: body.Nickname,
			VIN:      vin,
		}
		if err := db.WithContext(c.UserContext()).Create(&vehicle).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(
				common_model.NewApiError("unable to create vehicle", err, "repository").Send(),
			)
		}

		return c.Status(fiber.StatusCreated).JSON(vehicle)
	}
}
