package vehicle_router

import (
	"github.com/gofiber/fiber/v2"
	auth_middleware "github.com/motorpass/motorpass-server/src/auth/middleware"
	lookup_service "github.com/motorpass/motorpass-server/src/lookup/service"
	vehicle_handler "github.com/motorpass/motorpass-server/src/vehicle/handler"
	"gorm.io/gorm"
)

// Route registers the vehicle endpoints.
func Route(app *fiber.App, db *gorm.DB, resolver lookup_service.PlateResolver) {
	group := app.Group("/vehicle")
	member := auth_middleware.MemberMiddleware(db)

	group.Get("/", member, vehicle_handler.List(db))
	group.Post("/", member, vehicle_handler.Create(db, resolver))
}
