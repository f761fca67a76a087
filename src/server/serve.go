package server

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	billing_handler "github.com/motorpass/motorpass-server/src/billing/handler"
	billing_router "github.com/motorpass/motorpass-server/src/billing/router"
	"github.com/motorpass/motorpass-server/src/config/env"
	lookup_service "github.com/motorpass/motorpass-server/src/lookup/service"
	"github.com/motorpass/motorpass-server/src/validators"
	vehicle_router "github.com/motorpass/motorpass-server/src/vehicle/router"
	"github.com/pterm/pterm"
	"gorm.io/gorm"
)

// Serve builds the Fiber app, registers every router and blocks until the
// listener exits. Shutdown is triggered by SIGINT or SIGTERM.
func Serve(db *gorm.DB, billingHandler *billing_handler.Handler, resolver lookup_service.PlateResolver) {
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		ExposeHeaders: "Retry-After, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
	}))

	validators.InitValidators()

	makeDocs(app)
	vehicle_router.Route(app, db, resolver)
	billing_router.Route(app, db, billingHandler)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		pterm.DefaultLogger.Info("Shutdown signal received, stopping server...")
		app.Shutdown()
	}()

	err := app.Listen(fmt.Sprintf(":%s", env.ServerPort))
	pterm.DefaultLogger.Fatal(
		fmt.Sprintf("%v", err),
	)
}
