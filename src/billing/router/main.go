package billing_router

import (
	"github.com/gofiber/fiber/v2"
	auth_middleware "github.com/motorpass/motorpass-server/src/auth/middleware"
	billing_handler "github.com/motorpass/motorpass-server/src/billing/handler"
	"gorm.io/gorm"
)

func Route(app *fiber.App, db *gorm.DB, handler *billing_handler.Handler) {
	group := app.Group("/billing")

	member := auth_middleware.MemberMiddleware(db)

	// Initiate checkout for one vehicle
	group.Post("/checkout",
		member,
		auth_middleware.CheckoutRateLimiter,
		handler.Checkout)

	// Synchronous reconciliation when the browser returns from checkout
	group.Post("/confirm",
		member,
		handler.Confirm)

	// Cancel a vehicle subscription
	group.Delete("/subscription",
		member,
		handler.Cancel)

	// Read the persisted billing tuple
	group.Get("/status",
		member,
		handler.Status)

	// Stripe webhook - no auth (Stripe validates via signature)
	group.Post("/webhook/stripe", handler.StripeWebhook)
}
