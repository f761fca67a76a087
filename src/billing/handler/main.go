package billing_handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	billing_service "github.com/motorpass/motorpass-server/src/billing/service"
	"github.com/motorpass/motorpass-server/src/billing/service/payment"
)

// Handler exposes the reconciliation engine over HTTP. Constructed once at
// startup with its dependencies.
type Handler struct {
	service  *billing_service.Service
	provider payment.Provider
}

func New(service *billing_service.Service, provider payment.Provider) *Handler {
	return &Handler{service: service, provider: provider}
}

// statusForError maps the engine's error taxonomy onto HTTP statuses.
// Ownership failures are distinguishable from not-found.
func statusForError(err error) int {
	switch {
	case errors.Is(err, billing_service.ErrVehicleNotFound),
		errors.Is(err, billing_service.ErrMemberNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, billing_service.ErrNotVehicleOwner):
		return fiber.StatusForbidden
	case errors.Is(err, payment.ErrNotConfigured):
		return fiber.StatusServiceUnavailable
	default:
		// Upstream transient failures are retryable by the client.
		return fiber.StatusBadGateway
	}
}
