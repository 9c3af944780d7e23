package handlers

import (
	"errors"

	"lexcase/internal/core/domain"
	"lexcase/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// currentUser reads the authenticated identity from locals
func currentUser(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals("user_id").(uint)
	role, _ := c.Locals("role").(string)
	return userID, role
}

// parseUUIDParam parses a uuid path parameter
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// serviceError maps a service error onto the response envelope
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case domain.IsBusinessRule(err):
		return response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrAccessDenied):
		return response.Forbidden(c, "You do not have access to this resource")
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenInvalid):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists), errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidPassword):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrGatewayFailure):
		return response.BadGateway(c, "The payment service is unavailable, please try again later")
	default:
		zap.S().Errorw("unhandled service error", "path", c.Path(), "error", err)
		return response.InternalServerError(c, "Something went wrong")
	}
}
