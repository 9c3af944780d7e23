package middleware

import (
	"strings"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/config"
	"lexcase/internal/pkg/jwt"
	"lexcase/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// Cookie first, then Authorization header
		accessToken = c.Cookies("access_token")
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		// Websocket clients cannot set headers, allow a query token
		if accessToken == "" {
			accessToken = c.Query("token")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return response.Forbidden(c, "You do not have permission to access this resource")
	}
}

// AdminOnly restricts a route to admins
func AdminOnly() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}

// LawyerOnly restricts a route to lawyers
func LawyerOnly() fiber.Handler {
	return RoleMiddleware(models.RoleLawyer)
}

// ClientOnly restricts a route to clients
func ClientOnly() fiber.Handler {
	return RoleMiddleware(models.RoleClient)
}
