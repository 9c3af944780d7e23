package handlers

import (
	"lexcase/internal/core/services"
	"lexcase/internal/pkg/response"
	"lexcase/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Login signs a user in
// @Summary Sign in
// @Description Verify credentials and issue an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return serviceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    result.AccessToken,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return response.Success(c, "Signed in", result)
}

// Logout clears the session cookie
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie("access_token")
	return response.Success(c, "Signed out", nil)
}

// Me returns the signed in user's profile
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", profile)
}

// ChangePassword replaces the signed in user's password
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Passwords"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input services.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	userID, _ := currentUser(c)
	if err := h.authService.ChangePassword(c.Context(), userID, input); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Password changed", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword requests a reset link by email
// @Summary Forgot password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body forgotPasswordRequest true "Account email"
// @Success 200 {object} response.Response
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	if err := h.authService.ForgotPassword(c.Context(), req.Email); err != nil {
		return serviceError(c, err)
	}
	// Same reply whether or not the email has an account
	return response.Success(c, "If the email has an account, a reset link has been sent", nil)
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ResetPassword consumes a reset token
// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body resetPasswordRequest true "Token and new password"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	if err := h.authService.ResetPassword(c.Context(), req.Token, req.NewPassword); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Password has been reset, you can sign in now", nil)
}
