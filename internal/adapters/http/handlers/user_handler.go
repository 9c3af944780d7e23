package handlers

import (
	"strconv"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/core/services"
	"lexcase/internal/pkg/response"
	"lexcase/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles account administration endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	return uint(v), err
}

// ListLawyers returns the lawyer directory with workloads
// @Summary Lawyer directory
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /lawyers [get]
func (h *UserHandler) ListLawyers(c *fiber.Ctx) error {
	lawyers, err := h.userService.ListLawyers(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", lawyers)
}

// CreateLawyer creates a lawyer account directly
// @Summary Create lawyer account
// @Description Create a lawyer account without the registration queue, credentials are emailed
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateLawyerInput true "Lawyer data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/lawyers [post]
func (h *UserHandler) CreateLawyer(c *fiber.Ctx) error {
	var input services.CreateLawyerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	user, err := h.userService.CreateLawyer(c.Context(), input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Created(c, "Lawyer account created", user.ToResponse())
}

// List lists accounts, optionally filtered by role
// @Summary List accounts
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter" Enums(Admin, Lawyer, Client)
// @Success 200 {object} response.Response
// @Router /admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	role := c.Query("role", models.RoleClient)

	users, err := h.userService.ListByRole(c.Context(), role)
	if err != nil {
		return serviceError(c, err)
	}

	out := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return response.Success(c, "", out)
}

// GetProfile returns a user's profile
// @Summary Get profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", profile)
}

// UpdateProfile edits the signed in user's own profile
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Profile data"
// @Success 200 {object} response.Response
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	userID, _ := currentUser(c)
	profile, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Profile updated", profile)
}

// AdminUpdateUser edits another user's profile
// @Summary Edit user profile
// @Description Admin edit of a user's profile, specialization only for lawyers
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.AdminUpdateUserInput true "Profile data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/profile [put]
func (h *UserHandler) AdminUpdateUser(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var input services.AdminUpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	profile, err := h.userService.AdminUpdateUser(c.Context(), userID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Profile updated", profile)
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive enables or disables an account
// @Summary Activate or deactivate account
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body setActiveRequest true "Target state"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id}/active [patch]
func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	var req setActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actorID, _ := currentUser(c)
	user, err := h.userService.SetActive(c.Context(), userID, actorID, req.Active)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Account updated", user.ToResponse())
}

// Delete removes an account
// @Summary Delete account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	actorID, _ := currentUser(c)
	if err := h.userService.Delete(c.Context(), userID, actorID); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Account removed", nil)
}
