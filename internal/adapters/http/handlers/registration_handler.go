package handlers

import (
	"lexcase/internal/core/services"
	"lexcase/internal/pkg/response"
	"lexcase/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// RegistrationHandler handles the registration request flow
type RegistrationHandler struct {
	registrationService *services.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Register files a registration request
// @Summary Request registration
// @Description File a Client or Lawyer registration request for admin review
// @Tags Registration
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /auth/register [post]
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	pending, err := h.registrationService.Submit(c.Context(), input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Created(c, "Registration request received, you will be notified by email", pending)
}

// ListPending lists registration requests awaiting review
// @Summary Pending registrations
// @Tags Registration
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/registrations [get]
func (h *RegistrationHandler) ListPending(c *fiber.Ctx) error {
	pending, err := h.registrationService.ListPending(c.Context())
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", pending)
}

type decisionRequest struct {
	Note string `json:"note" validate:"max=250"`
}

// Approve approves a registration request
// @Summary Approve registration
// @Tags Registration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body decisionRequest false "Admin note"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/registrations/{id}/approve [post]
func (h *RegistrationHandler) Approve(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid request id")
	}

	var req decisionRequest
	// Note body is optional
	_ = c.BodyParser(&req)

	user, err := h.registrationService.Approve(c.Context(), id, req.Note)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Registration approved, credentials sent by email", user.ToResponse())
}

// Reject rejects a registration request
// @Summary Reject registration
// @Tags Registration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param body body decisionRequest false "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/registrations/{id}/reject [post]
func (h *RegistrationHandler) Reject(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid request id")
	}

	var req decisionRequest
	_ = c.BodyParser(&req)

	if err := h.registrationService.Reject(c.Context(), id, req.Note); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Registration rejected", nil)
}
