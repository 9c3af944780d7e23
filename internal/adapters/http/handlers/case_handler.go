package handlers

import (
	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/core/services"
	"lexcase/internal/pkg/pagination"
	"lexcase/internal/pkg/response"
	"lexcase/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// CaseHandler handles case endpoints
type CaseHandler struct {
	caseService *services.CaseService
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService *services.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// Create files a new case
// @Summary Create case
// @Description File a case and assign a lawyer (Admin only)
// @Tags Cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateCaseInput true "Case data"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /cases [post]
func (h *CaseHandler) Create(c *fiber.Ctx) error {
	var input services.CreateCaseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	created, err := h.caseService.CreateCase(c.Context(), input)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Created(c, "Case created", created.ToResponse())
}

// List lists cases visible to the signed in user
// @Summary List cases
// @Tags Cases
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param type query string false "Case type filter"
// @Param lawyer_id query int false "Lawyer case history (admin only)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /cases [get]
func (h *CaseHandler) List(c *fiber.Ctx) error {
	userID, role := currentUser(c)
	params := pagination.GetParams(c)

	cases, total, err := h.caseService.ListCases(
		c.Context(), userID, role,
		c.Query("status"), c.Query("type"),
		uint(c.QueryInt("lawyer_id")),
		params.Offset, params.Limit,
	)
	if err != nil {
		return serviceError(c, err)
	}

	out := make([]*models.CaseResponse, 0, len(cases))
	for _, cs := range cases {
		out = append(out, cs.ToResponse())
	}
	return response.Success(c, "", fiber.Map{
		"cases": out,
		"meta":  pagination.GetMeta(params, total),
	})
}

// Get returns one case
// @Summary Get case
// @Tags Cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cases/{id} [get]
func (h *CaseHandler) Get(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	userID, role := currentUser(c)
	found, err := h.caseService.GetCase(c.Context(), caseID, userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", found.ToResponse())
}

// Accept accepts a pending case
// @Summary Accept case
// @Description Accept an assigned case (Lawyer only, advance must be paid)
// @Tags Cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /cases/{id}/accept [post]
func (h *CaseHandler) Accept(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	userID, _ := currentUser(c)
	updated, err := h.caseService.AcceptCase(c.Context(), caseID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Case accepted", updated.ToResponse())
}

// Reject declines a pending case
// @Summary Decline case
// @Tags Cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /cases/{id}/reject [post]
func (h *CaseHandler) Reject(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	userID, _ := currentUser(c)
	updated, err := h.caseService.RejectCase(c.Context(), caseID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Case declined", updated.ToResponse())
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Active Rejected Closed"`
}

// UpdateStatus moves a case to a new lifecycle state
// @Summary Update case status
// @Description Generic lifecycle transition, closing is gated on the hearing count
// @Tags Cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param body body updateStatusRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /cases/{id}/status [patch]
func (h *CaseHandler) UpdateStatus(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	userID, role := currentUser(c)
	updated, err := h.caseService.UpdateStatus(c.Context(), caseID, models.CaseStatus(req.Status), userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Case status updated", updated.ToResponse())
}

// FeeSchedule returns the fixed fee per case type
// @Summary Fee schedule
// @Tags Cases
// @Produce json
// @Success 200 {object} response.Response
// @Router /cases/fees [get]
func (h *CaseHandler) FeeSchedule(c *fiber.Ctx) error {
	return response.Success(c, "", h.caseService.FeeSchedule())
}
