package handlers

import (
	"lexcase/internal/core/services"
	"lexcase/internal/pkg/response"
	"lexcase/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// HearingHandler handles hearing endpoints
type HearingHandler struct {
	hearingService *services.HearingService
}

// NewHearingHandler creates a new hearing handler
func NewHearingHandler(hearingService *services.HearingService) *HearingHandler {
	return &HearingHandler{hearingService: hearingService}
}

// Add schedules a hearing on a case
// @Summary Schedule hearing
// @Description Schedule a hearing, rejected on closed cases and on scheduling conflicts
// @Tags Hearings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param body body services.HearingInput true "Hearing data"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /cases/{id}/hearings [post]
func (h *HearingHandler) Add(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	var input services.HearingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	userID, role := currentUser(c)
	hearing, err := h.hearingService.AddHearing(c.Context(), caseID, input, userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Created(c, "Hearing scheduled", hearing)
}

// Edit reschedules or annotates a hearing
// @Summary Edit hearing
// @Tags Hearings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hearing ID"
// @Param body body services.HearingInput true "Hearing data"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /hearings/{id} [put]
func (h *HearingHandler) Edit(c *fiber.Ctx) error {
	hearingID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid hearing id")
	}

	var input services.HearingInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs, err := validation.Validate(input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	userID, role := currentUser(c)
	hearing, err := h.hearingService.EditHearing(c.Context(), hearingID, input, userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Hearing updated", hearing)
}

// Delete removes a hearing
// @Summary Delete hearing
// @Tags Hearings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Hearing ID"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /hearings/{id} [delete]
func (h *HearingHandler) Delete(c *fiber.Ctx) error {
	hearingID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid hearing id")
	}

	userID, role := currentUser(c)
	if err := h.hearingService.DeleteHearing(c.Context(), hearingID, userID, role); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Hearing removed", nil)
}

// ListByCase lists the hearings of a case
// @Summary Case hearings
// @Tags Hearings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} response.Response
// @Router /cases/{id}/hearings [get]
func (h *HearingHandler) ListByCase(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	userID, role := currentUser(c)
	hearings, err := h.hearingService.ListByCase(c.Context(), caseID, userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", hearings)
}
