package handlers

import (
	"lexcase/internal/core/services"
	"lexcase/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// maxDocumentSize caps uploads at 20 MB
const maxDocumentSize = 20 << 20

// DocumentHandler handles case document endpoints
type DocumentHandler struct {
	documentService *services.DocumentService
	userService     *services.UserService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *services.DocumentService, userService *services.UserService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		userService:     userService,
	}
}

// Upload stores a document on a case
// @Summary Upload document
// @Description Attach a file to an open case
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param file formData file true "Document file"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /cases/{id}/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "A file is required")
	}
	if fileHeader.Size > maxDocumentSize {
		return response.BadRequest(c, "The file is too large, the limit is 20 MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "The file could not be read")
	}
	defer file.Close()

	userID, role := currentUser(c)
	uploadedBy := ""
	if profile, err := h.userService.GetProfile(c.Context(), userID); err == nil {
		uploadedBy = profile.FullName
	}

	doc, err := h.documentService.Upload(c.Context(), caseID, fileHeader.Filename, uploadedBy, userID, role, file)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Created(c, "Document uploaded", doc)
}

// ListByCase lists the documents of a case
// @Summary Case documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} response.Response
// @Router /cases/{id}/documents [get]
func (h *DocumentHandler) ListByCase(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	userID, role := currentUser(c)
	docs, err := h.documentService.ListByCase(c.Context(), caseID, userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", docs)
}

// Download streams a document
// @Summary Download document
// @Tags Documents
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Response
// @Router /documents/{id} [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	documentID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid document id")
	}

	userID, role := currentUser(c)
	doc, fullPath, err := h.documentService.Resolve(c.Context(), documentID, userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Download(fullPath, doc.FileName)
}

// Delete removes a document from an open case
// @Summary Delete document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	documentID, err := parseUintParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid document id")
	}

	userID, role := currentUser(c)
	if err := h.documentService.Delete(c.Context(), documentID, userID, role); err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Document removed", nil)
}
