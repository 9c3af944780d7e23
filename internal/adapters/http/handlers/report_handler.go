package handlers

import (
	"time"

	"lexcase/internal/adapters/persistence/models"
	"lexcase/internal/core/services"
	"lexcase/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles dashboard and statement endpoints
type ReportHandler struct {
	reportService  *services.ReportService
	invoiceService *services.InvoiceService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, invoiceService *services.InvoiceService) *ReportHandler {
	return &ReportHandler{
		reportService:  reportService,
		invoiceService: invoiceService,
	}
}

// Dashboard returns the overview matching the signed in user's role
// @Summary Dashboard
// @Description Firm wide overview for admins, personal overview for lawyers and clients
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	userID, role := currentUser(c)

	var (
		data interface{}
		err  error
	)
	switch role {
	case models.RoleAdmin:
		data, err = h.reportService.AdminDashboard(c.Context())
	case models.RoleLawyer:
		data, err = h.reportService.LawyerDashboard(c.Context(), userID)
	default:
		data, err = h.reportService.ClientDashboard(c.Context(), userID)
	}
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", data)
}

// FinancialReport renders the collections of a date range
// @Summary Financial report
// @Description HTML report of payments collected in a date range, firm wide for admins, own cases for lawyers
// @Tags Reports
// @Produce html
// @Security BearerAuth
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD), exclusive"
// @Success 200 {string} string "HTML report"
// @Failure 400 {object} response.Response
// @Router /reports [get]
func (h *ReportHandler) FinancialReport(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return response.BadRequest(c, "Invalid or missing 'from' date, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return response.BadRequest(c, "Invalid or missing 'to' date, expected YYYY-MM-DD")
	}

	userID, role := currentUser(c)
	html, err := h.reportService.FinancialReport(c.Context(), from, to, userID, role)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(html)
}

// Invoice renders the payment statement of a case
// @Summary Payment statement
// @Description HTML statement of a case's payments, detail depends on the viewer's role
// @Tags Reports
// @Produce html
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {string} string "HTML statement"
// @Failure 404 {object} response.Response
// @Router /cases/{id}/invoice [get]
func (h *ReportHandler) Invoice(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	userID, role := currentUser(c)
	html, err := h.invoiceService.Render(c.Context(), caseID, userID, role)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(html)
}
