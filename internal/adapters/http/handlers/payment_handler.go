package handlers

import (
	"strconv"

	"lexcase/internal/core/services"
	"lexcase/internal/pkg/pagination"
	"lexcase/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment endpoints, including the public
// gateway callbacks
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// GetPayable quotes the installment currently due on a case
// @Summary Payable quote
// @Description What the client owes next on a case
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param full query bool false "Pay the whole fee at once"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /cases/{id}/payable [get]
func (h *PaymentHandler) GetPayable(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	userID, role := currentUser(c)
	quote, err := h.paymentService.GetPayable(c.Context(), caseID, c.QueryBool("full"), userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", quote)
}

// Initiate opens a gateway checkout session
// @Summary Start payment
// @Description Open a gateway checkout for the installment due and return the redirect URL
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param full query bool false "Pay the whole fee at once"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /cases/{id}/payments [post]
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	userID, _ := currentUser(c)
	redirectURL, err := h.paymentService.Initiate(c.Context(), caseID, c.QueryBool("full"), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Checkout session created", fiber.Map{
		"redirect_url": redirectURL,
	})
}

// callbackInput reads the gateway's form post
func callbackInput(c *fiber.Ctx) services.CallbackInput {
	amount, _ := strconv.ParseFloat(c.FormValue("amount"), 64)
	return services.CallbackInput{
		TransactionID: c.FormValue("tran_id"),
		Amount:        amount,
		CaseID:        c.FormValue("value_a"),
		Stage:         c.FormValue("value_b"),
		CardType:      c.FormValue("card_type"),
	}
}

// CallbackSuccess reconciles a successful checkout
// @Summary Gateway success callback
// @Description Called by the payment gateway after a successful checkout
// @Tags Payments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param tran_id formData string true "Transaction ID"
// @Param amount formData number false "Collected amount"
// @Param value_a formData string false "Case ID pass-through"
// @Param value_b formData string false "Stage pass-through"
// @Success 200 {object} response.Response
// @Router /payments/callback/success [post]
func (h *PaymentHandler) CallbackSuccess(c *fiber.Ctx) error {
	payment, err := h.paymentService.HandleSuccess(c.Context(), callbackInput(c))
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "Payment recorded", payment)
}

// CallbackFail reports a failed checkout
// @Summary Gateway failure callback
// @Tags Payments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param tran_id formData string true "Transaction ID"
// @Success 422 {object} response.Response
// @Router /payments/callback/fail [post]
func (h *PaymentHandler) CallbackFail(c *fiber.Ctx) error {
	err := h.paymentService.HandleFailure(c.FormValue("tran_id"), "the gateway reported a failure")
	return serviceError(c, err)
}

// CallbackCancel reports a cancelled checkout
// @Summary Gateway cancel callback
// @Tags Payments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param tran_id formData string true "Transaction ID"
// @Success 422 {object} response.Response
// @Router /payments/callback/cancel [post]
func (h *PaymentHandler) CallbackCancel(c *fiber.Ctx) error {
	err := h.paymentService.HandleFailure(c.FormValue("tran_id"), "the payment was cancelled")
	return serviceError(c, err)
}

// List lists payments visible to the signed in user
// @Summary List payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	userID, role := currentUser(c)
	params := pagination.GetParams(c)

	payments, total, err := h.paymentService.ListPayments(c.Context(), userID, role, params.Offset, params.Limit)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", fiber.Map{
		"payments": payments,
		"meta":     pagination.GetMeta(params, total),
	})
}

// ListByCase lists the payments of a case
// @Summary Case payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} response.Response
// @Router /cases/{id}/payments [get]
func (h *PaymentHandler) ListByCase(c *fiber.Ctx) error {
	caseID, err := parseUUIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid case id")
	}

	userID, role := currentUser(c)
	payments, err := h.paymentService.ListByCase(c.Context(), caseID, userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return response.Success(c, "", payments)
}
