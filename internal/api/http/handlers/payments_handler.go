package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-portal/internal/api/dto"
	"github.com/spec-kit/lead-portal/internal/service"
	apperrors "github.com/spec-kit/lead-portal/pkg/util"
)

// PaymentsHandler accepts payment submissions from the client cabinet.
type PaymentsHandler struct {
	payments *service.PaymentService
}

func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{payments: paymentService}
}

// Submit POST /payments.
func (h *PaymentsHandler) Submit(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.payments.SubmitPayment(c.Context(), principal.User.ID, service.PaymentInput{
		ApplicationID: req.ApplicationID,
		Amount:        req.Amount,
		CardNumber:    req.CardNumber,
		CardExpiry:    req.CardExpiry,
		CardCVC:       req.CardCVC,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Платеж принят в обработку",
	})
}
