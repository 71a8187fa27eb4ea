package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/spec-kit/lead-portal/pkg/util"
)

// PaymentService validates payment submissions from the client dashboard.
// No charge is ever made; card details are validated for shape, logged by
// masked reference only, and discarded. A real acquirer integration replaces
// this service wholesale.
type PaymentService struct {
	logger *zap.Logger
}

// PaymentInput carries a payment form submission.
type PaymentInput struct {
	ApplicationID int64
	Amount        float64
	CardNumber    string
	CardExpiry    string
	CardCVC       string
}

// NewPaymentService constructs the service.
func NewPaymentService(logger *zap.Logger) *PaymentService {
	return &PaymentService{logger: logger}
}

// SubmitPayment validates and accepts a payment request.
func (s *PaymentService) SubmitPayment(_ context.Context, userID int64, input PaymentInput) error {
	if input.Amount <= 0 {
		return apperrors.NewValidationError("amount must be positive", nil)
	}
	number := strings.ReplaceAll(strings.TrimSpace(input.CardNumber), " ", "")
	if len(number) < 13 || len(number) > 19 {
		return apperrors.NewValidationError("card number invalid", nil)
	}
	if strings.TrimSpace(input.CardExpiry) == "" || strings.TrimSpace(input.CardCVC) == "" {
		return apperrors.NewValidationError("card expiry and cvc required", nil)
	}

	s.logger.Info("payment accepted",
		zap.Int64("user_id", userID),
		zap.Int64("application_id", input.ApplicationID),
		zap.Float64("amount", input.Amount),
		zap.String("card_last4", lastDigits(number, 4)))
	return nil
}

func lastDigits(number string, n int) string {
	if len(number) <= n {
		return number
	}
	return number[len(number)-n:]
}
