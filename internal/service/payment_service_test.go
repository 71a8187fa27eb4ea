package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/spec-kit/lead-portal/pkg/util"
)

func validPayment() PaymentInput {
	return PaymentInput{
		ApplicationID: 12,
		Amount:        5000,
		CardNumber:    "4111 1111 1111 1111",
		CardExpiry:    "12/27",
		CardCVC:       "123",
	}
}

func TestPaymentService_Accepts(t *testing.T) {
	svc := NewPaymentService(zap.NewNop())
	if err := svc.SubmitPayment(context.Background(), 3, validPayment()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPaymentService_Validation(t *testing.T) {
	svc := NewPaymentService(zap.NewNop())

	cases := []struct {
		name   string
		mutate func(*PaymentInput)
	}{
		{"zero amount", func(in *PaymentInput) { in.Amount = 0 }},
		{"negative amount", func(in *PaymentInput) { in.Amount = -10 }},
		{"short card number", func(in *PaymentInput) { in.CardNumber = "4111" }},
		{"long card number", func(in *PaymentInput) { in.CardNumber = "41111111111111111111" }},
		{"missing expiry", func(in *PaymentInput) { in.CardExpiry = " " }},
		{"missing cvc", func(in *PaymentInput) { in.CardCVC = "" }},
	}
	for _, tc := range cases {
		in := validPayment()
		tc.mutate(&in)
		err := svc.SubmitPayment(context.Background(), 3, in)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if code := apperrors.ToDomainError(err).Code; code != "VALIDATION_FAILED" {
			t.Errorf("%s: expected VALIDATION_FAILED, got %s", tc.name, code)
		}
	}
}

func TestPaymentService_IgnoresCardSpaces(t *testing.T) {
	svc := NewPaymentService(zap.NewNop())
	in := validPayment()
	in.CardNumber = " 4111 1111 1111 1111 "
	if err := svc.SubmitPayment(context.Background(), 3, in); err != nil {
		t.Fatalf("spaced card number must validate: %v", err)
	}
}

func TestLastDigits(t *testing.T) {
	if got := lastDigits("4111111111111111", 4); got != "1111" {
		t.Errorf("got %q", got)
	}
	if got := lastDigits("12", 4); got != "12" {
		t.Errorf("short input must pass through, got %q", got)
	}
}
