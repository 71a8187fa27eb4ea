package auth

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/lead-portal/pkg/util"
)

// MinPasswordLength is enforced on registration and every password change.
const MinPasswordLength = 6

// ValidatePassword checks the plaintext against the portal password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.NewValidationError("password too short", map[string]any{
			"min_length": MinPasswordLength,
		})
	}
	return nil
}

// HashPassword validates and hashes a plaintext password with the configured
// cost. A non-positive cost falls back to the bcrypt default.
func HashPassword(password string, cost int) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
