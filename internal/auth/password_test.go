package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("password stored in clear")
	}
	if err := ComparePassword(hash, "secret123"); err != nil {
		t.Errorf("compare: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("wrong password must not verify")
	}
}

func TestHashPassword_EnforcesMinLength(t *testing.T) {
	if _, err := HashPassword("short", bcrypt.MinCost); err == nil {
		t.Fatal("five characters must be rejected")
	}
	if _, err := HashPassword("666666", bcrypt.MinCost); err != nil {
		t.Errorf("six characters must pass: %v", err)
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("secret123", 0)
	if err != nil {
		t.Fatalf("zero cost must fall back to the default: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
