package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/lead-portal/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	user := &domain.User{ID: 42, Username: "director", Role: domain.RoleDirector}

	token, expiresAt, err := tm.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !expiresAt.After(time.Now().Add(59 * time.Minute)) {
		t.Errorf("expiry too early: %v", expiresAt)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("uid: want 42, got %d", claims.UserID)
	}
	if claims.Username != "director" {
		t.Errorf("username: %q", claims.Username)
	}
	if claims.Role != domain.RoleDirector {
		t.Errorf("role claim must survive the round trip, got %q", claims.Role)
	}
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken(&domain.User{ID: 1, Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewTokenManager("secret-b", 60).ParseToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	if _, err := tm.ParseToken("not-a-token"); err == nil {
		t.Fatal("garbage must be rejected")
	}
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	_, expiresAt, err := tm.GenerateToken(&domain.User{ID: 1, Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !expiresAt.After(time.Now().Add(59 * time.Minute)) {
		t.Errorf("zero ttl must fall back to one hour, got %v", expiresAt)
	}
}
