package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-portal/internal/domain"
	apperrors "github.com/spec-kit/lead-portal/pkg/util"
)

type stubUserRepo struct {
	users map[int64]*domain.User
	calls int
}

func (r *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (r *stubUserRepo) Update(context.Context, *domain.User) error { return nil }

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.calls++
	u, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

// newTestApp renders middleware errors the same way the HTTP layer does.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
		},
	})
}

func setupProtected(t *testing.T, repo *stubUserRepo, guards ...fiber.Handler) (*fiber.App, *TokenManager) {
	t.Helper()
	tm := NewTokenManager("test-secret", 60)
	mw := NewAuthMiddleware(tm, repo)

	app := newTestApp()
	handlers := append([]fiber.Handler{mw.Handle}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			t.Error("principal missing in protected handler")
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"user_id": principal.User.ID, "role": principal.Role})
	})
	app.Get("/protected", handlers...)
	return app, tm
}

func bearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*domain.User{
		7: {ID: 7, Username: "ivan", Role: domain.RoleClient},
	}}
	app, tm := setupProtected(t, repo)

	token, _, err := tm.GenerateToken(repo.users[7])
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	resp, err := app.Test(bearerRequest(token))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if repo.calls != 1 {
		t.Errorf("expected one user lookup, got %d", repo.calls)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app, _ := setupProtected(t, &stubUserRepo{users: map[int64]*domain.User{}})

	resp, err := app.Test(bearerRequest(""))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthMiddleware_InvalidScheme(t *testing.T) {
	app, _ := setupProtected(t, &stubUserRepo{users: map[int64]*domain.User{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*domain.User{}}
	app, _ := setupProtected(t, repo)

	resp, err := app.Test(bearerRequest("not-a-token"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if repo.calls != 0 {
		t.Error("invalid token must be rejected before any user lookup")
	}
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*domain.User{}}
	app, tm := setupProtected(t, repo)

	token, _, err := tm.GenerateToken(&domain.User{ID: 99, Username: "ghost", Role: domain.RoleClient})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	resp, err := app.Test(bearerRequest(token))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("token for a removed account must be rejected, got %d", resp.StatusCode)
	}
}

func TestRequireStaff_ClientForbidden(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*domain.User{
		7: {ID: 7, Username: "ivan", Role: domain.RoleClient},
	}}
	app, tm := setupProtected(t, repo, RequireStaff())

	token, _, _ := tm.GenerateToken(repo.users[7])
	resp, err := app.Test(bearerRequest(token))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("client on staff route: expected 403, got %d", resp.StatusCode)
	}
}

func TestRequireStaff_DirectorAllowed(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*domain.User{
		2: {ID: 2, Username: "director", Role: domain.RoleDirector},
	}}
	app, tm := setupProtected(t, repo, RequireStaff())

	token, _, _ := tm.GenerateToken(repo.users[2])
	resp, err := app.Test(bearerRequest(token))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("director on staff route: expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireAnyRole_AllowsEveryRole(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleDirector, domain.RoleClient} {
		repo := &stubUserRepo{users: map[int64]*domain.User{
			1: {ID: 1, Username: string(role), Role: role},
		}}
		app, tm := setupProtected(t, repo, RequireAnyRole())

		token, _, _ := tm.GenerateToken(repo.users[1])
		resp, err := app.Test(bearerRequest(token))
		if err != nil {
			t.Fatalf("%s: request: %v", role, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", role, resp.StatusCode)
		}
	}
}
