package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-portal/internal/domain"
)

// ApplicationFilter captures listing parameters. UserID is populated by the
// service layer from the authenticated principal, never from raw client input
// for client-role callers.
type ApplicationFilter struct {
	UserID     *int64
	Status     *domain.ApplicationStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// StatusCounts aggregates applications per status within a scope.
type StatusCounts struct {
	Total      int64
	New        int64
	InProgress int64
	Completed  int64
}

// ErrStaleUpdate is returned when a conditional status update loses the race
// against a concurrent writer.
var ErrStaleUpdate = fmt.Errorf("application was modified concurrently")

// ApplicationRepository encapsulates application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	ListWithFilter(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error)
	CountByStatus(ctx context.Context, userID *int64) (StatusCounts, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, expectedUpdatedAt *time.Time) (*domain.Application, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (name, phone, email, service, message, status, user_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		app.Name,
		app.Phone,
		app.Email,
		app.Service,
		app.Message,
		app.Status,
		app.UserID,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	const query = `
        SELECT id, name, phone, email, service, message, status, user_id, created_at, updated_at
        FROM applications WHERE id=$1`
	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&app.ID,
		&app.Name,
		&app.Phone,
		&app.Email,
		&app.Service,
		&app.Message,
		&app.Status,
		&app.UserID,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListWithFilter(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error) {
	base := `SELECT id, name, phone, email, service, message, status, user_id, created_at, updated_at
             FROM applications`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + escapeLikePattern(strings.ToLower(strings.TrimSpace(*filter.SearchTerm))) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(id::text LIKE %[1]s OR LOWER(name) LIKE %[1]s OR phone LIKE %[1]s OR LOWER(email) LIKE %[1]s OR LOWER(service) LIKE %[1]s OR LOWER(message) LIKE %[1]s)",
			placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`, base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", query, filter.Limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepository) CountByStatus(ctx context.Context, userID *int64) (StatusCounts, error) {
	base := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='new'),
               COUNT(*) FILTER (WHERE status='in_progress'),
               COUNT(*) FILTER (WHERE status='completed')
        FROM applications`
	args := []any{}
	if userID != nil {
		base += " WHERE user_id=$1"
		args = append(args, *userID)
	}

	var counts StatusCounts
	if err := r.pool.QueryRow(ctx, base, args...).Scan(
		&counts.Total,
		&counts.New,
		&counts.InProgress,
		&counts.Completed,
	); err != nil {
		return StatusCounts{}, err
	}
	return counts, nil
}

// UpdateStatus mutates the status, touching updated_at. When
// expectedUpdatedAt is supplied the update is conditional on the stored
// timestamp; a mismatch against an existing row yields ErrStaleUpdate.
func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, expectedUpdatedAt *time.Time) (*domain.Application, error) {
	query := `
        UPDATE applications SET status=$1, updated_at=NOW()
        WHERE id=$2`
	args := []any{status, id}
	if expectedUpdatedAt != nil {
		query += " AND updated_at=$3"
		args = append(args, *expectedUpdatedAt)
	}
	query += " RETURNING id, name, phone, email, service, message, status, user_id, created_at, updated_at"

	var app domain.Application
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&app.ID,
		&app.Name,
		&app.Phone,
		&app.Email,
		&app.Service,
		&app.Message,
		&app.Status,
		&app.UserID,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err == pgx.ErrNoRows && expectedUpdatedAt != nil {
		// Distinguish a missing row from a lost conditional update.
		if _, getErr := r.GetByID(ctx, id); getErr == nil {
			return nil, ErrStaleUpdate
		}
		return nil, pgx.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// escapeLikePattern quotes LIKE metacharacters so the search term matches as
// a literal substring. Backslash is the default LIKE escape character.
func escapeLikePattern(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

func scanApplications(rows pgx.Rows) ([]domain.Application, error) {
	var result []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID,
			&app.Name,
			&app.Phone,
			&app.Email,
			&app.Service,
			&app.Message,
			&app.Status,
			&app.UserID,
			&app.CreatedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}
