package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-portal/internal/domain"
)

// ApplicationHistoryRepository stores audit entries.
type ApplicationHistoryRepository interface {
	Create(ctx context.Context, history *domain.ApplicationHistory) error
	ListByApplication(ctx context.Context, applicationID int64) ([]domain.ApplicationHistory, error)
}

type applicationHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationHistoryRepository builds repository.
func NewApplicationHistoryRepository(pool *pgxpool.Pool) ApplicationHistoryRepository {
	return &applicationHistoryRepository{pool: pool}
}

func (r *applicationHistoryRepository) Create(ctx context.Context, history *domain.ApplicationHistory) error {
	const query = `
        INSERT INTO application_history (application_id, changed_by_id, change_type, old_value, new_value)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		history.ApplicationID,
		history.ChangedByID,
		history.ChangeType,
		history.OldValue,
		history.NewValue,
	).Scan(&history.ID, &history.CreatedAt)
}

func (r *applicationHistoryRepository) ListByApplication(ctx context.Context, applicationID int64) ([]domain.ApplicationHistory, error) {
	const query = `
        SELECT id, application_id, changed_by_id, change_type, old_value, new_value, created_at
        FROM application_history WHERE application_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ApplicationHistory
	for rows.Next() {
		var history domain.ApplicationHistory
		if err := rows.Scan(
			&history.ID,
			&history.ApplicationID,
			&history.ChangedByID,
			&history.ChangeType,
			&history.OldValue,
			&history.NewValue,
			&history.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, history)
	}
	return result, rows.Err()
}
