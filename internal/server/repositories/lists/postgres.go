package lists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aleksivanovs/taskvault/internal/common"
	"github.com/aleksivanovs/taskvault/internal/dbx"
	"github.com/aleksivanovs/taskvault/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {

	list.ID = uuid.NewString()

	query :=
		`INSERT INTO lists (id, user_id, title)
         VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, list.ID, list.UserID, list.Title).Scan(&list.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) GetAllByUser(ctx context.Context, userID string) ([]models.List, error) {
	query :=
		`SELECT id, user_id, title, created_at FROM lists
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.List
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.List, error) {
	query :=
		`SELECT id, user_id, title, created_at FROM lists
		 WHERE id = $1
		 `

	list := &models.List{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&list.ID, &list.UserID, &list.Title, &list.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, title string) error {
	query :=
		`UPDATE lists SET title = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, title)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM lists
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
