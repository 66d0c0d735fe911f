package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paisa-server/src/models"
)

const sourceColumns = `id, user_id, name, type, icon, color, initial_balance, created_at, updated_at`

func scanSource(row pgx.Row, s *models.Source) error {
	return row.Scan(&s.ID, &s.UserID, &s.Name, &s.Type, &s.Icon, &s.Color, &s.InitialBalance, &s.CreatedAt, &s.UpdatedAt)
}

func CreateSource(ctx context.Context, pool *pgxpool.Pool, source *models.Source) (*models.Source, error) {
	query := `
		INSERT INTO sources (user_id, name, type, icon, color, initial_balance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + sourceColumns
	var s models.Source
	err := scanSource(pool.QueryRow(ctx, query,
		source.UserID, source.Name, source.Type, source.Icon, source.Color, source.InitialBalance), &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func GetSourceByID(ctx context.Context, pool *pgxpool.Pool, userID, id string) (*models.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources WHERE id = $1 AND user_id = $2`
	var s models.Source
	err := scanSource(pool.QueryRow(ctx, query, id, userID), &s)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func GetAllSourcesForUser(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources WHERE user_id = $1 ORDER BY created_at`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []models.Source
	for rows.Next() {
		var s models.Source
		if err := scanSource(rows, &s); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// UpdateSource changes only the supplied (non-nil) fields.
func UpdateSource(ctx context.Context, pool *pgxpool.Pool, userID, id string, name, srcType, icon, color *string, initialBalance *float64) (*models.Source, error) {
	query := `
		UPDATE sources
		SET name = COALESCE($1, name),
		    type = COALESCE($2, type),
		    icon = COALESCE($3, icon),
		    color = COALESCE($4, color),
		    initial_balance = COALESCE($5, initial_balance),
		    updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING ` + sourceColumns
	var s models.Source
	err := scanSource(pool.QueryRow(ctx, query, name, srcType, icon, color, initialBalance, id, userID), &s)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func DeleteSource(ctx context.Context, pool *pgxpool.Pool, userID, id string) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM sources WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
