package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paisa-server/src/models"
)

const categoryColumns = `id, user_id, name, type, icon, color, budget, created_at, updated_at`

func scanCategory(row pgx.Row, c *models.Category) error {
	return row.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.Budget, &c.CreatedAt, &c.UpdatedAt)
}

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (user_id, name, type, icon, color, budget)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + categoryColumns
	var c models.Category
	err := scanCategory(pool.QueryRow(ctx, query,
		category.UserID, category.Name, category.Type, category.Icon, category.Color, category.Budget), &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetCategoryByID(ctx context.Context, pool *pgxpool.Pool, userID, id string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`
	var c models.Category
	err := scanCategory(pool.QueryRow(ctx, query, id, userID), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func GetAllCategoriesForUser(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY created_at`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory changes only the supplied (non-nil) fields.
func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, userID, id string, name, catType, icon, color *string, budget *float64) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE($1, name),
		    type = COALESCE($2, type),
		    icon = COALESCE($3, icon),
		    color = COALESCE($4, color),
		    budget = COALESCE($5, budget),
		    updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING ` + categoryColumns
	var c models.Category
	err := scanCategory(pool.QueryRow(ctx, query, name, catType, icon, color, budget, id, userID), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, userID, id string) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
