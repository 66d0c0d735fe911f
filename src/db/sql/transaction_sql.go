package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paisa-server/src/ledger"
	"paisa-server/src/models"
	"paisa-server/src/util"
)

const transactionColumns = `id, user_id, title, amount, date, type, category, description, related_person, is_urgent, receipt_path, created_at, updated_at`

func scanTransaction(row pgx.Row, t *models.Transaction) error {
	return row.Scan(&t.ID, &t.UserID, &t.Title, &t.Amount, &t.Date, &t.Type, &t.Category,
		&t.Description, &t.RelatedPerson, &t.IsUrgent, &t.ReceiptPath, &t.CreatedAt, &t.UpdatedAt)
}

// ListTransactions returns a user's transactions with the filters pushed into
// the query: inclusive date bounds, exact-match type and category, newest
// date first.
func ListTransactions(ctx context.Context, pool *pgxpool.Pool, userID string, filters models.TransactionFilters) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []interface{}{userID}

	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if filters.Type != "" {
		args = append(args, filters.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	query += " ORDER BY date DESC"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// GetSplitsForTransactions loads the splits for a batch of transactions in a
// single query, keyed by transaction id.
func GetSplitsForTransactions(ctx context.Context, pool *pgxpool.Pool, transactionIDs []string) (map[string][]models.SourceSplit, error) {
	splits := make(map[string][]models.SourceSplit)
	if len(transactionIDs) == 0 {
		return splits, nil
	}

	query := `
		SELECT id, transaction_id, source_id, amount
		FROM transaction_source_splits
		WHERE transaction_id = ANY($1)
	`
	rows, err := pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s models.SourceSplit
		if err := rows.Scan(&s.ID, &s.TransactionID, &s.SourceID, &s.Amount); err != nil {
			return nil, err
		}
		splits[s.TransactionID] = append(splits[s.TransactionID], s)
	}
	return splits, rows.Err()
}

func GetTransactionByID(ctx context.Context, pool *pgxpool.Pool, userID, id string) (*models.TransactionWithSplits, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	var t models.TransactionWithSplits
	err := scanTransaction(pool.QueryRow(ctx, query, id, userID), &t.Transaction)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	splitsByTx, err := GetSplitsForTransactions(ctx, pool, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.Sources = splitsByTx[t.ID]
	if t.Sources == nil {
		t.Sources = []models.SourceSplit{}
	}
	return &t, nil
}

// CreateTransaction persists the transaction row and its filtered splits in
// one database transaction. Validation has already happened by the time this
// runs; either everything commits or nothing does.
func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, t models.Transaction, splits []models.SplitInput) (*models.TransactionWithSplits, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transactions (user_id, title, amount, date, type, category, description, related_person, is_urgent, receipt_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + transactionColumns
	var created models.TransactionWithSplits
	err = scanTransaction(tx.QueryRow(ctx, query,
		t.UserID, t.Title, t.Amount, t.Date, t.Type, t.Category,
		t.Description, t.RelatedPerson, t.IsUrgent, t.ReceiptPath), &created.Transaction)
	if err != nil {
		return nil, err
	}

	created.Sources, err = insertSplits(ctx, tx, created.ID, splits)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTransaction applies a partial update, re-validating the split-sum
// invariant before anything is written. A supplied split list replaces the
// whole set; an amount change without one must match the existing splits.
func UpdateTransaction(ctx context.Context, pool *pgxpool.Pool, userID, id string, req models.UpdateTransactionRequest) (*models.TransactionWithSplits, error) {
	existing, err := GetTransactionByID(ctx, pool, userID, id)
	if err != nil {
		return nil, err
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := util.ParseDate(*req.Date)
		if err != nil {
			return nil, models.NewValidationError("Invalid date format")
		}
		date = &parsed
	}

	if req.Amount != nil && req.Sources == nil {
		if err := ledger.CheckExistingSplitSum(existing.Sources, *req.Amount); err != nil {
			return nil, err
		}
	}

	targetAmount := existing.Amount
	if req.Amount != nil {
		targetAmount = *req.Amount
	}
	if req.Sources != nil {
		if err := ledger.CheckSplitSum(*req.Sources, targetAmount); err != nil {
			return nil, err
		}
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE transactions
		SET title = COALESCE($1, title),
		    amount = COALESCE($2, amount),
		    date = COALESCE($3, date),
		    type = COALESCE($4, type),
		    category = COALESCE($5, category),
		    description = COALESCE($6, description),
		    related_person = COALESCE($7, related_person),
		    is_urgent = COALESCE($8, is_urgent),
		    receipt_path = COALESCE($9, receipt_path),
		    updated_at = NOW()
		WHERE id = $10 AND user_id = $11
		RETURNING ` + transactionColumns
	var updated models.TransactionWithSplits
	err = scanTransaction(tx.QueryRow(ctx, query,
		req.Title, req.Amount, date, req.Type, req.Category,
		req.Description, req.RelatedPerson, req.IsUrgent, req.ReceiptPath,
		id, userID), &updated.Transaction)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if req.Sources != nil {
		// Replace the whole split set: delete-then-insert, no diffing.
		if _, err := tx.Exec(ctx, `DELETE FROM transaction_source_splits WHERE transaction_id = $1`, id); err != nil {
			return nil, err
		}
		updated.Sources, err = insertSplits(ctx, tx, id, ledger.PersistableSplits(*req.Sources))
		if err != nil {
			return nil, err
		}
	} else {
		updated.Sources = existing.Sources
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTransaction removes the transaction and its splits atomically.
func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, id string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM transaction_source_splits
		WHERE transaction_id IN (SELECT id FROM transactions WHERE id = $1 AND user_id = $2)
	`, id, userID); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return tx.Commit(ctx)
}

func insertSplits(ctx context.Context, tx pgx.Tx, transactionID string, splits []models.SplitInput) ([]models.SourceSplit, error) {
	created := []models.SourceSplit{}
	for _, split := range splits {
		query := `
			INSERT INTO transaction_source_splits (transaction_id, source_id, amount)
			VALUES ($1, $2, $3)
			RETURNING id, transaction_id, source_id, amount
		`
		var s models.SourceSplit
		err := tx.QueryRow(ctx, query, transactionID, split.SourceID, split.Amount).
			Scan(&s.ID, &s.TransactionID, &s.SourceID, &s.Amount)
		if err != nil {
			return nil, err
		}
		created = append(created, s)
	}
	return created, nil
}
