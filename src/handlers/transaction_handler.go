package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	cache "paisa-server/src/db"
	db "paisa-server/src/db/sql"
	"paisa-server/src/ledger"
	"paisa-server/src/models"
	"paisa-server/src/util"
)

func GetAllTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		filters, err := parseTransactionFilters(r, true)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid date format")
			return
		}

		q := r.URL.Query()
		cacheKey := cache.TransactionCacheKey(userID, "list",
			q.Get("startDate"), q.Get("endDate"), q.Get("type"), q.Get("category"))
		if cached, ok := cache.GetTransactionCache(cacheKey); ok {
			util.WriteData(w, cached)
			return
		}

		transactions, err := db.ListTransactions(r.Context(), pool, userID, filters)
		if err != nil {
			logrus.Errorf("Failed to get transactions for user %s: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to get transactions")
			return
		}

		result, err := joinSplits(r.Context(), pool, transactions)
		if err != nil {
			logrus.Errorf("Failed to get splits for user %s: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to get transactions")
			return
		}

		cache.SetTransactionCache(userID, cacheKey, result)
		util.WriteData(w, result)
	}
}

func GetTransactionByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		transactionID := chi.URLParam(r, "transaction_id")

		transaction, err := db.GetTransactionByID(r.Context(), pool, userID, transactionID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			logrus.Errorf("Failed to get transaction %s for user %s: %v", transactionID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to get transaction")
			return
		}
		util.WriteData(w, transaction)
	}
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		var req struct {
			Title         string              `json:"title"`
			Amount        *float64            `json:"amount"`
			Date          string              `json:"date"`
			Type          string              `json:"type"`
			Category      string              `json:"category"`
			Description   *string             `json:"description"`
			RelatedPerson *string             `json:"relatedPerson"`
			IsUrgent      bool                `json:"isUrgent"`
			ReceiptPath   *string             `json:"receiptPath"`
			Sources       []models.SplitInput `json:"sources"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode create transaction request body for user %s: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		// Validation order matters: required fields, type, date, amount,
		// split sum. The first failure wins and nothing is persisted.
		if req.Title == "" || req.Amount == nil || req.Date == "" || req.Type == "" || req.Category == "" {
			util.WriteError(w, http.StatusBadRequest, "Title, amount, date, type, and category are required")
			return
		}
		if !ledger.ValidTransactionType(req.Type) {
			util.WriteError(w, http.StatusBadRequest, "Type must be: income or expense")
			return
		}
		date, err := util.ParseDate(req.Date)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid date format")
			return
		}
		if *req.Amount <= 0 {
			util.WriteError(w, http.StatusBadRequest, "Amount must be a positive number")
			return
		}
		if err := ledger.CheckSplitSum(req.Sources, *req.Amount); err != nil {
			util.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		transaction := models.Transaction{
			UserID:        userID,
			Title:         req.Title,
			Amount:        *req.Amount,
			Date:          date,
			Type:          req.Type,
			Category:      req.Category,
			Description:   req.Description,
			RelatedPerson: req.RelatedPerson,
			IsUrgent:      req.IsUrgent,
			ReceiptPath:   req.ReceiptPath,
		}
		created, err := db.CreateTransaction(r.Context(), pool, transaction, ledger.PersistableSplits(req.Sources))
		if err != nil {
			logrus.Errorf("Failed to create transaction for user %s: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
			return
		}

		cache.InvalidateTransactionCache(userID)
		logrus.Infof("Created transaction %s for user %s", created.ID, userID)
		util.WriteSuccess(w, http.StatusCreated, "Transaction created successfully", created)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		transactionID := chi.URLParam(r, "transaction_id")

		var req models.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode update transaction request body for user %s: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Type != nil && !ledger.ValidTransactionType(*req.Type) {
			util.WriteError(w, http.StatusBadRequest, "Type must be: income or expense")
			return
		}

		updated, err := db.UpdateTransaction(r.Context(), pool, userID, transactionID, req)
		if err != nil {
			var validationErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrNotFound):
				util.WriteError(w, http.StatusNotFound, "Transaction not found")
			case errors.As(err, &validationErr):
				util.WriteError(w, http.StatusBadRequest, validationErr.Message)
			default:
				logrus.Errorf("Failed to update transaction %s for user %s: %v", transactionID, userID, err)
				util.WriteError(w, http.StatusInternalServerError, "Failed to update transaction")
			}
			return
		}

		cache.InvalidateTransactionCache(userID)
		logrus.Infof("Updated transaction %s for user %s", transactionID, userID)
		util.WriteSuccess(w, http.StatusOK, "Transaction updated successfully", updated)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		transactionID := chi.URLParam(r, "transaction_id")

		if err := db.DeleteTransaction(r.Context(), pool, userID, transactionID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			logrus.Errorf("Failed to delete transaction %s for user %s: %v", transactionID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
			return
		}

		cache.InvalidateTransactionCache(userID)
		logrus.Infof("Deleted transaction %s for user %s", transactionID, userID)
		util.WriteSuccess(w, http.StatusOK, "Transaction deleted successfully", nil)
	}
}

func GetTransactionStats(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		// Stats only honor the date-range filters, never type/category.
		filters, err := parseTransactionFilters(r, false)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid date format")
			return
		}

		q := r.URL.Query()
		cacheKey := cache.TransactionCacheKey(userID, "stats", q.Get("startDate"), q.Get("endDate"))
		if cached, ok := cache.GetTransactionCache(cacheKey); ok {
			util.WriteData(w, cached)
			return
		}

		transactions, err := db.ListTransactions(r.Context(), pool, userID, filters)
		if err != nil {
			logrus.Errorf("Failed to get transactions for stats for user %s: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to get statistics")
			return
		}

		stats := ledger.ComputeStats(transactions)
		cache.SetTransactionCache(userID, cacheKey, stats)
		util.WriteData(w, stats)
	}
}

// parseTransactionFilters reads the query-string filters. Date bounds are
// inclusive; an unrecognized type value is ignored rather than rejected.
func parseTransactionFilters(r *http.Request, includeTypeCategory bool) (models.TransactionFilters, error) {
	var filters models.TransactionFilters
	q := r.URL.Query()

	if s := q.Get("startDate"); s != "" {
		start, err := util.ParseDate(s)
		if err != nil {
			return filters, err
		}
		filters.StartDate = &start
	}
	if s := q.Get("endDate"); s != "" {
		end, err := util.ParseDate(s)
		if err != nil {
			return filters, err
		}
		filters.EndDate = &end
	}
	if includeTypeCategory {
		if t := q.Get("type"); ledger.ValidTransactionType(t) {
			filters.Type = t
		}
		filters.Category = q.Get("category")
	}
	return filters, nil
}

func joinSplits(ctx context.Context, pool *pgxpool.Pool, transactions []models.Transaction) ([]models.TransactionWithSplits, error) {
	ids := make([]string, 0, len(transactions))
	for _, t := range transactions {
		ids = append(ids, t.ID)
	}
	splitsByTx, err := db.GetSplitsForTransactions(ctx, pool, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.TransactionWithSplits, 0, len(transactions))
	for _, t := range transactions {
		splits := splitsByTx[t.ID]
		if splits == nil {
			splits = []models.SourceSplit{}
		}
		result = append(result, models.TransactionWithSplits{Transaction: t, Sources: splits})
	}
	return result, nil
}
