package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	db "paisa-server/src/db/sql"
	"paisa-server/src/models"
	"paisa-server/src/util"
)

var validSourceTypes = map[string]bool{
	"bank":   true,
	"wallet": true,
	"cash":   true,
}

func CreateSource(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		var req struct {
			Name           string   `json:"name"`
			Type           string   `json:"type"`
			Icon           string   `json:"icon"`
			Color          string   `json:"color"`
			InitialBalance *float64 `json:"initialBalance"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode create source request body for user %s: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" || req.Type == "" || req.Icon == "" || req.Color == "" {
			util.WriteError(w, http.StatusBadRequest, "Name, type, icon, and color are required")
			return
		}
		if !validSourceTypes[req.Type] {
			util.WriteError(w, http.StatusBadRequest, "Type must be: bank, wallet, or cash")
			return
		}

		source := &models.Source{
			UserID: userID,
			Name:   req.Name,
			Type:   req.Type,
			Icon:   req.Icon,
			Color:  req.Color,
		}
		if req.InitialBalance != nil {
			source.InitialBalance = *req.InitialBalance
		}
		created, err := db.CreateSource(r.Context(), pool, source)
		if err != nil {
			logrus.Errorf("Failed to create source for user %s: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to create source")
			return
		}

		logrus.Infof("Created source %s for user %s", created.ID, userID)
		util.WriteSuccess(w, http.StatusCreated, "Source created successfully", created)
	}
}

func GetAllSources(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		sources, err := db.GetAllSourcesForUser(r.Context(), pool, userID)
		if err != nil {
			logrus.Errorf("Failed to get sources for user %s: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to get sources")
			return
		}
		if sources == nil {
			sources = []models.Source{}
		}
		util.WriteData(w, sources)
	}
}

func GetSourceByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		sourceID := chi.URLParam(r, "source_id")

		source, err := db.GetSourceByID(r.Context(), pool, userID, sourceID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Source not found")
				return
			}
			logrus.Errorf("Failed to get source %s for user %s: %v", sourceID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to get source")
			return
		}
		util.WriteData(w, source)
	}
}

func UpdateSource(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		sourceID := chi.URLParam(r, "source_id")

		var req struct {
			Name           *string  `json:"name"`
			Type           *string  `json:"type"`
			Icon           *string  `json:"icon"`
			Color          *string  `json:"color"`
			InitialBalance *float64 `json:"initialBalance"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode update source request body for user %s: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Type != nil && !validSourceTypes[*req.Type] {
			util.WriteError(w, http.StatusBadRequest, "Type must be: bank, wallet, or cash")
			return
		}

		updated, err := db.UpdateSource(r.Context(), pool, userID, sourceID, req.Name, req.Type, req.Icon, req.Color, req.InitialBalance)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Source not found")
				return
			}
			logrus.Errorf("Failed to update source %s for user %s: %v", sourceID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to update source")
			return
		}

		logrus.Infof("Updated source %s for user %s", sourceID, userID)
		util.WriteSuccess(w, http.StatusOK, "Source updated successfully", updated)
	}
}

func DeleteSource(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		sourceID := chi.URLParam(r, "source_id")

		if err := db.DeleteSource(r.Context(), pool, userID, sourceID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Source not found")
				return
			}
			logrus.Errorf("Failed to delete source %s for user %s: %v", sourceID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to delete source")
			return
		}

		logrus.Infof("Deleted source %s for user %s", sourceID, userID)
		util.WriteSuccess(w, http.StatusOK, "Source deleted successfully", nil)
	}
}
