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

var validCategoryTypes = map[string]bool{
	"income":  true,
	"expense": true,
	"both":    true,
}

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		var req struct {
			Name   string   `json:"name"`
			Type   string   `json:"type"`
			Icon   string   `json:"icon"`
			Color  string   `json:"color"`
			Budget *float64 `json:"budget"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode create category request body for user %s: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name == "" || req.Type == "" || req.Icon == "" || req.Color == "" {
			util.WriteError(w, http.StatusBadRequest, "Name, type, icon, and color are required")
			return
		}
		if !validCategoryTypes[req.Type] {
			util.WriteError(w, http.StatusBadRequest, "Type must be: income, expense, or both")
			return
		}

		category := &models.Category{
			UserID: userID,
			Name:   req.Name,
			Type:   req.Type,
			Icon:   req.Icon,
			Color:  req.Color,
			Budget: req.Budget,
		}
		created, err := db.CreateCategory(r.Context(), pool, category)
		if err != nil {
			logrus.Errorf("Failed to create category for user %s: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to create category")
			return
		}

		logrus.Infof("Created category %s for user %s", created.ID, userID)
		util.WriteSuccess(w, http.StatusCreated, "Category created successfully", created)
	}
}

func GetAllCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		categories, err := db.GetAllCategoriesForUser(r.Context(), pool, userID)
		if err != nil {
			logrus.Errorf("Failed to get categories for user %s: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to get categories")
			return
		}
		if categories == nil {
			categories = []models.Category{}
		}
		util.WriteData(w, categories)
	}
}

func GetCategoryByID(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		categoryID := chi.URLParam(r, "category_id")

		category, err := db.GetCategoryByID(r.Context(), pool, userID, categoryID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Category not found")
				return
			}
			logrus.Errorf("Failed to get category %s for user %s: %v", categoryID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to get category")
			return
		}
		util.WriteData(w, category)
	}
}

func UpdateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		categoryID := chi.URLParam(r, "category_id")

		var req struct {
			Name   *string  `json:"name"`
			Type   *string  `json:"type"`
			Icon   *string  `json:"icon"`
			Color  *string  `json:"color"`
			Budget *float64 `json:"budget"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode update category request body for user %s: %v", userID, err)
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Type != nil && !validCategoryTypes[*req.Type] {
			util.WriteError(w, http.StatusBadRequest, "Type must be: income, expense, or both")
			return
		}

		updated, err := db.UpdateCategory(r.Context(), pool, userID, categoryID, req.Name, req.Type, req.Icon, req.Color, req.Budget)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Category not found")
				return
			}
			logrus.Errorf("Failed to update category %s for user %s: %v", categoryID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to update category")
			return
		}

		logrus.Infof("Updated category %s for user %s", categoryID, userID)
		util.WriteSuccess(w, http.StatusOK, "Category updated successfully", updated)
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		categoryID := chi.URLParam(r, "category_id")

		if err := db.DeleteCategory(r.Context(), pool, userID, categoryID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "Category not found")
				return
			}
			logrus.Errorf("Failed to delete category %s for user %s: %v", categoryID, userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to delete category")
			return
		}

		logrus.Infof("Deleted category %s for user %s", categoryID, userID)
		util.WriteSuccess(w, http.StatusOK, "Category deleted successfully", nil)
	}
}
