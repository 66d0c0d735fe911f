package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	db "paisa-server/src/db/sql"
	"paisa-server/src/models"
	"paisa-server/src/util"
)

func Register(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode register request body: %v", err)
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.Name = strings.TrimSpace(req.Name)

		if req.Email == "" || req.Password == "" || req.Name == "" {
			util.WriteError(w, http.StatusBadRequest, "Email, password, and name are required")
			return
		}

		if !util.ValidateEmail(req.Email) {
			util.WriteError(w, http.StatusBadRequest, "Invalid email format")
			return
		}

		if !util.ValidatePassword(req.Password) {
			util.WriteError(w, http.StatusBadRequest, "Password must be at least 6 characters")
			return
		}

		if _, err := db.GetUserByEmail(r.Context(), pool, req.Email); err == nil {
			util.WriteError(w, http.StatusBadRequest, "User with this email already exists")
			return
		} else if !errors.Is(err, models.ErrNotFound) {
			logrus.Errorf("Failed to check existing user %s: %v", req.Email, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to register user")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logrus.Errorf("Failed to hash password for %s: %v", req.Email, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to register user")
			return
		}

		user, err := db.CreateUser(r.Context(), pool, req.Email, string(hashedPassword), req.Name)
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				util.WriteError(w, http.StatusBadRequest, "User with this email already exists")
				return
			}
			logrus.Errorf("Failed to create user %s: %v", req.Email, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to register user")
			return
		}

		pair, err := issueTokenPair(r.Context(), pool, user)
		if err != nil {
			logrus.Errorf("Failed to issue tokens for new user %s: %v", user.ID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to register user")
			return
		}

		logrus.Infof("Successful registration - user %s", user.ID)
		util.WriteSuccess(w, http.StatusCreated, "User registered successfully", pair)
	}
}

func Login(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Errorf("Failed to decode login request body: %v", err)
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Email == "" || req.Password == "" {
			util.WriteError(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		user, err := db.GetUserByEmail(r.Context(), pool, strings.ToLower(req.Email))
		if err != nil {
			// Unknown email and bad password are indistinguishable on purpose.
			util.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			logrus.Infof("Invalid password attempt for %s from %s", req.Email, r.RemoteAddr)
			util.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		pair, err := issueTokenPair(r.Context(), pool, user)
		if err != nil {
			logrus.Errorf("Failed to issue tokens for user %s: %v", user.ID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to login")
			return
		}

		logrus.Infof("Successful login - user %s", user.ID)
		util.WriteSuccess(w, http.StatusOK, "Login successful", pair)
	}
}

func Refresh(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.WriteError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.RefreshToken == "" {
			util.WriteError(w, http.StatusBadRequest, "Refresh token is required")
			return
		}

		claims, err := util.VerifyRefreshToken(req.RefreshToken)
		if err != nil {
			util.WriteError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
			return
		}

		stored, err := db.GetRefreshToken(r.Context(), pool, req.RefreshToken)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusUnauthorized, "Refresh token not found")
				return
			}
			logrus.Errorf("Failed to look up refresh token: %v", err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to refresh token")
			return
		}

		if time.Now().After(stored.ExpiresAt) {
			if err := db.DeleteRefreshTokenByID(r.Context(), pool, stored.ID); err != nil {
				logrus.Errorf("Failed to delete expired refresh token %s: %v", stored.ID, err)
			}
			util.WriteError(w, http.StatusUnauthorized, "Refresh token has expired")
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, claims.UserID)
		if err != nil {
			util.WriteError(w, http.StatusUnauthorized, "User not found")
			return
		}

		// Rotation: the presented token is consumed before the new pair is
		// issued, so it cannot be replayed.
		if err := db.DeleteRefreshTokenByID(r.Context(), pool, stored.ID); err != nil {
			logrus.Errorf("Failed to consume refresh token %s: %v", stored.ID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to refresh token")
			return
		}

		pair, err := issueTokenPair(r.Context(), pool, user)
		if err != nil {
			logrus.Errorf("Failed to issue rotated tokens for user %s: %v", user.ID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to refresh token")
			return
		}

		util.WriteSuccess(w, http.StatusOK, "Token refreshed successfully", pair)
	}
}

func Logout(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		// Body is optional: logout without a token just drops nothing.
		_ = json.NewDecoder(r.Body).Decode(&req)

		if req.RefreshToken != "" {
			if err := db.DeleteRefreshTokenByToken(r.Context(), pool, req.RefreshToken); err != nil {
				logrus.Errorf("Failed to delete refresh token on logout: %v", err)
				util.WriteError(w, http.StatusInternalServerError, "Failed to logout")
				return
			}
		}

		util.WriteSuccess(w, http.StatusOK, "Logged out successfully", nil)
	}
}

func Me(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusNotFound, "User not found")
				return
			}
			logrus.Errorf("Failed to get user %s: %v", userID, err)
			util.WriteError(w, http.StatusInternalServerError, "Failed to get user info")
			return
		}

		util.WriteData(w, user)
	}
}

func issueTokenPair(ctx context.Context, pool *pgxpool.Pool, user *models.User) (*models.TokenPair, error) {
	accessToken, err := util.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := util.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := db.InsertRefreshToken(ctx, pool, user.ID, refreshToken, util.RefreshTokenExpiry()); err != nil {
		return nil, err
	}
	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
