package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"paisa-server/src/models"
	"paisa-server/src/util"
)

func TestJWTAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Success || resp.Message != "No authorization header provided" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestJWTAuthMiddlewareRejectsBadFormat(t *testing.T) {
	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "middleware-test-secret")

	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMiddlewarePassesClaimsDownstream(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "middleware-test-secret")
	t.Setenv("JWT_REFRESH_SECRET", "middleware-test-refresh")

	token, err := util.GenerateAccessToken(&models.User{ID: "user-42", Email: "u@example.com"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	called := false
	handler := JWTAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if got := r.Context().Value("user_id"); got != "user-42" {
			t.Fatalf("user_id in context = %v", got)
		}
		if got := r.Context().Value("email"); got != "u@example.com" {
			t.Fatalf("email in context = %v", got)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("next handler never ran")
	}
}
